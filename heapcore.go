// Package heapcore is a general-purpose, in-process heap allocator: a
// drop-in substitute for a host malloc/free built from a best-fit free
// list, segregated free lists, fixed-size slab allocators with
// per-goroutine-style caches, a strategy dispatcher, a scope/arena
// facility, and aligned allocation, reset, and statistics.
//
// This file re-exports the pool package's public surface behind one
// Allocator-style facade so callers depend on a single import path.
package heapcore

import (
	"sync"
	"unsafe"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/pool"
	"github.com/heaplab/heapcore/poolutil"
	"github.com/heaplab/heapcore/stats"
)

// Re-exported types.
type (
	Pool    = pool.Pool
	Options = pool.Options
	Option  = pool.Option
	Mode    = pool.Mode
	Strategy = block.Strategy
)

// Re-exported constants.
const (
	Shared    = pool.Shared
	Exclusive = pool.Exclusive

	BestFit    = block.BestFit
	PoolBased  = block.PoolBased
	Segregated = block.Segregated
	FixedSize  = block.FixedSize
)

// Re-exported functional options.
var (
	WithMode              = pool.WithMode
	WithChunkSize         = pool.WithChunkSize
	WithSlabChunkSize     = pool.WithSlabChunkSize
	WithSlabSizes         = pool.WithSlabSizes
	WithSegregatedClasses = pool.WithSegregatedClasses
	WithChunkSource       = pool.WithChunkSource
	WithLogger            = pool.WithLogger
)

// Re-exported sentinel errors.
var (
	ErrOutOfMemory      = poolutil.ErrOutOfMemory
	ErrTooLarge         = poolutil.ErrTooLarge
	ErrInvalidAlignment = poolutil.ErrInvalidAlignment
	ErrMisuse           = poolutil.ErrMisuse
)

// New constructs a standalone Pool. Most callers that just want
// malloc/free semantics without managing a Pool value should use the
// package-level Allocate/Deallocate/... functions instead, which operate
// against a lazily constructed process-wide default pool, realized here
// as one shared Shared-mode Pool since Go has no stable thread-local
// slot to key a true per-thread default off of.
func New(options ...Option) (*Pool, error) {
	return pool.New(options...)
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
	defaultErr  error
)

func defaultPoolInstance() (*Pool, error) {
	defaultOnce.Do(func() {
		defaultPool, defaultErr = pool.New(pool.WithMode(pool.Shared))
	})
	return defaultPool, defaultErr
}

// Allocate allocates from the process-wide default pool.
func Allocate(size int, strategy Strategy) (unsafe.Pointer, error) {
	p, err := defaultPoolInstance()
	if err != nil {
		return nil, err
	}
	return p.Allocate(size, strategy)
}

// AllocateAligned allocates aligned memory from the process-wide default
// pool.
func AllocateAligned(size int, alignment uintptr) (unsafe.Pointer, error) {
	p, err := defaultPoolInstance()
	if err != nil {
		return nil, err
	}
	return p.AllocateAligned(size, alignment)
}

// Deallocate frees ptr back to the process-wide default pool.
func Deallocate(ptr unsafe.Pointer) {
	p, err := defaultPoolInstance()
	if err != nil {
		return
	}
	p.Deallocate(ptr)
}

// DeallocateAligned frees an aligned ptr back to the process-wide
// default pool.
func DeallocateAligned(ptr unsafe.Pointer) {
	p, err := defaultPoolInstance()
	if err != nil {
		return
	}
	p.DeallocateAligned(ptr)
}

// DefaultStats returns a statistics snapshot for the process-wide
// default pool.
func DefaultStats() (stats.Snapshot, error) {
	p, err := defaultPoolInstance()
	if err != nil {
		return stats.Snapshot{}, err
	}
	return p.Stats(), nil
}
