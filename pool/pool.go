// Package pool implements Pool, the public allocator facade, assembling
// the strategy dispatcher over the internal directory packages
// (internal/block, internal/bestfit, internal/freelist,
// internal/segregated, internal/slab, internal/cache, internal/scope)
// behind a single Allocator-style facade.
package pool

import (
	"sync"
	"sync/atomic"
	"unsafe"

	cerrors "github.com/cockroachdb/errors"

	"github.com/heaplab/heapcore/internal/bestfit"
	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/internal/cache"
	"github.com/heaplab/heapcore/internal/scope"
	"github.com/heaplab/heapcore/internal/segregated"
	"github.com/heaplab/heapcore/internal/slab"
	"github.com/heaplab/heapcore/poolutil"
	"github.com/heaplab/heapcore/stats"
)

// Pool is a general-purpose heap allocator: a best-fit free list,
// segregated lists, slab allocators with thread caches, a strategy
// dispatcher, a scope stack, and reset/alignment/stats surface over
// chunks obtained from a block.ChunkSource.
type Pool struct {
	opts Options

	mu         sync.RWMutex // guards chunks, index, segregated, scopes in Shared mode
	chunks     []*block.Chunk
	index      *bestfit.Index
	segregated *segregated.Lists
	scopes     *scope.Stack

	slabs      [3]*slab.Allocator
	caches     [3]*cache.ThreadCache
	slabIndex  map[uintptr]int // exact block size -> slabs/caches index

	stats     stats.Counters
	shardHint uint32
}

// New constructs a Pool, obtaining its first chunk from the configured
// ChunkSource and inserting one initial free block.
func New(options ...Option) (*Pool, error) {
	opts := defaultOptions()
	for _, o := range options {
		o(&opts)
	}

	p := &Pool{
		opts:       opts,
		index:      bestfit.New(),
		segregated: segregated.New(opts.SegregatedClasses),
		scopes:     scope.New(),
		slabIndex:  make(map[uintptr]int, len(opts.SlabSizes)),
	}
	for i, size := range opts.SlabSizes {
		p.slabs[i] = slab.New(opts.ChunkSource, size, opts.SlabChunkSize)
		p.caches[i] = cache.New(p.slabs[i])
		p.slabIndex[size] = i
	}

	if err := p.growBestFitLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pool) lock() func() {
	if p.opts.Mode == Shared {
		p.mu.Lock()
		return p.mu.Unlock
	}
	return func() {}
}

func (p *Pool) rlock() func() {
	if p.opts.Mode == Shared {
		p.mu.RLock()
		return p.mu.RUnlock
	}
	return func() {}
}

// growBestFitLocked obtains one more chunk for the general pool and
// inserts its single initial free block into the free list and size
// index. Caller must hold p.mu for writing (or run single-threaded in
// Exclusive mode).
func (p *Pool) growBestFitLocked() error {
	chunk, firstAddr, err := block.NewChunk(p.opts.ChunkSource, p.opts.ChunkSize, block.BestFit)
	if err != nil {
		return cerrors.Wrapf(poolutil.ErrOutOfMemory, "pool: acquiring chunk: %v", err)
	}
	p.chunks = append(p.chunks, chunk)
	p.index.Insert(block.AtAddr(firstAddr))
	return nil
}

func (p *Pool) recordAlloc(n uintptr) {
	hint := atomic.AddUint32(&p.shardHint, 1)
	p.stats.RecordAlloc(hint, n)
}

func (p *Pool) recordFree(n uintptr) {
	hint := atomic.AddUint32(&p.shardHint, 1)
	p.stats.RecordFree(hint, n)
}

// Stats returns a point-in-time snapshot of this pool's allocation
// counters.
func (p *Pool) Stats() stats.Snapshot {
	return p.stats.Snapshot()
}

// Owns reports whether ptr was returned by this pool's Allocate, or
// falls within one of its chunks.
func (p *Pool) Owns(ptr unsafe.Pointer) bool {
	if ptr == nil {
		return false
	}
	unlock := p.rlock()
	defer unlock()
	return p.ownsLocked(uintptr(ptr) - block.HeaderSize)
}

// ownsLocked is Owns without its own locking, for callers that already
// hold p.mu.
func (p *Pool) ownsLocked(addr uintptr) bool {
	for _, c := range p.chunks {
		if c.Contains(addr) {
			return true
		}
	}
	for _, s := range p.slabs {
		if s.Owns(addr) {
			return true
		}
	}
	return false
}

// UsableSize returns the payload capacity of the block holding ptr. For
// an aligned allocation, the caller must resolve ptr to its underlying
// payload first (see AllocateAligned).
func (p *Pool) UsableSize(ptr unsafe.Pointer) uintptr {
	if ptr == nil {
		return 0
	}
	h := block.FromPayload(ptr)
	return h.Size
}

// ReleaseThreadCache drains whatever magazine the calling goroutine
// currently has checked out back to its backing slab for all three
// fixed-size classes. Best-effort: see internal/cache's doc comment.
func (p *Pool) ReleaseThreadCache() {
	for _, c := range p.caches {
		c.ReleaseThreadCache()
	}
}
