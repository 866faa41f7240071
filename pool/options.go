package pool

import (
	"golang.org/x/exp/slog"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/internal/segregated"
)

// Mode selects the pool's concurrency model.
type Mode int

const (
	// Shared mode guards the BestFit free list, size index, chunk list,
	// and scope stack behind one mutex; slabs and thread caches keep
	// their own independent synchronization regardless of Mode.
	Shared Mode = iota
	// Exclusive mode elides the pool mutex entirely; only one goroutine
	// may touch the pool at a time.
	Exclusive
)

const (
	defaultChunkSize     = 1 << 20 // 1 MiB
	defaultSlabChunkSize = 64 << 10
)

// Options configures a Pool at construction via the Go functional
// options pattern.
type Options struct {
	Mode              Mode
	ChunkSize         int
	SlabChunkSize     int
	SlabSizes         [3]uintptr
	SegregatedClasses [8]uintptr
	ChunkSource       block.ChunkSource
	Logger            *slog.Logger
}

// Option mutates an Options during construction.
type Option func(*Options)

// WithMode sets the pool's concurrency mode. Default: Shared.
func WithMode(m Mode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithChunkSize sets the byte size of each general-pool chunk obtained
// from the ChunkSource. Default: 1 MiB.
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}

// WithSlabChunkSize sets the byte size of each chunk a slab.Allocator
// obtains. Default: 64 KiB.
func WithSlabChunkSize(n int) Option {
	return func(o *Options) { o.SlabChunkSize = n }
}

// WithSlabSizes overrides the three fixed-size slab classes (default:
// 32/128/256). Sizes must be given smallest to largest.
func WithSlabSizes(small, medium, large uintptr) Option {
	return func(o *Options) { o.SlabSizes = [3]uintptr{small, medium, large} }
}

// WithSegregatedClasses overrides the eight segregated size classes.
func WithSegregatedClasses(classes [8]uintptr) Option {
	return func(o *Options) { o.SegregatedClasses = classes }
}

// WithChunkSource overrides the abstract obtain_chunk(n_bytes)
// collaborator responsible for OS page acquisition. Tests substitute a
// fake or a gomock-generated mock here.
func WithChunkSource(source block.ChunkSource) Option {
	return func(o *Options) { o.ChunkSource = source }
}

// WithLogger attaches a structured logger used only for diagnostic
// events (corruption checks, leak reports on Reset) — never the hot
// allocate/free path.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func defaultOptions() Options {
	return Options{
		Mode:              Shared,
		ChunkSize:         defaultChunkSize,
		SlabChunkSize:     defaultSlabChunkSize,
		SlabSizes:         [3]uintptr{32, 128, 256},
		SegregatedClasses: segregated.DefaultClassSizes,
		ChunkSource:       block.OSChunkSource{},
	}
}
