package block

import (
	"unsafe"

	"github.com/heaplab/heapcore/poolutil"
)

// ChunkSource is the abstract obtain_chunk(n_bytes) collaborator. Pool
// never talks to the operating system directly; it talks to a
// ChunkSource, so tests can substitute a fake or a gomock-generated
// mock that fails on demand.
type ChunkSource interface {
	ObtainChunk(nBytes int) ([]byte, error)
}

// OSChunkSource is the default ChunkSource, backing every chunk with a
// plain Go heap allocation. Go's allocator never returns this memory to
// the OS until the Chunk itself is released, giving chunks the
// never-freed-individually lifetime the allocator relies on.
type OSChunkSource struct{}

func (OSChunkSource) ObtainChunk(nBytes int) ([]byte, error) {
	return make([]byte, nBytes), nil
}

// Chunk owns one contiguous region of bytes obtained from a ChunkSource.
// It starts life containing a single free BlockHeader spanning the
// remainder of the chunk.
type Chunk struct {
	bytes []byte
	Base  uintptr
	Size  uintptr
}

// NewChunk obtains nBytes from source, aligns the first header's payload
// to at least poolutil.MinAlignment, and writes a single free header of
// strategy strategy spanning the chunk. It returns the chunk and the
// address of that initial header.
func NewChunk(source ChunkSource, nBytes int, strategy Strategy) (*Chunk, uintptr, error) {
	raw, err := source.ObtainChunk(nBytes)
	if err != nil {
		return nil, 0, err
	}
	if len(raw) < nBytes {
		return nil, 0, poolutil.ErrOutOfMemory
	}

	base := uintptr(unsafe.Pointer(&raw[0]))
	alignedBase := poolutil.AlignUp(base, uintptr(poolutil.MinAlignment))
	slack := alignedBase - base
	usable := uintptr(len(raw)) - slack

	c := &Chunk{bytes: raw, Base: alignedBase, Size: usable - HeaderSize}
	end := c.Base + HeaderSize + c.Size
	Init(alignedBase, c.Size, end, 0, strategy)
	return c, alignedBase, nil
}

// End returns the address one byte past the end of the chunk's usable
// region.
func (c *Chunk) End() uintptr {
	return c.Base + HeaderSize + c.Size
}

// Contains reports whether addr falls within this chunk's backing bytes,
// used by Pool.Owns to validate a pointer actually came from this pool.
func (c *Chunk) Contains(addr uintptr) bool {
	return addr >= c.Base && addr < c.End()
}

// Reinit rewrites the chunk back to a single free header spanning its
// entire usable region, used by Pool.Reset.
func (c *Chunk) Reinit(strategy Strategy) uintptr {
	Init(c.Base, c.Size, c.End(), 0, strategy)
	return c.Base
}
