// Package slab implements the fixed-block-size allocator backing the
// FixedSize strategy: a dedicated allocator for one exact payload size,
// its own chunk list, and its own free chain, the Go equivalent of a
// FixedSizeAllocator<BlockSize> template with the chunk size taken as a
// constructor argument instead of a template parameter.
package slab

import (
	"sync"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/poolutil"
)

// Allocator serves fixed-size blocks of exactly BlockSize payload bytes
// from its own chunks, independent of any other strategy's bookkeeping.
// It is the backing store ThreadCache magazines refill from.
type Allocator struct {
	mu         sync.Mutex
	BlockSize  uintptr
	chunkBytes int
	source     block.ChunkSource
	chunks     []*block.Chunk
	freeHead   uintptr
}

// New returns a slab Allocator for blockSize-byte payloads, obtaining
// chunkBytes at a time from source.
func New(source block.ChunkSource, blockSize uintptr, chunkBytes int) *Allocator {
	return &Allocator{BlockSize: blockSize, chunkBytes: chunkBytes, source: source}
}

// Alloc removes and returns one block from the free chain, growing the
// slab by one chunk first if the chain is empty.
func (a *Allocator) Alloc() (*block.Header, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.freeHead == 0 {
		if err := a.growLocked(); err != nil {
			return nil, err
		}
	}
	h := block.AtAddr(a.freeHead)
	a.freeHead = h.FreeNext
	h.SetFreeNext(nil)
	h.Free = false
	return h, nil
}

// Free returns h to the slab's free chain. h must have been produced by
// this Allocator's Alloc.
func (a *Allocator) Free(h *block.Header) {
	a.mu.Lock()
	defer a.mu.Unlock()
	h.Free = true
	h.FreeNext = a.freeHead
	a.freeHead = h.Addr()
}

// growLocked obtains one more chunk and carves it into BlockSize-payload
// headers, threading them all onto the free chain. Caller holds a.mu.
func (a *Allocator) growLocked() error {
	chunk, firstAddr, err := block.NewChunk(a.source, a.chunkBytes, block.FixedSize)
	if err != nil {
		return poolutil.ErrOutOfMemory
	}
	a.chunks = append(a.chunks, chunk)

	stride := block.HeaderSize + a.BlockSize
	addr := firstAddr
	var prev uintptr
	for addr+stride <= chunk.End() {
		h := block.Init(addr, a.BlockSize, chunk.End(), prev, block.FixedSize)
		h.SetFreeNext(nil)
		if prev != 0 {
			block.AtAddr(prev).SetFreeNext(h)
		} else {
			a.freeHead = addr
		}
		prev = addr
		addr += stride
	}
	return nil
}

// Owns reports whether addr falls within any chunk this Allocator has
// obtained.
func (a *Allocator) Owns(addr uintptr) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range a.chunks {
		if c.Contains(addr) {
			return true
		}
	}
	return false
}

// Reset rebuilds the free chain from scratch across every chunk this
// Allocator already owns, without releasing or reobtaining any chunk.
func (a *Allocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	stride := block.HeaderSize + a.BlockSize
	a.freeHead = 0
	var tail uintptr
	for _, chunk := range a.chunks {
		addr := chunk.Base
		var prev uintptr
		for addr+stride <= chunk.End() {
			h := block.Init(addr, a.BlockSize, chunk.End(), prev, block.FixedSize)
			h.SetFreeNext(nil)
			if prev != 0 {
				block.AtAddr(prev).SetFreeNext(h)
			} else if tail != 0 {
				block.AtAddr(tail).SetFreeNext(h)
			} else {
				a.freeHead = addr
			}
			prev = addr
			addr += stride
		}
		if prev != 0 {
			tail = prev
		}
	}
}

// Stats returns the number of chunks obtained and the number of blocks
// currently reachable from the free chain, for diagnostics.
func (a *Allocator) Stats() (chunks int, freeBlocks int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	chunks = len(a.chunks)
	for addr := a.freeHead; addr != 0; {
		freeBlocks++
		addr = block.AtAddr(addr).FreeNext
	}
	return chunks, freeBlocks
}
