// Package cache implements ThreadCache: a per-size-class magazine that
// sits in front of a slab.Allocator to absorb repeated alloc/free pairs
// of the same fixed size without touching the slab's mutex on every
// call.
//
// Go has no thread-local storage (goroutines are multiplexed M:N onto
// OS threads, so there is no stable per-thread slot to key off of), so
// unlike a thread_local cache in C++ this magazine is backed by
// sync.Pool, the idiomatic Go substitute for a scratch pool that is
// cheap to access from many goroutines and that the runtime is free to
// shrink under memory pressure.
package cache

import (
	"sync"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/internal/slab"
)

// capacity bounds how many blocks a magazine keeps: once Put pushes it
// past capacity, the oldest half is spilled back to the backing slab.
const capacity = 256

// refillBatch is how many blocks are pulled from the backing slab at
// once when a magazine runs dry, amortizing the slab mutex.
const refillBatch = 32

type magazine struct {
	blocks []uintptr
}

// ThreadCache fronts a slab.Allocator with sync.Pool-backed magazines.
type ThreadCache struct {
	backing *slab.Allocator
	pool    sync.Pool
}

// New returns a ThreadCache drawing from backing.
func New(backing *slab.Allocator) *ThreadCache {
	tc := &ThreadCache{backing: backing}
	tc.pool.New = func() interface{} { return &magazine{} }
	return tc
}

// Get returns one block, refilling from the backing slab in batches of
// refillBatch when the checked-out magazine is empty.
func (tc *ThreadCache) Get() (*block.Header, error) {
	m := tc.pool.Get().(*magazine)
	defer tc.pool.Put(m)

	if len(m.blocks) == 0 {
		for i := 0; i < refillBatch; i++ {
			h, err := tc.backing.Alloc()
			if err != nil {
				if len(m.blocks) == 0 {
					return nil, err
				}
				break
			}
			m.blocks = append(m.blocks, h.Addr())
		}
	}

	last := len(m.blocks) - 1
	addr := m.blocks[last]
	m.blocks = m.blocks[:last]
	h := block.AtAddr(addr)
	h.Free = false
	return h, nil
}

// Put returns a block to the magazine, spilling the oldest half back to
// the backing slab once the magazine holds more than capacity blocks.
func (tc *ThreadCache) Put(h *block.Header) {
	m := tc.pool.Get().(*magazine)
	defer tc.pool.Put(m)

	h.Free = true
	m.blocks = append(m.blocks, h.Addr())

	if len(m.blocks) > capacity {
		spill := len(m.blocks) / 2
		for _, addr := range m.blocks[:spill] {
			tc.backing.Free(block.AtAddr(addr))
		}
		m.blocks = append(m.blocks[:0], m.blocks[spill:]...)
	}
}

// ReleaseThreadCache drains the magazine obtainable from the pool right
// now back to the backing slab. Because sync.Pool offers no way to
// enumerate every magazine ever handed out to every goroutine, this is
// best-effort: it recovers what Get/Put happen to have parked in the
// pool's local free list at the moment it is called, not a guaranteed
// drain of every outstanding block. Callers that need a hard guarantee
// should call Reset on the owning Pool instead, which rebuilds chunks
// directly rather than going through the cache.
func (tc *ThreadCache) ReleaseThreadCache() {
	m := tc.pool.Get().(*magazine)
	for _, addr := range m.blocks {
		tc.backing.Free(block.AtAddr(addr))
	}
	m.blocks = m.blocks[:0]
	tc.pool.Put(m)
}
