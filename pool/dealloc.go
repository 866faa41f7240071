package pool

import (
	"unsafe"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/poolutil"
)

// Deallocate frees ptr back to the strategy that owns it. ptr must be
// either a payload previously returned by this Pool's Allocate, or nil
// (a no-op). A pointer this pool does not own is undefined behavior;
// callers that need a guard should check Owns first.
func (p *Pool) Deallocate(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	unlock := p.lock()
	defer unlock()
	p.untrackScopeLocked(uintptr(ptr))
	p.deallocateLocked(ptr)
}

// deallocateLocked performs the free-path strategy dispatch. Caller
// holds p.mu (or runs single-threaded in Exclusive mode) and has
// already handled scope untracking.
func (p *Pool) deallocateLocked(ptr unsafe.Pointer) {
	p.debugAssertOwned(ptr)
	h := block.FromPayload(ptr)
	poolutil.DebugAssert(!h.Free, "double free")

	size := h.Size

	switch h.Strategy {
	case block.FixedSize:
		if idx, ok := p.slabIndex[h.Size]; ok {
			p.caches[idx].Put(h)
		} else {
			h.Strategy = block.BestFit
			p.index.InsertWithCoalesce(h)
			poolutil.DebugValidate(p.index)
		}

	case block.Segregated:
		if ci, ok := p.segregated.ClassIndex(h.Size); ok && p.opts.SegregatedClasses[ci] == h.Size {
			p.segregated.Push(ci, h)
			poolutil.DebugValidate(p.segregated)
		} else {
			h.Strategy = block.BestFit
			p.index.InsertWithCoalesce(h)
			poolutil.DebugValidate(p.index)
		}

	default: // BestFit, PoolBased
		p.index.InsertWithCoalesce(h)
		poolutil.DebugValidate(p.index)
	}

	p.recordFree(size)
}
