package pool

import (
	"unsafe"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/poolutil"
)

// minSplitPayload is the minimum remainder payload size required
// before a BestFit selection is split rather than handed out whole.
const minSplitPayload = 32

// Allocate is the top-level allocate(size, strategy) entry point.
// strategy defaults to block.BestFit, which triggers the
// reclassification table in dispatch; other values bypass it. A nil
// error and nil payload never occur together: failure is always
// reported via error.
func (p *Pool) Allocate(size int, strategy block.Strategy) (unsafe.Pointer, error) {
	if size < 0 {
		return nil, poolutil.ErrTooLarge
	}

	aligned, err := alignedSize(uintptr(size))
	if err != nil {
		return nil, err
	}

	r := p.dispatch(aligned, strategy)

	var h *block.Header
	switch r.strategy {
	case block.FixedSize:
		h, err = p.caches[r.slabIdx].Get()
	case block.Segregated:
		h, err = p.allocateSegregated(r.classIdx, aligned)
	case block.PoolBased:
		h, err = p.allocatePoolBased(aligned)
	default:
		h, err = p.allocateBestFit(aligned)
	}
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, poolutil.ErrOutOfMemory
	}

	h.Free = false
	p.recordAlloc(h.Size)
	payload := h.Payload()
	p.trackScope(uintptr(payload))
	return payload, nil
}

// alignedSize rounds size up to a 16-byte multiple, failing with
// TooLarge on overflow.
func alignedSize(size uintptr) (uintptr, error) {
	aligned := poolutil.AlignUp(size, poolutil.MinAlignment)
	if aligned < size {
		return 0, poolutil.ErrTooLarge
	}
	return aligned, nil
}

// allocateBestFit selects the smallest adequate free block, splitting
// off any sufficiently large remainder.
func (p *Pool) allocateBestFit(aligned uintptr) (*block.Header, error) {
	unlock := p.lock()
	defer unlock()
	return p.allocateBestFitLocked(aligned)
}

func (p *Pool) allocateBestFitLocked(aligned uintptr) (*block.Header, error) {
	h := p.index.LowerBound(aligned)
	if h == nil {
		if err := p.growBestFitLocked(); err != nil {
			return nil, err
		}
		h = p.index.LowerBound(aligned)
		if h == nil {
			return nil, nil
		}
	}
	p.index.Remove(h)
	p.splitLocked(h, aligned)
	h.Strategy = block.BestFit
	poolutil.DebugValidate(p.index)
	return h, nil
}

// splitLocked carves a remainder off b when the leftover payload would
// be at least minSplitPayload bytes. Caller holds p.mu.
func (p *Pool) splitLocked(b *block.Header, aligned uintptr) {
	if b.Size < aligned+block.HeaderSize+minSplitPayload {
		return
	}
	remainderAddr := b.Addr() + block.HeaderSize + aligned
	remainderSize := b.Size - aligned - block.HeaderSize
	remainder := block.Init(remainderAddr, remainderSize, b.ChunkEnd, b.Addr(), block.BestFit)
	b.Size = aligned
	if next := remainder.NextPhysical(); next != nil {
		next.PhysPrev = remainderAddr
	}
	p.index.Insert(remainder)
}

// allocatePoolBased is first-fit over the size index: the selected
// block is detached whole, without splitting.
func (p *Pool) allocatePoolBased(aligned uintptr) (*block.Header, error) {
	unlock := p.lock()
	defer unlock()

	h := p.index.LowerBound(aligned)
	if h == nil {
		if err := p.growBestFitLocked(); err != nil {
			return nil, err
		}
		h = p.index.LowerBound(aligned)
		if h == nil {
			return nil, nil
		}
	}
	p.index.Remove(h)
	h.Strategy = block.PoolBased
	poolutil.DebugValidate(p.index)
	return h, nil
}

// allocateSegregated pops a free block from the class list, refilling
// it from the BestFit index first if the class is empty.
func (p *Pool) allocateSegregated(classIdx int, aligned uintptr) (*block.Header, error) {
	unlock := p.lock()
	defer unlock()

	if h := p.segregated.Pop(classIdx); h != nil {
		h.Strategy = block.Segregated
		return h, nil
	}
	if err := p.refillSegregatedLocked(classIdx); err != nil {
		return nil, err
	}
	if h := p.segregated.Pop(classIdx); h != nil {
		h.Strategy = block.Segregated
		return h, nil
	}
	return p.allocateBestFitLocked(aligned)
}

// refillSegregatedLocked detaches one free BestFit block (acquiring a
// fresh chunk first if none is large enough), partitions it into
// classSize blocks tagged Segregated, chains them onto the class list,
// and reinserts any leftover remainder larger than a header into the
// BestFit free list (a smaller remainder is left unindexed).
// Caller holds p.mu.
func (p *Pool) refillSegregatedLocked(classIdx int) error {
	classSize := p.opts.SegregatedClasses[classIdx]
	stride := block.HeaderSize + classSize

	h := p.index.LowerBound(stride)
	if h == nil {
		if err := p.growBestFitLocked(); err != nil {
			return err
		}
		h = p.index.LowerBound(stride)
		if h == nil {
			return nil
		}
	}
	p.index.Remove(h)

	base := h.Addr()
	end := base + block.HeaderSize + h.Size
	chunkEnd := h.ChunkEnd

	addr := base
	physPrev := h.PhysPrev
	for addr+stride <= end {
		blk := block.Init(addr, classSize, chunkEnd, physPrev, block.Segregated)
		p.segregated.Push(classIdx, blk)
		physPrev = addr
		addr += stride
	}

	last := physPrev
	if leftover := end - addr; leftover > block.HeaderSize {
		rem := block.Init(addr, leftover-block.HeaderSize, chunkEnd, last, block.BestFit)
		p.index.Insert(rem)
		last = addr
	}
	if end < chunkEnd {
		block.AtAddr(end).PhysPrev = last
	}
	poolutil.DebugValidate(p.segregated)
	return nil
}
