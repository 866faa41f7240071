// Package bestfit implements BestFitIndex: a size-ordered multi-map over
// free BestFit/PoolBased blocks plus a reverse lookup, and the neighbor
// coalescing performed on every BestFit/PoolBased free.
//
// Go has no ordered multimap in the standard library, so the ordered
// side is a slice kept sorted by (size, addr) and searched with
// sort.Search; the best-fit invariant (smallest adequate fit) holds
// within this structure the same as it would over a tree-based
// multimap. The reverse side is a github.com/dolthub/swiss map from
// address to size.
package bestfit

import (
	"sort"

	cerrors "github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/internal/freelist"
)

func errMismatch(msg string) error {
	return cerrors.Newf("bestfit index: %s", msg)
}

type entry struct {
	size uintptr
	addr uintptr
}

// Index is the BestFitIndex: an ordered size->block multi-map plus its
// reverse lookup, paired with the address-ordered FreeList the same
// blocks belong to.
type Index struct {
	entries []entry
	reverse *swiss.Map[uintptr, uintptr] // addr -> size
	list    freelist.List
}

// New returns an empty Index.
func New() *Index {
	return &Index{reverse: swiss.NewMap[uintptr, uintptr](16)}
}

// Len returns the number of free blocks currently tracked.
func (ix *Index) Len() int { return len(ix.entries) }

func less(a, b entry) bool {
	if a.size != b.size {
		return a.size < b.size
	}
	return a.addr < b.addr
}

// LowerBound returns the smallest free block with size >= want, or nil
// if none exists. This backs both BestFit's selection and Pool's
// first-fit-over-the-size-index selection; Pool simply skips the
// splitting step LowerBound's caller would otherwise do.
func (ix *Index) LowerBound(want uintptr) *block.Header {
	i := sort.Search(len(ix.entries), func(i int) bool {
		return ix.entries[i].size >= want
	})
	if i == len(ix.entries) {
		return nil
	}
	return block.AtAddr(ix.entries[i].addr)
}

// Insert adds h (which must already be marked free) to the size index,
// the reverse lookup, and the address-ordered free list.
func (ix *Index) Insert(h *block.Header) {
	e := entry{size: h.Size, addr: h.Addr()}
	i := sort.Search(len(ix.entries), func(i int) bool { return !less(ix.entries[i], e) })
	ix.entries = append(ix.entries, entry{})
	copy(ix.entries[i+1:], ix.entries[i:])
	ix.entries[i] = e
	ix.reverse.Put(e.addr, e.size)
	ix.list.Insert(h)
}

// Remove detaches h from the size index, the reverse lookup, and the
// free list. h must currently be a member of all three.
func (ix *Index) Remove(h *block.Header) {
	addr := h.Addr()
	size, ok := ix.reverse.Get(addr)
	if !ok {
		return
	}
	target := entry{size: size, addr: addr}
	i := sort.Search(len(ix.entries), func(i int) bool { return !less(ix.entries[i], target) })
	for i < len(ix.entries) && ix.entries[i].addr != addr {
		i++
	}
	if i < len(ix.entries) {
		ix.entries = append(ix.entries[:i], ix.entries[i+1:]...)
	}
	ix.reverse.Delete(addr)
	ix.list.Remove(h)
}

// absorb merges absorbed (a physically adjacent, just-removed free block)
// into survivor, which must be absorbed's physical neighbor on the side
// that keeps addresses contiguous.
func absorb(survivor, absorbed *block.Header) {
	nextNext := absorbed.NextPhysical()
	survivor.Size += block.HeaderSize + absorbed.Size
	if nextNext != nil {
		nextNext.PhysPrev = survivor.Addr()
	}
}

// InsertWithCoalesce inserts h into the free list and size index for a
// BestFit/PoolBased free, then tries to merge with its physical
// neighbors. Coalescing is restricted to pairs where BOTH blocks carry
// the sticky BestFit tag — a PoolBased block is inserted into the same
// shared structures (so a future BestFit or Pool request can reuse it)
// but never merged, and never merges an adjacent BestFit block into
// itself. It returns the surviving header (h itself, or whichever
// neighbor absorbed it).
func (ix *Index) InsertWithCoalesce(h *block.Header) *block.Header {
	h.Free = true

	if h.Strategy == block.BestFit {
		if next := h.NextPhysical(); next != nil && next.Free && next.Strategy == block.BestFit {
			ix.Remove(next)
			absorb(h, next)
		}
		if prev := h.PrevPhysical(); prev != nil && prev.Free && prev.Strategy == block.BestFit {
			ix.Remove(prev)
			absorb(prev, h)
			h = prev
		}
	}

	ix.Insert(h)
	return h
}

// Validate checks that the index is a bijection against free
// BestFit/PoolBased blocks, and that no two adjacent free BestFit
// blocks remain after a dealloc returns.
func (ix *Index) Validate() error {
	if err := ix.list.Validate(); err != nil {
		return err
	}
	if ix.reverse.Count() != len(ix.entries) {
		return errMismatch("reverse map size does not match size index entry count")
	}
	for cur := ix.list.Head(); cur != nil; cur = cur.FreeNextHeader() {
		if !cur.Free {
			return errMismatch("free list member is not marked free")
		}
		if cur.Strategy != block.BestFit && cur.Strategy != block.PoolBased {
			return errMismatch("free list member has a non-BestFit/PoolBased strategy")
		}
		if size, ok := ix.reverse.Get(cur.Addr()); !ok || size != cur.Size {
			return errMismatch("size index is missing a free list member")
		}
		if next := cur.NextPhysical(); cur.Strategy == block.BestFit && next != nil && next.Free && next.Strategy == block.BestFit {
			return errMismatch("two adjacent free BestFit blocks were not coalesced")
		}
	}
	return nil
}
