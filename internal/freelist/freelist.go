// Package freelist implements List: the address-ordered doubly linked
// list of free blocks. It only maintains the BestFit/PoolBased
// free-list links (block.Header.FreePrev/FreeNext); callers are
// responsible for any size-index bookkeeping (that lives in
// internal/bestfit) and for deciding whether to coalesce.
package freelist

import (
	cerrors "github.com/cockroachdb/errors"

	"github.com/heaplab/heapcore/internal/block"
)

// List is an address-ordered doubly linked free list over block.Header
// values. The zero value is an empty list.
type List struct {
	head uintptr
	tail uintptr
}

// Head returns the lowest-addressed free block, or nil if the list is
// empty.
func (l *List) Head() *block.Header {
	if l.head == 0 {
		return nil
	}
	return block.AtAddr(l.head)
}

// Insert places h into the list at the position that keeps addresses
// strictly increasing. h must already be marked free; its
// FreePrev/FreeNext are overwritten.
func (l *List) Insert(h *block.Header) {
	addr := h.Addr()

	if l.head == 0 {
		h.SetFreePrev(nil)
		h.SetFreeNext(nil)
		l.head = addr
		l.tail = addr
		return
	}

	// Walk from head until we find the first free block whose address
	// exceeds h's; h is inserted immediately before it.
	cur := block.AtAddr(l.head)
	for {
		if cur.Addr() > addr {
			prev := cur.FreePrevHeader()
			h.SetFreePrev(prev)
			h.SetFreeNext(cur)
			cur.SetFreePrev(h)
			if prev != nil {
				prev.SetFreeNext(h)
			} else {
				l.head = addr
			}
			return
		}
		next := cur.FreeNextHeader()
		if next == nil {
			// h belongs at the tail.
			cur.SetFreeNext(h)
			h.SetFreePrev(cur)
			h.SetFreeNext(nil)
			l.tail = addr
			return
		}
		cur = next
	}
}

// Remove detaches h from the list. h must currently be a member.
func (l *List) Remove(h *block.Header) {
	prev := h.FreePrevHeader()
	next := h.FreeNextHeader()

	if prev != nil {
		prev.SetFreeNext(next)
	} else {
		if next != nil {
			l.head = next.Addr()
		} else {
			l.head = 0
		}
	}

	if next != nil {
		next.SetFreePrev(prev)
	} else {
		if prev != nil {
			l.tail = prev.Addr()
		} else {
			l.tail = 0
		}
	}

	h.SetFreePrev(nil)
	h.SetFreeNext(nil)
}

// Clear empties the list without touching any block's links.
func (l *List) Clear() {
	l.head = 0
	l.tail = 0
}

// Validate checks that free-list addresses strictly increase.
func (l *List) Validate() error {
	if l.head == 0 {
		return nil
	}
	cur := block.AtAddr(l.head)
	lastAddr := cur.Addr()
	if !cur.Free {
		return cerrors.Newf("free list head at %#x is not marked free", cur.Addr())
	}
	for {
		next := cur.FreeNextHeader()
		if next == nil {
			break
		}
		if next.Addr() <= lastAddr {
			return cerrors.Newf("free list is not strictly address-ordered at %#x", next.Addr())
		}
		if !next.Free {
			return cerrors.Newf("free list member at %#x is not marked free", next.Addr())
		}
		lastAddr = next.Addr()
		cur = next
	}
	if lastAddr != l.tail {
		return cerrors.Newf("free list tail pointer %#x does not match last member %#x", l.tail, lastAddr)
	}
	return nil
}
