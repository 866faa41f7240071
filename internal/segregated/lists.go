// Package segregated implements fixed size-class LIFO free lists: a
// small fixed array of singly linked chains, one per size class,
// refilled by splitting a larger BestFit block when a class runs dry.
// A flat array suffices since the class count here is fixed and small,
// rather than computed from a bit-log scheme.
package segregated

import "github.com/heaplab/heapcore/internal/block"

// DefaultClassSizes are the default payload size classes, smallest to
// largest.
var DefaultClassSizes = [8]uintptr{32, 64, 128, 256, 512, 1024, 2048, 4096}

// Lists holds one LIFO free chain per configured class size.
type Lists struct {
	classSizes [8]uintptr
	heads      [8]uintptr
}

// New returns an empty Lists for the given class sizes, smallest to
// largest.
func New(classSizes [8]uintptr) *Lists {
	return &Lists{classSizes: classSizes}
}

// ClassSizes returns the class sizes this Lists was configured with.
func (l *Lists) ClassSizes() [8]uintptr { return l.classSizes }

// ClassIndex returns the index of the smallest class able to satisfy
// size, and false if size exceeds the largest class.
func (l *Lists) ClassIndex(size uintptr) (int, bool) {
	for i, s := range l.classSizes {
		if size <= s {
			return i, true
		}
	}
	return 0, false
}

// Push returns h to the front of its class's chain. h's Size must equal
// classSizes[class] exactly: segregated blocks are never split smaller
// than their class, only ever refilled at class granularity.
func (l *Lists) Push(class int, h *block.Header) {
	h.Free = true
	h.SetFreeNext(l.head(class))
	l.heads[class] = h.Addr()
}

// Pop removes and returns the front of class's chain, or nil if empty.
func (l *Lists) Pop(class int) *block.Header {
	h := l.head(class)
	if h == nil {
		return nil
	}
	l.heads[class] = h.FreeNext
	h.SetFreeNext(nil)
	return h
}

// Empty reports whether class's chain currently holds no blocks.
func (l *Lists) Empty(class int) bool {
	return l.heads[class] == 0
}

func (l *Lists) head(class int) *block.Header {
	if l.heads[class] == 0 {
		return nil
	}
	return block.AtAddr(l.heads[class])
}

// Clear empties every class chain without touching any block's links.
func (l *Lists) Clear() {
	for i := range l.heads {
		l.heads[i] = 0
	}
}

// Validate walks every class chain checking that each member is free,
// tagged Segregated, and sized exactly for its class.
func (l *Lists) Validate() error {
	for class := range l.classSizes {
		want := l.classSizes[class]
		for cur := l.head(class); cur != nil; cur = cur.FreeNextHeader() {
			if !cur.Free {
				return errf("segregated class %d member at %#x is not marked free", class, cur.Addr())
			}
			if cur.Strategy != block.Segregated {
				return errf("segregated class %d member at %#x is not Segregated-tagged", class, cur.Addr())
			}
			if cur.Size != want {
				return errf("segregated class %d member at %#x has size %d, want %d", class, cur.Addr(), cur.Size, want)
			}
		}
	}
	return nil
}
