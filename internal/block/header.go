package block

import "unsafe"

// Header precedes every payload. Its fields are scalar only (no Go
// pointers) so the struct can live directly inside a Chunk's backing
// []byte via unsafe.Pointer: the GC never needs to scan it, and
// header == payload - HeaderSize is exact pointer arithmetic, so the
// address of a payload uniquely determines its header.
//
// Two independent link sets are kept, for physical versus free-list
// adjacency:
//
//   - PhysPrev/ChunkEnd describe a block's physical neighbors within its
//     owning chunk (every block, free or not). The next physical
//     neighbor's address is derived arithmetically rather than stored,
//     since it always equals Addr()+HeaderSize+Size.
//   - FreePrev/FreeNext are the address-ordered doubly linked free-list
//     links used only while a block is free under BestFit/PoolBased; for
//     Segregated/FixedSize blocks only FreeNext is used, as a singly
//     linked LIFO chain.
type Header struct {
	Size     uintptr
	ChunkEnd uintptr
	PhysPrev uintptr
	FreePrev uintptr
	FreeNext uintptr
	Strategy Strategy
	Free     bool
	_        [6]byte // pad to a 16-byte-aligned struct size
}

// HeaderSize is the constant number of bytes every header occupies.
var HeaderSize = unsafe.Sizeof(Header{})

// AtAddr reinterprets the memory at addr as a *Header. addr must point at
// the start of a live header inside a Chunk this package allocated.
func AtAddr(addr uintptr) *Header {
	return (*Header)(unsafe.Pointer(addr)) //nolint:govet // intentional: offset-based block tracking, see DESIGN.md
}

// Addr returns the address of h itself, suitable for storing into a
// neighboring header's link fields.
func (h *Header) Addr() uintptr {
	return uintptr(unsafe.Pointer(h))
}

// Payload returns the address of the byte immediately following h, i.e.
// the pointer handed back to callers of Allocate.
func (h *Header) Payload() unsafe.Pointer {
	return unsafe.Pointer(h.Addr() + HeaderSize)
}

// FromPayload recovers the Header preceding a payload pointer previously
// returned by Allocate.
func FromPayload(payload unsafe.Pointer) *Header {
	return AtAddr(uintptr(payload) - HeaderSize)
}

// Init writes a fresh header at addr describing a free block of the given
// payload size and strategy, within a chunk ending at chunkEnd, physically
// preceded by physPrev (0 if addr is the first block in its chunk). It
// returns the header.
func Init(addr, size, chunkEnd, physPrev uintptr, strategy Strategy) *Header {
	h := AtAddr(addr)
	h.Size = size
	h.ChunkEnd = chunkEnd
	h.PhysPrev = physPrev
	h.FreePrev = 0
	h.FreeNext = 0
	h.Strategy = strategy
	h.Free = true
	return h
}

// NextPhysicalAddr is the address immediately following this block's
// payload, i.e. where its physical successor's header would start.
func (h *Header) NextPhysicalAddr() uintptr {
	return h.Addr() + HeaderSize + h.Size
}

// HasNextPhysical reports whether a physical successor exists within the
// owning chunk.
func (h *Header) HasNextPhysical() bool {
	return h.NextPhysicalAddr() < h.ChunkEnd
}

// NextPhysical returns h's physical successor, or nil if h is the last
// block in its chunk.
func (h *Header) NextPhysical() *Header {
	if !h.HasNextPhysical() {
		return nil
	}
	return AtAddr(h.NextPhysicalAddr())
}

// PrevPhysical returns h's physical predecessor, or nil if h is the first
// block in its chunk.
func (h *Header) PrevPhysical() *Header {
	if h.PhysPrev == 0 {
		return nil
	}
	return AtAddr(h.PhysPrev)
}

// FreePrevHeader and FreeNextHeader resolve h's free-list links, returning
// nil in place of a zero address.
func (h *Header) FreePrevHeader() *Header {
	if h.FreePrev == 0 {
		return nil
	}
	return AtAddr(h.FreePrev)
}

func (h *Header) FreeNextHeader() *Header {
	if h.FreeNext == 0 {
		return nil
	}
	return AtAddr(h.FreeNext)
}

// SetFreePrev and SetFreeNext set a free-list link to point at other, or
// clear it when other is nil.
func (h *Header) SetFreePrev(other *Header) {
	if other == nil {
		h.FreePrev = 0
		return
	}
	h.FreePrev = other.Addr()
}

func (h *Header) SetFreeNext(other *Header) {
	if other == nil {
		h.FreeNext = 0
		return
	}
	h.FreeNext = other.Addr()
}
