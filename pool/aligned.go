package pool

import (
	"unsafe"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/poolutil"
)

// AllocateAligned allocates size+alignment+sizeof(uintptr) bytes,
// computes an aligned pointer inside that payload, stashes the true
// payload address in the machine word immediately before it, and
// returns the aligned pointer. alignment must be a power of two at
// least poolutil.MinAlignment.
func (p *Pool) AllocateAligned(size int, alignment uintptr) (unsafe.Pointer, error) {
	if err := poolutil.CheckPow2(alignment, "alignment"); err != nil {
		return nil, err
	}
	if alignment < poolutil.MinAlignment {
		return nil, poolutil.ErrInvalidAlignment
	}
	if size < 0 {
		return nil, poolutil.ErrTooLarge
	}

	request := uintptr(size) + alignment + unsafe.Sizeof(uintptr(0))
	if request < uintptr(size) {
		return nil, poolutil.ErrTooLarge
	}

	raw, err := p.Allocate(int(request), block.BestFit)
	if err != nil {
		return nil, err
	}

	base := uintptr(raw)
	slotEnd := base + unsafe.Sizeof(uintptr(0))
	aligned := poolutil.AlignUp(slotEnd, alignment)
	*(*uintptr)(unsafe.Pointer(aligned - unsafe.Sizeof(uintptr(0)))) = base
	return unsafe.Pointer(aligned), nil
}

// DeallocateAligned recovers the underlying payload stashed by
// AllocateAligned and forwards to Deallocate.
func (p *Pool) DeallocateAligned(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	addr := uintptr(ptr)
	orig := *(*uintptr)(unsafe.Pointer(addr - unsafe.Sizeof(uintptr(0))))
	p.Deallocate(unsafe.Pointer(orig))
}
