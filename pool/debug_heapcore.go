//go:build debug_heapcore

package pool

import (
	"unsafe"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/poolutil"
)

// debugAssertOwned asserts that ptr's header address falls within a
// chunk or slab this Pool owns. Caller holds p.mu; only compiled into
// the debug_heapcore build since, unlike the cheap field reads
// poolutil.DebugAssert normally guards, this is a linear scan over
// every chunk and slab and must not run on the hot path.
func (p *Pool) debugAssertOwned(ptr unsafe.Pointer) {
	addr := uintptr(ptr) - block.HeaderSize
	poolutil.DebugAssert(p.ownsLocked(addr), "foreign pointer")
}
