//go:build !debug_heapcore

package pool

import "unsafe"

// debugAssertOwned no-ops outside the debug_heapcore build.
func (p *Pool) debugAssertOwned(ptr unsafe.Pointer) {}
