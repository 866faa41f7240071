package pool

import "unsafe"

// BeginScope pushes a new empty cohort onto the scope stack. Every
// Allocate that completes while a scope is open joins the innermost
// cohort.
func (p *Pool) BeginScope() {
	unlock := p.lock()
	defer unlock()
	p.scopes.Begin()
}

// EndScope pops the innermost cohort and deallocates every member
// still tracked in it, in cohort order: the order Allocate appended them,
// except that each early Deallocate of a tracked pointer moves the
// cohort's last member into the freed slot. It reports false if no scope
// was open.
func (p *Pool) EndScope() bool {
	unlock := p.lock()
	defer unlock()

	payloads, ok := p.scopes.End()
	if !ok {
		return false
	}
	for _, addr := range payloads {
		p.deallocateLocked(unsafe.Pointer(addr))
	}
	return true
}

// trackScope registers addr with the innermost open cohort, if any. It
// takes the pool lock itself since Allocate calls it after releasing
// whichever strategy-specific lock it held.
func (p *Pool) trackScope(addr uintptr) {
	unlock := p.lock()
	defer unlock()
	p.scopes.Track(addr)
}

// untrackScopeLocked removes addr from its cohort if it was scope-tracked,
// supporting direct Deallocate on a tracked pointer before its scope
// ends. Caller holds p.mu.
func (p *Pool) untrackScopeLocked(addr uintptr) {
	p.scopes.Untrack(addr)
}
