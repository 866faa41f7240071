// Package scope implements BeginScope/EndScope: a stack of cohorts of
// live allocations, so a whole cohort can be freed at once when its
// scope ends, paired with a reverse lookup for O(1) removal of an
// address that frees early, before its scope ends.
//
// The reverse lookup is a github.com/dolthub/swiss map rather than a
// built-in Go map, matching the swiss-table reverse lookup used
// elsewhere in this module (internal/bestfit) instead of mixing map
// implementations.
package scope

import "github.com/dolthub/swiss"

// entry locates an address within Stack's cohorts: which cohort, and
// which position within it (for swap-with-back removal).
type entry struct {
	cohort   int
	position int
}

// Stack is a nestable stack of allocation cohorts.
type Stack struct {
	cohorts [][]uintptr
	lookup  *swiss.Map[uintptr, entry]
}

// New returns an empty Stack.
func New() *Stack {
	return &Stack{lookup: swiss.NewMap[uintptr, entry](64)}
}

// Depth returns the number of currently open scopes.
func (s *Stack) Depth() int { return len(s.cohorts) }

// Begin opens a new, empty cohort on top of the stack.
func (s *Stack) Begin() {
	s.cohorts = append(s.cohorts, nil)
}

// Track records addr as belonging to the innermost open scope. It is a
// no-op if no scope is open.
func (s *Stack) Track(addr uintptr) {
	if len(s.cohorts) == 0 {
		return
	}
	ci := len(s.cohorts) - 1
	s.cohorts[ci] = append(s.cohorts[ci], addr)
	s.lookup.Put(addr, entry{cohort: ci, position: len(s.cohorts[ci]) - 1})
}

// Untrack removes addr from whichever cohort holds it, if any, via
// swap-with-back so every other tracked address's position stays valid
// except the one moved into addr's old slot, which is re-indexed. It
// reports whether addr was tracked.
func (s *Stack) Untrack(addr uintptr) bool {
	e, ok := s.lookup.Get(addr)
	if !ok {
		return false
	}
	cohort := s.cohorts[e.cohort]
	last := len(cohort) - 1
	moved := cohort[last]
	cohort[e.position] = moved
	s.cohorts[e.cohort] = cohort[:last]
	s.lookup.Delete(addr)
	if moved != addr {
		s.lookup.Put(moved, entry{cohort: e.cohort, position: e.position})
	}
	return true
}

// End closes the innermost open scope and returns every address still
// tracked in it, in cohort order (the order Track appended them, except
// that each Untrack moves the cohort's last address into the removed
// slot), for the caller to deallocate.
// It reports false if no scope was open.
func (s *Stack) End() ([]uintptr, bool) {
	if len(s.cohorts) == 0 {
		return nil, false
	}
	last := len(s.cohorts) - 1
	cohort := s.cohorts[last]
	s.cohorts = s.cohorts[:last]
	for _, addr := range cohort {
		s.lookup.Delete(addr)
	}
	return cohort, true
}

// Reset discards every open scope and tracked address without returning
// them, used when the owning Pool is reset wholesale.
func (s *Stack) Reset() {
	s.cohorts = s.cohorts[:0]
	s.lookup = swiss.NewMap[uintptr, entry](64)
}
