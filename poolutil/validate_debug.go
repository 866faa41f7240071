//go:build debug_heapcore

package poolutil

// DebugMargin is the guard-byte count defined for the debug_heapcore
// build. No allocation path adds it to a request, and CheckCorruption
// does not scan for writes past the end of a payload.
const DebugMargin uintptr = 16

const corruptionMagic uint32 = 0x68656170 // "heap"

// Validatable is implemented by anything DebugValidate can assert against.
type Validatable interface {
	Validate() error
}

// DebugValidate panics if validatable.Validate() returns an error. No-ops
// unless the debug_heapcore build tag is present.
func DebugValidate(validatable Validatable) {
	if err := validatable.Validate(); err != nil {
		panic(err)
	}
}

// DebugAssert panics with msg if cond is false.
func DebugAssert(cond bool, msg string) {
	if !cond {
		panic(ErrMisuse.Error() + ": " + msg)
	}
}
