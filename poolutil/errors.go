// Package poolutil holds small, dependency-light helpers shared by the
// allocator's internal packages: sentinel errors, alignment math, and the
// debug-only corruption/assertion hooks.
package poolutil

import "github.com/pkg/errors"

// ErrOutOfMemory is returned when the backing ChunkSource refuses to hand
// over a new chunk and no existing free block can satisfy the request.
var ErrOutOfMemory = errors.New("heapcore: out of memory")

// ErrTooLarge is returned when size+alignment rounding overflows a uintptr.
var ErrTooLarge = errors.New("heapcore: requested size is too large")

// ErrInvalidAlignment is returned when an alignment is not a power of two,
// or is below the minimum supported alignment.
var ErrInvalidAlignment = errors.New("heapcore: alignment must be a power of two and at least the minimum alignment")

// ErrMisuse is raised by debug builds when a caller double-frees, frees a
// foreign pointer, or otherwise violates the allocator's contract. Release
// builds never return it; the check compiles out entirely.
var ErrMisuse = errors.New("heapcore: misuse detected")
