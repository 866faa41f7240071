package pool

import (
	"reflect"
	"unsafe"

	"github.com/heaplab/heapcore/internal/block"
)

// TypedAllocator is a thin, per-element adapter over the core Pool API,
// the Go-generics equivalent of a C++ templated allocator. It picks
// FixedSize for types with no pointers (Go's nearest equivalent of
// "trivially destructible") small enough to fit a slab class, else
// BestFit. Deep integration with a specific container library's
// internals is out of scope; this is only the thin per-element adapter.
type TypedAllocator[T any] struct {
	pool *Pool
}

// NewTypedAllocator returns a TypedAllocator[T] backed by p. Equality of
// two TypedAllocators is identity of the underlying Pool.
func NewTypedAllocator[T any](p *Pool) TypedAllocator[T] {
	return TypedAllocator[T]{pool: p}
}

// Pool returns the backing Pool, used to compare TypedAllocator identity.
func (a TypedAllocator[T]) Pool() *Pool { return a.pool }

// Alloc allocates room for n contiguous T values and returns a typed
// pointer to the first, or an error.
func (a TypedAllocator[T]) Alloc(n int) (*T, error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	total := elemSize * n

	strategy := block.BestFit
	if total <= 256 && !typeHasPointers[T]() {
		strategy = block.FixedSize
	}

	raw, err := a.pool.Allocate(total, strategy)
	if err != nil {
		return nil, err
	}
	return (*T)(raw), nil
}

// Free releases a value previously returned by Alloc.
func (a TypedAllocator[T]) Free(p *T) {
	a.pool.Deallocate(unsafe.Pointer(p))
}

// typeHasPointers reports whether T's in-memory representation contains
// any Go pointer, the nearest stand-in for "trivially destructible" a
// language without destructors can ask reflect for.
func typeHasPointers[T any]() bool {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return false
	}
	return typeContainsPointer(t)
}

func typeContainsPointer(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer, reflect.String:
		return true
	case reflect.Array:
		return typeContainsPointer(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeContainsPointer(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
