package poolutil

import cerrors "github.com/cockroachdb/errors"

// MinAlignment is the smallest payload alignment the allocator ever hands
// out, sufficient for SIMD loads on the platforms this module targets.
const MinAlignment = 16

// Number is any integer type AlignUp/AlignDown/CheckPow2 can operate on.
type Number interface {
	~int | ~uint | ~uintptr
}

// CheckPow2 returns ErrInvalidAlignment-wrapping error if number is not a
// power of two.
func CheckPow2[T Number](number T, name string) error {
	if number <= 0 || number&(number-1) != 0 {
		return cerrors.Wrapf(ErrInvalidAlignment, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to the next multiple of alignment. alignment must
// be a power of two.
func AlignUp[T Number](value T, alignment T) T {
	return (value + alignment - 1) &^ (alignment - 1)
}

// AlignDown rounds value down to the previous multiple of alignment.
// alignment must be a power of two.
func AlignDown[T Number](value T, alignment T) T {
	return value &^ (alignment - 1)
}
