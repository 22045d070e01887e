package memutils

import (
	cerrors "github.com/cockroachdb/errors"
)

// DefaultAlignment is the alignment used for raw requests that do not care about alignment
const DefaultAlignment uint = 4

type Number interface {
	~int | ~uint | ~uintptr
}

func CheckPow2[T Number](number T, name string) error {
	if number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// ValidateAlignment returns an error unless alignment is a power of two greater than or equal to 1.
// CheckPow2 alone accepts 0, which is never a usable alignment.
func ValidateAlignment(alignment uint) error {
	if alignment < 1 {
		return cerrors.WithStack(ZeroAlignmentError)
	}
	return CheckPow2(alignment, "alignment")
}

func AlignUp(value int, alignment uint) int {
	DebugCheckPow2(alignment, "alignment")
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

func AlignDown(value int, alignment uint) int {
	DebugCheckPow2(alignment, "alignment")
	return value & int(^(alignment - 1))
}

// AlignPointerUp returns the first address at or after address that is a multiple of alignment.
// alignment must be a power of two.
func AlignPointerUp(address uintptr, alignment uint) uintptr {
	DebugCheckPow2(alignment, "alignment")
	return (address + uintptr(alignment) - 1) &^ (uintptr(alignment) - 1)
}

// IsAligned reports whether address is a multiple of alignment. alignment must be a power of two.
func IsAligned(address uintptr, alignment uint) bool {
	return address&(uintptr(alignment)-1) == 0
}
