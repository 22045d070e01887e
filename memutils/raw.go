package memutils

import (
	"bytes"
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
)

func requireAddress(address unsafe.Pointer, operation, name string) {
	if address == nil {
		panic(cerrors.Wrapf(NilPointerError, "%s: %s is nil", operation, name))
	}
}

func requireSize(size int, operation string) {
	if size < 0 {
		panic(cerrors.Wrapf(NegativeSizeError, "%s: size is %d", operation, size))
	}
}

func byteView(address unsafe.Pointer, size int) []byte {
	return unsafe.Slice((*byte)(address), size)
}

// MemoryZero sets size bytes at destination to 0. It panics with NilPointerError if destination is nil.
func MemoryZero(destination unsafe.Pointer, size int) {
	requireAddress(destination, "MemoryZero", "destination")
	requireSize(size, "MemoryZero")

	clear(byteView(destination, size))
}

// MemorySet sets size bytes at destination to value. It panics with NilPointerError if destination is nil.
func MemorySet(destination unsafe.Pointer, value byte, size int) {
	requireAddress(destination, "MemorySet", "destination")
	requireSize(size, "MemorySet")

	data := byteView(destination, size)
	if len(data) == 0 {
		return
	}

	data[0] = value
	for filled := 1; filled < len(data); filled *= 2 {
		copy(data[filled:], data[:filled])
	}
}

// MemoryCopy copies size bytes from source to destination. Overlapping regions are permitted.
// It panics with NilPointerError if either address is nil.
func MemoryCopy(destination, source unsafe.Pointer, size int) {
	requireAddress(destination, "MemoryCopy", "destination")
	requireAddress(source, "MemoryCopy", "source")
	requireSize(size, "MemoryCopy")

	copy(byteView(destination, size), byteView(source, size))
}

// MemoryMove copies size bytes from source to destination and then clears the source region. This is a
// destructive move, not a swap: when the regions overlap, only the source bytes that were not
// overwritten by the destination are cleared. It panics with NilPointerError if either address is nil.
func MemoryMove(destination, source unsafe.Pointer, size int) {
	requireAddress(destination, "MemoryMove", "destination")
	requireAddress(source, "MemoryMove", "source")
	requireSize(size, "MemoryMove")

	src := byteView(source, size)
	copy(byteView(destination, size), src)

	destStart := uintptr(destination)
	destEnd := destStart + uintptr(size)
	srcStart := uintptr(source)
	srcEnd := srcStart + uintptr(size)

	switch {
	case srcEnd <= destStart || srcStart >= destEnd:
		clear(src)
	case srcStart < destStart:
		clear(src[:destStart-srcStart])
	default:
		clear(src[destEnd-srcStart:])
	}
}

// MemoryCompare reports whether size bytes at self and other are identical. It panics with
// NilPointerError if either address is nil.
func MemoryCompare(self, other unsafe.Pointer, size int) bool {
	requireAddress(self, "MemoryCompare", "self")
	requireAddress(other, "MemoryCompare", "other")
	requireSize(size, "MemoryCompare")

	return bytes.Equal(byteView(self, size), byteView(other, size))
}

// MemoryDistance returns the number of bytes between start and end. The result is the absolute
// difference, so argument order does not matter and the subtraction never wraps. Neither address
// is dereferenced.
func MemoryDistance(start, end unsafe.Pointer) uintptr {
	startAddress := uintptr(start)
	endAddress := uintptr(end)

	if endAddress >= startAddress {
		return endAddress - startAddress
	}
	return startAddress - endAddress
}
