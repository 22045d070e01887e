package allocator

import (
	"math"
	"unsafe"

	"github.com/forge-engine/memory/memutils"
	"github.com/forge-engine/memory/memutils/policy"
)

func layoutOf[T any]() (size int, alignment uint) {
	var zero T
	return int(unsafe.Sizeof(zero)), uint(unsafe.Alignof(zero))
}

// ConstructObject allocates storage for a single T from a and constructs it with the lifecycle L.
// It returns nil if the storage could not be allocated, including when T has a size of 0.
//
// The garbage collector does not scan memory handed out by policies such as policy.HeapPolicy, so T
// must not hold Go pointers (pointers, strings, slices, maps, channels, funcs or interfaces) even when
// L is a memutils.Managed lifecycle. Debug builds only check this for memutils.Plain.
func ConstructObject[T any, L memutils.Lifecycle[T], P policy.Policy](a *Allocator[P], args ...any) *T {
	size, alignment := layoutOf[T]()

	address := a.Allocate(size, alignment)
	if address == nil {
		return nil
	}

	object := (*T)(address)
	memutils.ConstructObject[T, L](object, args...)
	return object
}

// ConstructArray allocates contiguous storage for count values of T from a and constructs each of
// them with the lifecycle L, passing args to every element. It returns nil if count is not positive
// or the storage could not be allocated.
//
// T is subject to the same restriction on Go pointers as in ConstructObject.
func ConstructArray[T any, L memutils.Lifecycle[T], P policy.Policy](a *Allocator[P], count int, args ...any) []T {
	size, alignment := layoutOf[T]()
	if count <= 0 || size == 0 || count > math.MaxInt/size {
		return nil
	}

	address := a.Allocate(size*count, alignment)
	if address == nil {
		return nil
	}

	objects := unsafe.Slice((*T)(address), count)
	memutils.ConstructArray[T, L](objects, args...)
	return objects
}

// DestructObject ends the life of object with the lifecycle L and returns its storage to a.
// object must have been created by ConstructObject on the same allocator. A nil object is ignored.
func DestructObject[T any, L memutils.Lifecycle[T], P policy.Policy](a *Allocator[P], object *T) {
	if object == nil {
		return
	}

	memutils.DestructObject[T, L](object)
	a.Deallocate(unsafe.Pointer(object))
}

// DestructArray ends the life of every element of objects with the lifecycle L and returns the
// backing storage to a. objects must be a slice returned by ConstructArray on the same allocator.
func DestructArray[T any, L memutils.Lifecycle[T], P policy.Policy](a *Allocator[P], objects []T) {
	address := unsafe.Pointer(unsafe.SliceData(objects))
	if address == nil {
		return
	}

	memutils.DestructArray[T, L](objects)
	a.Deallocate(address)
}
