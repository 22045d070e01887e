package memutils

import (
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
)

// Lifecycle selects how values of type T are constructed, destructed and relocated inside raw memory.
// Implementations are stateless marker types passed as a type argument, so the choice between
// the plain-data and managed paths is made at compile time. Plain and Managed are the two
// implementations provided by memutils.
type Lifecycle[T any] interface {
	ConstructObject(object *T, args ...any)
	ConstructArray(objects []T, args ...any)
	DestructObject(object *T)
	DestructArray(objects []T)
	MoveObject(destination, source *T)
	MoveArray(destination, source []T)
	CopyObject(destination, source *T)
	CopyArray(destination, source []T)
	MoveConstructObject(destination, source *T)
	MoveConstructArray(destination, source []T)
	CopyConstructObject(destination, source *T)
	CopyConstructArray(destination, source []T)
}

// ManagedObject is satisfied by *T when T carries its own lifecycle hooks. Construct, MoveConstruct
// and CopyConstruct are called on uninitialized memory; MoveAssign and CopyAssign are called on a
// live object; Destruct ends the object's life.
type ManagedObject[T any] interface {
	*T
	Construct(args ...any)
	Destruct()
	MoveAssign(source *T)
	CopyAssign(source *T)
	MoveConstruct(source *T)
	CopyConstruct(source *T)
}

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func objectAddress[T any](object *T, operation, name string) unsafe.Pointer {
	address := unsafe.Pointer(object)
	requireAddress(address, operation, name)
	return address
}

func arrayAddress[T any](objects []T, operation, name string) unsafe.Pointer {
	address := unsafe.Pointer(unsafe.SliceData(objects))
	requireAddress(address, operation, name)
	return address
}

func requireSourceLength(destinationLen, sourceLen int, operation string) {
	if sourceLen < destinationLen {
		panic(cerrors.Wrapf(InvalidArgumentError, "%s: source holds %d elements but destination holds %d", operation, sourceLen, destinationLen))
	}
}

// Plain is the Lifecycle for plain-data types: values without pointers whose construction,
// destruction and assignment have no side effects beyond their bytes. Construction leaves memory
// untouched, destruction zeroes it, and every move or copy is a raw byte operation.
type Plain[T any] struct{}

var _ Lifecycle[int] = Plain[int]{}

func (Plain[T]) ConstructObject(object *T, args ...any) {
	DebugCheckPlainData[T]()
}

func (Plain[T]) ConstructArray(objects []T, args ...any) {
	DebugCheckPlainData[T]()
}

func (Plain[T]) DestructObject(object *T) {
	DebugCheckPlainData[T]()
	MemoryZero(objectAddress(object, "DestructObject", "object"), sizeOf[T]())
}

func (Plain[T]) DestructArray(objects []T) {
	DebugCheckPlainData[T]()
	if len(objects) == 0 {
		return
	}
	MemoryZero(arrayAddress(objects, "DestructArray", "objects"), sizeOf[T]()*len(objects))
}

func (Plain[T]) MoveObject(destination, source *T) {
	DebugCheckPlainData[T]()
	MemoryMove(objectAddress(destination, "MoveObject", "destination"), objectAddress(source, "MoveObject", "source"), sizeOf[T]())
}

func (Plain[T]) MoveArray(destination, source []T) {
	DebugCheckPlainData[T]()
	requireSourceLength(len(destination), len(source), "MoveArray")
	if len(destination) == 0 {
		return
	}
	MemoryMove(arrayAddress(destination, "MoveArray", "destination"), arrayAddress(source, "MoveArray", "source"), sizeOf[T]()*len(destination))
}

func (Plain[T]) CopyObject(destination, source *T) {
	DebugCheckPlainData[T]()
	MemoryCopy(objectAddress(destination, "CopyObject", "destination"), objectAddress(source, "CopyObject", "source"), sizeOf[T]())
}

func (Plain[T]) CopyArray(destination, source []T) {
	DebugCheckPlainData[T]()
	requireSourceLength(len(destination), len(source), "CopyArray")
	if len(destination) == 0 {
		return
	}
	MemoryCopy(arrayAddress(destination, "CopyArray", "destination"), arrayAddress(source, "CopyArray", "source"), sizeOf[T]()*len(destination))
}

// MoveConstructObject copies the bytes of source into uninitialized memory. The source is left as it
// was: a plain-data value has nothing to give up.
func (Plain[T]) MoveConstructObject(destination, source *T) {
	DebugCheckPlainData[T]()
	MemoryCopy(objectAddress(destination, "MoveConstructObject", "destination"), objectAddress(source, "MoveConstructObject", "source"), sizeOf[T]())
}

func (Plain[T]) MoveConstructArray(destination, source []T) {
	DebugCheckPlainData[T]()
	requireSourceLength(len(destination), len(source), "MoveConstructArray")
	if len(destination) == 0 {
		return
	}
	MemoryCopy(arrayAddress(destination, "MoveConstructArray", "destination"), arrayAddress(source, "MoveConstructArray", "source"), sizeOf[T]()*len(destination))
}

func (Plain[T]) CopyConstructObject(destination, source *T) {
	DebugCheckPlainData[T]()
	MemoryCopy(objectAddress(destination, "CopyConstructObject", "destination"), objectAddress(source, "CopyConstructObject", "source"), sizeOf[T]())
}

func (Plain[T]) CopyConstructArray(destination, source []T) {
	DebugCheckPlainData[T]()
	requireSourceLength(len(destination), len(source), "CopyConstructArray")
	if len(destination) == 0 {
		return
	}
	MemoryCopy(arrayAddress(destination, "CopyConstructArray", "destination"), arrayAddress(source, "CopyConstructArray", "source"), sizeOf[T]()*len(destination))
}

// Managed is the Lifecycle for types that implement ManagedObject. Every operation is forwarded
// to the corresponding hook, once per element.
type Managed[T any, P ManagedObject[T]] struct{}

func (Managed[T, P]) ConstructObject(object *T, args ...any) {
	objectAddress(object, "ConstructObject", "object")
	P(object).Construct(args...)
}

func (Managed[T, P]) ConstructArray(objects []T, args ...any) {
	for i := range objects {
		P(&objects[i]).Construct(args...)
	}
}

func (Managed[T, P]) DestructObject(object *T) {
	objectAddress(object, "DestructObject", "object")
	P(object).Destruct()
}

func (Managed[T, P]) DestructArray(objects []T) {
	for i := range objects {
		P(&objects[i]).Destruct()
	}
}

func (Managed[T, P]) MoveObject(destination, source *T) {
	objectAddress(destination, "MoveObject", "destination")
	objectAddress(source, "MoveObject", "source")
	P(destination).MoveAssign(source)
}

func (Managed[T, P]) MoveArray(destination, source []T) {
	requireSourceLength(len(destination), len(source), "MoveArray")
	for i := range destination {
		P(&destination[i]).MoveAssign(&source[i])
	}
}

func (Managed[T, P]) CopyObject(destination, source *T) {
	objectAddress(destination, "CopyObject", "destination")
	objectAddress(source, "CopyObject", "source")
	P(destination).CopyAssign(source)
}

func (Managed[T, P]) CopyArray(destination, source []T) {
	requireSourceLength(len(destination), len(source), "CopyArray")
	for i := range destination {
		P(&destination[i]).CopyAssign(&source[i])
	}
}

func (Managed[T, P]) MoveConstructObject(destination, source *T) {
	objectAddress(destination, "MoveConstructObject", "destination")
	objectAddress(source, "MoveConstructObject", "source")
	P(destination).MoveConstruct(source)
}

func (Managed[T, P]) MoveConstructArray(destination, source []T) {
	requireSourceLength(len(destination), len(source), "MoveConstructArray")
	for i := range destination {
		P(&destination[i]).MoveConstruct(&source[i])
	}
}

func (Managed[T, P]) CopyConstructObject(destination, source *T) {
	objectAddress(destination, "CopyConstructObject", "destination")
	objectAddress(source, "CopyConstructObject", "source")
	P(destination).CopyConstruct(source)
}

func (Managed[T, P]) CopyConstructArray(destination, source []T) {
	requireSourceLength(len(destination), len(source), "CopyConstructArray")
	for i := range destination {
		P(&destination[i]).CopyConstruct(&source[i])
	}
}

// ConstructObject begins the life of the object at the provided address
func ConstructObject[T any, L Lifecycle[T]](object *T, args ...any) {
	var lifecycle L
	lifecycle.ConstructObject(object, args...)
}

// ConstructArray begins the life of every object in the provided slice, passing the same args to each
func ConstructArray[T any, L Lifecycle[T]](objects []T, args ...any) {
	var lifecycle L
	lifecycle.ConstructArray(objects, args...)
}

// DestructObject ends the life of the object at the provided address
func DestructObject[T any, L Lifecycle[T]](object *T) {
	var lifecycle L
	lifecycle.DestructObject(object)
}

// DestructArray ends the life of every object in the provided slice
func DestructArray[T any, L Lifecycle[T]](objects []T) {
	var lifecycle L
	lifecycle.DestructArray(objects)
}

// MoveObject move-assigns source into the live object at destination
func MoveObject[T any, L Lifecycle[T]](destination, source *T) {
	var lifecycle L
	lifecycle.MoveObject(destination, source)
}

// MoveArray move-assigns the first len(destination) elements of source into destination
func MoveArray[T any, L Lifecycle[T]](destination, source []T) {
	var lifecycle L
	lifecycle.MoveArray(destination, source)
}

// CopyObject copy-assigns source into the live object at destination
func CopyObject[T any, L Lifecycle[T]](destination, source *T) {
	var lifecycle L
	lifecycle.CopyObject(destination, source)
}

// CopyArray copy-assigns the first len(destination) elements of source into destination
func CopyArray[T any, L Lifecycle[T]](destination, source []T) {
	var lifecycle L
	lifecycle.CopyArray(destination, source)
}

// MoveConstructObject constructs a new object in uninitialized memory at destination by moving source
func MoveConstructObject[T any, L Lifecycle[T]](destination, source *T) {
	var lifecycle L
	lifecycle.MoveConstructObject(destination, source)
}

// MoveConstructArray move-constructs the first len(destination) elements of source into uninitialized destination memory
func MoveConstructArray[T any, L Lifecycle[T]](destination, source []T) {
	var lifecycle L
	lifecycle.MoveConstructArray(destination, source)
}

// CopyConstructObject constructs a new object in uninitialized memory at destination by copying source
func CopyConstructObject[T any, L Lifecycle[T]](destination, source *T) {
	var lifecycle L
	lifecycle.CopyConstructObject(destination, source)
}

// CopyConstructArray copy-constructs the first len(destination) elements of source into uninitialized destination memory
func CopyConstructArray[T any, L Lifecycle[T]](destination, source []T) {
	var lifecycle L
	lifecycle.CopyConstructArray(destination, source)
}
