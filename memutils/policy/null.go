package policy

import "unsafe"

// NullPolicy is a Policy that refuses every request. It allows a consumer to remain wired to an
// allocator while dynamic allocation is disabled.
type NullPolicy struct{}

var _ Policy = NullPolicy{}

func (NullPolicy) Initialize(capacity int) {}
func (NullPolicy) Deinitialize()           {}

func (NullPolicy) Allocate(size int, alignment uint) unsafe.Pointer {
	return nil
}

func (NullPolicy) Callocate(size int, value byte, alignment uint) unsafe.Pointer {
	return nil
}

func (NullPolicy) Reallocate(address unsafe.Pointer, size int, alignment uint) unsafe.Pointer {
	return nil
}

func (NullPolicy) Deallocate(address unsafe.Pointer) {}
func (NullPolicy) Reset()                            {}
