package policy

import "unsafe"

//go:generate mockgen -source policy.go -destination ../../internal/mocks/policy.go -package mocks

// Policy is an allocation strategy that an allocator front-end can be built on top of. The front-end
// is responsible for validating requests and keeping statistics; a Policy only has to hand out and
// take back memory from whatever pool it manages.
//
// Implementations must never panic because memory ran out. Failure to satisfy a request is reported
// by returning a nil address.
type Policy interface {
	// Initialize prepares the pool to serve requests. capacity is the number of bytes the consumer
	// intends to use; implementations without a bounded pool may ignore it.
	Initialize(capacity int)
	// Deinitialize tears the pool down. No address handed out by the policy may be used afterwards.
	Deinitialize()

	// Allocate returns a block of at least size bytes whose address is a multiple of alignment,
	// or nil if the request cannot be satisfied.
	Allocate(size int, alignment uint) unsafe.Pointer
	// Callocate behaves like Allocate, and additionally sets every byte of the block to value.
	Callocate(size int, value byte, alignment uint) unsafe.Pointer
	// Reallocate resizes the block at address to size bytes, preserving its contents up to the
	// smaller of the old and new sizes. The returned address may differ from address. When nil is
	// returned, the original block is left untouched.
	Reallocate(address unsafe.Pointer, size int, alignment uint) unsafe.Pointer
	// Deallocate returns the block at address to the pool.
	Deallocate(address unsafe.Pointer)

	// Reset returns the pool to the state it was in immediately after Initialize, without a new
	// call to Initialize.
	Reset()
}
