package allocator

import (
	"context"
	"math"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/forge-engine/memory/memutils"
	"github.com/forge-engine/memory/memutils/policy"
	"golang.org/x/exp/slog"
)

const initialAllocationTableSize = 64

type lifecycleState uint32

const (
	stateUninitialized lifecycleState = iota
	stateInitialized
	stateDeinitialized
)

var lifecycleStateMapping = map[lifecycleState]string{
	stateUninitialized: "Uninitialized",
	stateInitialized:   "Initialized",
	stateDeinitialized: "Deinitialized",
}

func (s lifecycleState) String() string {
	return lifecycleStateMapping[s]
}

// Allocator is a memory allocator front-end built on top of an allocation Policy. It validates
// requests, tracks the size of every live allocation, and keeps usage statistics. The Policy is
// selected at compile time, so swapping strategies requires no change to consumers beyond the
// type argument.
//
// Allocator performs no internal synchronization. Consumers sharing one across goroutines must
// provide their own.
type Allocator[P policy.Policy] struct {
	logger *slog.Logger
	name   string
	state  lifecycleState

	capacity  int
	usedSpace float32

	stats       memutils.AllocationStatistics
	allocations *swiss.Map[uintptr, int]
	// grantedBytes is the sum of every size granted since the last Initialize or Reset
	grantedBytes int

	policy P
}

// Policy returns the allocation strategy this allocator forwards requests to
func (a *Allocator[P]) Policy() P {
	return a.policy
}

// Name returns the name provided in CreateOptions
func (a *Allocator[P]) Name() string {
	return a.name
}

// IsInitialized returns true between a successful call to Initialize and the call to Deinitialize
func (a *Allocator[P]) IsInitialized() bool {
	return a.state == stateInitialized
}

// Capacity returns the capacity in bytes provided to Initialize
func (a *Allocator[P]) Capacity() int {
	return a.capacity
}

// UsedSpace returns the number of live bytes as a percentage of Capacity
func (a *Allocator[P]) UsedSpace() float32 {
	return a.usedSpace
}

// PeakSize returns the largest single allocation granted since the last Initialize or Reset
func (a *Allocator[P]) PeakSize() int {
	return a.stats.PeakSize
}

// TotalSize returns the number of bytes currently live
func (a *Allocator[P]) TotalSize() int {
	return a.stats.TotalSize
}

// AllocationCount returns the number of allocate, callocate and reallocate requests granted since
// the last Initialize or Reset
func (a *Allocator[P]) AllocationCount() int {
	return a.stats.AllocationCount
}

// DeallocationCount returns the number of deallocate requests since the last Initialize or Reset
func (a *Allocator[P]) DeallocationCount() int {
	return a.stats.DeallocationCount
}

// Statistics returns a copy of the allocator's current statistics
func (a *Allocator[P]) Statistics() memutils.AllocationStatistics {
	return a.stats
}

// LiveAllocationCount returns the number of allocations that have not been deallocated
func (a *Allocator[P]) LiveAllocationCount() int {
	if a.allocations == nil {
		return 0
	}
	return a.allocations.Count()
}

// AllocatedSize returns the size of the live allocation at address, or 0 if address is not a live
// allocation of this allocator
func (a *Allocator[P]) AllocatedSize(address unsafe.Pointer) int {
	if address == nil || a.allocations == nil {
		return 0
	}

	size, _ := a.allocations.Get(uintptr(address))
	return size
}

func (a *Allocator[P]) clearTracking() {
	a.stats.Clear()
	a.usedSpace = 0
	a.grantedBytes = 0
	a.allocations = swiss.NewMap[uintptr, int](initialAllocationTableSize)
}

func (a *Allocator[P]) updateUsedSpace() {
	a.usedSpace = a.stats.UsedSpace(a.capacity)
}

// Initialize prepares the allocator and its policy to serve requests. capacity is the number of
// bytes used as the reference for UsedSpace, and must be positive. Initialize may only be called
// once.
func (a *Allocator[P]) Initialize(capacity int) error {
	if a.state != stateUninitialized {
		return errors.Newf("attempted to initialize an allocator in state %s", a.state.String())
	}

	if capacity <= 0 {
		return errors.Newf("provided capacity %d was not a positive integer", capacity)
	}

	a.capacity = capacity
	a.clearTracking()
	a.policy.Initialize(capacity)
	a.state = stateInitialized

	a.logger.Debug("Allocator::Initialize", slog.String("Name", a.name), slog.Int("Capacity", capacity))
	return nil
}

// Deinitialize tears down the allocator and its policy. Allocations that are still live are
// reported to the logger as unreleased memory. The allocator cannot be used afterwards.
func (a *Allocator[P]) Deinitialize() error {
	if a.state != stateInitialized {
		return errors.Newf("attempted to deinitialize an allocator in state %s", a.state.String())
	}

	a.logger.Debug("Allocator::Deinitialize", slog.String("Name", a.name), slog.Int("LiveAllocations", a.allocations.Count()))
	a.visitLiveAllocations(a.logUnreleasedMemory)

	a.stats.Clear()
	a.usedSpace = 0
	a.grantedBytes = 0
	a.capacity = 0
	a.allocations = nil
	a.state = stateDeinitialized

	a.policy.Deinitialize()
	return nil
}

// Reset clears the allocator's statistics and instructs the policy to reclaim its entire pool.
// Capacity is unchanged. Addresses handed out before Reset are no longer tracked.
func (a *Allocator[P]) Reset() error {
	if a.state != stateInitialized {
		return errors.Newf("attempted to reset an allocator in state %s", a.state.String())
	}

	liveAllocations := a.allocations.Count()
	if liveAllocations > 0 {
		a.logger.LogAttrs(context.Background(), slog.LevelWarn, "Allocator::Reset dropped live allocations",
			slog.String("Name", a.name),
			slog.Int("Count", liveAllocations),
			slog.Int("Size", a.stats.TotalSize))
	}

	a.clearTracking()
	a.policy.Reset()

	a.logger.Debug("Allocator::Reset", slog.String("Name", a.name))
	return nil
}

func (a *Allocator[P]) acceptsRequest(size int, alignment uint) bool {
	if a.state != stateInitialized || size <= 0 || size > math.MaxInt-memutils.DebugMargin {
		return false
	}

	return memutils.ValidateAlignment(alignment) == nil
}

func (a *Allocator[P]) recordAllocation(address unsafe.Pointer, size int) {
	memutils.WriteMagicValue(address, size)

	a.allocations.Put(uintptr(address), size)
	a.stats.AddAllocation(size)
	a.grantedBytes += size
	a.updateUsedSpace()

	memutils.DebugValidate(a)
}

// Allocate requests size bytes aligned to alignment from the policy. It returns nil, leaving the
// statistics untouched, if the allocator is not initialized, size is not positive, alignment is not
// a power of two, or the policy could not satisfy the request.
func (a *Allocator[P]) Allocate(size int, alignment uint) unsafe.Pointer {
	if !a.acceptsRequest(size, alignment) {
		return nil
	}

	address := a.policy.Allocate(size+memutils.DebugMargin, alignment)
	if address == nil {
		return nil
	}

	a.recordAllocation(address, size)
	return address
}

// Callocate behaves like Allocate, and additionally sets every byte of the granted block to value
func (a *Allocator[P]) Callocate(size int, value byte, alignment uint) unsafe.Pointer {
	if !a.acceptsRequest(size, alignment) {
		return nil
	}

	address := a.policy.Callocate(size+memutils.DebugMargin, value, alignment)
	if address == nil {
		return nil
	}

	a.recordAllocation(address, size)
	return address
}

// Reallocate resizes the allocation at address to size bytes. A size of 0 deallocates address and
// returns nil. A nil address behaves like Allocate. If the policy cannot satisfy the request, nil
// is returned and the original allocation remains live and unchanged.
//
// A granted reallocation counts as an allocation of the new size; it does not count as a
// deallocation.
func (a *Allocator[P]) Reallocate(address unsafe.Pointer, size int, alignment uint) unsafe.Pointer {
	if size == 0 {
		a.Deallocate(address)
		return nil
	}

	if !a.acceptsRequest(size, alignment) {
		return nil
	}

	oldSize := a.AllocatedSize(address)
	if address != nil && !memutils.ValidateMagicValue(address, oldSize) {
		memutils.DebugPanicf("memory corruption detected after allocation at %#x of size %d", uintptr(address), oldSize)
	}

	newAddress := a.policy.Reallocate(address, size+memutils.DebugMargin, alignment)
	if newAddress == nil {
		return nil
	}

	if address != nil {
		a.allocations.Delete(uintptr(address))
		a.stats.RemoveSize(oldSize)
	}

	a.recordAllocation(newAddress, size)
	return newAddress
}

// Deallocate returns the allocation at address to the policy. A nil address is ignored. Passing an
// address that is not a live allocation of this allocator is undefined behavior: debug builds panic,
// and other builds count a deallocation of 0 bytes and still forward address to the policy.
func (a *Allocator[P]) Deallocate(address unsafe.Pointer) {
	if address == nil {
		return
	}

	if a.state != stateInitialized {
		memutils.DebugPanicf("attempted to deallocate %#x from an allocator in state %s", uintptr(address), a.state.String())
		return
	}

	size, tracked := a.allocations.Get(uintptr(address))
	if tracked {
		if !memutils.ValidateMagicValue(address, size) {
			memutils.DebugPanicf("memory corruption detected after allocation at %#x of size %d", uintptr(address), size)
		}
		a.allocations.Delete(uintptr(address))
	} else {
		a.logger.Debug("Allocator::Deallocate untracked address", slog.String("Name", a.name), slog.String("Address", formatAddress(uintptr(address))))
		memutils.DebugPanicf("attempted to deallocate %#x, which is not a live allocation of this allocator", uintptr(address))
	}

	a.policy.Deallocate(address)
	a.stats.AddDeallocation(size)
	a.updateUsedSpace()

	memutils.DebugValidate(a)
}
