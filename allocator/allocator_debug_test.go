//go:build debug_mem_utils

package allocator_test

import (
	"testing"
	"unsafe"

	"github.com/forge-engine/memory/memutils"
	"github.com/stretchr/testify/require"
)

func TestCheckCorruptionDetectsOverrun(t *testing.T) {
	a := newHeapAllocator(t, discardLogger(), 4096)

	address := a.Allocate(32, 8)
	require.NotNil(t, address)
	require.NoError(t, a.CheckCorruption())

	// write one byte past the end of the granted block
	*(*byte)(unsafe.Add(address, 32)) = 0
	require.Error(t, a.CheckCorruption())

	require.Panics(t, func() {
		a.Deallocate(address)
	})
}

func TestDeallocateAfterResetPanics(t *testing.T) {
	a := newHeapAllocator(t, discardLogger(), 4096)

	address := a.Allocate(32, 16)
	require.NotNil(t, address)
	require.NoError(t, a.Reset())

	require.Panics(t, func() {
		a.Deallocate(address)
	})
	require.Equal(t, memutils.AllocationStatistics{}, a.Statistics())

	a.Policy().Deallocate(address)
}

func TestDeallocateUntrackedAddressPanics(t *testing.T) {
	a, _ := newMockAllocator(t, 256)

	address, _ := testBuffer(16)
	require.Panics(t, func() {
		a.Deallocate(address)
	})
	require.Equal(t, memutils.AllocationStatistics{}, a.Statistics())
}
