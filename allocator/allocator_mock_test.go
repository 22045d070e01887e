package allocator_test

import (
	"testing"
	"unsafe"

	"github.com/forge-engine/memory/allocator"
	"github.com/forge-engine/memory/internal/mocks"
	"github.com/forge-engine/memory/memutils"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockAllocator(t *testing.T, capacity int) (*allocator.Allocator[*mocks.MockPolicy], *mocks.MockPolicy) {
	ctrl := gomock.NewController(t)
	mockPolicy := mocks.NewMockPolicy(ctrl)
	mockPolicy.EXPECT().Initialize(capacity)

	a, err := allocator.New(discardLogger(), mockPolicy, allocator.CreateOptions{
		Name:     "mock",
		Capacity: capacity,
	})
	require.NoError(t, err)

	return a, mockPolicy
}

func testBuffer(size int) (unsafe.Pointer, []byte) {
	buffer := make([]byte, size+memutils.DebugMargin)
	return unsafe.Pointer(&buffer[0]), buffer
}

func TestInvalidRequestsNeverReachPolicy(t *testing.T) {
	a, _ := newMockAllocator(t, 1024)

	require.Nil(t, a.Allocate(64, 0))
	require.Nil(t, a.Allocate(64, 3))
	require.Nil(t, a.Allocate(0, 8))
	require.Nil(t, a.Callocate(64, 0xFF, 12))
	require.Nil(t, a.Callocate(-1, 0xFF, 8))
	require.Nil(t, a.Reallocate(nil, 64, 7))

	require.Equal(t, memutils.AllocationStatistics{}, a.Statistics())
}

func TestPolicyFailureLeavesStatistics(t *testing.T) {
	a, mockPolicy := newMockAllocator(t, 1024)

	mockPolicy.EXPECT().Allocate(64+memutils.DebugMargin, uint(16)).Return(unsafe.Pointer(nil))
	mockPolicy.EXPECT().Callocate(32+memutils.DebugMargin, byte(9), uint(4)).Return(unsafe.Pointer(nil))

	require.Nil(t, a.Allocate(64, 16))
	require.Nil(t, a.Callocate(32, 9, 4))

	require.Equal(t, memutils.AllocationStatistics{}, a.Statistics())
	require.Equal(t, float32(0), a.UsedSpace())
}

func TestRequestsForwardedToPolicy(t *testing.T) {
	a, mockPolicy := newMockAllocator(t, 1024)

	first, _ := testBuffer(64)
	second, _ := testBuffer(128)

	gomock.InOrder(
		mockPolicy.EXPECT().Allocate(64+memutils.DebugMargin, uint(8)).Return(first),
		mockPolicy.EXPECT().Reallocate(first, 128+memutils.DebugMargin, uint(8)).Return(unsafe.Pointer(nil)),
		mockPolicy.EXPECT().Reallocate(first, 128+memutils.DebugMargin, uint(8)).Return(second),
		mockPolicy.EXPECT().Deallocate(second),
		mockPolicy.EXPECT().Reset(),
		mockPolicy.EXPECT().Deinitialize(),
	)

	require.Equal(t, first, a.Allocate(64, 8))
	require.Equal(t, 64, a.AllocatedSize(first))
	require.InDelta(t, 6.25, a.UsedSpace(), 0.0001)

	// a failed reallocation keeps the original block live
	require.Nil(t, a.Reallocate(first, 128, 8))
	require.Equal(t, 64, a.AllocatedSize(first))
	require.Equal(t, memutils.AllocationStatistics{
		PeakSize:        64,
		TotalSize:       64,
		AllocationCount: 1,
	}, a.Statistics())

	require.Equal(t, second, a.Reallocate(first, 128, 8))
	require.Equal(t, 0, a.AllocatedSize(first))
	require.Equal(t, 128, a.AllocatedSize(second))
	require.Equal(t, memutils.AllocationStatistics{
		PeakSize:        128,
		TotalSize:       128,
		AllocationCount: 2,
	}, a.Statistics())

	a.Deallocate(second)
	require.Equal(t, memutils.AllocationStatistics{
		PeakSize:          128,
		AllocationCount:   2,
		DeallocationCount: 1,
	}, a.Statistics())

	require.NoError(t, a.Reset())
	require.Equal(t, memutils.AllocationStatistics{}, a.Statistics())

	require.NoError(t, a.Deinitialize())
}

func TestCallocateForwardedToPolicy(t *testing.T) {
	a, mockPolicy := newMockAllocator(t, 256)

	address, _ := testBuffer(32)
	mockPolicy.EXPECT().Callocate(32+memutils.DebugMargin, byte(0x7), uint(4)).Return(address)

	require.Equal(t, address, a.Callocate(32, 0x7, 4))
	require.Equal(t, 32, a.TotalSize())
	require.Equal(t, 1, a.AllocationCount())
	require.InDelta(t, 12.5, a.UsedSpace(), 0.0001)
}

func TestDeallocateNilIsIgnored(t *testing.T) {
	a, _ := newMockAllocator(t, 256)

	a.Deallocate(nil)
	require.Equal(t, memutils.AllocationStatistics{}, a.Statistics())
}
