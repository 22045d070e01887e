package allocator_test

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/forge-engine/memory/memutils"
	"github.com/stretchr/testify/require"
)

type statsDocument struct {
	Name       string
	State      string
	Capacity   int
	UsedSpace  float64
	Statistics struct {
		PeakSize              int
		TotalSize             int
		AllocationCount       int
		DeallocationCount     int
		LiveAllocations       int
		LiveAllocationSizeMin int
		LiveAllocationSizeMax int
	}
	Allocations []struct {
		Address string
		Size    int
	}
}

func TestBuildStatsString(t *testing.T) {
	a := newHeapAllocator(t, discardLogger(), 1000)

	small := a.Allocate(100, 8)
	large := a.Allocate(300, 8)
	freed := a.Allocate(50, 8)
	require.NotNil(t, small)
	require.NotNil(t, large)
	require.NotNil(t, freed)
	a.Deallocate(freed)

	var doc statsDocument
	require.NoError(t, json.Unmarshal([]byte(a.BuildStatsString(true)), &doc))

	require.Equal(t, t.Name(), doc.Name)
	require.Equal(t, "Initialized", doc.State)
	require.Equal(t, 1000, doc.Capacity)
	require.InDelta(t, 40.0, doc.UsedSpace, 0.0001)
	require.Equal(t, 300, doc.Statistics.PeakSize)
	require.Equal(t, 400, doc.Statistics.TotalSize)
	require.Equal(t, 3, doc.Statistics.AllocationCount)
	require.Equal(t, 1, doc.Statistics.DeallocationCount)
	require.Equal(t, 2, doc.Statistics.LiveAllocations)
	require.Equal(t, 100, doc.Statistics.LiveAllocationSizeMin)
	require.Equal(t, 300, doc.Statistics.LiveAllocationSizeMax)

	require.Len(t, doc.Allocations, 2)
	var previous uint64
	for _, allocation := range doc.Allocations {
		require.True(t, strings.HasPrefix(allocation.Address, "0x"))
		address, err := strconv.ParseUint(strings.TrimPrefix(allocation.Address, "0x"), 16, 64)
		require.NoError(t, err)
		require.Greater(t, address, previous)
		previous = address
	}

	a.Deallocate(small)
	a.Deallocate(large)
}

func TestBuildStatsStringWithoutDetails(t *testing.T) {
	a := newHeapAllocator(t, discardLogger(), 1000)

	var doc statsDocument
	require.NoError(t, json.Unmarshal([]byte(a.BuildStatsString(false)), &doc))
	require.Nil(t, doc.Allocations)
	require.Equal(t, 0, doc.Statistics.LiveAllocations)
	require.Equal(t, 0, doc.Statistics.LiveAllocationSizeMin)
}

func TestCalculateStatistics(t *testing.T) {
	a := newHeapAllocator(t, discardLogger(), 1<<16)

	first := a.Allocate(24, 8)
	second := a.Allocate(512, 8)
	require.NotNil(t, first)
	require.NotNil(t, second)

	var stats memutils.DetailedStatistics
	stats.Clear()
	a.CalculateStatistics(&stats)

	require.Equal(t, memutils.AllocationStatistics{
		PeakSize:        512,
		TotalSize:       536,
		AllocationCount: 2,
	}, stats.AllocationStatistics)
	require.Equal(t, 2, stats.LiveAllocationCount)
	require.Equal(t, 536, stats.LiveAllocationBytes)
	require.Equal(t, 24, stats.LiveAllocationMin)
	require.Equal(t, 512, stats.LiveAllocationMax)

	// statistics accumulate across calls
	a.CalculateStatistics(&stats)
	require.Equal(t, 4, stats.LiveAllocationCount)
	require.Equal(t, 1072, stats.TotalSize)

	a.Deallocate(first)
	a.Deallocate(second)

	stats.Clear()
	a.CalculateStatistics(&stats)
	require.Equal(t, 0, stats.LiveAllocationCount)
	require.Equal(t, math.MaxInt, stats.LiveAllocationMin)
}

func TestValidateAndCheckCorruption(t *testing.T) {
	a := newHeapAllocator(t, discardLogger(), 1<<16)

	var addresses []uintptr
	for size := 1; size <= 256; size *= 2 {
		address := a.Allocate(size, 16)
		require.NotNil(t, address)
		addresses = append(addresses, uintptr(address))

		require.NoError(t, a.Validate())
		require.NoError(t, a.CheckCorruption())
	}

	require.Len(t, addresses, 9)
	require.NoError(t, a.Reset())
	require.NoError(t, a.Validate())
}
