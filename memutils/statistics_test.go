package memutils_test

import (
	"math"
	"testing"

	"github.com/forge-engine/memory/memutils"
	"github.com/stretchr/testify/require"
)

func TestAllocationStatistics(t *testing.T) {
	var stats memutils.AllocationStatistics

	stats.AddAllocation(64)
	stats.AddAllocation(256)
	stats.AddAllocation(32)
	stats.AddDeallocation(256)

	require.Equal(t, memutils.AllocationStatistics{
		PeakSize:          256,
		TotalSize:         96,
		AllocationCount:   3,
		DeallocationCount: 1,
	}, stats)
	require.InDelta(t, 9.375, stats.UsedSpace(1024), 0.0001)
	require.Equal(t, float32(0), stats.UsedSpace(0))

	stats.RemoveSize(32)
	require.Equal(t, 64, stats.TotalSize)
	require.Equal(t, 1, stats.DeallocationCount)

	stats.Clear()
	require.Equal(t, memutils.AllocationStatistics{}, stats)
}

func TestDetailedStatistics(t *testing.T) {
	var stats memutils.DetailedStatistics
	stats.Clear()

	require.Equal(t, memutils.DetailedStatistics{
		LiveAllocationMin: math.MaxInt,
	}, stats)

	stats.AddLiveAllocation(100)
	stats.AddLiveAllocation(20)

	var other memutils.DetailedStatistics
	other.Clear()
	other.AllocationStatistics.AddAllocation(500)
	other.AddLiveAllocation(500)

	stats.AddDetailedStatistics(&other)

	require.Equal(t, memutils.DetailedStatistics{
		AllocationStatistics: memutils.AllocationStatistics{
			PeakSize:        500,
			TotalSize:       500,
			AllocationCount: 1,
		},
		LiveAllocationCount: 3,
		LiveAllocationBytes: 620,
		LiveAllocationMin:   20,
		LiveAllocationMax:   500,
	}, stats)
}
