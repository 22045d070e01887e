package memutils

import "math"

// AllocationStatistics holds the running telemetry of a single allocator
type AllocationStatistics struct {
	// PeakSize is the largest single allocation request ever granted
	PeakSize int
	// TotalSize is the number of bytes currently live: granted sizes minus freed sizes
	TotalSize int
	// AllocationCount counts granted allocate, callocate and reallocate requests
	AllocationCount int
	// DeallocationCount counts deallocate requests
	DeallocationCount int
}

func (s *AllocationStatistics) Clear() {
	s.PeakSize = 0
	s.TotalSize = 0
	s.AllocationCount = 0
	s.DeallocationCount = 0
}

// AddAllocation records a granted request of size bytes
func (s *AllocationStatistics) AddAllocation(size int) {
	if size > s.PeakSize {
		s.PeakSize = size
	}

	s.TotalSize += size
	s.AllocationCount++
}

// RemoveSize subtracts size bytes from the live total without counting a deallocation.
// Reallocation uses this to retire the size of the block being replaced.
func (s *AllocationStatistics) RemoveSize(size int) {
	s.TotalSize -= size
}

// AddDeallocation records a deallocate request that freed size bytes
func (s *AllocationStatistics) AddDeallocation(size int) {
	s.TotalSize -= size
	s.DeallocationCount++
}

// UsedSpace returns TotalSize as a percentage of capacity. It returns 0 when capacity is not positive.
func (s *AllocationStatistics) UsedSpace(capacity int) float32 {
	if capacity <= 0 {
		return 0
	}

	return float32(float64(s.TotalSize) / float64(capacity) * 100.0)
}

func (s *AllocationStatistics) AddStatistics(other *AllocationStatistics) {
	if other.PeakSize > s.PeakSize {
		s.PeakSize = other.PeakSize
	}

	s.TotalSize += other.TotalSize
	s.AllocationCount += other.AllocationCount
	s.DeallocationCount += other.DeallocationCount
}

// DetailedStatistics extends AllocationStatistics with a census of the allocations that are
// live at the moment the statistics were gathered
type DetailedStatistics struct {
	AllocationStatistics
	LiveAllocationCount int
	LiveAllocationBytes int
	LiveAllocationMin   int
	LiveAllocationMax   int
}

func (s *DetailedStatistics) Clear() {
	s.AllocationStatistics.Clear()
	s.LiveAllocationCount = 0
	s.LiveAllocationBytes = 0
	s.LiveAllocationMin = math.MaxInt
	s.LiveAllocationMax = 0
}

func (s *DetailedStatistics) AddLiveAllocation(size int) {
	s.LiveAllocationCount++
	s.LiveAllocationBytes += size

	if size < s.LiveAllocationMin {
		s.LiveAllocationMin = size
	}

	if size > s.LiveAllocationMax {
		s.LiveAllocationMax = size
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.AllocationStatistics.AddStatistics(&other.AllocationStatistics)
	s.LiveAllocationCount += other.LiveAllocationCount
	s.LiveAllocationBytes += other.LiveAllocationBytes

	if other.LiveAllocationMin < s.LiveAllocationMin {
		s.LiveAllocationMin = other.LiveAllocationMin
	}

	if other.LiveAllocationMax > s.LiveAllocationMax {
		s.LiveAllocationMax = other.LiveAllocationMax
	}
}
