package allocator

import (
	"context"
	"strconv"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/forge-engine/memory/memutils"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

func formatAddress(address uintptr) string {
	return "0x" + strconv.FormatUint(uint64(address), 16)
}

// visitLiveAllocations calls visit once per live allocation, in address order
func (a *Allocator[P]) visitLiveAllocations(visit func(address uintptr, size int)) {
	if a.allocations == nil {
		return
	}

	addresses := make([]uintptr, 0, a.allocations.Count())
	a.allocations.Iter(func(address uintptr, size int) bool {
		addresses = append(addresses, address)
		return false
	})
	slices.Sort(addresses)

	for _, address := range addresses {
		size, _ := a.allocations.Get(address)
		visit(address, size)
	}
}

func (a *Allocator[P]) logUnreleasedMemory(address uintptr, size int) {
	name := a.name
	if name == "" {
		name = "empty"
	}

	a.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] unfreed allocation",
		slog.String("address", formatAddress(address)),
		slog.Int("size", size),
		slog.String("name", name),
	)
}

// CalculateStatistics sums this allocator's statistics, along with a census of its live
// allocations, into the statistics currently present in the provided memutils.DetailedStatistics
// object.
func (a *Allocator[P]) CalculateStatistics(stats *memutils.DetailedStatistics) {
	stats.AllocationStatistics.AddStatistics(&a.stats)

	a.visitLiveAllocations(func(address uintptr, size int) {
		stats.AddLiveAllocation(size)
	})
}

// Validate performs internal consistency checks on the allocator's bookkeeping. When the
// allocator is functioning correctly, it should not be possible for this method to return an error.
func (a *Allocator[P]) Validate() error {
	if a.state != stateInitialized {
		if a.capacity != 0 || a.grantedBytes != 0 || a.stats != (memutils.AllocationStatistics{}) {
			return errors.Newf("allocator in state %s holds capacity or statistics", a.state.String())
		}
		return nil
	}

	if a.capacity <= 0 {
		return errors.Newf("initialized allocator has invalid capacity %d", a.capacity)
	}

	liveBytes := 0
	var err error
	a.allocations.Iter(func(address uintptr, size int) bool {
		if size <= 0 {
			err = errors.Newf("live allocation at %s has invalid size %d", formatAddress(address), size)
			return true
		}
		if size > a.stats.PeakSize {
			err = errors.Newf("live allocation at %s of size %d is larger than the peak size %d", formatAddress(address), size, a.stats.PeakSize)
			return true
		}
		liveBytes += size
		return false
	})
	if err != nil {
		return err
	}

	if liveBytes != a.stats.TotalSize {
		return errors.Newf("live allocations hold %d bytes, but the total size is %d", liveBytes, a.stats.TotalSize)
	}

	if a.stats.TotalSize > a.grantedBytes {
		return errors.Newf("total size %d is larger than the %d bytes granted", a.stats.TotalSize, a.grantedBytes)
	}

	if a.allocations.Count() > a.stats.AllocationCount {
		return errors.Newf("%d allocations are live, but only %d were granted", a.allocations.Count(), a.stats.AllocationCount)
	}

	if a.usedSpace != a.stats.UsedSpace(a.capacity) {
		return errors.Newf("used space %f does not match the total size %d", a.usedSpace, a.stats.TotalSize)
	}

	return nil
}

// CheckCorruption verifies the anti-corruption markers written after every live allocation. It
// returns an error naming the first allocation whose marker was overwritten.
//
// Markers are only written when memutils is built with the build flag `debug_mem_utils`. Without
// it this method always returns nil, but it still visits every allocation and so should only be
// run as part of some sort of diagnostic regime.
func (a *Allocator[P]) CheckCorruption() error {
	var err error
	a.visitLiveAllocations(func(address uintptr, size int) {
		if err != nil {
			return
		}

		if !memutils.ValidateMagicValue(unsafe.Pointer(address), size) {
			err = errors.Newf("memory corruption detected after allocation at %s of size %d", formatAddress(address), size)
		}
	})

	return err
}

// BuildStatsString returns a json document describing the allocator's configuration and
// statistics. When detailedMap is true, every live allocation is listed in address order.
func (a *Allocator[P]) BuildStatsString(detailedMap bool) string {
	writer := jwriter.NewWriter()

	json := writer.Object()
	json.Name("Name").String(a.name)
	json.Name("State").String(a.state.String())
	json.Name("Capacity").Int(a.capacity)
	json.Name("UsedSpace").Float64(float64(a.usedSpace))

	var stats memutils.DetailedStatistics
	stats.Clear()
	a.CalculateStatistics(&stats)

	statsJson := json.Name("Statistics").Object()
	statsJson.Name("PeakSize").Int(stats.PeakSize)
	statsJson.Name("TotalSize").Int(stats.TotalSize)
	statsJson.Name("AllocationCount").Int(stats.AllocationCount)
	statsJson.Name("DeallocationCount").Int(stats.DeallocationCount)
	statsJson.Name("LiveAllocations").Int(stats.LiveAllocationCount)
	if stats.LiveAllocationCount > 0 {
		statsJson.Name("LiveAllocationSizeMin").Int(stats.LiveAllocationMin)
		statsJson.Name("LiveAllocationSizeMax").Int(stats.LiveAllocationMax)
	}
	statsJson.End()

	if detailedMap {
		arrayState := json.Name("Allocations").Array()
		a.visitLiveAllocations(func(address uintptr, size int) {
			obj := arrayState.Object()
			defer obj.End()

			obj.Name("Address").String(formatAddress(address))
			obj.Name("Size").Int(size)
		})
		arrayState.End()
	}

	json.End()

	return string(writer.Bytes())
}
