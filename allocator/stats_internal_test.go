package allocator

import (
	"io"
	"testing"

	"github.com/forge-engine/memory/memutils/policy"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newNullAllocator(t *testing.T) *Allocator[policy.NullPolicy] {
	a, err := New(slog.New(slog.NewJSONHandler(io.Discard, nil)), policy.NullPolicy{}, CreateOptions{Capacity: 1024})
	require.NoError(t, err)
	return a
}

func trackAllocation(a *Allocator[policy.NullPolicy], address uintptr, size int) {
	a.allocations.Put(address, size)
	a.stats.AddAllocation(size)
	a.grantedBytes += size
	a.updateUsedSpace()
}

func TestValidateTotalSizeWithinGrants(t *testing.T) {
	a := newNullAllocator(t)

	trackAllocation(a, 0x1000, 64)
	trackAllocation(a, 0x2000, 32)
	require.NoError(t, a.Validate())

	a.grantedBytes = 80
	require.ErrorContains(t, a.Validate(), "bytes granted")
}

func TestValidateLiveBytesMatchTotal(t *testing.T) {
	a := newNullAllocator(t)

	trackAllocation(a, 0x1000, 64)
	a.stats.TotalSize = 65
	require.ErrorContains(t, a.Validate(), "live allocations hold 64 bytes")
}

func TestValidateClearedAfterDeinitialize(t *testing.T) {
	a := newNullAllocator(t)

	trackAllocation(a, 0x1000, 64)
	require.NoError(t, a.Reset())
	require.Equal(t, 0, a.grantedBytes)
	require.NoError(t, a.Validate())

	trackAllocation(a, 0x1000, 16)
	require.NoError(t, a.Deinitialize())
	require.NoError(t, a.Validate())

	a.grantedBytes = 16
	require.Error(t, a.Validate())
}
