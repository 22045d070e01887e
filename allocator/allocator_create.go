package allocator

import (
	"github.com/cockroachdb/errors"
	"github.com/forge-engine/memory/memutils/policy"
	"golang.org/x/exp/slog"
)

// CreateOptions contains optional settings when creating an allocator. It is valid to leave all
// the fields blank.
type CreateOptions struct {
	// Name labels the allocator in log output and in BuildStatsString
	Name string
	// Capacity, when positive, causes New to call Initialize with this many bytes. When left at 0,
	// the allocator is returned uninitialized and the consumer must call Initialize before making
	// any requests.
	Capacity int
}

// New creates a new Allocator that forwards requests to p. The allocator takes ownership of p for
// the rest of its lifetime.
//
// logger - Receives lifecycle and leak reports. If nil, slog.Default() is used.
//
// p - The allocation strategy
//
// options - Optional parameters: it is valid to leave all the fields blank
func New[P policy.Policy](logger *slog.Logger, p P, options CreateOptions) (*Allocator[P], error) {
	if options.Capacity < 0 {
		return nil, errors.Newf("provided Capacity %d was negative", options.Capacity)
	}

	if logger == nil {
		logger = slog.Default()
	}

	allocator := &Allocator[P]{
		logger: logger,
		name:   options.Name,
		policy: p,
	}

	if options.Capacity > 0 {
		err := allocator.Initialize(options.Capacity)
		if err != nil {
			return nil, err
		}
	}

	return allocator, nil
}
