package policy

import (
	"context"
	"math"
	"unsafe"

	"github.com/forge-engine/memory/memutils"
	"golang.org/x/exp/slog"
	"modernc.org/memory"
)

// blockHeader sits immediately before every aligned address handed out by HeapPolicy
type blockHeader struct {
	base uintptr
	size int
}

const (
	headerSize = int(unsafe.Sizeof(blockHeader{}))
	// minimumAlignment keeps the header itself naturally aligned
	minimumAlignment = uint(unsafe.Alignof(blockHeader{}))
)

// HeapPolicy is a Policy that delegates to the system heap. Blocks come from a modernc.org/memory
// allocator, which maps memory outside the Go heap: blocks never move and are never collected, and
// values stored in them must not hold Go pointers.
//
// The system heap has no pool of its own, so Initialize, Deinitialize and Reset do nothing and the
// capacity passed to Initialize is not enforced.
type HeapPolicy struct {
	logger *slog.Logger
	host   memory.Allocator
}

var _ Policy = &HeapPolicy{}

// NewHeapPolicy creates a HeapPolicy. Host allocation failures are reported to logger at debug level.
func NewHeapPolicy(logger *slog.Logger) *HeapPolicy {
	if logger == nil {
		logger = slog.Default()
	}

	return &HeapPolicy{
		logger: logger,
	}
}

func (p *HeapPolicy) Initialize(capacity int) {}
func (p *HeapPolicy) Deinitialize()           {}
func (p *HeapPolicy) Reset()                  {}

func header(address unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Add(address, -headerSize))
}

func (p *HeapPolicy) Allocate(size int, alignment uint) unsafe.Pointer {
	if size <= 0 || memutils.ValidateAlignment(alignment) != nil {
		return nil
	}

	if alignment < minimumAlignment {
		alignment = minimumAlignment
	}

	// header plus worst-case alignment padding must fit in an int alongside size
	if alignment > uint(math.MaxInt-headerSize) || size > math.MaxInt-headerSize-(int(alignment)-1) {
		p.logger.LogAttrs(context.Background(), slog.LevelDebug, "HeapPolicy::Allocate request too large",
			slog.Int("size", size),
			slog.Uint64("alignment", uint64(alignment)))
		return nil
	}

	base, err := p.host.UnsafeMalloc(headerSize + size + int(alignment) - 1)
	if err != nil {
		p.logger.LogAttrs(context.Background(), slog.LevelDebug, "HeapPolicy::Allocate host allocation failed",
			slog.Int("size", size),
			slog.Uint64("alignment", uint64(alignment)),
			slog.Any("error", err))
		return nil
	}

	offset := memutils.AlignPointerUp(uintptr(base)+uintptr(headerSize), alignment) - uintptr(base)
	address := unsafe.Add(base, int(offset))

	h := header(address)
	h.base = uintptr(base)
	h.size = size

	return address
}

func (p *HeapPolicy) Callocate(size int, value byte, alignment uint) unsafe.Pointer {
	address := p.Allocate(size, alignment)
	if address == nil {
		return nil
	}

	memutils.MemorySet(address, value, size)
	return address
}

func (p *HeapPolicy) Reallocate(address unsafe.Pointer, size int, alignment uint) unsafe.Pointer {
	if address == nil {
		return p.Allocate(size, alignment)
	}

	if size <= 0 {
		p.Deallocate(address)
		return nil
	}

	newAddress := p.Allocate(size, alignment)
	if newAddress == nil {
		return nil
	}

	memutils.MemoryCopy(newAddress, address, min(header(address).size, size))
	p.Deallocate(address)

	return newAddress
}

func (p *HeapPolicy) Deallocate(address unsafe.Pointer) {
	if address == nil {
		return
	}

	base := header(address).base
	err := p.host.UnsafeFree(unsafe.Pointer(base))
	if err != nil {
		p.logger.LogAttrs(context.Background(), slog.LevelDebug, "HeapPolicy::Deallocate host free failed",
			slog.Any("error", err))
	}
}

// BlockSize returns the size requested for the live block at address
func (p *HeapPolicy) BlockSize(address unsafe.Pointer) int {
	if address == nil {
		return 0
	}
	return header(address).size
}

// Close releases every page the policy obtained from the system, including pages backing blocks that
// were never deallocated. No address handed out by the policy may be used afterwards.
func (p *HeapPolicy) Close() error {
	return p.host.Close()
}
