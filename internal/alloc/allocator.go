package alloc

import (
	"fmt"
	"sync"
)

// Alignment is the boundary every block starts on.
const Alignment = 8

// Allocator hands out non-overlapping, aligned file offsets.
type Allocator struct {
	mu sync.Mutex

	// eof is the next free offset
	eof  uint64
	base uint64

	allocations []Allocation
	stats       Stats
}

// Allocation is one reserved file range.
type Allocation struct {
	Offset uint64
	Size   uint64
	Tag    string // usually the block signature
}

// Stats summarises the allocations made.
type Stats struct {
	Blocks       uint64
	Bytes        uint64
	Padding      uint64
	LargestBlock uint64
}

// New creates an Allocator whose first allocation is at base.
func New(base uint64) *Allocator {
	return &Allocator{eof: base, base: base}
}

// Alloc reserves size bytes at the next aligned offset.
func (a *Allocator) Alloc(size uint64, tag string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if rem := a.eof % Alignment; rem != 0 {
		a.stats.Padding += Alignment - rem
		a.eof += Alignment - rem
	}
	if size == 0 {
		return a.eof
	}

	off := a.eof
	a.eof += size
	a.allocations = append(a.allocations, Allocation{Offset: off, Size: size, Tag: tag})

	a.stats.Blocks++
	a.stats.Bytes += size
	if size > a.stats.LargestBlock {
		a.stats.LargestBlock = size
	}
	return off
}

// EOF returns the end of the last allocation.
func (a *Allocator) EOF() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.eof
}

// Stats returns a copy of the allocation statistics.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Allocations returns a copy of all allocations in order.
func (a *Allocator) Allocations() []Allocation {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Allocation, len(a.allocations))
	copy(out, a.allocations)
	return out
}

// Validate checks that allocations are aligned, within bounds and disjoint.
func (a *Allocator) Validate() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, al := range a.allocations {
		if al.Offset < a.base {
			return fmt.Errorf("%s at %#x is before base %#x", al.Tag, al.Offset, a.base)
		}
		if al.Offset%Alignment != 0 {
			return fmt.Errorf("%s at %#x is not %d-byte aligned", al.Tag, al.Offset, Alignment)
		}
		if al.Offset+al.Size > a.eof {
			return fmt.Errorf("%s at %#x size %d extends past EOF %#x", al.Tag, al.Offset, al.Size, a.eof)
		}
		// append-only, so each allocation must end before the next starts
		if i > 0 {
			prev := a.allocations[i-1]
			if prev.Offset+prev.Size > al.Offset {
				return fmt.Errorf("overlapping blocks: %s [%#x, size %d] and %s [%#x, size %d]",
					prev.Tag, prev.Offset, prev.Size, al.Tag, al.Offset, al.Size)
			}
		}
	}
	return nil
}
