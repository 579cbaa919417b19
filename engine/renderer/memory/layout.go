// Package memory computes packed layouts for grouping several buffers into a
// single device allocation. It is pure bookkeeping: it never touches the
// device, so the offset arithmetic and the memory-type selection can be
// exercised without a GPU.
package memory

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/quadra-gfx/quadra/engine/core"
)

// Block describes one buffer's memory requirements as reported by the
// device: its size, its alignment and the bitmask of memory types it can
// live in.
type Block struct {
	Size      uint64
	Alignment uint64
	TypeBits  uint32
}

// Placement is one block's position inside the group allocation. Index
// refers back to the block's position in the input slice, since planning
// reorders blocks.
type Placement struct {
	Index     int
	Offset    uint64
	Size      uint64
	Alignment uint64
}

// Layout is the result of planning: where every block lands, how large the
// single allocation must be and which memory type it should come from.
type Layout struct {
	Placements []Placement
	TotalSize  uint64
	TypeIndex  int
}

// TypeTable is the physical device's memory types, reduced to their property
// flags. Index i corresponds to memory type i.
type TypeTable []uint32

// AlignUp rounds v up to the next multiple of align. align must be a power
// of two or at least non-zero; zero align leaves v untouched.
func AlignUp[T constraints.Unsigned](v, align T) T {
	if align == 0 {
		return v
	}
	m := v % align
	if m == 0 {
		return v
	}
	return v - m + align
}

// Plan packs the given blocks into one allocation.
//
// Every block must be bindable to the same memory type, so the per-block
// TypeBits masks are intersected first; an empty intersection is a hard
// error, not something a different packing could fix. The lowest-index type
// in the intersection that carries all requiredFlags wins. Blocks are then
// ordered by alignment descending (ties by size descending, then input
// order) and placed by running accumulation, each offset rounded up to the
// block's own alignment.
func Plan(blocks []Block, table TypeTable, requiredFlags uint32, logger core.Logger) (*Layout, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("memory plan requested for zero blocks")
	}
	if logger == nil {
		logger = core.DefaultLogger()
	}

	shared := ^uint32(0)
	for _, b := range blocks {
		shared &= b.TypeBits
	}
	if shared == 0 {
		return nil, fmt.Errorf("planning %d blocks: %w", len(blocks), core.ErrNoSharedMemoryType)
	}

	typeIndex := -1
	for i := 0; i < len(table); i++ {
		if shared&(1<<uint(i)) == 0 {
			continue
		}
		if table[i]&requiredFlags == requiredFlags {
			typeIndex = i
			break
		}
	}
	if typeIndex < 0 {
		return nil, fmt.Errorf("planning %d blocks with flags 0x%x: %w",
			len(blocks), requiredFlags, core.ErrNoSuitableMemoryType)
	}

	order := make([]int, len(blocks))
	for i := range order {
		order[i] = i
	}
	// Largest alignment first keeps padding to a minimum; size breaks ties.
	sort.SliceStable(order, func(a, b int) bool {
		ba, bb := blocks[order[a]], blocks[order[b]]
		if ba.Alignment != bb.Alignment {
			return ba.Alignment > bb.Alignment
		}
		return ba.Size > bb.Size
	})

	layout := &Layout{
		Placements: make([]Placement, 0, len(blocks)),
		TypeIndex:  typeIndex,
	}

	var cursor uint64
	for _, idx := range order {
		b := blocks[idx]
		offset := AlignUp(cursor, b.Alignment)
		layout.Placements = append(layout.Placements, Placement{
			Index:     idx,
			Offset:    offset,
			Size:      b.Size,
			Alignment: b.Alignment,
		})
		cursor = offset + b.Size
	}
	layout.TotalSize = cursor

	logger.Debugf("planned %d blocks into %d bytes using memory type %d",
		len(blocks), layout.TotalSize, layout.TypeIndex)

	return layout, nil
}

// OffsetOf returns the planned offset of the block that sat at inputIndex in
// the slice handed to Plan.
func (l *Layout) OffsetOf(inputIndex int) (uint64, bool) {
	for _, p := range l.Placements {
		if p.Index == inputIndex {
			return p.Offset, true
		}
	}
	return 0, false
}
