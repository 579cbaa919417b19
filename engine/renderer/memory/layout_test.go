package memory

import (
	"errors"
	"testing"

	"github.com/quadra-gfx/quadra/engine/core"
)

const (
	propDeviceLocal  = 0x1
	propHostVisible  = 0x2
	propHostCoherent = 0x4
)

// A table with one device-local type and one host-visible+coherent type.
var testTable = TypeTable{
	propDeviceLocal,
	propHostVisible | propHostCoherent,
}

func allTypes() uint32 { return ^uint32(0) }

func TestAlignUp(t *testing.T) {
	if got := AlignUp(uint64(12), 3); got != 12 {
		t.Errorf("AlignUp(12, 3) = %d", got)
	}
	if got := AlignUp(uint64(10), 3); got != 12 {
		t.Errorf("AlignUp(10, 3) = %d", got)
	}
	if got := AlignUp(uint64(7), 0); got != 7 {
		t.Errorf("AlignUp(7, 0) = %d", got)
	}
	if got := AlignUp(uint64(256), 256); got != 256 {
		t.Errorf("AlignUp(256, 256) = %d", got)
	}
}

func TestPlanSingleBlockStartsAtZero(t *testing.T) {
	for _, align := range []uint64{1, 4, 64, 256} {
		layout, err := Plan([]Block{{Size: 100, Alignment: align, TypeBits: allTypes()}},
			testTable, propDeviceLocal, core.NopLogger{})
		if err != nil {
			t.Fatalf("align %d: %v", align, err)
		}
		if layout.Placements[0].Offset != 0 {
			t.Errorf("align %d: single block offset = %d, want 0", align, layout.Placements[0].Offset)
		}
		if layout.TotalSize != 100 {
			t.Errorf("align %d: total = %d, want 100", align, layout.TotalSize)
		}
	}
}

func TestPlanOrdersByAlignmentDescending(t *testing.T) {
	// Inputs deliberately out of order: alignments {256, 4, 64}, sizes
	// {12, 4, 20}. Expect iteration order 256, 64, 4.
	blocks := []Block{
		{Size: 12, Alignment: 256, TypeBits: allTypes()},
		{Size: 4, Alignment: 4, TypeBits: allTypes()},
		{Size: 20, Alignment: 64, TypeBits: allTypes()},
	}
	layout, err := Plan(blocks, testTable, propDeviceLocal, core.NopLogger{})
	if err != nil {
		t.Fatal(err)
	}

	wantOrder := []int{0, 2, 1} // input indices in descending-alignment order
	for i, p := range layout.Placements {
		if p.Index != wantOrder[i] {
			t.Fatalf("placement %d is input block %d, want %d", i, p.Index, wantOrder[i])
		}
	}

	// 256-aligned 12 bytes at 0, 64-aligned 20 bytes at 64, 4-aligned 4
	// bytes at 84. Total is last offset + last size.
	wantOffsets := []uint64{0, 64, 84}
	for i, p := range layout.Placements {
		if p.Offset != wantOffsets[i] {
			t.Errorf("placement %d offset = %d, want %d", i, p.Offset, wantOffsets[i])
		}
	}
	if layout.TotalSize != 88 {
		t.Errorf("total = %d, want 88", layout.TotalSize)
	}
}

func TestPlanInvariants(t *testing.T) {
	cases := [][]Block{
		{
			{Size: 1, Alignment: 1, TypeBits: allTypes()},
			{Size: 3, Alignment: 2, TypeBits: allTypes()},
			{Size: 7, Alignment: 16, TypeBits: allTypes()},
			{Size: 260, Alignment: 256, TypeBits: allTypes()},
		},
		{
			{Size: 512, Alignment: 64, TypeBits: allTypes()},
			{Size: 512, Alignment: 64, TypeBits: allTypes()},
			{Size: 13, Alignment: 1, TypeBits: allTypes()},
		},
		{
			{Size: 65536, Alignment: 4096, TypeBits: allTypes()},
		},
	}

	for ci, blocks := range cases {
		layout, err := Plan(blocks, testTable, propHostVisible|propHostCoherent, core.NopLogger{})
		if err != nil {
			t.Fatalf("case %d: %v", ci, err)
		}
		if len(layout.Placements) != len(blocks) {
			t.Fatalf("case %d: %d placements for %d blocks", ci, len(layout.Placements), len(blocks))
		}
		var prevEnd uint64
		for i, p := range layout.Placements {
			if p.Alignment != 0 && p.Offset%p.Alignment != 0 {
				t.Errorf("case %d placement %d: offset %d not aligned to %d", ci, i, p.Offset, p.Alignment)
			}
			if i > 0 && p.Offset < prevEnd {
				t.Errorf("case %d placement %d: offset %d overlaps previous end %d", ci, i, p.Offset, prevEnd)
			}
			prevEnd = p.Offset + p.Size
		}
		if layout.TotalSize != prevEnd {
			t.Errorf("case %d: total %d != last end %d", ci, layout.TotalSize, prevEnd)
		}
		if layout.TypeIndex != 1 {
			t.Errorf("case %d: type index %d, want 1 (host visible+coherent)", ci, layout.TypeIndex)
		}
	}
}

func TestPlanEmptyIntersectionFails(t *testing.T) {
	blocks := []Block{
		{Size: 16, Alignment: 4, TypeBits: 0b01},
		{Size: 16, Alignment: 4, TypeBits: 0b10},
	}
	layout, err := Plan(blocks, testTable, propDeviceLocal, core.NopLogger{})
	if layout != nil {
		t.Fatal("expected nil layout on empty intersection")
	}
	if !errors.Is(err, core.ErrNoSharedMemoryType) {
		t.Fatalf("err = %v, want ErrNoSharedMemoryType", err)
	}
}

func TestPlanNoTypeWithRequiredFlags(t *testing.T) {
	blocks := []Block{
		// Only compatible with type 0, which is device local.
		{Size: 16, Alignment: 4, TypeBits: 0b01},
	}
	_, err := Plan(blocks, testTable, propHostVisible, core.NopLogger{})
	if !errors.Is(err, core.ErrNoSuitableMemoryType) {
		t.Fatalf("err = %v, want ErrNoSuitableMemoryType", err)
	}
}

func TestPlanPicksLowestQualifyingTypeIndex(t *testing.T) {
	table := TypeTable{
		propHostVisible,
		propDeviceLocal,
		propDeviceLocal, // same flags, higher index: must not be chosen
	}
	blocks := []Block{{Size: 8, Alignment: 8, TypeBits: allTypes()}}
	layout, err := Plan(blocks, table, propDeviceLocal, core.NopLogger{})
	if err != nil {
		t.Fatal(err)
	}
	if layout.TypeIndex != 1 {
		t.Errorf("type index = %d, want 1", layout.TypeIndex)
	}
}

func TestOffsetOf(t *testing.T) {
	blocks := []Block{
		{Size: 10, Alignment: 1, TypeBits: allTypes()},
		{Size: 10, Alignment: 64, TypeBits: allTypes()},
	}
	layout, err := Plan(blocks, testTable, propDeviceLocal, core.NopLogger{})
	if err != nil {
		t.Fatal(err)
	}
	// Block 1 has the bigger alignment, so it goes first.
	if off, ok := layout.OffsetOf(1); !ok || off != 0 {
		t.Errorf("OffsetOf(1) = %d,%v", off, ok)
	}
	if off, ok := layout.OffsetOf(0); !ok || off != 10 {
		t.Errorf("OffsetOf(0) = %d,%v", off, ok)
	}
	if _, ok := layout.OffsetOf(2); ok {
		t.Error("OffsetOf(2) should not resolve")
	}
}
