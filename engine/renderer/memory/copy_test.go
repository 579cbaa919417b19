package memory

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/quadra-gfx/quadra/engine/core"
)

// The round-trip property: bytes staged into a mapped block at planned
// offsets read back identically. The "device memory" here is a plain Go
// allocation standing in for a persistently mapped region.
func TestCopyRoundTripThroughPlannedLayout(t *testing.T) {
	payloads := [][]byte{
		bytes.Repeat([]byte{0xAB}, 48),
		[]byte("quad vertex data"),
		{1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
	blocks := make([]Block, len(payloads))
	for i, p := range payloads {
		blocks[i] = Block{Size: uint64(len(p)), Alignment: 64, TypeBits: ^uint32(0)}
	}

	layout, err := Plan(blocks, TypeTable{0xF}, 0x1, core.NopLogger{})
	if err != nil {
		t.Fatal(err)
	}

	backing := make([]byte, layout.TotalSize)
	base := unsafe.Pointer(&backing[0])

	for i, p := range payloads {
		off, ok := layout.OffsetOf(i)
		if !ok {
			t.Fatalf("no placement for block %d", i)
		}
		CopyToMapped(base, off, p)
	}

	for i, p := range payloads {
		off, _ := layout.OffsetOf(i)
		got := ReadMapped(base, off, uint64(len(p)))
		if !bytes.Equal(got, p) {
			t.Errorf("block %d: read back %x, want %x", i, got, p)
		}
	}
}

func TestCopyToMappedAtOffsetDoesNotClobberNeighbours(t *testing.T) {
	backing := bytes.Repeat([]byte{0xEE}, 64)
	base := unsafe.Pointer(&backing[0])

	CopyToMapped(base, 16, []byte{1, 2, 3, 4})

	if backing[15] != 0xEE || backing[20] != 0xEE {
		t.Errorf("bytes outside the write were touched: %x", backing)
	}
	if !bytes.Equal(backing[16:20], []byte{1, 2, 3, 4}) {
		t.Errorf("write landed wrong: %x", backing[16:20])
	}
}
