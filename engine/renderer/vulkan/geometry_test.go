package vulkan

import (
	"encoding/binary"
	stdmath "math"
	"testing"
)

func TestQuadGeometryShape(t *testing.T) {
	g := NewQuadGeometry()
	if len(g.Vertices) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(g.Vertices))
	}
	if len(g.Indices) != 6 {
		t.Fatalf("index count = %d, want 6", len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			t.Errorf("index %d references vertex %d, out of range", i, idx)
		}
	}
}

func TestQuadGeometryIDsAreUnique(t *testing.T) {
	a := NewQuadGeometry()
	b := NewQuadGeometry()
	if a.ID == b.ID {
		t.Fatalf("two geometries share the ID %s", a.ID)
	}
}

func TestVertexBytesLayout(t *testing.T) {
	g := NewQuadGeometry()
	data := g.VertexBytes()

	if len(data) != len(g.Vertices)*VertexStride {
		t.Fatalf("serialized size = %d, want %d", len(data), len(g.Vertices)*VertexStride)
	}

	readFloat := func(offset int) float32 {
		return stdmath.Float32frombits(binary.LittleEndian.Uint32(data[offset:]))
	}
	for i, v := range g.Vertices {
		base := i * VertexStride
		got := [7]float32{
			readFloat(base), readFloat(base + 4),
			readFloat(base + 8), readFloat(base + 12), readFloat(base + 16),
			readFloat(base + 20), readFloat(base + 24),
		}
		want := [7]float32{
			v.Position.X, v.Position.Y,
			v.Colour.X, v.Colour.Y, v.Colour.Z,
			v.Texcoord.X, v.Texcoord.Y,
		}
		if got != want {
			t.Errorf("vertex %d: serialized %v, want %v", i, got, want)
		}
	}
}

func TestIndexBytesLayout(t *testing.T) {
	g := NewQuadGeometry()
	data := g.IndexBytes()

	if len(data) != len(g.Indices)*2 {
		t.Fatalf("serialized size = %d, want %d", len(data), len(g.Indices)*2)
	}
	for i, idx := range g.Indices {
		if got := binary.LittleEndian.Uint16(data[i*2:]); got != idx {
			t.Errorf("index %d: serialized %d, want %d", i, got, idx)
		}
	}
}
