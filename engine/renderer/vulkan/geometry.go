package vulkan

import (
	"encoding/binary"
	stdmath "math"

	"github.com/google/uuid"

	"github.com/quadra-gfx/quadra/engine/math"
)

// QuadGeometry is the demo's single mesh: a unit quad with per-vertex colors
// and texture coordinates, indexed as two counter-clockwise triangles.
type QuadGeometry struct {
	ID       uuid.UUID
	Vertices []math.Vertex2D
	Indices  []uint16
}

func NewQuadGeometry() *QuadGeometry {
	return &QuadGeometry{
		ID: uuid.New(),
		Vertices: []math.Vertex2D{
			{Position: math.Vec2{X: -0.5, Y: -0.5}, Colour: math.Vec3{X: 1, Y: 0, Z: 0}, Texcoord: math.Vec2{X: 1, Y: 0}},
			{Position: math.Vec2{X: 0.5, Y: -0.5}, Colour: math.Vec3{X: 0, Y: 1, Z: 0}, Texcoord: math.Vec2{X: 0, Y: 0}},
			{Position: math.Vec2{X: 0.5, Y: 0.5}, Colour: math.Vec3{X: 0, Y: 0, Z: 1}, Texcoord: math.Vec2{X: 0, Y: 1}},
			{Position: math.Vec2{X: -0.5, Y: 0.5}, Colour: math.Vec3{X: 1, Y: 1, Z: 1}, Texcoord: math.Vec2{X: 1, Y: 1}},
		},
		Indices: []uint16{0, 1, 2, 2, 3, 0},
	}
}

// VertexStride is the packed size of one vertex: vec2 position, vec3 color,
// vec2 texcoord, all float32.
const VertexStride = 7 * 4

// VertexBytes serializes the vertices in the exact layout the pipeline's
// attribute descriptions declare.
func (g *QuadGeometry) VertexBytes() []byte {
	out := make([]byte, 0, len(g.Vertices)*VertexStride)
	put := func(f float32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], stdmath.Float32bits(f))
		out = append(out, b[:]...)
	}
	for _, v := range g.Vertices {
		put(v.Position.X)
		put(v.Position.Y)
		put(v.Colour.X)
		put(v.Colour.Y)
		put(v.Colour.Z)
		put(v.Texcoord.X)
		put(v.Texcoord.Y)
	}
	return out
}

func (g *QuadGeometry) IndexBytes() []byte {
	out := make([]byte, len(g.Indices)*2)
	for i, idx := range g.Indices {
		binary.LittleEndian.PutUint16(out[i*2:], idx)
	}
	return out
}
