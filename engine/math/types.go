package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Mat4 is a 4x4 matrix in column-major order, matching what the shaders
// expect for the uniform block.
type Mat4 struct {
	Data [16]float32
}

// Vertex2D is the vertex layout of the quad: a 2D position, a colour and a
// texture coordinate. The field order is the attribute order in the vertex
// shader.
type Vertex2D struct {
	Position Vec2
	Colour   Vec3
	Texcoord Vec2
}
