package math

import (
	stdmath "math"
	"testing"
)

const epsilon = 1e-5

func closeEnough(a, b float32) bool {
	return stdmath.Abs(float64(a-b)) < epsilon
}

func TestDegToRad(t *testing.T) {
	if got := DegToRad(180); !closeEnough(got, Pi) {
		t.Errorf("DegToRad(180) = %f, want %f", got, Pi)
	}
	if got := DegToRad(90); !closeEnough(got, Pi/2) {
		t.Errorf("DegToRad(90) = %f, want %f", got, Pi/2)
	}
}

func TestVec3Normalized(t *testing.T) {
	v := Vec3{X: 3, Y: 0, Z: 4}.Normalized()
	if !closeEnough(v.Length(), 1) {
		t.Errorf("normalized length = %f, want 1", v.Length())
	}
	zero := Vec3{}.Normalized()
	if zero != (Vec3{}) {
		t.Errorf("normalizing the zero vector = %v, want zero", zero)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	if got := x.Cross(y); got != (Vec3{Z: 1}) {
		t.Errorf("x cross y = %v, want +z", got)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := NewMat4Perspective(DegToRad(45), 4.0/3.0, 0.1, 10)
	id := NewMat4Identity()

	if got := m.Mul(id); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := id.Mul(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestMat4EulerZRotatesXAxisToY(t *testing.T) {
	m := NewMat4EulerZ(DegToRad(90))
	// The first column is the image of the x axis.
	if !closeEnough(m.Data[0], 0) || !closeEnough(m.Data[1], 1) {
		t.Errorf("first column = (%f, %f), want (0, 1)", m.Data[0], m.Data[1])
	}
}

func TestMat4PerspectiveClipMapping(t *testing.T) {
	m := NewMat4Perspective(DegToRad(45), 1, 0.1, 10)
	if m.Data[11] != -1 {
		t.Errorf("Data[11] = %f, want -1", m.Data[11])
	}
	// A point on the near plane maps to -1 after the perspective divide.
	near := float32(0.1)
	z := m.Data[10]*-near + m.Data[14]
	w := m.Data[11] * -near
	if !closeEnough(z/w, -1) {
		t.Errorf("near-plane depth = %f, want -1", z/w)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %d, want 5", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1, 0, 10) = %d, want 0", got)
	}
	if got := Clamp(uint32(99), uint32(0), uint32(10)); got != 10 {
		t.Errorf("Clamp(99, 0, 10) = %d, want 10", got)
	}
}

func TestMax(t *testing.T) {
	if got := Max(3, 7); got != 7 {
		t.Errorf("Max(3, 7) = %d, want 7", got)
	}
	if got := Max(2.5, 1.5); got != 2.5 {
		t.Errorf("Max(2.5, 1.5) = %f, want 2.5", got)
	}
}
