package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestColorHex(t *testing.T) {
	c := ColorHex(0xff4f00)
	assert.Equal(t, float32(1), c.R)
	assert.InDelta(t, 0x4f/255.0, c.G, 1e-6)
	assert.Equal(t, float32(0), c.B)
	assert.Equal(t, float32(1), c.A)
}

func TestTransformOrder(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Rotation = mgl32.Vec3{0, mgl32.DegToRad(90), 0}
	tr.Scale = mgl32.Vec3{2, 2, 2}

	// scale, then rotate +X onto -Z, then translate
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.GetMatrix())
	assert.InDelta(t, 1, p.X(), 1e-5)
	assert.InDelta(t, 2, p.Y(), 1e-5)
	assert.InDelta(t, 1, p.Z(), 1e-5)
}

func TestForwardDefault(t *testing.T) {
	f := NewTransform().Forward()
	assert.InDelta(t, -1, f.Z(), 1e-6)
}

func TestEulerXYZRoundTrip(t *testing.T) {
	for _, euler := range []mgl32.Vec3{
		{0, 0, 0},
		{2, 2.5, 0},
		{-2, -2.5, 0},
		{0.3, -0.7, 1.1},
		{mgl32.DegToRad(90), 0, 0},
	} {
		got := EulerXYZ(RotationXYZ(euler))
		// compare matrices: distinct angle triples can describe one rotation
		want, back := RotationXYZ(euler), RotationXYZ(got)
		assert.InDeltaSlice(t, want[:], back[:], 1e-5, "euler %v got %v", euler, got)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(3, -1, 1))
	assert.Equal(t, float32(-1), Clamp(-3, -1, 1))
	assert.Equal(t, float32(0.5), Clamp(0.5, -1, 1))
}
