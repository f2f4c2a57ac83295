package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
	ColorRed   = Color{1, 0, 0, 1}
)

// ColorHex builds an opaque color from a 0xRRGGBB value.
func ColorHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
		A: 1,
	}
}

func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Transform is a position, an XYZ-order Euler rotation in radians and a scale.
// The fields are plain arrays so controls can bind straight to a component,
// e.g. &t.Rotation[1].
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Scale: mgl32.Vec3{1, 1, 1},
	}
}

// GetMatrix returns T * Rx * Ry * Rz * S.
func (t Transform) GetMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(RotationXYZ(t.Rotation)).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// RotationXYZ converts XYZ-order Euler angles to a rotation matrix.
func RotationXYZ(euler mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(euler[0]).
		Mul4(mgl32.HomogRotate3DY(euler[1])).
		Mul4(mgl32.HomogRotate3DZ(euler[2]))
}

// Forward is the local -Z axis after rotation, the direction lights and
// cameras face.
func (t Transform) Forward() mgl32.Vec3 {
	return RotationXYZ(t.Rotation).Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3().Normalize()
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// EulerXYZ extracts XYZ-order Euler angles from the rotation part of m.
// m must not contain scale.
func EulerXYZ(m mgl32.Mat4) mgl32.Vec3 {
	m13 := Clamp(m.At(0, 2), -1, 1)
	y := math32.Asin(m13)
	if math32.Abs(m13) < 0.9999999 {
		return mgl32.Vec3{
			math32.Atan2(-m.At(1, 2), m.At(2, 2)),
			y,
			math32.Atan2(-m.At(0, 1), m.At(0, 0)),
		}
	}
	return mgl32.Vec3{math32.Atan2(m.At(2, 1), m.At(1, 1)), y, 0}
}
