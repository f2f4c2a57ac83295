package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking from Position at Target.
// FOV is the vertical field of view in degrees.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FOV       float32
	Aspect    float32
	NearPlane float32
	FarPlane  float32
}

func NewCamera(fov, aspect, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Up:        mgl32.Vec3{0, 1, 0},
		FOV:       fov,
		Aspect:    aspect,
		NearPlane: nearPlane,
		FarPlane:  farPlane,
	}
}

// SetAspect re-derives the aspect ratio from a viewport size. Degenerate
// sizes leave the camera untouched.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) SetPosition(x, y, z float32) {
	c.Position = mgl32.Vec3{x, y, z}
}

func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewProjectionMatrix() mgl32.Mat4 {
	return c.GetProjectionMatrix().Mul4(c.GetViewMatrix())
}

// GetForward is the unit vector from Position towards Target.
func (c *Camera) GetForward() mgl32.Vec3 {
	d := c.Target.Sub(c.Position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

func (c *Camera) GetRight() mgl32.Vec3 {
	return c.GetForward().Cross(c.Up).Normalize()
}
