package interact

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func azimuth(p mgl32.Vec3) float32 {
	return math32.Atan2(p.X(), p.Z())
}

func TestOrbitRotateWithoutDamping(t *testing.T) {
	cam := frontCamera(5)
	o := NewOrbitControls(cam, 60, 4)

	o.Rotate(math32.Pi/2, 0)
	o.Update()
	assert.InDelta(t, math32.Pi/2, azimuth(cam.Position), 1e-4)
	assert.InDelta(t, 5, cam.Position.Len(), 1e-4)
	assert.Equal(t, mgl32.Vec3{}, cam.Target)

	// nothing left to apply
	o.Update()
	assert.InDelta(t, math32.Pi/2, azimuth(cam.Position), 1e-4)
}

func TestOrbitDampingCoversTheSameAngle(t *testing.T) {
	cam := frontCamera(5)
	o := NewOrbitControls(cam, 60, 4)
	o.EnableDamping = true

	o.Rotate(0.5, 0)
	o.Update()
	first := azimuth(cam.Position)
	assert.Less(t, first, float32(0.5), "damped motion is spread over frames")
	assert.Greater(t, first, float32(0))

	for i := 0; i < 600; i++ {
		o.Update()
	}
	assert.InDelta(t, 0.5, azimuth(cam.Position), 0.02)
}

func TestOrbitPolarClamp(t *testing.T) {
	cam := frontCamera(5)
	o := NewOrbitControls(cam, 60, 4)

	o.Rotate(0, -10)
	o.Update()
	assert.Greater(t, cam.Position.Y(), float32(4.99))
	assert.False(t, math32.IsNaN(cam.GetRight().X()), "camera never sits exactly on the pole")
}

func TestOrbitDolly(t *testing.T) {
	cam := frontCamera(5)
	o := NewOrbitControls(cam, 60, 4)

	o.Dolly(1)
	o.Update()
	assert.InDelta(t, 5*0.95, cam.Position.Len(), 1e-4)

	o.MinDistance = 4
	o.Dolly(100)
	o.Update()
	assert.InDelta(t, 4, cam.Position.Len(), 1e-4)
}

func TestOrbitPanMovesTarget(t *testing.T) {
	cam := frontCamera(5)
	o := NewOrbitControls(cam, 60, 4)

	o.Pan(10, 0)
	o.Update()
	assert.Equal(t, mgl32.Vec3{}, o.Target, "no viewport height yet")

	o.SetViewportHeight(600)
	o.PointerDown(2, 100, 100)
	o.PointerMove(160, 100)
	o.PointerUp()
	o.Update()
	assert.Less(t, o.Target.X(), float32(0), "dragging right moves the scene right")
	assert.InDelta(t, 0, o.Target.Y(), 1e-5)
	assert.InDelta(t, 5, cam.Position.Sub(o.Target).Len(), 1e-4)
}

func TestOrbitDragRotates(t *testing.T) {
	cam := frontCamera(5)
	o := NewOrbitControls(cam, 60, 4)
	o.SetViewportHeight(600)

	o.PointerDown(0, 300, 300)
	assert.True(t, o.Dragging())
	o.PointerMove(450, 300)
	o.PointerUp()
	o.Update()
	// a full viewport height of drag is one turn
	assert.InDelta(t, -math32.Pi/2, azimuth(cam.Position), 1e-4)
}
