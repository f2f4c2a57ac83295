package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logo-scene/scene"
)

type fakeViewport struct {
	width, height int
	ratio         float32
	sizeCalls     int
}

func (v *fakeViewport) SetSize(w, h int) {
	v.width, v.height = w, h
	v.sizeCalls++
}

func (v *fakeViewport) SetPixelRatio(r float32) { v.ratio = r }

func newTestController(t *testing.T) (*Controller, *fakeViewport, *scene.Scene) {
	t.Helper()
	s := scene.NewScene()
	s.SetCamera(frontCamera(5))
	vp := &fakeViewport{}
	c := NewController(s, vp, NewOrbitControls(s.Camera, 60, 4))
	c.Resize(800, 600, 1)
	return c, vp, s
}

func TestResize(t *testing.T) {
	c, vp, s := newTestController(t)

	c.Resize(1920, 1080, 3)
	assert.InDelta(t, 1920.0/1080.0, s.Camera.Aspect, 1e-6)
	assert.Equal(t, 1920, vp.width)
	assert.Equal(t, 1080, vp.height)
	assert.Equal(t, float32(2), vp.ratio, "ratio is capped")

	c.Resize(1000, 500, 1.5)
	assert.Equal(t, float32(1.5), vp.ratio)
	assert.InDelta(t, 2, s.Camera.Aspect, 1e-6)

	w, h := c.Size()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 500, h)
}

func TestResizeIgnoresMinimised(t *testing.T) {
	c, vp, s := newTestController(t)
	calls := vp.sizeCalls
	aspect := s.Camera.Aspect

	c.Resize(0, 600, 1)
	c.Resize(800, -1, 1)
	assert.Equal(t, calls, vp.sizeCalls)
	assert.Equal(t, aspect, s.Camera.Aspect)
}

func TestClickTogglesHitNodes(t *testing.T) {
	c, _, s := newTestController(t)
	front := cubeAt("front", 0, 0, 1)
	back := cubeAt("back", 0, 0, -1)
	aside := cubeAt("aside", 3, 0, 0)
	s.AddPickable(front)
	s.AddPickable(back)
	s.AddPickable(aside)
	unregistered := cubeAt("unregistered", 0, 0, 0)
	s.Add(unregistered)

	hits := c.Click(410, 295)
	require.Len(t, hits, 2)
	assert.Same(t, front, hits[0].Node)
	assert.True(t, front.Wireframe)
	assert.True(t, back.Wireframe)
	assert.False(t, aside.Wireframe)
	assert.False(t, unregistered.Wireframe, "only registered nodes are candidates")

	c.Click(410, 295)
	assert.False(t, front.Wireframe, "second click restores")
	assert.False(t, back.Wireframe)
}

func TestClickTogglesModelChildrenIndependently(t *testing.T) {
	c, _, s := newTestController(t)
	shared := scene.DefaultMaterial()
	model := scene.NewNode("logo")
	left := scene.NewMeshNode("left", scene.CreateCube(1), shared)
	left.SetPosition(-1, 0, 0)
	right := scene.NewMeshNode("right", scene.CreateCube(1), shared)
	right.SetPosition(1, 0, 0)
	model.AddChild(left)
	model.AddChild(right)
	s.AddPickable(model)

	// ray through the left cube only
	hits := c.Click(300, 295)
	require.Len(t, hits, 1)
	assert.True(t, left.Wireframe)
	assert.False(t, right.Wireframe)
}

func TestClickBeforeResizeIsIgnored(t *testing.T) {
	s := scene.NewScene()
	s.SetCamera(frontCamera(5))
	s.AddPickable(cubeAt("c", 0, 0, 0))
	c := NewController(s, nil, nil)
	assert.Nil(t, c.Click(0, 0))
}

func TestMouseReleaseWithinSlopClicks(t *testing.T) {
	c, _, s := newTestController(t)
	cube := cubeAt("c", 0, 0, 0)
	s.AddPickable(cube)
	var picked []Hit
	c.OnPick = func(h []Hit) { picked = h }

	c.MouseButton(0, true, 410, 295)
	c.MouseMove(411, 296)
	c.MouseButton(0, false, 411, 296)
	assert.True(t, cube.Wireframe)
	assert.Len(t, picked, 1)
}

func TestDragDoesNotClick(t *testing.T) {
	c, _, s := newTestController(t)
	cube := cubeAt("c", 0, 0, 0)
	s.AddPickable(cube)

	c.MouseButton(0, true, 410, 295)
	assert.True(t, c.Orbit.Dragging())
	c.MouseMove(430, 295)
	c.MouseMove(410, 295)
	c.MouseButton(0, false, 410, 295)
	assert.False(t, cube.Wireframe, "path length counts, not displacement")
	assert.False(t, c.Orbit.Dragging())
}

func TestRightButtonNeverClicks(t *testing.T) {
	c, _, s := newTestController(t)
	cube := cubeAt("c", 0, 0, 0)
	s.AddPickable(cube)

	c.MouseButton(1, true, 410, 295)
	c.MouseButton(1, false, 410, 295)
	assert.False(t, cube.Wireframe)
}

func TestCapturedPressIsIgnored(t *testing.T) {
	c, _, s := newTestController(t)
	cube := cubeAt("c", 0, 0, 0)
	s.AddPickable(cube)
	c.CaptureMouse = func() bool { return true }

	c.MouseButton(0, true, 410, 295)
	c.MouseButton(0, false, 410, 295)
	assert.False(t, cube.Wireframe)
	assert.False(t, c.Orbit.Dragging())

	c.Scroll(0, 5)
	c.Orbit.Update()
	assert.InDelta(t, 5, s.Camera.Position.Len(), 1e-4)
}
