package interact

import (
	"math"

	"github.com/chewxy/math32"

	"logo-scene/scene"
)

// Viewport receives the output size and pixel density of the drawing surface.
type Viewport interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float32)
}

// DefaultClickSlop is how far, in pixels, the pointer may travel between press
// and release for the pair to still count as a click.
const DefaultClickSlop = 4.0

// Controller turns window input into scene changes: resize updates the camera
// and viewport, clicks toggle wireframe on picked nodes, drags and wheel go
// to the orbit controls.
type Controller struct {
	Scene     *scene.Scene
	Viewport  Viewport
	Orbit     *OrbitControls
	Raycaster *Raycaster

	MaxPixelRatio float32
	ClickSlop     float64

	// CaptureMouse reports whether an overlay (the debug panel) owns the
	// pointer. Captured input never reaches the scene.
	CaptureMouse func() bool
	// OnPick is called after every click with the hits that were toggled.
	OnPick func(hits []Hit)

	width, height int

	pressed      bool
	pressButton  int
	travelled    float64
	lastX, lastY float64
}

func NewController(s *scene.Scene, viewport Viewport, orbit *OrbitControls) *Controller {
	return &Controller{
		Scene:         s,
		Viewport:      viewport,
		Orbit:         orbit,
		Raycaster:     NewRaycaster(),
		MaxPixelRatio: 2,
		ClickSlop:     DefaultClickSlop,
	}
}

// Resize applies a new window size. Sizes with a zero or negative side (a
// minimised window) are ignored.
func (c *Controller) Resize(width, height int, devicePixelRatio float32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height

	c.Scene.Camera.SetAspect(width, height)
	if c.Viewport != nil {
		c.Viewport.SetSize(width, height)
		c.Viewport.SetPixelRatio(math32.Min(devicePixelRatio, c.MaxPixelRatio))
	}
	if c.Orbit != nil {
		c.Orbit.SetViewportHeight(height)
	}
}

func (c *Controller) Size() (int, int) {
	return c.width, c.height
}

// Click casts a ray through window point (x, y) and flips Wireframe on every
// pickable node it hits, once per node.
func (c *Controller) Click(x, y float64) []Hit {
	if c.width <= 0 || c.height <= 0 {
		return nil
	}
	ndc := ScreenToNDC(x, y, c.width, c.height)
	ray := FromCamera(ndc, c.Scene.Camera)
	hits := c.Raycaster.Intersect(ray, c.Scene.Pickables.Nodes(), true)
	for _, h := range hits {
		h.Node.Wireframe = !h.Node.Wireframe
	}
	if c.OnPick != nil {
		c.OnPick(hits)
	}
	return hits
}

func (c *Controller) captured() bool {
	return c.CaptureMouse != nil && c.CaptureMouse()
}

// MouseButton handles a press or release at window point (x, y).
func (c *Controller) MouseButton(button int, pressed bool, x, y float64) {
	if pressed {
		if c.captured() {
			return
		}
		c.pressed = true
		c.pressButton = button
		c.travelled = 0
		c.lastX, c.lastY = x, y
		if c.Orbit != nil {
			c.Orbit.PointerDown(button, x, y)
		}
		return
	}

	if !c.pressed || button != c.pressButton {
		return
	}
	c.pressed = false
	if c.Orbit != nil {
		c.Orbit.PointerUp()
	}
	if button == 0 && c.travelled < c.ClickSlop {
		c.Click(x, y)
	}
}

func (c *Controller) MouseMove(x, y float64) {
	if c.pressed {
		c.travelled += math.Hypot(x-c.lastX, y-c.lastY)
		c.lastX, c.lastY = x, y
	}
	if c.Orbit != nil {
		c.Orbit.PointerMove(x, y)
	}
}

func (c *Controller) Scroll(_, yoff float64) {
	if c.captured() || c.Orbit == nil {
		return
	}
	c.Orbit.Dolly(float32(yoff))
}
