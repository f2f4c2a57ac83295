package interact

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"logo-scene/scene"
)

// OrbitControls rotates the camera around Target on left drag, pans on right
// or middle drag and dollies on wheel. With damping the drag velocity decays
// through a critically damped spring instead of stopping dead.
type OrbitControls struct {
	Camera *scene.Camera
	Target mgl32.Vec3

	EnableDamping bool
	RotateSpeed   float32
	ZoomSpeed     float32
	PanSpeed      float32
	MinDistance   float32
	MaxDistance   float32

	// Polar angle limits, measured from +Y.
	MinPolarAngle float32
	MaxPolarAngle float32

	yaw, pitch axis
	panX, panY axis
	zoom       float64

	fps       float64
	frequency float64

	viewportHeight int
	state          dragState
	lastX, lastY   float64
}

type dragState int

const (
	dragNone dragState = iota
	dragRotate
	dragPan
)

// axis tracks one damped velocity.
type axis struct {
	velocity float64
	accel    float64
	spring   harmonica.Spring
}

func newAxis(fps int, frequency float64) axis {
	return axis{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, 1.0)}
}

// step returns the velocity to apply this frame and decays it.
func (a *axis) step(damping bool) float64 {
	v := a.velocity
	if damping {
		a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	} else {
		a.velocity, a.accel = 0, 0
	}
	return v
}

func (a *axis) add(delta float64) {
	a.velocity += delta
}

const polarEpsilon = 1e-4

// NewOrbitControls orbits camera around the origin. fps is the expected
// update rate and frequency the spring's angular frequency.
func NewOrbitControls(camera *scene.Camera, fps int, frequency float64) *OrbitControls {
	if fps <= 0 {
		fps = 60
	}
	if frequency <= 0 {
		frequency = 4.0
	}
	c := &OrbitControls{
		Camera:        camera,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MinDistance:   0.1,
		MaxDistance:   camera.FarPlane,
		MinPolarAngle: 0,
		MaxPolarAngle: math32.Pi,
		fps:           float64(fps),
		frequency:     frequency,
	}
	c.yaw = newAxis(fps, frequency)
	c.pitch = newAxis(fps, frequency)
	c.panX = newAxis(fps, frequency)
	c.panY = newAxis(fps, frequency)
	camera.LookAt(c.Target)
	return c
}

// gain scales an input delta so the damped motion covers the same total
// angle as an undamped one: a critically damped decay integrates to 2/w
// seconds of the initial velocity.
func (c *OrbitControls) gain() float64 {
	if !c.EnableDamping {
		return 1
	}
	return c.frequency / (2 * c.fps)
}

func (c *OrbitControls) SetViewportHeight(h int) {
	c.viewportHeight = h
}

// Rotate queues a rotation in radians around the vertical axis (yaw) and
// towards the poles (pitch).
func (c *OrbitControls) Rotate(yaw, pitch float32) {
	g := c.gain()
	c.yaw.add(float64(yaw) * g)
	c.pitch.add(float64(pitch) * g)
}

// Pan queues a screen-space translation in pixels.
func (c *OrbitControls) Pan(dx, dy float32) {
	h := c.viewportHeight
	if h <= 0 {
		return
	}
	dist := c.Camera.Position.Sub(c.Target).Len()
	// world units per pixel at the target plane
	unit := 2 * dist * math32.Tan(mgl32.DegToRad(c.Camera.FOV)/2) / float32(h)
	g := c.gain()
	c.panX.add(float64(-dx*unit*c.PanSpeed) * g)
	c.panY.add(float64(dy*unit*c.PanSpeed) * g)
}

// Dolly scales the camera distance. Positive steps move closer.
func (c *OrbitControls) Dolly(steps float32) {
	c.zoom += float64(steps*c.ZoomSpeed) * math.Log(0.95)
}

// PointerDown starts a drag. button 0 rotates, 1 and 2 pan.
func (c *OrbitControls) PointerDown(button int, x, y float64) {
	switch button {
	case 0:
		c.state = dragRotate
	case 1, 2:
		c.state = dragPan
	default:
		return
	}
	c.lastX, c.lastY = x, y
}

func (c *OrbitControls) PointerMove(x, y float64) {
	if c.state == dragNone {
		return
	}
	dx, dy := float32(x-c.lastX), float32(y-c.lastY)
	c.lastX, c.lastY = x, y

	switch c.state {
	case dragRotate:
		h := float32(c.viewportHeight)
		if h <= 0 {
			return
		}
		c.Rotate(-2*math32.Pi*dx/h*c.RotateSpeed, -2*math32.Pi*dy/h*c.RotateSpeed)
	case dragPan:
		c.Pan(dx, dy)
	}
}

func (c *OrbitControls) PointerUp() {
	c.state = dragNone
}

func (c *OrbitControls) Dragging() bool {
	return c.state != dragNone
}

// Update applies pending motion to the camera. Call once per frame.
func (c *OrbitControls) Update() {
	cam := c.Camera
	offset := cam.Position.Sub(c.Target)
	radius := offset.Len()
	if radius == 0 {
		radius = c.MinDistance
		offset = mgl32.Vec3{0, 0, radius}
	}

	theta := math32.Atan2(offset[0], offset[2])
	phi := math32.Acos(clamp(offset[1]/radius, -1, 1))

	theta += float32(c.yaw.step(c.EnableDamping))
	phi += float32(c.pitch.step(c.EnableDamping))
	phi = clamp(phi, math32.Max(c.MinPolarAngle, polarEpsilon), math32.Min(c.MaxPolarAngle, math32.Pi-polarEpsilon))

	radius *= float32(math.Exp(c.zoom))
	c.zoom = 0
	maxDist := c.MaxDistance
	if maxDist <= c.MinDistance {
		maxDist = math32.MaxFloat32
	}
	radius = clamp(radius, c.MinDistance, maxDist)

	// Pan along the camera's screen axes.
	right := cam.GetRight()
	up := right.Cross(cam.GetForward()).Normalize()
	pan := right.Mul(float32(c.panX.step(c.EnableDamping))).
		Add(up.Mul(float32(c.panY.step(c.EnableDamping))))
	c.Target = c.Target.Add(pan)

	sinPhi := math32.Sin(phi)
	cam.Position = c.Target.Add(mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	})
	cam.LookAt(c.Target)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
