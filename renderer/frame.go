package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"logo-scene/core"
	"logo-scene/scene"
)

// Frame is everything a backend needs to draw one image. It is rebuilt from
// the scene on every Render call.
type Frame struct {
	// Drawing buffer size in physical pixels.
	Width  int
	Height int

	Clear      core.Color
	Ambient    core.Color
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CameraPos  mgl32.Vec3

	Lights []LightData
	Shadow ShadowPass
	Draws  []Draw
}

// LightData is a light resolved to world space.
type LightData struct {
	Kind      scene.LightKind
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Color     core.Color
	Intensity float32
	Distance  float32
	Decay     float32

	// Half extents of a rect-area light along its local X and Y axes.
	HalfWidth  mgl32.Vec3
	HalfHeight mgl32.Vec3

	CastShadow bool
}

// ShadowPass describes the single shadow map rendered from the first point
// light that casts shadows.
type ShadowPass struct {
	Enabled  bool
	ViewProj mgl32.Mat4
	Size     int
}

// Draw is one mesh to render.
type Draw struct {
	Node     *scene.Node
	Mesh     *scene.Mesh
	Material *scene.Material
	Model    mgl32.Mat4

	Wireframe     bool
	CastShadow    bool
	ReceiveShadow bool
	// Unlit draws are helper outlines shaded with the flat material color.
	Unlit bool
}

// Backend draws frames on a GPU.
type Backend interface {
	DrawFrame(f *Frame) error
	Destroy()
}
