package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"logo-scene/core"
	"logo-scene/scene"
)

var ErrNoCamera = errors.New("scene has no camera")

// Size is the viewport size in screen coordinates.
type Size struct {
	Width  int
	Height int
}

// Options configures a RenderEngine.
type Options struct {
	ClearColor    core.Color
	ShadowMapSize int
	Shadows       bool
}

func DefaultOptions() Options {
	return Options{
		ClearColor:    core.ColorBlack,
		ShadowMapSize: 1024,
	}
}

// Stats describes the most recent frame.
type Stats struct {
	Objects   int
	Vertices  int
	Triangles int
	Lights    int
	// Culled counts visible meshes skipped because they lie outside the
	// camera frustum.
	Culled int
}

// RenderEngine turns a scene into frames for a Backend and owns the output
// size and pixel ratio.
type RenderEngine struct {
	backend Backend
	log     *slog.Logger

	// ShadowsEnabled switches the shadow pass on. Bound to a panel checkbox.
	ShadowsEnabled bool
	ShadowMapSize  int
	ClearColor     core.Color

	size       Size
	pixelRatio float32
	stats      Stats
}

func NewRenderEngine(backend Backend, log *slog.Logger, opts Options) *RenderEngine {
	if log == nil {
		log = slog.Default()
	}
	if opts.ShadowMapSize <= 0 {
		opts.ShadowMapSize = DefaultOptions().ShadowMapSize
	}
	return &RenderEngine{
		backend:        backend,
		log:            log,
		ShadowsEnabled: opts.Shadows,
		ShadowMapSize:  opts.ShadowMapSize,
		ClearColor:     opts.ClearColor,
		pixelRatio:     1,
	}
}

func (re *RenderEngine) SetSize(width, height int) {
	re.size = Size{Width: width, Height: height}
}

// SetPixelRatio sets the ratio of drawing buffer pixels to screen
// coordinates. Non-positive ratios are ignored.
func (re *RenderEngine) SetPixelRatio(ratio float32) {
	if ratio <= 0 || math.IsNaN(float64(ratio)) {
		return
	}
	re.pixelRatio = ratio
}

func (re *RenderEngine) Size() Size { return re.size }

func (re *RenderEngine) PixelRatio() float32 { return re.pixelRatio }

// DrawingBufferSize is the size in pixels frames are rendered at.
func (re *RenderEngine) DrawingBufferSize() (int, int) {
	w := int(math.Floor(float64(float32(re.size.Width) * re.pixelRatio)))
	h := int(math.Floor(float64(float32(re.size.Height) * re.pixelRatio)))
	return w, h
}

// Render draws s from its camera.
func (re *RenderEngine) Render(s *scene.Scene) error {
	frame, err := re.BuildFrame(s)
	if err != nil {
		return err
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil
	}
	if err := re.backend.DrawFrame(frame); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

// BuildFrame collects the lights and the visible draws of s that intersect
// the camera frustum.
func (re *RenderEngine) BuildFrame(s *scene.Scene) (*Frame, error) {
	if s == nil || s.Camera == nil {
		return nil, ErrNoCamera
	}
	cam := s.Camera
	w, h := re.DrawingBufferSize()

	frame := &Frame{
		Width:      w,
		Height:     h,
		Clear:      re.ClearColor,
		Ambient:    s.Ambient,
		View:       cam.GetViewMatrix(),
		Projection: cam.GetProjectionMatrix(),
		CameraPos:  cam.Position,
	}

	stats := Stats{}
	for _, n := range s.Lights() {
		frame.Lights = append(frame.Lights, resolveLight(n))
	}
	stats.Lights = len(frame.Lights)

	frustum := scene.FrustumFromVP(frame.Projection.Mul4(frame.View))
	for _, n := range s.VisibleMeshes() {
		if box, ok := n.WorldAABB(); ok && !box.IntersectsFrustum(&frustum) {
			stats.Culled++
			continue
		}
		mat := n.Material
		if mat == nil {
			mat = scene.DefaultMaterial()
		}
		helper := n.IsHelper() || n.Mesh.DrawMode == scene.DrawLines
		frame.Draws = append(frame.Draws, Draw{
			Node:          n,
			Mesh:          n.Mesh,
			Material:      mat,
			Model:         n.GetWorldMatrix(),
			Wireframe:     n.Wireframe,
			CastShadow:    n.CastShadow && !helper,
			ReceiveShadow: n.ReceiveShadow && !helper,
			Unlit:         helper,
		})
		stats.Objects++
		stats.Vertices += len(n.Mesh.Vertices)
		stats.Triangles += n.Mesh.TriangleCount()
	}

	if re.ShadowsEnabled {
		for _, l := range frame.Lights {
			if l.Kind == scene.LightPoint && l.CastShadow {
				frame.Shadow = ShadowPass{
					Enabled:  true,
					ViewProj: pointShadowViewProj(l.Position),
					Size:     re.ShadowMapSize,
				}
				break
			}
		}
	}

	re.stats = stats
	return frame, nil
}

func (re *RenderEngine) Stats() Stats { return re.stats }

func (re *RenderEngine) Destroy() {
	re.backend.Destroy()
}

func resolveLight(n *scene.Node) LightData {
	l := n.Light
	world := n.GetWorldMatrix()
	data := LightData{
		Kind:       l.Kind,
		Position:   n.WorldPosition(),
		Direction:  n.WorldDirection(),
		Color:      l.Color,
		Intensity:  l.Intensity,
		Distance:   l.Distance,
		Decay:      l.Decay,
		CastShadow: n.CastShadow,
	}
	if l.Kind == scene.LightRectArea {
		data.HalfWidth = world.Col(0).Vec3().Mul(l.Width / 2)
		data.HalfHeight = world.Col(1).Vec3().Mul(l.Height / 2)
	}
	return data
}

// Shadow camera for point lights: a 90 degree perspective aimed at the
// origin, with the near and far planes of a default point light shadow.
const (
	shadowFOV  = 90
	shadowNear = 0.5
	shadowFar  = 500
)

func pointShadowViewProj(pos mgl32.Vec3) mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	if dir := pos.Normalize(); math.Abs(float64(dir.Dot(up))) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(pos, mgl32.Vec3{}, up)
	proj := mgl32.Perspective(mgl32.DegToRad(shadowFOV), 1, shadowNear, shadowFar)
	return proj.Mul4(view)
}
