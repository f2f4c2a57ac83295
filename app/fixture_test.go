package app

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/require"

	"logo-scene/renderer"
	"logo-scene/scene"
)

type fakeBackend struct {
	frames int
	err    error
}

func (b *fakeBackend) DrawFrame(*renderer.Frame) error {
	if b.err != nil {
		return b.err
	}
	b.frames++
	return nil
}

func (b *fakeBackend) Destroy() {}

type fakeClock struct {
	t float64
}

func (c *fakeClock) Elapsed() float64 { return c.t }

type fakeHost struct {
	closeAfter int
	swaps      int
	polls      int
}

func (h *fakeHost) ShouldClose() bool { return h.closeAfter > 0 && h.swaps >= h.closeAfter }

func (h *fakeHost) PollEvents() { h.polls++ }

func (h *fakeHost) SwapBuffers() { h.swaps++ }

func (h *fakeHost) GetFramebufferSize() (int, int) { return 640, 480 }

type fakeOverlay struct {
	dts []float32
}

func (o *fakeOverlay) Draw(dt float32, _, _ int) { o.dts = append(o.dts, dt) }

// writeLogo saves a two-letter logo as a binary glTF: one root holding two
// quads side by side.
func writeLogo(t *testing.T, dir string) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{
		{-0.1, -0.1, 0}, {0.1, -0.1, 0}, {0.1, 0.1, 0}, {-0.1, 0.1, 0},
	})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 2, 3, 0})
	doc.Meshes = []*gltf.Mesh{{
		Name: "Letter",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "C", Mesh: gltf.Index(0), Translation: [3]float64{-0.2, 0, 0}},
		{Name: "B", Mesh: gltf.Index(0), Translation: [3]float64{0.2, 0, 0}},
	}
	doc.Scenes[0].Nodes = []int{0, 1}

	path := filepath.Join(dir, "logo.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

// writeEnvMap writes six 2x2 faces named after the cube face convention.
func writeEnvMap(t *testing.T, dir string) []string {
	t.Helper()
	names := scene.CubeFaceNames[:]
	for _, name := range names {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))))
		require.NoError(t, f.Close())
	}
	return names
}
