package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/require"
)

// writeLogoGLB saves a small binary glTF: a "Logo" root holding a "Letter"
// quad, and a second "Badge" root reusing the quad.
func writeLogoGLB(t *testing.T) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{
		{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0.5, 0.5, 0}, {-0.5, 0.5, 0},
	})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 2, 3, 0})
	doc.Meshes = []*gltf.Mesh{{
		Name: "Quad",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "Logo", Children: []int{1}},
		{Name: "Letter", Mesh: gltf.Index(0), Translation: [3]float64{0, 0, 0.25}},
		{Name: "Badge", Mesh: gltf.Index(0), Translation: [3]float64{2, 0, 0}},
	}
	doc.Scenes[0].Nodes = []int{0, 2}

	path := filepath.Join(t.TempDir(), "logo.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

// writeFaces writes one solid PNG per name into dir, sized by sizes[i].
func writeFaces(t *testing.T, dir string, names []string, sizes []int) {
	t.Helper()
	for i, name := range names {
		img := image.NewRGBA(image.Rect(0, 0, sizes[i], sizes[i]))
		for y := 0; y < sizes[i]; y++ {
			for x := 0; x < sizes[i]; x++ {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			}
		}
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
	}
}

func sameSizes(n, size int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = size
	}
	return s
}
