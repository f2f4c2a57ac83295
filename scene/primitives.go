package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"logo-scene/core"
)

// CreateTorus generates a ring lying in the XY plane around the Z axis.
// radialSegments subdivide the tube cross-section, tubularSegments run
// around the ring.
func CreateTorus(radius, tube float32, radialSegments, tubularSegments int) *Mesh {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if tubularSegments < 3 {
		tubularSegments = 3
	}

	vertices := make([]core.Vertex, 0, (radialSegments+1)*(tubularSegments+1))
	indices := make([]uint32, 0, radialSegments*tubularSegments*6)

	for j := 0; j <= radialSegments; j++ {
		v := float32(j) / float32(radialSegments) * 2 * math32.Pi
		cosV, sinV := math32.Cos(v), math32.Sin(v)

		for i := 0; i <= tubularSegments; i++ {
			u := float32(i) / float32(tubularSegments) * 2 * math32.Pi
			cosU, sinU := math32.Cos(u), math32.Sin(u)

			pos := mgl32.Vec3{
				(radius + tube*cosV) * cosU,
				(radius + tube*cosV) * sinU,
				tube * sinV,
			}
			center := mgl32.Vec3{radius * cosU, radius * sinU, 0}

			vertices = append(vertices, core.Vertex{
				Position: pos,
				Normal:   pos.Sub(center).Normalize(),
				UV:       mgl32.Vec2{float32(i) / float32(tubularSegments), float32(j) / float32(radialSegments)},
			})
		}
	}

	stride := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := stride*j + i - 1
			b := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i

			indices = append(indices, a, b, d)
			indices = append(indices, b, c, d)
		}
	}

	return CreateMeshFromData("Torus", vertices, indices)
}

// CreateRectOutline is a unit square outline in the XY plane centered on
// the origin plus a short -Z tick marking the facing direction.
func CreateRectOutline() *Mesh {
	normal := mgl32.Vec3{0, 0, 1}
	vertices := []core.Vertex{
		{Position: mgl32.Vec3{-0.5, -0.5, 0}, Normal: normal},
		{Position: mgl32.Vec3{0.5, -0.5, 0}, Normal: normal},
		{Position: mgl32.Vec3{0.5, 0.5, 0}, Normal: normal},
		{Position: mgl32.Vec3{-0.5, 0.5, 0}, Normal: normal},
		{Position: mgl32.Vec3{0, 0, 0}, Normal: normal},
		{Position: mgl32.Vec3{0, 0, -0.5}, Normal: normal},
	}
	indices := []uint32{0, 1, 1, 2, 2, 3, 3, 0, 4, 5}
	m := CreateMeshFromData("RectOutline", vertices, indices)
	m.DrawMode = DrawLines
	return m
}

// CreateCube generates an axis-aligned cube centered on the origin.
func CreateCube(size float32) *Mesh {
	s := size / 2
	type face struct {
		normal mgl32.Vec3
		u, v   mgl32.Vec3
	}
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		center := f.normal.Mul(s)
		corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			pos := center.Add(f.u.Mul(c[0] * s)).Add(f.v.Mul(c[1] * s))
			vertices = append(vertices, core.Vertex{
				Position: pos,
				Normal:   f.normal,
				UV:       mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return CreateMeshFromData("Cube", vertices, indices)
}
