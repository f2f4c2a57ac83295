package interact

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"logo-scene/scene"
)

// Ray represents a ray in 3D space. Direction is unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit is the nearest intersection of a ray with one node's mesh.
type Hit struct {
	Node     *scene.Node
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	FaceIdx  int // triangle index in the mesh
}

// Raycaster intersects rays with scene nodes. Hits outside [Near, Far] are
// ignored.
type Raycaster struct {
	Near float32
	Far  float32
}

func NewRaycaster() *Raycaster {
	return &Raycaster{Near: 0, Far: math32.Inf(1)}
}

// ScreenToNDC maps window coordinates to normalized device coordinates with
// Y pointing up.
func ScreenToNDC(x, y float64, width, height int) mgl32.Vec2 {
	return mgl32.Vec2{
		float32(x/float64(width)*2 - 1),
		float32(-(y/float64(height))*2 + 1),
	}
}

// FromCamera builds the ray from the camera through a point given in
// normalized device coordinates.
func FromCamera(ndc mgl32.Vec2, camera *scene.Camera) Ray {
	inv := camera.GetViewProjectionMatrix().Inv()
	world := mgl32.TransformCoordinate(mgl32.Vec3{ndc[0], ndc[1], 0.5}, inv)
	return Ray{
		Origin:    camera.Position,
		Direction: world.Sub(camera.Position).Normalize(),
	}
}

// Intersect tests ray against nodes. With recursive set, descendants of each
// node are tested too. The result holds one Hit per intersected node, sorted
// nearest first. Hidden nodes and line meshes are skipped.
func (rc *Raycaster) Intersect(ray Ray, nodes []*scene.Node, recursive bool) []Hit {
	var hits []Hit
	seen := make(map[*scene.Node]bool)

	var visit func(n *scene.Node)
	visit = func(n *scene.Node) {
		if seen[n] || !n.Visible {
			return
		}
		seen[n] = true
		if hit, ok := rc.intersectNode(ray, n); ok {
			hits = append(hits, hit)
		}
		if recursive {
			for _, child := range n.Children {
				visit(child)
			}
		}
	}
	for _, n := range nodes {
		visit(n)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func (rc *Raycaster) intersectNode(ray Ray, node *scene.Node) (Hit, bool) {
	mesh := node.Mesh
	if mesh == nil || mesh.DrawMode != scene.DrawTriangles || len(mesh.Vertices) == 0 {
		return Hit{}, false
	}
	world := node.GetWorldMatrix()

	// Broad phase: AABB test
	t, ok := rayAABBIntersect(ray, mesh.LocalAABB.Transform(world))
	if !ok || t > rc.Far {
		return Hit{}, false
	}

	// Narrow phase: triangle test
	closest := Hit{Distance: math32.MaxFloat32}
	found := false
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		v0 := mgl32.TransformCoordinate(mesh.Vertices[mesh.Indices[i]].Position, world)
		v1 := mgl32.TransformCoordinate(mesh.Vertices[mesh.Indices[i+1]].Position, world)
		v2 := mgl32.TransformCoordinate(mesh.Vertices[mesh.Indices[i+2]].Position, world)

		d, hit := mollerTrumbore(ray, v0, v1, v2)
		if !hit || d < rc.Near || d > rc.Far || d >= closest.Distance {
			continue
		}
		found = true
		closest = Hit{
			Node:     node,
			Distance: d,
			Point:    ray.At(d),
			Normal:   v1.Sub(v0).Cross(v2.Sub(v0)).Normalize(),
			FaceIdx:  i / 3,
		}
	}
	return closest, found
}

// rayAABBIntersect returns the entry distance of the ray into box, or 0 when
// the origin is inside.
func rayAABBIntersect(ray Ray, box scene.AABB) (float32, bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)
	for a := 0; a < 3; a++ {
		inv := 1 / ray.Direction[a]
		t1 := (box.Min[a] - ray.Origin[a]) * inv
		t2 := (box.Max[a] - ray.Origin[a]) * inv
		if math32.IsNaN(t1) || math32.IsNaN(t2) {
			// Parallel ray lying exactly on a slab plane.
			continue
		}
		tmin = math32.Max(tmin, math32.Min(t1, t2))
		tmax = math32.Min(tmax, math32.Max(t1, t2))
	}
	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	return math32.Max(tmin, 0), true
}

// mollerTrumbore implements the Möller–Trumbore ray-triangle intersection
// algorithm. Both faces count.
func mollerTrumbore(ray Ray, v0, v1, v2 mgl32.Vec3) (float32, bool) {
	const epsilon = 1e-7

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, false // parallel
	}

	f := 1 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	return t, t > epsilon
}
