package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logo-scene/core"
)

func TestCreateTorusCounts(t *testing.T) {
	m := CreateTorus(0.7, 0.2, 16, 100)
	assert.Len(t, m.Vertices, 17*101)
	assert.Len(t, m.Indices, 16*100*6)
	assert.Equal(t, 16*100*2, m.TriangleCount())
	assert.Equal(t, DrawTriangles, m.DrawMode)

	// ring in the XY plane: outer radius 0.9, thickness 0.4
	assert.InDelta(t, 0.9, m.LocalAABB.Max.X(), 1e-4)
	assert.InDelta(t, -0.9, m.LocalAABB.Min.Y(), 1e-4)
	assert.InDelta(t, 0.2, m.LocalAABB.Max.Z(), 1e-4)

	for _, idx := range m.Indices {
		require.Less(t, int(idx), len(m.Vertices))
	}
}

func TestCreateTorusNormalsPointOut(t *testing.T) {
	m := CreateTorus(1, 0.25, 8, 12)
	for _, v := range m.Vertices {
		assert.InDelta(t, 1, v.Normal.Len(), 1e-4)
	}
	first := m.Vertices[0]
	assert.InDelta(t, 1.25, first.Position.X(), 1e-5)
	assert.InDelta(t, 1, first.Normal.X(), 1e-5)
}

func TestRectOutlineIsLines(t *testing.T) {
	m := CreateRectOutline()
	assert.Equal(t, DrawLines, m.DrawMode)
	assert.Zero(t, m.TriangleCount())
	assert.Len(t, m.Indices, 10)
}

func TestPickablesRegistry(t *testing.T) {
	p := NewPickables()
	a, b := NewNode("a"), NewNode("b")

	p.Add(a)
	p.Add(b)
	p.Add(a)
	assert.Equal(t, 2, p.Len())
	assert.True(t, a.Pickable)

	nodes := p.Nodes()
	nodes[0] = nil
	assert.Same(t, a, p.Nodes()[0], "Nodes returns a copy")

	p.Remove(a)
	assert.False(t, p.Contains(a))
	assert.False(t, a.Pickable)
	assert.Equal(t, []*Node{b}, p.Nodes())
}

func TestSceneAddPickable(t *testing.T) {
	s := NewScene()
	torus := NewMeshNode("torus", CreateTorus(0.7, 0.2, 16, 100), DefaultMaterial())
	s.AddPickable(torus)
	s.Add(NewLightNode("light", NewPointLight(core.ColorWhite, 1)))

	assert.Same(t, s.Root, torus.Parent)
	assert.True(t, s.Pickables.Contains(torus))
	assert.Equal(t, 2, s.NodeCount())
	assert.Len(t, s.Lights(), 1)
	assert.Equal(t, []*Node{torus}, s.VisibleMeshes())

	s.Remove(torus)
	assert.Nil(t, torus.Parent)
	assert.Zero(t, s.Pickables.Len())
}

func TestHiddenSubtreesAreSkipped(t *testing.T) {
	s := NewScene()
	group := NewNode("group")
	child := NewMeshNode("child", CreateCube(1), nil)
	group.AddChild(child)
	s.Add(group)

	group.Visible = false
	assert.False(t, child.IsVisible())
	assert.Empty(t, s.VisibleMeshes())

	group.Visible = true
	assert.True(t, child.IsVisible())
	assert.Len(t, s.VisibleMeshes(), 1)
}

func TestWorldMatrixFollowsParent(t *testing.T) {
	parent := NewNode("parent")
	parent.SetPosition(1, 0, 0)
	child := NewNode("child")
	child.SetPosition(0, 2, 0)
	parent.AddChild(child)

	assertVec3(t, mgl32.Vec3{1, 2, 0}, child.WorldPosition(), 1e-5)

	parent.Transform.Position[0] = 5
	assertVec3(t, mgl32.Vec3{5, 2, 0}, child.WorldPosition(), 1e-5, "no stale cache")
}

func TestRectAreaLightHelperTracksLight(t *testing.T) {
	light := NewLightNode("red", NewRectAreaLight(core.ColorHex(0xff4f00), 20, 0.75, 0.5))
	light.SetPosition(0.5, 0.5, 1)
	light.SetRotation(2, 2.5, 0)

	helper := NewRectAreaLightHelper("redHelper", light)
	assert.False(t, helper.Visible)
	assert.True(t, helper.IsHelper())
	assert.Equal(t, light.Light.Color, helper.Material.Color)

	assertVec3(t, light.WorldPosition(), helper.WorldPosition(), 1e-5)
	// outline corners span the light rectangle
	corner := mgl32.TransformCoordinate(mgl32.Vec3{0.5, 0.5, 0}, helper.GetWorldMatrix())
	local := light.GetWorldMatrix().Inv()
	assertVec3(t, mgl32.Vec3{0.375, 0.25, 0}, mgl32.TransformCoordinate(corner, local), 1e-4)

	light.Transform.Rotation[2] = 1
	assertVec3(t, light.WorldDirection(), helper.WorldDirection(), 1e-5)
}

func TestCameraAspect(t *testing.T) {
	c := NewCamera(45, 1, 0.1, 100)
	c.SetAspect(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, c.Aspect, 1e-6)

	c.SetAspect(0, 1080)
	assert.InDelta(t, 1920.0/1080.0, c.Aspect, 1e-6)
}

func TestCubeTextureTwoPhase(t *testing.T) {
	cube := NewCubeTexture("env")
	m := &Material{EnvMap: cube}
	assert.False(t, m.Reflective())
	assert.Zero(t, cube.Size())

	var faces [6]*Texture
	for i := range faces {
		faces[i] = &Texture{Width: 4, Height: 4, Pixels: make([]byte, 64)}
	}
	cube.SetFaces(faces)
	assert.True(t, m.Reflective())
	assert.Equal(t, 4, cube.Size())
	assert.Equal(t, 1, cube.Revision())
}

func TestFind(t *testing.T) {
	s := NewScene()
	a := NewNode("a")
	b := NewNode("b")
	a.AddChild(b)
	s.Add(a)
	assert.Same(t, b, s.Find("b"))
	assert.Nil(t, s.Find("missing"))
}

func TestFrustumFromVP(t *testing.T) {
	c := NewCamera(90, 1, 1, 10)
	c.LookAt(mgl32.Vec3{0, 0, -1})
	f := FrustumFromVP(c.GetViewProjectionMatrix())

	inside := AABB{Min: mgl32.Vec3{-0.5, -0.5, -3}, Max: mgl32.Vec3{0.5, 0.5, -2}}
	assert.True(t, inside.IntersectsFrustum(&f))

	behind := AABB{Min: mgl32.Vec3{-0.5, -0.5, 1}, Max: mgl32.Vec3{0.5, 0.5, 2}}
	assert.False(t, behind.IntersectsFrustum(&f))

	beyondFar := AABB{Min: mgl32.Vec3{-0.5, -0.5, -20}, Max: mgl32.Vec3{0.5, 0.5, -11}}
	assert.False(t, beyondFar.IntersectsFrustum(&f))

	// 90 degrees: at depth 2 the view spans x in [-2, 2]
	left := AABB{Min: mgl32.Vec3{-4, 0, -2}, Max: mgl32.Vec3{-2.5, 1, -2}}
	assert.False(t, left.IntersectsFrustum(&f))

	straddling := AABB{Min: mgl32.Vec3{-3, 0, -2}, Max: mgl32.Vec3{-1.5, 1, -2}}
	assert.True(t, straddling.IntersectsFrustum(&f))
}

func TestWorldAABB(t *testing.T) {
	n := NewMeshNode("cube", CreateCube(2), nil)
	n.SetPosition(3, 0, 0)
	box, ok := n.WorldAABB()
	require.True(t, ok)
	assertVec3(t, mgl32.Vec3{2, -1, -1}, box.Min, 1e-5)
	assertVec3(t, mgl32.Vec3{4, 1, 1}, box.Max, 1e-5)

	_, ok = NewNode("empty").WorldAABB()
	assert.False(t, ok)
}

func assertVec3(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
