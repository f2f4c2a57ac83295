package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"logo-scene/core"
)

// Node represents an object in the scene graph. A node carries at most one
// of Mesh or Light; helper nodes carry a Mesh and track another node.
type Node struct {
	Name      string
	Transform core.Transform
	Parent    *Node
	Children  []*Node
	Mesh      *Mesh
	Material  *Material
	Light     *Light
	Visible   bool
	Id        uint32

	// Pickable is set when the node is registered in a Pickables set.
	Pickable bool
	// Wireframe draws the node's mesh as edges instead of filled faces.
	Wireframe bool

	CastShadow    bool
	ReceiveShadow bool

	// Tracks makes the node follow another node's world transform, scaled by
	// the tracked light's width and height. Used for light helpers, which sit
	// at the root yet must stay glued to their light.
	Tracks *Node
}

var nodeIdCounter uint32 = 0

func NewNode(name string) *Node {
	nodeIdCounter++
	return &Node{
		Name:      name,
		Transform: core.NewTransform(),
		Children:  make([]*Node, 0),
		Visible:   true,
		Id:        nodeIdCounter,
	}
}

// NewMeshNode creates a node drawing mesh with material.
func NewMeshNode(name string, mesh *Mesh, material *Material) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	n.Material = material
	return n
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// GetWorldMatrix composes the local matrices up to the root. It is computed
// on every call because panel bindings write transform fields directly.
func (n *Node) GetWorldMatrix() mgl32.Mat4 {
	if n.Tracks != nil {
		m := n.Tracks.GetWorldMatrix()
		if l := n.Tracks.Light; l != nil && l.Kind == LightRectArea {
			m = m.Mul4(mgl32.Scale3D(l.Width, l.Height, 1))
		}
		return m
	}
	local := n.Transform.GetMatrix()
	if n.Parent != nil {
		return n.Parent.GetWorldMatrix().Mul4(local)
	}
	return local
}

// WorldPosition is the translation part of the world matrix.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.GetWorldMatrix().Col(3).Vec3()
}

// WorldDirection is the node's local -Z axis in world space.
func (n *Node) WorldDirection() mgl32.Vec3 {
	dir := n.GetWorldMatrix().Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
	if dir.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return dir.Normalize()
}

// IsVisible reports whether the node and all of its ancestors are visible.
func (n *Node) IsVisible() bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if !cur.Visible {
			return false
		}
	}
	return true
}

func (n *Node) SetPosition(x, y, z float32) {
	n.Transform.Position = mgl32.Vec3{x, y, z}
}

func (n *Node) SetRotation(x, y, z float32) {
	n.Transform.Rotation = mgl32.Vec3{x, y, z}
}

// Traverse visits all nodes in the graph
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// TraverseVisible visits visible nodes only, skipping hidden subtrees.
func (n *Node) TraverseVisible(callback func(*Node)) {
	if !n.Visible {
		return
	}
	callback(n)
	for _, child := range n.Children {
		child.TraverseVisible(callback)
	}
}

// Find finds a node by name
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
