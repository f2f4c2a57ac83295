package scene

import (
	"logo-scene/core"
)

// Scene owns the node tree, the active camera and the set of nodes that
// take part in pointer picking.
type Scene struct {
	Root       *Node
	Camera     *Camera
	Pickables  *Pickables
	Ambient    core.Color
	Background core.Color
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("Root"),
		Pickables:  NewPickables(),
		Ambient:    core.Color{R: 0, G: 0, B: 0, A: 1},
		Background: core.ColorBlack,
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) Add(node *Node) {
	s.Root.AddChild(node)
}

// AddPickable attaches node to the root and registers it for picking.
func (s *Scene) AddPickable(node *Node) {
	s.Add(node)
	s.Pickables.Add(node)
}

// Remove detaches node from the root and drops it from the pickable set.
func (s *Scene) Remove(node *Node) {
	s.Root.RemoveChild(node)
	s.Pickables.Remove(node)
}

// Lights returns every visible light node.
func (s *Scene) Lights() []*Node {
	var lights []*Node
	s.Root.TraverseVisible(func(n *Node) {
		if n.Light != nil {
			lights = append(lights, n)
		}
	})
	return lights
}

// VisibleMeshes returns all visible nodes that carry a mesh, helpers included.
func (s *Scene) VisibleMeshes() []*Node {
	var visible []*Node
	s.Root.TraverseVisible(func(n *Node) {
		if n.Mesh != nil {
			visible = append(visible, n)
		}
	})
	return visible
}

func (s *Scene) Find(name string) *Node {
	return s.Root.Find(name)
}

// NodeCount counts every node below the root.
func (s *Scene) NodeCount() int {
	count := -1
	s.Root.Traverse(func(*Node) { count++ })
	return count
}
