package assets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chewxy/math32"

	"logo-scene/scene"
)

// AttachModel adds every top-level node of a loaded model to s. Each subtree
// gets the shared material and casts and receives shadows. The top-level node
// is turned a quarter turn about X and registered for picking. It returns the
// attached nodes.
func AttachModel(s *scene.Scene, model *Model, material *scene.Material) []*scene.Node {
	if model == nil {
		return nil
	}
	attached := make([]*scene.Node, 0, len(model.Roots))
	for _, child := range model.Roots {
		child.Traverse(func(n *scene.Node) {
			if n.Mesh != nil {
				n.Material = material
			}
			n.CastShadow = true
			n.ReceiveShadow = true
		})
		child.Transform.Rotation[0] = math32.Pi / 2
		s.AddPickable(child)
		attached = append(attached, child)
	}
	return attached
}

// Info summarises a model file.
type Info struct {
	Path       string
	TopLevel   []string
	Nodes      int
	Meshes     int
	Vertices   int
	Triangles  int
	Bounds     scene.AABB
	HasContent bool
}

// Inspect parses the model at path and reports its structure. Bounds are in
// model space, before any rotation applied by AttachModel.
func Inspect(path string) (*Info, error) {
	model, err := parseModel(context.Background(), slog.Default(), path)
	if err != nil {
		return nil, fmt.Errorf("inspect: %w", err)
	}
	info := &Info{Path: path, Bounds: scene.EmptyAABB()}
	for _, root := range model.Roots {
		info.TopLevel = append(info.TopLevel, root.Name)
		root.Traverse(func(n *scene.Node) {
			info.Nodes++
			if n.Mesh == nil {
				return
			}
			info.Meshes++
			info.Vertices += len(n.Mesh.Vertices)
			info.Triangles += n.Mesh.TriangleCount()
			if len(n.Mesh.Vertices) > 0 {
				box := n.Mesh.LocalAABB.Transform(n.GetWorldMatrix())
				info.Bounds.Extend(box.Min)
				info.Bounds.Extend(box.Max)
				info.HasContent = true
			}
		})
	}
	return info, nil
}
