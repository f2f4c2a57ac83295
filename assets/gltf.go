package assets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"logo-scene/core"
	"logo-scene/scene"
)

// parseModel opens a .glb or .gltf file and converts the default scene into
// detached scene nodes. Materials carry the base color and metal/rough
// factors; textures are ignored since attached models get a shared material.
// Primitives that are not triangle lists are skipped with a warning.
func parseModel(ctx context.Context, log *slog.Logger, path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	materials := make([]*scene.Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := scene.DefaultMaterial()
		mat.Name = gm.Name
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.Color = core.Color{R: float32(cf[0]), G: float32(cf[1]), B: float32(cf[2]), A: float32(cf[3])}
			mat.Metalness = float32(pbr.MetallicFactorOrDefault())
			mat.Roughness = float32(pbr.RoughnessFactorOrDefault())
		}
		materials[i] = mat
	}

	// meshPrims[meshIdx] holds one entry per primitive
	type prim struct {
		mesh     *scene.Mesh
		material *scene.Material
	}
	meshPrims := make([][]prim, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, p := range gm.Primitives {
			if p.Mode != gltf.PrimitiveTriangles {
				log.Warn("primitive skipped", "path", path, "mesh", gm.Name, "primitive", pi, "mode", p.Mode)
				continue
			}
			m, err := loadPrimitive(doc, gm.Name, pi, p)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			mat := scene.DefaultMaterial()
			if p.Material != nil && *p.Material < len(materials) {
				mat = materials[*p.Material]
			}
			meshPrims[mi] = append(meshPrims[mi], prim{mesh: m, material: mat})
		}
	}

	nodes := make([]*scene.Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		name := gn.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", i)
		}
		n := scene.NewNode(name)
		n.Transform = nodeTransform(gn)

		if gn.Mesh != nil && *gn.Mesh < len(meshPrims) {
			prims := meshPrims[*gn.Mesh]
			switch len(prims) {
			case 0:
			case 1:
				n.Mesh = prims[0].mesh
				n.Material = prims[0].material
			default:
				for pi, p := range prims {
					n.AddChild(scene.NewMeshNode(fmt.Sprintf("%s_prim%d", name, pi), p.mesh, p.material))
				}
			}
		}
		nodes[i] = n
	}

	for i, gn := range doc.Nodes {
		for _, childIdx := range gn.Children {
			if childIdx < len(nodes) {
				nodes[i].AddChild(nodes[childIdx])
			}
		}
	}

	model := &Model{Path: path}
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		for _, rootIdx := range doc.Scenes[*doc.Scene].Nodes {
			if rootIdx < len(nodes) {
				model.Roots = append(model.Roots, nodes[rootIdx])
			}
		}
	} else {
		// No default scene: collect all parentless nodes
		for _, n := range nodes {
			if n.Parent == nil {
				model.Roots = append(model.Roots, n)
			}
		}
	}
	return model, nil
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeTransform converts a glTF TRS or matrix into position, XYZ Euler
// rotation and scale.
func nodeTransform(gn *gltf.Node) core.Transform {
	t := core.NewTransform()
	if gn.Matrix != [16]float64{} && gn.Matrix != identityMatrix {
		var m mgl32.Mat4
		for i, v := range gn.Matrix {
			m[i] = float32(v)
		}
		t.Position = m.Col(3).Vec3()
		t.Scale = mgl32.Vec3{m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()}
		rot := mgl32.Ident4()
		for c := 0; c < 3; c++ {
			if t.Scale[c] != 0 {
				rot.SetCol(c, m.Col(c).Mul(1/t.Scale[c]))
			}
		}
		t.Rotation = core.EulerXYZ(rot)
		return t
	}

	tr := gn.TranslationOrDefault()
	t.Position = mgl32.Vec3{float32(tr[0]), float32(tr[1]), float32(tr[2])}
	sc := gn.ScaleOrDefault()
	t.Scale = mgl32.Vec3{float32(sc[0]), float32(sc[1]), float32(sc[2])}
	r := gn.RotationOrDefault() // [x, y, z, w]
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	t.Rotation = core.EulerXYZ(q.Normalize().Mat4())
	return t
}

// loadPrimitive converts one triangle-list primitive into a scene.Mesh.
func loadPrimitive(doc *gltf.Document, meshName string, primIdx int, p *gltf.Primitive) (*scene.Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	posIdx, ok := p.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := p.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	if idx, ok := p.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
	}

	verts := make([]core.Vertex, len(positions))
	for i, pos := range positions {
		v := core.Vertex{
			Position: mgl32.Vec3{pos[0], pos[1], pos[2]},
			Normal:   mgl32.Vec3{0, 1, 0},
		}
		if i < len(normals) {
			v.Normal = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		}
		if i < len(uvs) {
			v.UV = mgl32.Vec2{uvs[i][0], uvs[i][1]}
		}
		verts[i] = v
	}

	var indices []uint32
	if p.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, idx := range indices {
		if int(idx) >= len(verts) {
			return nil, fmt.Errorf("index %d out of range (%d vertices)", idx, len(verts))
		}
	}

	return scene.CreateMeshFromData(name, verts, indices), nil
}
