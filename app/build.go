package app

import (
	"logo-scene/core"
	"logo-scene/scene"
)

// Handles are the nodes and materials the panel, driver and loaders refer to
// after the scene is built.
type Handles struct {
	Scene  *scene.Scene
	Camera *scene.Camera

	Torus         *scene.Node
	MetalMaterial *scene.Material
	EnvMap        *scene.CubeTexture

	PointLight *scene.Node
	RedLight   *scene.Node
	BlueLight  *scene.Node
	RedHelper  *scene.Node
	BlueHelper *scene.Node
}

// BuildScene creates the fixed scene content. It has no inputs and returns
// an equivalent scene on every call.
func BuildScene() *Handles {
	s := scene.NewScene()
	h := &Handles{Scene: s}

	torusMat := scene.NewStandardMaterial("torus", core.ColorHex(0xff0000))
	h.Torus = scene.NewMeshNode("torus", scene.CreateTorus(0.7, 0.2, 16, 100), torusMat)
	s.AddPickable(h.Torus)

	// Bound before its faces exist; reflections appear once it loads.
	h.EnvMap = scene.NewCubeTexture("environment")
	h.MetalMaterial = &scene.Material{
		Name:            "metal",
		Color:           core.ColorHex(0xffffff),
		Metalness:       0.7,
		Roughness:       0.05,
		EnvMap:          h.EnvMap,
		EnvMapIntensity: 1,
	}

	h.PointLight = scene.NewLightNode("pointLight", scene.NewPointLight(core.ColorHex(0xffffff), 0.2))
	h.PointLight.SetPosition(2, 3, 4)
	h.PointLight.CastShadow = true
	s.Add(h.PointLight)

	h.RedLight = scene.NewLightNode("rectAreaLightRed",
		scene.NewRectAreaLight(core.ColorHex(0xff4f00), 20, 0.75, 0.75))
	h.RedLight.SetPosition(0.5, 0.5, 1)
	h.RedLight.SetRotation(2, 2.5, 0)
	s.Add(h.RedLight)

	h.BlueLight = scene.NewLightNode("rectAreaLightBlue",
		scene.NewRectAreaLight(core.ColorHex(0x00bcff), 18, 0.75, 0.75))
	h.BlueLight.SetPosition(-0.5, -0.5, 1)
	h.BlueLight.SetRotation(-2, -2.5, 0)
	s.Add(h.BlueLight)

	h.RedHelper = scene.NewRectAreaLightHelper("redLightHelper", h.RedLight)
	s.Add(h.RedHelper)
	h.BlueHelper = scene.NewRectAreaLightHelper("blueLightHelper", h.BlueLight)
	s.Add(h.BlueHelper)

	h.Camera = scene.NewCamera(45, 1, 0.1, 100)
	h.Camera.SetPosition(0, 0, 1)
	s.SetCamera(h.Camera)

	return h
}
