package app

import (
	"github.com/chewxy/math32"

	"logo-scene/panel"
	"logo-scene/renderer"
	"logo-scene/scene"
)

// BuildPanel binds the debug panel to the scene handles and the render
// engine's shadow switch.
func BuildPanel(h *Handles, re *renderer.RenderEngine) *panel.Panel {
	p := panel.New("Controls")

	torus := p.AddFolder("torus")
	position := torus.AddFolder("Position")
	rotation := torus.AddFolder("Rotation")
	for i, axis := range []string{"X", "Y", "Z"} {
		position.AddFloat(&h.Torus.Transform.Position[i], axis, -1, 1, 0.01)
	}
	for i, axis := range []string{"X", "Y", "Z"} {
		rotation.AddFloat(&h.Torus.Transform.Rotation[i], axis, -1, 1, 0.01)
	}

	metal := p.AddFolder("Metal material")
	metal.AddFloat(&h.MetalMaterial.Metalness, "Metalness", 0, 1, 0.01)
	metal.AddFloat(&h.MetalMaterial.Roughness, "Roughness", 0, 1, 0.01)

	addLightFolder(p.AddFolder("Red Light"), h.RedLight, h.RedHelper)
	addLightFolder(p.AddFolder("Blue Light"), h.BlueLight, h.BlueHelper)

	shadows := p.AddFolder("Shadows")
	shadows.AddBool(&re.ShadowsEnabled, "Activate render shadows")
	shadows.AddBool(&h.Torus.CastShadow, "Cast torus")
	shadows.AddBool(&h.Torus.ReceiveShadow, "Receive torus")

	return p
}

func addLightFolder(f *panel.Folder, light, helper *scene.Node) {
	for i, axis := range []string{"X", "Y", "Z"} {
		f.AddFloat(&light.Transform.Rotation[i], axis+" rotation", -math32.Pi, math32.Pi, 0.1)
	}
	f.AddFloat(&light.Light.Intensity, "Intensity", 0, 20, 0.1)
	f.AddBool(&helper.Visible, "Helper")
}
