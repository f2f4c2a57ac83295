package scene

import "logo-scene/core"

// Material is a metalness/roughness surface description evaluated with a
// Cook-Torrance BRDF. Wireframe lives on the node, not here, so nodes that
// share a material toggle independently.
type Material struct {
	Name      string
	Color     core.Color
	Metalness float32 // 0 = dielectric, 1 = fully metallic
	Roughness float32 // 0 = mirror, 1 = fully rough

	// EnvMap is the optional reflection source. Until it reports Ready the
	// surface is shaded without reflection.
	EnvMap          *CubeTexture
	EnvMapIntensity float32
}

// DefaultMaterial returns a plain white rough material.
func DefaultMaterial() *Material {
	return NewStandardMaterial("Default", core.ColorWhite)
}

// NewStandardMaterial creates a non-metallic, fully rough material.
func NewStandardMaterial(name string, color core.Color) *Material {
	return &Material{
		Name:            name,
		Color:           color,
		Metalness:       0,
		Roughness:       1,
		EnvMapIntensity: 1,
	}
}

// Reflective reports whether an environment map is bound and loaded.
func (m *Material) Reflective() bool {
	return m.EnvMap != nil && m.EnvMap.Ready()
}
