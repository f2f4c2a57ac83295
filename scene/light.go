package scene

import (
	"logo-scene/core"
)

type LightKind int

const (
	LightPoint LightKind = iota
	LightRectArea
)

func (k LightKind) String() string {
	switch k {
	case LightPoint:
		return "point"
	case LightRectArea:
		return "rect-area"
	}
	return "unknown"
}

// Light is attached to a node; position and orientation come from the node.
// A rect-area light emits from a Width x Height rectangle facing the node's -Z.
type Light struct {
	Kind      LightKind
	Color     core.Color
	Intensity float32

	Width  float32
	Height float32

	// Distance 0 means no cutoff. Decay is the falloff exponent.
	Distance float32
	Decay    float32
}

func NewPointLight(color core.Color, intensity float32) *Light {
	return &Light{
		Kind:      LightPoint,
		Color:     color,
		Intensity: intensity,
		Decay:     2,
	}
}

func NewRectAreaLight(color core.Color, intensity, width, height float32) *Light {
	return &Light{
		Kind:      LightRectArea,
		Color:     color,
		Intensity: intensity,
		Width:     width,
		Height:    height,
	}
}

// NewLightNode wraps light in a scene node.
func NewLightNode(name string, light *Light) *Node {
	n := NewNode(name)
	n.Light = light
	return n
}

// NewRectAreaLightHelper builds a hidden outline node that follows lightNode
// and draws the emitting rectangle in the light's color.
func NewRectAreaLightHelper(name string, lightNode *Node) *Node {
	color := core.ColorWhite
	if lightNode.Light != nil {
		color = lightNode.Light.Color
	}
	n := NewMeshNode(name, CreateRectOutline(), &Material{
		Name:      name,
		Color:     color,
		Roughness: 1,
	})
	n.Tracks = lightNode
	n.Visible = false
	return n
}

// IsHelper reports whether the node only visualises another node.
func (n *Node) IsHelper() bool {
	return n.Tracks != nil
}
