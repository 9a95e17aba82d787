package material

import "github.com/taigrr/prism/pkg/math3d"

// PointLight is a light source radiating equally in all directions from
// a single position.
type PointLight struct {
	Position  math3d.Vec3
	Intensity Color
}

// NewPointLight constructs a point light.
func NewPointLight(position math3d.Vec3, intensity Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}
