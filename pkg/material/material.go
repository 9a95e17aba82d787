package material

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Material holds the Phong shading parameters of a surface plus its
// reflective and refractive behavior.
type Material struct {
	Color           Color
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64
	Transparency    float64
	RefractiveIndex float64
	Pattern         Pattern
}

// Default returns the standard white matte material.
func Default() Material {
	return Material{
		Color:           White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: 1.0,
	}
}

// Glass returns a fully transparent material with the refractive index
// of glass.
func Glass() Material {
	m := Default()
	m.Transparency = 1.0
	m.RefractiveIndex = 1.5
	return m
}

// Lighting computes the Phong contribution of one light at a surface
// point. The surface color is passed in so pattern lookup, which needs
// the object-space point, can happen in the caller. When inShadow is
// set only the ambient term contributes.
func (m Material) Lighting(light PointLight, surfaceColor Color, point, eyev, normalv math3d.Vec3, inShadow bool) Color {
	effective := surfaceColor.Mul(light.Intensity)
	ambient := effective.Scale(m.Ambient)

	if inShadow {
		return ambient
	}

	lightv := light.Position.Sub(point).Normalize()
	lightDotNormal := lightv.Dot(normalv)
	if lightDotNormal < 0 {
		// Light is on the other side of the surface.
		return ambient
	}

	diffuse := effective.Scale(m.Diffuse * lightDotNormal)

	reflectv := lightv.Negate().Reflect(normalv)
	reflectDotEye := reflectv.Dot(eyev)
	if reflectDotEye <= 0 {
		return ambient.Add(diffuse)
	}

	factor := math.Pow(reflectDotEye, m.Shininess)
	specular := light.Intensity.Scale(m.Specular * factor)
	return ambient.Add(diffuse).Add(specular)
}

// SurfaceColor evaluates the material color at an object-space point,
// consulting the pattern when one is set.
func (m Material) SurfaceColor(objectPoint math3d.Vec3) Color {
	if m.Pattern != nil {
		return m.Pattern.At(objectPoint)
	}
	return m.Color
}
