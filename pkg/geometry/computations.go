package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Computations carries everything shading needs about one hit: the hit
// point, view and normal vectors, shifted points for shadow and
// refraction rays, and the refractive indices on both sides of the
// surface.
type Computations struct {
	T       float64
	Shape   NodeID
	Point   math3d.Vec3
	EyeV    math3d.Vec3
	NormalV math3d.Vec3
	// ReflectV is the incoming ray reflected about the normal.
	ReflectV math3d.Vec3
	// Inside is set when the hit is on a surface seen from within,
	// in which case NormalV has been flipped toward the eye.
	Inside bool
	// OverPoint sits just above the surface, for shadow and
	// reflection rays that must not re-hit the surface they left.
	OverPoint math3d.Vec3
	// UnderPoint sits just below the surface, for refracted rays.
	UnderPoint math3d.Vec3
	// N1 and N2 are the refractive indices of the material being
	// exited and entered.
	N1, N2 float64
}

// PrepareComputations derives shading state for the hit. The full
// intersection list is needed to reconstruct which materials the ray is
// inside of when it reaches the hit; for a lone intersection pass a
// one-element list.
func (s *Scene) PrepareComputations(hit Intersection, r Ray, xs IntersectionList) Computations {
	c := Computations{
		T:     hit.T,
		Shape: hit.Shape,
	}

	c.Point = r.Position(hit.T)
	c.EyeV = r.Direction.Negate()
	c.NormalV = s.NormalAt(hit.Shape, c.Point, hit)

	if c.NormalV.Dot(c.EyeV) < 0 {
		c.Inside = true
		c.NormalV = c.NormalV.Negate()
	}

	c.ReflectV = r.Direction.Reflect(c.NormalV)
	offset := c.NormalV.Scale(math3d.Epsilon)
	c.OverPoint = c.Point.Add(offset)
	c.UnderPoint = c.Point.Sub(offset)

	c.N1, c.N2 = s.refractiveIndices(hit, xs)
	return c
}

// refractiveIndices walks the intersections up to and including the
// hit, maintaining a stack of the shapes the ray is currently inside.
// N1 is the index of the material containing the ray before the hit,
// N2 the one after; an empty stack means vacuum (index 1).
func (s *Scene) refractiveIndices(hit Intersection, xs IntersectionList) (n1, n2 float64) {
	n1, n2 = 1.0, 1.0

	var containers []NodeID
	for _, x := range xs {
		if x == hit {
			if len(containers) > 0 {
				n1 = s.Material(containers[len(containers)-1]).RefractiveIndex
			}
		}

		found := -1
		for i, c := range containers {
			if c == x.Shape {
				found = i
				break
			}
		}
		if found >= 0 {
			// Leaving the shape.
			containers = append(containers[:found], containers[found+1:]...)
		} else {
			containers = append(containers, x.Shape)
		}

		if x == hit {
			if len(containers) > 0 {
				n2 = s.Material(containers[len(containers)-1]).RefractiveIndex
			}
			return n1, n2
		}
	}
	return n1, n2
}

// Schlick approximates the Fresnel reflectance at the hit: the fraction
// of light reflected rather than refracted.
func (c Computations) Schlick() float64 {
	cos := c.EyeV.Dot(c.NormalV)

	if c.N1 > c.N2 {
		ratio := c.N1 / c.N2
		sin2T := ratio * ratio * (1 - cos*cos)
		if sin2T > 1 {
			// Total internal reflection.
			return 1
		}
		cos = math.Sqrt(1 - sin2T)
	}

	r0 := (c.N1 - c.N2) / (c.N1 + c.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
