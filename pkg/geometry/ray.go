// Package geometry implements ray/shape intersection for the prism ray
// tracer. Shapes live in a Scene arena and are addressed by NodeID; groups
// and CSG nodes form trees over the arena with parent links for carrying
// points and normals between object and world space.
package geometry

import "github.com/taigrr/prism/pkg/math3d"

// Ray is a half-line with an origin point and a direction vector.
// The direction is not required to be normalized.
type Ray struct {
	Origin    math3d.Vec3
	Direction math3d.Vec3
}

// NewRay constructs a ray from an origin and a direction.
func NewRay(origin, direction math3d.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Position returns the point at parameter t along the ray.
func (r Ray) Position(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform applies a matrix to the ray's origin (as a point) and
// direction (as a vector).
func (r Ray) Transform(m math3d.Mat4) Ray {
	return Ray{
		Origin:    m.MulVec3(r.Origin),
		Direction: m.MulVec3Dir(r.Direction),
	}
}
