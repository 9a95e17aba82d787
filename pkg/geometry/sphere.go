package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// intersectSphere solves the quadratic for a unit sphere at the origin.
// A tangent ray still yields two equal roots.
func intersectSphere(id NodeID, r Ray, xs *IntersectionList) {
	sphereToRay := r.Origin // origin minus center, center is (0,0,0)

	a := r.Direction.Dot(r.Direction)
	b := 2 * r.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	disc := b*b - 4*a*c
	if disc < 0 {
		return
	}

	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	*xs = append(*xs,
		Intersection{T: t1, Shape: id},
		Intersection{T: t2, Shape: id},
	)
}

// sphereNormal is the object-space normal of a unit sphere: the hit
// point itself as a vector.
func sphereNormal(p math3d.Vec3) math3d.Vec3 {
	return p
}
