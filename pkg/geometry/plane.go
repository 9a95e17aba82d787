package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// intersectPlane intersects the xz plane at y=0. Rays parallel to the
// plane, including coplanar ones, produce no intersection.
func intersectPlane(id NodeID, r Ray, xs *IntersectionList) {
	if math.Abs(r.Direction.Y) < math3d.Epsilon {
		return
	}
	t := -r.Origin.Y / r.Direction.Y
	*xs = append(*xs, Intersection{T: t, Shape: id})
}

// planeNormal is constant everywhere on the plane.
func planeNormal() math3d.Vec3 {
	return math3d.Up()
}
