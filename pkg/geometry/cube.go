package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// intersectCube runs the slab test against the unit cube spanning -1
// to 1 on each axis.
func intersectCube(id NodeID, r Ray, xs *IntersectionList) {
	xtMin, xtMax := checkAxis(r.Origin.X, r.Direction.X, -1, 1)
	ytMin, ytMax := checkAxis(r.Origin.Y, r.Direction.Y, -1, 1)
	ztMin, ztMax := checkAxis(r.Origin.Z, r.Direction.Z, -1, 1)

	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))

	if tMin > tMax {
		return
	}

	*xs = append(*xs,
		Intersection{T: tMin, Shape: id},
		Intersection{T: tMax, Shape: id},
	)
}

// cubeNormal points along the axis of the hit point's largest
// component. Corners and edges resolve to the x axis first, then y.
func cubeNormal(p math3d.Vec3) math3d.Vec3 {
	maxc := p.Abs().MaxComponent()
	switch maxc {
	case math.Abs(p.X):
		return math3d.V3(p.X, 0, 0)
	case math.Abs(p.Y):
		return math3d.V3(0, p.Y, 0)
	default:
		return math3d.V3(0, 0, p.Z)
	}
}
