package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// intersectCylinder intersects a radius-1 cylinder along the y axis,
// truncated to (min, max) and optionally capped.
func intersectCylinder(n *node, id NodeID, r Ray, xs *IntersectionList) {
	a := r.Direction.X*r.Direction.X + r.Direction.Z*r.Direction.Z

	if math.Abs(a) >= math3d.Epsilon {
		b := 2*r.Origin.X*r.Direction.X + 2*r.Origin.Z*r.Direction.Z
		c := r.Origin.X*r.Origin.X + r.Origin.Z*r.Origin.Z - 1

		disc := b*b - 4*a*c
		if disc < 0 {
			return
		}

		sqrtDisc := math.Sqrt(disc)
		t0 := (-b - sqrtDisc) / (2 * a)
		t1 := (-b + sqrtDisc) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		// Truncation is an open interval: hits exactly at min or
		// max fall off the side wall.
		y0 := r.Origin.Y + t0*r.Direction.Y
		if n.min < y0 && y0 < n.max {
			*xs = append(*xs, Intersection{T: t0, Shape: id})
		}
		y1 := r.Origin.Y + t1*r.Direction.Y
		if n.min < y1 && y1 < n.max {
			*xs = append(*xs, Intersection{T: t1, Shape: id})
		}
	}

	intersectCaps(n, id, r, xs, cylinderCapRadius)
}

// cylinderCapRadius gives the cap radius at any height, constant 1 for
// a cylinder.
func cylinderCapRadius(float64) float64 { return 1 }

// checkCap reports whether the ray at parameter t lies within a disk
// of the given radius centered on the y axis.
func checkCap(r Ray, t, radius float64) bool {
	x := r.Origin.X + t*r.Direction.X
	z := r.Origin.Z + t*r.Direction.Z
	return x*x+z*z <= radius*radius
}

// intersectCaps adds hits against the end caps of a closed cylinder or
// cone. radiusAt maps a cap's y coordinate to its radius.
func intersectCaps(n *node, id NodeID, r Ray, xs *IntersectionList, radiusAt func(float64) float64) {
	if !n.closed || math.Abs(r.Direction.Y) < math3d.Epsilon {
		return
	}

	t := (n.min - r.Origin.Y) / r.Direction.Y
	if checkCap(r, t, radiusAt(n.min)) {
		*xs = append(*xs, Intersection{T: t, Shape: id})
	}

	t = (n.max - r.Origin.Y) / r.Direction.Y
	if checkCap(r, t, radiusAt(n.max)) {
		*xs = append(*xs, Intersection{T: t, Shape: id})
	}
}

// cylinderNormal picks between the side wall and the caps. Points
// within radius 1 of the axis near an end belong to that cap.
func cylinderNormal(n *node, p math3d.Vec3) math3d.Vec3 {
	dist := p.X*p.X + p.Z*p.Z
	switch {
	case dist < 1 && p.Y >= n.max-math3d.Epsilon:
		return math3d.V3(0, 1, 0)
	case dist < 1 && p.Y <= n.min+math3d.Epsilon:
		return math3d.V3(0, -1, 0)
	default:
		return math3d.V3(p.X, 0, p.Z)
	}
}
