package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// intersectCone intersects a double-napped unit cone along the y axis,
// truncated to (min, max) and optionally capped. A cone's cap radius
// equals the cap's |y|.
func intersectCone(n *node, id NodeID, r Ray, xs *IntersectionList) {
	o, d := r.Origin, r.Direction

	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	c := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	switch {
	case math.Abs(a) < math3d.Epsilon && math.Abs(b) < math3d.Epsilon:
		// Ray misses both nappes entirely.
	case math.Abs(a) < math3d.Epsilon:
		// Ray is parallel to one nappe and crosses the other once.
		t := -c / (2 * b)
		y := o.Y + t*d.Y
		if n.min < y && y < n.max {
			*xs = append(*xs, Intersection{T: t, Shape: id})
		}
	default:
		disc := b*b - 4*a*c
		if disc < 0 {
			break
		}
		sqrtDisc := math.Sqrt(disc)
		t0 := (-b - sqrtDisc) / (2 * a)
		t1 := (-b + sqrtDisc) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		y0 := o.Y + t0*d.Y
		if n.min < y0 && y0 < n.max {
			*xs = append(*xs, Intersection{T: t0, Shape: id})
		}
		y1 := o.Y + t1*d.Y
		if n.min < y1 && y1 < n.max {
			*xs = append(*xs, Intersection{T: t1, Shape: id})
		}
	}

	intersectCaps(n, id, r, xs, math.Abs)
}

// coneNormal picks between the slanted wall and the caps. On the wall
// the y component has magnitude sqrt(x^2+z^2) with sign opposite the
// hit's y.
func coneNormal(n *node, p math3d.Vec3) math3d.Vec3 {
	dist := p.X*p.X + p.Z*p.Z

	switch {
	case dist < n.max*n.max && p.Y >= n.max-math3d.Epsilon:
		return math3d.V3(0, 1, 0)
	case dist < n.min*n.min && p.Y <= n.min+math3d.Epsilon:
		return math3d.V3(0, -1, 0)
	default:
		y := math.Sqrt(dist)
		if p.Y > 0 {
			y = -y
		}
		return math3d.V3(p.X, y, p.Z)
	}
}
