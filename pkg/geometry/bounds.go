package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Bounds is an axis-aligned bounding box. The empty box has Min at
// +infinity and Max at -infinity so that adding any point produces a
// valid box.
type Bounds struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// EmptyBounds returns a box that contains nothing.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: math3d.V3(inf, inf, inf),
		Max: math3d.V3(-inf, -inf, -inf),
	}
}

// NewBounds returns a box spanning min to max.
func NewBounds(min, max math3d.Vec3) Bounds {
	return Bounds{Min: min, Max: max}
}

// Add extends the box to contain the point.
func (b Bounds) Add(p math3d.Vec3) Bounds {
	return Bounds{
		Min: b.Min.Min(p),
		Max: b.Max.Max(p),
	}
}

// Merge extends the box to contain another box.
func (b Bounds) Merge(other Bounds) Bounds {
	return Bounds{
		Min: b.Min.Min(other.Min),
		Max: b.Max.Max(other.Max),
	}
}

// ContainsPoint reports whether the point lies inside the box,
// boundaries included.
func (b Bounds) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsBounds reports whether the other box lies entirely inside
// this one.
func (b Bounds) ContainsBounds(other Bounds) bool {
	return b.ContainsPoint(other.Min) && b.ContainsPoint(other.Max)
}

// Transform applies a matrix to the box by transforming all eight
// corners and taking their extent. A box with infinite extent cannot be
// transformed corner-wise (infinities of mixed sign produce NaN), so it
// maps to the all-encompassing box.
func (b Bounds) Transform(m math3d.Mat4) Bounds {
	if !b.Min.IsFinite() || !b.Max.IsFinite() {
		inf := math.Inf(1)
		return Bounds{
			Min: math3d.V3(-inf, -inf, -inf),
			Max: math3d.V3(inf, inf, inf),
		}
	}

	corners := [8]math3d.Vec3{
		b.Min,
		math3d.V3(b.Min.X, b.Min.Y, b.Max.Z),
		math3d.V3(b.Min.X, b.Max.Y, b.Min.Z),
		math3d.V3(b.Min.X, b.Max.Y, b.Max.Z),
		math3d.V3(b.Max.X, b.Min.Y, b.Min.Z),
		math3d.V3(b.Max.X, b.Min.Y, b.Max.Z),
		math3d.V3(b.Max.X, b.Max.Y, b.Min.Z),
		b.Max,
	}

	out := EmptyBounds()
	for _, c := range corners {
		out = out.Add(m.MulVec3(c))
	}
	return out
}

// Split cuts the box in two halves along its longest axis.
func (b Bounds) Split() (Bounds, Bounds) {
	size := b.Max.Sub(b.Min)
	greatest := size.MaxComponent()

	x0, y0, z0 := b.Min.X, b.Min.Y, b.Min.Z
	x1, y1, z1 := b.Max.X, b.Max.Y, b.Max.Z

	switch greatest {
	case size.X:
		x0 = x0 + size.X/2
		x1 = x0
	case size.Y:
		y0 = y0 + size.Y/2
		y1 = y0
	default:
		z0 = z0 + size.Z/2
		z1 = z0
	}

	midMin := math3d.V3(x0, y0, z0)
	midMax := math3d.V3(x1, y1, z1)

	left := Bounds{Min: b.Min, Max: midMax}
	right := Bounds{Min: midMin, Max: b.Max}
	return left, right
}

// Intersects reports whether the ray hits the box. The ray is expected
// to be in the same space as the box.
func (b Bounds) Intersects(r Ray) bool {
	xtMin, xtMax := checkAxis(r.Origin.X, r.Direction.X, b.Min.X, b.Max.X)
	ytMin, ytMax := checkAxis(r.Origin.Y, r.Direction.Y, b.Min.Y, b.Max.Y)
	ztMin, ztMax := checkAxis(r.Origin.Z, r.Direction.Z, b.Min.Z, b.Max.Z)

	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))

	return tMin <= tMax
}

// checkAxis finds where the ray crosses the two planes perpendicular to
// one axis. A direction component of zero would divide to NaN for
// 0*inf, so the numerators are multiplied by infinity directly.
func checkAxis(origin, direction, min, max float64) (float64, float64) {
	tMinNum := min - origin
	tMaxNum := max - origin

	var tMin, tMax float64
	if math.Abs(direction) >= math3d.Epsilon {
		tMin = tMinNum / direction
		tMax = tMaxNum / direction
	} else {
		tMin = tMinNum * math.Inf(1)
		tMax = tMaxNum * math.Inf(1)
	}

	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	return tMin, tMax
}
