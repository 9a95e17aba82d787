package material

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Pattern produces a color for an object-space point. Each pattern
// carries its own transform relative to the object it is applied to.
type Pattern interface {
	// At evaluates the pattern at a point in the object's space.
	At(objectPoint math3d.Vec3) Color
}

// basePattern carries the transform shared by all built-in patterns.
type basePattern struct {
	inverse math3d.Mat4
}

func newBasePattern() basePattern {
	return basePattern{inverse: math3d.Identity()}
}

func (b *basePattern) setTransform(m math3d.Mat4) {
	b.inverse = m.Inverse()
}

func (b *basePattern) patternPoint(objectPoint math3d.Vec3) math3d.Vec3 {
	return b.inverse.MulVec3(objectPoint)
}

// StripePattern alternates two colors in bands along the X axis.
type StripePattern struct {
	basePattern
	A, B Color
}

// NewStripe constructs a stripe pattern.
func NewStripe(a, b Color) *StripePattern {
	return &StripePattern{basePattern: newBasePattern(), A: a, B: b}
}

// SetTransform sets the pattern's transform.
func (p *StripePattern) SetTransform(m math3d.Mat4) { p.setTransform(m) }

// At returns A when floor(x) is even, B otherwise.
func (p *StripePattern) At(objectPoint math3d.Vec3) Color {
	pt := p.patternPoint(objectPoint)
	if int(math.Floor(pt.X))%2 == 0 {
		return p.A
	}
	return p.B
}

// GradientPattern blends linearly from A to B along the X axis.
type GradientPattern struct {
	basePattern
	A, B Color
}

// NewGradient constructs a gradient pattern.
func NewGradient(a, b Color) *GradientPattern {
	return &GradientPattern{basePattern: newBasePattern(), A: a, B: b}
}

// SetTransform sets the pattern's transform.
func (p *GradientPattern) SetTransform(m math3d.Mat4) { p.setTransform(m) }

// At interpolates between A and B by the fractional distance along X.
func (p *GradientPattern) At(objectPoint math3d.Vec3) Color {
	pt := p.patternPoint(objectPoint)
	distance := p.B.Sub(p.A)
	fraction := pt.X - math.Floor(pt.X)
	return p.A.Add(distance.Scale(fraction))
}

// RingPattern alternates two colors in concentric rings around the Y
// axis.
type RingPattern struct {
	basePattern
	A, B Color
}

// NewRing constructs a ring pattern.
func NewRing(a, b Color) *RingPattern {
	return &RingPattern{basePattern: newBasePattern(), A: a, B: b}
}

// SetTransform sets the pattern's transform.
func (p *RingPattern) SetTransform(m math3d.Mat4) { p.setTransform(m) }

// At returns A when the ring index is even, B otherwise.
func (p *RingPattern) At(objectPoint math3d.Vec3) Color {
	pt := p.patternPoint(objectPoint)
	dist := math.Sqrt(pt.X*pt.X + pt.Z*pt.Z)
	if int(math.Floor(dist))%2 == 0 {
		return p.A
	}
	return p.B
}

// CheckersPattern alternates two colors in a 3D checkerboard.
type CheckersPattern struct {
	basePattern
	A, B Color
}

// NewCheckers constructs a checkers pattern.
func NewCheckers(a, b Color) *CheckersPattern {
	return &CheckersPattern{basePattern: newBasePattern(), A: a, B: b}
}

// SetTransform sets the pattern's transform.
func (p *CheckersPattern) SetTransform(m math3d.Mat4) { p.setTransform(m) }

// At sums the floors of all three coordinates and picks by parity.
func (p *CheckersPattern) At(objectPoint math3d.Vec3) Color {
	pt := p.patternPoint(objectPoint)
	sum := int(math.Floor(pt.X)) + int(math.Floor(pt.Y)) + int(math.Floor(pt.Z))
	if sum%2 == 0 {
		return p.A
	}
	return p.B
}
