package geometry

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

func TestBoundsAddMerge(t *testing.T) {
	b := EmptyBounds().
		Add(math3d.V3(-5, 2, 0)).
		Add(math3d.V3(7, 0, -3))
	vecApprox(t, b.Min, math3d.V3(-5, 0, -3))
	vecApprox(t, b.Max, math3d.V3(7, 2, 0))

	b2 := NewBounds(math3d.V3(8, -7, -2), math3d.V3(14, 2, 8)).
		Merge(NewBounds(math3d.V3(-5, -2, 0), math3d.V3(7, 4, 4)))
	vecApprox(t, b2.Min, math3d.V3(-5, -7, -2))
	vecApprox(t, b2.Max, math3d.V3(14, 4, 8))
}

func TestBoundsContainsPoint(t *testing.T) {
	b := NewBounds(math3d.V3(5, -2, 0), math3d.V3(11, 4, 7))
	tests := []struct {
		p    math3d.Vec3
		want bool
	}{
		{math3d.V3(5, -2, 0), true},
		{math3d.V3(11, 4, 7), true},
		{math3d.V3(8, 1, 3), true},
		{math3d.V3(3, 0, 3), false},
		{math3d.V3(8, -4, 3), false},
		{math3d.V3(8, 1, -1), false},
		{math3d.V3(13, 1, 3), false},
		{math3d.V3(8, 5, 3), false},
		{math3d.V3(8, 1, 8), false},
	}
	for _, tt := range tests {
		if got := b.ContainsPoint(tt.p); got != tt.want {
			t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestBoundsContainsBounds(t *testing.T) {
	b := NewBounds(math3d.V3(5, -2, 0), math3d.V3(11, 4, 7))
	tests := []struct {
		min, max math3d.Vec3
		want     bool
	}{
		{math3d.V3(5, -2, 0), math3d.V3(11, 4, 7), true},
		{math3d.V3(6, -1, 1), math3d.V3(10, 3, 6), true},
		{math3d.V3(4, -3, -1), math3d.V3(10, 3, 6), false},
		{math3d.V3(6, -1, 1), math3d.V3(12, 5, 8), false},
	}
	for _, tt := range tests {
		other := NewBounds(tt.min, tt.max)
		if got := b.ContainsBounds(other); got != tt.want {
			t.Errorf("ContainsBounds(%v) = %v, want %v", other, got, tt.want)
		}
	}
}

func TestBoundsTransform(t *testing.T) {
	b := NewBounds(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	m := math3d.RotateX(math.Pi / 4).Mul(math3d.RotateY(math.Pi / 4))
	got := b.Transform(m)
	vecApprox(t, got.Min, math3d.V3(-1.41421, -1.70711, -1.70711))
	vecApprox(t, got.Max, math3d.V3(1.41421, 1.70711, 1.70711))
}

func TestBoundsTransformInfinite(t *testing.T) {
	inf := math.Inf(1)
	b := NewBounds(math3d.V3(-inf, 0, -inf), math3d.V3(inf, 0, inf))
	got := b.Transform(math3d.RotateX(math.Pi / 4))
	// Rotating mixed-sign infinities corner-wise would produce NaN,
	// so the result must be the all-encompassing box instead.
	if got.Min.X != -inf || got.Max.X != inf || got.Min.Y != -inf || got.Max.Y != inf {
		t.Errorf("infinite box transform = %v", got)
	}
}

func TestBoundsSplit(t *testing.T) {
	tests := []struct {
		name                   string
		min, max               math3d.Vec3
		wantLMin, wantLMax     math3d.Vec3
		wantRMin, wantRMax     math3d.Vec3
	}{
		{
			"perfect cube",
			math3d.V3(-1, -4, -5), math3d.V3(9, 6, 5),
			math3d.V3(-1, -4, -5), math3d.V3(4, 6, 5),
			math3d.V3(4, -4, -5), math3d.V3(9, 6, 5),
		},
		{
			"x-wide box",
			math3d.V3(-1, -2, -3), math3d.V3(9, 5.5, 3),
			math3d.V3(-1, -2, -3), math3d.V3(4, 5.5, 3),
			math3d.V3(4, -2, -3), math3d.V3(9, 5.5, 3),
		},
		{
			"y-wide box",
			math3d.V3(-1, -2, -3), math3d.V3(5, 8, 3),
			math3d.V3(-1, -2, -3), math3d.V3(5, 3, 3),
			math3d.V3(-1, 3, -3), math3d.V3(5, 8, 3),
		},
		{
			"z-wide box",
			math3d.V3(-1, -2, -3), math3d.V3(5, 3, 7),
			math3d.V3(-1, -2, -3), math3d.V3(5, 3, 2),
			math3d.V3(-1, -2, 2), math3d.V3(5, 3, 7),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := NewBounds(tt.min, tt.max).Split()
			vecApprox(t, left.Min, tt.wantLMin)
			vecApprox(t, left.Max, tt.wantLMax)
			vecApprox(t, right.Min, tt.wantRMin)
			vecApprox(t, right.Max, tt.wantRMax)
		})
	}
}

func TestBoundsIntersects(t *testing.T) {
	b := NewBounds(math3d.V3(5, -2, 0), math3d.V3(11, 4, 7))
	tests := []struct {
		origin, direction math3d.Vec3
		want              bool
	}{
		{math3d.V3(15, 1, 2), math3d.V3(-1, 0, 0), true},
		{math3d.V3(-5, -1, 4), math3d.V3(1, 0, 0), true},
		{math3d.V3(7, 6, 5), math3d.V3(0, -1, 0), true},
		{math3d.V3(9, -5, 6), math3d.V3(0, 1, 0), true},
		{math3d.V3(8, 2, 12), math3d.V3(0, 0, -1), true},
		{math3d.V3(6, 0, -5), math3d.V3(0, 0, 1), true},
		{math3d.V3(8, 1, 3.5), math3d.V3(0, 0, 1), true},
		{math3d.V3(9, -1, -8), math3d.V3(2, 4, 6), false},
		{math3d.V3(8, 3, -4), math3d.V3(6, 2, 4), false},
		{math3d.V3(9, -1, -2), math3d.V3(4, 6, 2), false},
		{math3d.V3(4, 0, 9), math3d.V3(0, 0, -1), false},
		{math3d.V3(8, 6, -1), math3d.V3(0, -1, 0), false},
		{math3d.V3(12, 5, 4), math3d.V3(-1, 0, 0), false},
	}
	for _, tt := range tests {
		r := NewRay(tt.origin, tt.direction.Normalize())
		if got := b.Intersects(r); got != tt.want {
			t.Errorf("Intersects(origin %v, dir %v) = %v, want %v", tt.origin, tt.direction, got, tt.want)
		}
	}
}
