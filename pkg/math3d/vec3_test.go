package math3d

import (
	"math"
	"testing"
)

func vecApprox(t *testing.T, got, want Vec3) {
	t.Helper()
	if !got.EqualApprox(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := V3(3, -2, 5)
	b := V3(-2, 3, 1)

	vecApprox(t, a.Add(b), V3(1, 1, 6))
	vecApprox(t, V3(3, 2, 1).Sub(V3(5, 6, 7)), V3(-2, -4, -6))
	vecApprox(t, V3(1, -2, 3).Negate(), V3(-1, 2, -3))
	vecApprox(t, V3(1, -2, 3).Scale(3.5), V3(3.5, -7, 10.5))
	vecApprox(t, V3(1, -2, 3).Scale(0.5), V3(0.5, -1, 1.5))
}

func TestVec3Length(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"unit x", V3(1, 0, 0), 1},
		{"unit y", V3(0, 1, 0), 1},
		{"unit z", V3(0, 0, 1), 1},
		{"positive", V3(1, 2, 3), math.Sqrt(14)},
		{"negative", V3(-1, -2, -3), math.Sqrt(14)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Len(); !EqualApprox(got, tt.want) {
				t.Errorf("Len() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	vecApprox(t, V3(4, 0, 0).Normalize(), V3(1, 0, 0))
	n := V3(1, 2, 3).Normalize()
	if !EqualApprox(n.Len(), 1) {
		t.Errorf("normalized length = %v, want 1", n.Len())
	}
}

func TestVec3DotCross(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(2, 3, 4)

	if got := a.Dot(b); !EqualApprox(got, 20) {
		t.Errorf("Dot = %v, want 20", got)
	}
	vecApprox(t, a.Cross(b), V3(-1, 2, -1))
	vecApprox(t, b.Cross(a), V3(1, -2, 1))
}

func TestVec3Reflect(t *testing.T) {
	tests := []struct {
		name   string
		v, n   Vec3
		want   Vec3
	}{
		{"45 degrees", V3(1, -1, 0), V3(0, 1, 0), V3(1, 1, 0)},
		{"slanted surface", V3(0, -1, 0), V3(math.Sqrt2 / 2, math.Sqrt2 / 2, 0), V3(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vecApprox(t, tt.v.Reflect(tt.n), tt.want)
		})
	}
}

func TestVec3MinMax(t *testing.T) {
	a := V3(1, 5, -3)
	b := V3(2, -4, 0)

	vecApprox(t, a.Min(b), V3(1, -4, -3))
	vecApprox(t, a.Max(b), V3(2, 5, 0))
	if got := a.MaxComponent(); got != 5 {
		t.Errorf("MaxComponent = %v, want 5", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !V3(1, 2, 3).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if V3(math.Inf(1), 0, 0).IsFinite() {
		t.Error("infinite vector reported finite")
	}
	if V3(0, math.NaN(), 0).IsFinite() {
		t.Error("NaN vector reported finite")
	}
}
