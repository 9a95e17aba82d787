package geometry

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

func TestSphereIntersect(t *testing.T) {
	tests := []struct {
		name   string
		origin math3d.Vec3
		want   []float64
	}{
		{"through center", math3d.V3(0, 0, -5), []float64{4, 6}},
		{"tangent", math3d.V3(0, 1, -5), []float64{5, 5}},
		{"miss", math3d.V3(0, 2, -5), nil},
		{"inside", math3d.V3(0, 0, 0), []float64{-1, 1}},
		{"behind", math3d.V3(0, 0, 5), []float64{-6, -4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			sp := s.Sphere()
			xs := s.Intersect(sp, NewRay(tt.origin, math3d.V3(0, 0, 1)), nil)
			if len(xs) != len(tt.want) {
				t.Fatalf("got %d intersections, want %d", len(xs), len(tt.want))
			}
			for i, want := range tt.want {
				floatApprox(t, xs[i].T, want)
				if xs[i].Shape != sp {
					t.Errorf("intersection %d references node %d, want %d", i, xs[i].Shape, sp)
				}
			}
		})
	}
}

func TestSphereIntersectTransformed(t *testing.T) {
	r := NewRay(math3d.V3(0, 0, -5), math3d.V3(0, 0, 1))

	t.Run("scaled", func(t *testing.T) {
		s := NewScene()
		sp := s.Sphere()
		s.SetTransform(sp, math3d.ScaleUniform(2))
		xs := s.Intersect(sp, r, nil)
		if len(xs) != 2 {
			t.Fatalf("got %d intersections, want 2", len(xs))
		}
		floatApprox(t, xs[0].T, 3)
		floatApprox(t, xs[1].T, 7)
	})
	t.Run("translated away", func(t *testing.T) {
		s := NewScene()
		sp := s.Sphere()
		s.SetTransform(sp, math3d.Translate(math3d.V3(5, 0, 0)))
		if xs := s.Intersect(sp, r, nil); len(xs) != 0 {
			t.Fatalf("got %d intersections, want 0", len(xs))
		}
	})
}

func TestSphereNormal(t *testing.T) {
	s := NewScene()
	sp := s.Sphere()
	k := math.Sqrt(3) / 3

	tests := []struct {
		name  string
		point math3d.Vec3
		want  math3d.Vec3
	}{
		{"x axis", math3d.V3(1, 0, 0), math3d.V3(1, 0, 0)},
		{"y axis", math3d.V3(0, 1, 0), math3d.V3(0, 1, 0)},
		{"z axis", math3d.V3(0, 0, 1), math3d.V3(0, 0, 1)},
		{"nonaxial", math3d.V3(k, k, k), math3d.V3(k, k, k)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.NormalAt(sp, tt.point, Intersection{})
			vecApprox(t, got, tt.want)
			vecApprox(t, got, got.Normalize())
		})
	}
}

func TestSphereNormalTransformed(t *testing.T) {
	t.Run("translated", func(t *testing.T) {
		s := NewScene()
		sp := s.Sphere()
		s.SetTransform(sp, math3d.Translate(math3d.V3(0, 1, 0)))
		got := s.NormalAt(sp, math3d.V3(0, 1.70711, -0.70711), Intersection{})
		vecApprox(t, got, math3d.V3(0, 0.70711, -0.70711))
	})
	t.Run("scaled and rotated", func(t *testing.T) {
		s := NewScene()
		sp := s.Sphere()
		s.SetTransform(sp, math3d.Scale(math3d.V3(1, 0.5, 1)).Mul(math3d.RotateZ(math.Pi/5)))
		got := s.NormalAt(sp, math3d.V3(0, math.Sqrt2/2, -math.Sqrt2/2), Intersection{})
		vecApprox(t, got, math3d.V3(0, 0.97014, -0.24254))
	})
}

func TestGlassSphere(t *testing.T) {
	s := NewScene()
	sp := s.GlassSphere()
	m := s.Material(sp)
	floatApprox(t, m.Transparency, 1.0)
	floatApprox(t, m.RefractiveIndex, 1.5)
}
