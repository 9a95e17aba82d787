package geometry

import (
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

func TestCubeIntersect(t *testing.T) {
	tests := []struct {
		name              string
		origin, direction math3d.Vec3
		t1, t2            float64
	}{
		{"+x face", math3d.V3(5, 0.5, 0), math3d.V3(-1, 0, 0), 4, 6},
		{"-x face", math3d.V3(-5, 0.5, 0), math3d.V3(1, 0, 0), 4, 6},
		{"+y face", math3d.V3(0.5, 5, 0), math3d.V3(0, -1, 0), 4, 6},
		{"-y face", math3d.V3(0.5, -5, 0), math3d.V3(0, 1, 0), 4, 6},
		{"+z face", math3d.V3(0.5, 0, 5), math3d.V3(0, 0, -1), 4, 6},
		{"-z face", math3d.V3(0.5, 0, -5), math3d.V3(0, 0, 1), 4, 6},
		{"inside", math3d.V3(0, 0.5, 0), math3d.V3(0, 0, 1), -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			c := s.Cube()
			xs := s.Intersect(c, NewRay(tt.origin, tt.direction), nil)
			if len(xs) != 2 {
				t.Fatalf("got %d intersections, want 2", len(xs))
			}
			floatApprox(t, xs[0].T, tt.t1)
			floatApprox(t, xs[1].T, tt.t2)
		})
	}
}

func TestCubeMiss(t *testing.T) {
	tests := []struct {
		origin, direction math3d.Vec3
	}{
		{math3d.V3(-2, 0, 0), math3d.V3(0.2673, 0.5345, 0.8018)},
		{math3d.V3(0, -2, 0), math3d.V3(0.8018, 0.2673, 0.5345)},
		{math3d.V3(0, 0, -2), math3d.V3(0.5345, 0.8018, 0.2673)},
		{math3d.V3(2, 0, 2), math3d.V3(0, 0, -1)},
		{math3d.V3(0, 2, 2), math3d.V3(0, -1, 0)},
		{math3d.V3(2, 2, 0), math3d.V3(-1, 0, 0)},
	}
	for _, tt := range tests {
		s := NewScene()
		c := s.Cube()
		if xs := s.Intersect(c, NewRay(tt.origin, tt.direction), nil); len(xs) != 0 {
			t.Errorf("ray from %v got %d intersections, want 0", tt.origin, len(xs))
		}
	}
}

func TestCubeNormal(t *testing.T) {
	tests := []struct {
		point math3d.Vec3
		want  math3d.Vec3
	}{
		{math3d.V3(1, 0.5, -0.8), math3d.V3(1, 0, 0)},
		{math3d.V3(-1, -0.2, 0.9), math3d.V3(-1, 0, 0)},
		{math3d.V3(-0.4, 1, -0.1), math3d.V3(0, 1, 0)},
		{math3d.V3(0.3, -1, -0.7), math3d.V3(0, -1, 0)},
		{math3d.V3(-0.6, 0.3, 1), math3d.V3(0, 0, 1)},
		{math3d.V3(0.4, 0.4, -1), math3d.V3(0, 0, -1)},
		{math3d.V3(1, 1, 1), math3d.V3(1, 0, 0)},
		{math3d.V3(-1, -1, -1), math3d.V3(-1, 0, 0)},
	}
	for _, tt := range tests {
		s := NewScene()
		c := s.Cube()
		vecApprox(t, s.NormalAt(c, tt.point, Intersection{}), tt.want)
	}
}
