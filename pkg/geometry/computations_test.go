package geometry

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
)

func TestPrepareComputations(t *testing.T) {
	s := NewScene()
	sp := s.Sphere()
	r := NewRay(math3d.V3(0, 0, -5), math3d.V3(0, 0, 1))
	hit := Intersection{T: 4, Shape: sp}

	c := s.PrepareComputations(hit, r, IntersectionList{hit})
	floatApprox(t, c.T, 4)
	vecApprox(t, c.Point, math3d.V3(0, 0, -1))
	vecApprox(t, c.EyeV, math3d.V3(0, 0, -1))
	vecApprox(t, c.NormalV, math3d.V3(0, 0, -1))
	if c.Inside {
		t.Error("hit from outside reported Inside")
	}
}

func TestPrepareComputationsInside(t *testing.T) {
	s := NewScene()
	sp := s.Sphere()
	r := NewRay(math3d.Zero3(), math3d.V3(0, 0, 1))
	hit := Intersection{T: 1, Shape: sp}

	c := s.PrepareComputations(hit, r, IntersectionList{hit})
	vecApprox(t, c.Point, math3d.V3(0, 0, 1))
	vecApprox(t, c.EyeV, math3d.V3(0, 0, -1))
	if !c.Inside {
		t.Fatal("hit from inside not reported")
	}
	// Normal is flipped toward the eye.
	vecApprox(t, c.NormalV, math3d.V3(0, 0, -1))
}

func TestOverAndUnderPoint(t *testing.T) {
	s := NewScene()
	sp := s.GlassSphere()
	s.SetTransform(sp, math3d.Translate(math3d.V3(0, 0, 1)))
	r := NewRay(math3d.V3(0, 0, -5), math3d.V3(0, 0, 1))
	hit := Intersection{T: 5, Shape: sp}

	c := s.PrepareComputations(hit, r, IntersectionList{hit})
	if c.OverPoint.Z >= -math3d.Epsilon/2 {
		t.Errorf("OverPoint.Z = %v, want < %v", c.OverPoint.Z, -math3d.Epsilon/2)
	}
	if c.Point.Z <= c.OverPoint.Z {
		t.Error("Point should lie below OverPoint")
	}
	if c.UnderPoint.Z <= math3d.Epsilon/2 {
		t.Errorf("UnderPoint.Z = %v, want > %v", c.UnderPoint.Z, math3d.Epsilon/2)
	}
	if c.Point.Z >= c.UnderPoint.Z {
		t.Error("Point should lie above UnderPoint")
	}
}

func TestReflectV(t *testing.T) {
	s := NewScene()
	p := s.Plane()
	r := NewRay(math3d.V3(0, 1, -1), math3d.V3(0, -math.Sqrt2/2, math.Sqrt2/2))
	hit := Intersection{T: math.Sqrt2, Shape: p}

	c := s.PrepareComputations(hit, r, IntersectionList{hit})
	vecApprox(t, c.ReflectV, math3d.V3(0, math.Sqrt2/2, math.Sqrt2/2))
}

func TestRefractiveIndexTransitions(t *testing.T) {
	s := NewScene()
	a := s.GlassSphere()
	s.SetTransform(a, math3d.ScaleUniform(2))

	b := s.GlassSphere()
	s.SetTransform(b, math3d.Translate(math3d.V3(0, 0, -0.25)))
	mb := s.Material(b)
	mb.RefractiveIndex = 2.0
	s.SetMaterial(b, mb)

	c := s.GlassSphere()
	s.SetTransform(c, math3d.Translate(math3d.V3(0, 0, 0.25)))
	mc := s.Material(c)
	mc.RefractiveIndex = 2.5
	s.SetMaterial(c, mc)

	r := NewRay(math3d.V3(0, 0, -4), math3d.V3(0, 0, 1))
	xs := IntersectionList{
		{T: 2, Shape: a},
		{T: 2.75, Shape: b},
		{T: 3.25, Shape: c},
		{T: 4.75, Shape: b},
		{T: 5.25, Shape: c},
		{T: 6, Shape: a},
	}

	want := []struct{ n1, n2 float64 }{
		{1.0, 1.5},
		{1.5, 2.0},
		{2.0, 2.5},
		{2.5, 2.5},
		{2.5, 1.5},
		{1.5, 1.0},
	}
	for i, w := range want {
		comps := s.PrepareComputations(xs[i], r, xs)
		floatApprox(t, comps.N1, w.n1)
		floatApprox(t, comps.N2, w.n2)
	}
}

func TestSchlick(t *testing.T) {
	t.Run("total internal reflection", func(t *testing.T) {
		s := NewScene()
		sp := s.GlassSphere()
		r := NewRay(math3d.V3(0, 0, math.Sqrt2/2), math3d.V3(0, 1, 0))
		xs := IntersectionList{
			{T: -math.Sqrt2 / 2, Shape: sp},
			{T: math.Sqrt2 / 2, Shape: sp},
		}
		c := s.PrepareComputations(xs[1], r, xs)
		floatApprox(t, c.Schlick(), 1)
	})
	t.Run("perpendicular viewing angle", func(t *testing.T) {
		s := NewScene()
		sp := s.GlassSphere()
		r := NewRay(math3d.Zero3(), math3d.V3(0, 1, 0))
		xs := IntersectionList{
			{T: -1, Shape: sp},
			{T: 1, Shape: sp},
		}
		c := s.PrepareComputations(xs[1], r, xs)
		floatApprox(t, c.Schlick(), 0.04)
	})
	t.Run("small angle with n2 greater than n1", func(t *testing.T) {
		s := NewScene()
		sp := s.GlassSphere()
		r := NewRay(math3d.V3(0, 0.99, -2), math3d.V3(0, 0, 1))
		xs := IntersectionList{{T: 1.8589, Shape: sp}}
		c := s.PrepareComputations(xs[0], r, xs)
		floatApprox(t, c.Schlick(), 0.48873)
	})
}

func TestSmoothTriangleShadingNormal(t *testing.T) {
	s := NewScene()
	tri := defaultSmoothTriangle(s)
	r := NewRay(math3d.V3(-0.2, 0.3, -2), math3d.V3(0, 0, 1))
	hit := Intersection{T: 1, Shape: tri, U: 0.45, V: 0.25}

	c := s.PrepareComputations(hit, r, IntersectionList{hit})
	vecApprox(t, c.NormalV, math3d.V3(-0.5547, 0.83205, 0))
}

func TestDefaultMaterialRefraction(t *testing.T) {
	m := material.Default()
	floatApprox(t, m.Transparency, 0)
	floatApprox(t, m.RefractiveIndex, 1.0)
}
