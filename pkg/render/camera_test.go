package render

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/world"
)

func vecApprox(t *testing.T, got, want math3d.Vec3) {
	t.Helper()
	if !got.EqualApprox(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCameraPixelSize(t *testing.T) {
	t.Run("horizontal canvas", func(t *testing.T) {
		c := NewCamera(200, 125, math.Pi/2)
		if !math3d.EqualApprox(c.PixelSize(), 0.01) {
			t.Errorf("PixelSize = %v, want 0.01", c.PixelSize())
		}
	})
	t.Run("vertical canvas", func(t *testing.T) {
		c := NewCamera(125, 200, math.Pi/2)
		if !math3d.EqualApprox(c.PixelSize(), 0.01) {
			t.Errorf("PixelSize = %v, want 0.01", c.PixelSize())
		}
	})
}

func TestRayForPixel(t *testing.T) {
	t.Run("center of canvas", func(t *testing.T) {
		c := NewCamera(201, 101, math.Pi/2)
		r := c.RayForPixel(100, 50)
		vecApprox(t, r.Origin, math3d.Zero3())
		vecApprox(t, r.Direction, math3d.V3(0, 0, -1))
	})
	t.Run("corner of canvas", func(t *testing.T) {
		c := NewCamera(201, 101, math.Pi/2)
		r := c.RayForPixel(0, 0)
		vecApprox(t, r.Origin, math3d.Zero3())
		vecApprox(t, r.Direction, math3d.V3(0.66519, 0.33259, -0.66851))
	})
	t.Run("transformed camera", func(t *testing.T) {
		c := NewCamera(201, 101, math.Pi/2)
		c.SetTransform(math3d.RotateY(math.Pi / 4).Mul(math3d.Translate(math3d.V3(0, -2, 5))))
		r := c.RayForPixel(100, 50)
		vecApprox(t, r.Origin, math3d.V3(0, 2, -5))
		vecApprox(t, r.Direction, math3d.V3(math.Sqrt2/2, 0, -math.Sqrt2/2))
	})
}

func TestRender(t *testing.T) {
	w := world.New()
	w.AddLight(material.NewPointLight(math3d.V3(-10, 10, -10), material.White))

	s1 := w.Scene.Sphere()
	m1 := material.Default()
	m1.Color = material.RGB(0.8, 1.0, 0.6)
	m1.Diffuse = 0.7
	m1.Specular = 0.2
	w.Scene.SetMaterial(s1, m1)
	w.AddObject(s1)

	s2 := w.Scene.Sphere()
	w.Scene.SetTransform(s2, math3d.ScaleUniform(0.5))
	w.AddObject(s2)

	c := NewCamera(11, 11, math.Pi/2)
	c.SetTransform(math3d.ViewTransform(
		math3d.V3(0, 0, -5), math3d.Zero3(), math3d.Up(),
	))

	img := c.Render(w)
	got := img.GetPixel(5, 5)
	want := material.RGB(0.38066, 0.47583, 0.2855)
	if !got.EqualApprox(want) {
		t.Errorf("center pixel = %v, want %v", got, want)
	}
}
