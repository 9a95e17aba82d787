// Package world ties shapes and lights together and computes the color
// seen along a ray, including shadows, reflection and refraction.
package world

import (
	"math"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
)

// MaxDepth bounds recursive reflection and refraction rays.
const MaxDepth = 5

// World holds a scene arena, the top-level objects to render, and the
// lights. Stats accumulates counters across every ray traced through
// the world.
type World struct {
	Scene  *geometry.Scene
	Roots  []geometry.NodeID
	Lights []material.PointLight
	Stats  geometry.Stats
}

// New returns an empty world with a fresh scene arena.
func New() *World {
	return &World{Scene: geometry.NewScene()}
}

// AddObject registers a top-level shape for rendering.
func (w *World) AddObject(id geometry.NodeID) {
	w.Roots = append(w.Roots, id)
}

// AddLight adds a point light.
func (w *World) AddLight(l material.PointLight) {
	w.Lights = append(w.Lights, l)
}

// Intersect gathers the sorted intersections of the ray with every
// top-level object.
func (w *World) Intersect(r geometry.Ray) geometry.IntersectionList {
	var xs geometry.IntersectionList
	for _, root := range w.Roots {
		xs = append(xs, w.Scene.Intersect(root, r, &w.Stats)...)
	}
	xs.Sort()
	return xs
}

// ColorAt traces a ray into the world and returns the color of
// whatever it hits, black when it hits nothing. remaining limits
// recursion for reflected and refracted rays; pass MaxDepth at the top
// level.
func (w *World) ColorAt(r geometry.Ray, remaining int) material.Color {
	xs := w.Intersect(r)
	hit, ok := xs.Hit()
	if !ok {
		return material.Black
	}
	comps := w.Scene.PrepareComputations(hit, r, xs)
	return w.ShadeHit(comps, remaining)
}

// ShadeHit computes the color at a prepared hit: the Phong sum over
// every light, plus reflected and refracted contributions. When a
// surface is both reflective and transparent the two are blended by
// the Fresnel reflectance.
func (w *World) ShadeHit(comps geometry.Computations, remaining int) material.Color {
	m := w.Scene.Material(comps.Shape)
	objectPoint := w.Scene.WorldToObject(comps.Shape, comps.Point)
	surfaceColor := m.SurfaceColor(objectPoint)

	surface := material.Black
	for _, light := range w.Lights {
		shadowed := w.IsShadowed(comps.OverPoint, light)
		surface = surface.Add(m.Lighting(light, surfaceColor, comps.OverPoint, comps.EyeV, comps.NormalV, shadowed))
	}

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := comps.Schlick()
		return surface.
			Add(reflected.Scale(reflectance)).
			Add(refracted.Scale(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// IsShadowed reports whether anything blocks the segment from the
// point to the light.
func (w *World) IsShadowed(point math3d.Vec3, light material.PointLight) bool {
	toLight := light.Position.Sub(point)
	distance := toLight.Len()

	r := geometry.NewRay(point, toLight.Normalize())
	hit, ok := w.Intersect(r).Hit()
	return ok && hit.T < distance
}

// ReflectedColor traces the reflection ray off a reflective surface,
// scaled by the material's reflectivity. Non-reflective surfaces and
// exhausted recursion yield black.
func (w *World) ReflectedColor(comps geometry.Computations, remaining int) material.Color {
	if remaining <= 0 {
		return material.Black
	}
	reflective := w.Scene.Material(comps.Shape).Reflective
	if reflective == 0 {
		return material.Black
	}

	r := geometry.NewRay(comps.OverPoint, comps.ReflectV)
	return w.ColorAt(r, remaining-1).Scale(reflective)
}

// RefractedColor traces the refraction ray through a transparent
// surface using Snell's law. Opaque surfaces, exhausted recursion, and
// total internal reflection all yield black.
func (w *World) RefractedColor(comps geometry.Computations, remaining int) material.Color {
	if remaining <= 0 {
		return material.Black
	}
	transparency := w.Scene.Material(comps.Shape).Transparency
	if transparency == 0 {
		return material.Black
	}

	nRatio := comps.N1 / comps.N2
	cosI := comps.EyeV.Dot(comps.NormalV)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return material.Black
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.NormalV.Scale(nRatio*cosI - cosT).
		Sub(comps.EyeV.Scale(nRatio))

	r := geometry.NewRay(comps.UnderPoint, direction)
	return w.ColorAt(r, remaining-1).Scale(transparency)
}
