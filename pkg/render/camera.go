package render

import (
	"math"
	"runtime"
	"sync"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/world"
)

// Camera maps canvas pixels to rays through a virtual one-unit-distant
// screen. The transform is the world-to-camera matrix, usually built
// with math3d.ViewTransform.
type Camera struct {
	HSize int     // Canvas width in pixels
	VSize int     // Canvas height in pixels
	FOV   float64 // Vertical or horizontal field of view, whichever is wider

	// Cached matrices and screen geometry
	transform  math3d.Mat4
	inverse    math3d.Mat4
	pixelSize  float64
	halfWidth  float64
	halfHeight float64
}

// NewCamera creates a camera for the given canvas size and field of
// view in radians, looking down -z from the origin.
func NewCamera(hsize, vsize int, fov float64) *Camera {
	c := &Camera{
		HSize:     hsize,
		VSize:     vsize,
		FOV:       fov,
		transform: math3d.Identity(),
		inverse:   math3d.Identity(),
	}

	halfView := math.Tan(fov / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)

	return c
}

// PixelSize returns the world-space size of one canvas pixel on the
// virtual screen.
func (c *Camera) PixelSize() float64 {
	return c.pixelSize
}

// Transform returns the camera's world-to-camera matrix.
func (c *Camera) Transform() math3d.Mat4 {
	return c.transform
}

// SetTransform sets the world-to-camera matrix and caches its inverse.
func (c *Camera) SetTransform(m math3d.Mat4) {
	c.transform = m
	c.inverse = m.Inverse()
}

// RayForPixel returns the world-space ray through the center of the
// given canvas pixel.
func (c *Camera) RayForPixel(px, py int) geometry.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// The virtual screen sits at z=-1 in camera space with +x left.
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MulVec3(math3d.V3(worldX, worldY, -1))
	origin := c.inverse.MulVec3(math3d.Zero3())
	direction := pixel.Sub(origin).Normalize()

	return geometry.NewRay(origin, direction)
}

// Render traces every pixel of the canvas through the world, splitting
// rows across CPUs. Each worker intersects with its own counter set so
// they never contend; the totals are folded into the world afterwards.
func (c *Camera) Render(w *world.World) *Canvas {
	canvas := NewCanvas(c.HSize, c.VSize)

	workers := runtime.NumCPU()
	if workers > c.VSize {
		workers = c.VSize
	}

	rows := make(chan int)
	stats := make([]geometry.Stats, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := world.World{
				Scene:  w.Scene,
				Roots:  w.Roots,
				Lights: w.Lights,
			}
			for y := range rows {
				for x := range c.HSize {
					r := c.RayForPixel(x, y)
					canvas.SetPixel(x, y, local.ColorAt(r, world.MaxDepth))
				}
			}
			stats[i] = local.Stats
		}()
	}

	for y := range c.VSize {
		rows <- y
	}
	close(rows)
	wg.Wait()

	for _, s := range stats {
		w.Stats.BoundsCulls += s.BoundsCulls
	}
	return canvas
}
