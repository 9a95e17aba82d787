// Package material defines surface appearance for the prism ray tracer:
// RGB colors, Phong parameters, point lights and procedural patterns.
package material

import "github.com/taigrr/prism/pkg/math3d"

// Color is an RGB triple with float components. Values are not clamped
// until conversion for display, so intermediate results may exceed 1.
type Color struct {
	R, G, B float64
}

// RGB constructs a color from components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// Add returns the component-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Sub returns the component-wise difference.
func (c Color) Sub(o Color) Color {
	return Color{c.R - o.R, c.G - o.G, c.B - o.B}
}

// Mul returns the Hadamard product, blending two colors.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale multiplies every component by a scalar.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// EqualApprox compares two colors within Epsilon per component.
func (c Color) EqualApprox(o Color) bool {
	return math3d.EqualApprox(c.R, o.R) &&
		math3d.EqualApprox(c.G, o.G) &&
		math3d.EqualApprox(c.B, o.B)
}

// Clamp255 converts a component to an 8-bit channel value.
func clamp255(v float64) uint8 {
	v *= 255
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// Bytes returns the color as clamped 8-bit channels.
func (c Color) Bytes() (uint8, uint8, uint8) {
	return clamp255(c.R), clamp255(c.G), clamp255(c.B)
}
