// Package render provides the camera, the canvas, and terminal output
// for the prism ray tracer.
package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/taigrr/prism/pkg/material"
)

// Canvas is a 2D array of high dynamic range pixels. Colors are kept as
// floats until export so tone clamping happens once, at the edges.
type Canvas struct {
	Width  int
	Height int
	Pixels []material.Color // Row-major pixel data
}

// NewCanvas creates a black canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pixels: make([]material.Color, width*height),
	}
}

// Clear fills the canvas with a solid color.
func (c *Canvas) Clear(col material.Color) {
	for i := range c.Pixels {
		c.Pixels[i] = col
	}
}

// SetPixel sets the pixel at (x, y). Out of bounds writes are dropped.
func (c *Canvas) SetPixel(x, y int, col material.Color) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.Pixels[y*c.Width+x] = col
}

// GetPixel returns the pixel at (x, y), black if out of bounds.
func (c *Canvas) GetPixel(x, y int) material.Color {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return material.Black
	}
	return c.Pixels[y*c.Width+x]
}

// WritePPM writes the canvas as a plain-text PPM image. Lines are kept
// under 70 characters for strict readers.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.Width, c.Height)

	for y := range c.Height {
		lineLen := 0
		for x := range c.Width {
			r, g, b := c.GetPixel(x, y).Bytes()
			for _, v := range []uint8{r, g, b} {
				s := fmt.Sprintf("%d", v)
				switch {
				case lineLen == 0:
					// First value on the line.
				case lineLen+1+len(s) > 70:
					bw.WriteByte('\n')
					lineLen = 0
				default:
					bw.WriteByte(' ')
					lineLen++
				}
				bw.WriteString(s)
				lineLen += len(s)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// SavePPM writes the canvas to a PPM file.
func (c *Canvas) SavePPM(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return c.WritePPM(f)
}

// ToImage converts the canvas to a standard Go image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := range c.Height {
		for x := range c.Width {
			r, g, b := c.Pixels[y*c.Width+x].Bytes()
			img.SetRGBA(x, y, color.RGBA{r, g, b, 255})
		}
	}
	return img
}

// SavePNG saves the canvas as a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return png.Encode(f, c.ToImage())
}
