package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/prism/pkg/material"
)

// Draw converts the canvas to terminal cells and draws them on the
// screen. The canvas height should be 2x the terminal height.
func (c *Canvas) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 canvas rows.
	// We use ▀ (upper half block) with fg=top color and bg=bottom color.

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < c.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: toRGBA(c.GetPixel(col, topY)),
					Bg: toRGBA(c.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// toRGBA clamps a canvas color to an 8-bit terminal color.
func toRGBA(c material.Color) color.Color {
	r, g, b := c.Bytes()
	return color.RGBA{r, g, b, 255}
}
