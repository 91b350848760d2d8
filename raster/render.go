package raster

import (
	"image/color"

	"github.com/matt-g-everett/animtx/motion"
)

var (
	// Background fills the canvas before shapes are drawn.
	Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	pathColor  = color.NRGBA{R: 105, G: 105, B: 105, A: 255}
	nodeColor  = color.NRGBA{R: 30, G: 144, B: 255, A: 255}
)

// RenderModel draws the visible shapes of m in order, followed by the path
// of the selected shape.
func RenderModel(c *Canvas, m *motion.Model) {
	c.Clear(Background)
	for _, mut := range m.Mutations() {
		if mut.Visible {
			mut.Draw(c)
		}
	}
	if sel := m.Mutation(m.Selected()); sel != nil && sel.Len() > 1 {
		sel.DrawPath(c, pathColor, nodeColor)
	}
}
