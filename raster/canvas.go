package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matt-g-everett/animtx/shape"
)

// ellipseSegments is the number of edges used to approximate an ellipse.
const ellipseSegments = 72

// Canvas draws shapes onto an RGBA image.
type Canvas struct {
	img *image.RGBA
	r   *vector.Rasterizer
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := new(Canvas)
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.r = vector.NewRasterizer(width, height)
	return c
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear paints the whole canvas with col.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *Canvas) fill(col color.Color, path func(r *vector.Rasterizer)) {
	b := c.img.Bounds()
	c.r.Reset(b.Dx(), b.Dy())
	path(c.r)
	c.r.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

func polygon(r *vector.Rasterizer, points []shape.Point) {
	if len(points) < 3 {
		return
	}
	r.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
}

// StrokePolyline strokes every segment as a quad and squares off the joints.
func (c *Canvas) StrokePolyline(points []shape.Point, closed bool, width float64, col color.Color) {
	if len(points) < 2 || width <= 0 {
		return
	}
	if closed {
		points = append(append([]shape.Point{}, points...), points[0])
	}
	half := width / 2
	c.fill(col, func(r *vector.Rasterizer) {
		for i := 0; i < len(points)-1; i++ {
			a, b := points[i], points[i+1]
			dx, dy := b.X-a.X, b.Y-a.Y
			length := math.Hypot(dx, dy)
			if length == 0 {
				continue
			}
			nx, ny := -dy/length*half, dx/length*half
			polygon(r, []shape.Point{
				{X: a.X + nx, Y: a.Y + ny},
				{X: b.X + nx, Y: b.Y + ny},
				{X: b.X - nx, Y: b.Y - ny},
				{X: a.X - nx, Y: a.Y - ny},
			})
		}
		// Joints wind the same way as the quads so overlaps add up.
		for _, p := range points {
			polygon(r, []shape.Point{
				{X: p.X - half, Y: p.Y - half},
				{X: p.X - half, Y: p.Y + half},
				{X: p.X + half, Y: p.Y + half},
				{X: p.X + half, Y: p.Y - half},
			})
		}
	})
}

func ellipsePoints(cx, cy, rx, ry float64, reverse bool) []shape.Point {
	points := make([]shape.Point, ellipseSegments)
	for i := range points {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		if reverse {
			a = -a
		}
		points[i] = shape.Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	return points
}

// StrokeEllipse fills the ring between two ellipses width apart.
func (c *Canvas) StrokeEllipse(cx, cy, rx, ry, width float64, col color.Color) {
	if width <= 0 {
		return
	}
	half := width / 2
	c.fill(col, func(r *vector.Rasterizer) {
		polygon(r, ellipsePoints(cx, cy, math.Abs(rx)+half, math.Abs(ry)+half, false))
		inner := math.Min(math.Abs(rx), math.Abs(ry)) - half
		if inner > 0 {
			polygon(r, ellipsePoints(cx, cy, math.Abs(rx)-half, math.Abs(ry)-half, true))
		}
	})
}

// FillPolygon fills a closed polygon.
func (c *Canvas) FillPolygon(points []shape.Point, col color.Color) {
	c.fill(col, func(r *vector.Rasterizer) { polygon(r, points) })
}

// FillEllipse fills an ellipse.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, col color.Color) {
	c.fill(col, func(r *vector.Rasterizer) {
		polygon(r, ellipsePoints(cx, cy, math.Abs(rx), math.Abs(ry), false))
	})
}

// FillText draws text with its baseline at y. The face has a fixed size.
func (c *Canvas) FillText(text string, x, y, size float64, col color.Color) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}
	d.DrawString(text)
}
