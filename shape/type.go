package shape

import (
	"image/color"
	"math"
)

// Point is a position on a drawing surface.
type Point struct {
	X, Y float64
}

// A Surface receives the drawing primitives shapes are made of.
type Surface interface {
	StrokePolyline(points []Point, closed bool, width float64, c color.Color)
	StrokeEllipse(cx, cy, rx, ry, width float64, c color.Color)
	FillPolygon(points []Point, c color.Color)
	FillEllipse(cx, cy, rx, ry float64, c color.Color)
	FillText(text string, x, y, size float64, c color.Color)
}

// Handle identifies a manipulation handle on a shape.
type Handle int

const (
	// HandleResize sits on the far corner or end point.
	HandleResize Handle = iota
	// HandleOrigin sits on the start point of lines and arrows.
	HandleOrigin
)

// handleHalf is half the side of the square a handle occupies.
const handleHalf = 8.0

// Drag carries a pointer position during a handle drag and the offsets
// between the grab point and the shape bounding box captured on press.
type Drag struct {
	X, Y         float64
	OffsetX      float64
	OffsetY      float64
	OffsetWidth  float64
	OffsetHeight float64
}

// A Type is the behaviour shared by all shapes of one kind.
type Type interface {
	Name() string
	// Defaults overrides the base value of required attributes.
	Defaults() Form
	ExtraAttrs() []ExtraAttr
	Draw(s Surface, f Form)
	HitTest(f Form, x, y float64) bool
	HitTestHandle(f Form, x, y float64) (Handle, bool)
	// ApplyHandle returns the attributes changed by dragging h.
	ApplyHandle(f Form, h Handle, d Drag) Form
}

type typeInfo struct {
	name     string
	defaults Form
	extras   []ExtraAttr
}

func (t typeInfo) Name() string { return t.name }

func (t typeInfo) Defaults() Form { return t.defaults.Clone() }

func (t typeInfo) ExtraAttrs() []ExtraAttr {
	out := make([]ExtraAttr, len(t.extras))
	copy(out, t.extras)
	return out
}

// Extra looks up an extra attribute descriptor of t by key.
func Extra(t Type, key string) (ExtraAttr, bool) {
	for _, a := range t.ExtraAttrs() {
		if a.Key == key {
			return a, true
		}
	}
	return ExtraAttr{}, false
}

func onHandle(x, y, hx, hy float64) bool {
	return x >= hx-handleHalf && x <= hx+handleHalf && y >= hy-handleHalf && y <= hy+handleHalf
}

func inBox(f Form, x, y, pad float64) bool {
	x0, y0 := f.Float(AttrX), f.Float(AttrY)
	x1, y1 := x0+f.Float(AttrWidth), y0+f.Float(AttrHeight)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return x >= x0-pad && x <= x1+pad && y >= y0-pad && y <= y1+pad
}

// nearSegment reports whether (x, y) is within tolerance of the segment
// from (x0, y0) to (x1, y1).
func nearSegment(x, y, x0, y0, x1, y1, tolerance float64) bool {
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(x-x0, y-y0) <= tolerance
	}
	t := ((x-x0)*dx + (y-y0)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(x-(x0+t*dx), y-(y0+t*dy)) <= tolerance
}

func rectPoints(f Form) []Point {
	x, y := f.Float(AttrX), f.Float(AttrY)
	w, h := f.Float(AttrWidth), f.Float(AttrHeight)
	return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}
