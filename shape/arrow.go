package shape

import "math"

// Arrow attribute keys.
const (
	AttrHeadAngle = "headAngle"
	AttrHeadWidth = "headWidth"
)

// Arrow is a line ending in a filled triangular head.
type Arrow struct {
	typeInfo
}

// NewArrow creates the Arrow shape type.
func NewArrow() *Arrow {
	a := new(Arrow)
	a.typeInfo = typeInfo{
		name:     "Arrow",
		defaults: Form{AttrWidth: 200.0, AttrHeight: 0.0, AttrLineWidth: 2.0},
		extras: []ExtraAttr{
			{Key: AttrHeadAngle, Label: "Head Angle", Default: math.Pi / 4, Range: &[2]float64{0.01, math.Pi / 2}},
			{Key: AttrHeadWidth, Label: "Head Width", Default: 20.0, Range: &[2]float64{0.1, math.Inf(1)}},
		},
	}
	return a
}

type arrowGeometry struct {
	start, base, tip, left, right Point
}

func arrowShape(f Form) (arrowGeometry, bool) {
	x, y := f.Float(AttrX), f.Float(AttrY)
	w, h := f.Float(AttrWidth), f.Float(AttrHeight)
	length := math.Hypot(w, h)
	if length == 0 {
		return arrowGeometry{}, false
	}
	headWidth := f.Float(AttrHeadWidth)
	headLength := headWidth / (math.Tan(f.Float(AttrHeadAngle)) * length)
	base := Point{x + w - headLength*w, y + h - headLength*h}
	half := headWidth / (2 * length)
	return arrowGeometry{
		start: Point{x, y},
		base:  base,
		tip:   Point{x + w, y + h},
		left:  Point{base.X - half*h, base.Y + half*w},
		right: Point{base.X + half*h, base.Y - half*w},
	}, true
}

func (*Arrow) Draw(s Surface, f Form) {
	g, ok := arrowShape(f)
	if !ok {
		return
	}
	c := f.Paint()
	s.StrokePolyline([]Point{g.start, g.base}, false, f.Float(AttrLineWidth), c)
	s.FillPolygon([]Point{g.left, g.right, g.tip}, c)
}

func (*Arrow) HitTest(f Form, x, y float64) bool {
	g, ok := arrowShape(f)
	if !ok {
		return false
	}
	if nearSegment(x, y, g.start.X, g.start.Y, g.base.X, g.base.Y, 5+f.Float(AttrLineWidth)/2) {
		return true
	}
	return inTriangle(Point{x, y}, g.left, g.right, g.tip)
}

func (*Arrow) HitTestHandle(f Form, x, y float64) (Handle, bool) {
	return endpointHandle(f, x, y)
}

// ApplyHandle moves the tail with the origin handle and the tip otherwise.
func (*Arrow) ApplyHandle(f Form, h Handle, d Drag) Form {
	x, y := f.Float(AttrX), f.Float(AttrY)
	if h == HandleOrigin {
		return Form{
			AttrX:      d.X - d.OffsetX,
			AttrY:      d.Y - d.OffsetY,
			AttrWidth:  (x + f.Float(AttrWidth) - d.X) + d.OffsetX,
			AttrHeight: (y + f.Float(AttrHeight) - d.Y) + d.OffsetY,
		}
	}
	return Form{
		AttrWidth:  (d.X - x) + d.OffsetWidth,
		AttrHeight: (d.Y - y) + d.OffsetHeight,
	}
}

func cross(p, a, b Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func inTriangle(p, a, b, c Point) bool {
	d1, d2, d3 := cross(p, a, b), cross(p, b, c), cross(p, c, a)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}
