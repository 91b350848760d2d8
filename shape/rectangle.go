package shape

import "math"

// Rectangle is an outlined box.
type Rectangle struct {
	typeInfo
}

// NewRectangle creates the Rectangle shape type.
func NewRectangle() *Rectangle {
	r := new(Rectangle)
	r.typeInfo = typeInfo{
		name:     "Rectangle",
		defaults: Form{AttrWidth: 200.0, AttrHeight: 100.0, AttrLineWidth: 2.0},
	}
	return r
}

func (*Rectangle) Draw(s Surface, f Form) {
	s.StrokePolyline(rectPoints(f), true, f.Float(AttrLineWidth), f.Paint())
}

func (*Rectangle) HitTest(f Form, x, y float64) bool {
	return inBox(f, x, y, f.Float(AttrLineWidth)/2)
}

func (*Rectangle) HitTestHandle(f Form, x, y float64) (Handle, bool) {
	return cornerHandle(f, x, y)
}

func (*Rectangle) ApplyHandle(f Form, h Handle, d Drag) Form {
	w, ht := boxResize(f, d)
	return Form{AttrWidth: w, AttrHeight: ht}
}

func cornerHandle(f Form, x, y float64) (Handle, bool) {
	cx := f.Float(AttrX) + f.Float(AttrWidth)
	cy := f.Float(AttrY) + f.Float(AttrHeight)
	return HandleResize, onHandle(x, y, cx, cy)
}

// boxResize keeps the box at least one point wide and high.
func boxResize(f Form, d Drag) (float64, float64) {
	w := math.Max(d.X-f.Float(AttrX), 1) + d.OffsetWidth
	h := math.Max(d.Y-f.Float(AttrY), 1) + d.OffsetHeight
	return w, h
}
