package shape

// Line is a straight stroke from (x, y) to (x+width, y+height).
type Line struct {
	typeInfo
}

// NewLine creates the Line shape type.
func NewLine() *Line {
	l := new(Line)
	l.typeInfo = typeInfo{
		name:     "Line",
		defaults: Form{AttrWidth: 200.0, AttrHeight: 0.0, AttrLineWidth: 2.0},
	}
	return l
}

func (*Line) Draw(s Surface, f Form) {
	x, y := f.Float(AttrX), f.Float(AttrY)
	points := []Point{{x, y}, {x + f.Float(AttrWidth), y + f.Float(AttrHeight)}}
	s.StrokePolyline(points, false, f.Float(AttrLineWidth), f.Paint())
}

func (*Line) HitTest(f Form, x, y float64) bool {
	x0, y0 := f.Float(AttrX), f.Float(AttrY)
	return nearSegment(x, y, x0, y0, x0+f.Float(AttrWidth), y0+f.Float(AttrHeight), 10+f.Float(AttrLineWidth)/2)
}

func (*Line) HitTestHandle(f Form, x, y float64) (Handle, bool) {
	return endpointHandle(f, x, y)
}

func (*Line) ApplyHandle(f Form, h Handle, d Drag) Form {
	x, y := f.Float(AttrX), f.Float(AttrY)
	w, ht := f.Float(AttrWidth), f.Float(AttrHeight)
	if h == HandleResize {
		return Form{
			AttrWidth:  (d.X - x) + d.OffsetWidth,
			AttrHeight: (d.Y - y) + d.OffsetHeight,
		}
	}
	// The origin handle rotates around the midpoint.
	newW := (x + w - d.X) + d.OffsetX
	newH := (y + ht - d.Y) + d.OffsetY
	return Form{
		AttrX:      x + (w-newW)/2,
		AttrY:      y + (ht-newH)/2,
		AttrWidth:  newW,
		AttrHeight: newH,
	}
}

func endpointHandle(f Form, x, y float64) (Handle, bool) {
	x0, y0 := f.Float(AttrX), f.Float(AttrY)
	if onHandle(x, y, x0+f.Float(AttrWidth), y0+f.Float(AttrHeight)) {
		return HandleResize, true
	}
	if onHandle(x, y, x0, y0) {
		return HandleOrigin, true
	}
	return 0, false
}
