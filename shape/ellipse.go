package shape

// Ellipse is an outlined ellipse inscribed in its bounding box.
type Ellipse struct {
	typeInfo
}

// NewEllipse creates the Ellipse shape type.
func NewEllipse() *Ellipse {
	e := new(Ellipse)
	e.typeInfo = typeInfo{
		name:     "Ellipse",
		defaults: Form{AttrWidth: 200.0, AttrHeight: 100.0, AttrLineWidth: 2.0},
	}
	return e
}

func (*Ellipse) Draw(s Surface, f Form) {
	rx, ry := f.Float(AttrWidth)/2, f.Float(AttrHeight)/2
	s.StrokeEllipse(f.Float(AttrX)+rx, f.Float(AttrY)+ry, rx, ry, f.Float(AttrLineWidth), f.Paint())
}

func (*Ellipse) HitTest(f Form, x, y float64) bool {
	lw := f.Float(AttrLineWidth) / 2
	ax := f.Float(AttrWidth)/2 + lw
	ay := f.Float(AttrHeight)/2 + lw
	if ax == 0 || ay == 0 {
		return false
	}
	dx := (f.Float(AttrX) - lw) + ax - x
	dy := (f.Float(AttrY) - lw) + ay - y
	return (dx*dx)/(ax*ax)+(dy*dy)/(ay*ay) <= 1
}

func (*Ellipse) HitTestHandle(f Form, x, y float64) (Handle, bool) {
	return cornerHandle(f, x, y)
}

// ApplyHandle resizes around the centre.
func (*Ellipse) ApplyHandle(f Form, h Handle, d Drag) Form {
	w, ht := boxResize(f, d)
	return Form{
		AttrX:      f.Float(AttrX) + (f.Float(AttrWidth)-w)/2,
		AttrY:      f.Float(AttrY) + (f.Float(AttrHeight)-ht)/2,
		AttrWidth:  w,
		AttrHeight: ht,
	}
}
