package shape

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func form(x, y, w, h float64) Form {
	return Form{AttrX: x, AttrY: y, AttrWidth: w, AttrHeight: h, AttrLineWidth: 2.0, AttrOpacity: 1.0}
}

func TestHitTest(t *testing.T) {
	arrow := form(0, 0, 200, 0)
	arrow[AttrHeadAngle] = 0.785
	arrow[AttrHeadWidth] = 20.0

	tests := []struct {
		name string
		kind Type
		f    Form
		x, y float64
		want bool
	}{
		{"line on stroke", NewLine(), form(0, 0, 100, 100), 50, 50, true},
		{"line off stroke", NewLine(), form(0, 0, 100, 100), 80, 10, false},
		{"line past end", NewLine(), form(0, 0, 100, 0), 130, 0, false},
		{"rectangle inside", NewRectangle(), form(10, 10, 100, 50), 50, 30, true},
		{"rectangle outside", NewRectangle(), form(10, 10, 100, 50), 150, 30, false},
		{"rectangle negative size", NewRectangle(), form(110, 60, -100, -50), 50, 30, true},
		{"ellipse centre", NewEllipse(), form(0, 0, 100, 50), 50, 25, true},
		{"ellipse corner", NewEllipse(), form(0, 0, 100, 50), 2, 2, false},
		{"text box", NewText(), form(0, 0, 92, 50), 40, 20, true},
		{"arrow shaft", NewArrow(), arrow, 60, 2, true},
		{"arrow head", NewArrow(), arrow, 195, 0, true},
		{"arrow miss", NewArrow(), arrow, 100, 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HitTest(tt.f, tt.x, tt.y))
		})
	}
}

func TestHitTestHandle(t *testing.T) {
	h, ok := NewLine().HitTestHandle(form(0, 0, 100, 50), 101, 49)
	assert.True(t, ok)
	assert.Equal(t, HandleResize, h)

	h, ok = NewLine().HitTestHandle(form(0, 0, 100, 50), 2, -3)
	assert.True(t, ok)
	assert.Equal(t, HandleOrigin, h)

	_, ok = NewRectangle().HitTestHandle(form(0, 0, 100, 50), 50, 25)
	assert.False(t, ok)
}

func TestApplyHandle(t *testing.T) {
	f := form(10, 10, 100, 50)

	got := NewRectangle().ApplyHandle(f, HandleResize, Drag{X: 150, Y: 100})
	assert.Equal(t, Form{AttrWidth: 140.0, AttrHeight: 90.0}, got)

	got = NewRectangle().ApplyHandle(f, HandleResize, Drag{X: 0, Y: 0})
	assert.Equal(t, Form{AttrWidth: 1.0, AttrHeight: 1.0}, got)

	got = NewEllipse().ApplyHandle(f, HandleResize, Drag{X: 130, Y: 70})
	assert.Equal(t, Form{AttrX: 0.0, AttrY: 5.0, AttrWidth: 120.0, AttrHeight: 60.0}, got)

	got = NewText().ApplyHandle(f, HandleResize, Drag{X: 0, Y: 40})
	assert.Equal(t, Form{AttrHeight: 30.0}, got)

	got = NewLine().ApplyHandle(f, HandleOrigin, Drag{X: 20, Y: 20})
	assert.Equal(t, Form{AttrX: 15.0, AttrY: 15.0, AttrWidth: 90.0, AttrHeight: 40.0}, got)
}

type recorder struct {
	polylines int
	ellipses  int
	polygons  int
	texts     []string
}

func (r *recorder) StrokePolyline(points []Point, closed bool, width float64, c color.Color) {
	r.polylines++
}
func (r *recorder) StrokeEllipse(cx, cy, rx, ry, width float64, c color.Color) { r.ellipses++ }
func (r *recorder) FillPolygon(points []Point, c color.Color)                 { r.polygons++ }
func (r *recorder) FillEllipse(cx, cy, rx, ry float64, c color.Color)         { r.ellipses++ }
func (r *recorder) FillText(text string, x, y, size float64, c color.Color) {
	r.texts = append(r.texts, text)
}

func TestDraw(t *testing.T) {
	r := new(recorder)
	for _, kind := range DefaultRegistry().Names() {
		typ, _ := DefaultRegistry().Lookup(kind)
		s, err := NewKeyframeSet(typ, nil)
		if !assert.NoError(t, err) {
			continue
		}
		typ.Draw(r, s.Form(0))
	}
	assert.Equal(t, 3, r.polylines) // arrow shaft, line, rectangle
	assert.Equal(t, 1, r.ellipses)
	assert.Equal(t, 1, r.polygons)
	assert.Equal(t, []string{"Text"}, r.texts)
}
