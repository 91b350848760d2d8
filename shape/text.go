package shape

import "math"

// Text attribute keys.
const (
	AttrContent    = "content"
	AttrFontFamily = "fontFamily"
)

// Text draws a line of text; height is the font size and lineWidth the
// weight in hundreds.
type Text struct {
	typeInfo
}

// NewText creates the Text shape type.
func NewText() *Text {
	t := new(Text)
	t.typeInfo = typeInfo{
		name:     "Text",
		defaults: Form{AttrWidth: 92.0, AttrHeight: 50.0, AttrLineWidth: 4.0},
		extras: []ExtraAttr{
			{Key: AttrContent, Label: "Text", Default: "Text"},
			{
				Key:     AttrFontFamily,
				Label:   "Font Family",
				Default: "serif",
				Choices: []string{"serif", "sans-serif", "cursive", "fantasy", "monospace"},
			},
		},
	}
	return t
}

func (*Text) Draw(s Surface, f Form) {
	s.FillText(f.Text(AttrContent), f.Float(AttrX), f.Float(AttrY)+f.Float(AttrHeight), f.Float(AttrHeight), f.Paint())
}

func (*Text) HitTest(f Form, x, y float64) bool {
	return inBox(f, x, y, f.Float(AttrLineWidth)/2)
}

func (*Text) HitTestHandle(f Form, x, y float64) (Handle, bool) {
	return cornerHandle(f, x, y)
}

// ApplyHandle changes the font size only.
func (*Text) ApplyHandle(f Form, h Handle, d Drag) Form {
	return Form{AttrHeight: math.Max((d.Y-f.Float(AttrY))+d.OffsetHeight, 1)}
}
