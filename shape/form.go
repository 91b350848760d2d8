package shape

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cast"

	"github.com/matt-g-everett/animtx/util"
)

// Attribute names present in every form.
const (
	AttrX         = "x"
	AttrY         = "y"
	AttrWidth     = "width"
	AttrHeight    = "height"
	AttrLineWidth = "lineWidth"
	AttrOpacity   = "opacity"
	AttrRed       = "red"
	AttrGreen     = "green"
	AttrBlue      = "blue"
)

// RequiredAttrs lists the numeric attributes every shape type carries.
var RequiredAttrs = []string{
	AttrX, AttrY, AttrWidth, AttrHeight, AttrLineWidth, AttrOpacity, AttrRed, AttrGreen, AttrBlue,
}

// ErrInvalidValue is returned when an attribute value is neither numeric nor text.
var ErrInvalidValue = errors.New("attribute value must be numeric or text")

// A Form is the set of attribute values of a shape at one keyframe. Values
// are float64 or string.
type Form map[string]interface{}

// IsColorChannel reports whether attr is one of the red, green or blue channels.
func IsColorChannel(attr string) bool {
	return attr == AttrRed || attr == AttrGreen || attr == AttrBlue
}

// Number returns the numeric value of v. Text values are never numeric.
func Number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToFloat64(n), true
	}
	return 0, false
}

// NormalizeValue converts every numeric kind to float64 and keeps strings.
func NormalizeValue(v interface{}) (interface{}, error) {
	switch n := v.(type) {
	case string:
		return n, nil
	case float64:
		return n, nil
	case nil, bool:
		return nil, ErrInvalidValue
	}
	if _, ok := Number(v); !ok {
		return nil, ErrInvalidValue
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidValue)
	}
	return f, nil
}

// Normalize returns a copy of the form with normalized values.
func Normalize(f Form) (Form, error) {
	out := make(Form, len(f))
	for attr, v := range f {
		nv, err := NormalizeValue(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr, err)
		}
		out[attr] = nv
	}
	return out, nil
}

// Clone returns a shallow copy; values are immutable scalars.
func (f Form) Clone() Form {
	out := make(Form, len(f))
	for attr, v := range f {
		out[attr] = v
	}
	return out
}

// Float returns the numeric value of attr, or 0.
func (f Form) Float(attr string) float64 {
	n, _ := Number(f[attr])
	return n
}

// Text returns the string value of attr, or "".
func (f Form) Text(attr string) string {
	s, _ := f[attr].(string)
	return s
}

// Equal reports whether both forms hold the same attributes and values.
func (f Form) Equal(other Form) bool {
	if len(f) != len(other) {
		return false
	}
	for attr, v := range f {
		w, ok := other[attr]
		if !ok {
			return false
		}
		a, aNum := Number(v)
		b, bNum := Number(w)
		if aNum != bNum {
			return false
		}
		if aNum {
			if a != b {
				return false
			}
		} else if v != w {
			return false
		}
	}
	return true
}

// Paint returns the form colour with its opacity as alpha.
func (f Form) Paint() color.NRGBA {
	c := colorful.Color{
		R: f.Float(AttrRed) / 255,
		G: f.Float(AttrGreen) / 255,
		B: f.Float(AttrBlue) / 255,
	}
	r, g, b := c.Clamped().RGB255()
	a := util.Channel(f.Float(AttrOpacity) * 255)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// ColorAttrs parses a "#rrggbb" colour into a partial form holding the
// three colour channels.
func ColorAttrs(hex string) (Form, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, err
	}
	r, g, b := c.RGB255()
	return Form{AttrRed: float64(r), AttrGreen: float64(g), AttrBlue: float64(b)}, nil
}
