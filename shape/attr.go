package shape

import "github.com/matt-g-everett/animtx/util"

// ExtraAttr describes a shape specific attribute merged into every form of
// that shape.
type ExtraAttr struct {
	Key     string
	Label   string
	Default interface{}
	// Range bounds numeric values, inclusive.
	Range *[2]float64
	// Choices enumerates the allowed text values.
	Choices []string
}

// Accept returns the value to store for v, or false if v is not allowed.
func (a ExtraAttr) Accept(v interface{}) (interface{}, bool) {
	if n, ok := Number(v); ok {
		if _, def := Number(a.Default); !def {
			return nil, false
		}
		if a.Range != nil {
			n = util.Clamp(n, a.Range[0], a.Range[1])
		}
		return n, true
	}

	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	if _, def := a.Default.(string); !def {
		return nil, false
	}
	if len(a.Choices) == 0 {
		return s, true
	}
	for _, c := range a.Choices {
		if c == s {
			return s, true
		}
	}
	return nil, false
}
