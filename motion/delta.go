package motion

import (
	"math"

	"github.com/matt-g-everett/animtx/shape"
)

// A Delta holds the per frame increment of every attribute that changes
// across one segment.
type Delta map[string]float64

// computeDelta builds the delta between two consecutive forms spanning
// frames frames. Zero length segments carry no delta and snap instead.
func computeDelta(from, to shape.Form, frames float64) Delta {
	d := make(Delta)
	if frames <= 0 {
		return d
	}
	for attr, v := range from {
		a, ok := shape.Number(v)
		if !ok {
			continue
		}
		b, ok := shape.Number(to[attr])
		if !ok || a == b {
			continue
		}
		step := (b - a) / frames
		if shape.IsColorChannel(attr) {
			step = math.Round(step)
		}
		d[attr] = step
	}
	return d
}

func (d Delta) clone() Delta {
	out := make(Delta, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
