package stream

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/matt-g-everett/animtx/motion"
	"github.com/matt-g-everett/animtx/shape"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ShapeFrame is the live state of one visible shape.
type ShapeFrame struct {
	Index int        `json:"index"`
	Type  string     `json:"type"`
	Form  shape.Form `json:"form"`
}

// Frame is one rendered instant of an animation.
type Frame struct {
	TimeMs float64      `json:"time"`
	Cursor float64      `json:"cursor"`
	State  string       `json:"state"`
	Shapes []ShapeFrame `json:"shapes"`
}

// NewFrame captures the visible shapes of m in drawing order.
func NewFrame(m *motion.Model, timeMs float64, state State) *Frame {
	f := new(Frame)
	f.TimeMs = timeMs
	f.Cursor = m.Timeline().Position()
	f.State = state.String()
	f.Shapes = make([]ShapeFrame, 0, m.Len())
	for i, mut := range m.Mutations() {
		if !mut.Visible {
			continue
		}
		f.Shapes = append(f.Shapes, ShapeFrame{Index: i, Type: mut.Type().Name(), Form: mut.Snapshot()})
	}
	return f
}

// Draw paints the frame on s, resolving shape types through registry.
// Shapes of unknown types are skipped.
func (f *Frame) Draw(s shape.Surface, registry *shape.Registry) {
	for _, sf := range f.Shapes {
		t, err := registry.Lookup(sf.Type)
		if err != nil {
			continue
		}
		t.Draw(s, sf.Form)
	}
}

// MarshalBinary encodes the frame for the stream topic.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	return json.Marshal(f)
}

// UnmarshalBinary decodes a frame read from the stream topic.
func (f *Frame) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, f)
}
