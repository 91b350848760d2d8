package motion

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/matt-g-everett/animtx/shape"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformedState is returned when saved state cannot be rebuilt.
var ErrMalformedState = errors.New("malformed model state")

// ShapeState is the saved form of one mutation.
type ShapeState struct {
	TypeName    string       `json:"typeName"`
	CurrentForm int          `json:"currentForm"`
	Forms       []shape.Form `json:"forms"`
	Times       []float64    `json:"times"`
}

// UnmarshalJSON also accepts the type_name and currFormInd keys written by
// the browser editor.
func (s *ShapeState) UnmarshalJSON(data []byte) error {
	var raw struct {
		TypeName       string       `json:"typeName"`
		LegacyTypeName string       `json:"type_name"`
		CurrentForm    *int         `json:"currentForm"`
		LegacyCurrent  int          `json:"currFormInd"`
		Forms          []shape.Form `json:"forms"`
		Times          []float64    `json:"times"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.TypeName = raw.TypeName
	if s.TypeName == "" {
		s.TypeName = raw.LegacyTypeName
	}
	s.CurrentForm = raw.LegacyCurrent
	if raw.CurrentForm != nil {
		s.CurrentForm = *raw.CurrentForm
	}
	s.Forms = raw.Forms
	s.Times = raw.Times
	return nil
}

// State is the saved form of a model.
type State struct {
	TimelineWidth float64      `json:"timelineWidth"`
	FrameRate     float64      `json:"framerate"`
	Selected      int          `json:"selected"`
	Content       []ShapeState `json:"content"`
}

// State captures the model.
func (m *Model) State() State {
	s := State{
		TimelineWidth: m.timeline.Width(),
		FrameRate:     m.frameRate,
		Selected:      m.selected,
		Content:       make([]ShapeState, len(m.content)),
	}
	for i, mut := range m.content {
		s.Content[i] = ShapeState{
			TypeName:    mut.Type().Name(),
			CurrentForm: mut.Current(),
			Forms:       mut.Forms(),
			Times:       mut.Times(),
		}
	}
	return s
}

// Serialize encodes the model as JSON.
func (m *Model) Serialize() ([]byte, error) {
	return json.Marshal(m.State())
}

// DecodeState parses serialized model data.
func DecodeState(data []byte) (State, error) {
	var s State
	if len(data) == 0 {
		return s, fmt.Errorf("%w: no data", ErrMalformedState)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return s, nil
}

// Deserialize rebuilds a model from serialized data.
func Deserialize(registry *shape.Registry, data []byte) (*Model, error) {
	s, err := DecodeState(data)
	if err != nil {
		return nil, err
	}
	return FromState(registry, s)
}

// FromState rebuilds a model by adding each shape with its first form and
// inserting the remaining forms in order.
func FromState(registry *shape.Registry, s State) (*Model, error) {
	if s.FrameRate <= 0 {
		return nil, fmt.Errorf("%w: frame rate %v", ErrMalformedState, s.FrameRate)
	}
	m, err := NewModel(registry, s.FrameRate, s.TimelineWidth)
	if err != nil {
		return nil, err
	}

	for i, c := range s.Content {
		if len(c.Forms) == 0 || len(c.Forms) != len(c.Times) {
			return nil, fmt.Errorf("%w: shape %d has %d forms and %d times", ErrMalformedState, i, len(c.Forms), len(c.Times))
		}
		if _, err := registry.Lookup(c.TypeName); err != nil {
			return nil, err
		}
		idx, err := m.AddShape(c.TypeName, c.Forms[0])
		if err != nil {
			return nil, fmt.Errorf("%w: shape %d: %v", ErrMalformedState, i, err)
		}
		if !m.ChangeFormTime(idx, 0, c.Times[0]) {
			return nil, fmt.Errorf("%w: shape %d starts at %v", ErrMalformedState, i, c.Times[0])
		}
		for f := 1; f < len(c.Forms); f++ {
			if !m.InsertForm(idx, f, c.Forms[f], c.Times[f]) {
				return nil, fmt.Errorf("%w: shape %d form %d", ErrMalformedState, i, f)
			}
		}
		m.GoToForm(idx, c.CurrentForm)
	}

	if !m.Select(s.Selected) {
		m.selected = -1
	}
	return m, nil
}
