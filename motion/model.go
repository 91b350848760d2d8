package motion

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/matt-g-everett/animtx/shape"
)

// Model owns the mutations of a project, their timeline and the selection.
// Content order is drawing order.
type Model struct {
	registry  *shape.Registry
	frameRate float64
	content   []*Mutation
	selected  int
	timeline  *Timeline
}

// NewModel creates an empty model.
func NewModel(registry *shape.Registry, frameRate float64, timelineWidth float64) (*Model, error) {
	if frameRate <= 0 {
		return nil, fmt.Errorf("frame rate %v must be positive", frameRate)
	}
	m := new(Model)
	m.registry = registry
	m.frameRate = frameRate
	m.selected = -1
	m.timeline = NewTimeline(timelineWidth, frameRate)
	m.timeline.Recompute(nil)
	return m, nil
}

// Registry returns the shape types the model resolves names with.
func (m *Model) Registry() *shape.Registry { return m.registry }

// FrameRate returns the frames per second.
func (m *Model) FrameRate() float64 { return m.frameRate }

// Period returns the frame period in milliseconds.
func (m *Model) Period() float64 { return 1000 / m.frameRate }

// Timeline returns the model timeline.
func (m *Model) Timeline() *Timeline { return m.timeline }

// Len returns the number of shapes.
func (m *Model) Len() int { return len(m.content) }

// Mutation returns shape i, or nil.
func (m *Model) Mutation(i int) *Mutation {
	if !m.valid(i) {
		return nil
	}
	return m.content[i]
}

// Mutations returns the shapes in drawing order.
func (m *Model) Mutations() []*Mutation {
	out := make([]*Mutation, len(m.content))
	copy(out, m.content)
	return out
}

// Selected returns the selected shape, or -1.
func (m *Model) Selected() int { return m.selected }

// Select selects shape i; -1 clears the selection.
func (m *Model) Select(i int) bool {
	if i != -1 && !m.valid(i) {
		return false
	}
	m.selected = i
	return true
}

func (m *Model) valid(i int) bool {
	return i >= 0 && i < len(m.content)
}

// AddShape appends a shape of the named type whose single form starts at
// the timeline start.
func (m *Model) AddShape(typeName string, partial shape.Form) (int, error) {
	t, err := m.registry.Lookup(typeName)
	if err != nil {
		return -1, err
	}
	set, err := shape.NewKeyframeSet(t, partial)
	if err != nil {
		return -1, err
	}
	mut, err := NewMutation(set, []float64{m.timeline.Start()}, m.frameRate)
	if err != nil {
		return -1, err
	}
	m.content = append(m.content, mut)
	m.timeline.Recompute(m.content)
	return len(m.content) - 1, nil
}

// RemoveShape removes shape i.
func (m *Model) RemoveShape(i int) bool {
	if !m.valid(i) {
		return false
	}
	m.content = append(m.content[:i], m.content[i+1:]...)
	switch {
	case m.selected == i:
		m.selected = -1
	case m.selected > i:
		m.selected--
	}
	m.timeline.Recompute(m.content)
	return true
}

// Reorder swaps shapes i and j. The selection follows its shape.
func (m *Model) Reorder(i, j int) bool {
	if !m.valid(i) || !m.valid(j) {
		return false
	}
	m.content[i], m.content[j] = m.content[j], m.content[i]
	switch m.selected {
	case i:
		m.selected = j
	case j:
		m.selected = i
	}
	m.timeline.Recompute(m.content)
	return true
}

// InsertForm inserts a form into shape i at index form. time must lie
// between the times of the forms around the insertion point.
func (m *Model) InsertForm(i, form int, partial shape.Form, time float64) bool {
	if !m.valid(i) {
		return false
	}
	mut := m.content[i]
	if form < 0 || form > mut.Len() || time < 0 {
		return false
	}
	if form > 0 && time < mut.times[form-1] {
		log.Debugf("Rejected form at %v before previous form at %v", time, mut.times[form-1])
		return false
	}
	if form < mut.Len() && time > mut.times[form] {
		log.Debugf("Rejected form at %v after next form at %v", time, mut.times[form])
		return false
	}
	if !mut.InsertForm(form, partial, time) {
		return false
	}
	m.timeline.Recompute(m.content)
	return true
}

// DeleteForm removes a form from shape i. Deleting the only form removes
// the shape.
func (m *Model) DeleteForm(i, form int) bool {
	if !m.valid(i) {
		return false
	}
	mut := m.content[i]
	if form < 0 || form >= mut.Len() {
		return false
	}
	if mut.Len() == 1 {
		return m.RemoveShape(i)
	}
	mut.DeleteForm(form)
	m.timeline.Recompute(m.content)
	return true
}

// ModifyForm overwrites attributes of a form of shape i.
func (m *Model) ModifyForm(i, form int, partial shape.Form, recompute bool) bool {
	if !m.valid(i) {
		return false
	}
	return m.content[i].ModifyForm(form, partial, recompute)
}

// RecomputeDeltas finishes a drag on a form of shape i.
func (m *Model) RecomputeDeltas(i, form int) {
	if m.valid(i) {
		m.content[i].RecomputeDeltas(form)
	}
}

// ChangeFormTime moves a form of shape i to time. The time must not be
// negative and must stay within the times of the neighbouring forms,
// otherwise nothing changes.
func (m *Model) ChangeFormTime(i, form int, time float64) bool {
	if !m.valid(i) {
		return false
	}
	mut := m.content[i]
	last := mut.Len() - 1
	if form < 0 || form > last || time < 0 {
		return false
	}
	if form > 0 && time < mut.times[form-1] {
		return false
	}
	if form < last && time > mut.times[form+1] {
		return false
	}
	mut.setTime(form, time)
	m.timeline.Recompute(m.content)
	return true
}

// ShiftGlobalStart moves the whole animation to start at time.
func (m *Model) ShiftGlobalStart(time float64) bool {
	return m.timeline.ShiftStart(m.content, time)
}

// SeekAll places every shape and the timeline cursor at time.
func (m *Model) SeekAll(time float64) {
	if time < 0 {
		time = 0
	}
	for _, mut := range m.content {
		mut.SeekToTime(time)
	}
	m.timeline.SeekTime(time)
}

// GoToForm shows a form of shape i.
func (m *Model) GoToForm(i, form int) bool {
	if !m.valid(i) {
		return false
	}
	mut := m.content[i]
	if form < 0 || form >= mut.Len() {
		return false
	}
	mut.SeekToForm(form)
	return true
}

// NextForm steps shape i to its next form and moves the cursor there.
func (m *Model) NextForm(i int) bool {
	if !m.valid(i) {
		return false
	}
	mut := m.content[i]
	mut.NextForm()
	m.timeline.SeekTime(mut.Time(mut.Current()))
	return true
}

// PrevForm steps shape i to its previous form and moves the cursor there.
func (m *Model) PrevForm(i int) bool {
	if !m.valid(i) {
		return false
	}
	mut := m.content[i]
	mut.PrevForm()
	m.timeline.SeekTime(mut.Time(mut.Current()))
	return true
}

// ShapeAt returns the topmost visible shape under (x, y), or -1.
func (m *Model) ShapeAt(x, y float64) int {
	for i := len(m.content) - 1; i >= 0; i-- {
		mut := m.content[i]
		if mut.Visible && mut.HitTest(x, y) {
			return i
		}
	}
	return -1
}

// ResetForms shows the first form of every shape.
func (m *Model) ResetForms() {
	for _, mut := range m.content {
		mut.SeekToForm(0)
	}
}
