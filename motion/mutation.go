package motion

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
	"sort"

	"github.com/matt-g-everett/animtx/shape"
)

// Step is the outcome of advancing a Mutation by one frame.
type Step int

const (
	// StepContinue means the mutation is still inside its segment.
	StepContinue Step = iota
	// StepSegmentDone means the mutation snapped onto its next form.
	StepSegmentDone
	// StepFinished means the mutation already stands on its last form.
	StepFinished
)

// frameEpsilon absorbs rounding in the frame count of a segment.
const frameEpsilon = 1e-9

// nodeHalf is half the side of the square hit area of a path node.
const nodeHalf = 6.0

// A Mutation drives a KeyframeSet along its time axis. Times are in
// milliseconds.
type Mutation struct {
	set      *shape.KeyframeSet
	times    []float64
	deltas   []Delta
	current  int
	snapshot shape.Form
	frames   float64
	period   float64

	// Visible is false while playback has not reached the first form.
	Visible bool
	// Node is the selected path node, -1 for none.
	Node int
}

// NewMutation binds set to times, one per form, at frameRate frames per
// second.
func NewMutation(set *shape.KeyframeSet, times []float64, frameRate float64) (*Mutation, error) {
	if frameRate <= 0 {
		return nil, fmt.Errorf("frame rate %v must be positive", frameRate)
	}
	if len(times) != set.Len() {
		return nil, fmt.Errorf("%d times for %d forms", len(times), set.Len())
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return nil, errors.New("times must be non-decreasing")
		}
	}

	m := new(Mutation)
	m.set = set
	m.times = slices.Clone(times)
	m.period = 1000 / frameRate
	m.Visible = true
	m.Node = -1
	m.deltas = make([]Delta, 0, len(times))
	for i := 0; i < len(times)-1; i++ {
		m.deltas = append(m.deltas, nil)
		m.recomputeSegment(i)
	}
	m.SeekToForm(0)
	return m, nil
}

// Type returns the shape type of the mutation.
func (m *Mutation) Type() shape.Type { return m.set.Type() }

// Len returns the number of forms.
func (m *Mutation) Len() int { return m.set.Len() }

// Current returns the index of the current form.
func (m *Mutation) Current() int { return m.current }

// Period returns the frame period in milliseconds.
func (m *Mutation) Period() float64 { return m.period }

// Snapshot returns a copy of the live attribute values.
func (m *Mutation) Snapshot() shape.Form { return m.snapshot.Clone() }

// Form returns a copy of form i.
func (m *Mutation) Form(i int) shape.Form { return m.set.Form(i) }

// Forms returns copies of all forms.
func (m *Mutation) Forms() []shape.Form { return m.set.Forms() }

// Times returns a copy of the form times.
func (m *Mutation) Times() []float64 { return slices.Clone(m.times) }

// Time returns the time of form i.
func (m *Mutation) Time(i int) float64 { return m.times[i] }

// Start returns the time of the first form.
func (m *Mutation) Start() float64 { return m.times[0] }

// End returns the time of the last form.
func (m *Mutation) End() float64 { return m.times[len(m.times)-1] }

// Deltas returns copies of the segment deltas.
func (m *Mutation) Deltas() []Delta {
	out := make([]Delta, len(m.deltas))
	for i, d := range m.deltas {
		out[i] = d.clone()
	}
	return out
}

// Advance moves the snapshot forward by one frame.
func (m *Mutation) Advance() Step {
	last := m.set.Len() - 1
	if m.current >= last {
		return StepFinished
	}
	m.frames++
	if m.frames < m.segmentFrames(m.current)-frameEpsilon {
		for attr, d := range m.deltas[m.current] {
			m.snapshot[attr] = m.snapshot.Float(attr) + d
		}
		return StepContinue
	}
	m.SeekToForm(m.current + 1)
	return StepSegmentDone
}

// SeekToForm jumps to the literal values of form i, clamped into range.
func (m *Mutation) SeekToForm(i int) {
	if i < 0 {
		i = 0
	}
	if last := m.set.Len() - 1; i > last {
		i = last
	}
	m.current = i
	m.frames = 0
	m.snapshot = m.set.Form(i)
}

// NextForm jumps to the form after the current one.
func (m *Mutation) NextForm() { m.SeekToForm(m.current + 1) }

// PrevForm jumps to the form before the current one.
func (m *Mutation) PrevForm() { m.SeekToForm(m.current - 1) }

// SeekToTime places the snapshot at time t. The segment is the one
// starting at the last form whose time is not after t.
func (m *Mutation) SeekToTime(t float64) {
	i := sort.Search(len(m.times), func(i int) bool { return m.times[i] > t }) - 1
	if i < 0 {
		m.SeekToForm(0)
		return
	}
	m.SeekToForm(i)
	if i >= len(m.deltas) {
		return
	}
	frames := (t - m.times[i]) / m.period
	for attr, d := range m.deltas[i] {
		v := m.snapshot.Float(attr) + d*frames
		if shape.IsColorChannel(attr) {
			v = math.Round(v)
		}
		m.snapshot[attr] = v
	}
	m.frames = frames
}

// InsertForm inserts a form at index i shown at time t. Attributes missing
// from partial are copied from the live snapshot when i is the current
// index, so a form added after a seek keeps the interpolated values, and
// from the preceding form otherwise. It reports false and
// changes nothing when i is outside [0, Len].
func (m *Mutation) InsertForm(i int, partial shape.Form, t float64) bool {
	n := m.set.Len()
	if i < 0 || i > n {
		return false
	}
	base := m.snapshot
	if i != m.current {
		base = m.set.Form(max(i-1, 0))
	}
	f, err := m.set.Fill(partial, base)
	if err != nil {
		return false
	}

	m.set.Insert(i, f)
	m.times = slices.Insert(m.times, i, t)
	m.deltas = slices.Insert(m.deltas, min(i, len(m.deltas)), Delta{})
	m.recomputeAround(i)

	switch {
	case i < m.current:
		m.current++
	case i == m.current:
		m.SeekToForm(i)
	}
	return true
}

// DeleteForm removes form i. The last remaining form cannot be deleted.
func (m *Mutation) DeleteForm(i int) bool {
	n := m.set.Len()
	if n <= 1 || i < 0 || i >= n {
		return false
	}
	m.set.Remove(i)
	m.times = slices.Delete(m.times, i, i+1)
	d := i
	if d >= len(m.deltas) {
		d = len(m.deltas) - 1
	}
	m.deltas = slices.Delete(m.deltas, d, d+1)
	if i > 0 && i < m.set.Len() {
		m.recomputeSegment(i - 1)
	}

	switch {
	case m.current > i:
		m.current--
	case m.current == i:
		m.SeekToForm(i - 1)
	}
	if m.Node >= m.set.Len() {
		m.Node = -1
	}
	return true
}

// ModifyForm overwrites the given attributes of form i. With recompute the
// deltas touching i are rebuilt; drags pass false and call RecomputeDeltas
// once done. Editing the current form shows in the snapshot at once.
func (m *Mutation) ModifyForm(i int, partial shape.Form, recompute bool) bool {
	if i < 0 || i >= m.set.Len() {
		return false
	}
	if _, err := m.set.Fill(partial, m.set.Form(i)); err != nil {
		return false
	}
	changed := false
	for attr, v := range partial {
		c, _ := m.set.Set(i, attr, v)
		changed = changed || c
	}
	if changed && recompute {
		m.recomputeAround(i)
	}
	if i == m.current {
		f := m.set.Form(i)
		for attr := range partial {
			if v, ok := f[attr]; ok {
				m.snapshot[attr] = v
			}
		}
	}
	return true
}

// RecomputeDeltas rebuilds the one or two segments touching form i.
func (m *Mutation) RecomputeDeltas(i int) {
	if i < 0 || i >= m.set.Len() {
		return
	}
	m.recomputeAround(i)
}

func (m *Mutation) recomputeAround(i int) {
	if i > 0 {
		m.recomputeSegment(i - 1)
	}
	if i < len(m.deltas) {
		m.recomputeSegment(i)
	}
}

func (m *Mutation) recomputeSegment(i int) {
	m.deltas[i] = computeDelta(m.set.Form(i), m.set.Form(i+1), m.segmentFrames(i))
}

// segmentFrames is the length of segment i in frames.
func (m *Mutation) segmentFrames(i int) float64 {
	return (m.times[i+1] - m.times[i]) / m.period
}

// setTime moves form i to time t without validation.
func (m *Mutation) setTime(i int, t float64) {
	m.times[i] = t
	m.recomputeAround(i)
}

// shift moves every form time by offset.
func (m *Mutation) shift(offset float64) {
	for i := range m.times {
		m.times[i] += offset
	}
	for i := range m.deltas {
		m.recomputeSegment(i)
	}
}

// Draw paints the live snapshot.
func (m *Mutation) Draw(s shape.Surface) {
	m.set.Type().Draw(s, m.snapshot)
}

// DrawPath paints the path joining the form centres and a node per form.
func (m *Mutation) DrawPath(s shape.Surface, pathColor, nodeColor color.Color) {
	points := m.nodes()
	s.StrokePolyline(points, false, 1, pathColor)
	for _, p := range points {
		s.FillEllipse(p.X, p.Y, 5, 5, nodeColor)
	}
}

// NodeAt returns the index of the path node at (x, y) and selects it, or
// returns -1.
func (m *Mutation) NodeAt(x, y float64) int {
	for i, p := range m.nodes() {
		if math.Abs(x-p.X) <= nodeHalf && math.Abs(y-p.Y) <= nodeHalf {
			m.Node = i
			return i
		}
	}
	return -1
}

func (m *Mutation) nodes() []shape.Point {
	points := make([]shape.Point, m.set.Len())
	for i, f := range m.set.Forms() {
		points[i] = shape.Point{
			X: f.Float(shape.AttrX) + f.Float(shape.AttrWidth)/2,
			Y: f.Float(shape.AttrY) + f.Float(shape.AttrHeight)/2,
		}
	}
	return points
}

// HitTest reports whether (x, y) falls on the live shape.
func (m *Mutation) HitTest(x, y float64) bool {
	return m.set.Type().HitTest(m.snapshot, x, y)
}

// HitTestHandle reports the handle of the live shape at (x, y).
func (m *Mutation) HitTestHandle(x, y float64) (shape.Handle, bool) {
	return m.set.Type().HitTestHandle(m.snapshot, x, y)
}

// ApplyHandle applies a handle drag to the current form without touching
// the deltas.
func (m *Mutation) ApplyHandle(h shape.Handle, d shape.Drag) {
	partial := m.set.Type().ApplyHandle(m.snapshot, h, d)
	m.ModifyForm(m.current, partial, false)
}
