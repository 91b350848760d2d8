package motion

import "github.com/matt-g-everett/animtx/util"

// Timeline maps animation time to a position along a bar of fixed width and
// lays out a marker for every form of every mutation.
type Timeline struct {
	width    float64
	period   float64
	start    float64
	end      float64
	scale    float64
	step     float64
	position float64
	markers  [][]float64
}

// NewTimeline creates an empty timeline width points wide.
func NewTimeline(width, frameRate float64) *Timeline {
	t := new(Timeline)
	t.width = width
	t.period = 1000 / frameRate
	return t
}

// Width returns the display width in points.
func (t *Timeline) Width() float64 { return t.width }

// Start returns the earliest form time of all mutations.
func (t *Timeline) Start() float64 { return t.start }

// End returns the latest form time of all mutations.
func (t *Timeline) End() float64 { return t.end }

// Scale returns the number of points per millisecond.
func (t *Timeline) Scale() float64 { return t.scale }

// Step returns the number of points the cursor moves each frame.
func (t *Timeline) Step() float64 { return t.step }

// Position returns the cursor position.
func (t *Timeline) Position() float64 { return t.position }

// Markers returns the marker positions of mutation i.
func (t *Timeline) Markers(i int) []float64 {
	if i < 0 || i >= len(t.markers) {
		return nil
	}
	out := make([]float64, len(t.markers[i]))
	copy(out, t.markers[i])
	return out
}

// Recompute rebuilds the time span, the scale and every marker from
// content. The cursor stays at the same time.
func (t *Timeline) Recompute(content []*Mutation) {
	current := t.TimeForPosition(t.position)

	t.start, t.end = 0, 0
	for i, m := range content {
		if i == 0 || m.Start() < t.start {
			t.start = m.Start()
		}
		if i == 0 || m.End() > t.end {
			t.end = m.End()
		}
	}

	t.scale = 0
	if t.end > t.start {
		t.scale = t.width / (t.end - t.start)
	}
	t.step = t.scale * t.period

	t.markers = make([][]float64, len(content))
	for i, m := range content {
		points := make([]float64, m.Len())
		for j, ts := range m.times {
			points[j] = (ts - t.start) * t.scale
		}
		t.markers[i] = points
	}

	t.SeekTime(current)
}

// PositionForTime maps time to a position clamped to [0, width].
func (t *Timeline) PositionForTime(time float64) float64 {
	if time > t.end {
		return t.width
	}
	return util.Clamp((time-t.start)*t.scale, 0, t.width)
}

// TimeForPosition maps a position back to a time.
func (t *Timeline) TimeForPosition(p float64) float64 {
	if t.scale == 0 {
		return t.start
	}
	return t.start + util.Clamp(p, 0, t.width)/t.scale
}

// SeekTime moves the cursor to time.
func (t *Timeline) SeekTime(time float64) {
	t.position = t.PositionForTime(time)
}

// Advance moves the cursor forward by one frame.
func (t *Timeline) Advance() {
	t.position = util.Clamp(t.position+t.step, 0, t.width)
}

// SetWidth changes the display width and lays the markers out again.
func (t *Timeline) SetWidth(width float64, content []*Mutation) {
	current := t.TimeForPosition(t.position)
	t.width = width
	t.Recompute(content)
	t.SeekTime(current)
}

// ShiftStart moves every form of content so the animation starts at
// newStart. Negative start times are refused.
func (t *Timeline) ShiftStart(content []*Mutation, newStart float64) bool {
	if newStart < 0 {
		return false
	}
	offset := newStart - t.start
	for _, m := range content {
		m.shift(offset)
	}
	t.Recompute(content)
	return true
}
