package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animtx/shape"
)

func newMutation(t *testing.T, kind shape.Type, forms []shape.Form, times []float64) *Mutation {
	t.Helper()
	set, err := shape.NewKeyframeSet(kind, forms[0])
	require.NoError(t, err)
	for i := 1; i < len(forms); i++ {
		f, err := set.Fill(forms[i], set.Form(i-1))
		require.NoError(t, err)
		set.Insert(i, f)
	}
	m, err := NewMutation(set, times, 25)
	require.NoError(t, err)
	return m
}

func slide(t *testing.T) *Mutation {
	return newMutation(t, shape.NewRectangle(),
		[]shape.Form{{shape.AttrX: 0}, {shape.AttrX: 100}},
		[]float64{0, 1000})
}

func TestNewMutationValidates(t *testing.T) {
	set, err := shape.NewKeyframeSet(shape.NewLine(), nil)
	require.NoError(t, err)

	_, err = NewMutation(set, []float64{0, 10}, 25)
	assert.Error(t, err)
	_, err = NewMutation(set, []float64{0}, 0)
	assert.Error(t, err)

	m, err := NewMutation(set, []float64{0}, 25)
	require.NoError(t, err)
	assert.Equal(t, 40.0, m.Period())
	assert.Empty(t, m.Deltas())
	assert.True(t, m.Visible)
	assert.Equal(t, -1, m.Node)
}

func TestAdvanceReachesNextForm(t *testing.T) {
	m := slide(t)
	assert.Equal(t, Delta{shape.AttrX: 4}, m.Deltas()[0])

	for i := 0; i < 24; i++ {
		require.Equal(t, StepContinue, m.Advance())
	}
	assert.Equal(t, 96.0, m.Snapshot()[shape.AttrX])
	assert.Equal(t, 0, m.Current())

	assert.Equal(t, StepSegmentDone, m.Advance())
	assert.Equal(t, 100.0, m.Snapshot()[shape.AttrX])
	assert.Equal(t, 1, m.Current())

	assert.Equal(t, StepFinished, m.Advance())
	assert.Equal(t, 100.0, m.Snapshot()[shape.AttrX])
	assert.Equal(t, 1, m.Current())
}

func TestAdvanceSnapsOnLastFrame(t *testing.T) {
	tests := []struct {
		frameRate float64
		end       float64
		frames    int
	}{
		{7, 3000, 21},
		{24, 1000, 24},
		{25, 1000, 25},
		{30, 1000, 30},
		{60, 3000, 180},
	}

	for _, tt := range tests {
		set, err := shape.NewKeyframeSet(shape.NewRectangle(), shape.Form{shape.AttrX: 0})
		require.NoError(t, err)
		f, err := set.Fill(shape.Form{shape.AttrX: 100}, set.Form(0))
		require.NoError(t, err)
		set.Insert(1, f)
		m, err := NewMutation(set, []float64{0, tt.end}, tt.frameRate)
		require.NoError(t, err)

		for i := 1; i < tt.frames; i++ {
			require.Equal(t, StepContinue, m.Advance(), "fps %v frame %d", tt.frameRate, i)
			assert.Less(t, m.Snapshot().Float(shape.AttrX), 100.0)
		}
		assert.Equal(t, StepSegmentDone, m.Advance(), "fps %v", tt.frameRate)
		assert.Equal(t, 100.0, m.Snapshot()[shape.AttrX])
		assert.Equal(t, 1, m.Current())
	}
}

func TestSeekToTime(t *testing.T) {
	m := slide(t)
	m.SeekToTime(500)
	assert.Equal(t, 50.0, m.Snapshot()[shape.AttrX])
	assert.Equal(t, 0, m.Current())

	// Advancing after a seek continues from the seek point.
	for m.Advance() == StepContinue {
	}
	assert.Equal(t, 100.0, m.Snapshot()[shape.AttrX])
	assert.Equal(t, 1, m.Current())
}

func TestSeekToTimeLandsOnForms(t *testing.T) {
	forms := []shape.Form{
		{shape.AttrX: 0, shape.AttrY: 10},
		{shape.AttrX: 100, shape.AttrY: 10, shape.AttrRed: 255},
		{shape.AttrX: 40, shape.AttrY: 70, shape.AttrRed: 30},
	}
	m := newMutation(t, shape.NewEllipse(), forms, []float64{200, 1200, 1600})

	for i, ts := range m.Times() {
		m.SeekToTime(ts)
		assert.True(t, m.Form(i).Equal(m.Snapshot()), "form %d", i)
		assert.Equal(t, i, m.Current())
	}

	m.SeekToTime(0)
	assert.True(t, m.Form(0).Equal(m.Snapshot()))
	m.SeekToTime(5000)
	assert.True(t, m.Form(2).Equal(m.Snapshot()))
	assert.Equal(t, 2, m.Current())
}

func TestSeekToTimeDuplicateTimes(t *testing.T) {
	forms := []shape.Form{{shape.AttrX: 0}, {shape.AttrX: 50}, {shape.AttrX: 80}}
	m := newMutation(t, shape.NewRectangle(), forms, []float64{0, 1000, 1000})

	m.SeekToTime(1000)
	assert.Equal(t, 2, m.Current())
	assert.Equal(t, 80.0, m.Snapshot()[shape.AttrX])

	m.SeekToTime(999)
	assert.Equal(t, 0, m.Current())
}

func TestColorDeltasAreRounded(t *testing.T) {
	forms := []shape.Form{{shape.AttrRed: 0, shape.AttrBlue: 0}, {shape.AttrRed: 255, shape.AttrBlue: 10}}
	m := newMutation(t, shape.NewRectangle(), forms, []float64{0, 1000})

	d := m.Deltas()[0]
	assert.Equal(t, 10.0, d[shape.AttrRed])
	assert.Equal(t, 0.0, d[shape.AttrBlue])

	m.SeekToTime(520)
	assert.Equal(t, 130.0, m.Snapshot()[shape.AttrRed])

	m.SeekToForm(0)
	for m.Advance() == StepContinue {
	}
	assert.Equal(t, 255.0, m.Snapshot()[shape.AttrRed])
	assert.Equal(t, 10.0, m.Snapshot()[shape.AttrBlue])
}

func TestTextAttributesSnap(t *testing.T) {
	forms := []shape.Form{{shape.AttrContent: "one"}, {shape.AttrContent: "two", shape.AttrX: 50}}
	m := newMutation(t, shape.NewText(), forms, []float64{0, 400})

	_, ok := m.Deltas()[0][shape.AttrContent]
	assert.False(t, ok)

	assert.Equal(t, StepContinue, m.Advance())
	assert.Equal(t, "one", m.Snapshot()[shape.AttrContent])
	for m.Advance() == StepContinue {
	}
	assert.Equal(t, "two", m.Snapshot()[shape.AttrContent])
}

func TestZeroLengthSegmentSnaps(t *testing.T) {
	forms := []shape.Form{{shape.AttrX: 0}, {shape.AttrX: 100}}
	m := newMutation(t, shape.NewRectangle(), forms, []float64{300, 300})

	assert.Empty(t, m.Deltas()[0])
	assert.Equal(t, StepSegmentDone, m.Advance())
	assert.Equal(t, 100.0, m.Snapshot()[shape.AttrX])
}

func TestSeekToFormClamps(t *testing.T) {
	m := slide(t)
	m.SeekToForm(7)
	assert.Equal(t, 1, m.Current())
	m.SeekToForm(-3)
	assert.Equal(t, 0, m.Current())

	m.NextForm()
	assert.Equal(t, 100.0, m.Snapshot()[shape.AttrX])
	m.NextForm()
	assert.Equal(t, 1, m.Current())
	m.PrevForm()
	assert.Equal(t, 0.0, m.Snapshot()[shape.AttrX])
}

func TestInsertThenDeleteRestores(t *testing.T) {
	forms := []shape.Form{
		{shape.AttrX: 0, shape.AttrWidth: 10},
		{shape.AttrX: 100, shape.AttrWidth: 30},
		{shape.AttrX: 60, shape.AttrWidth: 5},
	}
	times := []float64{0, 800, 2000}

	for i := 0; i <= len(forms); i++ {
		m := newMutation(t, shape.NewRectangle(), forms, times)
		wantForms, wantTimes, wantDeltas := m.Forms(), m.Times(), m.Deltas()

		at := float64(i) * 700
		require.True(t, m.InsertForm(i, shape.Form{shape.AttrY: 25}, at), "insert %d", i)
		assert.Equal(t, len(forms)+1, m.Len())
		assert.Len(t, m.Deltas(), len(forms))

		require.True(t, m.DeleteForm(i), "delete %d", i)
		assert.Equal(t, wantForms, m.Forms(), "forms after %d", i)
		assert.Equal(t, wantTimes, m.Times(), "times after %d", i)
		assert.Equal(t, wantDeltas, m.Deltas(), "deltas after %d", i)
	}
}

func TestInsertFormOutOfRange(t *testing.T) {
	m := slide(t)
	assert.False(t, m.InsertForm(-1, nil, 0))
	assert.False(t, m.InsertForm(3, nil, 0))
	assert.Equal(t, 2, m.Len())
}

func TestInsertFormFillsFromNeighbour(t *testing.T) {
	forms := []shape.Form{{shape.AttrX: 0, shape.AttrY: 5}, {shape.AttrX: 100, shape.AttrY: 90}}
	m := newMutation(t, shape.NewRectangle(), forms, []float64{0, 1000})

	require.True(t, m.InsertForm(1, shape.Form{shape.AttrX: 50}, 500))
	f := m.Form(1)
	assert.Equal(t, 50.0, f[shape.AttrX])
	assert.Equal(t, 5.0, f[shape.AttrY])
	assert.Equal(t, 0, m.Current())
	assert.Equal(t, []float64{0, 500, 1000}, m.Times())
	assert.Equal(t, Delta{shape.AttrX: 4}, m.Deltas()[0])
	assert.Equal(t, Delta{shape.AttrX: 4, shape.AttrY: 6.8}, m.Deltas()[1])

	m.SeekToForm(2)
	require.True(t, m.InsertForm(0, shape.Form{shape.AttrX: -20}, 0))
	assert.Equal(t, 5.0, m.Form(0)[shape.AttrY])
	assert.Equal(t, 3, m.Current())
}

func TestInsertAtCurrentShowsNewForm(t *testing.T) {
	m := slide(t)
	require.True(t, m.InsertForm(0, shape.Form{shape.AttrX: -50}, 0))
	assert.Equal(t, 0, m.Current())
	assert.Equal(t, -50.0, m.Snapshot()[shape.AttrX])
}

func TestInsertAtCurrentKeepsSeekPosition(t *testing.T) {
	forms := []shape.Form{{shape.AttrX: 0, shape.AttrY: 0}, {shape.AttrX: 100, shape.AttrY: 200}}
	m := newMutation(t, shape.NewRectangle(), forms, []float64{0, 1000})

	m.SeekToTime(500)
	require.Equal(t, 0, m.Current())
	require.True(t, m.InsertForm(0, shape.Form{shape.AttrX: 10}, 0))

	f := m.Form(0)
	assert.Equal(t, 10.0, f[shape.AttrX])
	assert.Equal(t, 100.0, f[shape.AttrY])
	assert.Equal(t, f, m.Snapshot())
	assert.Equal(t, 0, m.Current())
}

func TestDeleteForm(t *testing.T) {
	forms := []shape.Form{{shape.AttrX: 0}, {shape.AttrX: 100}, {shape.AttrX: 300}}
	m := newMutation(t, shape.NewRectangle(), forms, []float64{0, 1000, 2000})

	m.SeekToForm(1)
	require.True(t, m.DeleteForm(1))
	assert.Equal(t, 0, m.Current())
	assert.Equal(t, 0.0, m.Snapshot()[shape.AttrX])
	assert.Equal(t, []float64{0, 2000}, m.Times())
	assert.Equal(t, Delta{shape.AttrX: 6}, m.Deltas()[0])

	m.SeekToForm(1)
	require.True(t, m.DeleteForm(0))
	assert.Equal(t, 0, m.Current())
	assert.Equal(t, 300.0, m.Snapshot()[shape.AttrX])
	assert.Empty(t, m.Deltas())

	assert.False(t, m.DeleteForm(0))
	assert.Equal(t, 1, m.Len())
}

func TestModifyForm(t *testing.T) {
	m := slide(t)

	require.True(t, m.ModifyForm(0, shape.Form{shape.AttrX: 20, shape.AttrY: 40}, false))
	assert.Equal(t, 20.0, m.Snapshot()[shape.AttrX])
	assert.Equal(t, 40.0, m.Snapshot()[shape.AttrY])
	assert.Equal(t, Delta{shape.AttrX: 4}, m.Deltas()[0])

	m.RecomputeDeltas(0)
	assert.Equal(t, Delta{shape.AttrX: 3.2, shape.AttrY: -1.6}, m.Deltas()[0])

	require.True(t, m.ModifyForm(1, shape.Form{shape.AttrX: 120}, true))
	assert.Equal(t, 4.0, m.Deltas()[0][shape.AttrX])
	assert.Equal(t, 20.0, m.Snapshot()[shape.AttrX])

	assert.False(t, m.ModifyForm(1, shape.Form{shape.AttrX: true}, true))
	assert.Equal(t, 120.0, m.Form(1)[shape.AttrX])
	assert.False(t, m.ModifyForm(5, shape.Form{shape.AttrX: 1}, true))
}

func TestNodeAt(t *testing.T) {
	forms := []shape.Form{{shape.AttrX: 0, shape.AttrY: 0}, {shape.AttrX: 300, shape.AttrY: 200}}
	m := newMutation(t, shape.NewRectangle(), forms, []float64{0, 1000})

	assert.Equal(t, 1, m.NodeAt(402, 248))
	assert.Equal(t, 1, m.Node)
	assert.Equal(t, 0, m.NodeAt(100, 50))
	assert.Equal(t, -1, m.NodeAt(250, 150))
	assert.Equal(t, 0, m.Node)
}

func TestApplyHandleDefersDeltas(t *testing.T) {
	m := slide(t)
	h, ok := m.HitTestHandle(200, 100)
	require.True(t, ok)
	assert.Equal(t, shape.HandleResize, h)

	m.ApplyHandle(h, shape.Drag{X: 250, Y: 120})
	assert.Equal(t, 250.0, m.Form(0)[shape.AttrWidth])
	assert.Equal(t, 250.0, m.Snapshot()[shape.AttrWidth])
	_, ok = m.Deltas()[0][shape.AttrWidth]
	assert.False(t, ok)

	m.RecomputeDeltas(0)
	assert.Equal(t, -2.0, m.Deltas()[0][shape.AttrWidth])
}
