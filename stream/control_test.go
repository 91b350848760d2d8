package stream

import (
	"errors"
	"testing"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animtx/shape"
)

type fakeMessage struct {
	mqtt.Message
	topic   string
	payload []byte
}

func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 1 }
func (m *fakeMessage) Payload() []byte   { return m.payload }

func TestControlHandle(t *testing.T) {
	a, model, _, _ := newTestAnimator(t)
	c := NewControl(DefaultConfig(), new(fakeClient), a)

	require.NoError(t, c.Handle([]byte(`{"type": "seek", "time": 250}`)))
	assert.Equal(t, Paused, a.State())
	assert.Equal(t, 25.0, model.Mutation(0).Snapshot()[shape.AttrX])

	require.NoError(t, c.Handle([]byte(`{"type": "play"}`)))
	assert.Equal(t, Running, a.State())
	assert.Error(t, c.Handle([]byte(`{"type": "seek", "time": 10}`)))

	require.NoError(t, c.Handle([]byte(`{"type": "pause"}`)))
	assert.Equal(t, Paused, a.State())

	require.NoError(t, c.Handle([]byte(`{"type": "stop"}`)))
	assert.Equal(t, Stopped, a.State())
	assert.Equal(t, 0.0, a.Time())

	assert.Error(t, c.Handle([]byte(`{"type": "rewind"}`)))
	assert.Error(t, c.Handle([]byte(`not json`)))
}

func TestControlSubscribe(t *testing.T) {
	a, _, _, _ := newTestAnimator(t)
	client := new(fakeClient)
	c := NewControl(DefaultConfig(), client, a)

	require.NoError(t, c.Subscribe())
	handler, ok := client.handlers["animtx/control"]
	require.True(t, ok)

	handler(nil, &fakeMessage{topic: "animtx/control", payload: []byte(`{"type": "play"}`)})
	assert.Equal(t, Running, a.State())

	client.err = errors.New("not authorised")
	assert.Error(t, c.Subscribe())
}
