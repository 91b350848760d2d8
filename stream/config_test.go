package stream

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
mqtt:
  url: tcp://broker:1883
  username: anim
  qos: 2
  topics:
    stream: studio/frames
animation:
  frameRate: 30
store:
  timeout: 750ms
api:
  listen: ":8080"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tcp://broker:1883", c.Mqtt.URL)
	assert.Equal(t, "anim", c.Mqtt.Username)
	assert.Equal(t, byte(2), c.Mqtt.QoS)
	assert.Equal(t, "studio/frames", c.Mqtt.Topics.Stream)
	assert.Equal(t, "animtx/control", c.Mqtt.Topics.Control)
	assert.Equal(t, 30.0, c.Animation.FrameRate)
	assert.Equal(t, 600.0, c.Animation.TimelineWidth)
	assert.Equal(t, 750*time.Millisecond, c.Store.Timeout)
	assert.Equal(t, ":8080", c.Api.Listen)
	assert.Equal(t, 4, c.Export.Workers)
}

func TestReadConfigErrors(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mqtt: [unclosed"), 0o600))
	_, err = ReadConfig(path)
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 25.0, c.Animation.FrameRate)
	assert.Equal(t, "animtx.db", c.Store.Path)
	assert.Equal(t, 5*time.Second, c.Store.Timeout)
	assert.Equal(t, "client/dist", c.Api.ClientDir)
}
