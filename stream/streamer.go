package stream

import (
	"context"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// Publisher is the part of an MQTT client the Streamer needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

const (
	frameBuffer    = 8
	publishTimeout = 2 * time.Second
)

// Streamer sends rendered frames to the stream topic.
type Streamer struct {
	client Publisher
	topic  string
	qos    byte
	frames chan *Frame
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client Publisher) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topic = config.Mqtt.Topics.Stream
	s.qos = config.Mqtt.QoS
	s.frames = make(chan *Frame, frameBuffer)
	return s
}

// Render queues f for publishing. Frames are dropped while the queue is
// full.
func (s *Streamer) Render(f *Frame) {
	select {
	case s.frames <- f:
	default:
		log.Debugf("Dropped frame at %vms", f.TimeMs)
	}
}

// SendFrame publishes a frame and waits for the broker.
func (s *Streamer) SendFrame(f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.topic, s.qos, false, b)
	if !token.WaitTimeout(publishTimeout) {
		return context.DeadlineExceeded
	}
	return token.Error()
}

// Run publishes queued frames until ctx is done.
func (s *Streamer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-s.frames:
			if err := s.SendFrame(f); err != nil {
				log.Warnf("Failed to publish frame: %v", err)
			}
		}
	}
}
