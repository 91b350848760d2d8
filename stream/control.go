package stream

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// ControlMessage is sent by clients on the control topic.
type ControlMessage struct {
	Type string  `json:"type"`
	Time float64 `json:"time"`
}

// Subscriber is the part of an MQTT client the Control needs.
type Subscriber interface {
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// Control drives an Animator from control topic messages.
type Control struct {
	client   Subscriber
	topic    string
	animator *Animator
}

// NewControl creates a Control for animator.
func NewControl(config Config, client Subscriber, animator *Animator) *Control {
	c := new(Control)
	c.client = client
	c.topic = config.Mqtt.Topics.Control
	c.animator = animator
	return c
}

// Handle applies one control message.
func (c *Control) Handle(payload []byte) error {
	var message ControlMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		return err
	}

	switch message.Type {
	case "play":
		c.animator.Start()
	case "pause":
		c.animator.Pause()
	case "stop":
		c.animator.Reset()
	case "seek":
		return c.animator.Seek(message.Time)
	default:
		return fmt.Errorf("unknown control message type %q", message.Type)
	}
	return nil
}

func (c *Control) handleClientMessages(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received msg %d on %s: %s", msg.MessageID(), msg.Topic(), msg.Payload())
	if err := c.Handle(msg.Payload()); err != nil {
		log.Warnf("Ignored control message: %v", err)
	}
}

// Subscribe listens on the control topic.
func (c *Control) Subscribe() error {
	token := c.client.Subscribe(c.topic, 0, c.handleClientMessages)
	token.Wait()
	return token.Error()
}
