package stream

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is read from the YAML config file.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		QoS      byte   `yaml:"qos"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Animation struct {
		FrameRate     float64 `yaml:"frameRate"`
		TimelineWidth float64 `yaml:"timelineWidth"`
		Width         int     `yaml:"width"`
		Height        int     `yaml:"height"`
	} `yaml:"animation"`
	Store struct {
		Path    string        `yaml:"path"`
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"store"`
	Api struct {
		Listen    string `yaml:"listen"`
		ClientDir string `yaml:"clientDir"`
	} `yaml:"api"`
	Export struct {
		Dir     string `yaml:"dir"`
		Workers int    `yaml:"workers"`
	} `yaml:"export"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var c Config
	c.applyDefaults()
	return c
}

// ReadConfig decodes the YAML file at path and fills in defaults.
func ReadConfig(path string) (Config, error) {
	var c Config
	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil {
		return c, err
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "animtx"
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "animtx/stream"
	}
	if c.Mqtt.Topics.Control == "" {
		c.Mqtt.Topics.Control = "animtx/control"
	}
	if c.Animation.FrameRate <= 0 {
		c.Animation.FrameRate = 25
	}
	if c.Animation.TimelineWidth <= 0 {
		c.Animation.TimelineWidth = 600
	}
	if c.Animation.Width <= 0 {
		c.Animation.Width = 800
	}
	if c.Animation.Height <= 0 {
		c.Animation.Height = 600
	}
	if c.Store.Path == "" {
		c.Store.Path = "animtx.db"
	}
	if c.Store.Timeout <= 0 {
		c.Store.Timeout = 5 * time.Second
	}
	if c.Api.Listen == "" {
		c.Api.Listen = ":3000"
	}
	if c.Api.ClientDir == "" {
		c.Api.ClientDir = "client/dist"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "frames"
	}
	if c.Export.Workers <= 0 {
		c.Export.Workers = 4
	}
}
