package command

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"
)

const defaultFrameInterval = "16ms"

type Config struct {
	FrameInterval string         `json:"frame_interval" env:"GOLEM_FRAME_INTERVAL"`
	Levels        LevelsConfig   `json:"levels"`
	Turns         TurnsConfig    `json:"turns"`
	Audio         AudioConfig    `json:"audio"`
	Settings      SettingsConfig `json:"settings"`
	Nats          NatsConfig     `json:"nats"`

	quit func()
}

// NewConfig returns an empty config. quit is called when the player exits
// from the terminal.
func NewConfig(quit func()) *Config {
	return &Config{quit: quit}
}

// UnmarshalJSON reads the file and then lets environment variables
// override it.
func (c *Config) UnmarshalJSON(b []byte) error {
	type plain Config
	if err := json.Unmarshal(b, (*plain)(c)); err != nil {
		return err
	}
	return c.applyEnv()
}

func (c *Config) applyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.frameInterval())
	if err != nil {
		el.Add(fmt.Errorf("parsing frame_interval: %w", err))
	} else if d <= 0 {
		el.Add(fmt.Errorf("frame_interval must be positive"))
	}

	el.Add(c.Levels.validate())
	el.Add(c.Turns.validate())
	el.Add(c.Audio.validate())
	el.Add(c.Settings.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

func (c *Config) frameInterval() string {
	if c.FrameInterval == "" {
		return defaultFrameInterval
	}
	return c.FrameInterval
}

// optionalDuration parses s, treating empty as zero.
func optionalDuration(name, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return d, nil
}
