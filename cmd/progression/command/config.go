package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string            `json:"tick_interval"`
	Listeners    []ListenerConfig  `json:"listeners"`
	Settings     SettingsConfig    `json:"settings"`
	Content      ContentConfig     `json:"content"`
	Progression  ProgressionConfig `json:"progression"`
	Nats         *NatsConfig       `json:"nats,omitempty"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d < time.Second {
		el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
	}

	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Settings.validate())
	el.Add(c.Content.validate())
	el.Add(c.Progression.validate())
	if c.Nats != nil {
		el.Add(c.Nats.validate())
	}

	return el.Err()
}

func (c *Config) tickLength() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0
	}
	return d
}

// ProgressionConfig overrides the starter kit. An unset starter_amount keeps
// the default; an explicit 0 disables the kit.
type ProgressionConfig struct {
	StarterItem   string `json:"starter_item"`
	StarterAmount *int   `json:"starter_amount"`
}

func (c *ProgressionConfig) validate() error {
	el := errors.NewErrorList()

	if c.StarterAmount != nil && *c.StarterAmount < 0 {
		el.Add(fmt.Errorf("starter_amount must not be negative"))
	}

	return el.Err()
}
