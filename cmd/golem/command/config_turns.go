package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-golem/internal/turn"
)

type TurnsConfig struct {
	// ActionTimeout force-completes an action that runs longer. Empty
	// disables the watchdog.
	ActionTimeout string `json:"action_timeout" env:"GOLEM_ACTION_TIMEOUT"`
	// MaxRetries drops an action requeued more often than this. Zero means
	// no limit.
	MaxRetries int `json:"max_retries" env:"GOLEM_MAX_RETRIES"`
}

func (c *TurnsConfig) validate() error {
	el := errors.NewErrorList()

	_, err := optionalDuration("turns.action_timeout", c.ActionTimeout)
	el.Add(err)
	if c.MaxRetries < 0 {
		el.Add(fmt.Errorf("turns.max_retries must not be negative"))
	}

	return el.Err()
}

func (c *TurnsConfig) managerOpts() []turn.ManagerOpt {
	var opts []turn.ManagerOpt
	if d, _ := optionalDuration("turns.action_timeout", c.ActionTimeout); d > 0 {
		opts = append(opts, turn.WithActionTimeout(d))
	}
	return opts
}
