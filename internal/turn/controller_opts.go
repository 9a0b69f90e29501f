package turn

import "log/slog"

type ControllerOpt func(*Controller)

// WithWaitForActions keeps the phase from advancing when a poll queued
// nothing. The player phase uses this to wait for usable input.
func WithWaitForActions() ControllerOpt {
	return func(c *Controller) {
		c.waitForActions = true
	}
}

// WithMaxRetries drops an action after n consecutive retries. Zero retries
// forever.
func WithMaxRetries(n int) ControllerOpt {
	return func(c *Controller) {
		c.maxRetries = n
	}
}

func WithControllerLogger(l *slog.Logger) ControllerOpt {
	return func(c *Controller) {
		c.logger = l
	}
}
