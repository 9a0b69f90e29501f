package dice

import "log/slog"

type PlayerOpt func(*PlayerDie)

func WithDeadzone(dz float64) PlayerOpt {
	return func(p *PlayerDie) {
		p.deadzone = dz
	}
}

// WithInputGate disables input whenever enabled returns false, for example
// while a level transition plays.
func WithInputGate(enabled func() bool) PlayerOpt {
	return func(p *PlayerDie) {
		if enabled != nil {
			p.enabled = enabled
		}
	}
}

func WithPlayerLogger(l *slog.Logger) PlayerOpt {
	return func(p *PlayerDie) {
		p.logger = l
	}
}
