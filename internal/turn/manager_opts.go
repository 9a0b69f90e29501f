package turn

import (
	"log/slog"
	"time"
)

type ManagerOpt func(*Manager)

// WithActionTimeout force-completes any action that runs longer than d of
// frame time. Zero disables the watchdog.
func WithActionTimeout(d time.Duration) ManagerOpt {
	return func(m *Manager) {
		m.actionTimeout = d
	}
}

// WithObserver registers an observer at construction.
func WithObserver(o Observer) ManagerOpt {
	return func(m *Manager) {
		m.observers = append(m.observers, o)
	}
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) ManagerOpt {
	return func(m *Manager) {
		m.logger = l
	}
}
