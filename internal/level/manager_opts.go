package level

import (
	"log/slog"
	"time"
)

type ManagerOpt func(*Manager)

// WithTransition sets how long level fades take. Zero switches instantly.
func WithTransition(d time.Duration) ManagerOpt {
	return func(m *Manager) {
		m.transition = d
	}
}

func WithMusic(music Music) ManagerOpt {
	return func(m *Manager) {
		m.music = music
	}
}

func WithLogger(l *slog.Logger) ManagerOpt {
	return func(m *Manager) {
		m.logger = l
	}
}
