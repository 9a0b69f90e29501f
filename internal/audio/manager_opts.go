package audio

import "log/slog"

type ManagerOpt func(*Manager)

func WithLogger(l *slog.Logger) ManagerOpt {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithPicker replaces the random choice used for groups.
func WithPicker(pick func(n int) int) ManagerOpt {
	return func(m *Manager) {
		m.pick = pick
	}
}

func WithVolumes(music, effects float64) ManagerOpt {
	return func(m *Manager) {
		m.musicVolume = clamp01(music)
		m.effectsVolume = clamp01(effects)
	}
}
