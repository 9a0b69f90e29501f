package display

import (
	"log/slog"
	"text/template"

	"github.com/pixil98/go-golem/internal/messaging"
)

type TerminalOpt func(*Terminal)

// WithMixer enables the volume keys.
func WithMixer(m Mixer) TerminalOpt {
	return func(t *Terminal) {
		t.mixer = m
	}
}

// WithVolumeStore saves volume changes and reloads them when the menu opens.
func WithVolumeStore(s VolumeStore) TerminalOpt {
	return func(t *Terminal) {
		t.store = s
	}
}

// WithEventFeed shows turn events from sub once ready is closed.
func WithEventFeed(sub messaging.Subscriber, ready <-chan struct{}) TerminalOpt {
	return func(t *Terminal) {
		t.feed = sub
		t.ready = ready
	}
}

func WithHUD(tmpl *template.Template) TerminalOpt {
	return func(t *Terminal) {
		t.hud = tmpl
	}
}

// WithQuit is called when the player quits from the terminal.
func WithQuit(fn func()) TerminalOpt {
	return func(t *Terminal) {
		if fn != nil {
			t.quit = fn
		}
	}
}

func WithLogger(l *slog.Logger) TerminalOpt {
	return func(t *Terminal) {
		t.logger = l
	}
}
