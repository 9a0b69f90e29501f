package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/dice"
	"github.com/pixil98/go-golem/internal/display"
	"github.com/pixil98/go-golem/internal/driver"
	"github.com/pixil98/go-golem/internal/level"
	"github.com/pixil98/go-golem/internal/messaging"
	"github.com/pixil98/go-golem/internal/turn"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	workers, err := buildWorkers(cfg, screen)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return workers, nil
}

func buildWorkers(cfg *Config, screen tcell.Screen) (service.WorkerList, error) {
	logger := slog.Default()

	catalog, err := cfg.Levels.buildCatalog()
	if err != nil {
		return nil, err
	}

	prefs, err := cfg.Settings.open()
	if err != nil {
		return nil, err
	}

	nats, err := cfg.Nats.buildNatsServer()
	if err != nil {
		_ = prefs.Close()
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	out := cfg.Audio.buildOutput()
	sounds := audio.NewManager(audio.DefaultBank(), out, audio.WithLogger(logger))
	sounds.PlaySound(audio.TrackMenu)

	input := &dice.Latch{}
	levels := level.NewManager(catalog, level.Deps{
		Sounds:      sounds,
		Input:       input,
		Logger:      logger,
		MaxRetries:  cfg.Turns.MaxRetries,
		ManagerOpts: append(cfg.Turns.managerOpts(), turn.WithObserver(messaging.NewTurnPublisher(nats, logger))),
	}, append(cfg.Levels.managerOpts(), level.WithMusic(sounds), level.WithLogger(logger))...)

	quit := cfg.quit
	if quit == nil {
		quit = func() {}
	}
	term, err := display.NewTerminal(screen, levels, input,
		display.WithMixer(sounds),
		display.WithVolumeStore(prefs),
		display.WithEventFeed(nats, nats.Ready()),
		display.WithQuit(quit),
		display.WithLogger(logger),
	)
	if err != nil {
		_ = prefs.Close()
		return nil, fmt.Errorf("creating terminal: %w", err)
	}

	frame, _ := time.ParseDuration(cfg.frameInterval())
	frames := driver.NewFrameDriver([]driver.Ticker{levels, term}, driver.WithFrameLength(frame))

	return service.WorkerList{
		"driver":   frames,
		"nats":     nats,
		"terminal": term,
		"cleanup": closeOnDone(func() {
			sounds.Stop()
			if err := prefs.Close(); err != nil {
				logger.Warn("closing settings", "error", err)
			}
		}),
	}, nil
}

// closeOnDone runs fn once the app is shutting down.
type closeOnDone func()

func (c closeOnDone) Start(ctx context.Context) error {
	<-ctx.Done()
	c()
	return nil
}
