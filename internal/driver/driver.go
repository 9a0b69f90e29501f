package driver

import (
	"context"
	"time"
)

const (
	DefaultFrameLength = time.Second / 60

	// frames longer than this are clamped so a stall doesn't skip animations
	DefaultMaxFrame = 100 * time.Millisecond
)

// Ticker is advanced once per frame with the time since the last frame.
type Ticker interface {
	Tick(dt time.Duration) error
}

type TickerFunc func(dt time.Duration) error

func (f TickerFunc) Tick(dt time.Duration) error {
	return f(dt)
}

// FrameDriver runs every ticker in order on a single goroutine, so they may
// share state without locking between each other.
type FrameDriver struct {
	frameLength time.Duration
	maxFrame    time.Duration
	now         func() time.Time
	tickers     []Ticker
}

func NewFrameDriver(tickers []Ticker, opts ...FrameDriverOpt) *FrameDriver {
	d := &FrameDriver{
		frameLength: DefaultFrameLength,
		maxFrame:    DefaultMaxFrame,
		now:         time.Now,
		tickers:     tickers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *FrameDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.frameLength)
	defer ticker.Stop()

	last := d.now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := d.now()
			err := d.Tick(now.Sub(last))
			last = now
			if err != nil {
				return err
			}
		}
	}
}

// Tick advances every ticker by dt, stopping at the first error.
func (d *FrameDriver) Tick(dt time.Duration) error {
	dt = min(max(dt, 0), d.maxFrame)
	for _, t := range d.tickers {
		if err := t.Tick(dt); err != nil {
			return err
		}
	}
	return nil
}
