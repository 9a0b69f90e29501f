package driver

import "time"

type FrameDriverOpt func(*FrameDriver)

func WithFrameLength(d time.Duration) FrameDriverOpt {
	return func(f *FrameDriver) {
		f.frameLength = d
	}
}

// WithMaxFrame caps the dt handed to tickers.
func WithMaxFrame(d time.Duration) FrameDriverOpt {
	return func(f *FrameDriver) {
		f.maxFrame = d
	}
}

func WithClock(now func() time.Time) FrameDriverOpt {
	return func(f *FrameDriver) {
		f.now = now
	}
}
