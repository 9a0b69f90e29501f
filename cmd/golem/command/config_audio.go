package command

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-golem/internal/audio"
)

const defaultAudioBuffer = 100 * time.Millisecond

type AudioConfig struct {
	Enabled    bool   `json:"enabled" env:"GOLEM_AUDIO"`
	SampleRate int    `json:"sample_rate" env:"GOLEM_SAMPLE_RATE"`
	Buffer     string `json:"buffer"`
}

func (c *AudioConfig) validate() error {
	el := errors.NewErrorList()

	if c.SampleRate < 0 {
		el.Add(fmt.Errorf("audio.sample_rate must not be negative"))
	}
	_, err := optionalDuration("audio.buffer", c.Buffer)
	el.Add(err)

	return el.Err()
}

func (c *AudioConfig) rate() beep.SampleRate {
	if c.SampleRate == 0 {
		return audio.DefaultSampleRate
	}
	return beep.SampleRate(c.SampleRate)
}

// buildOutput opens the speaker when audio is enabled. If that fails the
// game carries on silently.
func (c *AudioConfig) buildOutput() audio.Output {
	if !c.Enabled {
		return audio.NewDiscardOutput(c.rate())
	}

	buffer, _ := optionalDuration("audio.buffer", c.Buffer)
	if buffer == 0 {
		buffer = defaultAudioBuffer
	}
	out, err := audio.NewSpeakerOutput(c.rate(), buffer)
	if err != nil {
		slog.Warn("opening audio device, continuing without sound", "error", err)
		return audio.NewDiscardOutput(c.rate())
	}
	return out
}
