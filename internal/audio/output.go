package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const DefaultSampleRate = beep.SampleRate(44100)

// Output is where finished streams are mixed. Lock must be held while
// touching any streamer already handed to Play.
type Output interface {
	Format() beep.Format
	Play(beep.Streamer)
	Lock()
	Unlock()
}

// MixerOutput mixes into a beep.Mixer. On its own nothing pulls the mix;
// Pull advances it, which tests use to move time forward.
type MixerOutput struct {
	mu     sync.Mutex
	format beep.Format
	mixer  *beep.Mixer
	lock   func()
	unlock func()
}

func NewMixerOutput(rate beep.SampleRate) *MixerOutput {
	o := &MixerOutput{
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		mixer:  &beep.Mixer{},
	}
	o.lock, o.unlock = o.mu.Lock, o.mu.Unlock
	return o
}

// NewSpeakerOutput opens the sound card and plays the mix through it.
func NewSpeakerOutput(rate beep.SampleRate, buffer time.Duration) (*MixerOutput, error) {
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, err
	}
	o := NewMixerOutput(rate)
	o.lock, o.unlock = speaker.Lock, speaker.Unlock
	speaker.Play(o.mixer)
	return o, nil
}

func (o *MixerOutput) Format() beep.Format {
	return o.format
}

func (o *MixerOutput) Play(s beep.Streamer) {
	o.lock()
	defer o.unlock()
	o.mixer.Add(s)
}

func (o *MixerOutput) Lock()   { o.lock() }
func (o *MixerOutput) Unlock() { o.unlock() }

// Pull mixes d worth of audio and returns the samples.
func (o *MixerOutput) Pull(d time.Duration) [][2]float64 {
	samples := make([][2]float64, o.format.SampleRate.N(d))
	o.lock()
	defer o.unlock()
	o.mixer.Stream(samples)
	return samples
}

// Playing is the number of streams still in the mix.
func (o *MixerOutput) Playing() int {
	o.lock()
	defer o.unlock()
	return o.mixer.Len()
}

// Close empties the mix.
func (o *MixerOutput) Close() {
	o.lock()
	defer o.unlock()
	o.mixer.Clear()
}

// DiscardOutput drops everything it is given.
type DiscardOutput struct {
	format beep.Format
}

func NewDiscardOutput(rate beep.SampleRate) *DiscardOutput {
	return &DiscardOutput{format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}}
}

func (o *DiscardOutput) Format() beep.Format { return o.format }
func (o *DiscardOutput) Play(beep.Streamer)  {}
func (o *DiscardOutput) Lock()               {}
func (o *DiscardOutput) Unlock()             {}
