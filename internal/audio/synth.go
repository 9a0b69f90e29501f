package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// oscillator plays one waveform for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
}

func newOscillator(n Note, rate beep.SampleRate) beep.Streamer {
	length := rate.N(n.Duration)
	if n.Freq <= 0 && n.Wave != WaveNoise {
		return beep.Silence(length)
	}
	if n.Wave == WaveSine && n.Freq < float64(rate)/2 {
		if tone, err := generators.SineTone(rate, n.Freq); err == nil {
			return beep.Take(length, tone)
		}
	}
	return &oscillator{freq: n.Freq, length: length, wave: n.Wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a finite stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, total, attack, release int) beep.Streamer {
	return &envelope{streamer: s, total: total, attack: attack, release: release}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Max(float64(remaining)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// render synthesizes a sound into a seekable buffer so music can loop.
func render(s Sound, format beep.Format) *beep.Buffer {
	rate := format.SampleRate
	parts := make([]beep.Streamer, 0, len(s.Notes))
	for _, n := range s.Notes {
		total := rate.N(n.Duration)
		parts = append(parts, newEnvelope(newOscillator(n, rate), total, rate.N(min(s.Attack, n.Duration/2)), rate.N(min(s.Release, n.Duration/2))))
	}

	buf := beep.NewBuffer(format)
	buf.Append(beep.Seq(parts...))
	return buf
}

// newVolume scales a stream linearly; zero is silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setVolume(v, vol)
	return v
}

func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(vol)
}

func samplesFor(rate beep.SampleRate, d time.Duration) int {
	return max(rate.N(d), 0)
}
