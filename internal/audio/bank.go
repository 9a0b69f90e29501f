package audio

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Kind int

const (
	KindEffect Kind = iota
	KindMusic
)

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Note is one synthesized tone. A zero frequency is a rest.
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
}

// Sound is a named entry in the bank.
type Sound struct {
	Kind   Kind
	Volume float64
	Notes  []Note

	// Attack and release shape every note.
	Attack  time.Duration
	Release time.Duration
}

func (s Sound) Duration() time.Duration {
	var d time.Duration
	for _, n := range s.Notes {
		d += n.Duration
	}
	return d
}

// Bank holds every sound the game can play plus the groups effects are
// picked from at random.
type Bank struct {
	Sounds map[string]Sound
	Groups map[string][]string
}

func (b *Bank) Validate() error {
	el := errors.NewErrorList()
	for name, s := range b.Sounds {
		if len(s.Notes) == 0 {
			el.Add(fmt.Errorf("sound %q has no notes", name))
		}
		if s.Volume < 0 {
			el.Add(fmt.Errorf("sound %q has negative volume", name))
		}
		for i, n := range s.Notes {
			if n.Duration <= 0 {
				el.Add(fmt.Errorf("sound %q note %d has no duration", name, i))
			}
		}
	}
	for group, members := range b.Groups {
		if len(members) == 0 {
			el.Add(fmt.Errorf("group %q is empty", group))
		}
		for _, m := range members {
			if _, ok := b.Sounds[m]; !ok {
				el.Add(fmt.Errorf("group %q references unknown sound %q", group, m))
			}
		}
	}
	return el.Err()
}

func notes(wave Wave, d time.Duration, freqs ...float64) []Note {
	out := make([]Note, len(freqs))
	for i, f := range freqs {
		out[i] = Note{Freq: f, Duration: d, Wave: wave}
	}
	return out
}

func effect(vol float64, n ...Note) Sound {
	return Sound{Kind: KindEffect, Volume: vol, Notes: n, Attack: 5 * time.Millisecond, Release: 40 * time.Millisecond}
}

// DefaultBank is a small synthesized set covering every name the game uses.
func DefaultBank() *Bank {
	const beat = 180 * time.Millisecond
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	return &Bank{
		Sounds: map[string]Sound{
			TrackMain: {
				Kind:    KindMusic,
				Volume:  0.35,
				Notes:   notes(WaveSine, beat, 220, 277.18, 329.63, 440, 329.63, 277.18, 196, 246.94, 293.66, 392, 293.66, 246.94),
				Attack:  ms(10),
				Release: ms(60),
			},
			TrackMenu: {
				Kind:    KindMusic,
				Volume:  0.3,
				Notes:   notes(WaveSine, 2*beat, 174.61, 220, 261.63, 220, 164.81, 196, 246.94, 196),
				Attack:  ms(30),
				Release: ms(120),
			},
			EffectLevelComplete: effect(0.6, notes(WaveSquare, ms(120), 523.25, 659.25, 783.99, 1046.5)...),
			EffectButtonSuccess: effect(0.5, notes(WaveSine, ms(80), 660, 990)...),
			EffectButtonFailure: effect(0.5, notes(WaveSaw, ms(120), 140, 110)...),
			EffectDoorOpen:      effect(0.5, notes(WaveSaw, ms(90), 196, 294)...),
			EffectDoorClose:     effect(0.5, notes(WaveSaw, ms(90), 294, 196)...),
			EffectJumpPad:       effect(0.6, notes(WaveSquare, ms(60), 330, 440, 587, 784)...),
			EffectSync:          effect(0.5, notes(WaveSine, ms(100), 880, 1320)...),
			EffectDesync:        effect(0.5, notes(WaveSine, ms(100), 1320, 660)...),
			"clack_1":           effect(0.4, Note{Duration: ms(45), Wave: WaveNoise}),
			"clack_2":           effect(0.4, Note{Duration: ms(35), Wave: WaveNoise}, Note{Freq: 90, Duration: ms(20), Wave: WaveSquare}),
			"clack_3":           effect(0.4, Note{Freq: 120, Duration: ms(25), Wave: WaveSquare}, Note{Duration: ms(30), Wave: WaveNoise}),
			"whoosh_1":          effect(0.4, Note{Duration: ms(300), Wave: WaveNoise}),
			"whoosh_2":          effect(0.4, notes(WaveSine, ms(75), 200, 300, 400, 500)...),
			"check_low":         effect(0.6, Note{Freq: 440, Duration: ms(150)}),
			"check_high":        effect(0.6, Note{Freq: 880, Duration: ms(150)}),
		},
		Groups: map[string][]string{
			GroupDiceClack:       {"clack_1", "clack_2", "clack_3"},
			GroupLevelTransition: {"whoosh_1", "whoosh_2"},
			GroupVolumeCheck:     {"check_low", "check_high"},
		},
	}
}
