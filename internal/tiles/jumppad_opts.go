package tiles

import (
	"time"

	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/geom"
)

type JumpPadOpt func(*JumpPad)

func WithFlight(d time.Duration, height float64, curve geom.Curve) JumpPadOpt {
	return func(p *JumpPad) {
		p.duration = d
		p.height = height
		if curve != nil {
			p.heightCurve = curve
		}
	}
}

func WithLandingRolls(n int) JumpPadOpt {
	return func(p *JumpPad) {
		p.landingRolls = n
	}
}

func WithPadSounds(sfx audio.Player) JumpPadOpt {
	return func(p *JumpPad) {
		if sfx != nil {
			p.sfx = sfx
		}
	}
}
