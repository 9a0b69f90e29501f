package dice

import (
	"time"

	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/space"
)

type DieOpt func(*Die)

func WithMoveDistance(n int) DieOpt {
	return func(d *Die) {
		d.moveDistance = n
	}
}

func WithMoveDuration(dur time.Duration) DieOpt {
	return func(d *Die) {
		d.moveDuration = dur
	}
}

func WithCurve(c geom.Curve) DieOpt {
	return func(d *Die) {
		d.curve = c
	}
}

func WithOrientation(o geom.Orientation) DieOpt {
	return func(d *Die) {
		d.orientation = o
	}
}

// WithMasks sets which layers block movement and which count as floor.
func WithMasks(obstacle, floor space.Layer) DieOpt {
	return func(d *Die) {
		d.obstacleMask = obstacle
		d.floorMask = floor
	}
}

func WithSounds(p audio.Player) DieOpt {
	return func(d *Die) {
		if p != nil {
			d.sfx = p
		}
	}
}
