package dice

import (
	"fmt"
	"time"

	"github.com/pixil98/go-golem/internal/anim"
	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/space"
	"github.com/pixil98/go-golem/internal/turn"
)

const (
	DefaultMoveDistance   = 1
	DefaultMoveDuration   = 250 * time.Millisecond
	DefaultWiggleDuration = 150 * time.Millisecond

	// how far into the blocked direction a wiggle leans, in cells
	wiggleLean = 0.15
)

// Die is a rolling six-sided die on the grid.
type Die struct {
	id    string
	body  *space.Body
	space *space.Space
	sfx   audio.Player

	orientation geom.Orientation
	visual      geom.Point

	moveDistance   int
	moveDuration   time.Duration
	wiggleDuration time.Duration
	curve          geom.Curve
	obstacleMask   space.Layer
	floorMask      space.Layer
}

// NewDie places a die at pos and registers its body with the space.
func NewDie(id string, pos geom.Vec, sp *space.Space, opts ...DieOpt) (*Die, error) {
	d := &Die{
		id:             id,
		space:          sp,
		sfx:            audio.Silent{},
		orientation:    geom.StandardDie(),
		visual:         pos.Point(),
		moveDistance:   DefaultMoveDistance,
		moveDuration:   DefaultMoveDuration,
		wiggleDuration: DefaultWiggleDuration,
		curve:          geom.EaseInOut,
		obstacleMask:   space.LayerObstacle | space.LayerDie,
		floorMask:      space.LayerFloor,
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.orientation.Validate(); err != nil {
		return nil, fmt.Errorf("die %s: %w", id, err)
	}

	d.body = &space.Body{ID: id, Layer: space.LayerDie, Position: pos, Owner: d}
	if err := sp.Add(d.body); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Die) ID() string {
	return d.id
}

func (d *Die) Position() geom.Vec {
	return d.body.Position
}

// Visual is where the die is drawn this frame; it differs from Position only
// while an animation is running.
func (d *Die) Visual() geom.Point {
	return d.visual
}

func (d *Die) Orientation() geom.Orientation {
	return d.orientation
}

// CurrentSide returns the value on the face pointing up.
func (d *Die) CurrentSide() int {
	return d.orientation.Top()
}

// IsValidMoveDirection checks that nothing blocks the way and that there is
// a floor tile to land on.
func (d *Die) IsValidMoveDirection(dir geom.Vec) bool {
	if dir.IsZero() {
		return false
	}

	pos := d.Position()
	if _, blocked := d.space.Raycast(pos, dir, d.moveDistance, d.obstacleMask); blocked {
		return false
	}

	dest := pos.Add(dir.Scale(d.moveDistance))
	_, floor := d.space.Raycast(dest, geom.Down, 1, d.floorMask)
	return floor
}

// MoveAction rolls the die one step along dir over the move duration. The
// grid position and orientation are committed when the roll lands.
func (d *Die) MoveAction(dir geom.Vec) turn.Action {
	return turn.Lazy(func() turn.Action {
		return d.roll(dir)
	})
}

// ForceExternalMove rolls the die if the way is open, or wiggles it in place.
// The check happens when the action runs, not when it is built.
func (d *Die) ForceExternalMove(dir geom.Vec) turn.Action {
	return turn.Lazy(func() turn.Action {
		if d.IsValidMoveDirection(dir) {
			return d.roll(dir)
		}
		return d.Wiggle(dir)
	})
}

// Wiggle leans toward dir and back without moving.
func (d *Die) Wiggle(dir geom.Vec) turn.Action {
	tw := anim.NewTween(d.wiggleDuration, geom.Arc)
	return turn.StepFunc(func(dt time.Duration) turn.Status {
		pos := d.Position()
		v, done := tw.Step(dt)
		if done {
			d.visual = pos.Point()
			return turn.Done
		}
		d.visual = geom.Lerp(pos.Point(), pos.Add(dir).Point(), v*wiggleLean)
		return turn.Running
	})
}

// Place puts the die at pos immediately, without rolling.
func (d *Die) Place(pos geom.Vec) {
	d.space.Move(d.body, pos)
	d.visual = pos.Point()
}

// SetVisual overrides where the die is drawn. Callers animating the die
// through the air use this between Place calls.
func (d *Die) SetVisual(p geom.Point) {
	d.visual = p
}

func (d *Die) roll(dir geom.Vec) turn.Action {
	start := d.Position()
	target := start.Add(dir.Scale(d.moveDistance))
	tw := anim.NewTween(d.moveDuration, d.curve)

	return turn.StepFunc(func(dt time.Duration) turn.Status {
		v, done := tw.Step(dt)
		if !done {
			d.visual = geom.Lerp(start.Point(), target.Point(), v)
			return turn.Running
		}

		d.sfx.PlayRandomGroupSound(audio.GroupDiceClack)
		d.orientation = d.orientation.Roll(dir)
		d.Place(target)
		return turn.Done
	})
}
