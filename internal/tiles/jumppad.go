package tiles

import (
	"time"

	"github.com/pixil98/go-golem/internal/anim"
	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/space"
	"github.com/pixil98/go-golem/internal/turn"
)

const (
	DefaultJumpDuration = 600 * time.Millisecond
	DefaultJumpHeight   = 2.0
	DefaultLandingRolls = 1
)

// Jumper is a die a pad can launch.
type Jumper interface {
	Position() geom.Vec
	Place(geom.Vec)
	SetVisual(geom.Point)
	ForceExternalMove(geom.Vec) turn.Action
}

// JumpPad throws whatever die lands on it to a target cell, after which the
// die keeps rolling in the direction of travel.
type JumpPad struct {
	id     string
	pos    geom.Vec
	target geom.Vec

	duration     time.Duration
	height       float64
	heightCurve  geom.Curve
	landingRolls int

	space  *space.Space
	queuer turn.Queuer
	sfx    audio.Player
}

// NewJumpPad builds a pad on the floor cell pos that launches to the floor
// cell target.
func NewJumpPad(id string, pos, target geom.Vec, sp *space.Space, q turn.Queuer, opts ...JumpPadOpt) *JumpPad {
	p := &JumpPad{
		id:           id,
		pos:          pos,
		target:       target,
		duration:     DefaultJumpDuration,
		height:       DefaultJumpHeight,
		heightCurve:  geom.Arc,
		landingRolls: DefaultLandingRolls,
		space:        sp,
		queuer:       q,
		sfx:          audio.Silent{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *JumpPad) ID() string {
	return p.id
}

func (p *JumpPad) Position() geom.Vec {
	return p.pos
}

func (p *JumpPad) Target() geom.Vec {
	return p.target
}

func (p *JumpPad) TurnType() turn.Phase {
	return turn.World
}

func (p *JumpPad) TurnOrder() int {
	return JumpPadOrder
}

func (p *JumpPad) QueueTurn() {
	body, ok := occupant(p.space, p.pos)
	if !ok {
		return
	}
	j, ok := body.Owner.(Jumper)
	if !ok {
		return
	}
	p.queuer.QueueAction("pad:"+p.id, p.Jump(j))
}

// LandingDirection is the axis of travel from the pad to its target.
func (p *JumpPad) LandingDirection() geom.Vec {
	return geom.DominantAxis(p.target.Flat(0).Sub(p.pos.Flat(0)))
}

// Jump flies j to the target, then forces the landing rolls.
func (p *JumpPad) Jump(j Jumper) turn.Action {
	steps := []turn.Action{p.flight(j)}
	dir := p.LandingDirection()
	for i := 0; i < p.landingRolls; i++ {
		steps = append(steps, j.ForceExternalMove(dir))
	}
	return turn.Sequence(steps...)
}

func (p *JumpPad) flight(j Jumper) turn.Action {
	return turn.Lazy(func() turn.Action {
		start := j.Position()
		end := p.target.Flat(start.Y)
		tw := anim.NewTween(p.duration, geom.Linear)
		p.sfx.PlaySound(audio.EffectJumpPad)

		return turn.StepFunc(func(dt time.Duration) turn.Status {
			v, done := tw.Step(dt)
			if done {
				j.Place(end)
				return turn.Done
			}
			at := geom.Lerp(start.Point(), end.Point(), v)
			at.Y = float64(start.Y) + p.heightCurve(v)*p.height
			j.SetVisual(at)
			return turn.Running
		})
	})
}
