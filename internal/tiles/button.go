package tiles

import (
	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/space"
	"github.com/pixil98/go-golem/internal/turn"
)

// Button is a pressure plate on the floor. It triggers its targets when a
// die rests on it showing the required face.
type Button struct {
	id       string
	pos      geom.Vec
	required int
	held     bool
	targets  []Triggerable

	space  *space.Space
	queuer turn.Queuer
	sfx    audio.Player

	triggered bool
	wrongFace bool
}

// NewButton builds a button on the floor cell pos. Held buttons release
// their targets when the die leaves; the rest latch once pressed.
func NewButton(id string, pos geom.Vec, required int, held bool, targets []Triggerable, sp *space.Space, q turn.Queuer, sfx audio.Player) (*Button, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	if sfx == nil {
		sfx = audio.Silent{}
	}
	return &Button{
		id:       id,
		pos:      pos,
		required: required,
		held:     held,
		targets:  targets,
		space:    sp,
		queuer:   q,
		sfx:      sfx,
	}, nil
}

func (b *Button) ID() string {
	return b.id
}

func (b *Button) Position() geom.Vec {
	return b.pos
}

func (b *Button) Required() int {
	return b.required
}

func (b *Button) Triggered() bool {
	return b.triggered
}

func (b *Button) TurnType() turn.Phase {
	return turn.World
}

func (b *Button) TurnOrder() int {
	return ButtonOrder
}

func (b *Button) QueueTurn() {
	side, occupied := b.side()
	pressed := occupied && side == b.required

	switch {
	case pressed && !b.triggered:
		b.triggered = true
		b.queue(audio.EffectButtonSuccess, Triggerable.TriggerAction)
	case !pressed && b.triggered && b.held:
		b.triggered = false
		b.queue("", Triggerable.ReleaseAction)
	}

	wrong := occupied && !pressed
	if wrong && !b.wrongFace {
		b.queuer.QueueAction(b.producer(), turn.ActionFunc(func() {
			b.sfx.PlaySound(audio.EffectButtonFailure)
		}))
	}
	b.wrongFace = wrong
}

func (b *Button) producer() string {
	return "button:" + b.id
}

func (b *Button) side() (int, bool) {
	body, ok := occupant(b.space, b.pos)
	if !ok {
		return 0, false
	}
	die, ok := body.Owner.(SideReader)
	if !ok {
		return 0, false
	}
	return die.CurrentSide(), true
}

func (b *Button) queue(sound string, action func(Triggerable) turn.Action) {
	if sound != "" {
		b.queuer.QueueAction(b.producer(), turn.ActionFunc(func() {
			b.sfx.PlaySound(sound)
		}))
	}
	for _, t := range b.targets {
		b.queuer.QueueAction(b.producer(), action(t))
	}
}
