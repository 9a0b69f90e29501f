package dice

import (
	"log/slog"

	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/turn"
)

// PlayerDie is the die the player steers. On its turn it also tells every
// synced golem to copy the move.
type PlayerDie struct {
	*Die

	queuer   turn.Queuer
	input    InputSource
	golems   *GolemSet
	deadzone float64
	enabled  func() bool
	logger   *slog.Logger
}

func NewPlayerDie(d *Die, q turn.Queuer, input InputSource, golems *GolemSet, opts ...PlayerOpt) *PlayerDie {
	p := &PlayerDie{
		Die:      d,
		queuer:   q,
		input:    input,
		golems:   golems,
		deadzone: DefaultDeadzone,
		enabled:  func() bool { return true },
		logger:   slog.Default(),
	}
	if p.golems == nil {
		p.golems = &GolemSet{}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PlayerDie) TurnType() turn.Phase {
	return turn.Player
}

func (p *PlayerDie) TurnOrder() int {
	return 0
}

func (p *PlayerDie) producer() string {
	return "player:" + p.ID()
}

// QueueTurn reads one input. Nothing is queued when input is disabled, when
// there is no direction, or when neither the player nor any synced golem
// could use it.
func (p *PlayerDie) QueueTurn() {
	axes := p.input.Read()
	if !p.enabled() {
		return
	}

	dir := axes.Direction(p.deadzone)
	if dir.IsZero() {
		return
	}
	if !p.MovementShouldTakeTurn(dir) {
		p.logger.Debug("input rejected", "die", p.ID(), "direction", dir)
		return
	}

	// Sync is judged before anything moves.
	synced := p.golems.SyncedWith(p)

	if p.IsValidMoveDirection(dir) {
		p.queuer.QueueAction(p.producer(), p.MoveAction(dir))
	} else {
		p.queuer.QueueAction(p.producer(), p.Wiggle(dir))
	}
	for _, g := range synced {
		g.QueueMove(dir)
	}
}

// MovementShouldTakeTurn is true when the player can move along dir, or when
// a golem on the same face can.
func (p *PlayerDie) MovementShouldTakeTurn(dir geom.Vec) bool {
	if p.IsValidMoveDirection(dir) {
		return true
	}
	return p.golems.AnySyncedGolemHasValidMove(p, dir)
}
