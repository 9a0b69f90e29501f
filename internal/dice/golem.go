package dice

import (
	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/turn"
)

// SideReader is anything showing a face value, usually the player die.
type SideReader interface {
	CurrentSide() int
}

// GolemDie copies the player's moves while it shows the same face.
type GolemDie struct {
	*Die

	queuer  turn.Queuer
	leader  SideReader
	pending geom.Vec
	synced  bool
}

// NewGolemDie follows leader. The leader may be set later with Follow when
// the player die is built after its golems.
func NewGolemDie(d *Die, q turn.Queuer, leader SideReader) *GolemDie {
	g := &GolemDie{Die: d, queuer: q}
	g.Follow(leader)
	return g
}

func (g *GolemDie) Follow(leader SideReader) {
	g.leader = leader
	g.synced = g.IsSynced()
}

func (g *GolemDie) TurnType() turn.Phase {
	return turn.Golem
}

func (g *GolemDie) TurnOrder() int {
	return 0
}

// IsSynced is true when the golem shows the same face as its leader.
func (g *GolemDie) IsSynced() bool {
	if g.leader == nil {
		return false
	}
	return g.CurrentSide() == g.leader.CurrentSide()
}

// Pending is the direction stored for the next golem turn.
func (g *GolemDie) Pending() geom.Vec {
	return g.pending
}

// QueueMove stores dir for the golem's next turn.
func (g *GolemDie) QueueMove(dir geom.Vec) {
	g.pending = dir
}

// QueueTurn rolls along the stored direction when the way is open, otherwise
// drops it. Either way the sync state is checked once the move lands.
func (g *GolemDie) QueueTurn() {
	producer := "golem:" + g.ID()

	dir := g.pending
	g.pending = geom.Zero
	if g.IsValidMoveDirection(dir) {
		g.queuer.QueueAction(producer, g.MoveAction(dir))
	}
	g.queuer.QueueAction(producer, turn.ActionFunc(g.checkSync))
}

func (g *GolemDie) checkSync() {
	now := g.IsSynced()
	if now == g.synced {
		return
	}
	g.synced = now
	if now {
		g.sfx.PlaySound(audio.EffectSync)
		return
	}
	g.sfx.PlaySound(audio.EffectDesync)
}

// GolemSet is every golem in a level, in registration order.
type GolemSet struct {
	golems []*GolemDie
}

func (s *GolemSet) Add(g *GolemDie) {
	s.golems = append(s.golems, g)
}

func (s *GolemSet) All() []*GolemDie {
	return s.golems
}

// SyncedWith returns the golems showing the same face as leader.
func (s *GolemSet) SyncedWith(leader SideReader) []*GolemDie {
	var out []*GolemDie
	for _, g := range s.golems {
		if g.CurrentSide() == leader.CurrentSide() {
			out = append(out, g)
		}
	}
	return out
}

func (s *GolemSet) AnySyncedGolemHasValidMove(leader SideReader, dir geom.Vec) bool {
	for _, g := range s.SyncedWith(leader) {
		if g.IsValidMoveDirection(dir) {
			return true
		}
	}
	return false
}
