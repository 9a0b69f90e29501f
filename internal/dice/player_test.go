package dice

import (
	"testing"

	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/space"
	"github.com/pixil98/go-golem/internal/turn"
	"github.com/pixil98/go-testutil"
)

type fixture struct {
	space  *space.Space
	m      *turn.Manager
	input  *Latch
	player *PlayerDie
	golem  *GolemDie
	sounds *recordingSounds
}

// newFixture puts the player at x=0 and one golem at x=3 on a 7x3 floor,
// both standard dice so they start synced.
func newFixture(t *testing.T, opts ...PlayerOpt) *fixture {
	t.Helper()
	f := &fixture{
		space:  space.New(),
		m:      turn.NewManager(turn.DefaultCycle()),
		input:  &Latch{},
		sounds: &recordingSounds{},
	}
	floor(t, f.space, -1, 5, -1, 1)

	golems := &GolemSet{}
	gd := newDie(t, "golem", geom.Vec{X: 3, Y: 1}, f.space, WithSounds(f.sounds))
	f.golem = NewGolemDie(gd, f.m, nil)
	golems.Add(f.golem)

	pd := newDie(t, "player", geom.Vec{Y: 1}, f.space, WithSounds(f.sounds))
	f.player = NewPlayerDie(pd, f.m, f.input, golems, opts...)
	f.golem.Follow(f.player)
	return f
}

func TestPlayerDie_QueueTurn(t *testing.T) {
	tests := map[string]struct {
		setup        func(t *testing.T, f *fixture)
		input        Axes
		opts         []PlayerOpt
		expQueued    int
		expGolemMove geom.Vec
	}{
		"no input": {
			expQueued: 0,
		},
		"inside deadzone": {
			input:     Axes{Horizontal: 0.05},
			expQueued: 0,
		},
		"both move": {
			input:        Axes{Horizontal: 1},
			expQueued:    1,
			expGolemMove: geom.East,
		},
		"player blocked but golem free": {
			setup: func(t *testing.T, f *fixture) {
				wall(t, f.space, geom.Vec{X: 1, Y: 1})
			},
			input:        Axes{Horizontal: 1},
			expQueued:    1,
			expGolemMove: geom.East,
		},
		"nobody can move": {
			setup: func(t *testing.T, f *fixture) {
				wall(t, f.space, geom.Vec{X: 1, Y: 1})
				wall(t, f.space, geom.Vec{X: 4, Y: 1})
			},
			input:     Axes{Horizontal: 1},
			expQueued: 0,
		},
		"desynced golem ignored": {
			setup: func(t *testing.T, f *fixture) {
				f.golem.orientation = f.golem.orientation.Roll(geom.North)
			},
			input:     Axes{Horizontal: -1},
			expQueued: 1,
		},
		"input disabled": {
			input:     Axes{Horizontal: 1},
			opts:      []PlayerOpt{WithInputGate(func() bool { return false })},
			expQueued: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, tt.opts...)
			if tt.setup != nil {
				tt.setup(t, f)
			}
			f.input.Set(tt.input)

			f.player.QueueTurn()

			testutil.AssertEqual(t, "queued", f.m.QueueLen(), tt.expQueued)
			testutil.AssertEqual(t, "golem move", f.golem.Pending(), tt.expGolemMove)
			testutil.AssertEqual(t, "input consumed", f.input.Read(), Axes{})
		})
	}
}

func TestPlayerDie_RejectedInputKeepsPlayerPhase(t *testing.T) {
	f := newFixture(t)
	wall(t, f.space, geom.Vec{X: 1, Y: 1})
	wall(t, f.space, geom.Vec{X: 4, Y: 1})
	registry := []turn.TurnObject{f.player, f.golem}
	world := turn.NewController(turn.World, f.m, registry)
	players := turn.NewController(turn.Player, f.m, registry, turn.WithWaitForActions())

	world.Update()
	testutil.AssertEqual(t, "phase", f.m.CurrentTurn(), turn.Player)

	f.input.Set(Axes{Horizontal: 1})
	testutil.AssertEqual(t, "took turn", players.Update(), false)
	testutil.AssertEqual(t, "phase", f.m.CurrentTurn(), turn.Player)
	testutil.AssertEqual(t, "queue", f.m.QueueLen(), 0)
}

func TestGolemDie_FollowsPlayer(t *testing.T) {
	f := newFixture(t)
	registry := []turn.TurnObject{f.player, f.golem}
	controllers := []*turn.Controller{
		turn.NewController(turn.World, f.m, registry),
		turn.NewController(turn.Player, f.m, registry, turn.WithWaitForActions()),
		turn.NewController(turn.Golem, f.m, registry),
	}

	f.input.Set(Axes{Horizontal: 1})
	for i := 0; i < 200 && f.m.Turn() < 3; i++ {
		for _, c := range controllers {
			c.Update()
		}
		f.m.Step(frame)
	}

	testutil.AssertEqual(t, "player", f.player.Position(), geom.Vec{X: 1, Y: 1})
	testutil.AssertEqual(t, "golem", f.golem.Position(), geom.Vec{X: 4, Y: 1})
	testutil.AssertEqual(t, "pending cleared", f.golem.Pending(), geom.Zero)
	testutil.AssertEqual(t, "still synced", f.golem.IsSynced(), true)
	testutil.AssertEqual(t, "back to world", f.m.CurrentTurn(), turn.World)
}

func TestGolemDie_SyncSounds(t *testing.T) {
	f := newFixture(t)
	drainGolem := func() {
		f.golem.QueueTurn()
		drain(t, f.m)
	}

	// The player rolls alone, so the faces differ.
	f.m.QueueAction("player", f.player.MoveAction(geom.West))
	drain(t, f.m)
	f.sounds.played = nil
	drainGolem()
	testutil.AssertEqual(t, "desync count", len(f.sounds.played), 1)
	testutil.AssertEqual(t, "desync", f.sounds.played[0], audio.EffectDesync)

	// Rolling back restores the shared face.
	f.m.QueueAction("player", f.player.MoveAction(geom.East))
	drain(t, f.m)
	f.sounds.played = nil
	drainGolem()
	testutil.AssertEqual(t, "sync count", len(f.sounds.played), 1)
	testutil.AssertEqual(t, "sync", f.sounds.played[0], audio.EffectSync)

	f.sounds.played = nil
	drainGolem()
	testutil.AssertEqual(t, "no change", len(f.sounds.played), 0)
}
