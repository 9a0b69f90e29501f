package level

import (
	"testing"
	"time"

	"github.com/pixil98/go-golem/internal/dice"
	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/space"
	"github.com/pixil98/go-golem/internal/turn"
	"github.com/pixil98/go-testutil"
)

const frame = 16 * time.Millisecond

type countingLevels struct {
	next int
}

func (c *countingLevels) LoadNext() { c.next++ }

func tickUntil(t *testing.T, w *World, done func() bool) {
	t.Helper()
	for i := 0; i < 1000 && !done(); i++ {
		w.Tick(frame)
	}
	if !done() {
		t.Fatalf("condition not reached")
	}
}

func TestBuild(t *testing.T) {
	s := validSpec()
	s.Golems = []DieSpec{{ID: "g", Cell: Cell{X: 2, Z: 1}}}

	w, err := Build(s, Deps{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "controllers", len(w.Controllers), 3)
	testutil.AssertEqual(t, "player at", w.Player.Position(), geom.Vec{X: 1, Y: 1, Z: 1})
	testutil.AssertEqual(t, "golems", len(w.Golems.All()), 1)
	testutil.AssertEqual(t, "golem synced", w.Golems.All()[0].IsSynced(), true)
	testutil.AssertEqual(t, "buttons", len(w.Buttons), 1)

	_, wall := w.Space.Occupant(geom.Vec{X: 0, Y: 1, Z: 1}, space.LayerObstacle)
	testutil.AssertEqual(t, "wall", wall, true)
	_, floor := w.Space.Occupant(geom.Vec{X: 2, Y: 0, Z: 1}, space.LayerFloor)
	testutil.AssertEqual(t, "floor", floor, true)

	testutil.AssertEqual(t, "world objects", len(w.Controllers[0].Objects()), 1)
	testutil.AssertEqual(t, "player objects", len(w.Controllers[1].Objects()), 1)
	testutil.AssertEqual(t, "golem objects", len(w.Controllers[2].Objects()), 1)
}

func TestWorld_RollOntoExit(t *testing.T) {
	input := &dice.Latch{}
	levels := &countingLevels{}
	w, err := Build(validSpec(), Deps{Input: input, Levels: levels})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rolling east shows a 4, then a 6.
	input.Set(dice.Axes{Horizontal: 1})
	tickUntil(t, w, func() bool { return w.Player.Position().X == 2 && w.Manager.CurrentTurn() == turn.Player })
	testutil.AssertEqual(t, "no exit yet", levels.next, 0)

	input.Set(dice.Axes{Horizontal: 1})
	tickUntil(t, w, func() bool { return w.Player.Position().X == 3 && w.Manager.CurrentTurn() == turn.Player })

	testutil.AssertEqual(t, "top", w.Player.CurrentSide(), 6)
	testutil.AssertEqual(t, "wrong face keeps level", levels.next, 0)
}

func TestWorld_ExitTriggers(t *testing.T) {
	s := validSpec()
	// After one roll east the die shows 4.
	s.Buttons[0].Cell = Cell{X: 2, Z: 1}

	input := &dice.Latch{}
	levels := &countingLevels{}
	w, err := Build(s, Deps{Input: input, Levels: levels})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input.Set(dice.Axes{Horizontal: 1})
	tickUntil(t, w, func() bool { return levels.next == 1 })
	testutil.AssertEqual(t, "player at", w.Player.Position(), geom.Vec{X: 2, Y: 1, Z: 1})
}

func TestWorld_InputGate(t *testing.T) {
	input := &dice.Latch{}
	w, err := Build(validSpec(), Deps{Input: input, InputGate: func() bool { return false }})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input.Set(dice.Axes{Horizontal: 1})
	for i := 0; i < 50; i++ {
		w.Tick(frame)
	}

	testutil.AssertEqual(t, "not moved", w.Player.Position(), geom.Vec{X: 1, Y: 1, Z: 1})
	testutil.AssertEqual(t, "waiting on player", w.Manager.CurrentTurn(), turn.Player)
}
