package level

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-golem/internal/audio"
	"github.com/pixil98/go-golem/internal/dice"
	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/space"
	"github.com/pixil98/go-golem/internal/tiles"
	"github.com/pixil98/go-golem/internal/turn"
)

// Deps are the collaborators a world is wired to.
type Deps struct {
	Sounds      audio.Player
	Input       dice.InputSource
	InputGate   func() bool
	Levels      tiles.NextLeveler
	Logger      *slog.Logger
	ManagerOpts []turn.ManagerOpt
	MaxRetries  int
}

// stayPut ignores requests to leave the level.
type stayPut struct{}

func (stayPut) LoadNext() {}

// World is one loaded level: the grid, the dice and tiles on it and the
// turn machinery that drives them.
type World struct {
	Spec *Spec

	Space       *space.Space
	Manager     *turn.Manager
	Controllers []*turn.Controller

	Player  *dice.PlayerDie
	Golems  *dice.GolemSet
	Doors   []*tiles.Door
	Buttons []*tiles.Button
	Pads    []*tiles.JumpPad
}

// Build wires a world from a validated spec.
func Build(spec *Spec, deps Deps) (*World, error) {
	if deps.Sounds == nil {
		deps.Sounds = audio.Silent{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Input == nil {
		deps.Input = &dice.Latch{}
	}
	if deps.Levels == nil {
		deps.Levels = stayPut{}
	}

	cycle, err := spec.CycleOrder()
	if err != nil {
		return nil, err
	}

	w := &World{
		Spec:    spec,
		Space:   space.New(),
		Manager: turn.NewManager(cycle, append([]turn.ManagerOpt{turn.WithLogger(deps.Logger)}, deps.ManagerOpts...)...),
		Golems:  &dice.GolemSet{},
	}

	if err := w.buildMap(); err != nil {
		return nil, err
	}

	var world *turn.Controller
	for _, p := range cycle.Phases() {
		opts := []turn.ControllerOpt{turn.WithControllerLogger(deps.Logger), turn.WithMaxRetries(deps.MaxRetries)}
		if p == turn.Player {
			opts = append(opts, turn.WithWaitForActions())
		}
		c := turn.NewController(p, w.Manager, nil, opts...)
		if p == turn.World {
			world = c
		}
		w.Controllers = append(w.Controllers, c)
	}

	var registry []turn.TurnObject

	doors := map[string]tiles.Triggerable{}
	for _, ds := range spec.Doors {
		d, err := tiles.NewDoor(ds.ID, ds.Above(), ds.Open, w.Space, world, deps.Sounds)
		if err != nil {
			return nil, err
		}
		w.Doors = append(w.Doors, d)
		doors[ds.ID] = d
	}
	doors[ExitTarget] = tiles.NewLevelExit(deps.Levels, deps.Sounds)

	for _, bs := range spec.Buttons {
		targets := make([]tiles.Triggerable, 0, len(bs.Targets))
		for _, id := range bs.Targets {
			t, ok := doors[id]
			if !ok {
				return nil, fmt.Errorf("button %q: unknown target %q", bs.ID, id)
			}
			targets = append(targets, t)
		}
		b, err := tiles.NewButton(bs.ID, bs.Floor(), bs.Required, bs.Held, targets, w.Space, w.Manager, deps.Sounds)
		if err != nil {
			return nil, fmt.Errorf("button %q: %w", bs.ID, err)
		}
		w.Buttons = append(w.Buttons, b)
		registry = append(registry, b)
	}

	for _, ps := range spec.JumpPads {
		opts := []tiles.JumpPadOpt{tiles.WithPadSounds(deps.Sounds)}
		if ps.LandingRolls != nil {
			opts = append(opts, tiles.WithLandingRolls(*ps.LandingRolls))
		}
		if ps.DurationMs > 0 || ps.Height > 0 || ps.Curve != "" {
			var curve geom.Curve
			if ps.Curve != "" {
				if curve, err = geom.ParseCurve(ps.Curve); err != nil {
					return nil, fmt.Errorf("jump pad %q: %w", ps.ID, err)
				}
			}
			d := ps.Duration()
			if d <= 0 {
				d = tiles.DefaultJumpDuration
			}
			h := ps.Height
			if h <= 0 {
				h = tiles.DefaultJumpHeight
			}
			opts = append(opts, tiles.WithFlight(d, h, curve))
		}
		p := tiles.NewJumpPad(ps.ID, ps.Floor(), ps.Target.Floor(), w.Space, w.Manager, opts...)
		w.Pads = append(w.Pads, p)
		registry = append(registry, p)
	}

	for _, gs := range spec.Golems {
		d, err := dice.NewDie(gs.ID, gs.Above(), w.Space, dice.WithSounds(deps.Sounds))
		if err != nil {
			return nil, err
		}
		g := dice.NewGolemDie(d, w.Manager, nil)
		w.Golems.Add(g)
		registry = append(registry, g)
	}

	pd, err := dice.NewDie(spec.PlayerID(), spec.Player.Above(), w.Space, dice.WithSounds(deps.Sounds))
	if err != nil {
		return nil, err
	}
	w.Player = dice.NewPlayerDie(pd, w.Manager, deps.Input, w.Golems,
		dice.WithInputGate(deps.InputGate), dice.WithPlayerLogger(deps.Logger))
	registry = append(registry, w.Player)
	for _, g := range w.Golems.All() {
		g.Follow(w.Player)
	}

	for _, c := range w.Controllers {
		for _, o := range registry {
			c.Add(o)
		}
	}

	return w, nil
}

func (w *World) buildMap() error {
	width, depth := w.Spec.Size()
	for z := 0; z < depth; z++ {
		for x := 0; x < width; x++ {
			c := Cell{X: x, Z: z}
			tile := w.Spec.Tile(c)
			if tile == TileVoid {
				continue
			}
			err := w.Space.Add(&space.Body{
				ID:       fmt.Sprintf("floor:%d:%d", x, z),
				Layer:    space.LayerFloor,
				Position: c.Floor(),
			})
			if err != nil {
				return err
			}
			if tile != TileWall {
				continue
			}
			err = w.Space.Add(&space.Body{
				ID:       fmt.Sprintf("wall:%d:%d", x, z),
				Layer:    space.LayerObstacle,
				Position: c.Above(),
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Tick runs one frame: every controller gets a chance to take its turn,
// then the running action advances by dt.
func (w *World) Tick(dt time.Duration) {
	for _, c := range w.Controllers {
		c.Update()
	}
	w.Manager.Step(dt)
}
