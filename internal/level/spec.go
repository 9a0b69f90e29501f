package level

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/storage"
	"github.com/pixil98/go-golem/internal/turn"
)

// Map tiles
const (
	TileWall  = '#'
	TileFloor = '.'
	TileVoid  = ' '
)

// ExitTarget is the button target that finishes the level.
const ExitTarget = "exit"

// HintExtension is the extension key holding the level hint.
const HintExtension = "hint"

var titleCaser = cases.Title(language.English)

// Cell is a column/row position on the level map. Z grows northward, so the
// first map row is the northern edge.
type Cell struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Floor is the floor tile under the cell.
func (c Cell) Floor() geom.Vec {
	return geom.Vec{X: c.X, Y: 0, Z: c.Z}
}

// Above is the cell a die occupies over the floor tile.
func (c Cell) Above() geom.Vec {
	return geom.Vec{X: c.X, Y: 1, Z: c.Z}
}

type DieSpec struct {
	Cell
	ID string `json:"id"`
}

type DoorSpec struct {
	Cell
	ID   string `json:"id"`
	Open bool   `json:"open"`
}

type ButtonSpec struct {
	Cell
	ID       string   `json:"id"`
	Required int      `json:"required"`
	Held     bool     `json:"held"`
	Targets  []string `json:"targets"`
}

type JumpPadSpec struct {
	Cell
	ID           string  `json:"id"`
	Target       Cell    `json:"target"`
	LandingRolls *int    `json:"landing_rolls,omitempty"`
	DurationMs   int     `json:"duration_ms,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Curve        string  `json:"curve,omitempty"`
}

func (p JumpPadSpec) Duration() time.Duration {
	return time.Duration(p.DurationMs) * time.Millisecond
}

// Spec is a puzzle level as stored on disk.
type Spec struct {
	Name       string             `json:"name"`
	Index      int                `json:"index"`
	Cycle      []string           `json:"cycle,omitempty"`
	Map        []string           `json:"map"`
	Player     DieSpec            `json:"player"`
	Golems     []DieSpec          `json:"golems,omitempty"`
	Doors      []DoorSpec         `json:"doors,omitempty"`
	Buttons    []ButtonSpec       `json:"buttons,omitempty"`
	JumpPads   []JumpPadSpec      `json:"jump_pads,omitempty"`
	Extensions storage.Extensions `json:"extensions,omitempty"`
}

func (s *Spec) SortKey() int {
	return s.Index
}

func (s *Spec) Title() string {
	return titleCaser.String(s.Name)
}

// Hint returns the optional hint text shown under the board.
func (s *Spec) Hint() string {
	var hint string
	if _, err := s.Extensions.Get(HintExtension, &hint); err != nil {
		return ""
	}
	return hint
}

// Tile returns the map character at c, or TileVoid off the map.
func (s *Spec) Tile(c Cell) rune {
	row := len(s.Map) - 1 - c.Z
	if row < 0 || row >= len(s.Map) || c.X < 0 {
		return TileVoid
	}
	line := []rune(s.Map[row])
	if c.X >= len(line) {
		return TileVoid
	}
	return line[c.X]
}

// Size is the map's width and depth in cells.
func (s *Spec) Size() (int, int) {
	w := 0
	for _, row := range s.Map {
		w = max(w, len([]rune(row)))
	}
	return w, len(s.Map)
}

// PlayerID defaults to "player" when the file leaves it out.
func (s *Spec) PlayerID() string {
	if s.Player.ID == "" {
		return "player"
	}
	return s.Player.ID
}

func (s *Spec) CycleOrder() (turn.Cycle, error) {
	return turn.ParseCycle(s.Cycle)
}

func (s *Spec) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if len(s.Map) == 0 {
		el.Add(fmt.Errorf("map must not be empty"))
	}
	for r, row := range s.Map {
		for x, ch := range row {
			if ch != TileWall && ch != TileFloor && ch != TileVoid {
				el.Add(fmt.Errorf("map row %d column %d: unknown tile %q", r, x, ch))
			}
		}
	}

	cycle, err := s.CycleOrder()
	el.Add(err)
	if err == nil {
		el.Add(s.validatePhases(cycle))
	}

	ids := map[string]bool{}
	claim := func(kind, id string) {
		switch {
		case id == "":
			el.Add(fmt.Errorf("%s id must be set", kind))
		case id == ExitTarget:
			el.Add(fmt.Errorf("%s id %q is reserved", kind, id))
		case ids[id]:
			el.Add(fmt.Errorf("duplicate id %q", id))
		}
		ids[id] = true
	}
	standable := func(kind, id string, c Cell) {
		if s.Tile(c) != TileFloor {
			el.Add(fmt.Errorf("%s %q at (%d,%d) is not on open floor", kind, id, c.X, c.Z))
		}
	}

	claim("player", s.PlayerID())
	standable("player", s.PlayerID(), s.Player.Cell)

	for _, g := range s.Golems {
		claim("golem", g.ID)
		standable("golem", g.ID, g.Cell)
	}

	doors := map[string]bool{}
	for _, d := range s.Doors {
		claim("door", d.ID)
		standable("door", d.ID, d.Cell)
		doors[d.ID] = true
	}

	for _, b := range s.Buttons {
		claim("button", b.ID)
		standable("button", b.ID, b.Cell)
		if b.Required < 1 || b.Required > 6 {
			el.Add(fmt.Errorf("button %q required value %d out of range 1-6", b.ID, b.Required))
		}
		if len(b.Targets) == 0 {
			el.Add(fmt.Errorf("button %q has no targets", b.ID))
		}
		for _, t := range b.Targets {
			if t != ExitTarget && !doors[t] {
				el.Add(fmt.Errorf("button %q targets unknown door %q", b.ID, t))
			}
		}
	}

	for _, p := range s.JumpPads {
		claim("jump pad", p.ID)
		standable("jump pad", p.ID, p.Cell)
		if s.Tile(p.Target) == TileVoid {
			el.Add(fmt.Errorf("jump pad %q target (%d,%d) has no floor", p.ID, p.Target.X, p.Target.Z))
		}
		if p.Target == p.Cell {
			el.Add(fmt.Errorf("jump pad %q targets itself", p.ID))
		}
		if p.LandingRolls != nil && *p.LandingRolls < 0 {
			el.Add(fmt.Errorf("jump pad %q landing rolls must not be negative", p.ID))
		}
		if _, err := geom.ParseCurve(p.Curve); err != nil {
			el.Add(fmt.Errorf("jump pad %q: %w", p.ID, err))
		}
	}

	return el.Err()
}

func (s *Spec) validatePhases(c turn.Cycle) error {
	el := errors.NewErrorList()
	if !c.Contains(turn.Player) {
		el.Add(fmt.Errorf("cycle must include the player phase"))
	}
	if len(s.Golems) > 0 && !c.Contains(turn.Golem) {
		el.Add(fmt.Errorf("cycle must include the golem phase when golems are placed"))
	}
	if len(s.Buttons)+len(s.JumpPads) > 0 && !c.Contains(turn.World) {
		el.Add(fmt.Errorf("cycle must include the world phase when tiles are placed"))
	}
	return el.Err()
}
