package level

import (
	"encoding/json"
	"testing"

	"github.com/pixil98/go-golem/internal/storage"
	"github.com/pixil98/go-testutil"
)

func intPtr(n int) *int { return &n }

func validSpec() *Spec {
	return &Spec{
		Name:   "corridor",
		Index:  1,
		Map:    []string{"#####", "#...#", "#####"},
		Player: DieSpec{Cell: Cell{X: 1, Z: 1}},
		Buttons: []ButtonSpec{
			{ID: "goal", Cell: Cell{X: 3, Z: 1}, Required: 4, Targets: []string{ExitTarget}},
		},
	}
}

func TestSpec_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(s *Spec)
		expErr string
	}{
		"valid": {
			mutate: func(s *Spec) {},
		},
		"no name": {
			mutate: func(s *Spec) { s.Name = "" },
			expErr: "name must be set",
		},
		"unknown tile": {
			mutate: func(s *Spec) { s.Map[1] = "#.x.#" },
			expErr: "unknown tile",
		},
		"player in wall": {
			mutate: func(s *Spec) { s.Player.Cell = Cell{X: 0, Z: 1} },
			expErr: "not on open floor",
		},
		"button value out of range": {
			mutate: func(s *Spec) { s.Buttons[0].Required = 7 },
			expErr: "out of range",
		},
		"unknown door target": {
			mutate: func(s *Spec) { s.Buttons[0].Targets = []string{"gate"} },
			expErr: `unknown door "gate"`,
		},
		"duplicate ids": {
			mutate: func(s *Spec) {
				s.Golems = []DieSpec{{ID: "goal", Cell: Cell{X: 2, Z: 1}}}
			},
			expErr: `duplicate id "goal"`,
		},
		"reserved id": {
			mutate: func(s *Spec) { s.Doors = []DoorSpec{{ID: ExitTarget, Cell: Cell{X: 2, Z: 1}}} },
			expErr: "reserved",
		},
		"unknown phase": {
			mutate: func(s *Spec) { s.Cycle = []string{"player", "boss"} },
			expErr: "boss",
		},
		"golems without golem phase": {
			mutate: func(s *Spec) {
				s.Cycle = []string{"world", "player"}
				s.Golems = []DieSpec{{ID: "g", Cell: Cell{X: 2, Z: 1}}}
			},
			expErr: "golem phase",
		},
		"pad over the void": {
			mutate: func(s *Spec) {
				s.JumpPads = []JumpPadSpec{{ID: "p", Cell: Cell{X: 2, Z: 1}, Target: Cell{X: 9, Z: 9}}}
			},
			expErr: "has no floor",
		},
		"negative landing rolls": {
			mutate: func(s *Spec) {
				s.JumpPads = []JumpPadSpec{{ID: "p", Cell: Cell{X: 2, Z: 1}, Target: Cell{X: 3, Z: 1}, LandingRolls: intPtr(-1)}}
			},
			expErr: "must not be negative",
		},
		"bad curve": {
			mutate: func(s *Spec) {
				s.JumpPads = []JumpPadSpec{{ID: "p", Cell: Cell{X: 2, Z: 1}, Target: Cell{X: 3, Z: 1}, Curve: "wobble"}}
			},
			expErr: "unknown curve",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := validSpec()
			tt.mutate(s)
			err := s.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestSpec_Tile(t *testing.T) {
	s := &Spec{Map: []string{"#. ", "..#"}}

	tests := map[string]struct {
		cell Cell
		exp  rune
	}{
		"north row":  {cell: Cell{X: 0, Z: 1}, exp: TileWall},
		"south row":  {cell: Cell{X: 2, Z: 0}, exp: TileWall},
		"void":       {cell: Cell{X: 2, Z: 1}, exp: TileVoid},
		"off map":    {cell: Cell{X: 5, Z: 0}, exp: TileVoid},
		"below map":  {cell: Cell{X: 0, Z: -1}, exp: TileVoid},
		"open floor": {cell: Cell{X: 1, Z: 0}, exp: TileFloor},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "tile", s.Tile(tt.cell), tt.exp)
		})
	}
}

func TestSpec_TitleAndHint(t *testing.T) {
	s := validSpec()
	testutil.AssertEqual(t, "title", s.Title(), "Corridor")
	testutil.AssertEqual(t, "no hint", s.Hint(), "")

	if s.Extensions == nil {
		s.Extensions = storage.Extensions{}
	}
	s.Extensions[HintExtension] = json.RawMessage(`"roll twice"`)
	testutil.AssertEqual(t, "hint", s.Hint(), "roll twice")
}

func TestShippedLevels(t *testing.T) {
	store, err := storage.NewFileStore[*Spec]("../../assets/levels")
	if err != nil {
		t.Fatalf("loading levels: %v", err)
	}
	catalog := storage.NewCatalog[*Spec](store)
	if catalog.Len() == 0 {
		t.Fatalf("expected shipped levels")
	}

	for i := 0; i < catalog.Len(); i++ {
		id, spec, err := catalog.At(i)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := Build(spec, Deps{}); err != nil {
			t.Errorf("building %s: %v", id, err)
		}
		if _, ok := spec.Extensions[HintExtension]; !ok {
			t.Errorf("%s has no hint", id)
		}
	}
}
