package turn

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestParseCycle(t *testing.T) {
	tests := map[string]struct {
		names  []string
		exp    []Phase
		expErr error
	}{
		"empty is default": {
			exp: []Phase{World, Player, Golem},
		},
		"custom order": {
			names: []string{"Player", "world"},
			exp:   []Phase{Player, World},
		},
		"unknown": {
			names:  []string{"world", "boss"},
			expErr: ErrUnknownPhase,
		},
		"duplicate": {
			names:  []string{"world", "golem", "world"},
			expErr: ErrDuplicatePhase,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := ParseCycle(tt.names)
			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := c.Phases()
			testutil.AssertEqual(t, "length", len(got), len(tt.exp))
			for i := range tt.exp {
				testutil.AssertEqual(t, "phase", got[i], tt.exp[i])
			}
		})
	}
}

func TestNewCycle_Empty(t *testing.T) {
	_, err := NewCycle()
	if !errors.Is(err, ErrEmptyCycle) {
		t.Errorf("expected ErrEmptyCycle, got %v", err)
	}
}

func TestCycle_PhasesIsCopy(t *testing.T) {
	c := DefaultCycle()
	p := c.Phases()
	p[0] = Golem
	testutil.AssertEqual(t, "first phase", c.At(0), World)
}

func TestEvent_JSON(t *testing.T) {
	data, err := json.Marshal(Event{Kind: EventPhaseChanged, Phase: Golem, Turn: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "json", string(data), `{"kind":"phase_changed","phase":"golem","turn":3}`)
}

func TestSequence(t *testing.T) {
	var log []string
	seq := Sequence(
		ActionFunc(func() { log = append(log, "a") }),
		&framesAction{name: "b", frames: 2, log: &log},
		ActionFunc(func() { log = append(log, "c") }),
	)

	testutil.AssertEqual(t, "first step", seq.Step(frame), Running)
	testutil.AssertEqual(t, "second step", seq.Step(frame), Done)
	testutil.AssertEqual(t, "log", len(log), 4)
	testutil.AssertEqual(t, "last", log[3], "c")
}

func TestLazy(t *testing.T) {
	value := 1
	var seen int
	seq := Sequence(
		ActionFunc(func() { value = 2 }),
		Lazy(func() Action {
			seen = value
			return Nop
		}),
		Lazy(func() Action { return nil }),
	)

	testutil.AssertEqual(t, "status", seq.Step(time.Millisecond), Done)
	testutil.AssertEqual(t, "built after first ran", seen, 2)
}
