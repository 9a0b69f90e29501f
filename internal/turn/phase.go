package turn

import (
	"fmt"
	"strings"
)

// Phase is one category of turn in the round-robin cycle.
type Phase int

const (
	World Phase = iota
	Player
	Golem
)

var phaseNames = map[Phase]string{
	World:  "world",
	Player: "player",
	Golem:  "golem",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	if _, ok := phaseNames[p]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPhase, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePhase resolves a phase by name, ignoring case.
func ParsePhase(s string) (Phase, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, n := range phaseNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPhase, s)
}

// Cycle is the fixed order phases are visited in. It is immutable once built.
type Cycle struct {
	order []Phase
}

// DefaultCycle runs the world first so objects settle before the player moves.
func DefaultCycle() Cycle {
	return Cycle{order: []Phase{World, Player, Golem}}
}

// NewCycle validates and freezes a phase order.
func NewCycle(phases ...Phase) (Cycle, error) {
	if len(phases) == 0 {
		return Cycle{}, ErrEmptyCycle
	}
	seen := map[Phase]bool{}
	for _, p := range phases {
		if _, ok := phaseNames[p]; !ok {
			return Cycle{}, fmt.Errorf("%w: %d", ErrUnknownPhase, int(p))
		}
		if seen[p] {
			return Cycle{}, fmt.Errorf("%w: %s", ErrDuplicatePhase, p)
		}
		seen[p] = true
	}
	return Cycle{order: append([]Phase(nil), phases...)}, nil
}

// ParseCycle builds a cycle from phase names. An empty list yields the
// default cycle.
func ParseCycle(names []string) (Cycle, error) {
	if len(names) == 0 {
		return DefaultCycle(), nil
	}
	phases := make([]Phase, 0, len(names))
	for _, n := range names {
		p, err := ParsePhase(n)
		if err != nil {
			return Cycle{}, err
		}
		phases = append(phases, p)
	}
	return NewCycle(phases...)
}

func (c Cycle) Len() int {
	return len(c.order)
}

func (c Cycle) At(i int) Phase {
	return c.order[i]
}

// Next returns the index following i, wrapping at the end.
func (c Cycle) Next(i int) int {
	return (i + 1) % len(c.order)
}

// Phases returns a copy of the order.
func (c Cycle) Phases() []Phase {
	return append([]Phase(nil), c.order...)
}

func (c Cycle) Contains(p Phase) bool {
	for _, o := range c.order {
		if o == p {
			return true
		}
	}
	return false
}
