package geom

import "fmt"

// Side is one face of a die: the pip value and the face normal in world space.
type Side struct {
	Value  int `json:"value"`
	Normal Vec `json:"normal"`
}

// Orientation is the set of faces of a die in their current world-space
// directions.
type Orientation []Side

// StandardDie is a right-handed six-sided die with 1 facing up.
func StandardDie() Orientation {
	return Orientation{
		{Value: 1, Normal: Up},
		{Value: 6, Normal: Down},
		{Value: 2, Normal: North},
		{Value: 5, Normal: South},
		{Value: 3, Normal: East},
		{Value: 4, Normal: West},
	}
}

// Validate checks that every axis direction is covered by exactly one face.
func (o Orientation) Validate() error {
	if len(o) != 6 {
		return fmt.Errorf("%w: must have 6 sides, has %d", ErrInvalidOrientation, len(o))
	}
	seen := map[Vec]bool{}
	for _, s := range o {
		if !isAxis(s.Normal) {
			return fmt.Errorf("%w: side %d has non-axis normal %s", ErrInvalidOrientation, s.Value, s.Normal)
		}
		if seen[s.Normal] {
			return fmt.Errorf("%w: normal %s used by more than one side", ErrInvalidOrientation, s.Normal)
		}
		seen[s.Normal] = true
	}
	return nil
}

// Top returns the value of the face pointing up, or -1 if none does.
func (o Orientation) Top() int {
	for _, s := range o {
		if s.Normal == Up {
			return s.Value
		}
	}
	return -1
}

// Roll returns the orientation after tipping over the bottom edge facing dir.
// The top face turns toward dir, the face toward dir ends up on the bottom.
func (o Orientation) Roll(dir Vec) Orientation {
	rolled := make(Orientation, len(o))
	back := dir.Neg()
	for i, s := range o {
		n := s.Normal
		switch n {
		case Up:
			n = dir
		case dir:
			n = Down
		case Down:
			n = back
		case back:
			n = Up
		}
		rolled[i] = Side{Value: s.Value, Normal: n}
	}
	return rolled
}

func isAxis(v Vec) bool {
	n := abs(v.X) + abs(v.Y) + abs(v.Z)
	return n == 1
}
