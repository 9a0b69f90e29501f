// Package tiles holds the floor pieces that react to dice: buttons, doors,
// jump pads and the level exit.
package tiles

import (
	"github.com/pixil98/go-golem/internal/geom"
	"github.com/pixil98/go-golem/internal/space"
	"github.com/pixil98/go-golem/internal/turn"
)

// Turn orders within the world phase. Pads fire before buttons so a die
// launched off a pad is never counted as pressing a button it left.
const (
	JumpPadOrder = 0
	ButtonOrder  = 1
)

// Triggerable is anything a button drives.
type Triggerable interface {
	TriggerAction() turn.Action
	ReleaseAction() turn.Action
}

// SideReader reports the face value pointing up.
type SideReader interface {
	CurrentSide() int
}

// occupant returns the die resting on top of a floor cell.
func occupant(sp *space.Space, cell geom.Vec) (*space.Body, bool) {
	return sp.Raycast(cell, geom.Up, 1, space.LayerDie)
}
