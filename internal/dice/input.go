package dice

import (
	"math"
	"sync"

	"github.com/pixil98/go-golem/internal/geom"
)

// DefaultDeadzone ignores stick drift below this magnitude.
const DefaultDeadzone = 0.2

// Axes is one reading of the movement input. Horizontal is east-positive,
// Vertical is north-positive.
type Axes struct {
	Horizontal float64
	Vertical   float64
}

// Direction snaps the axes to one grid direction along whichever axis is
// pushed further. Readings inside the deadzone give zero.
func (a Axes) Direction(deadzone float64) geom.Vec {
	h, v := math.Abs(a.Horizontal), math.Abs(a.Vertical)
	if h <= deadzone && v <= deadzone {
		return geom.Zero
	}
	if h > v {
		if a.Horizontal > 0 {
			return geom.East
		}
		return geom.West
	}
	if a.Vertical > 0 {
		return geom.North
	}
	return geom.South
}

// InputSource supplies movement readings to the player die. Read consumes
// the reading so one key press moves the die once.
type InputSource interface {
	Read() Axes
}

// Latch holds the most recent reading until it is read. It is safe to Set
// from an input goroutine while the frame loop reads.
type Latch struct {
	mu   sync.Mutex
	axes Axes
}

func (l *Latch) Set(a Axes) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.axes = a
}

func (l *Latch) Read() Axes {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.axes
	l.axes = Axes{}
	return a
}
