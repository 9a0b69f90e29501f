package space

import (
	"fmt"
	"slices"
	"sync"

	"github.com/pixil98/go-golem/internal/geom"
)

// Layer is a bitmask used to filter which bodies a query can hit.
type Layer uint8

const (
	LayerFloor Layer = 1 << iota
	LayerObstacle
	LayerDie
	LayerTrigger
)

const LayerAll = LayerFloor | LayerObstacle | LayerDie | LayerTrigger

func (l Layer) Has(mask Layer) bool {
	return l&mask != 0
}

// Body is anything that occupies a grid cell and can be hit by a query.
type Body struct {
	ID       string
	Layer    Layer
	Position geom.Vec
	Disabled bool

	// Owner is the game object the body belongs to.
	Owner any
}

// Space indexes bodies by cell. It stands in for the engine's physics scene:
// queries are exact cell lookups rather than collider sweeps.
type Space struct {
	mu     sync.RWMutex
	cells  map[geom.Vec][]*Body
	bodies map[string]*Body
}

func New() *Space {
	return &Space{
		cells:  map[geom.Vec][]*Body{},
		bodies: map[string]*Body{},
	}
}

// Add places a body. IDs must be unique within the space.
func (s *Space) Add(b *Body) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bodies[b.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBody, b.ID)
	}
	s.bodies[b.ID] = b
	s.cells[b.Position] = append(s.cells[b.Position], b)
	return nil
}

// Move relocates a body, keeping the cell index current.
func (s *Space) Move(b *Body, to geom.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unindex(b)
	b.Position = to
	s.cells[to] = append(s.cells[to], b)
}

// SetDisabled toggles whether queries can hit the body.
func (s *Space) SetDisabled(b *Body, disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.Disabled = disabled
}

// Get returns the body with the given id, or nil.
func (s *Space) Get(id string) *Body {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bodies[id]
}

// Raycast steps from origin along dir for up to distance cells (the origin
// cell itself is not tested) and returns the first enabled body on mask.
func (s *Space) Raycast(origin, dir geom.Vec, distance int, mask Layer) (*Body, bool) {
	if dir.IsZero() || distance <= 0 {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := 1; i <= distance; i++ {
		cell := origin.Add(dir.Scale(i))
		if b := s.firstAt(cell, mask); b != nil {
			return b, true
		}
	}
	return nil, false
}

// Occupant returns the first enabled body on mask inside cell.
func (s *Space) Occupant(cell geom.Vec, mask Layer) (*Body, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.firstAt(cell, mask)
	return b, b != nil
}

// Bodies returns every body, in no particular order.
func (s *Space) Bodies() []*Body {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Body, 0, len(s.bodies))
	for _, b := range s.bodies {
		out = append(out, b)
	}
	return out
}

func (s *Space) firstAt(cell geom.Vec, mask Layer) *Body {
	for _, b := range s.cells[cell] {
		if !b.Disabled && b.Layer.Has(mask) {
			return b
		}
	}
	return nil
}

func (s *Space) unindex(b *Body) {
	list := s.cells[b.Position]
	idx := slices.Index(list, b)
	if idx < 0 {
		return
	}
	list = slices.Delete(list, idx, idx+1)
	if len(list) == 0 {
		delete(s.cells, b.Position)
		return
	}
	s.cells[b.Position] = list
}
