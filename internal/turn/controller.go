package turn

import (
	"log/slog"
	"slices"
	"sync"
)

// TurnObject is anything that takes part in a phase. QueueTurn is called once
// per cycle of its phase and may queue any number of actions.
type TurnObject interface {
	TurnType() Phase
	QueueTurn()
}

// Ordered lets a turn object choose where it is polled within its phase.
// Lower values go first; objects without an order sit at 0.
type Ordered interface {
	TurnOrder() int
}

// Requeuer takes actions that could not complete this cycle and runs them
// first next time the phase comes around.
type Requeuer interface {
	RequeueActionForNextTurn(producer string, a Action)
}

type retryEntry struct {
	producer string
	action   Action
}

// Controller drives one phase: when it is that phase's turn and the manager
// is idle, it re-queues last cycle's retries, polls its objects and starts
// the drain.
type Controller struct {
	phase   Phase
	manager *Manager
	objects []TurnObject

	mu      sync.Mutex
	retry   []retryEntry
	retries map[string]int

	maxRetries     int
	waitForActions bool
	logger         *slog.Logger
}

// NewController keeps the objects from registry that belong to phase, sorted
// by TurnOrder with ties left in registration order.
func NewController(phase Phase, m *Manager, registry []TurnObject, opts ...ControllerOpt) *Controller {
	var objs []TurnObject
	for _, o := range registry {
		if o.TurnType() == phase {
			objs = append(objs, o)
		}
	}
	slices.SortStableFunc(objs, func(a, b TurnObject) int {
		return turnOrder(a) - turnOrder(b)
	})

	c := &Controller{
		phase:   phase,
		manager: m,
		objects: objs,
		retries: map[string]int{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Phase() Phase {
	return c.phase
}

// Objects returns the polled objects in poll order.
func (c *Controller) Objects() []TurnObject {
	return slices.Clone(c.objects)
}

// Add registers an object after construction, placing it by TurnOrder.
func (c *Controller) Add(o TurnObject) {
	if o.TurnType() != c.phase {
		return
	}
	idx := len(c.objects)
	for i, existing := range c.objects {
		if turnOrder(o) < turnOrder(existing) {
			idx = i
			break
		}
	}
	c.objects = slices.Insert(c.objects, idx, o)
}

// Update runs one frame of the controller. It reports whether the phase's
// turn was taken.
func (c *Controller) Update() bool {
	if c.manager.CurrentTurn() != c.phase || !c.manager.ReadyForNextTurn() {
		return false
	}

	c.queueActions()

	if c.waitForActions && c.manager.ReadyForNextTurn() {
		return false
	}

	c.manager.TakeTurn()
	return true
}

// RequeueActionForNextTurn records an action to retry at the start of the
// next cycle of this phase.
func (c *Controller) RequeueActionForNextTurn(producer string, a Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retry = append(c.retry, retryEntry{producer: producer, action: a})
}

// PendingRetries is the number of actions waiting for next cycle.
func (c *Controller) PendingRetries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.retry)
}

func (c *Controller) queueActions() {
	c.mu.Lock()
	retry := c.retry
	c.retry = nil
	prev := c.retries
	c.retries = make(map[string]int, len(retry))
	c.mu.Unlock()

	for _, r := range retry {
		n := prev[r.producer] + 1
		if c.maxRetries > 0 && n > c.maxRetries {
			c.logger.Warn("giving up on action", "phase", c.phase, "producer", r.producer, "retries", n-1)
			c.manager.notify(Event{Kind: EventActionAbandoned, Producer: r.producer, Retries: n - 1})
			continue
		}

		c.mu.Lock()
		c.retries[r.producer] = n
		c.mu.Unlock()

		t := c.manager.QueueAction(r.producer, r.action)
		c.manager.notify(Event{Kind: EventActionRequeued, TaskID: t.ID, Producer: r.producer, Retries: n})
	}

	for _, o := range c.objects {
		o.QueueTurn()
	}
}

func turnOrder(o TurnObject) int {
	if ord, ok := o.(Ordered); ok {
		return ord.TurnOrder()
	}
	return 0
}
