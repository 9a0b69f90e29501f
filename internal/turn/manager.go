package turn

import (
	"log/slog"
	"sync"
	"time"
)

// Queuer accepts actions for the current drain.
type Queuer interface {
	QueueAction(producer string, a Action) *Task
}

// Manager owns the phase pointer and the shared action queue. Actions drain
// one at a time in enqueue order; once the queue is empty and nothing is
// running, the pointer moves to the next phase in the cycle.
type Manager struct {
	mu sync.Mutex

	cycle    Cycle
	pointer  int
	turn     uint64
	queue    Queue
	current  *Task
	draining bool

	actionTimeout time.Duration
	observers     []Observer
	logger        *slog.Logger

	// events collected under the lock and delivered after it is released
	pending []Event
}

func NewManager(cycle Cycle, opts ...ManagerOpt) *Manager {
	if cycle.Len() == 0 {
		cycle = DefaultCycle()
	}
	m := &Manager{
		cycle:  cycle,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// QueueAction appends an action to the tail of the queue.
func (m *Manager) QueueAction(producer string, a Action) *Task {
	t := newTask(producer, a)

	m.mu.Lock()
	m.queue.Push(t)
	m.mu.Unlock()

	return t
}

// ReadyForNextTurn reports whether the queue is empty and nothing is running.
func (m *Manager) ReadyForNextTurn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readyLocked()
}

// CurrentTurn returns the phase whose turn it is.
func (m *Manager) CurrentTurn() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cycle.At(m.pointer)
}

// Turn counts phase advances since the manager was created.
func (m *Manager) Turn() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.turn
}

func (m *Manager) Cycle() Cycle {
	return m.cycle
}

// QueueLen is the number of tasks waiting behind the running one.
func (m *Manager) QueueLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Len()
}

// Running returns the task currently executing, or nil.
func (m *Manager) Running() *Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// AddObserver registers an observer for turn events.
func (m *Manager) AddObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// TakeTurn begins draining the queue. With nothing queued the phase advances
// straight away.
func (m *Manager) TakeTurn() {
	m.mu.Lock()
	m.draining = true
	started := m.startNextLocked()
	m.mu.Unlock()

	if started != nil {
		m.stepTask(started, 0)
	}
	m.flush()
}

// Step advances the running action by dt. When it finishes, following
// actions start within the same frame until one of them needs more time.
func (m *Manager) Step(dt time.Duration) {
	m.mu.Lock()
	t := m.current
	m.mu.Unlock()

	if t != nil {
		m.stepTask(t, dt)
	}
	m.flush()
}

// stepTask runs t and every instant successor. It must be called without
// the lock held since actions may queue more work.
func (m *Manager) stepTask(t *Task, dt time.Duration) {
	for t != nil {
		status := t.step(dt)

		m.mu.Lock()
		timedOut := status == Running && m.actionTimeout > 0 && t.Elapsed() >= m.actionTimeout
		if status == Running && !timedOut {
			m.mu.Unlock()
			return
		}
		if timedOut {
			m.logger.Warn("action exceeded timeout, forcing completion",
				"producer", t.Producer, "task", t.ID, "elapsed", t.Elapsed())
			m.emitLocked(EventActionTimedOut, t)
		}
		m.mu.Unlock()

		// complete runs the callback that releases the current slot.
		t.complete()

		m.mu.Lock()
		t = m.startNextLocked()
		m.mu.Unlock()
		dt = 0
	}
}

// startNextLocked pops the next task and marks it running. When the queue is
// exhausted it closes out the drain and returns nil.
func (m *Manager) startNextLocked() *Task {
	if m.current != nil {
		return nil
	}

	next := m.queue.Pop()
	if next == nil {
		if m.draining {
			m.draining = false
			m.advanceLocked()
		}
		return nil
	}

	m.current = next
	next.start(m.onTaskDone)
	m.emitLocked(EventActionStarted, next)
	return next
}

func (m *Manager) onTaskDone(t *Task) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == t {
		m.current = nil
	}
	m.emitLocked(EventActionFinished, t)
}

func (m *Manager) advanceLocked() {
	m.pointer = m.cycle.Next(m.pointer)
	m.turn++
	m.logger.Debug("turn advanced", "phase", m.cycle.At(m.pointer), "turn", m.turn)
	m.emitLocked(EventPhaseChanged, nil)
}

func (m *Manager) readyLocked() bool {
	return m.queue.Empty() && m.current == nil
}

func (m *Manager) emitLocked(kind EventKind, t *Task) {
	if len(m.observers) == 0 {
		return
	}
	e := Event{
		Kind:  kind,
		Phase: m.cycle.At(m.pointer),
		Turn:  m.turn,
	}
	if t != nil {
		e.TaskID = t.ID
		e.Producer = t.Producer
	}
	m.pending = append(m.pending, e)
}

// notify queues an event produced outside the manager (e.g. by a controller).
func (m *Manager) notify(e Event) {
	m.mu.Lock()
	if len(m.observers) > 0 {
		e.Phase = m.cycle.At(m.pointer)
		e.Turn = m.turn
		m.pending = append(m.pending, e)
	}
	m.mu.Unlock()
	m.flush()
}

func (m *Manager) flush() {
	m.mu.Lock()
	events := m.pending
	m.pending = nil
	observers := m.observers
	m.mu.Unlock()

	for _, e := range events {
		for _, o := range observers {
			o.OnTurnEvent(e)
		}
	}
}
