package turn

import (
	"time"

	"github.com/google/uuid"
)

// Task is a queued Action along with who produced it and how long it has run.
type Task struct {
	ID       string
	Producer string
	Action   Action
	Queued   time.Time

	elapsed  time.Duration
	started  bool
	finished bool
	done     chan struct{}
	onDone   func(*Task)
}

func newTask(producer string, a Action) *Task {
	return &Task{
		ID:       uuid.New().String(),
		Producer: producer,
		Action:   a,
		Queued:   time.Now(),
		done:     make(chan struct{}),
	}
}

// Done is closed once the task has completed, whether by finishing or by
// being cut off by the watchdog.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Elapsed is the frame time the task has been running for.
func (t *Task) Elapsed() time.Duration {
	return t.elapsed
}

func (t *Task) Started() bool {
	return t.started
}

func (t *Task) start(onDone func(*Task)) {
	t.started = true
	t.onDone = onDone
}

func (t *Task) step(dt time.Duration) Status {
	t.elapsed += dt
	return t.Action.Step(dt)
}

// complete fires the completion callback. Repeat calls are ignored.
func (t *Task) complete() {
	if t.finished {
		return
	}
	t.finished = true
	close(t.done)
	if t.onDone != nil {
		t.onDone(t)
	}
}
