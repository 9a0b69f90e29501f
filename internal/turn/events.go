package turn

// EventKind identifies what happened in the turn engine.
type EventKind string

const (
	EventPhaseChanged    EventKind = "phase_changed"
	EventActionStarted   EventKind = "action_started"
	EventActionFinished  EventKind = "action_finished"
	EventActionTimedOut  EventKind = "action_timed_out"
	EventActionRequeued  EventKind = "action_requeued"
	EventActionAbandoned EventKind = "action_abandoned"
)

// Event is a notification about a change in turn state.
type Event struct {
	Kind     EventKind `json:"kind"`
	Phase    Phase     `json:"phase"`
	Turn     uint64    `json:"turn"`
	TaskID   string    `json:"task_id,omitempty"`
	Producer string    `json:"producer,omitempty"`
	Retries  int       `json:"retries,omitempty"`
}

// Observer receives turn events. It is called outside of the manager's lock
// but on the frame goroutine, so it must not block.
type Observer interface {
	OnTurnEvent(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) OnTurnEvent(e Event) {
	f(e)
}
