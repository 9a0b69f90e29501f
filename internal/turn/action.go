package turn

import "time"

// Status is the result of advancing an Action by one frame.
type Status int

const (
	Running Status = iota
	Done
)

func (s Status) String() string {
	if s == Done {
		return "done"
	}
	return "running"
}

// Action is a resumable unit of turn work. The frame loop calls Step once per
// frame with the time since the previous frame until it reports Done.
type Action interface {
	Step(dt time.Duration) Status
}

// ActionFunc adapts a function that completes immediately.
type ActionFunc func()

func (f ActionFunc) Step(time.Duration) Status {
	f()
	return Done
}

// StepFunc adapts a function that is itself frame-driven.
type StepFunc func(dt time.Duration) Status

func (f StepFunc) Step(dt time.Duration) Status {
	return f(dt)
}

// Nop finishes on its first step without doing anything.
var Nop Action = ActionFunc(func() {})

// Sequence runs actions back to back as a single action. A child that
// finishes hands the rest of the frame to the next child, so instant
// children do not cost a frame each.
func Sequence(actions ...Action) Action {
	return &sequence{actions: actions}
}

type sequence struct {
	actions []Action
	idx     int
}

func (s *sequence) Step(dt time.Duration) Status {
	for s.idx < len(s.actions) {
		if s.actions[s.idx].Step(dt) == Running {
			return Running
		}
		s.idx++
		dt = 0
	}
	return Done
}

// Lazy defers building an action until the first time it is stepped. This
// lets a sequence decide its next step from state left behind by the
// previous one.
func Lazy(build func() Action) Action {
	return &lazy{build: build}
}

type lazy struct {
	build func() Action
	a     Action
}

func (l *lazy) Step(dt time.Duration) Status {
	if l.a == nil {
		l.a = l.build()
		if l.a == nil {
			return Done
		}
	}
	return l.a.Step(dt)
}
