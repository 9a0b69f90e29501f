package messaging

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/pixil98/go-golem/internal/turn"
)

const (
	SubjectPrefix = "golem.turn."
	SubjectAll    = SubjectPrefix + ">"
)

type Publisher interface {
	Publish(subject string, data []byte) error
}

type Subscriber interface {
	Subscribe(subject string, handler func(subject string, data []byte)) (func(), error)
}

// TurnPublisher forwards turn engine events onto per-kind subjects.
type TurnPublisher struct {
	pub    Publisher
	logger *slog.Logger
}

func NewTurnPublisher(pub Publisher, logger *slog.Logger) *TurnPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &TurnPublisher{pub: pub, logger: logger}
}

// Subject is where events of kind k are published.
func Subject(k turn.EventKind) string {
	return SubjectPrefix + string(k)
}

// OnTurnEvent publishes e. Events raised before the server is up are
// dropped.
func (p *TurnPublisher) OnTurnEvent(e turn.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		p.logger.Warn("encoding turn event", "kind", e.Kind, "error", err)
		return
	}
	err = p.pub.Publish(Subject(e.Kind), data)
	if errors.Is(err, ErrNotStarted) {
		return
	}
	if err != nil {
		p.logger.Warn("publishing turn event", "kind", e.Kind, "error", err)
	}
}

// SubscribeTurns decodes every turn event and hands it to fn. Messages that
// do not decode are skipped.
func SubscribeTurns(sub Subscriber, fn func(turn.Event)) (func(), error) {
	return sub.Subscribe(SubjectAll, func(subject string, data []byte) {
		var e turn.Event
		if err := json.Unmarshal(data, &e); err != nil {
			return
		}
		if e.Kind == "" {
			e.Kind = turn.EventKind(strings.TrimPrefix(subject, SubjectPrefix))
		}
		fn(e)
	})
}
