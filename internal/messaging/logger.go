package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Subscriber delivers messages published on a subject once it is ready.
type Subscriber interface {
	Ready() <-chan struct{}
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// EventLogger subscribes to every progression subject and logs what goes
// over the bus at debug level.
type EventLogger struct {
	sub Subscriber
}

func NewEventLogger(sub Subscriber) *EventLogger {
	return &EventLogger{sub: sub}
}

func (l *EventLogger) Start(ctx context.Context) error {
	select {
	case <-l.sub.Ready():
	case <-ctx.Done():
		return nil
	}

	unsub, err := l.sub.Subscribe(SubjectPrefix+">", l.handle)
	if err != nil {
		return fmt.Errorf("subscribing to progression events: %w", err)
	}
	defer unsub()

	<-ctx.Done()
	return nil
}

func (l *EventLogger) handle(data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Warn("undecodable progression message", "error", err)
		return
	}
	slog.Debug("progression event", "id", env.Id, "kind", env.Kind, "type", env.Type, "name", env.Name, "time", env.Time)
}
