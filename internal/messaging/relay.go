package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-progression/internal/events"
)

const SubjectPrefix = "progression."

// Publisher sends raw message data to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Envelope is the wire form of a relayed progression event.
type Envelope struct {
	Id   string    `json:"id"`
	Kind string    `json:"kind"`
	Type string    `json:"type,omitempty"`
	Name string    `json:"name,omitempty"`
	Wave int       `json:"wave,omitempty"`
	Time time.Time `json:"time"`
}

// Relay forwards bus events to a Publisher. Publishing is fire and forget;
// failures are logged and dropped.
type Relay struct {
	pub Publisher
	now func() time.Time
}

func NewRelay(pub Publisher) *Relay {
	return &Relay{pub: pub, now: time.Now}
}

// Attach subscribes the relay to every event fired on bus.
func (r *Relay) Attach(bus *events.Bus) {
	bus.Subscribe(r.Handle)
}

func (r *Relay) Handle(e events.Event) {
	env := r.envelope(e)

	data, err := json.Marshal(env)
	if err != nil {
		slog.Error("marshalling event envelope", "kind", env.Kind, "error", err)
		return
	}

	if err := r.pub.Publish(Subject(e), data); err != nil {
		slog.Warn("publishing progression event", "kind", env.Kind, "name", env.Name, "error", err)
	}
}

func (r *Relay) envelope(e events.Event) Envelope {
	env := Envelope{
		Id:   uuid.New().String(),
		Kind: e.Kind(),
		Time: r.now().UTC(),
	}

	switch ev := e.(type) {
	case events.ZoneCompleteEvent:
		env.Type = ev.Zone.ContentType().String()
		env.Name = ev.Zone.Name()
		env.Wave = ev.Zone.ConditionWave
	case events.UnlockEvent:
		env.Type = ev.Content.ContentType().String()
		env.Name = ev.Content.Name()
	}

	return env
}

// Subject returns the subject an event is published on.
func Subject(e events.Event) string {
	return fmt.Sprintf("%s%s", SubjectPrefix, e.Kind())
}
