package messaging

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-progression/internal/content"
	"github.com/pixil98/go-progression/internal/events"
	"github.com/pixil98/go-testutil"
)

type published struct {
	subject string
	data    []byte
}

type mockPublisher struct {
	msgs []published
	err  error
}

func (p *mockPublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{subject: subject, data: data})
	return nil
}

func TestRelay_Handle(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		event      events.Event
		expSubject string
		expEnv     Envelope
	}{
		"zone complete": {
			event:      events.ZoneCompleteEvent{Zone: content.NewZone("frozen-forest", 15)},
			expSubject: "progression.zone-complete",
			expEnv:     Envelope{Kind: "zone-complete", Type: "zone", Name: "frozen-forest", Wave: 15, Time: fixed},
		},
		"unlock item": {
			event:      events.UnlockEvent{Content: content.NewItem("graphite")},
			expSubject: "progression.unlock",
			expEnv:     Envelope{Kind: "unlock", Type: "item", Name: "graphite", Time: fixed},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			pub := &mockPublisher{}
			r := NewRelay(pub)
			r.now = func() time.Time { return fixed }

			r.Handle(tt.event)

			if len(pub.msgs) != 1 {
				t.Fatalf("expected 1 message, got %d", len(pub.msgs))
			}
			testutil.AssertEqual(t, "subject", pub.msgs[0].subject, tt.expSubject)

			var env Envelope
			if err := json.Unmarshal(pub.msgs[0].data, &env); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := uuid.Parse(env.Id); err != nil {
				t.Errorf("id %q is not a uuid: %v", env.Id, err)
			}
			env.Id = ""
			testutil.AssertEqual(t, "envelope", env, tt.expEnv)
		})
	}
}

func TestRelay_UniqueIds(t *testing.T) {
	pub := &mockPublisher{}
	r := NewRelay(pub)
	e := events.UnlockEvent{Content: content.NewItem("graphite")}

	r.Handle(e)
	r.Handle(e)

	var a, b Envelope
	if err := json.Unmarshal(pub.msgs[0].data, &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal(pub.msgs[1].data, &b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Id == b.Id {
		t.Errorf("expected distinct ids, both were %q", a.Id)
	}
}

func TestRelay_PublishErrorIsDropped(t *testing.T) {
	pub := &mockPublisher{err: errors.New("nats server not started")}
	r := NewRelay(pub)

	// must not panic or block
	r.Handle(events.UnlockEvent{Content: content.NewItem("graphite")})

	testutil.AssertEqual(t, "messages", len(pub.msgs), 0)
}

func TestRelay_Attach(t *testing.T) {
	pub := &mockPublisher{}
	bus := events.NewBus()
	NewRelay(pub).Attach(bus)

	bus.Fire(events.ZoneCompleteEvent{Zone: content.NewZone("craters", 10)})
	bus.Fire(events.UnlockEvent{Content: content.NewZone("craters", 10)})

	testutil.AssertEqual(t, "messages", len(pub.msgs), 2)
	testutil.AssertEqual(t, "first subject", pub.msgs[0].subject, "progression.zone-complete")
	testutil.AssertEqual(t, "second subject", pub.msgs[1].subject, "progression.unlock")
}
