package events

import "github.com/pixil98/go-progression/internal/content"

// Event is anything fired on the Bus.
type Event interface {
	// Kind is a short stable name used for routing outside the process.
	Kind() string
}

// ZoneCompleteEvent fires when a zone's completion wave is first reached.
type ZoneCompleteEvent struct {
	Zone *content.Zone
}

func (ZoneCompleteEvent) Kind() string { return "zone-complete" }

// UnlockEvent fires when content is unlocked for the first time.
type UnlockEvent struct {
	Content content.Unlockable
}

func (UnlockEvent) Kind() string { return "unlock" }
