package notify

import (
	"sync"
	"time"

	"github.com/huntgame/conflict-engine/pkg/types"
)

// EventKind labels engine lifecycle events.
type EventKind string

const (
	// EventDetected fires when the detector registers a new conflict
	EventDetected EventKind = "detected"
	// EventResolved fires when a conflict reaches resolved
	EventResolved EventKind = "resolved"
	// EventAbandoned fires when a conflict is abandoned
	EventAbandoned EventKind = "abandoned"
)

// Event is one engine lifecycle notification.
type Event struct {
	Kind      EventKind
	Conflict  *types.Conflict
	Timestamp time.Time
}

// Events broadcasts engine lifecycle events to subscribers. Subscribers
// receive on buffered channels; a full channel drops the event rather
// than block the engine.
type Events struct {
	mu   sync.RWMutex
	subs []chan Event
}

// NewEvents creates an event stream with no subscribers.
func NewEvents() *Events {
	return &Events{}
}

// Subscribe returns a channel receiving future events.
func (e *Events) Subscribe() <-chan Event {
	ch := make(chan Event, 64)
	e.mu.Lock()
	e.subs = append(e.subs, ch)
	e.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (e *Events) Unsubscribe(ch <-chan Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, sub := range e.subs {
		if sub == ch {
			close(sub)
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			break
		}
	}
}

// Publish broadcasts an event to all subscribers without blocking.
func (e *Events) Publish(kind EventKind, c *types.Conflict) {
	e.mu.RLock()
	subs := make([]chan Event, len(e.subs))
	copy(subs, e.subs)
	e.mu.RUnlock()

	ev := Event{Kind: kind, Conflict: c, Timestamp: time.Now()}
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
