// Package notify carries one-way messages from the engine out to teams and
// engine-level events out to listeners. Delivery is best effort: a failed
// or slow client never fails the operation that produced the message.
package notify

import (
	"sync"

	"github.com/huntgame/conflict-engine/pkg/utils"
)

// Notifier delivers a payload to one team. Implementations must be safe
// for concurrent use.
type Notifier interface {
	Notify(teamID string, payload map[string]any) error
}

// Message is one delivered notification.
type Message struct {
	TeamID  string
	Payload map[string]any
}

// ChanNotifier fans notifications out to registered client channels, one
// per connected team session.
type ChanNotifier struct {
	mu      sync.RWMutex
	clients map[string][]chan Message
	logger  *utils.Logger
}

// NewChanNotifier creates a notifier with no connected clients.
func NewChanNotifier(logger *utils.Logger) *ChanNotifier {
	if logger == nil {
		logger = utils.NewLogger(false)
	}
	return &ChanNotifier{
		clients: make(map[string][]chan Message),
		logger:  logger,
	}
}

// Register attaches a client channel for a team and returns it. The
// channel is buffered; once full, further messages to it are dropped.
func (n *ChanNotifier) Register(teamID string) <-chan Message {
	ch := make(chan Message, 32)
	n.mu.Lock()
	n.clients[teamID] = append(n.clients[teamID], ch)
	n.mu.Unlock()
	return ch
}

// Unregister detaches a client channel and closes it.
func (n *ChanNotifier) Unregister(teamID string, ch <-chan Message) {
	n.mu.Lock()
	defer n.mu.Unlock()

	subs := n.clients[teamID]
	for i, sub := range subs {
		if sub == ch {
			close(sub)
			n.clients[teamID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

// Notify sends a payload to every client channel registered for the team.
// Channels are collected under the read lock and written without it, so a
// slow client cannot stall other deliveries.
func (n *ChanNotifier) Notify(teamID string, payload map[string]any) error {
	n.mu.RLock()
	subs := make([]chan Message, len(n.clients[teamID]))
	copy(subs, n.clients[teamID])
	n.mu.RUnlock()

	msg := Message{TeamID: teamID, Payload: payload}
	for _, ch := range subs {
		select {
		case ch <- msg:
		default:
			n.logger.Warning("dropping notification for team %s: client channel full", teamID)
		}
	}
	return nil
}
