// Package signals carries client-side events into waiting strategy
// executors. Each interactive game session opens a mailbox on the hub;
// teams push "ready" and location updates into it, and the owning executor
// races the all-ready channel against its deadline.
package signals

import (
	"sync"

	"github.com/huntgame/conflict-engine/pkg/types"
)

// LocationUpdate is a team position report scoped to one session.
type LocationUpdate struct {
	TeamID   string
	Position types.Position
}

type session struct {
	pending   map[string]bool
	allReady  chan struct{}
	locations chan LocationUpdate
	done      bool
}

// Hub routes team signals to the executor owning each session. Signals for
// unknown or already-closed sessions are discarded, so late responders
// never block or resurrect a finished resolution.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// NewHub creates an empty signal hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*session)}
}

// Open registers a session waiting on the given teams. The returned
// channels belong to the session and close with it.
func (h *Hub) Open(sessionID string, teamIDs []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := &session{
		pending:   make(map[string]bool, len(teamIDs)),
		allReady:  make(chan struct{}),
		locations: make(chan LocationUpdate, 16),
	}
	for _, id := range teamIDs {
		s.pending[id] = true
	}
	h.sessions[sessionID] = s
}

// Ready marks a team as ready. It is idempotent per team; once every
// participant has signalled, the session's all-ready channel closes
// exactly once.
func (h *Hub) Ready(sessionID, teamID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[sessionID]
	if !ok || s.done {
		return
	}
	if !s.pending[teamID] {
		return
	}
	delete(s.pending, teamID)
	if len(s.pending) == 0 {
		s.done = true
		close(s.allReady)
	}
}

// UpdateLocation forwards a team position report to the session owner.
// Full mailboxes drop the update rather than block the caller.
func (h *Hub) UpdateLocation(sessionID, teamID string, pos types.Position) {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	h.mu.Unlock()
	if !ok {
		return
	}

	select {
	case s.locations <- LocationUpdate{TeamID: teamID, Position: pos}:
	default:
	}
}

// AllReady returns the channel that closes when every participant has
// signalled ready. Unknown sessions get a channel that never closes.
func (h *Hub) AllReady(sessionID string) <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[sessionID]; ok {
		return s.allReady
	}
	return make(chan struct{})
}

// Locations returns the session's location-update mailbox.
func (h *Hub) Locations(sessionID string) <-chan LocationUpdate {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[sessionID]; ok {
		return s.locations
	}
	ch := make(chan LocationUpdate)
	close(ch)
	return ch
}

// Close discards the session. Later signals for its id become no-ops.
func (h *Hub) Close(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[sessionID]; ok {
		if !s.done {
			s.done = true
		}
		delete(h.sessions, sessionID)
	}
}
