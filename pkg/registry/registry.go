// Package registry is the authoritative store of conflict state. It owns
// the pending → resolving → resolved/abandoned state machine, serializes
// transitions behind one mutex, and keeps a bounded FIFO history of
// terminal conflicts.
package registry

import (
	"sync"
	"time"

	"github.com/huntgame/conflict-engine/pkg/types"
)

// Registry tracks active conflicts and a bounded history of terminal ones.
type Registry struct {
	mu           sync.RWMutex
	active       map[string]*types.Conflict
	history      []*types.Conflict
	historyLimit int
}

// New creates a registry whose history holds at most historyLimit entries.
func New(historyLimit int) *Registry {
	if historyLimit <= 0 {
		historyLimit = 1000
	}
	return &Registry{
		active:       make(map[string]*types.Conflict),
		historyLimit: historyLimit,
	}
}

// Register inserts a new pending conflict. It returns false when an active
// conflict already targets the same target id, so racing detection passes
// stay idempotent.
func (r *Registry) Register(c *types.Conflict) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.active {
		if existing.TargetID == c.TargetID {
			return false
		}
	}
	r.active[c.ID] = c
	return true
}

// ActiveTarget reports whether an active conflict already covers the target.
func (r *Registry) ActiveTarget(targetID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.active {
		if c.TargetID == targetID {
			return true
		}
	}
	return false
}

// Begin transitions a pending conflict to resolving. The check and the
// transition happen under one lock acquisition, so of two concurrent Begin
// calls on the same id exactly one succeeds and the other observes
// InvalidStateError.
func (r *Registry) Begin(conflictID string) (*types.Conflict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.active[conflictID]
	if !ok {
		return nil, ErrConflictNotFound
	}
	if c.Status != types.StatusPending {
		return nil, &InvalidStateError{ConflictID: conflictID, Status: c.Status, Op: "resolve"}
	}
	c.Status = types.StatusResolving
	c.AppendLog("resolution started")
	return c, nil
}

// Complete transitions a resolving conflict to resolved and moves it into
// history. A late completion for a conflict that was abandoned while its
// executor waited is discarded: Complete returns false and the terminal
// record stays untouched.
func (r *Registry) Complete(conflictID string, result *types.ResolutionResult) (*types.Conflict, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.active[conflictID]
	if !ok || c.Status != types.StatusResolving {
		return nil, false
	}

	now := time.Now()
	c.Status = types.StatusResolved
	c.ResolvedAt = &now
	c.Resolution = result.Strategy
	c.Winner = result.Winner
	if result.Winner != nil {
		c.AppendLog("resolved via " + string(result.Strategy) + ", winner " + result.Winner.ID)
	} else {
		c.AppendLog("resolved via " + string(result.Strategy) + ", no single winner")
	}
	r.archiveLocked(c)
	return c, true
}

// Abandon terminates any active conflict, stamping it abandoned. It is
// valid from both pending and resolving; a waiting executor's eventual
// outcome is discarded by Complete.
func (r *Registry) Abandon(conflictID string) (*types.Conflict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.active[conflictID]
	if !ok {
		return nil, ErrConflictNotFound
	}

	now := time.Now()
	c.Status = types.StatusAbandoned
	c.ResolvedAt = &now
	c.AppendLog("conflict abandoned")
	r.archiveLocked(c)
	return c, nil
}

// Log appends an audit entry to an active conflict. All log writes go
// through the registry lock; callers holding a *Conflict from Begin must
// not append to its log directly while the conflict can still be
// abandoned concurrently.
func (r *Registry) Log(conflictID, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.active[conflictID]; ok {
		c.AppendLog(message)
	}
}

// Fail annotates a resolving conflict with an executor failure. The
// conflict stays resolving so the caller can retry or abandon explicitly.
func (r *Registry) Fail(conflictID string, execErr error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.active[conflictID]; ok {
		c.AppendLog("executor failed: " + execErr.Error())
	}
}

// archiveLocked moves a terminal conflict from the active map into history,
// evicting the oldest entry beyond the cap. Callers hold the write lock.
func (r *Registry) archiveLocked(c *types.Conflict) {
	delete(r.active, c.ID)
	r.history = append(r.history, c)
	if len(r.history) > r.historyLimit {
		r.history = r.history[len(r.history)-r.historyLimit:]
	}
}

// Get returns an active conflict by id.
func (r *Registry) Get(conflictID string) (*types.Conflict, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.active[conflictID]
	if !ok {
		return nil, ErrConflictNotFound
	}
	return c, nil
}

// Active returns all active conflicts.
func (r *Registry) Active() []*types.Conflict {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*types.Conflict, 0, len(r.active))
	for _, c := range r.active {
		out = append(out, c)
	}
	return out
}

// ActiveForTeam returns active conflicts involving the team.
func (r *Registry) ActiveForTeam(teamID string) []*types.Conflict {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*types.Conflict
	for _, c := range r.active {
		if c.Involves(teamID) {
			out = append(out, c)
		}
	}
	return out
}

// History returns up to limit terminal conflicts, most recent first. A
// non-positive limit returns the full history.
func (r *Registry) History(limit int) []*types.Conflict {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.history)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]*types.Conflict, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.history[i])
	}
	return out
}

// HistoryForTeam returns terminal conflicts involving the team, most
// recent first.
func (r *Registry) HistoryForTeam(teamID string) []*types.Conflict {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*types.Conflict
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Involves(teamID) {
			out = append(out, r.history[i])
		}
	}
	return out
}
