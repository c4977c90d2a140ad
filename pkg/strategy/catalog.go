// Package strategy implements the resolution strategies of the conflict
// engine: an ordered eligibility catalog per conflict type and one
// executor per strategy.
package strategy

import (
	"context"
	"sort"

	"github.com/huntgame/conflict-engine/pkg/registry"
	"github.com/huntgame/conflict-engine/pkg/types"
)

// Executor runs one resolution strategy for a conflict and produces its
// outcome. Waiting executors must honor ctx cancellation and their own
// deadlines; they never block forever.
type Executor interface {
	Resolve(ctx context.Context, c *types.Conflict) (*types.ResolutionResult, error)
}

// Entry is one candidate strategy for a conflict type. Lower priority
// numbers are tried first; the first entry whose Eligible predicate holds
// wins.
type Entry struct {
	Name     types.ResolutionType
	Priority int
	Eligible func(*types.Conflict) bool
	Exec     Executor
}

// Catalog maps conflict types to their ordered strategy candidates.
type Catalog struct {
	entries map[types.ConflictType][]Entry
}

// NewCatalog builds a catalog from per-type entry lists, sorting each list
// by priority. Every type's list should end with an always-eligible entry
// so selection cannot fail for a known type.
func NewCatalog(entries map[types.ConflictType][]Entry) *Catalog {
	c := &Catalog{entries: make(map[types.ConflictType][]Entry, len(entries))}
	for t, list := range entries {
		sorted := make([]Entry, len(list))
		copy(sorted, list)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Priority < sorted[j].Priority
		})
		c.entries[t] = sorted
	}
	return c
}

// Select returns the first eligible entry for the conflict. An unknown
// conflict type or a list with no eligible entry yields
// ErrUnsupportedConflictType.
func (c *Catalog) Select(conflict *types.Conflict) (*Entry, error) {
	list, ok := c.entries[conflict.Type]
	if !ok {
		return nil, registry.ErrUnsupportedConflictType
	}
	for i := range list {
		if list[i].Eligible == nil || list[i].Eligible(conflict) {
			return &list[i], nil
		}
	}
	return nil, registry.ErrUnsupportedConflictType
}

func always(*types.Conflict) bool { return true }

func maxTeams(n int) func(*types.Conflict) bool {
	return func(c *types.Conflict) bool { return len(c.Teams) <= n }
}

func resourceSplittable(c *types.Conflict) bool {
	res, ok := c.Metadata["resource"].(types.Resource)
	return ok && res.Splittable
}

func resourceCollaborative(c *types.Conflict) bool {
	res, ok := c.Metadata["resource"].(types.Resource)
	return ok && res.Collaborative
}
