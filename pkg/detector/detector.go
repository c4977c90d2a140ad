// Package detector scans team positions against contested targets and
// produces new conflicts. Detection is decoupled from resolution: the
// detector only registers pending conflicts, it never resolves them.
package detector

import (
	"fmt"
	"sort"
	"time"

	"github.com/huntgame/conflict-engine/pkg/geo"
	"github.com/huntgame/conflict-engine/pkg/types"
)

// Store is the registry surface the detector needs: the duplicate-active
// check and idempotent registration.
type Store interface {
	Register(*types.Conflict) bool
	ActiveTarget(targetID string) bool
}

// Detector evaluates the proximity and heading rules on every call.
type Detector struct {
	store Store

	treasureRadius    float64
	resourceRadius    float64
	pathRadius        float64
	headingOpposition float64
}

// New creates a detector with the given policy values.
func New(store Store, treasureRadius, resourceRadius, pathRadius, headingOpposition float64) *Detector {
	return &Detector{
		store:             store,
		treasureRadius:    treasureRadius,
		resourceRadius:    resourceRadius,
		pathRadius:        pathRadius,
		headingOpposition: headingOpposition,
	}
}

// Detect runs all rules over the current game state and returns the
// conflicts that were newly registered on this pass. Targets already
// covered by an active conflict are silently skipped.
func (d *Detector) Detect(teams []types.TeamSnapshot, treasures []types.Treasure, resources []types.Resource) []*types.Conflict {
	var created []*types.Conflict

	for _, t := range treasures {
		if c := d.detectTarget(teams, types.TreasureConflict, t.ID, t.Position, d.treasureRadius, map[string]any{"treasure": t}); c != nil {
			created = append(created, c)
		}
	}
	for _, r := range resources {
		if c := d.detectTarget(teams, types.ResourceConflict, r.ID, r.Position, d.resourceRadius, map[string]any{"resource": r}); c != nil {
			created = append(created, c)
		}
	}
	created = append(created, d.detectPaths(teams)...)

	return created
}

// detectTarget applies the shared proximity rule: at least two teams
// within the radius of the same target, no active conflict on it yet.
func (d *Detector) detectTarget(teams []types.TeamSnapshot, kind types.ConflictType, targetID string, pos types.Position, radius float64, metadata map[string]any) *types.Conflict {
	if d.store.ActiveTarget(targetID) {
		return nil
	}

	var near []types.TeamSnapshot
	for _, team := range teams {
		if geo.Distance(team.Position, pos) <= radius {
			near = append(near, team)
		}
	}
	if len(near) < 2 {
		return nil
	}

	c := newConflict(kind, targetID, near, metadata)
	if !d.store.Register(c) {
		return nil
	}
	return c
}

// detectPaths checks every unordered team pair for close, near-opposite
// travel. The pair's composite target id makes the one-active-conflict
// invariant a plain duplicate check.
func (d *Detector) detectPaths(teams []types.TeamSnapshot) []*types.Conflict {
	var created []*types.Conflict

	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			a, b := teams[i], teams[j]
			if geo.Distance(a.Position, b.Position) > d.pathRadius {
				continue
			}
			if geo.HeadingSeparation(a.Heading, b.Heading) < d.headingOpposition {
				continue
			}

			targetID := PairTargetID(a.ID, b.ID)
			if d.store.ActiveTarget(targetID) {
				continue
			}

			c := newConflict(types.PathConflict, targetID, []types.TeamSnapshot{a, b}, map[string]any{
				"paths": map[string][]types.Position{
					a.ID: a.CurrentPath,
					b.ID: b.CurrentPath,
				},
			})
			if d.store.Register(c) {
				created = append(created, c)
			}
		}
	}
	return created
}

// PairTargetID builds the composite target id for an unordered team pair.
func PairTargetID(teamA, teamB string) string {
	ids := []string{teamA, teamB}
	sort.Strings(ids)
	return fmt.Sprintf("path:%s:%s", ids[0], ids[1])
}

func newConflict(kind types.ConflictType, targetID string, teams []types.TeamSnapshot, metadata map[string]any) *types.Conflict {
	now := time.Now()
	c := &types.Conflict{
		ID:        fmt.Sprintf("conflict_%s_%d", targetID, now.UnixNano()),
		Type:      kind,
		Teams:     teams,
		TargetID:  targetID,
		Status:    types.StatusPending,
		CreatedAt: now,
		Metadata:  metadata,
	}
	c.AppendLog(fmt.Sprintf("%s conflict detected between %d teams over %s", kind, len(teams), targetID))
	return c
}
