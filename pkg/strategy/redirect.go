package strategy

import (
	"context"
	"fmt"
	"math"

	"github.com/huntgame/conflict-engine/pkg/notify"
	"github.com/huntgame/conflict-engine/pkg/types"
)

// Pathfinder computes an alternate route for a team around a contested
// path segment.
type Pathfinder interface {
	ComputeAlternatePath(team types.TeamSnapshot) ([]types.Position, error)
}

// PathRedirection reroutes both teams of a path conflict onto alternate
// paths. Nobody wins; each team receives its own redirect payload.
type PathRedirection struct {
	Notifier   notify.Notifier
	Pathfinder Pathfinder
}

// Resolve implements Executor.
func (e *PathRedirection) Resolve(_ context.Context, c *types.Conflict) (*types.ResolutionResult, error) {
	if len(c.Teams) == 0 {
		return nil, fmt.Errorf("conflict %s has no teams", c.ID)
	}

	redirects := make([]types.PathRedirect, 0, len(c.Teams))
	for _, team := range c.Teams {
		path, err := e.Pathfinder.ComputeAlternatePath(team)
		if err != nil {
			return nil, fmt.Errorf("alternate path for team %s: %w", team.ID, err)
		}
		redirects = append(redirects, types.PathRedirect{TeamID: team.ID, NewPath: path})
		_ = e.Notifier.Notify(team.ID, map[string]any{
			"type":        "path_redirect",
			"conflict_id": c.ID,
			"new_path":    path,
		})
	}

	result := &types.ResolutionResult{
		Strategy:  types.PathRedirectResolution,
		NoWinner:  true,
		Redirects: redirects,
	}
	notifyOutcome(e.Notifier, c, result)
	return result, nil
}

// SidestepPathfinder shifts a team's remaining path sideways, perpendicular
// to its heading. It stands in where the game's real pathfinding service
// is not wired.
type SidestepPathfinder struct {
	Offset float64
}

// ComputeAlternatePath implements Pathfinder.
func (p SidestepPathfinder) ComputeAlternatePath(team types.TeamSnapshot) ([]types.Position, error) {
	rad := (team.Heading + 90) * math.Pi / 180
	dx := p.Offset * math.Cos(rad)
	dy := p.Offset * math.Sin(rad)

	src := team.CurrentPath
	if len(src) == 0 {
		src = []types.Position{team.Position}
	}
	out := make([]types.Position, len(src))
	for i, pos := range src {
		out[i] = types.Position{X: pos.X + dx, Y: pos.Y + dy}
	}
	return out, nil
}
