package strategy

import (
	"context"
	"fmt"

	"github.com/huntgame/conflict-engine/pkg/notify"
	"github.com/huntgame/conflict-engine/pkg/types"
)

// ResourceSplit divides a splittable resource into equal shares, one per
// team. Nobody wins outright; the shares always sum to 1.
type ResourceSplit struct {
	Notifier notify.Notifier
}

// Resolve implements Executor.
func (e *ResourceSplit) Resolve(_ context.Context, c *types.Conflict) (*types.ResolutionResult, error) {
	n := len(c.Teams)
	if n == 0 {
		return nil, fmt.Errorf("conflict %s has no teams", c.ID)
	}

	share := 1.0 / float64(n)
	shares := make([]types.TeamShare, n)
	total := 0.0
	for i, team := range c.Teams {
		shares[i] = types.TeamShare{TeamID: team.ID, Share: share}
		total += share
	}
	// The last share absorbs float rounding so the total is exactly 1.
	shares[n-1].Share += 1.0 - total

	result := &types.ResolutionResult{
		Strategy: types.ResourceSplitResolution,
		NoWinner: true,
		Shares:   shares,
	}
	notifyOutcome(e.Notifier, c, result)
	return result, nil
}
