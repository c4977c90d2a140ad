package strategy

import (
	"context"
	"fmt"

	"github.com/huntgame/conflict-engine/pkg/notify"
	"github.com/huntgame/conflict-engine/pkg/types"
)

// FirstCome awards the target to the team that arrived earliest. Teams
// without an arrival time sort last; ties keep the conflict's team order.
// Resolution is synchronous.
type FirstCome struct {
	Notifier notify.Notifier
}

// Resolve implements Executor.
func (e *FirstCome) Resolve(_ context.Context, c *types.Conflict) (*types.ResolutionResult, error) {
	if len(c.Teams) == 0 {
		return nil, fmt.Errorf("conflict %s has no teams", c.ID)
	}

	winner := c.Teams[0]
	for _, team := range c.Teams[1:] {
		if team.ArrivedAt == nil {
			continue
		}
		if winner.ArrivedAt == nil || team.ArrivedAt.Before(*winner.ArrivedAt) {
			winner = team
		}
	}

	result := &types.ResolutionResult{
		Strategy: types.FirstComeResolution,
		Winner:   &winner,
	}
	notifyOutcome(e.Notifier, c, result)
	return result, nil
}
