package strategy

import (
	"context"
	"fmt"

	"github.com/huntgame/conflict-engine/pkg/notify"
	"github.com/huntgame/conflict-engine/pkg/types"
)

// RandomAssignment picks one team uniformly at random as the winner. It
// is both the resource-conflict default and the timeout fallback for
// interactive strategies.
type RandomAssignment struct {
	Notifier notify.Notifier
	Rand     *lockedRand
}

// Resolve implements Executor.
func (e *RandomAssignment) Resolve(_ context.Context, c *types.Conflict) (*types.ResolutionResult, error) {
	return e.resolveWithReason(c, "")
}

// resolveWithReason lets the mini-game fallback annotate the result with
// its timeout reason while reusing the same selection path.
func (e *RandomAssignment) resolveWithReason(c *types.Conflict, reason string) (*types.ResolutionResult, error) {
	if len(c.Teams) == 0 {
		return nil, fmt.Errorf("conflict %s has no teams", c.ID)
	}

	winner := c.Teams[e.Rand.Intn(len(c.Teams))]
	result := &types.ResolutionResult{
		Strategy: types.RandomAssignmentResolution,
		Winner:   &winner,
		Reason:   reason,
	}
	notifyOutcome(e.Notifier, c, result)
	return result, nil
}
