package strategy

import (
	"context"
	"time"

	"github.com/huntgame/conflict-engine/pkg/notify"
	"github.com/huntgame/conflict-engine/pkg/types"
)

// CollaborativeTask has every team work a joint objective for a fixed
// duration, after which all participants succeed together. Cooperative
// tasks cannot be lost; only external cancellation interrupts them.
type CollaborativeTask struct {
	Notifier notify.Notifier
	Duration time.Duration
}

// Resolve implements Executor.
func (e *CollaborativeTask) Resolve(ctx context.Context, c *types.Conflict) (*types.ResolutionResult, error) {
	for _, team := range c.Teams {
		_ = e.Notifier.Notify(team.ID, map[string]any{
			"type":        "collaborative_task",
			"conflict_id": c.ID,
			"duration_ms": e.Duration.Milliseconds(),
		})
	}

	timer := time.NewTimer(e.Duration)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	result := &types.ResolutionResult{
		Strategy: types.CollaborativeTaskResolution,
		NoWinner: true,
	}
	notifyOutcome(e.Notifier, c, result)
	return result, nil
}
