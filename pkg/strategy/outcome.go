package strategy

import (
	"math/rand"
	"sync"

	"github.com/huntgame/conflict-engine/pkg/notify"
	"github.com/huntgame/conflict-engine/pkg/types"
)

// notifyOutcome sends exactly one outcome notification to every team on
// the conflict, distinguishing winner from non-winner. Delivery failures
// are the notifier's problem; executors never fail on them.
func notifyOutcome(n notify.Notifier, c *types.Conflict, result *types.ResolutionResult) {
	if n == nil {
		return
	}
	for _, team := range c.Teams {
		payload := map[string]any{
			"type":        "conflict_outcome",
			"conflict_id": c.ID,
			"strategy":    string(result.Strategy),
			"no_winner":   result.NoWinner,
		}
		if result.Winner != nil {
			payload["won"] = team.ID == result.Winner.ID
		}
		if result.Reason != "" {
			payload["reason"] = result.Reason
		}
		_ = n.Notify(team.ID, payload)
	}
}

// lockedRand makes a seeded rand.Rand safe for the concurrent executors
// that share it.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
