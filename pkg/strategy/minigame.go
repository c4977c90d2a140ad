package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/huntgame/conflict-engine/pkg/notify"
	"github.com/huntgame/conflict-engine/pkg/questions"
	"github.com/huntgame/conflict-engine/pkg/signals"
	"github.com/huntgame/conflict-engine/pkg/types"
	"github.com/huntgame/conflict-engine/pkg/utils"
)

const contestQuestions = 5

// MiniGame runs the interactive resolution flow: invite every team, wait
// for all of them to accept before a deadline, then play a fixed-length
// scored round. If the deadline wins the race the conflict falls back to
// random assignment with reason "timeout". With a Questions provider set,
// the round is scored as a knowledge contest instead of an arbitrary game.
//
// Exactly one resolution comes out of Resolve regardless of how many teams
// respond late: the session is closed before the fallback runs, so stale
// ready signals land in a discarded mailbox.
type MiniGame struct {
	Notifier  notify.Notifier
	Hub       *signals.Hub
	Rand      *lockedRand
	Fallback  *RandomAssignment
	Logger    *utils.Logger
	Questions questions.Provider

	Deadline time.Duration
	Duration time.Duration
}

func (e *MiniGame) strategy() types.ResolutionType {
	if e.Questions != nil {
		return types.KnowledgeContestResolution
	}
	return types.MiniGameResolution
}

// Resolve implements Executor.
func (e *MiniGame) Resolve(ctx context.Context, c *types.Conflict) (*types.ResolutionResult, error) {
	if len(c.Teams) == 0 {
		return nil, fmt.Errorf("conflict %s has no teams", c.ID)
	}

	session := &types.GameSession{
		ID:         uuid.NewString(),
		ConflictID: c.ID,
		GameType:   string(e.strategy()),
		StartTime:  time.Now(),
	}
	teamIDs := make([]string, len(c.Teams))
	for i, team := range c.Teams {
		teamIDs[i] = team.ID
		session.Participants = append(session.Participants, &types.SessionParticipant{TeamID: team.ID})
	}

	e.Hub.Open(session.ID, teamIDs)
	defer e.Hub.Close(session.ID)

	for _, team := range c.Teams {
		_ = e.Notifier.Notify(team.ID, map[string]any{
			"type":        "conflict_invitation",
			"conflict_id": c.ID,
			"session_id":  session.ID,
			"game_type":   session.GameType,
			"deadline_ms": e.Deadline.Milliseconds(),
		})
	}

	deadline := time.NewTimer(e.Deadline)
	defer deadline.Stop()

	select {
	case <-e.Hub.AllReady(session.ID):
		return e.playRound(ctx, c, session)
	case <-deadline.C:
		e.Logger.Info("session %s: accept deadline elapsed, falling back to random assignment", session.ID)
		return e.Fallback.resolveWithReason(c, "timeout")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// playRound runs the scored phase and picks the winner. The highest score
// wins; equal top scores go to the earlier team in the conflict's order.
// Location reports received during the round are carried in the result
// payload as each team's last known position.
func (e *MiniGame) playRound(ctx context.Context, c *types.Conflict, session *types.GameSession) (*types.ResolutionResult, error) {
	timer := time.NewTimer(e.Duration)
	defer timer.Stop()
	locations := e.Hub.Locations(session.ID)
	positions := make(map[string]types.Position)
	for running := true; running; {
		select {
		case upd := <-locations:
			positions[upd.TeamID] = upd.Position
		case <-timer.C:
			running = false
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	scores, err := e.score(ctx, c, session)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	session.EndTime = &now

	winner := c.Teams[0]
	best := scores[winner.ID]
	for _, team := range c.Teams[1:] {
		if scores[team.ID] > best {
			best = scores[team.ID]
			winner = team
		}
	}

	payload := map[string]any{"session_id": session.ID}
	if len(positions) > 0 {
		payload["last_positions"] = positions
	}
	result := &types.ResolutionResult{
		Strategy: e.strategy(),
		Winner:   &winner,
		Scores:   scores,
		Payload:  payload,
	}
	notifyOutcome(e.Notifier, c, result)
	return result, nil
}

// score produces the per-team round scores. Mini-games roll an arbitrary
// game score; contests count correctly answered questions.
func (e *MiniGame) score(ctx context.Context, c *types.Conflict, session *types.GameSession) (map[string]int, error) {
	scores := make(map[string]int, len(c.Teams))

	if e.Questions == nil {
		for _, team := range c.Teams {
			scores[team.ID] = e.Rand.Intn(100)
		}
	} else {
		qs, err := e.Questions.Questions(ctx, string(c.Type), contestQuestions)
		if err != nil {
			return nil, fmt.Errorf("fetch contest questions: %w", err)
		}
		for _, team := range c.Teams {
			correct := 0
			for _, q := range qs {
				if e.Rand.Intn(len(q.Options)) == q.Answer {
					correct++
				}
			}
			scores[team.ID] = correct
		}
	}

	for _, team := range c.Teams {
		if p := session.Participant(team.ID); p != nil {
			p.Ready = true
			p.Score = scores[team.ID]
		}
	}
	return scores, nil
}
