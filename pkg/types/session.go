package types

import (
	"time"
)

// SessionParticipant tracks one team's readiness and score inside a game
// session.
type SessionParticipant struct {
	TeamID string
	Ready  bool
	Score  int
}

// GameSession is the ephemeral state of an interactive resolution
// (mini-game or knowledge contest). It is created and discarded entirely
// within one executor invocation.
type GameSession struct {
	ID           string
	ConflictID   string
	GameType     string
	Participants []*SessionParticipant
	StartTime    time.Time
	EndTime      *time.Time
}

// Participant returns the entry for a team, or nil if the team is not part
// of the session.
func (s *GameSession) Participant(teamID string) *SessionParticipant {
	for _, p := range s.Participants {
		if p.TeamID == teamID {
			return p
		}
	}
	return nil
}
