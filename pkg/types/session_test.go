package types

import (
	"testing"
)

func TestGameSessionParticipant(t *testing.T) {
	s := &GameSession{
		Participants: []*SessionParticipant{
			{TeamID: "a"},
			{TeamID: "b"},
		},
	}

	p := s.Participant("b")
	if p == nil || p.TeamID != "b" {
		t.Fatalf("want participant b, got %+v", p)
	}
	p.Score = 3
	if s.Participants[1].Score != 3 {
		t.Error("Participant should return the live entry, not a copy")
	}

	if s.Participant("ghost") != nil {
		t.Error("unknown team should yield nil")
	}
}
