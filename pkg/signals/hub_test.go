package signals

import (
	"testing"
	"time"

	"github.com/huntgame/conflict-engine/pkg/types"
)

func TestAllReadyFiresWhenEveryTeamSignals(t *testing.T) {
	h := NewHub()
	h.Open("s1", []string{"a", "b", "c"})

	ready := h.AllReady("s1")
	h.Ready("s1", "a")
	h.Ready("s1", "b")

	select {
	case <-ready:
		t.Fatal("all-ready fired before every team signalled")
	default:
	}

	h.Ready("s1", "c")
	select {
	case <-ready:
	case <-time.After(time.Second):
		t.Fatal("all-ready did not fire")
	}
}

func TestReadyIsIdempotentPerTeam(t *testing.T) {
	h := NewHub()
	h.Open("s1", []string{"a", "b"})

	h.Ready("s1", "a")
	h.Ready("s1", "a")
	h.Ready("s1", "a")

	select {
	case <-h.AllReady("s1"):
		t.Fatal("repeated signals from one team must not complete the session")
	default:
	}
}

func TestSignalsForUnknownTeamAreIgnored(t *testing.T) {
	h := NewHub()
	h.Open("s1", []string{"a"})

	h.Ready("s1", "stranger")
	select {
	case <-h.AllReady("s1"):
		t.Fatal("a non-participant must not complete the session")
	default:
	}

	h.Ready("s1", "a")
	select {
	case <-h.AllReady("s1"):
	case <-time.After(time.Second):
		t.Fatal("participant signal should complete the session")
	}
}

func TestClosedSessionDiscardsSignals(t *testing.T) {
	h := NewHub()
	h.Open("s1", []string{"a"})
	h.Close("s1")

	// None of these may panic or block.
	h.Ready("s1", "a")
	h.Ready("never-opened", "a")
	h.UpdateLocation("s1", "a", types.Position{X: 1, Y: 2})
}

func TestLocationUpdatesReachTheSession(t *testing.T) {
	h := NewHub()
	h.Open("s1", []string{"a"})

	h.UpdateLocation("s1", "a", types.Position{X: 3, Y: 4})

	select {
	case upd := <-h.Locations("s1"):
		if upd.TeamID != "a" || upd.Position.X != 3 || upd.Position.Y != 4 {
			t.Errorf("unexpected update: %+v", upd)
		}
	case <-time.After(time.Second):
		t.Fatal("location update not delivered")
	}
}

func TestLocationMailboxDropsWhenFull(t *testing.T) {
	h := NewHub()
	h.Open("s1", []string{"a"})

	// Overfill the mailbox; the surplus must drop, not block.
	for i := 0; i < 100; i++ {
		h.UpdateLocation("s1", "a", types.Position{X: float64(i)})
	}
}
