package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/huntgame/conflict-engine/pkg/types"
)

func newConflict(id, target string, teamIDs ...string) *types.Conflict {
	teams := make([]types.TeamSnapshot, len(teamIDs))
	for i, tid := range teamIDs {
		teams[i] = types.TeamSnapshot{ID: tid}
	}
	return &types.Conflict{
		ID:        id,
		Type:      types.TreasureConflict,
		Teams:     teams,
		TargetID:  target,
		Status:    types.StatusPending,
		CreatedAt: time.Now(),
	}
}

func TestRegisterDuplicateTarget(t *testing.T) {
	r := New(10)

	if !r.Register(newConflict("c1", "chest-1", "a", "b")) {
		t.Fatal("first registration should succeed")
	}
	if r.Register(newConflict("c2", "chest-1", "a", "c")) {
		t.Fatal("second registration for the same target should be rejected")
	}
	if !r.ActiveTarget("chest-1") {
		t.Error("target should be reported active")
	}
	if len(r.Active()) != 1 {
		t.Errorf("want 1 active conflict, got %d", len(r.Active()))
	}
}

func TestLifecycleTransitions(t *testing.T) {
	r := New(10)
	r.Register(newConflict("c1", "chest-1", "a", "b"))

	c, err := r.Begin("c1")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if c.Status != types.StatusResolving {
		t.Fatalf("want resolving, got %s", c.Status)
	}

	result := &types.ResolutionResult{
		Strategy: types.FirstComeResolution,
		Winner:   &types.TeamSnapshot{ID: "a"},
	}
	terminal, ok := r.Complete("c1", result)
	if !ok {
		t.Fatal("Complete should succeed for a resolving conflict")
	}
	if terminal.Status != types.StatusResolved {
		t.Errorf("want resolved, got %s", terminal.Status)
	}
	if terminal.ResolvedAt == nil {
		t.Error("ResolvedAt should be stamped")
	}
	if terminal.Resolution != types.FirstComeResolution {
		t.Errorf("want first_come, got %s", terminal.Resolution)
	}
	if terminal.Winner == nil || terminal.Winner.ID != "a" {
		t.Error("winner should be team a")
	}

	if _, err := r.Get("c1"); !errors.Is(err, ErrConflictNotFound) {
		t.Error("terminal conflict should leave the active map")
	}
	if got := len(r.History(0)); got != 1 {
		t.Errorf("want 1 history entry, got %d", got)
	}
	if r.ActiveTarget("chest-1") {
		t.Error("target should be free again after resolution")
	}
}

func TestBeginErrors(t *testing.T) {
	r := New(10)
	r.Register(newConflict("c1", "chest-1", "a", "b"))

	if _, err := r.Begin("missing"); !errors.Is(err, ErrConflictNotFound) {
		t.Errorf("want ErrConflictNotFound, got %v", err)
	}

	if _, err := r.Begin("c1"); err != nil {
		t.Fatalf("first Begin: %v", err)
	}
	_, err := r.Begin("c1")
	var ise *InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("want InvalidStateError, got %v", err)
	}
	if ise.Status != types.StatusResolving {
		t.Errorf("error should carry the resolving status, got %s", ise.Status)
	}
}

func TestConcurrentBeginOnlyOneWins(t *testing.T) {
	r := New(10)
	r.Register(newConflict("c1", "chest-1", "a", "b"))

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.Begin("c1")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var ise *InvalidStateError
		if !errors.As(err, &ise) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("exactly one Begin should succeed, got %d", succeeded)
	}
}

func TestAbandonDiscardsLateCompletion(t *testing.T) {
	r := New(10)
	r.Register(newConflict("c1", "chest-1", "a", "b"))

	if _, err := r.Begin("c1"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	abandoned, err := r.Abandon("c1")
	if err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if abandoned.Status != types.StatusAbandoned {
		t.Fatalf("want abandoned, got %s", abandoned.Status)
	}

	// The executor finishes later; its outcome must not overwrite the
	// terminal record.
	result := &types.ResolutionResult{Strategy: types.MiniGameResolution, Winner: &types.TeamSnapshot{ID: "a"}}
	if _, ok := r.Complete("c1", result); ok {
		t.Fatal("late Complete should be discarded")
	}

	hist := r.History(1)
	if len(hist) != 1 {
		t.Fatalf("want 1 history entry, got %d", len(hist))
	}
	if hist[0].Status != types.StatusAbandoned {
		t.Errorf("history record should stay abandoned, got %s", hist[0].Status)
	}
	if hist[0].Winner != nil {
		t.Error("abandoned conflict should have no winner")
	}
}

func TestAbandonFromPending(t *testing.T) {
	r := New(10)
	r.Register(newConflict("c1", "chest-1", "a", "b"))

	if _, err := r.Abandon("c1"); err != nil {
		t.Fatalf("Abandon from pending: %v", err)
	}
	if _, err := r.Abandon("c1"); !errors.Is(err, ErrConflictNotFound) {
		t.Errorf("second Abandon should miss, got %v", err)
	}
}

func TestLogAppendsToActiveConflict(t *testing.T) {
	r := New(10)
	r.Register(newConflict("c1", "chest-1", "a", "b"))

	r.Log("c1", "strategy selected: first_come")
	r.Log("missing", "dropped")

	c, err := r.Get("c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	last := c.Log[len(c.Log)-1]
	if last.Message != "strategy selected: first_come" {
		t.Errorf("log entry should land on the conflict, got %q", last.Message)
	}
}

func TestLogRacesAbandonSafely(t *testing.T) {
	r := New(10)
	r.Register(newConflict("c1", "chest-1", "a", "b"))
	if _, err := r.Begin("c1"); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	// A resolving conflict's holder logs while an operator abandons it;
	// both writes go through the registry lock.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			r.Log("c1", "strategy selected: mini_game")
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := r.Abandon("c1"); err != nil {
			t.Errorf("Abandon: %v", err)
		}
	}()
	wg.Wait()

	hist := r.History(1)
	if len(hist) != 1 || hist[0].Status != types.StatusAbandoned {
		t.Fatalf("conflict should end abandoned, got %+v", hist)
	}
	// Once terminal, late log writes are discarded, so the abandonment
	// entry stays last.
	last := hist[0].Log[len(hist[0].Log)-1]
	if last.Message != "conflict abandoned" {
		t.Errorf("terminal record should end with the abandonment entry, got %q", last.Message)
	}
}

func TestFailKeepsConflictResolving(t *testing.T) {
	r := New(10)
	r.Register(newConflict("c1", "chest-1", "a", "b"))

	if _, err := r.Begin("c1"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	r.Fail("c1", errors.New("boom"))

	c, err := r.Get("c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.Status != types.StatusResolving {
		t.Errorf("failed conflict should stay resolving, got %s", c.Status)
	}
	last := c.Log[len(c.Log)-1]
	if last.Message != "executor failed: boom" {
		t.Errorf("failure should be logged, got %q", last.Message)
	}
}

func TestHistoryFIFOEviction(t *testing.T) {
	const limit = 5
	r := New(limit)

	for i := 0; i < limit+3; i++ {
		id := fmt.Sprintf("c%d", i)
		r.Register(newConflict(id, fmt.Sprintf("chest-%d", i), "a", "b"))
		if _, err := r.Abandon(id); err != nil {
			t.Fatalf("Abandon %s: %v", id, err)
		}
	}

	hist := r.History(0)
	if len(hist) != limit {
		t.Fatalf("history should cap at %d, got %d", limit, len(hist))
	}
	// Most recent first; the oldest surviving entry is c3.
	if hist[0].ID != "c7" {
		t.Errorf("newest entry should be c7, got %s", hist[0].ID)
	}
	if hist[limit-1].ID != "c3" {
		t.Errorf("oldest surviving entry should be c3, got %s", hist[limit-1].ID)
	}
}

func TestTeamQueries(t *testing.T) {
	r := New(10)
	r.Register(newConflict("c1", "chest-1", "a", "b"))
	r.Register(newConflict("c2", "chest-2", "b", "c"))
	r.Register(newConflict("c3", "chest-3", "c", "d"))

	if got := len(r.ActiveForTeam("b")); got != 2 {
		t.Errorf("team b should be in 2 active conflicts, got %d", got)
	}
	if got := len(r.ActiveForTeam("x")); got != 0 {
		t.Errorf("unknown team should have no conflicts, got %d", got)
	}

	r.Abandon("c2")
	if got := len(r.HistoryForTeam("b")); got != 1 {
		t.Errorf("team b should have 1 historical conflict, got %d", got)
	}
}
