package strategy

import (
	"time"

	"github.com/huntgame/conflict-engine/pkg/notify"
	"github.com/huntgame/conflict-engine/pkg/questions"
	"github.com/huntgame/conflict-engine/pkg/signals"
	"github.com/huntgame/conflict-engine/pkg/types"
	"github.com/huntgame/conflict-engine/pkg/utils"
)

// Deps carries the collaborators the default executors need.
type Deps struct {
	Notifier   notify.Notifier
	Hub        *signals.Hub
	Questions  questions.Provider
	Pathfinder Pathfinder
	Logger     *utils.Logger

	AcceptDeadline time.Duration
	GameDuration   time.Duration
	CollabDuration time.Duration

	// Seed drives the random-assignment and scoring RNG; zero means
	// time-based seeding.
	Seed int64
}

func (d *Deps) fill() {
	if d.Logger == nil {
		d.Logger = utils.NewLogger(false)
	}
	if d.Hub == nil {
		d.Hub = signals.NewHub()
	}
	if d.Questions == nil {
		d.Questions = questions.NewStaticBank(nil, d.Seed)
	}
	if d.Pathfinder == nil {
		d.Pathfinder = SidestepPathfinder{Offset: 1}
	}
	if d.AcceptDeadline <= 0 {
		d.AcceptDeadline = 60 * time.Second
	}
	if d.GameDuration <= 0 {
		d.GameDuration = 30 * time.Second
	}
	if d.CollabDuration <= 0 {
		d.CollabDuration = 30 * time.Second
	}
	if d.Seed == 0 {
		d.Seed = time.Now().UnixNano()
	}
}

// DefaultCatalog wires the engine's policy table:
//
//	treasure:  first-come (<=3 teams), mini-game (<=5), knowledge contest
//	resource:  split (splittable), collaborative task (collaborative), random
//	territory: first-come
//	path:      path redirection
func DefaultCatalog(deps Deps) *Catalog {
	deps.fill()

	rng := newLockedRand(deps.Seed)
	random := &RandomAssignment{Notifier: deps.Notifier, Rand: rng}
	firstCome := &FirstCome{Notifier: deps.Notifier}
	miniGame := &MiniGame{
		Notifier: deps.Notifier,
		Hub:      deps.Hub,
		Rand:     rng,
		Fallback: random,
		Logger:   deps.Logger,
		Deadline: deps.AcceptDeadline,
		Duration: deps.GameDuration,
	}
	contest := &MiniGame{
		Notifier:  deps.Notifier,
		Hub:       deps.Hub,
		Rand:      rng,
		Fallback:  random,
		Logger:    deps.Logger,
		Deadline:  deps.AcceptDeadline,
		Duration:  deps.GameDuration,
		Questions: deps.Questions,
	}

	return NewCatalog(map[types.ConflictType][]Entry{
		types.TreasureConflict: {
			{Name: types.FirstComeResolution, Priority: 1, Eligible: maxTeams(3), Exec: firstCome},
			{Name: types.MiniGameResolution, Priority: 2, Eligible: maxTeams(5), Exec: miniGame},
			{Name: types.KnowledgeContestResolution, Priority: 3, Eligible: always, Exec: contest},
		},
		types.ResourceConflict: {
			{Name: types.ResourceSplitResolution, Priority: 1, Eligible: resourceSplittable, Exec: &ResourceSplit{Notifier: deps.Notifier}},
			{Name: types.CollaborativeTaskResolution, Priority: 2, Eligible: resourceCollaborative, Exec: &CollaborativeTask{Notifier: deps.Notifier, Duration: deps.CollabDuration}},
			{Name: types.RandomAssignmentResolution, Priority: 3, Eligible: always, Exec: random},
		},
		types.TerritoryConflict: {
			{Name: types.FirstComeResolution, Priority: 1, Eligible: always, Exec: firstCome},
		},
		types.PathConflict: {
			{Name: types.PathRedirectResolution, Priority: 1, Eligible: always, Exec: &PathRedirection{Notifier: deps.Notifier, Pathfinder: deps.Pathfinder}},
		},
	})
}
