// Package engine wires the conflict subsystem together behind one
// constructed service: detection, the registry state machine, strategy
// selection and execution, notifications, metrics and the durable archive.
// The surrounding game service holds a single Engine instance and passes
// it to its transport layer.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/huntgame/conflict-engine/pkg/archive"
	"github.com/huntgame/conflict-engine/pkg/config"
	"github.com/huntgame/conflict-engine/pkg/detector"
	"github.com/huntgame/conflict-engine/pkg/monitoring"
	"github.com/huntgame/conflict-engine/pkg/notify"
	"github.com/huntgame/conflict-engine/pkg/registry"
	"github.com/huntgame/conflict-engine/pkg/signals"
	"github.com/huntgame/conflict-engine/pkg/strategy"
	"github.com/huntgame/conflict-engine/pkg/types"
)

// Deps are the engine's collaborators. Nil fields get working defaults so
// tests can inject only what they fake.
type Deps struct {
	Registry   *registry.Registry
	Catalog    *strategy.Catalog
	Hub        *signals.Hub
	Notifier   notify.Notifier
	Events     *notify.Events
	Monitor    *monitoring.Monitor
	Archive    *archive.Store
	Pathfinder strategy.Pathfinder
	Logger     *slog.Logger

	// Seed drives the engine's RNG; zero seeds from the clock.
	Seed int64
}

// Engine is the conflict resolution service.
type Engine struct {
	cfg      config.Config
	registry *registry.Registry
	detector *detector.Detector
	catalog  *strategy.Catalog
	hub      *signals.Hub
	notifier notify.Notifier
	events   *notify.Events
	monitor  *monitoring.Monitor
	archive  *archive.Store
	logger   *slog.Logger
}

// New constructs an engine from the policy config and collaborators.
func New(cfg config.Config, deps Deps) *Engine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Registry == nil {
		deps.Registry = registry.New(cfg.HistoryLimit)
	}
	if deps.Hub == nil {
		deps.Hub = signals.NewHub()
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.NewChanNotifier(nil)
	}
	if deps.Events == nil {
		deps.Events = notify.NewEvents()
	}
	if deps.Monitor == nil {
		deps.Monitor = monitoring.NewMonitor()
	}
	if deps.Catalog == nil {
		deps.Catalog = strategy.DefaultCatalog(strategy.Deps{
			Notifier:       deps.Notifier,
			Hub:            deps.Hub,
			Pathfinder:     deps.Pathfinder,
			AcceptDeadline: cfg.AcceptDeadline,
			GameDuration:   cfg.GameDuration,
			CollabDuration: cfg.CollabDuration,
			Seed:           deps.Seed,
		})
	}

	return &Engine{
		cfg:      cfg,
		registry: deps.Registry,
		detector: detector.New(deps.Registry, cfg.TreasureRadius, cfg.ResourceRadius, cfg.PathRadius, cfg.HeadingOpposition),
		catalog:  deps.Catalog,
		hub:      deps.Hub,
		notifier: deps.Notifier,
		events:   deps.Events,
		monitor:  deps.Monitor,
		archive:  deps.Archive,
		logger:   deps.Logger,
	}
}

// DetectConflicts evaluates the detection rules against the current game
// state and returns the newly registered conflicts. Targets with an
// active conflict are skipped silently.
func (e *Engine) DetectConflicts(teams []types.TeamSnapshot, treasures []types.Treasure, resources []types.Resource) []*types.Conflict {
	created := e.detector.Detect(teams, treasures, resources)
	for _, c := range created {
		e.monitor.RecordDetection(c.Type)
		e.events.Publish(notify.EventDetected, c)
		e.logger.Info("conflict detected",
			"conflict_id", c.ID, "type", string(c.Type), "target", c.TargetID, "teams", len(c.Teams))
	}
	return created
}

// ResolveConflict drives one conflict to a resolved outcome. It claims
// the conflict (pending to resolving, atomic against concurrent calls),
// selects the first eligible strategy and runs its executor, which may
// wait on team signals or timers. On executor failure the conflict stays
// resolving with the failure logged so an operator can retry or abandon.
func (e *Engine) ResolveConflict(ctx context.Context, conflictID string) (*types.ResolutionResult, error) {
	c, err := e.registry.Begin(conflictID)
	if err != nil {
		return nil, err
	}

	entry, err := e.catalog.Select(c)
	if err != nil {
		e.registry.Fail(conflictID, err)
		return nil, err
	}
	e.registry.Log(conflictID, "strategy selected: "+string(entry.Name))

	result, err := entry.Exec.Resolve(ctx, c)
	if err != nil {
		e.registry.Fail(conflictID, err)
		e.monitor.RecordFailure()
		return nil, &registry.ExecutorError{Strategy: entry.Name, Err: err}
	}

	terminal, ok := e.registry.Complete(conflictID, result)
	if !ok {
		// The conflict went terminal while the executor waited
		// (abandoned); its late outcome is discarded.
		e.logger.Info("discarding late resolution for terminal conflict", "conflict_id", conflictID)
		return result, nil
	}

	e.monitor.RecordResolution(result, terminal.ResolvedAt.Sub(terminal.CreatedAt))
	e.archiveTerminal(ctx, terminal)
	e.events.Publish(notify.EventResolved, terminal)
	e.logger.Info("conflict resolved",
		"conflict_id", conflictID, "strategy", string(result.Strategy), "no_winner", result.NoWinner)
	return result, nil
}

// AbandonConflict cancels any active conflict. A still-running executor
// keeps waiting, but its eventual completion is discarded.
func (e *Engine) AbandonConflict(conflictID string) (*types.Conflict, error) {
	c, err := e.registry.Abandon(conflictID)
	if err != nil {
		return nil, err
	}

	e.monitor.RecordAbandonment()
	e.archiveTerminal(context.Background(), c)
	e.events.Publish(notify.EventAbandoned, c)
	e.logger.Info("conflict abandoned", "conflict_id", conflictID)
	return c, nil
}

// archiveTerminal writes a terminal conflict to the durable archive.
// Failures are logged only; losing a durable row never fails the
// resolution that produced it.
func (e *Engine) archiveTerminal(ctx context.Context, c *types.Conflict) {
	if e.archive == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := e.archive.Save(saveCtx, c); err != nil {
		e.logger.Error("failed to archive conflict", "conflict_id", c.ID, "error", err)
	}
}

// ActiveConflict returns one active conflict by id.
func (e *Engine) ActiveConflict(conflictID string) (*types.Conflict, error) {
	return e.registry.Get(conflictID)
}

// ActiveConflicts lists all pending and resolving conflicts.
func (e *Engine) ActiveConflicts() []*types.Conflict {
	return e.registry.Active()
}

// TeamConflicts lists active conflicts involving the team.
func (e *Engine) TeamConflicts(teamID string) []*types.Conflict {
	return e.registry.ActiveForTeam(teamID)
}

// ResolvedHistory lists up to limit terminal conflicts, most recent first.
func (e *Engine) ResolvedHistory(limit int) []*types.Conflict {
	return e.registry.History(limit)
}

// TeamHistory lists terminal conflicts involving the team.
func (e *Engine) TeamHistory(teamID string) []*types.Conflict {
	return e.registry.HistoryForTeam(teamID)
}

// TeamReady forwards a team's acceptance of a game session invitation to
// the waiting executor. Signals for finished sessions are discarded.
func (e *Engine) TeamReady(sessionID, teamID string) {
	e.hub.Ready(sessionID, teamID)
}

// TeamLocation forwards a team position report scoped to a game session.
func (e *Engine) TeamLocation(sessionID, teamID string, pos types.Position) {
	e.hub.UpdateLocation(sessionID, teamID, pos)
}

// Events exposes the engine lifecycle event stream.
func (e *Engine) Events() *notify.Events {
	return e.events
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() monitoring.Stats {
	return e.monitor.Snapshot()
}
