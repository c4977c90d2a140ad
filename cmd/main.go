package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/huntgame/conflict-engine/pkg/archive"
	"github.com/huntgame/conflict-engine/pkg/config"
	"github.com/huntgame/conflict-engine/pkg/engine"
	"github.com/huntgame/conflict-engine/pkg/types"
)

func main() {
	ctx := context.Background()

	// Initialize logger with debug level
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting conflict engine demo")

	// .env is optional; environment wins either way
	_ = godotenv.Load()

	cfg := config.Default()
	if path := os.Getenv("CONFLICT_CONFIG"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			logger.Error("Failed to load config", "path", path, "error", err)
			os.Exit(1)
		}
		logger.Info("Policy config loaded", "path", path)
	}
	// Shorten the interactive waits so the demo finishes quickly.
	cfg.AcceptDeadline = 2 * time.Second
	cfg.GameDuration = time.Second
	cfg.CollabDuration = time.Second

	deps := engine.Deps{Logger: logger}
	if cfg.ArchivePath != "" {
		store, err := archive.NewStore(cfg.ArchivePath)
		if err != nil {
			logger.Error("Failed to open archive", "path", cfg.ArchivePath, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		deps.Archive = store
	}

	eng := engine.New(cfg, deps)

	events := eng.Events().Subscribe()
	go func() {
		for ev := range events {
			logger.Debug("engine event", "kind", string(ev.Kind), "conflict_id", ev.Conflict.ID)
		}
	}()

	// Two teams converging on the same treasure, two more heading at each
	// other on a shared path.
	arrivedRed := time.Now().Add(-30 * time.Second)
	arrivedBlue := time.Now().Add(-10 * time.Second)
	teams := []types.TeamSnapshot{
		{ID: "team-red", Name: "Red", MemberCount: 4, Position: types.Position{X: 10, Y: 10}, Heading: 90, ArrivedAt: &arrivedRed},
		{ID: "team-blue", Name: "Blue", MemberCount: 3, Position: types.Position{X: 12, Y: 11}, Heading: 45, ArrivedAt: &arrivedBlue},
		{ID: "team-green", Name: "Green", MemberCount: 5, Position: types.Position{X: 40, Y: 40}, Heading: 0,
			CurrentPath: []types.Position{{X: 40, Y: 40}, {X: 45, Y: 40}}},
		{ID: "team-gold", Name: "Gold", MemberCount: 2, Position: types.Position{X: 46, Y: 41}, Heading: 180,
			CurrentPath: []types.Position{{X: 46, Y: 41}, {X: 41, Y: 41}}},
	}
	treasures := []types.Treasure{{ID: "chest-1", Position: types.Position{X: 11, Y: 10}}}
	resources := []types.Resource{{ID: "spring-1", Position: types.Position{X: 80, Y: 80}, Splittable: true}}

	conflicts := eng.DetectConflicts(teams, treasures, resources)
	logger.Info("Detection pass complete", "new_conflicts", len(conflicts))

	for _, c := range conflicts {
		result, err := eng.ResolveConflict(ctx, c.ID)
		if err != nil {
			logger.Error("Resolution failed", "conflict_id", c.ID, "error", err)
			continue
		}
		if result.Winner != nil {
			logger.Info("Outcome", "conflict_id", c.ID, "strategy", string(result.Strategy), "winner", result.Winner.Name)
		} else {
			logger.Info("Outcome", "conflict_id", c.ID, "strategy", string(result.Strategy), "no_winner", true)
		}
	}

	stats := eng.Stats()
	logger.Info("Engine stats",
		"resolutions", stats.Resolutions,
		"abandoned", stats.Abandoned,
		"fallbacks", stats.Fallbacks,
		"avg_latency", stats.AvgLatency.String())
}
