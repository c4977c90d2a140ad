// Package config holds the tunable policy values of the conflict engine:
// detection radii, heading band, waiting-strategy deadlines and the history
// cap. Values load from YAML over defaults so deployments can tighten or
// relax the rules without a rebuild.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries the engine policy values.
type Config struct {
	// Detection radii in grid distance units.
	TreasureRadius float64
	ResourceRadius float64
	PathRadius     float64

	// Teams whose heading separation falls at or above this value (degrees,
	// normalized to [0,180]) count as travelling toward each other.
	HeadingOpposition float64

	// AcceptDeadline is how long interactive strategies wait for every team
	// to signal ready before falling back to random assignment.
	AcceptDeadline time.Duration
	// GameDuration is the fixed length of a scored mini-game round.
	GameDuration time.Duration
	// CollabDuration is the fixed length of a collaborative task.
	CollabDuration time.Duration

	// HistoryLimit caps the in-memory archive of terminal conflicts.
	HistoryLimit int

	// ArchivePath is the SQLite file for durable conflict records; empty
	// disables persistence.
	ArchivePath string
}

// rawConfig is the YAML shape; durations are strings like "30s" so the
// file stays readable.
type rawConfig struct {
	TreasureRadius    float64 `yaml:"treasure_radius"`
	ResourceRadius    float64 `yaml:"resource_radius"`
	PathRadius        float64 `yaml:"path_radius"`
	HeadingOpposition float64 `yaml:"heading_opposition"`
	AcceptDeadline    string  `yaml:"accept_deadline"`
	GameDuration      string  `yaml:"game_duration"`
	CollabDuration    string  `yaml:"collab_duration"`
	HistoryLimit      int     `yaml:"history_limit"`
	ArchivePath       string  `yaml:"archive_path"`
}

// Default returns the engine's built-in policy.
func Default() Config {
	return Config{
		TreasureRadius:    5,
		ResourceRadius:    3,
		PathRadius:        10,
		HeadingOpposition: 150,
		AcceptDeadline:    60 * time.Second,
		GameDuration:      30 * time.Second,
		CollabDuration:    30 * time.Second,
		HistoryLimit:      1000,
	}
}

// Load reads a YAML policy file and merges it over the defaults. Absent
// or zero fields keep their default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.merge(raw); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) merge(raw rawConfig) error {
	if raw.TreasureRadius > 0 {
		c.TreasureRadius = raw.TreasureRadius
	}
	if raw.ResourceRadius > 0 {
		c.ResourceRadius = raw.ResourceRadius
	}
	if raw.PathRadius > 0 {
		c.PathRadius = raw.PathRadius
	}
	if raw.HeadingOpposition > 0 {
		c.HeadingOpposition = raw.HeadingOpposition
	}
	if raw.HistoryLimit > 0 {
		c.HistoryLimit = raw.HistoryLimit
	}
	if raw.ArchivePath != "" {
		c.ArchivePath = raw.ArchivePath
	}

	for _, d := range []struct {
		field string
		value string
		dst   *time.Duration
	}{
		{"accept_deadline", raw.AcceptDeadline, &c.AcceptDeadline},
		{"game_duration", raw.GameDuration, &c.GameDuration},
		{"collab_duration", raw.CollabDuration, &c.CollabDuration},
	} {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.field, err)
		}
		*d.dst = parsed
	}
	return nil
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.TreasureRadius <= 0 || c.ResourceRadius <= 0 || c.PathRadius <= 0 {
		return fmt.Errorf("detection radii must be positive")
	}
	if c.HeadingOpposition <= 0 || c.HeadingOpposition > 180 {
		return fmt.Errorf("heading opposition must be in (0, 180]")
	}
	if c.AcceptDeadline <= 0 || c.GameDuration <= 0 || c.CollabDuration <= 0 {
		return fmt.Errorf("strategy durations must be positive")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be positive")
	}
	return nil
}
