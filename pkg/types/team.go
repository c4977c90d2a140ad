package types

import (
	"time"
)

// Position is a point on the maze grid
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TeamSnapshot is an immutable copy of a team's state taken at detection
// time. Conflicts hold snapshots, not live team references, so resolution
// outcomes stay consistent even while teams keep moving.
type TeamSnapshot struct {
	ID          string
	Name        string
	MemberCount int
	Position    Position
	Heading     float64
	ArrivedAt   *time.Time
	CurrentPath []Position
}

// Treasure is a contested collectible on the grid
type Treasure struct {
	ID       string
	Position Position
}

// Resource is a shared consumable on the grid. Splittable resources can be
// divided between teams; collaborative ones require a joint task.
type Resource struct {
	ID            string
	Position      Position
	Splittable    bool
	Collaborative bool
}
