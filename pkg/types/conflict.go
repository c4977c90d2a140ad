package types

import (
	"time"
)

// ConflictType represents the kind of contention detected between teams
type ConflictType string

const (
	// TreasureConflict occurs when multiple teams converge on the same treasure
	TreasureConflict ConflictType = "treasure"
	// ResourceConflict occurs when multiple teams compete for a shared resource
	ResourceConflict ConflictType = "resource"
	// TerritoryConflict occurs when teams contest a zone of the maze
	TerritoryConflict ConflictType = "territory"
	// PathConflict occurs when two teams head toward each other on a shared path
	PathConflict ConflictType = "path"
)

// ConflictStatus represents the lifecycle state of a conflict
type ConflictStatus string

const (
	// StatusPending means the conflict is detected but resolution has not started
	StatusPending ConflictStatus = "pending"
	// StatusResolving means an executor currently owns the conflict
	StatusResolving ConflictStatus = "resolving"
	// StatusResolved means a strategy produced an outcome
	StatusResolved ConflictStatus = "resolved"
	// StatusAbandoned means the conflict was cancelled externally
	StatusAbandoned ConflictStatus = "abandoned"
)

// Active reports whether the status is non-terminal.
func (s ConflictStatus) Active() bool {
	return s == StatusPending || s == StatusResolving
}

// ResolutionType identifies the strategy used to settle a conflict
type ResolutionType string

const (
	// FirstComeResolution awards the target to the earliest arriving team
	FirstComeResolution ResolutionType = "first_come"
	// MiniGameResolution settles the conflict with a timed scored game
	MiniGameResolution ResolutionType = "mini_game"
	// KnowledgeContestResolution settles the conflict with a question contest
	KnowledgeContestResolution ResolutionType = "knowledge_contest"
	// ResourceSplitResolution divides the resource equally between teams
	ResourceSplitResolution ResolutionType = "resource_split"
	// CollaborativeTaskResolution has all teams complete a joint objective
	CollaborativeTaskResolution ResolutionType = "collaborative_task"
	// RandomAssignmentResolution picks a winner uniformly at random
	RandomAssignmentResolution ResolutionType = "random_assignment"
	// PathRedirectResolution reroutes both teams around each other
	PathRedirectResolution ResolutionType = "path_redirect"
)

// LogEntry is a single timestamped audit record on a conflict
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Conflict represents a detected contention between teams over a shared target
type Conflict struct {
	ID         string
	Type       ConflictType
	Teams      []TeamSnapshot
	TargetID   string
	Status     ConflictStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time
	Resolution ResolutionType
	Winner     *TeamSnapshot
	Metadata   map[string]any
	Log        []LogEntry
}

// AppendLog adds an audit entry to the conflict's trail.
func (c *Conflict) AppendLog(message string) {
	c.Log = append(c.Log, LogEntry{Timestamp: time.Now(), Message: message})
}

// Involves reports whether the team participates in this conflict.
func (c *Conflict) Involves(teamID string) bool {
	for _, t := range c.Teams {
		if t.ID == teamID {
			return true
		}
	}
	return false
}

// TeamShare is one team's portion of a split resource
type TeamShare struct {
	TeamID string
	Share  float64
}

// PathRedirect carries the alternate route computed for one team
type PathRedirect struct {
	TeamID  string
	NewPath []Position
}

// ResolutionResult is the outcome produced by a strategy executor
type ResolutionResult struct {
	Strategy ResolutionType
	Winner   *TeamSnapshot
	NoWinner bool
	// Reason annotates non-default outcomes, e.g. "timeout" when a
	// waiting strategy fell back to random assignment.
	Reason    string
	Shares    []TeamShare
	Redirects []PathRedirect
	Scores    map[string]int
	Payload   map[string]any
}
