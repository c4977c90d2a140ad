// Package archive persists terminal conflicts to SQLite so the audit
// trail survives the in-memory history cap and process restarts. Writes
// are best effort; the engine logs archive failures and keeps going.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/huntgame/conflict-engine/pkg/types"
)

// Store is a SQLite-backed archive of terminal conflicts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the archive database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS conflicts (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			target_id TEXT NOT NULL,
			status TEXT NOT NULL,
			resolution TEXT,
			winner_id TEXT,
			created_at DATETIME NOT NULL,
			resolved_at DATETIME,
			teams TEXT,
			metadata TEXT,
			log TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &Store{db: db}, nil
}

type teamRow struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	MemberCount int        `json:"member_count"`
	ArrivedAt   *time.Time `json:"arrived_at,omitempty"`
}

// Save writes a terminal conflict. Saving the same id twice replaces the
// row, so a retried archive write stays harmless.
func (s *Store) Save(ctx context.Context, c *types.Conflict) error {
	teams := make([]teamRow, len(c.Teams))
	for i, t := range c.Teams {
		teams[i] = teamRow{ID: t.ID, Name: t.Name, MemberCount: t.MemberCount, ArrivedAt: t.ArrivedAt}
	}
	teamsJSON, err := json.Marshal(teams)
	if err != nil {
		return fmt.Errorf("failed to marshal teams: %w", err)
	}
	metaJSON, err := json.Marshal(c.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	logJSON, err := json.Marshal(c.Log)
	if err != nil {
		return fmt.Errorf("failed to marshal log: %w", err)
	}

	var winnerID *string
	if c.Winner != nil {
		winnerID = &c.Winner.ID
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO conflicts
			(id, type, target_id, status, resolution, winner_id, created_at, resolved_at, teams, metadata, log)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, string(c.Type), c.TargetID, string(c.Status), string(c.Resolution), winnerID,
		c.CreatedAt, c.ResolvedAt, string(teamsJSON), string(metaJSON), string(logJSON))
	if err != nil {
		return fmt.Errorf("failed to insert conflict: %w", err)
	}
	return nil
}

// Record is one archived conflict row.
type Record struct {
	ID         string
	Type       types.ConflictType
	TargetID   string
	Status     types.ConflictStatus
	Resolution types.ResolutionType
	WinnerID   string
	CreatedAt  time.Time
	ResolvedAt *time.Time
	TeamIDs    []string
}

// Recent returns up to limit archived conflicts, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, target_id, status, resolution, winner_id, created_at, resolved_at, teams
		FROM conflicts
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conflicts: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ForTeam returns archived conflicts involving the team, newest first.
func (s *Store) ForTeam(ctx context.Context, teamID string, limit int) ([]Record, error) {
	// Teams are stored as a JSON array; match on the quoted id.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, target_id, status, resolution, winner_id, created_at, resolved_at, teams
		FROM conflicts
		WHERE teams LIKE ?
		ORDER BY created_at DESC
		LIMIT ?
	`, `%"id":"`+teamID+`"%`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conflicts: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var (
			rec       Record
			winnerID  sql.NullString
			teamsJSON string
		)
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.TargetID, &rec.Status, &rec.Resolution,
			&winnerID, &rec.CreatedAt, &rec.ResolvedAt, &teamsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rec.WinnerID = winnerID.String

		var teams []teamRow
		if err := json.Unmarshal([]byte(teamsJSON), &teams); err != nil {
			return nil, fmt.Errorf("failed to unmarshal teams: %w", err)
		}
		for _, t := range teams {
			rec.TeamIDs = append(rec.TeamIDs, t.ID)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
