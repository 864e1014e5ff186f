package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joshuamegnauth54/cosmic-screenshot/internal/config"
)

// Outcome classifies a recorded capture attempt.
type Outcome string

const (
	OutcomeSaved     Outcome = "saved"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// Entry is one recorded capture attempt.
type Entry struct {
	ID          string
	CreatedAt   time.Time
	Path        string
	Outcome     Outcome
	Interactive bool
	Modal       bool
	Error       string
}

// Store persists capture history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS captures (
    id          TEXT PRIMARY KEY,
    created_at  TEXT NOT NULL,
    path        TEXT NOT NULL DEFAULT '',
    outcome     TEXT NOT NULL,
    interactive INTEGER NOT NULL DEFAULT 0,
    modal       INTEGER NOT NULL DEFAULT 0,
    error       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_captures_created_at ON captures(created_at);
`

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Record inserts a capture attempt and returns the stored entry.
func (s *Store) Record(ctx context.Context, entry Entry) (*Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO captures (id, created_at, path, outcome, interactive, modal, error)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
		entry.Path,
		string(entry.Outcome),
		boolToInt(entry.Interactive),
		boolToInt(entry.Modal),
		entry.Error,
	)
	if err != nil {
		return nil, fmt.Errorf("insert capture: %w", err)
	}
	return &entry, nil
}

// List returns the most recent entries, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, created_at, path, outcome, interactive, modal, error
              FROM captures ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query captures: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry       Entry
			createdAt   string
			interactive int
			modal       int
		)
		if err := rows.Scan(&entry.ID, &createdAt, &entry.Path, (*string)(&entry.Outcome), &interactive, &modal, &entry.Error); err != nil {
			return nil, fmt.Errorf("scan capture: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		entry.CreatedAt = ts
		entry.Interactive = interactive != 0
		entry.Modal = modal != 0
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Prune deletes all but the newest keep entries.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM captures WHERE id NOT IN (
             SELECT id FROM captures ORDER BY created_at DESC, id DESC LIMIT ?
         )`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("prune captures: %w", err)
	}
	return nil
}

// Clear removes every recorded capture and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM captures`)
	if err != nil {
		return 0, fmt.Errorf("clear captures: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return deleted, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
