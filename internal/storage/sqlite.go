// Package storage provides SQLite-based persistence for run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned when no run matches the requested ID.
var ErrRunNotFound = errors.New("storage: run not found")

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is the summary of one finished simulation run.
type Run struct {
	ID         uuid.UUID
	Mode       string // Registered game ID
	Seed       int64
	Ticks      uint64
	Elapsed    float64 // Simulated seconds
	Spawned    int
	Shots      int
	Collisions int
	Hits       int
	CreatedAt  time.Time
}

// Accuracy returns the fraction of shots that overlapped an asteroid.
func (r Run) Accuracy() float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Shots)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			elapsed REAL NOT NULL DEFAULT 0,
			spawned INTEGER NOT NULL DEFAULT 0,
			shots INTEGER NOT NULL DEFAULT 0,
			collisions INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. A zero ID is replaced with a new random
// one, a zero CreatedAt with the current time. Returns the stored ID.
func (s *Store) SaveRun(r Run) (uuid.UUID, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, mode, seed, ticks, elapsed, spawned, shots, collisions, hits, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Mode, r.Seed, int64(r.Ticks), r.Elapsed,
		r.Spawned, r.Shots, r.Collisions, r.Hits,
		r.CreatedAt.UTC().Format(sqliteTime),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, mode, seed, ticks, elapsed, spawned, shots, collisions, hits, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(sc rowScanner) (Run, error) {
	var (
		r         Run
		id        string
		ticks     int64
		createdAt any
	)
	if err := sc.Scan(&id, &r.Mode, &r.Seed, &ticks, &r.Elapsed,
		&r.Spawned, &r.Shots, &r.Collisions, &r.Hits, &createdAt); err != nil {
		return Run{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Run{}, fmt.Errorf("storage: bad run id %q: %w", id, err)
	}
	r.ID = parsed
	r.Ticks = uint64(ticks)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id uuid.UUID) (Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id.String())

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// ListRuns retrieves the most recent runs, newest first.
// An empty mode lists every mode.
func (s *Store) ListRuns(mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR mode = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DeleteRuns deletes all runs for the given mode.
func (s *Store) DeleteRuns(mode string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot delete runs: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for a game mode.
type ModeStats struct {
	Mode         string
	Runs         int
	TotalTicks   int64
	TotalElapsed float64
	LongestRun   float64 // Simulated seconds
	Shots        int64
	Hits         int64
	Collisions   int64
	LastPlayed   time.Time
}

// Accuracy returns hits per shot across all runs.
func (m ModeStats) Accuracy() float64 {
	if m.Shots == 0 {
		return 0
	}
	return float64(m.Hits) / float64(m.Shots)
}

// Stats retrieves aggregated statistics for every mode that has runs.
func (s *Store) Stats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), SUM(ticks), SUM(elapsed), MAX(elapsed),
		        SUM(shots), SUM(hits), SUM(collisions), MAX(created_at)
		 FROM runs
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.Runs, &m.TotalTicks, &m.TotalElapsed, &m.LongestRun,
			&m.Shots, &m.Hits, &m.Collisions, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.Mode] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
