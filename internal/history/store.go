// Package history records fragment load invocations in a SQLite database.
//
// The history is an audit log, not a cache: walk results are never reused,
// only the fact that a load happened and how big it was. Recording is
// best-effort throughout; a broken history store must never fail a load.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Load represents one recorded load invocation.
type Load struct {
	ID            string
	Mode          string
	Argument      string
	Root          string
	FileCount     int
	FragmentCount int
	TotalBytes    int64
	Duration      time.Duration
	Timestamp     time.Time
}

// Stats contains aggregated history statistics.
type Stats struct {
	TotalLoads     int
	FolderLoads    int
	ProjectLoads   int
	TotalFiles     int64
	TotalBytes     int64
	DistinctRoots  int
	FirstTimestamp time.Time
	LastTimestamp  time.Time
}

// Store manages the SQLite database holding load history.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a Store and initializes the database schema.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so schema init waits on locks held by a
	// concurrent process opening the same file.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a SQL statement with exponential backoff on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordLoad inserts one load record. A generated ID and the current time
// are filled in when absent.
func (s *Store) RecordLoad(ctx context.Context, load *Load) error {
	if load.ID == "" {
		load.ID = uuid.New().String()
	}
	if load.Timestamp.IsZero() {
		load.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO loads (id, mode, argument, root, file_count, fragment_count, total_bytes, duration_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		load.ID, load.Mode, load.Argument, load.Root,
		load.FileCount, load.FragmentCount, load.TotalBytes,
		load.Duration.Milliseconds(), load.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("record load: %w", err)
	}
	return nil
}

// RecentLoads returns the most recent loads, newest first, up to limit.
func (s *Store) RecentLoads(ctx context.Context, limit int) ([]*Load, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, argument, root, file_count, fragment_count, total_bytes, duration_ms, timestamp
		FROM loads ORDER BY timestamp DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent loads: %w", err)
	}
	defer rows.Close()

	var loads []*Load
	for rows.Next() {
		var l Load
		var durationMS int64
		if err := rows.Scan(&l.ID, &l.Mode, &l.Argument, &l.Root,
			&l.FileCount, &l.FragmentCount, &l.TotalBytes, &durationMS, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan load: %w", err)
		}
		l.Duration = time.Duration(durationMS) * time.Millisecond
		loads = append(loads, &l)
	}
	return loads, rows.Err()
}

// GetStats aggregates statistics over the whole history.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN mode = 'folder' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN mode = 'project' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(file_count), 0),
		       COALESCE(SUM(total_bytes), 0),
		       COUNT(DISTINCT root)
		FROM loads`)
	if err := row.Scan(&stats.TotalLoads, &stats.FolderLoads, &stats.ProjectLoads,
		&stats.TotalFiles, &stats.TotalBytes, &stats.DistinctRoots); err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}

	if stats.TotalLoads > 0 {
		// MIN/MAX expressions lose the column's DATETIME affinity, so fetch
		// the boundary rows directly.
		row = s.db.QueryRowContext(ctx, `SELECT timestamp FROM loads ORDER BY timestamp ASC LIMIT 1`)
		if err := row.Scan(&stats.FirstTimestamp); err != nil {
			return nil, fmt.Errorf("stats first timestamp: %w", err)
		}
		row = s.db.QueryRowContext(ctx, `SELECT timestamp FROM loads ORDER BY timestamp DESC LIMIT 1`)
		if err := row.Scan(&stats.LastTimestamp); err != nil {
			return nil, fmt.Errorf("stats last timestamp: %w", err)
		}
	}

	return stats, nil
}

// Clear deletes all history records.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM loads`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Prune deletes records older than keepDays days. Returns how many rows were
// removed.
func (s *Store) Prune(ctx context.Context, keepDays int) (int64, error) {
	if keepDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -keepDays)

	res, err := s.db.ExecContext(ctx, `DELETE FROM loads WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return res.RowsAffected()
}
