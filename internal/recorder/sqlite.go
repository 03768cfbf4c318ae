package recorder

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/carworth/carworth/internal/dates"
)

// SQLite persists run history to a SQLite database file.
type SQLite struct {
	db     *sql.DB
	logger *slog.Logger
	mu     sync.Mutex
}

// NewSQLite opens (or creates) the history database at dbPath and runs
// migrations. A nil logger uses slog.Default.
func NewSQLite(dbPath string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so a concurrent `carworth runs` can read while a fetch writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLite{db: db, logger: logger.With("component", "recorder")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Debug("history database opened", "path", dbPath)
	return r, nil
}

func (r *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			started_at   INTEGER NOT NULL,
			account      TEXT NOT NULL,
			entity_id    TEXT NOT NULL,
			model_path   TEXT NOT NULL,
			range_start  TEXT NOT NULL,
			range_end    TEXT NOT NULL,
			window_count INTEGER NOT NULL,
			point_count  INTEGER NOT NULL,
			row_count    INTEGER NOT NULL,
			output_path  TEXT NOT NULL,
			status       TEXT NOT NULL,
			error        TEXT NOT NULL,
			duration_ms  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:30], err)
		}
	}
	return nil
}

// RecordRun inserts one run.
func (r *SQLite) RecordRun(run *Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(id, started_at, account, entity_id, model_path,
		 range_start, range_end, window_count, point_count, row_count,
		 output_path, status, error, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.StartedAt.Unix(), run.Account, run.EntityID, run.ModelPath,
		run.RangeStart.String(), run.RangeEnd.String(),
		run.Windows, run.Points, run.Rows,
		run.OutputPath, run.Status, run.Error, run.Duration.Milliseconds(),
	)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func (r *SQLite) RecentRuns(limit int) ([]Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT
		id, started_at, account, entity_id, model_path,
		range_start, range_end, window_count, point_count, row_count,
		output_path, status, error, duration_ms
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  int64
			rangeStart string
			rangeEnd   string
			durationMs int64
		)
		if err := rows.Scan(
			&run.ID, &startedAt, &run.Account, &run.EntityID, &run.ModelPath,
			&rangeStart, &rangeEnd, &run.Windows, &run.Points, &run.Rows,
			&run.OutputPath, &run.Status, &run.Error, &durationMs,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		run.StartedAt = time.Unix(startedAt, 0).UTC()
		run.Duration = time.Duration(durationMs) * time.Millisecond
		if run.RangeStart, err = dates.Parse(rangeStart); err != nil {
			return nil, fmt.Errorf("run %s has bad range start: %w", run.ID, err)
		}
		if run.RangeEnd, err = dates.Parse(rangeEnd); err != nil {
			return nil, fmt.Errorf("run %s has bad range end: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close releases the database handle.
func (r *SQLite) Close() error {
	r.logger.Debug("closing history database")
	return r.db.Close()
}
