package record

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one finished prompt as stored in the history database.
type Run struct {
	ID        int64
	Prompt    string
	Status    string
	Function  string
	Details   string
	Repaired  bool
	CreatedAt time.Time
}

// History keeps a durable log of finished runs in a local SQLite database,
// separate from the per-batch JSONL files which are append-only and never
// queried.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	prompt TEXT NOT NULL,
	status TEXT NOT NULL,
	function TEXT NOT NULL DEFAULT '',
	details TEXT NOT NULL DEFAULT '',
	repaired INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
`

// OpenHistory opens or creates the history database at path, creating the
// parent directory if needed.
func OpenHistory(path string) (*History, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Close releases the underlying database handle.
func (h *History) Close() error { return h.db.Close() }

// Append stores one finished run.
func (h *History) Append(ctx context.Context, run Run) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO runs (prompt, status, function, details, repaired, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.Prompt, run.Status, run.Function, run.Details, boolToInt(run.Repaired),
		run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to append run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, prompt, status, function, details, repaired, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var repaired int
		if err := rows.Scan(&r.ID, &r.Prompt, &r.Status, &r.Function, &r.Details,
			&repaired, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Repaired = repaired != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// CountByStatus returns the number of stored runs per verdict status.
func (h *History) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM runs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
