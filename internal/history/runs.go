package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a run ID (or prefix) matches nothing.
var ErrRunNotFound = errors.New("run not found")

const runColumns = "id, source_dir, dest_dir, dry_run, started_at, finished_at, attempted, converted, planned, skipped, failed, overlong"

// BeginRun opens a new run with a fresh identifier.
func (s *Store) BeginRun(ctx context.Context, sourceDir, destDir string, dryRun bool) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		SourceDir: sourceDir,
		DestDir:   destDir,
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, source_dir, dest_dir, dry_run, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.SourceDir, run.DestDir, boolToInt(run.DryRun), formatTime(run.StartedAt),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the completion time and final counts.
func (s *Store) FinishRun(ctx context.Context, runID string, counts Counts) error {
	res, err := s.execWithRetry(ctx,
		`UPDATE runs SET finished_at = ?, attempted = ?, converted = ?, planned = ?, skipped = ?, failed = ?, overlong = ? WHERE id = ?`,
		formatTime(time.Now()), counts.Attempted, counts.Converted, counts.Planned, counts.Skipped, counts.Failed, counts.Overlong, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun looks a run up by full ID or unique ID prefix.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\\' ORDER BY started_at DESC LIMIT 2",
		id, escapeLike(id)+"%",
	)
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, fmt.Errorf("scan run: %w", err)
		}
		if run.ID == id {
			return run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, err
	}
	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%q: %w", id, ErrRunNotFound)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("run prefix %q is ambiguous", id)
	}
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		dryRun      int
		startedRaw  sql.NullString
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.SourceDir,
		&run.DestDir,
		&dryRun,
		&startedRaw,
		&finishedRaw,
		&run.Counts.Attempted,
		&run.Counts.Converted,
		&run.Counts.Planned,
		&run.Counts.Skipped,
		&run.Counts.Failed,
		&run.Counts.Overlong,
	); err != nil {
		return Run{}, err
	}
	run.DryRun = dryRun != 0
	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(finishedRaw)
	return run, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
