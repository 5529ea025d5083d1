package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RecordEntry appends the outcome for one source file to a run.
func (s *Store) RecordEntry(ctx context.Context, runID string, entry Entry) error {
	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO entries (run_id, source_path, short_path, dest_path, status, overlong, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, entry.SourcePath, entry.ShortPath, entry.DestPath, entry.Status,
		boolToInt(entry.Overlong), entry.Message, formatTime(created),
	)
	if err != nil {
		return fmt.Errorf("record entry %s: %w", entry.SourcePath, err)
	}
	return nil
}

// Entries returns a run's entries in processing order.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, source_path, short_path, dest_path, status, overlong, message, created_at
		 FROM entries WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			overlong   int
			createdRaw sql.NullString
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.RunID,
			&entry.SourcePath,
			&entry.ShortPath,
			&entry.DestPath,
			&entry.Status,
			&overlong,
			&entry.Message,
			&createdRaw,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry.Overlong = overlong != 0
		entry.CreatedAt = parseTime(createdRaw)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
