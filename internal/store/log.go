package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LogEntry is one saved study session. Entries are append-only and
// never mutated after insertion.
type LogEntry struct {
	ID         string
	Label      string
	OccurredAt time.Time
	Minutes    int
}

// LogRepo manages the append-only study log.
type LogRepo interface {
	// Append inserts a new entry.
	Append(ctx context.Context, entry LogEntry) error

	// All returns every entry, newest first.
	All(ctx context.Context) ([]LogEntry, error)

	// TotalMinutes sums the duration of every entry.
	TotalMinutes(ctx context.Context) (int, error)

	// Clear deletes every entry.
	Clear(ctx context.Context) error
}

type logRepo struct {
	db *sql.DB
}

func (r *logRepo) Append(ctx context.Context, entry LogEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO study_logs (id, label, occurred_at, minutes) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Label, entry.OccurredAt.Format(time.RFC3339), entry.Minutes,
	)
	if err != nil {
		return fmt.Errorf("append study log: %w", err)
	}
	return nil
}

func (r *logRepo) All(ctx context.Context) ([]LogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, occurred_at, minutes FROM study_logs ORDER BY occurred_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query study logs: %w", err)
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		var occurredAt string
		if err := rows.Scan(&e.ID, &e.Label, &occurredAt, &e.Minutes); err != nil {
			return nil, fmt.Errorf("scan study log: %w", err)
		}
		// A row with an unparseable timestamp keeps its zero time
		// rather than failing the whole read.
		e.OccurredAt, _ = time.Parse(time.RFC3339, occurredAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *logRepo) TotalMinutes(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(minutes), 0) FROM study_logs`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum study logs: %w", err)
	}
	return total, nil
}

func (r *logRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM study_logs`); err != nil {
		return fmt.Errorf("clear study logs: %w", err)
	}
	return nil
}
