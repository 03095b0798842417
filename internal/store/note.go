package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// NoteRepo stores one free-text note per course category.
type NoteRepo interface {
	// Get returns the note body, or "" when none is stored.
	Get(ctx context.Context, category string) (string, error)

	// Set replaces the note body wholesale.
	Set(ctx context.Context, category, body string) error
}

type noteRepo struct {
	db *sql.DB
}

func (r *noteRepo) Get(ctx context.Context, category string) (string, error) {
	var body string
	err := r.db.QueryRowContext(ctx,
		`SELECT body FROM notes WHERE category = ?`, category,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get note %q: %w", category, err)
	}
	return body, nil
}

func (r *noteRepo) Set(ctx context.Context, category, body string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (category, body) VALUES (?, ?)
		 ON CONFLICT(category) DO UPDATE SET body = excluded.body`,
		category, body,
	)
	if err != nil {
		return fmt.Errorf("set note %q: %w", category, err)
	}
	return nil
}
