package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Task is one to-do item attached to a course category.
type Task struct {
	ID        string
	Category  string
	Text      string
	Completed bool
	CreatedAt time.Time
}

// TaskRepo manages the per-course task lists.
type TaskRepo interface {
	Add(ctx context.Context, task Task) error

	// Toggle flips a task's completed flag. Unknown IDs are a no-op.
	Toggle(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error

	// ByCategory returns a category's tasks in creation order.
	ByCategory(ctx context.Context, category string) ([]Task, error)
}

type taskRepo struct {
	db *sql.DB
}

func (r *taskRepo) Add(ctx context.Context, task Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, category, text, completed, created_at) VALUES (?, ?, ?, ?, ?)`,
		task.ID, task.Category, task.Text, boolToInt(task.Completed), task.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	return nil
}

func (r *taskRepo) Toggle(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1 - completed WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("toggle task %q: %w", id, err)
	}
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task %q: %w", id, err)
	}
	return nil
}

func (r *taskRepo) ByCategory(ctx context.Context, category string) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, text, completed, created_at FROM tasks
		 WHERE category = ? ORDER BY created_at ASC, rowid ASC`, category,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks %q: %w", category, err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var completed int
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Category, &t.Text, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Completed = completed != 0
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
