package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Well-known setting keys.
const (
	SettingReminderSeenKeys = "reminder_seen_keys"
	SettingLastExamNudge    = "last_exam_nudge_date"
	SettingSoundVolume      = "sound_volume"
	SettingWorkMinutes      = "work_minutes"
	SettingRemindersEnabled = "reminders_enabled"
)

// SettingRepo is the durable string key-value store backing everything
// that must survive a restart outside the main collections: the
// reminder seen-set, the exam-nudge date marker, sound volume and the
// custom work duration. Values are whole-value overwritten.
type SettingRepo interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores the value, replacing any previous one.
	Set(ctx context.Context, key, value string) error
}

type settingRepo struct {
	db *sql.DB
}

func (r *settingRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func (r *settingRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}
