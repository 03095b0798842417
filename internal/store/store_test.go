package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		s.Wipe(context.Background())
		s.Close()
	})
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not asserted here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestLogAppendAndAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	logs := s.Logs()

	base := time.Date(2025, time.December, 5, 10, 0, 0, 0, time.UTC)
	entries := []LogEntry{
		{ID: "a", Label: "COMP 100 @ 05 Aralık", OccurredAt: base, Minutes: 25},
		{ID: "b", Label: "MATH 106 @ 05 Aralık", OccurredAt: base.Add(time.Hour), Minutes: 50},
		{ID: "c", Label: "Serbest Çalışma", OccurredAt: base.Add(2 * time.Hour), Minutes: 10},
	}
	for _, e := range entries {
		if err := logs.Append(ctx, e); err != nil {
			t.Fatalf("append %s: %v", e.ID, err)
		}
	}

	got, err := logs.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	// Newest first.
	for i, wantID := range []string{"c", "b", "a"} {
		if got[i].ID != wantID {
			t.Errorf("entry[%d].ID = %q, want %q", i, got[i].ID, wantID)
		}
	}
	if !got[2].OccurredAt.Equal(base) {
		t.Errorf("timestamp round-trip = %v, want %v", got[2].OccurredAt, base)
	}

	total, err := logs.TotalMinutes(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 85 {
		t.Errorf("total = %d, want 85", total)
	}
}

func TestLogClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	logs := s.Logs()

	logs.Append(ctx, LogEntry{ID: "a", Label: "x", OccurredAt: time.Now(), Minutes: 5})
	if err := logs.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	total, _ := logs.TotalMinutes(ctx)
	if total != 0 {
		t.Errorf("total after clear = %d, want 0", total)
	}
}

func TestNoteRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	notes := s.Notes()

	body, err := notes.Get(ctx, "COMP 100")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if body != "" {
		t.Errorf("missing note = %q, want empty", body)
	}

	if err := notes.Set(ctx, "COMP 100", "pointer aritmetiği tekrar"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := notes.Set(ctx, "COMP 100", "final konuları"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	body, err = notes.Get(ctx, "COMP 100")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if body != "final konuları" {
		t.Errorf("note = %q, want the overwritten body", body)
	}
}

func TestTaskLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	tasks := s.Tasks()

	base := time.Date(2025, time.December, 5, 9, 0, 0, 0, time.UTC)
	for i, text := range []string{"ödev 3", "lab raporu", "quiz tekrarı"} {
		err := tasks.Add(ctx, Task{
			ID:        string(rune('a' + i)),
			Category:  "PHYS 101",
			Text:      text,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	got, err := tasks.ByCategory(ctx, "PHYS 101")
	if err != nil {
		t.Fatalf("by category: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d tasks, want 3", len(got))
	}
	// Creation order.
	if got[0].Text != "ödev 3" || got[2].Text != "quiz tekrarı" {
		t.Errorf("unexpected order: %q .. %q", got[0].Text, got[2].Text)
	}

	if err := tasks.Toggle(ctx, "b"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	got, _ = tasks.ByCategory(ctx, "PHYS 101")
	if !got[1].Completed {
		t.Error("task b should be completed after toggle")
	}
	tasks.Toggle(ctx, "b")
	got, _ = tasks.ByCategory(ctx, "PHYS 101")
	if got[1].Completed {
		t.Error("task b should flip back on second toggle")
	}

	if err := tasks.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ = tasks.ByCategory(ctx, "PHYS 101")
	if len(got) != 2 {
		t.Errorf("got %d tasks after delete, want 2", len(got))
	}

	if other, _ := tasks.ByCategory(ctx, "MATH 106"); len(other) != 0 {
		t.Errorf("category isolation broken: %d tasks", len(other))
	}
}

func TestSettingRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	settings := s.Settings()

	_, ok, err := settings.Get(ctx, SettingWorkMinutes)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if ok {
		t.Error("missing key reported as present")
	}

	if err := settings.Set(ctx, SettingWorkMinutes, "50"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := settings.Set(ctx, SettingWorkMinutes, "40"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := settings.Get(ctx, SettingWorkMinutes)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || v != "40" {
		t.Errorf("setting = %q ok=%v, want 40", v, ok)
	}
}

func TestWipe(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Logs().Append(ctx, LogEntry{ID: "a", Label: "x", OccurredAt: time.Now(), Minutes: 5})
	s.Notes().Set(ctx, "COMP 100", "n")
	s.Tasks().Add(ctx, Task{ID: "t", Category: "COMP 100", Text: "x", CreatedAt: time.Now()})
	s.Settings().Set(ctx, SettingSoundVolume, "0.5")

	if err := s.Wipe(ctx); err != nil {
		t.Fatalf("wipe: %v", err)
	}

	if entries, _ := s.Logs().All(ctx); len(entries) != 0 {
		t.Error("logs survived wipe")
	}
	if body, _ := s.Notes().Get(ctx, "COMP 100"); body != "" {
		t.Error("note survived wipe")
	}
	if tasks, _ := s.Tasks().ByCategory(ctx, "COMP 100"); len(tasks) != 0 {
		t.Error("tasks survived wipe")
	}
	if _, ok, _ := s.Settings().Get(ctx, SettingSoundVolume); ok {
		t.Error("setting survived wipe")
	}
}
