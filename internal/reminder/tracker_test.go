package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/oguzkaplan/studyterm/internal/notify"
	"github.com/oguzkaplan/studyterm/internal/schedule"
)

// fakeSettings is an in-memory SettingRepo.
type fakeSettings struct {
	values map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[string]string)}
}

func (f *fakeSettings) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeSettings) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

// recorder captures fired notifications.
type recorder struct {
	titles []string
}

func (r *recorder) notifier() notify.Notifier {
	return notify.Func(func(title, _ string) {
		r.titles = append(r.titles, title)
	})
}

// newTestResolver builds a one-day December table with a single block
// at 10:00-11:40 plus an exam two days later.
func newTestResolver() *schedule.Resolver {
	days := []schedule.DayRecord{
		{
			Date:    "05 Aralık",
			DayName: "Cuma",
			Morning: []schedule.Block{
				{ID: "05 Aralık-morning-0", Text: "COMP 100 (10:00-11:40)", Category: schedule.Comp100},
			},
		},
		{
			Date:    "07 Aralık",
			DayName: "Pazar",
			Morning: []schedule.Block{
				{ID: "07 Aralık-morning-0", Text: "MATH 106 SINAV (09:00-10:00)", Category: schedule.Exam, IsExam: true},
			},
		},
	}
	return schedule.NewResolver(schedule.NewIndex(time.December, days))
}

func at(day, hour, min int) time.Time {
	return time.Date(2025, time.December, day, hour, min, 0, 0, time.UTC)
}

func TestEvaluateFiresEachThresholdOnce(t *testing.T) {
	ctx := context.Background()
	settings := newFakeSettings()
	rec := &recorder{}
	resolver := newTestResolver()

	tr := NewTracker(ctx, settings, rec.notifier())
	tr.SetEnabled(true)

	// Sweep from 12 minutes before the block to its start, one
	// evaluation per minute, the way the app ticks.
	for min := 0; min <= 12; min++ {
		tr.Evaluate(ctx, at(5, 9, 48).Add(time.Duration(min)*time.Minute), resolver)
	}

	var upcoming int
	for _, title := range rec.titles {
		if title == "Ders yaklaşıyor" || title == "Başlamak üzere" {
			upcoming++
		}
	}
	if upcoming != 2 {
		t.Fatalf("fired %d block reminders, want exactly 2 (got %v)", upcoming, rec.titles)
	}
	if !tr.Seen("05 Aralık-05 Aralık-morning-0-10") {
		t.Error("approaching key not recorded")
	}
	if !tr.Seen("05 Aralık-05 Aralık-morning-0-1") {
		t.Error("starting key not recorded")
	}
}

func TestSeenKeysSurviveRestart(t *testing.T) {
	ctx := context.Background()
	settings := newFakeSettings()
	rec := &recorder{}
	resolver := newTestResolver()

	tr := NewTracker(ctx, settings, rec.notifier())
	tr.SetEnabled(true)
	tr.Evaluate(ctx, at(5, 9, 52), resolver) // inside the 10-minute window

	fired := len(rec.titles)
	if fired == 0 {
		t.Fatal("expected the approaching reminder to fire")
	}

	// A fresh tracker over the same settings must not refire.
	tr2 := NewTracker(ctx, settings, rec.notifier())
	tr2.SetEnabled(true)
	if !tr2.Seen("05 Aralık-05 Aralık-morning-0-10") {
		t.Fatal("restored tracker lost the seen key")
	}
	tr2.Evaluate(ctx, at(5, 9, 53), resolver)

	for _, title := range rec.titles[fired:] {
		if title == "Ders yaklaşıyor" {
			t.Fatal("approaching reminder fired twice across restart")
		}
	}
}

func TestCorruptSeenSetFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	settings := newFakeSettings()
	settings.values["reminder_seen_keys"] = "{not json"

	tr := NewTracker(ctx, settings, notify.Nop{})
	if tr.Seen("anything") {
		t.Error("corrupt store must restore as empty")
	}
}

func TestExamNudgeOncePerDay(t *testing.T) {
	ctx := context.Background()
	settings := newFakeSettings()
	rec := &recorder{}
	resolver := newTestResolver()

	tr := NewTracker(ctx, settings, rec.notifier())
	tr.SetEnabled(true)

	tr.Evaluate(ctx, at(5, 12, 0), resolver)
	tr.Evaluate(ctx, at(5, 12, 1), resolver)
	tr.Evaluate(ctx, at(5, 18, 0), resolver)

	var nudges int
	for _, title := range rec.titles {
		if title == "Sınav yaklaşırken" {
			nudges++
		}
	}
	if nudges != 1 {
		t.Fatalf("exam nudge fired %d times in one day, want 1", nudges)
	}

	// Next day it fires again.
	tr.Evaluate(ctx, at(6, 12, 0), resolver)
	nudges = 0
	for _, title := range rec.titles {
		if title == "Sınav yaklaşırken" {
			nudges++
		}
	}
	if nudges != 2 {
		t.Errorf("exam nudge across two days = %d, want 2", nudges)
	}
	if settings.values["last_exam_nudge_date"] != "2025-12-06" {
		t.Errorf("persisted marker = %q, want 2025-12-06", settings.values["last_exam_nudge_date"])
	}
}

func TestDisabledTrackerStaysSilent(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	resolver := newTestResolver()

	tr := NewTracker(ctx, newFakeSettings(), rec.notifier())
	tr.Evaluate(ctx, at(5, 9, 52), resolver)

	if len(rec.titles) != 0 {
		t.Fatalf("disabled tracker fired %v", rec.titles)
	}
	if tr.Seen("05 Aralık-05 Aralık-morning-0-10") {
		t.Error("disabled tracker must not accumulate dedup state")
	}
}
