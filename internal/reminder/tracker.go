// Package reminder evaluates time-sensitive reminders on every tick
// and guarantees each one fires at most once, across restarts.
package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/oguzkaplan/studyterm/internal/notify"
	"github.com/oguzkaplan/studyterm/internal/schedule"
	"github.com/oguzkaplan/studyterm/internal/store"
)

// Threshold suffixes appended to "{day}-{blockID}" dedup keys.
const (
	suffixApproaching = "10"
	suffixStarting    = "1"
)

// Tracker owns the persisted seen-set of fired reminder keys plus the
// separate once-per-day marker for the exam nudge. Keys are never
// removed: a reminder that fired once never fires again for the same
// block and threshold, even after a reload.
type Tracker struct {
	seen         map[string]struct{}
	lastExamDate string // YYYY-MM-DD of the last exam nudge
	settings     store.SettingRepo
	notifier     notify.Notifier
	enabled      bool
}

// NewTracker restores the seen-set and exam marker from the settings
// store. Corrupt or missing values fall back to empty state; a stale
// store never crashes startup.
func NewTracker(ctx context.Context, settings store.SettingRepo, notifier notify.Notifier) *Tracker {
	t := &Tracker{
		seen:     make(map[string]struct{}),
		settings: settings,
		notifier: notifier,
	}

	if raw, ok, err := settings.Get(ctx, store.SettingReminderSeenKeys); err == nil && ok {
		var keys []string
		if json.Unmarshal([]byte(raw), &keys) == nil {
			for _, k := range keys {
				t.seen[k] = struct{}{}
			}
		}
	}
	if date, ok, err := settings.Get(ctx, store.SettingLastExamNudge); err == nil && ok {
		t.lastExamDate = date
	}
	return t
}

// SetEnabled gates all firing. Dedup state still accumulates only when
// enabled, mirroring how the permission flag guards the whole effect.
func (t *Tracker) SetEnabled(enabled bool) {
	t.enabled = enabled
}

// Enabled reports whether reminders currently fire.
func (t *Tracker) Enabled() bool {
	return t.enabled
}

// Seen reports whether a dedup key has already fired.
func (t *Tracker) Seen(key string) bool {
	_, ok := t.seen[key]
	return ok
}

// Evaluate runs one tick of reminder checks: the per-block approaching
// and starting thresholds for today's future blocks, then the daily
// exam-proximity nudge. Firing goes through the notifier; every fired
// key is persisted immediately.
func (t *Tracker) Evaluate(ctx context.Context, now time.Time, resolver *schedule.Resolver) {
	if !t.enabled {
		return
	}

	ix := resolver.Index()
	if day := ix.ResolveDay(now.Day()); day != nil && now.Month() == ix.Month() {
		t.checkUpcoming(ctx, now, ix, day)
	}
	t.checkExam(ctx, now, resolver)
}

func (t *Tracker) checkUpcoming(ctx context.Context, now time.Time, ix *schedule.Index, day *schedule.DayRecord) {
	fired := false
	for _, b := range day.Blocks() {
		start, _, ok := ix.BlockWindow(day.Date, b.Text, now)
		if !ok || !now.Before(start) {
			continue
		}

		minutesUntil := int(math.Ceil(start.Sub(now).Minutes()))
		baseKey := fmt.Sprintf("%s-%s", day.Date, b.ID)

		if minutesUntil <= 10 && minutesUntil > 1 {
			if t.markOnce(baseKey + "-" + suffixApproaching) {
				t.notifier.Fire("Ders yaklaşıyor",
					fmt.Sprintf("%s dersi 10 dakika sonra başlıyor. Hazırlan!", b.Text))
				fired = true
			}
		}
		if minutesUntil <= 1 {
			if t.markOnce(baseKey + "-" + suffixStarting) {
				t.notifier.Fire("Başlamak üzere",
					fmt.Sprintf("%s 1 dakika içinde başlıyor. İyi çalışma!", b.Text))
				fired = true
			}
		}
	}
	if fired {
		t.persistSeen(ctx)
	}
}

func (t *Tracker) checkExam(ctx context.Context, now time.Time, resolver *schedule.Resolver) {
	exam := resolver.NextExam(now)
	if exam == nil || exam.DaysLeft > 7 {
		return
	}

	today := now.Format("2006-01-02")
	if t.lastExamDate == today {
		return
	}

	msg := fmt.Sprintf("%d gün kaldı. Bugün küçük ama istikrarlı bir adım at: 30 dk tekrar!", exam.DaysLeft)
	if exam.DaysLeft == 0 {
		msg = "Bugün sınav günü! Hazırlıklarını gözden geçir ve sakin kal."
	}
	t.notifier.Fire("Sınav yaklaşırken", msg)

	t.lastExamDate = today
	// Best effort; in-memory marker stays authoritative this run.
	_ = t.settings.Set(ctx, store.SettingLastExamNudge, today)
}

// markOnce records the key and reports whether it was new.
func (t *Tracker) markOnce(key string) bool {
	if _, ok := t.seen[key]; ok {
		return false
	}
	t.seen[key] = struct{}{}
	return true
}

// persistSeen rewrites the whole seen-set. Sorted for deterministic
// stored form; write failure leaves the in-memory set authoritative.
func (t *Tracker) persistSeen(ctx context.Context) {
	keys := make([]string, 0, len(t.seen))
	for k := range t.seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	raw, err := json.Marshal(keys)
	if err != nil {
		return
	}
	_ = t.settings.Set(ctx, store.SettingReminderSeenKeys, string(raw))
}
