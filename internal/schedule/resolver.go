package schedule

import (
	"math"
	"time"
)

// Status places a block relative to a reference instant.
type Status int

const (
	StatusPast Status = iota
	StatusPresent
	StatusFuture
)

func (s Status) String() string {
	switch s {
	case StatusPast:
		return "PAST"
	case StatusPresent:
		return "PRESENT"
	default:
		return "FUTURE"
	}
}

// ActiveState is the resolver's view of the currently running block.
// Zero value means no block is active.
type ActiveState struct {
	Block    *Block
	DayLabel string
	End      time.Time
}

// Active reports whether a block is currently running.
func (a ActiveState) Active() bool {
	return a.Block != nil
}

// equal compares by block identity and window end, which is all that
// downstream consumers key off.
func (a ActiveState) equal(b ActiveState) bool {
	if (a.Block == nil) != (b.Block == nil) {
		return false
	}
	if a.Block != nil && a.Block.ID != b.Block.ID {
		return false
	}
	return a.DayLabel == b.DayLabel && a.End.Equal(b.End)
}

// UpcomingExam describes the nearest future exam block.
type UpcomingExam struct {
	Block    Block
	DayLabel string
	At       time.Time
	DaysLeft int
}

// Resolver maps wall-clock instants against the schedule index. It
// holds the last ActiveState so that repeated resolution with an
// unchanged outcome returns the identical value and downstream
// consumers do not retrigger.
type Resolver struct {
	index *Index
	held  ActiveState
}

// NewResolver creates a Resolver over the given index.
func NewResolver(ix *Index) *Resolver {
	return &Resolver{index: ix}
}

// Index returns the underlying schedule index.
func (r *Resolver) Index() *Index {
	return r.index
}

// FindActive resolves the single block whose window contains now,
// searching today's blocks in morning, afternoon, evening declared
// order. The first inclusive match wins; overlapping later blocks are
// ignored. Pure: same now and index always yield the same answer.
func (r *Resolver) FindActive(now time.Time) ActiveState {
	day := r.index.ResolveDay(now.Day())
	if day == nil || now.Month() != r.index.month {
		return ActiveState{}
	}

	blocks := day.Blocks()
	for i := range blocks {
		start, end, ok := r.index.BlockWindow(day.Date, blocks[i].Text, now)
		if !ok {
			continue
		}
		if !now.Before(start) && !now.After(end) {
			return ActiveState{Block: &blocks[i], DayLabel: day.Date, End: end}
		}
	}
	return ActiveState{}
}

// Refresh recomputes the active block and returns the held state,
// replacing it only on material change. changed reports whether the
// returned state differs from the previous tick's.
func (r *Resolver) Refresh(now time.Time) (ActiveState, bool) {
	next := r.FindActive(now)
	if next.equal(r.held) {
		return r.held, false
	}
	r.held = next
	return r.held, true
}

// ProgressOf reports a block's status relative to now, and for a
// running block the elapsed fraction in percent. A block without a
// parseable window is PAST once its calendar day has passed and
// FUTURE otherwise, always at 0 percent. A degenerate zero-length
// window counts as fully elapsed rather than dividing by zero.
func (r *Resolver) ProgressOf(b Block, dayLabel string, now time.Time) (Status, float64) {
	start, end, ok := r.index.BlockWindow(dayLabel, b.Text, now)
	if !ok {
		day := (&DayRecord{Date: dayLabel}).DayOfMonth()
		if now.Month() > r.index.month || (now.Month() == r.index.month && now.Day() > day) {
			return StatusPast, 0
		}
		return StatusFuture, 0
	}

	if now.After(end) {
		return StatusPast, 100
	}
	if now.Before(start) {
		return StatusFuture, 0
	}

	total := end.Sub(start)
	if total <= 0 {
		return StatusPresent, 100
	}
	elapsed := now.Sub(start)
	progress := math.Min(100, math.Max(0, float64(elapsed)/float64(total)*100))
	return StatusPresent, progress
}

// NextExam scans every exam block in the table and returns the one
// with the earliest start instant still strictly in the future, or nil
// when none remains. A windowless exam block falls back to 09:00 on
// its day. DaysLeft is the remaining time rounded up to whole days.
func (r *Resolver) NextExam(now time.Time) *UpcomingExam {
	var closest *UpcomingExam

	for di := range r.index.days {
		day := &r.index.days[di]
		for _, b := range day.Blocks() {
			if !b.IsExam {
				continue
			}
			at, _, ok := r.index.BlockWindow(day.Date, b.Text, now)
			if !ok {
				at = time.Date(now.Year(), r.index.month, day.DayOfMonth(), 9, 0, 0, 0, now.Location())
			}
			if !at.After(now) {
				continue
			}
			if closest == nil || at.Before(closest.At) {
				daysLeft := int(math.Ceil(at.Sub(now).Hours() / 24))
				closest = &UpcomingExam{Block: b, DayLabel: day.Date, At: at, DaysLeft: daysLeft}
			}
		}
	}
	return closest
}
