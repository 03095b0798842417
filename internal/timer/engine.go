// Package timer implements the focus-timer state machine: a countdown
// crossed over WORK, BREAK and COURSE modes, with an explicit pending
// save/discard gate after every completed or early-finished session.
package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oguzkaplan/studyterm/internal/schedule"
)

// Mode is the timer's operating mode.
type Mode int

const (
	ModeWork Mode = iota
	ModeBreak
	ModeCourse
)

func (m Mode) String() string {
	switch m {
	case ModeBreak:
		return "BREAK"
	case ModeCourse:
		return "COURSE"
	default:
		return "WORK"
	}
}

// DefaultBreakMinutes is the fixed break length entered after a saved
// work or course session.
const DefaultBreakMinutes = 5

var (
	// ErrPendingDecision rejects any transition attempted while a
	// finished session awaits its save/discard decision.
	ErrPendingDecision = errors.New("session awaiting save or discard")

	// ErrNoPending rejects save/discard when no session has finished.
	ErrNoPending = errors.New("no finished session to decide on")

	// ErrNotRunning rejects finishing early while paused or idle.
	ErrNotRunning = errors.New("timer is not running")

	// ErrBlockEnded rejects a course-locked start whose block has no
	// time left.
	ErrBlockEnded = errors.New("block already ended")
)

// PendingSession is the handshake created the instant a timer finishes.
// While it exists, confirming or discarding it is the only way forward.
type PendingSession struct {
	Mode          Mode
	EarnedMinutes int
}

// Engine owns all countdown state. It is not safe for concurrent use;
// the app loop drives it from a single goroutine.
type Engine struct {
	mode       Mode
	remaining  int // seconds
	total      int // seconds
	running    bool
	sessionKey string
	category   schedule.Category

	pending      *PendingSession
	workMinutes  int
	breakMinutes int
}

// NewEngine creates an idle WORK-mode engine seeded with the given
// work duration. breakMinutes falls back to DefaultBreakMinutes when
// not positive.
func NewEngine(workMinutes, breakMinutes int) *Engine {
	if workMinutes <= 0 {
		workMinutes = 25
	}
	if breakMinutes <= 0 {
		breakMinutes = DefaultBreakMinutes
	}
	e := &Engine{workMinutes: workMinutes, breakMinutes: breakMinutes}
	e.toIdleWork()
	return e
}

func (e *Engine) Mode() Mode                  { return e.mode }
func (e *Engine) Remaining() int              { return e.remaining }
func (e *Engine) Total() int                  { return e.total }
func (e *Engine) Running() bool               { return e.running }
func (e *Engine) SessionKey() string          { return e.sessionKey }
func (e *Engine) Category() schedule.Category { return e.category }
func (e *Engine) WorkMinutes() int            { return e.workMinutes }

// Pending returns a copy of the pending decision, or nil.
func (e *Engine) Pending() *PendingSession {
	if e.pending == nil {
		return nil
	}
	p := *e.pending
	return &p
}

// StartManual begins a WORK session of the given length for the given
// course. The session key is a fresh unique token, so restarting never
// collides with an earlier session.
func (e *Engine) StartManual(category schedule.Category, minutes int) error {
	if e.pending != nil {
		return ErrPendingDecision
	}
	if minutes <= 0 {
		minutes = e.workMinutes
	}
	e.mode = ModeWork
	e.total = minutes * 60
	e.remaining = e.total
	e.running = true
	e.category = category
	e.sessionKey = fmt.Sprintf("manual-%s-%s", category, uuid.NewString())
	return nil
}

// StartCourseLocked begins a COURSE session pinned to the live block:
// the duration is exactly the time left until the block's window ends.
// The key derives from day and block so that re-starting the same live
// block resumes the same logical session identity. Refuses when the
// block has already run out.
func (e *Engine) StartCourseLocked(active schedule.ActiveState, now time.Time) error {
	if e.pending != nil {
		return ErrPendingDecision
	}
	if !active.Active() {
		return ErrBlockEnded
	}
	seconds := int(active.End.Sub(now) / time.Second)
	if seconds <= 0 {
		return ErrBlockEnded
	}
	e.mode = ModeCourse
	e.total = seconds
	e.remaining = seconds
	e.running = true
	e.category = active.Block.Category
	e.sessionKey = fmt.Sprintf("%s-%s", active.DayLabel, active.Block.ID)
	return nil
}

// Tick advances the countdown by one second. Returns true exactly once
// per session, on the tick that completes it; completion stops the
// clock and raises the pending decision.
func (e *Engine) Tick() bool {
	if !e.running || e.pending != nil {
		return false
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining > 0 {
		return false
	}
	e.running = false
	e.raisePending()
	return true
}

// Toggle pauses or resumes the countdown.
func (e *Engine) Toggle() error {
	if e.pending != nil {
		return ErrPendingDecision
	}
	e.running = !e.running
	return nil
}

// FinishEarly stops a running session and raises the pending decision
// with the minutes earned so far.
func (e *Engine) FinishEarly() error {
	if e.pending != nil {
		return ErrPendingDecision
	}
	if !e.running {
		return ErrNotRunning
	}
	e.running = false
	e.raisePending()
	return nil
}

// Reset returns the engine to an idle WORK timer at the configured
// work duration. A pending decision blocks it; Discard is the reset
// path out of a finished session.
func (e *Engine) Reset() error {
	if e.pending != nil {
		return ErrPendingDecision
	}
	e.toIdleWork()
	return nil
}

// ConfirmSave resolves the pending decision. For a WORK or COURSE
// session it returns the session record the caller must log, then
// parks the engine on an idle BREAK timer. For a BREAK session nothing
// is logged and the engine returns to an idle WORK timer.
func (e *Engine) ConfirmSave() (*PendingSession, error) {
	if e.pending == nil {
		return nil, ErrNoPending
	}
	done := *e.pending
	e.pending = nil

	if done.Mode == ModeBreak {
		e.toIdleWork()
		return nil, nil
	}

	e.mode = ModeBreak
	e.total = e.breakMinutes * 60
	e.remaining = e.total
	e.running = false
	e.sessionKey = ""
	return &done, nil
}

// Discard drops the pending decision without logging anything and
// resets to an idle WORK timer.
func (e *Engine) Discard() error {
	if e.pending == nil {
		return ErrNoPending
	}
	e.pending = nil
	e.toIdleWork()
	return nil
}

// SetWorkMinutes updates the configured work duration. It reshapes the
// idle timer immediately only in WORK mode while stopped; otherwise it
// applies on the next return to WORK.
func (e *Engine) SetWorkMinutes(minutes int) {
	if minutes <= 0 {
		return
	}
	e.workMinutes = minutes
	if e.mode == ModeWork && !e.running && e.pending == nil {
		e.total = minutes * 60
		e.remaining = e.total
	}
}

// raisePending computes earned minutes from elapsed time, rounded up.
func (e *Engine) raisePending() {
	earned := (e.total - e.remaining + 59) / 60
	e.pending = &PendingSession{Mode: e.mode, EarnedMinutes: earned}
}

func (e *Engine) toIdleWork() {
	e.mode = ModeWork
	e.total = e.workMinutes * 60
	e.remaining = e.total
	e.running = false
	e.sessionKey = ""
	e.category = ""
}
