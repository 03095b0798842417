// Package msgs holds the bubbletea messages shared between the root
// model and the screens.
package msgs

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/oguzkaplan/studyterm/internal/store"
)

// TickMsg is the 1 Hz clock tick that drives block resolution,
// reminder evaluation and the countdown, in that order.
type TickMsg struct {
	Now time.Time
}

// Tick schedules the next clock tick.
func Tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Now: t}
	})
}

// LogSavedMsg announces a newly appended study-log entry so the root
// model can recompute the progression tier.
type LogSavedMsg struct {
	Entry store.LogEntry
}

// SessionDoneMsg announces a finished countdown so the root model can
// stop the ambient sound and raise the completion notification.
type SessionDoneMsg struct{}
