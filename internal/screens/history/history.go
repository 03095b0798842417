package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oguzkaplan/studyterm/internal/msgs"
	"github.com/oguzkaplan/studyterm/internal/progression"
	"github.com/oguzkaplan/studyterm/internal/screen"
	"github.com/oguzkaplan/studyterm/internal/store"
	"github.com/oguzkaplan/studyterm/internal/ui/components"
	"github.com/oguzkaplan/studyterm/internal/ui/layout"
	"github.com/oguzkaplan/studyterm/internal/ui/theme"
)

// HistoryScreen lists saved study sessions newest first, with the
// running total and level ladder progress on top.
type HistoryScreen struct {
	store *store.Store

	entries []store.LogEntry
	level   progression.State
	offset  int
	status  string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New loads the study log from the store.
func New(st *store.Store) *HistoryScreen {
	s := &HistoryScreen{store: st}
	s.reload()
	return s
}

func (s *HistoryScreen) reload() {
	entries, err := s.store.Logs().All(context.Background())
	if err != nil {
		s.status = "Kayıtlar yüklenemedi."
		return
	}
	s.entries = entries
	s.level = progression.Compute(entries)
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "Çalışma Geçmişi"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Kaydır"},
		{Key: "Esc", Description: "Geri"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case msgs.LogSavedMsg:
		s.reload()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.entries)-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	visible := layout.ContentHeight(height) - 10
	if visible < 3 {
		visible = 3
	}

	var lines []string
	lines = append(lines, s.renderSummary(), "")

	if len(s.entries) == 0 {
		lines = append(lines, theme.Hint.Render("Henüz kayıtlı oturum yok."))
	}

	end := s.offset + visible
	if end > len(s.entries) {
		end = len(s.entries)
	}
	for _, e := range s.entries[s.offset:end] {
		when := e.OccurredAt.Format("02.01 15:04")
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			theme.Hint.Render(when),
			theme.Body.Render(padLabel(e.Label, 34)),
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
				Render(fmt.Sprintf("%3d dk", e.Minutes)),
		))
	}

	if s.status != "" {
		lines = append(lines, "", theme.Hint.Render(s.status))
	}

	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *HistoryScreen) renderSummary() string {
	next := "En üst seviye"
	if s.level.Next != nil {
		next = fmt.Sprintf("Sıradaki: %s (%d dk)", s.level.Next.Name, s.level.Next.MinMinutes)
	}

	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render(s.level.Current.Name),
		theme.Subtitle.Render(fmt.Sprintf("Toplam %d dakika · %d oturum",
			s.level.TotalMinutes, len(s.entries))),
		"",
		components.ProgressBar{
			Percent: s.level.PercentToNext,
			Width:   36,
			Color:   theme.Primary,
		}.View(),
		theme.Hint.Render(next),
	))
}

func padLabel(label string, width int) string {
	r := []rune(label)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return label + strings.Repeat(" ", width-len(r))
}
