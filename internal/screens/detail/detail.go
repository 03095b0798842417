package detail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/oguzkaplan/studyterm/internal/schedule"
	"github.com/oguzkaplan/studyterm/internal/screen"
	"github.com/oguzkaplan/studyterm/internal/store"
	"github.com/oguzkaplan/studyterm/internal/ui/components"
	"github.com/oguzkaplan/studyterm/internal/ui/layout"
	"github.com/oguzkaplan/studyterm/internal/ui/theme"
)

type tab int

const (
	tabNotes tab = iota
	tabTasks
)

// DetailScreen holds the per-course notebook: free-form notes on one
// tab, a checklist of tasks on the other. Everything persists through
// the store keyed by course.
type DetailScreen struct {
	category schedule.Category
	store    *store.Store

	active    tab
	notes     textarea.Model
	editing   bool
	tasks     []store.Task
	cursor    int
	adding    bool
	taskInput components.TextInput
	status    string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)
var _ screen.EscapeInterceptor = (*DetailScreen)(nil)

// New loads the course's saved notes and tasks and shows the notes tab.
func New(category schedule.Category, st *store.Store) *DetailScreen {
	ta := textarea.New()
	ta.Placeholder = "Ders notlarını buraya yaz..."
	ta.SetWidth(60)
	ta.SetHeight(10)

	s := &DetailScreen{
		category:  category,
		store:     st,
		notes:     ta,
		taskInput: components.NewTextInput("yeni görev", false, 120),
	}

	ctx := context.Background()
	if text, err := st.Notes().Get(ctx, string(category)); err == nil {
		s.notes.SetValue(text)
	}
	s.reloadTasks()
	return s
}

func (s *DetailScreen) reloadTasks() {
	tasks, err := s.store.Tasks().ByCategory(context.Background(), string(s.category))
	if err != nil {
		s.status = "Görevler yüklenemedi."
		return
	}
	s.tasks = tasks
	if s.cursor >= len(s.tasks) {
		s.cursor = len(s.tasks) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *DetailScreen) Init() tea.Cmd {
	return nil
}

// InterceptsEscape keeps esc inside the screen while an editor is
// focused so a stray press cancels the edit instead of leaving it.
func (s *DetailScreen) InterceptsEscape() bool {
	return s.editing || s.adding
}

func (s *DetailScreen) Title() string {
	return string(s.category)
}

func (s *DetailScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Kaydet"},
			{Key: "Esc", Description: "Vazgeç"},
		}
	}
	if s.adding {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ekle"},
			{Key: "Esc", Description: "Vazgeç"},
		}
	}
	hints := []layout.KeyHint{{Key: "Tab", Description: "Sekme"}}
	switch s.active {
	case tabNotes:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Düzenle"})
	case tabTasks:
		hints = append(hints,
			layout.KeyHint{Key: "A", Description: "Ekle"},
			layout.KeyHint{Key: "Enter", Description: "Tamamla"},
			layout.KeyHint{Key: "X", Description: "Sil"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Geri"})
}

func (s *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.editing {
		return s.updateNotes(msg)
	}
	if s.adding {
		return s.updateTaskInput(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return s.handleKey(key)
	}
	return s, nil
}

func (s *DetailScreen) updateNotes(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		s.editing = false
		s.notes.Blur()
		return s, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+s" {
		ctx := context.Background()
		if err := s.store.Notes().Set(ctx, string(s.category), s.notes.Value()); err != nil {
			s.status = "Not kaydedilemedi."
		} else {
			s.status = "Not kaydedildi."
		}
		s.editing = false
		s.notes.Blur()
		return s, nil
	}

	var cmd tea.Cmd
	s.notes, cmd = s.notes.Update(msg)
	return s, cmd
}

func (s *DetailScreen) updateTaskInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		s.adding = false
		s.taskInput.Blur()
		s.taskInput.SetValue("")
		return s, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		text := strings.TrimSpace(s.taskInput.Value())
		s.adding = false
		s.taskInput.Blur()
		s.taskInput.SetValue("")
		if text == "" {
			return s, nil
		}
		task := store.Task{
			ID:        uuid.NewString(),
			Category:  string(s.category),
			Text:      text,
			CreatedAt: time.Now(),
		}
		if err := s.store.Tasks().Add(context.Background(), task); err != nil {
			s.status = "Görev eklenemedi."
			return s, nil
		}
		s.reloadTasks()
		s.cursor = len(s.tasks) - 1
		return s, nil
	}

	var cmd tea.Cmd
	s.taskInput, cmd = s.taskInput.Update(msg)
	return s, cmd
}

func (s *DetailScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.status = ""

	switch msg.String() {
	case "tab":
		if s.active == tabNotes {
			s.active = tabTasks
		} else {
			s.active = tabNotes
		}
		return s, nil
	}

	switch s.active {
	case tabNotes:
		if msg.String() == "enter" {
			s.editing = true
			return s, s.notes.Focus()
		}

	case tabTasks:
		switch msg.String() {
		case "a", "A":
			s.adding = true
			return s, s.taskInput.Focus()

		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.tasks)-1 {
				s.cursor++
			}

		case "enter", "space":
			if s.cursor < len(s.tasks) {
				if err := s.store.Tasks().Toggle(context.Background(), s.tasks[s.cursor].ID); err != nil {
					s.status = "Görev güncellenemedi."
					return s, nil
				}
				s.reloadTasks()
			}

		case "x", "X":
			if s.cursor < len(s.tasks) {
				if err := s.store.Tasks().Delete(context.Background(), s.tasks[s.cursor].ID); err != nil {
					s.status = "Görev silinemedi."
					return s, nil
				}
				s.reloadTasks()
			}
		}
	}
	return s, nil
}

func (s *DetailScreen) View(width, height int) string {
	var body string
	switch s.active {
	case tabNotes:
		body = s.renderNotes()
	case tabTasks:
		body = s.renderTasks()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.renderTabs(),
		"",
		body,
	)
	if s.status != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "",
			theme.Hint.Render(s.status))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *DetailScreen) renderTabs() string {
	activeStyle := lipgloss.NewStyle().
		Foreground(theme.CourseColor(s.category)).
		Bold(true).
		Underline(true).
		Padding(0, 2)
	idleStyle := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Padding(0, 2)

	notes, tasks := idleStyle, activeStyle
	if s.active == tabNotes {
		notes, tasks = activeStyle, idleStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		notes.Render("NOTLAR"),
		tasks.Render(fmt.Sprintf("GÖREVLER (%d)", len(s.tasks))),
	)
}

func (s *DetailScreen) renderNotes() string {
	if s.editing {
		return s.notes.View()
	}
	text := s.notes.Value()
	if strings.TrimSpace(text) == "" {
		text = theme.Hint.Render("Henüz not yok. Düzenlemek için Enter.")
	}
	return theme.Card.Width(64).Render(text)
}

func (s *DetailScreen) renderTasks() string {
	var lines []string

	if s.adding {
		lines = append(lines, theme.Body.Render("Yeni görev: ")+s.taskInput.View(), "")
	}

	if len(s.tasks) == 0 && !s.adding {
		lines = append(lines, theme.Hint.Render("Görev yok. Eklemek için A."))
	}

	for i, task := range s.tasks {
		check := "[ ]"
		style := theme.Body
		if task.Completed {
			check = "[✓]"
			style = lipgloss.NewStyle().Foreground(theme.TextDim).Strikethrough(true)
		}
		line := fmt.Sprintf("%s %s", check, task.Text)
		if i == s.cursor && !s.adding {
			line = lipgloss.NewStyle().
				Foreground(theme.CourseColor(s.category)).
				Bold(true).
				Render("› " + line)
		} else {
			line = "  " + style.Render(line)
		}
		lines = append(lines, line)
	}
	return theme.Card.Width(64).Render(strings.Join(lines, "\n"))
}
