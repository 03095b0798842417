package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oguzkaplan/studyterm/internal/config"
	"github.com/oguzkaplan/studyterm/internal/msgs"
	"github.com/oguzkaplan/studyterm/internal/progression"
	"github.com/oguzkaplan/studyterm/internal/reminder"
	"github.com/oguzkaplan/studyterm/internal/router"
	"github.com/oguzkaplan/studyterm/internal/schedule"
	"github.com/oguzkaplan/studyterm/internal/screen"
	"github.com/oguzkaplan/studyterm/internal/screens/detail"
	"github.com/oguzkaplan/studyterm/internal/screens/history"
	sessionscreen "github.com/oguzkaplan/studyterm/internal/screens/session"
	"github.com/oguzkaplan/studyterm/internal/sound"
	"github.com/oguzkaplan/studyterm/internal/store"
	"github.com/oguzkaplan/studyterm/internal/timer"
	"github.com/oguzkaplan/studyterm/internal/ui/components"
	"github.com/oguzkaplan/studyterm/internal/ui/layout"
	"github.com/oguzkaplan/studyterm/internal/ui/theme"
)

// Options carries the shared dependencies the home screen and its
// child screens need.
type Options struct {
	Resolver *schedule.Resolver
	Engine   *timer.Engine
	Tracker  *reminder.Tracker
	Store    *store.Store
	Player   sound.Player
	Config   config.Config
}

// HomeScreen shows the schedule table with the day cursor, the exam
// countdown and the level card. It is the root of the screen stack.
type HomeScreen struct {
	opts Options

	now      time.Time
	dayIdx   int
	blockIdx int
	level    progression.State
	status   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen with the cursor on today when today is
// inside the schedule month.
func New(opts Options) *HomeScreen {
	s := &HomeScreen{opts: opts, now: time.Now()}

	days := opts.Resolver.Index().Days()
	for i := range days {
		if s.isToday(&days[i]) {
			s.dayIdx = i
			break
		}
	}
	s.reloadLevel()
	return s
}

func (s *HomeScreen) isToday(day *schedule.DayRecord) bool {
	return s.now.Day() == day.DayOfMonth() && s.now.Month() == s.opts.Resolver.Index().Month()
}

func (s *HomeScreen) reloadLevel() {
	entries, err := s.opts.Store.Logs().All(context.Background())
	if err != nil {
		entries = nil
	}
	s.level = progression.Compute(entries)
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Ders Programı"
}

func (s *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓←→", Description: "Gezin"},
		{Key: "Enter", Description: "Ders Detayı"},
		{Key: "T", Description: "Zamanlayıcı"},
		{Key: "C", Description: "Canlı Ders"},
		{Key: "H", Description: "Geçmiş"},
		{Key: "B", Description: "Bildirimler"},
	}
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case msgs.TickMsg:
		s.now = msg.Now
		return s, nil

	case msgs.LogSavedMsg:
		s.reloadLevel()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *HomeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	days := s.opts.Resolver.Index().Days()
	s.status = ""

	switch msg.String() {
	case "up", "k":
		if s.dayIdx > 0 {
			s.dayIdx--
			s.blockIdx = 0
		}
	case "down", "j":
		if s.dayIdx < len(days)-1 {
			s.dayIdx++
			s.blockIdx = 0
		}
	case "left":
		if s.blockIdx > 0 {
			s.blockIdx--
		}
	case "right":
		if s.blockIdx < len(days[s.dayIdx].Blocks())-1 {
			s.blockIdx++
		}

	case "enter":
		block := s.selectedBlock()
		if block == nil || !isCourse(block.Category) {
			s.status = "Bu blok için detay sayfası yok."
			return s, nil
		}
		return s, push(detail.New(block.Category, s.opts.Store))

	case "t", "T":
		category := schedule.Comp100
		if b := s.selectedBlock(); b != nil && isCourse(b.Category) {
			category = b.Category
		}
		return s, push(sessionscreen.New(sessionscreen.Options{
			Engine:   s.opts.Engine,
			Resolver: s.opts.Resolver,
			Store:    s.opts.Store,
			Player:   s.opts.Player,
			Category: category,
			Volume:   s.opts.Config.SoundVolume,
		}))

	case "c", "C":
		active := s.opts.Resolver.FindActive(s.now)
		if err := s.opts.Engine.StartCourseLocked(active, s.now); err != nil {
			s.status = "Ders süresi dolmuş veya hatalı zaman."
			return s, nil
		}
		return s, push(sessionscreen.New(sessionscreen.Options{
			Engine:   s.opts.Engine,
			Resolver: s.opts.Resolver,
			Store:    s.opts.Store,
			Player:   s.opts.Player,
			Category: active.Block.Category,
			Label:    fmt.Sprintf("%s @ %s", active.Block.Text, active.DayLabel),
			Volume:   s.opts.Config.SoundVolume,
		}))

	case "h", "H":
		return s, push(history.New(s.opts.Store))

	case "b", "B":
		s.opts.Tracker.SetEnabled(!s.opts.Tracker.Enabled())
		state, stored := "kapalı", "false"
		if s.opts.Tracker.Enabled() {
			state, stored = "açık", "true"
		}
		_ = s.opts.Store.Settings().Set(context.Background(), store.SettingRemindersEnabled, stored)
		s.status = "Bildirimler " + state + "."
	}
	return s, nil
}

func push(sc screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: sc} }
}

func (s *HomeScreen) selectedBlock() *schedule.Block {
	days := s.opts.Resolver.Index().Days()
	blocks := days[s.dayIdx].Blocks()
	if s.blockIdx >= len(blocks) {
		return nil
	}
	return &blocks[s.blockIdx]
}

func isCourse(c schedule.Category) bool {
	for _, course := range schedule.Courses {
		if c == course {
			return true
		}
	}
	return false
}

func (s *HomeScreen) View(width, height int) string {
	var sections []string

	if card := s.renderExamCard(width); card != "" {
		sections = append(sections, card)
	}
	sections = append(sections, s.renderLevelCard(width))
	if banner := s.renderActiveBanner(width); banner != "" {
		sections = append(sections, banner)
	}
	if s.status != "" {
		sections = append(sections, theme.Hint.Render("  "+s.status))
	}

	used := lipgloss.Height(strings.Join(sections, "\n"))
	sections = append(sections, s.renderTable(width, height-used-1))

	return strings.Join(sections, "\n")
}

func (s *HomeScreen) renderExamCard(width int) string {
	exam := s.opts.Resolver.NextExam(s.now)
	if exam == nil {
		return ""
	}

	text := fmt.Sprintf("Sıradaki Sınav: %s", exam.Block.Text)
	count := fmt.Sprintf("%d GÜN KALDI", exam.DaysLeft)
	line := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(text) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(count)

	return lipgloss.NewStyle().
		Width(width - 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(0, 1).
		Render(line)
}

func (s *HomeScreen) renderLevelCard(width int) string {
	label := fmt.Sprintf("Seviye: %s  ·  Toplam %d dk", s.level.Current.Name, s.level.TotalMinutes)
	bar := components.ProgressBar{
		Percent: s.level.PercentToNext,
		Width:   width - 10,
		Color:   theme.Warning,
	}

	var next string
	if s.level.Next != nil {
		next = fmt.Sprintf("Sonraki: %s (%d dk)", s.level.Next.Name, s.level.Next.MinMinutes)
	} else {
		next = "En üst seviyedesin!"
	}

	content := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(label) + "\n" +
		bar.View() + "\n" +
		theme.Hint.Render(next)

	return lipgloss.NewStyle().
		Width(width - 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(content)
}

func (s *HomeScreen) renderActiveBanner(width int) string {
	active := s.opts.Resolver.FindActive(s.now)
	if !active.Active() {
		return ""
	}

	_, progress := s.opts.Resolver.ProgressOf(*active.Block, active.DayLabel, s.now)
	line := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("▶ Şu an: %s", active.Block.Text)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  (%%%.0f tamamlandı, C ile başla)", progress))

	return lipgloss.NewStyle().
		Width(width - 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(0, 1).
		Render(line)
}

// renderTable shows a window of day rows sized to the space left,
// keeping the selected day visible.
func (s *HomeScreen) renderTable(width, height int) string {
	days := s.opts.Resolver.Index().Days()

	rows := make([]string, len(days))
	total := 0
	for i := range days {
		rows[i] = s.renderDay(&days[i], width, i == s.dayIdx)
		total += lipgloss.Height(rows[i])
	}

	// Scroll so the selected row is on screen.
	start := s.dayIdx
	used := 0
	for start > 0 {
		h := lipgloss.Height(rows[start-1])
		if used+h > height/2 {
			break
		}
		used += h
		start--
	}

	var b strings.Builder
	remaining := height
	for i := start; i < len(rows) && remaining > 0; i++ {
		h := lipgloss.Height(rows[i])
		if h > remaining && i != start {
			break
		}
		b.WriteString(rows[i])
		b.WriteString("\n")
		remaining -= h
	}
	return b.String()
}

func (s *HomeScreen) renderDay(day *schedule.DayRecord, width int, selected bool) string {
	colWidth := (width - 16) / 3
	if colWidth < 20 {
		colWidth = 20
	}

	dateStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(12)
	if s.isToday(day) {
		dateStyle = dateStyle.Foreground(theme.Primary).Bold(true)
	}
	date := dateStyle.Render(fmt.Sprintf("%s\n%s", day.Date, day.DayName))

	offset := 0
	morning := s.renderSlot(day, day.Morning, colWidth, selected, &offset)
	afternoon := s.renderSlot(day, day.Afternoon, colWidth, selected, &offset)
	evening := s.renderSlot(day, day.Evening, colWidth, selected, &offset)

	row := lipgloss.JoinHorizontal(lipgloss.Top, date, morning, afternoon, evening)

	border := theme.Border
	if selected {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(border).
		Render(row)
}

// renderSlot renders one slot column. offset threads the flat block
// index across the three slots so the selection cursor lines up with
// DayRecord.Blocks() ordering.
func (s *HomeScreen) renderSlot(day *schedule.DayRecord, blocks []schedule.Block, colWidth int, daySelected bool, offset *int) string {
	var lines []string
	for i := range blocks {
		flatIdx := *offset + i
		lines = append(lines, s.renderBlock(day, &blocks[i], colWidth, daySelected && flatIdx == s.blockIdx))
	}
	*offset += len(blocks)
	if len(lines) == 0 {
		lines = append(lines, theme.Hint.Render("—"))
	}
	return lipgloss.NewStyle().Width(colWidth).Render(strings.Join(lines, "\n"))
}

func (s *HomeScreen) renderBlock(day *schedule.DayRecord, b *schedule.Block, colWidth int, selected bool) string {
	status, progress := s.opts.Resolver.ProgressOf(*b, day.Date, s.now)

	glyph := "·"
	style := lipgloss.NewStyle().Foreground(theme.CourseColor(b.Category))
	switch status {
	case schedule.StatusPast:
		glyph = "✓"
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
	case schedule.StatusPresent:
		glyph = "▶"
		style = style.Bold(true)
	}

	text := b.Text
	if status == schedule.StatusPresent {
		text = fmt.Sprintf("%s %%%.0f", text, progress)
	}

	prefix := " "
	if selected {
		prefix = "▸"
		style = style.Underline(true)
	}

	line := fmt.Sprintf("%s%s %s", prefix, glyph, text)
	if r := []rune(line); len(r) > colWidth {
		line = string(r[:colWidth])
	}
	return style.Render(line)
}
