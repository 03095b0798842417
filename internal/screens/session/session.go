package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/oguzkaplan/studyterm/internal/msgs"
	"github.com/oguzkaplan/studyterm/internal/schedule"
	"github.com/oguzkaplan/studyterm/internal/screen"
	"github.com/oguzkaplan/studyterm/internal/sound"
	"github.com/oguzkaplan/studyterm/internal/store"
	"github.com/oguzkaplan/studyterm/internal/timer"
	"github.com/oguzkaplan/studyterm/internal/ui/components"
	"github.com/oguzkaplan/studyterm/internal/ui/layout"
	"github.com/oguzkaplan/studyterm/internal/ui/theme"
)

// Options wires the session screen.
type Options struct {
	Engine   *timer.Engine
	Resolver *schedule.Resolver
	Store    *store.Store
	Player   sound.Player
	Category schedule.Category
	Label    string // course session label; empty for manual sessions
	Volume   float64
}

// SessionScreen drives the focus timer: countdown display, pause and
// finish controls, ambient sound selection, and the save/discard modal
// raised when a session completes.
type SessionScreen struct {
	opts Options

	now          time.Time
	status       string
	soundIdx     int // index into sound.Catalog, -1 = off
	volume       float64
	editing      bool
	minutesInput components.TextInput
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeInterceptor = (*SessionScreen)(nil)

// New creates the session screen. When the engine is idle a manual
// WORK session starts immediately; a course-locked engine is left
// exactly as the caller armed it.
func New(opts Options) *SessionScreen {
	s := &SessionScreen{
		opts:         opts,
		now:          time.Now(),
		soundIdx:     -1,
		volume:       sound.ClampVolume(opts.Volume),
		minutesInput: components.NewTextInput("dakika", true, 3),
	}

	// Arm a fresh manual session only when the engine is a fully idle
	// WORK timer; a parked break or an in-flight session stays put.
	e := opts.Engine
	if e.Mode() == timer.ModeWork && !e.Running() && e.Pending() == nil && e.SessionKey() == "" {
		_ = e.StartManual(opts.Category, e.WorkMinutes())
	}
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	return nil
}

// InterceptsEscape claims esc while the duration editor is open so the
// press cancels the edit instead of leaving the screen.
func (s *SessionScreen) InterceptsEscape() bool {
	return s.editing
}

func (s *SessionScreen) Title() string {
	return "Odak Oturumu"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.opts.Engine.Pending() != nil {
		return []layout.KeyHint{
			{Key: "S", Description: "Kaydet"},
			{Key: "D", Description: "Sil"},
		}
	}
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Onayla"},
			{Key: "Esc", Description: "Vazgeç"},
		}
	}
	return []layout.KeyHint{
		{Key: "Boşluk", Description: "Durdur/Başlat"},
		{Key: "F", Description: "Erken Bitir"},
		{Key: "R", Description: "Sıfırla"},
		{Key: "M", Description: "Ses"},
		{Key: "+/-", Description: "Ses Düzeyi"},
		{Key: "E", Description: "Süre"},
		{Key: "Esc", Description: "Geri"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case msgs.TickMsg:
		s.now = msg.Now
		return s, nil

	case tea.KeyMsg:
		if s.opts.Engine.Pending() != nil {
			return s.handlePendingKey(msg)
		}
		if s.editing {
			return s.handleEditingKey(msg)
		}
		return s.handleKey(msg)
	}

	if s.editing {
		var cmd tea.Cmd
		s.minutesInput, cmd = s.minutesInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	e := s.opts.Engine
	s.status = ""

	switch msg.String() {
	case "space":
		if err := e.Toggle(); err != nil {
			s.status = err.Error()
		}

	case "f", "F":
		if err := e.FinishEarly(); err == timer.ErrNotRunning {
			s.status = "Zamanlayıcı çalışmıyor."
		} else if err == nil {
			return s, func() tea.Msg { return msgs.SessionDoneMsg{} }
		}

	case "r", "R":
		if err := e.Reset(); err == nil {
			s.stopSound()
		}

	case "m", "M":
		s.cycleSound()

	case "+", "=":
		s.adjustVolume(0.1)
	case "-", "_":
		s.adjustVolume(-0.1)

	case "e", "E":
		if e.Mode() == timer.ModeWork && !e.Running() {
			s.editing = true
			s.minutesInput.SetValue(fmt.Sprintf("%d", e.WorkMinutes()))
			return s, s.minutesInput.Focus()
		}
		s.status = "Süre sadece duran Odaklanma modunda değişir."
	}
	return s, nil
}

func (s *SessionScreen) handleEditingKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		minutes, err := s.minutesInput.NumericValue()
		if err != nil || minutes <= 0 {
			s.status = "Geçerli bir dakika gir."
			return s, nil
		}
		s.opts.Engine.SetWorkMinutes(minutes)
		s.persistWorkMinutes(minutes)
		s.editing = false
		s.minutesInput.Blur()
		return s, nil

	case "esc", "e", "E":
		s.editing = false
		s.minutesInput.Blur()
		return s, nil
	}

	var cmd tea.Cmd
	s.minutesInput, cmd = s.minutesInput.Update(msg)
	return s, cmd
}

func (s *SessionScreen) handlePendingKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	e := s.opts.Engine

	switch msg.String() {
	case "s", "S":
		saved, err := e.ConfirmSave()
		if err != nil {
			return s, nil
		}
		s.stopSound()
		if saved == nil {
			// Break confirmed; back to an idle work timer.
			return s, nil
		}
		entry := store.LogEntry{
			ID:         uuid.NewString(),
			Label:      s.entryLabel(saved),
			OccurredAt: s.now,
			Minutes:    saved.EarnedMinutes,
		}
		// Write failure keeps the in-memory log authoritative.
		_ = s.opts.Store.Logs().Append(context.Background(), entry)
		return s, func() tea.Msg { return msgs.LogSavedMsg{Entry: entry} }

	case "d", "D":
		if err := e.Discard(); err == nil {
			s.stopSound()
		}
		return s, nil
	}
	return s, nil
}

// entryLabel names the log entry the way the history screen shows it:
// course sessions carry the block text and day, manual sessions the
// course code and today's date.
func (s *SessionScreen) entryLabel(saved *timer.PendingSession) string {
	if saved.Mode == timer.ModeCourse && s.opts.Label != "" {
		return s.opts.Label
	}
	if s.opts.Category != "" {
		return fmt.Sprintf("%s @ %s", s.opts.Category, formatTurkishDate(s.now))
	}
	return "Serbest Çalışma"
}

func (s *SessionScreen) persistWorkMinutes(minutes int) {
	_ = s.opts.Store.Settings().Set(context.Background(),
		store.SettingWorkMinutes, fmt.Sprintf("%d", minutes))
}

func (s *SessionScreen) cycleSound() {
	s.soundIdx++
	if s.soundIdx >= len(sound.Catalog) {
		s.soundIdx = -1
		s.opts.Player.Stop()
		return
	}
	snd := sound.Catalog[s.soundIdx]
	if err := s.opts.Player.Play(snd.URL, s.volume); err != nil {
		s.status = "Ses çalınamadı."
	}
}

func (s *SessionScreen) adjustVolume(delta float64) {
	s.volume = sound.ClampVolume(s.volume + delta)
	_ = s.opts.Store.Settings().Set(context.Background(),
		store.SettingSoundVolume, fmt.Sprintf("%.2f", s.volume))
	if s.soundIdx >= 0 {
		_ = s.opts.Player.Play(sound.Catalog[s.soundIdx].URL, s.volume)
	}
}

func (s *SessionScreen) stopSound() {
	s.soundIdx = -1
	s.opts.Player.Stop()
}

func (s *SessionScreen) View(width, height int) string {
	e := s.opts.Engine

	if e.Pending() != nil {
		return s.renderPending(width, height)
	}

	label := modeLabel(e.Mode())
	clock := formatClock(e.Remaining())

	elapsed := 0.0
	if e.Total() > 0 {
		elapsed = float64(e.Total()-e.Remaining()) / float64(e.Total()) * 100
	}

	var lines []string
	lines = append(lines,
		theme.Subtitle.Render(string(s.opts.Category)),
		"",
		theme.Title.Render(label),
		"",
		lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(renderBigClock(clock)),
		"",
		components.ProgressBar{Percent: elapsed, Width: 40, Color: theme.CourseColor(s.opts.Category)}.View(),
		"",
	)

	state := "⏸ duraklatıldı"
	if e.Running() {
		state = "▶ çalışıyor"
	}
	lines = append(lines, theme.Hint.Render(state))

	if s.editing {
		lines = append(lines, "", theme.Body.Render("Yeni süre (dk): ")+s.minutesInput.View())
	}
	if s.soundIdx >= 0 {
		lines = append(lines, theme.Hint.Render(
			fmt.Sprintf("♪ %s (ses %%%d)", sound.Catalog[s.soundIdx].Name, int(s.volume*100))))
	}
	if s.status != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Warning).Render(s.status))
	}

	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SessionScreen) renderPending(width, height int) string {
	p := s.opts.Engine.Pending()

	title := "Süre doldu!"
	body := fmt.Sprintf("%d dakikalık oturum kazandın.", p.EarnedMinutes)
	if p.Mode == timer.ModeBreak {
		title = "Mola bitti!"
		body = "Çalışmaya dönmeye hazır mısın?"
	}

	modal := theme.ModalBorder.Render(
		theme.Title.Render(title) + "\n\n" +
			theme.Body.Render(body) + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("[S] Kaydet") +
			"   " +
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("[D] Sil"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

func modeLabel(m timer.Mode) string {
	switch m {
	case timer.ModeCourse:
		return "Ders Süresi"
	case timer.ModeBreak:
		return "Mola"
	default:
		return "Odaklanma"
	}
}

// formatClock renders remaining seconds as MM:SS; course sessions can
// exceed an hour, so minutes may be three digits.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// renderBigClock spaces the digits out so the countdown dominates the
// screen without font tricks.
func renderBigClock(clock string) string {
	var b strings.Builder
	for i, r := range clock {
		if i > 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

func formatTurkishDate(t time.Time) string {
	return fmt.Sprintf("%02d %s", t.Day(), turkishMonths[t.Month()-1])
}
