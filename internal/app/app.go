package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oguzkaplan/studyterm/internal/config"
	"github.com/oguzkaplan/studyterm/internal/msgs"
	"github.com/oguzkaplan/studyterm/internal/notify"
	"github.com/oguzkaplan/studyterm/internal/progression"
	"github.com/oguzkaplan/studyterm/internal/reminder"
	"github.com/oguzkaplan/studyterm/internal/router"
	"github.com/oguzkaplan/studyterm/internal/schedule"
	"github.com/oguzkaplan/studyterm/internal/screen"
	"github.com/oguzkaplan/studyterm/internal/screens/home"
	"github.com/oguzkaplan/studyterm/internal/sound"
	"github.com/oguzkaplan/studyterm/internal/store"
	"github.com/oguzkaplan/studyterm/internal/timer"
	"github.com/oguzkaplan/studyterm/internal/ui/layout"
)

// Options carries the wired dependencies into the root model.
type Options struct {
	Resolver *schedule.Resolver
	Engine   *timer.Engine
	Tracker  *reminder.Tracker
	Store    *store.Store
	Player   sound.Player
	Notifier notify.Notifier
	Config   config.Config
}

// Model is the root Bubble Tea model. It owns the 1 Hz tick and runs
// the fixed per-tick order: active-block resolution, reminder
// evaluation, countdown decrement. Screens below it never tick on
// their own.
type Model struct {
	router *router.Router
	width  int
	height int

	now      time.Time
	resolver *schedule.Resolver
	engine   *timer.Engine
	tracker  *reminder.Tracker
	st       *store.Store
	player   sound.Player
	notifier notify.Notifier

	level progression.State
	logs  []store.LogEntry
}

func newModel(opts Options) *Model {
	m := &Model{
		resolver: opts.Resolver,
		engine:   opts.Engine,
		tracker:  opts.Tracker,
		st:       opts.Store,
		player:   opts.Player,
		notifier: opts.Notifier,
		now:      time.Now(),
	}

	// Missing or corrupt log data degrades to an empty history.
	entries, err := opts.Store.Logs().All(context.Background())
	if err == nil {
		m.logs = entries
	}
	m.level = progression.Compute(m.logs)

	m.router = router.New(home.New(home.Options{
		Resolver: opts.Resolver,
		Engine:   opts.Engine,
		Tracker:  opts.Tracker,
		Store:    opts.Store,
		Player:   opts.Player,
		Config:   opts.Config,
	}))
	return m
}

func (m *Model) Init() tea.Cmd {
	return msgs.Tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case msgs.TickMsg:
		return m, m.handleTick(msg)

	case msgs.LogSavedMsg:
		m.logs = append([]store.LogEntry{msg.Entry}, m.logs...)
		m.level = progression.Compute(m.logs)
		// Screens below the active one also refresh their level cards.
		return m, m.router.Broadcast(msg)

	case msgs.SessionDoneMsg:
		m.player.Stop()
		m.notifier.Fire("Süre Bitti!", "Oturumu kaydetmek ister misin?")
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.player.Stop()
			return m, tea.Quit
		case "esc":
			// A focused inline editor gets esc before navigation does.
			if sc, ok := m.router.Active().(screen.EscapeInterceptor); ok && sc.InterceptsEscape() {
				return m, m.router.Update(msg)
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// handleTick advances all clock-derived state for one second and
// forwards the tick to the active screen. The wall clock is taken from
// the message, so a clock jump (device sleep) simply recomputes
// everything from the new instant.
func (m *Model) handleTick(msg msgs.TickMsg) tea.Cmd {
	ctx := context.Background()
	m.now = msg.Now

	m.resolver.Refresh(msg.Now)
	m.tracker.Evaluate(ctx, msg.Now, m.resolver)

	var cmds []tea.Cmd
	if m.engine.Tick() {
		cmds = append(cmds, func() tea.Msg { return msgs.SessionDoneMsg{} })
	}

	if cmd := m.router.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, msgs.Tick())
	return tea.Batch(cmds...)
}

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.now.Format("15:04:05"), m.level.Current.Name, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Gezin"},
		{Key: "Enter", Description: "Seç"},
		{Key: "Ctrl+C", Description: "Çık"},
	}
	if hinted, ok := active.(screen.KeyHintProvider); ok {
		if hints := hinted.KeyHints(); hints != nil {
			footerHints = hints
		}
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Geri"},
			{Key: "Ctrl+C", Description: "Çık"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
