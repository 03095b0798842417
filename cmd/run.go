package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/oguzkaplan/studyterm/internal/app"
	"github.com/oguzkaplan/studyterm/internal/config"
	"github.com/oguzkaplan/studyterm/internal/notify"
	"github.com/oguzkaplan/studyterm/internal/reminder"
	"github.com/oguzkaplan/studyterm/internal/schedule"
	"github.com/oguzkaplan/studyterm/internal/sound"
	"github.com/oguzkaplan/studyterm/internal/store"
	"github.com/oguzkaplan/studyterm/internal/timer"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		fmt.Fprintln(os.Stderr, "Falling back to defaults.")
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	index, err := schedule.LoadDefault()
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	// Saved settings override the config file where they exist.
	settings := st.Settings()
	workMinutes := cfg.WorkMinutes
	if v, ok, _ := settings.Get(ctx, store.SettingWorkMinutes); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			workMinutes = n
		}
	}
	if v, ok, _ := settings.Get(ctx, store.SettingSoundVolume); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.SoundVolume = sound.ClampVolume(f)
		}
	}
	remindersEnabled := cfg.RemindersEnabled
	if v, ok, _ := settings.Get(ctx, store.SettingRemindersEnabled); ok {
		remindersEnabled = v == "true"
	}

	notifier := notify.Desktop{}
	tracker := reminder.NewTracker(ctx, settings, notifier)
	tracker.SetEnabled(remindersEnabled)

	opts := app.Options{
		Resolver: schedule.NewResolver(index),
		Engine:   timer.NewEngine(workMinutes, cfg.BreakMinutes),
		Tracker:  tracker,
		Store:    st,
		Player:   sound.NewPlayer(),
		Notifier: notifier,
		Config:   cfg,
	}
	return app.Run(opts)
}

// loadConfig reads the config file named by --config, or the XDG
// default. A missing or broken file degrades to defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return config.Load(p)
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), err
	}
	return config.Load(path)
}
