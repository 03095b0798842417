package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, "work_minutes: 50\nbreak_minutes: 10\nreminders_enabled: false\nsound_volume: 0.3\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WorkMinutes != 50 || cfg.BreakMinutes != 10 {
		t.Errorf("durations = %d/%d, want 50/10", cfg.WorkMinutes, cfg.BreakMinutes)
	}
	if cfg.RemindersEnabled {
		t.Error("reminders should be disabled")
	}
	if cfg.SoundVolume != 0.3 {
		t.Errorf("volume = %v, want 0.3", cfg.SoundVolume)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "work_minutes: 45\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WorkMinutes != 45 {
		t.Errorf("work minutes = %d, want 45", cfg.WorkMinutes)
	}
	if cfg.BreakMinutes != Default().BreakMinutes {
		t.Errorf("break minutes = %d, want default", cfg.BreakMinutes)
	}
}

func TestLoadRejectsOutOfRangeValues(t *testing.T) {
	path := writeConfig(t, "work_minutes: -5\nbreak_minutes: 0\nsound_volume: 1.5\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WorkMinutes != Default().WorkMinutes {
		t.Errorf("work minutes = %d, want default", cfg.WorkMinutes)
	}
	if cfg.BreakMinutes != Default().BreakMinutes {
		t.Errorf("break minutes = %d, want default", cfg.BreakMinutes)
	}
	if cfg.SoundVolume != Default().SoundVolume {
		t.Errorf("volume = %v, want default", cfg.SoundVolume)
	}
}

func TestLoadBrokenYAMLReturnsDefaultsAndError(t *testing.T) {
	path := writeConfig(t, ":\n:::")

	cfg, err := Load(path)
	if err == nil {
		t.Error("expected a parse error")
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults on parse failure", cfg)
	}
}
