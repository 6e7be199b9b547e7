package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yllada/system-monitor/common"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ProcessTabIndex != common.TabAllProcesses {
		t.Errorf("ProcessTabIndex = %d, want %d", cfg.ProcessTabIndex, common.TabAllProcesses)
	}
	if cfg.ProcessColumns != DefaultProcessColumns {
		t.Errorf("ProcessColumns = %q", cfg.ProcessColumns)
	}
	if cfg.ThemeStyle != common.ThemeLight {
		t.Errorf("ThemeStyle = %q, want light", cfg.ThemeStyle)
	}
	if cfg.SampleInterval != 2*time.Second {
		t.Errorf("SampleInterval = %v, want 2s", cfg.SampleInterval)
	}
	if !cfg.HistoryEnabled {
		t.Error("history should be enabled by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Config)
		check func(*Config) bool
	}{
		{
			name:  "unknown theme becomes light",
			apply: func(c *Config) { c.ThemeStyle = "solarized" },
			check: func(c *Config) bool { return c.ThemeStyle == common.ThemeLight },
		},
		{
			name:  "negative tab becomes all processes",
			apply: func(c *Config) { c.ProcessTabIndex = -1 },
			check: func(c *Config) bool { return c.ProcessTabIndex == common.TabAllProcesses },
		},
		{
			name:  "tab beyond range becomes all processes",
			apply: func(c *Config) { c.ProcessTabIndex = 7 },
			check: func(c *Config) bool { return c.ProcessTabIndex == common.TabAllProcesses },
		},
		{
			name:  "empty columns restored",
			apply: func(c *Config) { c.ProcessColumns = "" },
			check: func(c *Config) bool { return c.ProcessColumns == DefaultProcessColumns },
		},
		{
			name:  "zero interval restored",
			apply: func(c *Config) { c.SampleInterval = 0 },
			check: func(c *Config) bool { return c.SampleInterval == common.DefaultSampleInterval },
		},
		{
			name:  "tiny interval raised to minimum",
			apply: func(c *Config) { c.SampleInterval = time.Millisecond },
			check: func(c *Config) bool { return c.SampleInterval == common.MinSampleInterval },
		},
		{
			name:  "alert threshold clamped",
			apply: func(c *Config) { c.AlertCPUPercent = 250 },
			check: func(c *Config) bool { return c.AlertCPUPercent == 100 },
		},
		{
			name:  "dark theme kept",
			apply: func(c *Config) { c.ThemeStyle = common.ThemeDark },
			check: func(c *Config) bool { return c.ThemeStyle == common.ThemeDark },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.apply(cfg)
			cfg.validate()
			if !tt.check(cfg) {
				t.Errorf("validate() left %+v", cfg)
			}
		})
	}
}

func TestLoadFrom_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.ThemeStyle != common.ThemeLight {
		t.Errorf("ThemeStyle = %q", cfg.ThemeStyle)
	}
	if !common.FileExists(path) {
		t.Error("LoadFrom() should write the default file")
	}
}

func TestLoadFrom_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme_style: dark\nbogus_key: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if !errors.Is(err, common.ErrConfigLoad) {
		t.Errorf("LoadFrom() error = %v, want ErrConfigLoad", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.ThemeStyle = common.ThemeDark
	cfg.ProcessTabIndex = common.TabMyProcesses
	cfg.SampleInterval = 5 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.ThemeStyle != common.ThemeDark {
		t.Errorf("ThemeStyle = %q, want dark", loaded.ThemeStyle)
	}
	if loaded.ProcessTabIndex != common.TabMyProcesses {
		t.Errorf("ProcessTabIndex = %d", loaded.ProcessTabIndex)
	}
	if loaded.SampleInterval != 5*time.Second {
		t.Errorf("SampleInterval = %v", loaded.SampleInterval)
	}
}

func TestStore_SetWritesImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}

	if err := store.Set(common.OptionThemeStyle, common.ThemeDark); err != nil {
		t.Fatalf("Set(theme) error = %v", err)
	}
	if err := store.Set(common.OptionProcessTabIndex, 1); err != nil {
		t.Fatalf("Set(tab) error = %v", err)
	}
	if err := store.Set(common.OptionProcessColumns, "name,pid"); err != nil {
		t.Fatalf("Set(columns) error = %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.ThemeStyle != common.ThemeDark {
		t.Errorf("theme on disk = %q", reloaded.ThemeStyle)
	}
	if reloaded.ProcessTabIndex != 1 {
		t.Errorf("tab on disk = %d", reloaded.ProcessTabIndex)
	}
	if reloaded.ProcessColumns != "name,pid" {
		t.Errorf("columns on disk = %q", reloaded.ProcessColumns)
	}

	if got := store.String(common.OptionThemeStyle); got != common.ThemeDark {
		t.Errorf("String(theme) = %q", got)
	}
	if got := store.Int(common.OptionProcessTabIndex); got != 1 {
		t.Errorf("Int(tab) = %d", got)
	}
}

func TestStore_SetErrors(t *testing.T) {
	store := NewStore(DefaultConfig(), filepath.Join(t.TempDir(), "config.yaml"))

	if err := store.Set("window_width", 10); !errors.Is(err, common.ErrUnknownOption) {
		t.Errorf("Set(unknown) error = %v, want ErrUnknownOption", err)
	}
	if err := store.Set(common.OptionProcessTabIndex, "two"); !errors.Is(err, common.ErrInvalidOption) {
		t.Errorf("Set(tab, string) error = %v, want ErrInvalidOption", err)
	}
	if err := store.Set(common.OptionThemeStyle, 3); !errors.Is(err, common.ErrInvalidOption) {
		t.Errorf("Set(theme, int) error = %v, want ErrInvalidOption", err)
	}
}

func TestStore_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store := NewStore(DefaultConfig(), path)

	err := store.Update(func(c *Config) {
		c.ShowNotifications = false
		c.SampleInterval = 0
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	cfg := store.Config()
	if cfg.ShowNotifications {
		t.Error("ShowNotifications should be false")
	}
	if cfg.SampleInterval != common.DefaultSampleInterval {
		t.Errorf("Update() should validate, interval = %v", cfg.SampleInterval)
	}
}
