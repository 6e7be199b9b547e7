// Package config provides configuration management for System Monitor.
// It handles loading, saving, and the key/value preference API the main
// window reads and writes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yllada/system-monitor/common"
	"gopkg.in/yaml.v3"
)

// DefaultProcessColumns lists every process column, name first.
const DefaultProcessColumns = "name,cpu,memory,disk_write,disk_read,download,upload,pid"

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// ProcessTabIndex selects the process subset: GUI apps, mine, or all.
	ProcessTabIndex int `yaml:"process_tab_index"`
	// ProcessColumns is the comma-joined list of visible process columns.
	ProcessColumns string `yaml:"process_columns"`
	// ThemeStyle is "light" or "dark".
	ThemeStyle string `yaml:"theme_style"`

	// ShowNotifications enables desktop notifications for resource alerts.
	ShowNotifications bool `yaml:"show_notifications"`
	// MinimizeToTray hides the window instead of quitting on close.
	MinimizeToTray bool `yaml:"minimize_to_tray"`
	// SampleInterval is how often the status sampler polls the system.
	SampleInterval time.Duration `yaml:"sample_interval"`
	// HistoryEnabled records status samples in the history database.
	HistoryEnabled bool `yaml:"history_enabled"`
	// HistoryRetention is how long recorded samples are kept.
	HistoryRetention time.Duration `yaml:"history_retention"`
	// AlertCPUPercent and AlertMemoryPercent are alert thresholds; 0 disables.
	AlertCPUPercent    float64 `yaml:"alert_cpu_percent"`
	AlertMemoryPercent float64 `yaml:"alert_memory_percent"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ProcessTabIndex:    common.TabAllProcesses,
		ProcessColumns:     DefaultProcessColumns,
		ThemeStyle:         common.ThemeLight,
		ShowNotifications:  true,
		MinimizeToTray:     false,
		SampleInterval:     common.DefaultSampleInterval,
		HistoryEnabled:     true,
		HistoryRetention:   common.DefaultHistoryRetention,
		AlertCPUPercent:    90,
		AlertMemoryPercent: 90,
	}
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.ConfigFileName), nil
}

// Load loads the configuration from the default config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration stored at path, writing defaults there
// when the file does not exist yet.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.SaveTo(path); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	config := DefaultConfig()
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}

	config.validate()
	return config, nil
}

// validate repairs out-of-range values in place.
func (c *Config) validate() {
	if c.ThemeStyle != common.ThemeLight && c.ThemeStyle != common.ThemeDark {
		c.ThemeStyle = common.ThemeLight
	}
	if c.ProcessTabIndex < common.TabGUIApps || c.ProcessTabIndex > common.TabAllProcesses {
		c.ProcessTabIndex = common.TabAllProcesses
	}
	if c.ProcessColumns == "" {
		c.ProcessColumns = DefaultProcessColumns
	}
	if c.SampleInterval <= 0 {
		c.SampleInterval = common.DefaultSampleInterval
	} else if c.SampleInterval < common.MinSampleInterval {
		c.SampleInterval = common.MinSampleInterval
	}
	if c.HistoryRetention <= 0 {
		c.HistoryRetention = common.DefaultHistoryRetention
	}
	c.AlertCPUPercent = clampPercent(c.AlertCPUPercent)
	c.AlertMemoryPercent = clampPercent(c.AlertMemoryPercent)
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// Save saves the configuration to the default config file.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	return nil
}
