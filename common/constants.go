package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "com.systemmonitor.app"
	// AppName is the display name of the application.
	AppName = "System Monitor"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "system-monitor"
)

// File names used by the application.
const (
	ConfigFileName  = "config.yaml"
	HistoryFileName = "history.db"
	LogFileName     = "system-monitor.log"
)

// Timing defaults.
const (
	// KillPickerDelay is how long the kill picker waits before opening, so
	// the popup menu that triggered it has gone from the screen.
	KillPickerDelay = 200 * time.Millisecond
	// DefaultSampleInterval is how often the status sampler polls the system.
	DefaultSampleInterval = 2 * time.Second
	// MinSampleInterval is the lower bound accepted from configuration.
	MinSampleInterval = 500 * time.Millisecond
	// DefaultHistoryRetention is how long status samples are kept on disk.
	DefaultHistoryRetention = 24 * time.Hour
)

// Layout constants.
const (
	// StatusBarWidth is the minimum width of the status sidebar. Wider
	// sidebars are only used on screens where 20% of the width exceeds it.
	StatusBarWidth = 200
	// SidebarScreenRatio is the share of the screen a maximized sidebar takes.
	SidebarScreenRatio = 0.2
	// DefaultWindowWidth is the default main window width.
	DefaultWindowWidth = 1024
	// DefaultWindowHeight is the default main window height.
	DefaultWindowHeight = 680
	// DialogMargin is the standard margin for dialog content.
	DialogMargin = 24
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
	// SparklinePoints is the number of samples drawn in sidebar graphs.
	SparklinePoints = 60
)

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Process tabs, in the order they appear in the tab switcher.
const (
	TabGUIApps = iota
	TabMyProcesses
	TabAllProcesses
)

// Preference keys persisted in the configuration file.
const (
	OptionProcessTabIndex = "process_tab_index"
	OptionProcessColumns  = "process_columns"
	OptionThemeStyle      = "theme_style"
)
