package controller

import (
	"time"

	"github.com/yllada/system-monitor/common"
)

// Preferences is the persisted key/value preference store.
type Preferences interface {
	Int(key string) int
	String(key string) string
	Set(key string, value any) error
}

// ProcessView is the process list.
type ProcessView interface {
	FocusProcessView()
	Search(query string)
	ShowColumns(flags ColumnFlags)
	UpdateStatus(status string)
	UpdateProcessNumber(count int)
}

// StatusPanel is the live status sidebar.
type StatusPanel interface {
	SwitchToOnlyGUI()
	SwitchToOnlyMe()
	SwitchToAllProcess()
	SetFixedWidth(width int)
	Refresh()
}

// Toolbar is the header bar holding the search entry.
type Toolbar interface {
	FocusInput()
}

// Window is the top level window.
type Window interface {
	SetPalette(p Palette)
	Repaint()
	SetThemeActionsVisible(light, dark bool)
	ShowKillDialog(pid int)
	// CloseKillDialog dismisses the open confirmation without resolving it.
	CloseKillDialog()
	ShowKillPicker()
	CloseKillPicker()
}

// Scheduler delivers ev to Dispatch once d has elapsed.
type Scheduler interface {
	After(d time.Duration, ev Event)
}

// Deps holds the collaborators of a Controller.
type Deps struct {
	Preferences Preferences
	Theme       ThemeService
	Processes   ProcessView
	Status      StatusPanel
	Toolbar     Toolbar
	Window      Window
	Scheduler   Scheduler
	Signaler    Signaler
	Logger      common.Logger
}

// Controller routes frontend events to the collaborators.
type Controller struct {
	deps     Deps
	kill     *KillFlow
	lastKill KillOutcome
}

// New creates a controller, applies the stored theme and asks the status
// panel for its first sample.
func New(deps Deps) *Controller {
	c := &Controller{
		deps: deps,
		kill: NewKillFlow(deps.Signaler, deps.Logger),
	}

	theme := ParseTheme(deps.Preferences.String(common.OptionThemeStyle))
	deps.Theme.SetTheme(theme)
	c.applyTheme(theme)

	deps.Status.Refresh()
	return c
}

// Layout is the initial widget state read from preferences.
type Layout struct {
	TabIndex int
	Columns  ColumnFlags
}

// InitialLayout reads the stored tab and visible columns. The name column
// is always visible.
func InitialLayout(prefs Preferences) Layout {
	flags := DecodeColumns(prefs.String(common.OptionProcessColumns))
	flags[ColumnName] = true
	return Layout{
		TabIndex: prefs.Int(common.OptionProcessTabIndex),
		Columns:  flags,
	}
}

// KillState returns the state of the kill confirmation flow.
func (c *Controller) KillState() KillState { return c.kill.State() }

// KillTarget returns the pid awaiting confirmation, if any.
func (c *Controller) KillTarget() KillTarget { return c.kill.Target() }

// LastKill returns the outcome of the most recent confirmation dialog.
func (c *Controller) LastKill() KillOutcome { return c.lastKill }

// Dispatch handles one event.
func (c *Controller) Dispatch(ev Event) {
	switch e := ev.(type) {
	case WindowStateChanged:
		if width, ok := SidebarWidth(e.ScreenWidth, e.Maximized, common.StatusBarWidth); ok {
			c.deps.Status.SetFixedWidth(width)
		}

	case KeyPressed:
		if e.Key == KeyF && e.Mods&ModCtrl != 0 {
			c.deps.Toolbar.FocusInput()
		}

	case ToolbarEscPressed, ToolbarTabPressed:
		c.deps.Processes.FocusProcessView()

	case SearchChanged:
		c.deps.Processes.Search(e.Query)

	case TabActivated:
		switch e.Index {
		case common.TabGUIApps:
			c.deps.Status.SwitchToOnlyGUI()
		case common.TabMyProcesses:
			c.deps.Status.SwitchToOnlyMe()
		default:
			c.deps.Status.SwitchToAllProcess()
		}
		c.persist(common.OptionProcessTabIndex, e.Index)

	case ColumnToggled:
		flags := e.Flags.With(e.Column, e.Visible)
		c.deps.Processes.ShowColumns(flags)
		c.persist(common.OptionProcessColumns, EncodeColumns(flags))

	case StatusUpdated:
		c.deps.Processes.UpdateStatus(e.Status)

	case ProcessCountUpdated:
		c.deps.Processes.UpdateProcessNumber(e.Count)

	case Command:
		c.runCommand(e.Kind)

	case KillPickerReady:
		c.deps.Window.ShowKillPicker()

	case KillRequested:
		c.deps.Window.CloseKillPicker()
		if c.kill.State() == KillAwaitingConfirmation {
			c.deps.Window.CloseKillDialog()
		}
		c.kill.Request(e.PID)
		c.deps.Window.ShowKillDialog(e.PID)

	case KillDialogResolved:
		c.lastKill = c.kill.Resolve(e.Confirmed)

	case ThemeChanged:
		c.applyTheme(e.Theme)

	case Repaint:
		c.deps.Window.Repaint()
	}
}

func (c *Controller) runCommand(kind CommandKind) {
	switch kind {
	case CommandShowKiller:
		c.deps.Scheduler.After(common.KillPickerDelay, KillPickerReady{})
	case CommandLightTheme:
		c.switchTheme(ThemeLight)
	case CommandDarkTheme:
		c.switchTheme(ThemeDark)
	}
}

func (c *Controller) switchTheme(t Theme) {
	c.persist(common.OptionThemeStyle, string(t))
	c.deps.Theme.SetTheme(t)
	c.deps.Window.Repaint()
}

// applyTheme paints the palette of t and shows only the action that
// switches away from the stored theme.
func (c *Controller) applyTheme(t Theme) {
	c.deps.Window.SetPalette(PaletteFor(t))

	stored := ParseTheme(c.deps.Preferences.String(common.OptionThemeStyle))
	c.deps.Window.SetThemeActionsVisible(stored == ThemeDark, stored == ThemeLight)
}

func (c *Controller) persist(key string, value any) {
	if err := c.deps.Preferences.Set(key, value); err != nil && c.deps.Logger != nil {
		c.deps.Logger.Warn("Failed to save %s: %v", key, err)
	}
}
