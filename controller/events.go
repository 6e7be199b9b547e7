package controller

// Event is an input to Controller.Dispatch. The set of implementations is
// closed to this package.
type Event interface {
	isEvent()
}

// CommandKind identifies a menu or tray action.
type CommandKind int

const (
	CommandShowKiller CommandKind = iota
	CommandLightTheme
	CommandDarkTheme
)

func (k CommandKind) String() string {
	switch k {
	case CommandShowKiller:
		return "show-killer"
	case CommandLightTheme:
		return "light-theme"
	case CommandDarkTheme:
		return "dark-theme"
	default:
		return "unknown"
	}
}

// Key is a toolkit independent key identifier.
type Key int

const (
	KeyOther Key = iota
	KeyF
	KeyEscape
	KeyTab
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
)

// WindowStateChanged fires on maximize and restore.
type WindowStateChanged struct {
	ScreenWidth int
	Maximized   bool
}

// KeyPressed is a key press on the main window.
type KeyPressed struct {
	Key  Key
	Mods Modifiers
}

// ToolbarEscPressed is Escape in the search entry.
type ToolbarEscPressed struct{}

// ToolbarTabPressed is Tab in the search entry.
type ToolbarTabPressed struct{}

// SearchChanged carries the search entry text.
type SearchChanged struct {
	Query string
}

// TabActivated is a click on the process tab switcher.
type TabActivated struct {
	Index int
}

// ColumnToggled reports a column visibility change along with the full
// set of flags after the change.
type ColumnToggled struct {
	Column  Column
	Visible bool
	Flags   ColumnFlags
}

// StatusUpdated carries the status line text for the process view.
type StatusUpdated struct {
	Status string
}

// ProcessCountUpdated carries the number of listed processes.
type ProcessCountUpdated struct {
	Count int
}

// Command is a menu or tray action.
type Command struct {
	Kind CommandKind
}

// KillPickerReady fires once the kill picker delay has elapsed.
type KillPickerReady struct{}

// KillRequested asks to terminate PID after confirmation.
type KillRequested struct {
	PID int
}

// KillDialogResolved is the answer to the kill confirmation dialog.
type KillDialogResolved struct {
	Confirmed bool
}

// ThemeChanged is reported by the ThemeService once a theme is applied.
type ThemeChanged struct {
	Theme Theme
}

// Repaint asks the window to redraw.
type Repaint struct{}

func (WindowStateChanged) isEvent() {}
func (KeyPressed) isEvent() {}
func (ToolbarEscPressed) isEvent() {}
func (ToolbarTabPressed) isEvent() {}
func (SearchChanged) isEvent() {}
func (TabActivated) isEvent() {}
func (ColumnToggled) isEvent() {}
func (StatusUpdated) isEvent() {}
func (ProcessCountUpdated) isEvent() {}
func (Command) isEvent() {}
func (KillPickerReady) isEvent() {}
func (KillRequested) isEvent() {}
func (KillDialogResolved) isEvent() {}
func (ThemeChanged) isEvent() {}
func (Repaint) isEvent() {}
