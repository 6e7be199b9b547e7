package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the terminal frontend.
// It helps in managing and displaying help information.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Search     key.Binding
	NextTab    key.Binding
	TabGUI     key.Binding
	TabMine    key.Binding
	TabAll     key.Binding
	Columns    key.Binding
	EndProcess key.Binding
	KillApp    key.Binding
	Light      key.Binding
	Dark       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Toggle     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns a KeyMap with default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Search: key.NewBinding(
			key.WithKeys("ctrl+f", "/"),
			key.WithHelp("ctrl+f", "search"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		TabGUI: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "applications"),
		),
		TabMine: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "my processes"),
		),
		TabAll: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "all processes"),
		),
		Columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "columns"),
		),
		EndProcess: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "end process"),
		),
		KillApp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "kill application"),
		),
		Light: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "light theme"),
		),
		Dark: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "dark theme"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y/enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextTab, k.EndProcess, k.KillApp, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search, k.NextTab},
		{k.TabGUI, k.TabMine, k.TabAll, k.Columns},
		{k.EndProcess, k.KillApp, k.Light, k.Dark},
		{k.Help, k.Quit},
	}
}
