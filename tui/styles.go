package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/yllada/system-monitor/controller"
)

// Styles holds the lipgloss styles derived from the window palette.
type Styles struct {
	App         lipgloss.Style
	Sidebar     lipgloss.Style
	Title       lipgloss.Style
	Value       lipgloss.Style
	Dim         lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Dialog      lipgloss.Style
	Danger      lipgloss.Style
	Notice      lipgloss.Style
	Graph       lipgloss.Style
	Table       table.Styles
}

var (
	accent = lipgloss.Color("#3584E4")
	danger = lipgloss.Color("#E01B24")
	green  = lipgloss.Color("#2EC27E")
)

// stylesFor builds the styles for palette p.
func stylesFor(p controller.Palette) Styles {
	bg := lipgloss.Color(p.Background)
	border := lipgloss.Color(p.Border)

	fg, dim := lipgloss.Color("#1E1E1E"), lipgloss.Color("#777777")
	if isDark(p.Background) {
		fg, dim = lipgloss.Color("#E6E6E6"), lipgloss.Color("#8A8A8A")
	}

	s := Styles{
		App: lipgloss.NewStyle().
			Background(bg).
			Foreground(fg),
		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(border).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(dim),
		Value: lipgloss.NewStyle().
			Foreground(fg),
		Dim: lipgloss.NewStyle().
			Foreground(dim),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(fg).
			Padding(0, 1),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
		Danger: lipgloss.NewStyle().
			Bold(true).
			Foreground(danger),
		Notice: lipgloss.NewStyle().
			Foreground(green),
		Graph: lipgloss.NewStyle().
			Foreground(accent),
	}

	s.Table = table.DefaultStyles()
	s.Table.Header = s.Table.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(border).
		BorderBottom(true).
		Bold(true)
	s.Table.Selected = s.Table.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(accent).
		Bold(false)

	return s
}

// isDark reports whether a #rrggbb color is closer to black than white.
func isDark(hex string) bool {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return false
	}
	luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	return luma < 128
}
