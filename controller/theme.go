package controller

import "github.com/yllada/system-monitor/common"

// Theme is a named color scheme.
type Theme string

const (
	ThemeLight Theme = common.ThemeLight
	ThemeDark  Theme = common.ThemeDark
)

// ParseTheme maps a stored preference to a Theme. Anything other than
// "light" is dark.
func ParseTheme(s string) Theme {
	if s == common.ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Inverse returns the other theme.
func (t Theme) Inverse() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Palette is the background and border pair painted by the main window.
type Palette struct {
	Background string
	Border     string
}

var (
	lightPalette = Palette{Background: "#FFFFFF", Border: "#d9d9d9"}
	darkPalette  = Palette{Background: "#0E0E0E", Border: "#101010"}
)

// PaletteFor returns the palette of theme t.
func PaletteFor(t Theme) Palette {
	if t == ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// ThemeService applies a theme to the toolkit. Implementations report the
// change back by dispatching ThemeChanged.
type ThemeService interface {
	SetTheme(t Theme)
}
