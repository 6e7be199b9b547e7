// Package ui provides the graphical user interface for System Monitor.
// This file contains the theme service backed by libadwaita.
package ui

import (
	"fmt"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/system-monitor/controller"
)

// ThemeManager forces the libadwaita color scheme and reports the change
// back to the controller once GTK has picked it up.
type ThemeManager struct {
	dispatch func(controller.Event)
	palette  *gtk.CSSProvider
}

// NewThemeManager creates a theme manager. dispatch is called on the GTK
// main loop.
func NewThemeManager(dispatch func(controller.Event)) *ThemeManager {
	return &ThemeManager{dispatch: dispatch}
}

// SetTheme applies theme t.
func (tm *ThemeManager) SetTheme(t controller.Theme) {
	if sm := adw.StyleManagerGetDefault(); sm != nil {
		if t == controller.ThemeLight {
			sm.SetColorScheme(adw.ColorSchemeForceLight)
		} else {
			sm.SetColorScheme(adw.ColorSchemeForceDark)
		}
	} else if settings := gtk.SettingsGetDefault(); settings != nil {
		settings.SetObjectProperty("gtk-application-prefer-dark-theme", t != controller.ThemeLight)
	}

	glib.IdleAdd(func() {
		tm.dispatch(controller.ThemeChanged{Theme: t})
	})
}

// ApplyPalette paints the main window background and border.
func (tm *ThemeManager) ApplyPalette(p controller.Palette) {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	if tm.palette == nil {
		tm.palette = gtk.NewCSSProvider()
		gtk.StyleContextAddProviderForDisplay(
			display,
			tm.palette,
			gtk.STYLE_PROVIDER_PRIORITY_APPLICATION+1,
		)
	}

	tm.palette.LoadFromString(fmt.Sprintf(`
window.main-window {
    background-color: %s;
    border: 1px solid %s;
}
`, p.Background, p.Border))
}
