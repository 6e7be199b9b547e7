// Package ui provides the graphical user interface for System Monitor.
// This file contains the CSS styles shared by both color schemes.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// CSS styles for the System Monitor UI.
// Colors that depend on the theme come from the palette provider in theme.go.
const appCSS = `
/* ============================================
   System Monitor - UI Styles (GTK4)
   ============================================ */

/* Status sidebar */
.status-panel {
    border-right: 1px solid alpha(currentColor, 0.15);
    padding: 12px;
}

.status-title {
    font-weight: 600;
    font-size: 12px;
    opacity: 0.7;
}

.status-value {
    font-family: monospace;
    font-size: 13px;
}

.status-big {
    font-size: 22px;
    font-weight: 600;
}

/* Process list */
.process-header {
    font-weight: 600;
    font-size: 12px;
    opacity: 0.7;
    border-bottom: 1px solid alpha(currentColor, 0.15);
    padding: 4px 8px;
}

.process-row {
    padding: 2px 8px;
}

.process-row:hover {
    background-color: alpha(currentColor, 0.05);
}

.process-cell {
    font-family: monospace;
    font-size: 12px;
}

.process-name {
    font-weight: 500;
}

.gui-badge {
    background-color: alpha(#3584e4, 0.2);
    color: #3584e4;
    font-size: 10px;
    font-weight: 600;
    padding: 1px 6px;
    border-radius: 10px;
}

/* Tab switcher */
.tab-switcher button {
    padding: 4px 12px;
}

/* Kill dialog and picker */
.kill-warning {
    color: #e01b24;
}

.picker-row {
    padding: 6px 12px;
}

/* Delete button - red */
button.destructive-action {
    background-color: #e01b24;
    color: white;
}

button.destructive-action:hover {
    background-color: #c01c28;
}

/* Status Bar */
.status-bar {
    border-top: 1px solid alpha(currentColor, 0.15);
    padding: 6px 12px;
    opacity: 0.8;
}

/* List styling - transparent to inherit the palette background */
list {
    background-color: transparent;
}

list > row {
    background-color: transparent;
}

/* Flat button */
button.flat {
    background-color: transparent;
}

button.flat:hover {
    background-color: alpha(currentColor, 0.1);
}
`

// LoadStyles loads the custom CSS styles for the application.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
