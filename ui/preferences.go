// Package ui provides the graphical user interface for System Monitor.
// This file contains the PreferencesDialog component for application settings.
// Designed following GTK4/libadwaita HIG for a professional, modern look.
package ui

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/config"
)

// PreferencesDialog represents the preferences dialog.
type PreferencesDialog struct {
	window          *gtk.Window
	mainWindow      *MainWindow
	config          config.Config
	minimizeSwitch  *gtk.Switch
	notifySwitch    *gtk.Switch
	intervalSpin    *gtk.SpinButton
	cpuAlertSpin    *gtk.SpinButton
	memoryAlertSpin *gtk.SpinButton
	historySwitch   *gtk.Switch
	retentionSpin   *gtk.SpinButton
}

// NewPreferencesDialog creates a new preferences dialog.
func NewPreferencesDialog(mainWindow *MainWindow) *PreferencesDialog {
	pd := &PreferencesDialog{
		mainWindow: mainWindow,
		config:     mainWindow.app.store.Config(),
	}

	pd.build()
	return pd
}

// build constructs the dialog UI with a modern, professional design.
func (pd *PreferencesDialog) build() {
	pd.window = gtk.NewWindow()
	pd.window.SetTitle("Settings")
	pd.window.SetTransientFor(&pd.mainWindow.window.Window)
	pd.window.SetModal(true)
	pd.window.SetDefaultSize(500, 620)
	pd.window.SetResizable(false)

	rootBox := gtk.NewBox(gtk.OrientationVertical, 0)

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetVExpand(true)
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 20)
	mainBox.SetMarginTop(24)
	mainBox.SetMarginBottom(16)
	mainBox.SetMarginStart(24)
	mainBox.SetMarginEnd(24)

	// ═══════════════════════════════════════════════════════════════════
	// GENERAL SECTION
	// ═══════════════════════════════════════════════════════════════════
	generalSection := pd.createSection("General", "preferences-system-symbolic")
	generalCard := pd.createCard()

	pd.minimizeSwitch = gtk.NewSwitch()
	pd.minimizeSwitch.SetActive(pd.config.MinimizeToTray)
	pd.minimizeSwitch.SetVAlign(gtk.AlignCenter)
	generalCard.Append(pd.createSettingRow(
		"Minimize to Tray",
		"Keep running in system tray when window is closed",
		pd.minimizeSwitch,
	))

	generalCard.Append(pd.createSeparator())

	pd.intervalSpin = gtk.NewSpinButtonWithRange(common.MinSampleInterval.Seconds(), 60, 0.5)
	pd.intervalSpin.SetDigits(1)
	pd.intervalSpin.SetValue(pd.config.SampleInterval.Seconds())
	pd.intervalSpin.SetVAlign(gtk.AlignCenter)
	generalCard.Append(pd.createSettingRow(
		"Refresh Interval",
		"Seconds between two samples of the system status",
		pd.intervalSpin,
	))

	generalSection.Append(generalCard)
	mainBox.Append(generalSection)

	// ═══════════════════════════════════════════════════════════════════
	// ALERTS SECTION
	// ═══════════════════════════════════════════════════════════════════
	alertSection := pd.createSection("Alerts", "preferences-system-notifications-symbolic")
	alertCard := pd.createCard()

	pd.notifySwitch = gtk.NewSwitch()
	pd.notifySwitch.SetActive(pd.config.ShowNotifications)
	pd.notifySwitch.SetVAlign(gtk.AlignCenter)
	alertCard.Append(pd.createSettingRow(
		"Resource Alerts",
		"Show a notification when usage crosses a threshold",
		pd.notifySwitch,
	))

	alertCard.Append(pd.createSeparator())

	pd.cpuAlertSpin = newPercentSpin(pd.config.AlertCPUPercent)
	alertCard.Append(pd.createSettingRow(
		"CPU Threshold",
		"Percent of total processor time, 0 disables",
		pd.cpuAlertSpin,
	))

	alertCard.Append(pd.createSeparator())

	pd.memoryAlertSpin = newPercentSpin(pd.config.AlertMemoryPercent)
	alertCard.Append(pd.createSettingRow(
		"Memory Threshold",
		"Percent of physical memory in use, 0 disables",
		pd.memoryAlertSpin,
	))

	alertSection.Append(alertCard)
	mainBox.Append(alertSection)

	// ═══════════════════════════════════════════════════════════════════
	// HISTORY SECTION
	// ═══════════════════════════════════════════════════════════════════
	historySection := pd.createSection("History", "document-open-recent-symbolic")
	historyCard := pd.createCard()

	pd.historySwitch = gtk.NewSwitch()
	pd.historySwitch.SetActive(pd.config.HistoryEnabled)
	pd.historySwitch.SetVAlign(gtk.AlignCenter)
	historyCard.Append(pd.createSettingRow(
		"Record History",
		"Store status samples for the graphs and the history command",
		pd.historySwitch,
	))

	historyCard.Append(pd.createSeparator())

	pd.retentionSpin = gtk.NewSpinButtonWithRange(1, 24*30, 1)
	pd.retentionSpin.SetValue(pd.config.HistoryRetention.Hours())
	pd.retentionSpin.SetVAlign(gtk.AlignCenter)
	historyCard.Append(pd.createSettingRow(
		"Keep For",
		"Hours of history to keep",
		pd.retentionSpin,
	))

	historySection.Append(historyCard)
	mainBox.Append(historySection)

	scrolled.SetChild(mainBox)
	rootBox.Append(scrolled)

	// ═══════════════════════════════════════════════════════════════════
	// ACTION BUTTONS
	// ═══════════════════════════════════════════════════════════════════
	buttonBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBar.SetHAlign(gtk.AlignEnd)
	buttonBar.SetMarginTop(16)
	buttonBar.SetMarginBottom(20)
	buttonBar.SetMarginStart(24)
	buttonBar.SetMarginEnd(24)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		pd.window.Close()
	})
	buttonBar.Append(cancelBtn)

	saveBtn := gtk.NewButtonWithLabel("Save")
	saveBtn.AddCSSClass("suggested-action")
	saveBtn.ConnectClicked(func() {
		pd.savePreferences()
		pd.window.Close()
	})
	buttonBar.Append(saveBtn)

	rootBox.Append(buttonBar)

	pd.window.SetChild(rootBox)
}

func newPercentSpin(value float64) *gtk.SpinButton {
	spin := gtk.NewSpinButtonWithRange(0, 100, 5)
	spin.SetValue(value)
	spin.SetVAlign(gtk.AlignCenter)
	return spin
}

// createSection creates a section with icon and title.
func (pd *PreferencesDialog) createSection(title string, iconName string) *gtk.Box {
	section := gtk.NewBox(gtk.OrientationVertical, 8)

	headerBox := gtk.NewBox(gtk.OrientationHorizontal, 8)

	icon := gtk.NewImage()
	icon.SetFromIconName(iconName)
	icon.SetPixelSize(18)
	icon.AddCSSClass("dim-label")
	headerBox.Append(icon)

	label := gtk.NewLabel(title)
	label.SetXAlign(0)
	label.AddCSSClass("heading")
	label.AddCSSClass("dim-label")
	headerBox.Append(label)

	section.Append(headerBox)

	return section
}

// createCard creates a styled card container for settings.
func (pd *PreferencesDialog) createCard() *gtk.Box {
	card := gtk.NewBox(gtk.OrientationVertical, 0)
	card.AddCSSClass("card")
	return card
}

// createSettingRow creates a row with title, description, and widget.
func (pd *PreferencesDialog) createSettingRow(title string, description string, widget gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 12)
	row.SetMarginTop(14)
	row.SetMarginBottom(14)
	row.SetMarginStart(16)
	row.SetMarginEnd(16)

	textBox := gtk.NewBox(gtk.OrientationVertical, 4)
	textBox.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.SetXAlign(0)
	textBox.Append(titleLabel)

	descLabel := gtk.NewLabel(description)
	descLabel.SetXAlign(0)
	descLabel.AddCSSClass("dim-label")
	descLabel.AddCSSClass("caption")
	descLabel.SetWrap(true)
	descLabel.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
	textBox.Append(descLabel)

	row.Append(textBox)
	row.Append(widget)

	return row
}

// createSeparator creates a styled separator for cards.
func (pd *PreferencesDialog) createSeparator() *gtk.Separator {
	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	sep.SetMarginStart(16)
	sep.SetMarginEnd(16)
	return sep
}

// savePreferences saves the current preferences to the config file.
func (pd *PreferencesDialog) savePreferences() {
	interval := time.Duration(pd.intervalSpin.Value() * float64(time.Second))
	retention := time.Duration(pd.retentionSpin.ValueAsInt()) * time.Hour

	err := pd.mainWindow.app.store.Update(func(c *config.Config) {
		c.MinimizeToTray = pd.minimizeSwitch.Active()
		c.ShowNotifications = pd.notifySwitch.Active()
		c.SampleInterval = interval
		c.AlertCPUPercent = pd.cpuAlertSpin.Value()
		c.AlertMemoryPercent = pd.memoryAlertSpin.Value()
		c.HistoryEnabled = pd.historySwitch.Active()
		c.HistoryRetention = retention
	})
	if err != nil {
		pd.mainWindow.showError("Error", "Could not save preferences: "+err.Error())
		return
	}

	pd.mainWindow.app.applySettings()
}

// Show displays the preferences dialog.
func (pd *PreferencesDialog) Show() {
	pd.window.Show()
}
