// Package ui provides the graphical user interface for System Monitor.
// This file contains the system tray indicator functionality.
package ui

import (
	"fmt"
	"sync"

	"fyne.io/systray"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/monitor"
)

// TrayIndicator manages the system tray icon and menu.
// It shows the current load and gives quick access to the window commands.
type TrayIndicator struct {
	app       *Application
	icons     *IconGenerator
	mu        sync.Mutex
	ready     bool
	cpuItem   *systray.MenuItem
	memItem   *systray.MenuItem
	lightItem *systray.MenuItem
	darkItem  *systray.MenuItem
	showLight bool
	showDark  bool
}

// NewTrayIndicator creates a new system tray indicator.
func NewTrayIndicator(app *Application) *TrayIndicator {
	cfg := DefaultIconConfig()
	cfg.Size = common.TrayIconSize
	cfg.AlertLevel = app.store.Config().AlertCPUPercent / 100
	return &TrayIndicator{
		app:   app,
		icons: NewIconGenerator(cfg),
	}
}

// Run starts the system tray indicator.
// This should be called from a goroutine as it blocks.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the systray is ready.
func (t *TrayIndicator) onReady() {
	systray.SetIcon(t.icons.Generate(0))
	systray.SetTitle(common.AppName)
	systray.SetTooltip(common.AppName)

	// Load section
	t.cpuItem = systray.AddMenuItem("CPU --", "Processor usage")
	t.cpuItem.Disable()
	t.memItem = systray.AddMenuItem("Memory --", "Memory usage")
	t.memItem.Disable()

	systray.AddSeparator()

	showItem := systray.AddMenuItem("Open System Monitor", "Show main window")
	t.forward(showItem, func() { t.app.showWindow() })

	killItem := systray.AddMenuItem("Kill Application", "Pick an application to end")
	t.forward(killItem, func() {
		t.app.showWindow()
		t.app.Dispatch(controller.Command{Kind: controller.CommandShowKiller})
	})

	systray.AddSeparator()

	t.mu.Lock()
	t.lightItem = systray.AddMenuItem("Light theme", "Switch to the light theme")
	t.darkItem = systray.AddMenuItem("Dark theme", "Switch to the dark theme")
	t.ready = true
	t.applyThemeItemsLocked()
	t.mu.Unlock()

	t.forward(t.lightItem, func() {
		t.app.Dispatch(controller.Command{Kind: controller.CommandLightTheme})
	})
	t.forward(t.darkItem, func() {
		t.app.Dispatch(controller.Command{Kind: controller.CommandDarkTheme})
	})

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Close System Monitor")
	go func() {
		for range quitItem.ClickedCh {
			glib.IdleAdd(func() {
				t.app.Quit()
			})
			systray.Quit()
		}
	}()
}

// forward runs fn on the GTK main loop for every click on item.
func (t *TrayIndicator) forward(item *systray.MenuItem, fn func()) {
	go func() {
		for range item.ClickedCh {
			glib.IdleAdd(fn)
		}
	}()
}

// onExit is called when the systray is about to exit.
func (t *TrayIndicator) onExit() {
	common.LogInfo("Tray indicator cleanup completed")
}

// SetThemeItems shows the theme entries that are allowed.
func (t *TrayIndicator) SetThemeItems(light, dark bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.showLight, t.showDark = light, dark
	if t.ready {
		t.applyThemeItemsLocked()
	}
}

func (t *TrayIndicator) applyThemeItemsLocked() {
	setVisible(t.lightItem, t.showLight)
	setVisible(t.darkItem, t.showDark)
}

func setVisible(item *systray.MenuItem, visible bool) {
	if visible {
		item.Show()
	} else {
		item.Hide()
	}
}

// UpdateStatus refreshes the gauge icon and load entries.
func (t *TrayIndicator) UpdateStatus(st monitor.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ready {
		return
	}

	systray.SetIcon(t.icons.Generate(st.CPUPercent / 100))
	systray.SetTooltip(fmt.Sprintf("%s - CPU %.0f%%", common.AppName, st.CPUPercent))
	t.cpuItem.SetTitle(fmt.Sprintf("CPU %.1f%%", st.CPUPercent))
	t.memItem.SetTitle(fmt.Sprintf("Memory %.1f%% (%s)",
		st.MemoryPercent(), common.FormatBytes(st.MemoryUsed)))
}

// Stop removes the tray icon.
func (t *TrayIndicator) Stop() {
	systray.Quit()
}
