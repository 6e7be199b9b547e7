package ui

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/config"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/history"
	"github.com/yllada/system-monitor/monitor"
)

// Application represents the main application
type Application struct {
	app      *gtk.Application
	window   *MainWindow
	store    *config.Store
	gui      *monitor.SessionBusDetector
	manager  *monitor.Manager
	sampler  *monitor.Sampler
	alerter  *monitor.Alerter
	notifier *DesktopNotifier
	history  atomic.Pointer[history.Store]
	theme    *ThemeManager
	ctrl     *controller.Controller
	version  string
	tray     *TrayIndicator
}

// NewApplication creates a new application
func NewApplication(appID, version string, store *config.Store) *Application {
	app := gtk.NewApplication(appID, gio.ApplicationFlagsNone)

	cfg := store.Config()
	gui := monitor.NewSessionBusDetector()
	manager := monitor.NewManager(gui)
	notifier := NewDesktopNotifier(cfg.ShowNotifications)

	application := &Application{
		app:      app,
		store:    store,
		gui:      gui,
		manager:  manager,
		notifier: notifier,
		alerter:  monitor.NewAlerter(notifier, alertConfig(cfg)),
		version:  version,
	}

	layout := controller.InitialLayout(store)
	application.sampler = monitor.NewSampler(manager, monitor.SamplerConfig{
		Interval: cfg.SampleInterval,
		Filter:   monitor.FilterForTab(layout.TabIndex),
	})

	app.ConnectActivate(application.onActivate)
	app.ConnectShutdown(application.onShutdown)

	return application
}

func alertConfig(cfg config.Config) monitor.AlertConfig {
	return monitor.AlertConfig{
		CPUPercent:    cfg.AlertCPUPercent,
		MemoryPercent: cfg.AlertMemoryPercent,
	}
}

// Run runs the application
func (a *Application) Run(args []string) int {
	return a.app.Run(args)
}

// onActivate is called when the application is activated
func (a *Application) onActivate() {
	if a.window != nil {
		a.showWindow()
		return
	}

	adw.Init()
	a.setupAppIcon()
	LoadStyles()

	a.openHistory()

	a.theme = NewThemeManager(a.Dispatch)
	layout := controller.InitialLayout(a.store)
	a.window = NewMainWindow(a, layout, a.recentCPU())

	// Start system tray indicator
	a.tray = NewTrayIndicator(a)
	go a.tray.Run()

	a.sampler.SetOnProcesses(func(procs []monitor.ProcessInfo) {
		glib.IdleAdd(func() { a.onProcesses(procs) })
	})
	a.sampler.SetOnStatus(func(st monitor.Status) {
		glib.IdleAdd(func() { a.onStatus(st) })
		a.recordStatus(st)
	})

	a.ctrl = controller.New(controller.Deps{
		Preferences: a.store,
		Theme:       a.theme,
		Processes:   a.window.processList,
		Status:      a.window.statusPanel,
		Toolbar:     a.window,
		Window:      a.window,
		Scheduler:   glibScheduler{dispatch: a.Dispatch},
		Signaler:    monitor.Terminator{},
		Logger:      common.GetLogger(),
	})

	a.window.Show()

	if err := a.sampler.Start(); err != nil {
		common.LogWarn("Could not start status sampler: %v", err)
	}
}

// setupAppIcon sets up the application icon
func (a *Application) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	iconTheme := gtk.IconThemeGetForDisplay(display)
	if iconTheme == nil {
		return
	}

	// GTK4 looks for theme subdirectories (like "hicolor") inside these paths
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		iconTheme.AddSearchPath(filepath.Join(execDir, "assets", "icons"))
	}
	if cwd, err := os.Getwd(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(cwd, "assets", "icons"))
	}

	gtk.WindowSetDefaultIconName("utilities-system-monitor")
}

// Dispatch forwards ev to the controller. Must run on the GTK main loop.
func (a *Application) Dispatch(ev controller.Event) {
	if a.ctrl == nil {
		common.LogDebug("Dropping %T before controller is ready", ev)
		return
	}

	a.ctrl.Dispatch(ev)

	if _, ok := ev.(controller.KillDialogResolved); ok {
		a.onKillResolved(a.ctrl.LastKill())
	}
}

// onKillResolved refreshes the list after a process was signalled. Failures
// were already logged by the kill flow; the dialog is gone, so nothing is
// shown.
func (a *Application) onKillResolved(outcome controller.KillOutcome) {
	if !outcome.Attempted || outcome.Err != nil {
		return
	}
	a.sampler.Refresh()
}

// onProcesses shows a new process list. Runs on the GTK main loop.
func (a *Application) onProcesses(procs []monitor.ProcessInfo) {
	if a.window == nil {
		return
	}
	a.window.processList.SetProcesses(procs)
	a.Dispatch(controller.ProcessCountUpdated{Count: len(procs)})
}

// onStatus shows a new status sample. Runs on the GTK main loop.
func (a *Application) onStatus(st monitor.Status) {
	if a.window == nil {
		return
	}
	a.window.statusPanel.Update(st)
	a.Dispatch(controller.StatusUpdated{Status: st.Summary()})
	if a.tray != nil {
		a.tray.UpdateStatus(st)
	}

	for _, alert := range a.alerter.Check(st) {
		common.LogInfo("Alert: %s", alert)
	}
}

// openHistory opens the history database when enabled.
func (a *Application) openHistory() {
	if !a.store.Config().HistoryEnabled || a.history.Load() != nil {
		return
	}

	path, err := history.DefaultPath()
	if err != nil {
		common.LogWarn("History disabled: %v", err)
		return
	}
	hostname, _ := os.Hostname()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := history.Open(ctx, path, hostname)
	if err != nil {
		common.LogWarn("History disabled: %v", err)
		return
	}
	a.history.Store(store)
	a.pruneHistory()
}

// closeHistory stops recording and closes the database.
func (a *Application) closeHistory() {
	if h := a.history.Swap(nil); h != nil {
		if err := h.Close(); err != nil {
			common.LogWarn("Failed to close history: %v", err)
		}
	}
}

func (a *Application) pruneHistory() {
	h := a.history.Load()
	if h == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-a.store.Config().HistoryRetention)
	if n, err := h.Prune(ctx, cutoff); err != nil {
		common.LogWarn("Failed to prune history: %v", err)
	} else if n > 0 {
		common.LogDebug("Pruned %d history samples", n)
	}
}

// recentCPU returns recorded CPU usage to seed the sidebar graph.
func (a *Application) recentCPU() []float64 {
	h := a.history.Load()
	if h == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	samples, err := h.Recent(ctx, common.SparklinePoints)
	if err != nil {
		common.LogDebug("Could not read history: %v", err)
		return nil
	}
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.CPUPercent
	}
	return values
}

// recordStatus stores st. Runs on the sampler goroutine.
func (a *Application) recordStatus(st monitor.Status) {
	h := a.history.Load()
	if h == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.RecordStatus(ctx, st); err != nil {
		common.LogDebug("Failed to record status: %v", err)
	}
}

// applySettings pushes saved preferences to the running components.
func (a *Application) applySettings() {
	cfg := a.store.Config()

	a.notifier.SetEnabled(cfg.ShowNotifications)
	a.alerter.SetConfig(alertConfig(cfg))
	a.sampler.SetInterval(cfg.SampleInterval)
	if a.window != nil {
		a.window.window.SetHideOnClose(cfg.MinimizeToTray)
	}

	if cfg.HistoryEnabled {
		a.openHistory()
		a.pruneHistory()
	} else {
		a.closeHistory()
	}
}

// showWindow shows the main window
func (a *Application) showWindow() {
	if a.window != nil {
		a.window.Show()
	}
}

// Quit closes the application
func (a *Application) Quit() {
	a.app.Quit()
}

// onShutdown releases background resources.
func (a *Application) onShutdown() {
	a.sampler.Stop()
	a.closeHistory()
	a.gui.Close()
	a.notifier.Close()
	if a.tray != nil {
		a.tray.Stop()
	}
}

// glibScheduler delivers events on the GTK main loop after a delay.
type glibScheduler struct {
	dispatch func(controller.Event)
}

func (s glibScheduler) After(d time.Duration, ev controller.Event) {
	glib.TimeoutAdd(uint(d.Milliseconds()), func() bool {
		s.dispatch(ev)
		return false
	})
}
