package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/monitor"
)

// MainWindow represents the main application window.
// It implements controller.Window and controller.Toolbar.
type MainWindow struct {
	app          *Application
	window       *gtk.ApplicationWindow
	headerBar    *gtk.HeaderBar
	searchEntry  *gtk.SearchEntry
	themeSection *gio.Menu
	statusPanel  *StatusPanel
	processList  *ProcessList
	picker       *KillPicker
	killDialog   *KillDialog
	lightAction  *gio.SimpleAction
	darkAction   *gio.SimpleAction
}

// NewMainWindow creates a new main window.
func NewMainWindow(app *Application, layout controller.Layout, seed []float64) *MainWindow {
	mw := &MainWindow{
		app: app,
	}

	mw.window = gtk.NewApplicationWindow(app.app)
	mw.window.SetTitle(common.AppName)
	mw.window.SetDefaultSize(common.DefaultWindowWidth, common.DefaultWindowHeight)
	mw.window.SetIconName("utilities-system-monitor")
	mw.window.AddCSSClass("main-window")

	// Keep running in the tray when configured to
	mw.window.SetHideOnClose(app.store.Config().MinimizeToTray)

	mw.statusPanel = NewStatusPanel(app.sampler, seed)
	mw.processList = NewProcessList(layout, app.Dispatch)

	mw.createLayout()
	mw.setupKeys()

	mw.window.NotifyProperty("maximized", mw.onWindowStateChanged)

	return mw
}

// createLayout creates the window layout.
func (mw *MainWindow) createLayout() {
	mw.headerBar = gtk.NewHeaderBar()

	// Search entry in the title area
	mw.searchEntry = gtk.NewSearchEntry()
	mw.searchEntry.SetPlaceholderText("Search")
	mw.searchEntry.SetSizeRequest(280, -1)
	mw.searchEntry.ConnectSearchChanged(func() {
		mw.app.Dispatch(controller.SearchChanged{Query: mw.searchEntry.Text()})
	})
	mw.searchEntry.ConnectStopSearch(func() {
		mw.app.Dispatch(controller.ToolbarEscPressed{})
	})

	entryKeys := gtk.NewEventControllerKey()
	entryKeys.SetPropagationPhase(gtk.PhaseCapture)
	entryKeys.ConnectKeyPressed(func(keyval, _ uint, _ gdk.ModifierType) bool {
		if keyval == gdk.KEY_Tab {
			mw.app.Dispatch(controller.ToolbarTabPressed{})
			return true
		}
		return false
	})
	mw.searchEntry.AddController(entryKeys)
	mw.headerBar.SetTitleWidget(mw.searchEntry)

	// Kill application button
	killButton := gtk.NewButton()
	killButton.SetIconName("window-close-symbolic")
	killButton.SetTooltipText("Kill Application")
	killButton.SetActionName("app.kill")
	mw.headerBar.PackStart(killButton)

	// Menu button
	menuButton := gtk.NewMenuButton()
	menuButton.SetIconName("open-menu-symbolic")
	menuButton.SetTooltipText("Menu")
	menuButton.SetMenuModel(mw.createMenu())
	mw.headerBar.PackEnd(menuButton)

	mw.window.SetTitlebar(mw.headerBar)

	// Status sidebar on the left, processes on the right
	mainBox := gtk.NewBox(gtk.OrientationHorizontal, 0)
	mainBox.Append(mw.statusPanel.GetWidget())
	mainBox.Append(mw.processList.GetWidget())

	mw.window.SetChild(mainBox)
}

// createMenu creates the application menu.
func (mw *MainWindow) createMenu() *gio.Menu {
	menu := gio.NewMenu()

	killSection := gio.NewMenu()
	killSection.Append("Kill Application", "app.kill")
	menu.AppendSection("", &killSection.MenuModel)

	mw.themeSection = gio.NewMenu()
	menu.AppendSection("", &mw.themeSection.MenuModel)

	settingsSection := gio.NewMenu()
	settingsSection.Append("Preferences", "app.preferences")
	menu.AppendSection("", &settingsSection.MenuModel)

	appSection := gio.NewMenu()
	appSection.Append("About", "app.about")
	appSection.Append("Quit", "app.quit")
	menu.AppendSection("", &appSection.MenuModel)

	mw.setupActions()

	return menu
}

// setupActions configures menu actions.
func (mw *MainWindow) setupActions() {
	app := mw.app.app

	// Kill application action (Ctrl+Alt+K)
	killAction := gio.NewSimpleAction("kill", nil)
	killAction.ConnectActivate(func(_ *glib.Variant) {
		mw.app.Dispatch(controller.Command{Kind: controller.CommandShowKiller})
	})
	app.AddAction(killAction)
	app.SetAccelsForAction("app.kill", []string{"<Control><Alt>k"})

	mw.lightAction = gio.NewSimpleAction("light-theme", nil)
	mw.lightAction.ConnectActivate(func(_ *glib.Variant) {
		mw.app.Dispatch(controller.Command{Kind: controller.CommandLightTheme})
	})
	app.AddAction(mw.lightAction)

	mw.darkAction = gio.NewSimpleAction("dark-theme", nil)
	mw.darkAction.ConnectActivate(func(_ *glib.Variant) {
		mw.app.Dispatch(controller.Command{Kind: controller.CommandDarkTheme})
	})
	app.AddAction(mw.darkAction)

	// Preferences action (Ctrl+,)
	preferencesAction := gio.NewSimpleAction("preferences", nil)
	preferencesAction.ConnectActivate(func(_ *glib.Variant) {
		mw.onPreferences()
	})
	app.AddAction(preferencesAction)
	app.SetAccelsForAction("app.preferences", []string{"<Control>comma"})

	// About action
	aboutAction := gio.NewSimpleAction("about", nil)
	aboutAction.ConnectActivate(func(_ *glib.Variant) {
		mw.onAbout()
	})
	app.AddAction(aboutAction)

	// Quit action (Ctrl+Q)
	quitAction := gio.NewSimpleAction("quit", nil)
	quitAction.ConnectActivate(func(_ *glib.Variant) {
		mw.app.Quit()
	})
	app.AddAction(quitAction)
	app.SetAccelsForAction("app.quit", []string{"<Control>q"})

	// Refresh action (F5)
	refreshAction := gio.NewSimpleAction("refresh", nil)
	refreshAction.ConnectActivate(func(_ *glib.Variant) {
		mw.statusPanel.Refresh()
	})
	app.AddAction(refreshAction)
	app.SetAccelsForAction("app.refresh", []string{"F5"})
}

// setupKeys forwards window level key presses to the controller.
func (mw *MainWindow) setupKeys() {
	keys := gtk.NewEventControllerKey()
	keys.SetPropagationPhase(gtk.PhaseCapture)
	keys.ConnectKeyPressed(func(keyval, _ uint, state gdk.ModifierType) bool {
		key := keyFromVal(keyval)
		if key == controller.KeyOther {
			return false
		}
		mods := modsFromState(state)
		mw.app.Dispatch(controller.KeyPressed{Key: key, Mods: mods})
		return key == controller.KeyF && mods&controller.ModCtrl != 0
	})
	mw.window.AddController(keys)
}

func keyFromVal(keyval uint) controller.Key {
	switch keyval {
	case gdk.KEY_f, gdk.KEY_F:
		return controller.KeyF
	case gdk.KEY_Escape:
		return controller.KeyEscape
	case gdk.KEY_Tab:
		return controller.KeyTab
	default:
		return controller.KeyOther
	}
}

func modsFromState(state gdk.ModifierType) controller.Modifiers {
	var mods controller.Modifiers
	if state&gdk.ControlMask != 0 {
		mods |= controller.ModCtrl
	}
	if state&gdk.ShiftMask != 0 {
		mods |= controller.ModShift
	}
	if state&gdk.AltMask != 0 {
		mods |= controller.ModAlt
	}
	return mods
}

// onWindowStateChanged reports the screen width and maximized state.
func (mw *MainWindow) onWindowStateChanged() {
	mw.app.Dispatch(controller.WindowStateChanged{
		ScreenWidth: mw.screenWidth(),
		Maximized:   mw.window.IsMaximized(),
	})
}

// screenWidth returns the width of the monitor showing the window.
func (mw *MainWindow) screenWidth() int {
	display := gdk.DisplayGetDefault()
	surface := mw.window.Surface()
	if display == nil || surface == nil {
		return 0
	}
	monitor := display.MonitorAtSurface(surface)
	if monitor == nil {
		return 0
	}
	return monitor.Geometry().Width()
}

// Show displays the window.
func (mw *MainWindow) Show() {
	mw.window.Present()
}

// FocusInput moves focus to the search entry.
func (mw *MainWindow) FocusInput() {
	mw.searchEntry.GrabFocus()
}

// SetPalette paints the window with p.
func (mw *MainWindow) SetPalette(p controller.Palette) {
	mw.app.theme.ApplyPalette(p)
}

// Repaint redraws the window.
func (mw *MainWindow) Repaint() {
	mw.window.QueueDraw()
}

// SetThemeActionsVisible shows the theme entries that are allowed.
func (mw *MainWindow) SetThemeActionsVisible(light, dark bool) {
	mw.themeSection.RemoveAll()
	if light {
		mw.themeSection.Append("Light theme", "app.light-theme")
	}
	if dark {
		mw.themeSection.Append("Dark theme", "app.dark-theme")
	}
	mw.lightAction.SetEnabled(light)
	mw.darkAction.SetEnabled(dark)

	if mw.app.tray != nil {
		mw.app.tray.SetThemeItems(light, dark)
	}
}

// ShowKillDialog asks whether pid should be ended.
func (mw *MainWindow) ShowKillDialog(pid int) {
	name := ""
	for _, p := range mw.app.manager.Last() {
		if int(p.PID) == pid {
			name = p.Name
			break
		}
	}
	mw.CloseKillDialog()
	mw.window.Present()
	mw.killDialog = showKillDialog(&mw.window.Window, pid, name, mw.app.Dispatch)
}

// CloseKillDialog dismisses the confirmation dialog if one is open.
func (mw *MainWindow) CloseKillDialog() {
	if mw.killDialog != nil {
		mw.killDialog.Dismiss()
		mw.killDialog = nil
	}
}

// ShowKillPicker opens the application picker.
func (mw *MainWindow) ShowKillPicker() {
	mw.CloseKillPicker()
	apps := monitor.Apply(mw.app.manager.Last(), monitor.FilterGUI, mw.app.manager.UID(), "")
	mw.window.Present()
	mw.picker = newKillPicker(&mw.window.Window, apps, mw.app.Dispatch)
}

// CloseKillPicker closes the application picker if open.
func (mw *MainWindow) CloseKillPicker() {
	if mw.picker != nil {
		mw.picker.Close()
		mw.picker = nil
	}
}

func (mw *MainWindow) onPreferences() {
	prefsDialog := NewPreferencesDialog(mw)
	prefsDialog.Show()
}

func (mw *MainWindow) onAbout() {
	about := gtk.NewAboutDialog()
	about.SetTransientFor(&mw.window.Window)
	about.SetModal(true)

	about.SetProgramName(common.AppName)
	about.SetLogoIconName("utilities-system-monitor")
	about.SetVersion(mw.app.version)
	about.SetComments("Process and resource monitor for Linux.\nWatch applications and end the ones misbehaving.")
	about.SetWebsite("https://github.com/yllada/system-monitor")
	about.SetWebsiteLabel("GitHub Repository")
	about.SetLicenseType(gtk.LicenseGPL30)

	about.Show()
}

// showError displays an error dialog.
func (mw *MainWindow) showError(title, message string) {
	window := gtk.NewWindow()
	window.SetTitle(title)
	window.SetTransientFor(&mw.window.Window)
	window.SetModal(true)
	window.SetDefaultSize(350, 150)
	window.SetResizable(false)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 12)
	mainBox.SetMarginTop(common.DialogMargin)
	mainBox.SetMarginBottom(common.DialogMargin)
	mainBox.SetMarginStart(common.DialogMargin)
	mainBox.SetMarginEnd(common.DialogMargin)
	mainBox.SetHAlign(gtk.AlignCenter)

	icon := gtk.NewImage()
	icon.SetFromIconName("dialog-error-symbolic")
	icon.SetPixelSize(48)
	mainBox.Append(icon)

	titleLabel := gtk.NewLabel(title)
	titleLabel.AddCSSClass("heading")
	mainBox.Append(titleLabel)

	msgLabel := gtk.NewLabel(message)
	msgLabel.SetWrap(true)
	msgLabel.SetMaxWidthChars(40)
	mainBox.Append(msgLabel)

	okBtn := gtk.NewButtonWithLabel("OK")
	okBtn.SetHAlign(gtk.AlignCenter)
	okBtn.SetMarginTop(12)
	okBtn.ConnectClicked(func() {
		window.Close()
	})
	mainBox.Append(okBtn)

	window.SetChild(mainBox)
	window.Show()
}
