// Package ui provides the graphical user interface for System Monitor.
//
// This package implements the GTK4-based user interface including:
//
//   - Main window with the status sidebar and the process list
//   - System tray indicator showing the current load
//   - End-process confirmation and the application picker
//   - Preferences dialog
//   - Desktop notifications for resource alerts
//
// # Architecture
//
// The UI is built on GTK4 using the gotk4 bindings. Widgets translate user
// input into controller events and implement the controller's view
// interfaces; all decisions are taken by controller.Controller.
//
//   - Application: GTK application lifecycle and component wiring
//   - MainWindow: header bar, menu and keyboard handling (controller.Window)
//   - StatusPanel: live usage sidebar (controller.StatusPanel)
//   - ProcessList: tabs, columns and process rows (controller.ProcessView)
//   - ThemeManager: libadwaita color scheme (controller.ThemeService)
//
// # Thread Safety
//
// GTK operations must execute on the main thread. The sampler delivers
// results on its own goroutine, so they are handed to the main loop with
// glib.IdleAdd() before touching any widget or calling Dispatch.
//
// # File Organization
//
//   - app.go: Application lifecycle and wiring
//   - main_window.go: Main window layout, menu and keys
//   - status_panel.go: Usage sidebar with graphs
//   - process_list.go: Process tabs, columns and rows
//   - kill_dialog.go: End-process confirmation and picker
//   - tray.go: System tray indicator
//   - icons.go: Tray gauge and graph rendering
//   - theme.go: Color scheme and palette
//   - styles.go: CSS styling
//   - notifications.go: Desktop notification integration
//   - preferences.go: Settings dialog
package ui
