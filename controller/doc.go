// Package controller holds the main window logic of System Monitor without
// any toolkit code.
//
// Frontends translate toolkit signals into Event values and hand them to
// Controller.Dispatch. The controller reacts through narrow collaborator
// interfaces (Preferences, ThemeService, ProcessView, StatusPanel, Toolbar,
// Window, Scheduler, Signaler) supplied in Deps, so the same logic drives
// the GTK window and the terminal UI and can be tested with fakes.
//
// Dispatch must be called from a single goroutine. Frontends marshal
// asynchronous notifications onto that goroutine before dispatching.
package controller
