// Package tui is the terminal frontend of System Monitor.
//
// It drives the same controller as the desktop window. Model implements the
// controller's view interfaces on top of bubbletea and bubbles widgets:
// the process table, the search input and the help bar. The usage sidebar
// is a statusPane.
//
// The sampler runs on its own goroutine and posts its results to a channel
// that the program drains with a listening command, so every controller
// call happens inside Update. Delayed events and theme notifications are
// queued as commands and returned from the same Update.
//
// Terminal widths are converted to pixels at eight pixels per cell so the
// sidebar sizing rules apply unchanged.
package tui
