package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/monitor"
)

// eventMsg carries a controller event that arrives asynchronously.
type eventMsg struct {
	event controller.Event
}

// statusMsg carries one status sample from the sampler goroutine.
type statusMsg struct {
	status monitor.Status
}

// processesMsg carries one filtered process list from the sampler goroutine.
type processesMsg struct {
	processes []monitor.ProcessInfo
}

// listen waits for the next message posted by a background goroutine.
func listen(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// post hands msg to the program without blocking the sampler. A full
// channel drops the message; the next sample supersedes it.
func post(ch chan<- tea.Msg, msg tea.Msg) {
	select {
	case ch <- msg:
	default:
	}
}

// teaScheduler turns delayed events into tea.Tick commands.
type teaScheduler struct {
	m *Model
}

func (s teaScheduler) After(d time.Duration, ev controller.Event) {
	s.m.pending = append(s.m.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return eventMsg{event: ev}
	}))
}

// themeService applies a theme to the terminal styles and reports the
// change back as a message, the way a toolkit signal would.
type themeService struct {
	m *Model
}

func (s themeService) SetTheme(t controller.Theme) {
	s.m.theme = t
	s.m.pending = append(s.m.pending, func() tea.Msg {
		return eventMsg{event: controller.ThemeChanged{Theme: t}}
	})
}
