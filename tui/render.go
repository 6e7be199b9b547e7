package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/monitor"
)

const (
	killDialogTitle   = "End process"
	killDialogMessage = "Ending an application risks losing data.\nAre you sure you want to end the selected application?"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case modeConfirm:
		content = m.overlay(m.renderConfirm())
	case modePicker:
		content = m.overlay(m.renderPicker())
	case modeColumns:
		content = m.overlay(m.renderColumns())
	default:
		content = m.renderMain()
	}

	return m.styles.App.Width(m.width).Height(m.height).Render(content)
}

func (m *Model) overlay(dialog string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m *Model) renderMain() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.renderTabs(),
		"  ",
		m.search.View(),
		"  ",
		m.styles.Dim.Render(fmt.Sprintf("%d processes", m.count)),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.status.render(m.styles),
		" ",
		m.table.View(),
	)

	footer := m.styles.Dim.Render(m.statusBar)
	if m.notice != "" {
		footer = m.styles.Notice.Render(m.notice)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		footer,
		m.help.View(m.keys),
	)
}

func (m *Model) renderTabs() string {
	var tabs []string
	for _, f := range []monitor.Filter{monitor.FilterGUI, monitor.FilterMine, monitor.FilterAll} {
		style := m.styles.TabInactive
		if f == m.status.filter {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(f.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.Danger.Render(killDialogTitle))
	b.WriteString("\n\n")
	b.WriteString(killDialogMessage)
	b.WriteString("\n\n")
	for _, p := range m.processes {
		if int(p.PID) == m.confirmPID {
			b.WriteString(m.styles.Dim.Render(fmt.Sprintf("%s (pid %d)", p.Name, p.PID)))
			b.WriteString("\n\n")
			break
		}
	}
	b.WriteString(m.styles.Dim.Render("[y] End process   [n] Cancel"))
	return m.styles.Dialog.Render(b.String())
}

func (m *Model) renderPicker() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Kill Application"))
	b.WriteString("\n\n")
	if len(m.pickerApps) == 0 {
		b.WriteString(m.styles.Dim.Render("No applications running"))
		b.WriteString("\n")
	}
	for i, p := range m.pickerApps {
		line := fmt.Sprintf("%-28s %7d", truncate(p.Name, 28), p.PID)
		if i == m.pickerCursor {
			line = m.styles.TabActive.Render(line)
		} else {
			line = m.styles.TabInactive.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("[enter] Select   [esc] Cancel"))
	return m.styles.Dialog.Render(b.String())
}

func (m *Model) renderColumns() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Visible columns"))
	b.WriteString("\n\n")
	for i, c := range controller.Columns() {
		check := "[ ]"
		if m.columns.Visible(c) {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, c.Title())
		if c == controller.ColumnName {
			line = m.styles.Dim.Render(line)
		}
		if i == m.columnCursor {
			line = m.styles.TabActive.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("[space] Toggle   [esc] Close"))
	return m.styles.Dialog.Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the sampler and runs the terminal frontend until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)

	if err := opts.Sampler.Start(); err != nil {
		return err
	}
	defer opts.Sampler.Stop()

	common.LogInfo("Starting terminal frontend")

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal frontend: %w", err)
	}
	return nil
}
