package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/monitor"
)

// columnWidths are the table widths in cells, indexed by column.
var columnWidths = [...]int{22, 7, 10, 11, 11, 11, 11, 7}

// FocusProcessView moves the keyboard to the process table.
func (m *Model) FocusProcessView() {
	m.mode = modeNormal
	m.search.Blur()
	m.table.Focus()
}

// Search filters the table by name, pid or user.
func (m *Model) Search(query string) {
	m.query = query
	m.renderTable()
}

// ShowColumns sets the visible table columns.
func (m *Model) ShowColumns(flags controller.ColumnFlags) {
	m.columns = flags
	m.renderTable()
}

// UpdateStatus sets the status line.
func (m *Model) UpdateStatus(status string) {
	m.statusBar = status
}

// UpdateProcessNumber sets the process counter.
func (m *Model) UpdateProcessNumber(count int) {
	m.count = count
}

// FocusInput moves the keyboard to the search input.
func (m *Model) FocusInput() {
	m.mode = modeSearch
	m.table.Blur()
	m.pending = append(m.pending, m.search.Focus())
}

// SetPalette restyles the frontend with p.
func (m *Model) SetPalette(p controller.Palette) {
	m.styles = stylesFor(p)
	m.table.SetStyles(m.styles.Table)
}

// Repaint counts redraw requests. bubbletea redraws after every update.
func (m *Model) Repaint() {
	m.repaints++
}

// SetThemeActionsVisible enables the theme keys that are allowed.
func (m *Model) SetThemeActionsVisible(light, dark bool) {
	m.keys.Light.SetEnabled(light)
	m.keys.Dark.SetEnabled(dark)
}

// ShowKillDialog asks whether pid should be ended.
func (m *Model) ShowKillDialog(pid int) {
	m.confirmPID = pid
	m.mode = modeConfirm
	m.search.Blur()
}

// CloseKillDialog leaves the confirmation prompt without answering it.
func (m *Model) CloseKillDialog() {
	if m.mode == modeConfirm {
		m.mode = modeNormal
	}
	m.confirmPID = 0
}

// ShowKillPicker lists the running applications.
func (m *Model) ShowKillPicker() {
	m.pickerApps = nil
	if m.source != nil {
		m.pickerApps = monitor.Apply(m.source.Last(), monitor.FilterGUI, m.source.UID(), "")
	}
	m.pickerCursor = 0
	m.mode = modePicker
	m.search.Blur()
}

// CloseKillPicker leaves the picker if it is open.
func (m *Model) CloseKillPicker() {
	if m.mode == modePicker {
		m.mode = modeNormal
	}
	m.pickerApps = nil
}

// renderTable rebuilds the table columns and rows.
func (m *Model) renderTable() {
	var cols []table.Column
	for _, c := range controller.Columns() {
		if m.columns.Visible(c) {
			cols = append(cols, table.Column{Title: c.Title(), Width: columnWidths[c]})
		}
	}

	m.visible = monitor.Apply(m.processes, monitor.FilterAll, 0, m.query)
	rows := make([]table.Row, 0, len(m.visible))
	for _, p := range m.visible {
		row := make(table.Row, 0, len(cols))
		for _, c := range controller.Columns() {
			if m.columns.Visible(c) {
				row = append(row, monitor.FormatColumn(c.String(), p))
			}
		}
		rows = append(rows, row)
	}

	// Rows must never be wider than the columns while switching.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}
