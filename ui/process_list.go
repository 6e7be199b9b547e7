// Package ui provides the graphical user interface for System Monitor.
// This file contains the ProcessList component that displays processes and
// hosts the tab switcher and column toggles.
package ui

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/monitor"
)

// columnWidths are label widths in characters, indexed by column.
var columnWidths = [...]int{24, 8, 11, 12, 12, 12, 12, 8}

// ProcessList represents the process list.
// It implements controller.ProcessView.
type ProcessList struct {
	dispatch    func(controller.Event)
	root        *gtk.Box
	header      *gtk.Box
	listBox     *gtk.ListBox
	statusLabel *gtk.Label
	countLabel  *gtk.Label
	tabs        []*gtk.ToggleButton
	columnCheck map[controller.Column]*gtk.CheckButton
	columns     controller.ColumnFlags
	query       string
	processes   []monitor.ProcessInfo
	// syncing suppresses toggle signals while widgets are set from code.
	syncing bool
}

// NewProcessList creates the process list with the given initial layout.
func NewProcessList(layout controller.Layout, dispatch func(controller.Event)) *ProcessList {
	pl := &ProcessList{
		dispatch:    dispatch,
		listBox:     gtk.NewListBox(),
		columnCheck: make(map[controller.Column]*gtk.CheckButton),
		columns:     layout.Columns,
	}

	pl.listBox.SetSelectionMode(gtk.SelectionSingle)
	pl.listBox.SetFocusable(true)

	pl.build(layout.TabIndex)
	return pl
}

// GetWidget returns the list widget to be added to a container.
func (pl *ProcessList) GetWidget() gtk.Widgetter {
	return pl.root
}

func (pl *ProcessList) build(tabIndex int) {
	pl.root = gtk.NewBox(gtk.OrientationVertical, 0)
	pl.root.SetHExpand(true)

	// Tabs, counters and column toggles
	topBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	topBar.SetMarginTop(8)
	topBar.SetMarginBottom(8)
	topBar.SetMarginStart(12)
	topBar.SetMarginEnd(12)

	topBar.Append(pl.createTabSwitcher(tabIndex))

	pl.countLabel = gtk.NewLabel("")
	pl.countLabel.AddCSSClass("dim-label")
	pl.countLabel.SetHExpand(true)
	pl.countLabel.SetXAlign(1)
	topBar.Append(pl.countLabel)

	topBar.Append(pl.createColumnsButton())
	pl.root.Append(topBar)

	// Column header
	pl.header = gtk.NewBox(gtk.OrientationHorizontal, 0)
	pl.header.AddCSSClass("process-header")
	pl.root.Append(pl.header)
	pl.renderHeader()

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetVExpand(true)
	scrolled.SetPolicy(gtk.PolicyAutomatic, gtk.PolicyAutomatic)
	scrolled.SetChild(pl.listBox)
	pl.root.Append(scrolled)

	// Status line
	pl.statusLabel = gtk.NewLabel("")
	pl.statusLabel.SetXAlign(0)
	pl.statusLabel.SetEllipsize(pango.EllipsizeEnd)
	pl.statusLabel.AddCSSClass("status-bar")
	pl.root.Append(pl.statusLabel)
}

// createTabSwitcher creates the linked toggle buttons for the process tabs.
func (pl *ProcessList) createTabSwitcher(active int) *gtk.Box {
	box := gtk.NewBox(gtk.OrientationHorizontal, 0)
	box.AddCSSClass("linked")
	box.AddCSSClass("tab-switcher")

	filters := []monitor.Filter{monitor.FilterGUI, monitor.FilterMine, monitor.FilterAll}
	for i, f := range filters {
		btn := gtk.NewToggleButtonWithLabel(f.String())
		if i > 0 {
			btn.SetGroup(pl.tabs[0])
		}
		index := i
		btn.ConnectToggled(func() {
			if pl.syncing || !btn.Active() {
				return
			}
			pl.dispatch(controller.TabActivated{Index: index})
		})
		pl.tabs = append(pl.tabs, btn)
		box.Append(btn)
	}

	pl.syncing = true
	pl.tabs[monitor.FilterForTab(active)].SetActive(true)
	pl.syncing = false

	return box
}

// createColumnsButton creates the popover with one check button per column.
// The name column cannot be hidden.
func (pl *ProcessList) createColumnsButton() *gtk.MenuButton {
	button := gtk.NewMenuButton()
	button.SetIconName("view-column-symbolic")
	button.SetTooltipText("Visible columns")
	button.AddCSSClass("flat")

	box := gtk.NewBox(gtk.OrientationVertical, 4)
	box.SetMarginTop(8)
	box.SetMarginBottom(8)
	box.SetMarginStart(8)
	box.SetMarginEnd(8)

	for _, col := range controller.Columns() {
		check := gtk.NewCheckButtonWithLabel(col.Title())
		check.SetActive(pl.columns.Visible(col))
		if col == controller.ColumnName {
			check.SetSensitive(false)
		}
		column := col
		check.ConnectToggled(func() {
			if pl.syncing {
				return
			}
			visible := check.Active()
			pl.dispatch(controller.ColumnToggled{
				Column:  column,
				Visible: visible,
				Flags:   pl.columns.With(column, visible),
			})
		})
		pl.columnCheck[col] = check
		box.Append(check)
	}

	popover := gtk.NewPopover()
	popover.SetChild(box)
	button.SetPopover(popover)

	return button
}

// renderHeader rebuilds the column header for the visible columns.
func (pl *ProcessList) renderHeader() {
	for pl.header.FirstChild() != nil {
		pl.header.Remove(pl.header.FirstChild())
	}
	for _, col := range controller.Columns() {
		if !pl.columns.Visible(col) {
			continue
		}
		pl.header.Append(newCell(col, col.Title()))
	}
	// Space for the end-process button
	spacer := gtk.NewLabel("")
	spacer.SetWidthChars(4)
	pl.header.Append(spacer)
}

// SetProcesses replaces the listed processes.
func (pl *ProcessList) SetProcesses(procs []monitor.ProcessInfo) {
	pl.processes = procs
	pl.renderRows()
}

// renderRows rebuilds the rows for the current processes and query.
func (pl *ProcessList) renderRows() {
	selected := pl.selectedPID()

	for pl.listBox.FirstChild() != nil {
		pl.listBox.Remove(pl.listBox.FirstChild())
	}

	for _, p := range monitor.Apply(pl.processes, monitor.FilterAll, 0, pl.query) {
		row := pl.createRow(p)
		pl.listBox.Append(row)
		if p.PID == selected {
			pl.listBox.SelectRow(row)
		}
	}
}

// createRow builds one process row.
func (pl *ProcessList) createRow(p monitor.ProcessInfo) *gtk.ListBoxRow {
	row := gtk.NewListBoxRow()
	row.AddCSSClass("process-row")
	row.SetName(fmt.Sprint(p.PID))

	box := gtk.NewBox(gtk.OrientationHorizontal, 0)

	for _, col := range controller.Columns() {
		if !pl.columns.Visible(col) {
			continue
		}
		cell := newCell(col, monitor.FormatColumn(col.String(), p))
		cell.AddCSSClass("process-cell")
		if col == controller.ColumnName {
			cell.AddCSSClass("process-name")
			cell.SetTooltipText(fmt.Sprintf("%s (%s)", p.Name, p.User))
		}
		box.Append(cell)
	}

	endBtn := gtk.NewButton()
	endBtn.SetIconName("process-stop-symbolic")
	endBtn.SetTooltipText("End process")
	endBtn.AddCSSClass("flat")
	pid := int(p.PID)
	endBtn.ConnectClicked(func() {
		pl.dispatch(controller.KillRequested{PID: pid})
	})
	box.Append(endBtn)

	row.SetChild(box)
	return row
}

func (pl *ProcessList) selectedPID() int32 {
	row := pl.listBox.SelectedRow()
	if row == nil {
		return -1
	}
	var pid int32
	if _, err := fmt.Sscan(row.Name(), &pid); err != nil {
		return -1
	}
	return pid
}

func newCell(col controller.Column, text string) *gtk.Label {
	label := gtk.NewLabel(text)
	label.SetWidthChars(columnWidths[col])
	label.SetMaxWidthChars(columnWidths[col])
	label.SetEllipsize(pango.EllipsizeEnd)
	if col == controller.ColumnName {
		label.SetXAlign(0)
		label.SetHExpand(true)
	} else {
		label.SetXAlign(1)
	}
	return label
}

// FocusProcessView moves keyboard focus to the list.
func (pl *ProcessList) FocusProcessView() {
	pl.listBox.GrabFocus()
}

// Search filters rows by name, user or pid.
func (pl *ProcessList) Search(query string) {
	pl.query = query
	pl.renderRows()
}

// ShowColumns sets the visible columns.
func (pl *ProcessList) ShowColumns(flags controller.ColumnFlags) {
	pl.columns = flags

	pl.syncing = true
	for col, check := range pl.columnCheck {
		check.SetActive(flags.Visible(col))
	}
	pl.syncing = false

	pl.renderHeader()
	pl.renderRows()
}

// UpdateStatus sets the status line under the list.
func (pl *ProcessList) UpdateStatus(status string) {
	pl.statusLabel.SetText(status)
}

// UpdateProcessNumber shows the number of listed processes.
func (pl *ProcessList) UpdateProcessNumber(count int) {
	pl.countLabel.SetText(fmt.Sprintf("%d processes", count))
}
