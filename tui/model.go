package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/monitor"
)

// cellPixels converts terminal columns to the pixel widths the controller
// works with.
const cellPixels = 8

// mode is the current interaction mode.
type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeColumns
	modePicker
	modeConfirm
)

// Sampler is the part of monitor.Sampler the terminal frontend drives.
type Sampler interface {
	SetOnStatus(func(monitor.Status))
	SetOnProcesses(func([]monitor.ProcessInfo))
	SetFilter(monitor.Filter)
	Refresh()
	Start() error
	Stop()
}

// ProcessSource returns the latest unfiltered snapshot.
type ProcessSource interface {
	Last() []monitor.ProcessInfo
	UID() uint32
}

// Options holds the collaborators of the terminal frontend.
type Options struct {
	Preferences controller.Preferences
	Sampler     Sampler
	Source      ProcessSource
	Signaler    controller.Signaler
	Logger      common.Logger
}

// Model is the bubbletea model of the terminal frontend. It implements
// controller.ProcessView, controller.Toolbar and controller.Window; the
// sidebar implements controller.StatusPanel.
type Model struct {
	ctrl    *controller.Controller
	keys    KeyMap
	help    help.Model
	styles  Styles
	theme   controller.Theme
	source  ProcessSource
	msgs    chan tea.Msg
	pending []tea.Cmd

	mode   mode
	width  int
	height int

	table     table.Model
	search    textinput.Model
	status    *statusPane
	columns   controller.ColumnFlags
	query     string
	processes []monitor.ProcessInfo
	visible   []monitor.ProcessInfo
	count     int
	statusBar string
	notice    string

	columnCursor int
	pickerApps   []monitor.ProcessInfo
	pickerCursor int
	confirmPID   int
	repaints     int
}

// New builds the model and its controller. The sampler is not started.
func New(opts Options) *Model {
	layout := controller.InitialLayout(opts.Preferences)

	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "/ "
	search.CharLimit = 64
	search.Width = 30

	m := &Model{
		keys:    DefaultKeyMap(),
		help:    help.New(),
		source:  opts.Source,
		msgs:    make(chan tea.Msg, 64),
		search:  search,
		status:  newStatusPane(opts.Sampler),
		columns: layout.Columns,
		table: table.New(
			table.WithFocused(true),
			table.WithHeight(10),
		),
	}
	m.styles = stylesFor(controller.PaletteFor(controller.ThemeLight))
	m.renderTable()

	m.status.switchTo(monitor.FilterForTab(layout.TabIndex))
	opts.Sampler.SetOnStatus(func(st monitor.Status) {
		post(m.msgs, statusMsg{status: st})
	})
	opts.Sampler.SetOnProcesses(func(procs []monitor.ProcessInfo) {
		post(m.msgs, processesMsg{processes: procs})
	})

	m.ctrl = controller.New(controller.Deps{
		Preferences: opts.Preferences,
		Theme:       themeService{m: m},
		Processes:   m,
		Status:      m.status,
		Toolbar:     m,
		Window:      m,
		Scheduler:   teaScheduler{m: m},
		Signaler:    opts.Signaler,
		Logger:      opts.Logger,
	})

	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(listen(m.msgs), m.flush())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.dispatch(controller.WindowStateChanged{
			ScreenWidth: msg.Width * cellPixels,
			Maximized:   true,
		})
		m.resize()

	case eventMsg:
		m.dispatch(msg.event)

	case statusMsg:
		m.status.update(msg.status)
		m.dispatch(controller.StatusUpdated{Status: msg.status.Summary()})
		cmds = append(cmds, listen(m.msgs))

	case processesMsg:
		m.processes = msg.processes
		m.renderTable()
		m.dispatch(controller.ProcessCountUpdated{Count: len(msg.processes)})
		cmds = append(cmds, listen(m.msgs))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))
	}

	cmds = append(cmds, m.flush())
	return m, tea.Batch(cmds...)
}

// dispatch forwards ev to the controller and reports kill outcomes.
func (m *Model) dispatch(ev controller.Event) {
	m.ctrl.Dispatch(ev)

	if _, ok := ev.(controller.KillDialogResolved); ok {
		outcome := m.ctrl.LastKill()
		switch {
		case !outcome.Attempted:
			m.notice = ""
		case outcome.Err != nil:
			m.notice = fmt.Sprintf("Could not end process %d: %v", outcome.PID, outcome.Err)
		default:
			m.notice = fmt.Sprintf("Ended process %d", outcome.PID)
			m.status.Refresh()
		}
	}
}

// flush returns the commands queued by the scheduler and theme service.
func (m *Model) flush() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modePicker:
		return m.handlePickerKey(msg)
	case modeColumns:
		return m.handleColumnsKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "ctrl+f" || msg.String() == "/":
		m.dispatch(controller.KeyPressed{Key: controller.KeyF, Mods: controller.ModCtrl})
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.dispatch(controller.TabActivated{Index: (int(m.status.filter) + 1) % 3})
	case key.Matches(msg, m.keys.TabGUI):
		m.dispatch(controller.TabActivated{Index: common.TabGUIApps})
	case key.Matches(msg, m.keys.TabMine):
		m.dispatch(controller.TabActivated{Index: common.TabMyProcesses})
	case key.Matches(msg, m.keys.TabAll):
		m.dispatch(controller.TabActivated{Index: common.TabAllProcesses})
	case key.Matches(msg, m.keys.Columns):
		m.mode = modeColumns
		m.columnCursor = 0
	case key.Matches(msg, m.keys.EndProcess):
		if p, ok := m.selected(); ok {
			m.dispatch(controller.KillRequested{PID: int(p.PID)})
		}
	case key.Matches(msg, m.keys.KillApp):
		m.dispatch(controller.Command{Kind: controller.CommandShowKiller})
	case key.Matches(msg, m.keys.Light):
		m.dispatch(controller.Command{Kind: controller.CommandLightTheme})
	case key.Matches(msg, m.keys.Dark):
		m.dispatch(controller.Command{Kind: controller.CommandDarkTheme})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.dispatch(controller.ToolbarEscPressed{})
		return nil
	case tea.KeyTab:
		m.dispatch(controller.ToolbarTabPressed{})
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.dispatch(controller.SearchChanged{Query: after})
	}
	return cmd
}

func (m *Model) handleColumnsKey(msg tea.KeyMsg) tea.Cmd {
	cols := controller.Columns()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.columnCursor > 0 {
			m.columnCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.columnCursor < len(cols)-1 {
			m.columnCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		col := cols[m.columnCursor]
		m.dispatch(controller.ColumnToggled{
			Column:  col,
			Visible: !m.columns.Visible(col),
			Flags:   m.columns,
		})
	case msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Columns) || key.Matches(msg, m.keys.Quit):
		m.mode = modeNormal
	}
	return nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.pickerCursor < len(m.pickerApps)-1 {
			m.pickerCursor++
		}
	case msg.Type == tea.KeyEnter:
		if m.pickerCursor < len(m.pickerApps) {
			m.dispatch(controller.KillRequested{PID: int(m.pickerApps[m.pickerCursor].PID)})
		}
	case msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Quit):
		m.CloseKillPicker()
	}
	return nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeNormal
		m.dispatch(controller.KillDialogResolved{Confirmed: true})
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.mode = modeNormal
		m.dispatch(controller.KillDialogResolved{Confirmed: false})
	}
	return nil
}

// selected returns the process under the table cursor.
func (m *Model) selected() (monitor.ProcessInfo, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return monitor.ProcessInfo{}, false
	}
	return m.visible[i], true
}

// resize fits the table into the terminal.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// header, search line, status line, help and table header
	reserved := 6
	if m.help.ShowAll {
		reserved += 3
	}
	m.table.SetHeight(max(m.height-reserved, 3))
	m.table.SetWidth(max(m.width-m.status.width-3, 20))
	m.renderTable()
}
