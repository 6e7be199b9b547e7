package controller

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/system-monitor/common"
)

type memPrefs struct {
	ints    map[string]int
	strings map[string]string
	writes  []string
}

func newMemPrefs(theme string) *memPrefs {
	return &memPrefs{
		ints: map[string]int{common.OptionProcessTabIndex: common.TabAllProcesses},
		strings: map[string]string{
			common.OptionThemeStyle:     theme,
			common.OptionProcessColumns: "name,cpu,memory",
		},
	}
}

func (p *memPrefs) Int(key string) int { return p.ints[key] }
func (p *memPrefs) String(key string) string { return p.strings[key] }
func (p *memPrefs) Set(key string, value any) error {
	p.writes = append(p.writes, key)
	switch v := value.(type) {
	case int:
		p.ints[key] = v
	case string:
		p.strings[key] = v
	default:
		return fmt.Errorf("unsupported %T", value)
	}
	return nil
}

// themeRecorder queues ThemeChanged the way the toolkit services do.
type themeRecorder struct {
	applied []Theme
	pending []Event
}

func (s *themeRecorder) SetTheme(t Theme) {
	s.applied = append(s.applied, t)
	s.pending = append(s.pending, ThemeChanged{Theme: t})
}

type viewRecorder struct {
	focused int
	query   string
	columns ColumnFlags
	status  string
	count   int
}

func (v *viewRecorder) FocusProcessView() { v.focused++ }
func (v *viewRecorder) Search(q string) { v.query = q }
func (v *viewRecorder) ShowColumns(f ColumnFlags) { v.columns = f }
func (v *viewRecorder) UpdateStatus(s string) { v.status = s }
func (v *viewRecorder) UpdateProcessNumber(n int) { v.count = n }

type panelRecorder struct {
	mode      string
	width     int
	widthSets int
	refreshes int
}

func (p *panelRecorder) SwitchToOnlyGUI() { p.mode = "gui" }
func (p *panelRecorder) SwitchToOnlyMe() { p.mode = "me" }
func (p *panelRecorder) SwitchToAllProcess() { p.mode = "all" }
func (p *panelRecorder) SetFixedWidth(w int) { p.width = w; p.widthSets++ }
func (p *panelRecorder) Refresh() { p.refreshes++ }

type toolbarRecorder struct{ focused int }

func (t *toolbarRecorder) FocusInput() { t.focused++ }

type windowRecorder struct {
	palette      Palette
	repaints     int
	lightVisible bool
	darkVisible  bool
	dialogPID    int
	dialogs      []int
	pickerShown  int
	pickerClosed int
}

func (w *windowRecorder) SetPalette(p Palette) { w.palette = p }
func (w *windowRecorder) Repaint() { w.repaints++ }
func (w *windowRecorder) SetThemeActionsVisible(light, dark bool) {
	w.lightVisible, w.darkVisible = light, dark
}
func (w *windowRecorder) ShowKillDialog(pid int) {
	w.dialogPID = pid
	w.dialogs = append(w.dialogs, pid)
}
func (w *windowRecorder) CloseKillDialog() {
	if len(w.dialogs) > 0 {
		w.dialogs = w.dialogs[:len(w.dialogs)-1]
	}
}
func (w *windowRecorder) ShowKillPicker() { w.pickerShown++ }
func (w *windowRecorder) CloseKillPicker() { w.pickerClosed++ }

type scheduled struct {
	delay time.Duration
	event Event
}

type schedulerRecorder struct{ calls []scheduled }

func (s *schedulerRecorder) After(d time.Duration, ev Event) {
	s.calls = append(s.calls, scheduled{d, ev})
}

type signalRecorder struct {
	pids []int
	err  error
}

func (s *signalRecorder) Terminate(pid int) error {
	s.pids = append(s.pids, pid)
	return s.err
}

type logRecorder struct{ warnings []string }

func (l *logRecorder) Debug(string, ...interface{}) {}
func (l *logRecorder) Info(string, ...interface{}) {}
func (l *logRecorder) Warn(msg string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(msg, args...))
}
func (l *logRecorder) Error(string, ...interface{}) {}

type harness struct {
	ctrl      *Controller
	prefs     *memPrefs
	theme     *themeRecorder
	view      *viewRecorder
	panel     *panelRecorder
	toolbar   *toolbarRecorder
	window    *windowRecorder
	scheduler *schedulerRecorder
	signaler  *signalRecorder
	log       *logRecorder
}

func newHarness(t *testing.T, theme string) *harness {
	t.Helper()
	h := &harness{
		prefs:     newMemPrefs(theme),
		theme:     &themeRecorder{},
		view:      &viewRecorder{},
		panel:     &panelRecorder{},
		toolbar:   &toolbarRecorder{},
		window:    &windowRecorder{},
		scheduler: &schedulerRecorder{},
		signaler:  &signalRecorder{},
		log:       &logRecorder{},
	}
	h.ctrl = New(Deps{
		Preferences: h.prefs,
		Theme:       h.theme,
		Processes:   h.view,
		Status:      h.panel,
		Toolbar:     h.toolbar,
		Window:      h.window,
		Scheduler:   h.scheduler,
		Signaler:    h.signaler,
		Logger:      h.log,
	})
	h.drain()
	return h
}

// drain delivers the theme service callbacks.
func (h *harness) drain() {
	for len(h.theme.pending) > 0 {
		ev := h.theme.pending[0]
		h.theme.pending = h.theme.pending[1:]
		h.ctrl.Dispatch(ev)
	}
}

func TestNew_AppliesStoredTheme(t *testing.T) {
	h := newHarness(t, common.ThemeDark)

	assert.Equal(t, []Theme{ThemeDark}, h.theme.applied)
	assert.Equal(t, PaletteFor(ThemeDark), h.window.palette)
	assert.True(t, h.window.lightVisible)
	assert.False(t, h.window.darkVisible)
	assert.Equal(t, 1, h.panel.refreshes)
	assert.Empty(t, h.prefs.writes, "construction should not write preferences")
}

func TestNew_UnknownThemeIsDark(t *testing.T) {
	h := newHarness(t, "solarized")

	assert.Equal(t, []Theme{ThemeDark}, h.theme.applied)
	assert.Equal(t, Palette{Background: "#0E0E0E", Border: "#101010"}, h.window.palette)
}

func TestThemeSwitch_OnlyInactiveActionVisible(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(Command{Kind: CommandDarkTheme})
	h.drain()
	assert.Equal(t, common.ThemeDark, h.prefs.String(common.OptionThemeStyle))
	assert.True(t, h.window.lightVisible)
	assert.False(t, h.window.darkVisible)

	h.ctrl.Dispatch(Command{Kind: CommandLightTheme})
	h.drain()
	assert.Equal(t, common.ThemeLight, h.prefs.String(common.OptionThemeStyle))
	assert.True(t, h.window.darkVisible, "dark action should be visible")
	assert.False(t, h.window.lightVisible, "light action should be hidden")
	assert.Equal(t, Palette{Background: "#FFFFFF", Border: "#d9d9d9"}, h.window.palette)
	assert.Equal(t, 2, h.window.repaints)
}

func TestThemeSwitch_PersistsBeforeApplying(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(Command{Kind: CommandDarkTheme})

	require.Equal(t, []string{common.OptionThemeStyle}, h.prefs.writes)
	assert.Equal(t, []Theme{ThemeLight, ThemeDark}, h.theme.applied)
}

func TestWindowStateChanged(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		maximized bool
		wantWidth int
		wantSet   bool
	}{
		{"wide maximized", 2000, true, 400, true},
		{"wide restored", 2000, false, 200, true},
		{"narrow maximized", 500, true, 0, false},
		{"narrow restored", 500, false, 0, false},
		{"exact threshold", 1000, true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, common.ThemeLight)
			h.ctrl.Dispatch(WindowStateChanged{ScreenWidth: tt.width, Maximized: tt.maximized})

			if tt.wantSet {
				assert.Equal(t, 1, h.panel.widthSets)
				assert.Equal(t, tt.wantWidth, h.panel.width)
			} else {
				assert.Zero(t, h.panel.widthSets)
			}
		})
	}
}

func TestKeyPressed_CtrlFFocusesSearch(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(KeyPressed{Key: KeyF})
	assert.Zero(t, h.toolbar.focused)

	h.ctrl.Dispatch(KeyPressed{Key: KeyF, Mods: ModCtrl | ModShift})
	assert.Equal(t, 1, h.toolbar.focused)
}

func TestToolbarKeysFocusProcessView(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(ToolbarEscPressed{})
	h.ctrl.Dispatch(ToolbarTabPressed{})

	assert.Equal(t, 2, h.view.focused)
}

func TestForwarding(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(SearchChanged{Query: "fire"})
	h.ctrl.Dispatch(StatusUpdated{Status: "CPU 12%"})
	h.ctrl.Dispatch(ProcessCountUpdated{Count: 321})
	h.ctrl.Dispatch(Repaint{})

	assert.Equal(t, "fire", h.view.query)
	assert.Equal(t, "CPU 12%", h.view.status)
	assert.Equal(t, 321, h.view.count)
	assert.Equal(t, 1, h.window.repaints)
}

func TestTabActivated(t *testing.T) {
	tests := []struct {
		index int
		mode  string
	}{
		{0, "gui"},
		{1, "me"},
		{2, "all"},
		{5, "all"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.index), func(t *testing.T) {
			h := newHarness(t, common.ThemeLight)
			h.ctrl.Dispatch(TabActivated{Index: tt.index})

			assert.Equal(t, tt.mode, h.panel.mode)
			assert.Equal(t, tt.index, h.prefs.Int(common.OptionProcessTabIndex))
		})
	}
}

func TestColumnToggled_PersistsEncodedFlags(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	flags := ColumnFlags{true, true, true, false, false, false, false, false}
	h.ctrl.Dispatch(ColumnToggled{Column: ColumnPID, Visible: true, Flags: flags})

	assert.Equal(t, "name,cpu,memory,pid", h.prefs.String(common.OptionProcessColumns))
	assert.True(t, h.view.columns.Visible(ColumnPID))
}

func TestColumnToggled_NameStaysVisible(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(ColumnToggled{Column: ColumnName, Visible: false, Flags: ColumnFlags{}})

	assert.Equal(t, "name", h.prefs.String(common.OptionProcessColumns))
	assert.True(t, h.view.columns.Visible(ColumnName))
}

func TestShowKiller_SchedulesPicker(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(Command{Kind: CommandShowKiller})

	require.Len(t, h.scheduler.calls, 1)
	assert.Equal(t, 200*time.Millisecond, h.scheduler.calls[0].delay)
	assert.Equal(t, KillPickerReady{}, h.scheduler.calls[0].event)
	assert.Zero(t, h.window.pickerShown, "picker must wait for the delay")

	h.ctrl.Dispatch(h.scheduler.calls[0].event)
	assert.Equal(t, 1, h.window.pickerShown)
}

func TestKillFlow_Confirmed(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(KillRequested{PID: 42})
	assert.Equal(t, 1, h.window.pickerClosed)
	assert.Equal(t, 42, h.window.dialogPID)
	assert.Equal(t, KillAwaitingConfirmation, h.ctrl.KillState())
	assert.Equal(t, TargetPID(42), h.ctrl.KillTarget())

	h.ctrl.Dispatch(KillDialogResolved{Confirmed: true})

	assert.Equal(t, []int{42}, h.signaler.pids)
	assert.Equal(t, KillIdle, h.ctrl.KillState())
	assert.Equal(t, NoTarget, h.ctrl.KillTarget())
	assert.True(t, h.ctrl.LastKill().Attempted)
	assert.NoError(t, h.ctrl.LastKill().Err)
}

func TestKillFlow_Cancelled(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(KillRequested{PID: 42})
	h.ctrl.Dispatch(KillDialogResolved{Confirmed: false})

	assert.Empty(t, h.signaler.pids)
	assert.Equal(t, NoTarget, h.ctrl.KillTarget())
	assert.False(t, h.ctrl.LastKill().Attempted)
}

func TestKillFlow_FailureIsLoggedOnly(t *testing.T) {
	h := newHarness(t, common.ThemeLight)
	h.signaler.err = errors.New("operation not permitted")

	h.ctrl.Dispatch(KillRequested{PID: 1})
	h.ctrl.Dispatch(KillDialogResolved{Confirmed: true})

	out := h.ctrl.LastKill()
	assert.True(t, out.Attempted)
	assert.ErrorIs(t, out.Err, common.ErrKillFailed)
	require.Len(t, h.log.warnings, 1)
	assert.Contains(t, h.log.warnings[0], "Kill failed")
	assert.Equal(t, KillIdle, h.ctrl.KillState())
}

func TestKillFlow_LatestRequestWins(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(KillRequested{PID: 10})
	h.ctrl.Dispatch(KillRequested{PID: 20})
	h.ctrl.Dispatch(KillDialogResolved{Confirmed: true})

	assert.Equal(t, []int{20}, h.signaler.pids)
}

func TestKillFlow_SecondRequestReplacesDialog(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(KillRequested{PID: 10})
	h.ctrl.Dispatch(Command{Kind: CommandShowKiller})
	h.ctrl.Dispatch(KillPickerReady{})
	h.ctrl.Dispatch(KillRequested{PID: 20})

	assert.Equal(t, []int{20}, h.window.dialogs, "only the dialog for the recorded target stays open")
	assert.Equal(t, TargetPID(20), h.ctrl.KillTarget())

	h.ctrl.Dispatch(KillDialogResolved{Confirmed: true})
	assert.Equal(t, []int{20}, h.signaler.pids)
}

func TestKillFlow_FailureKeepsCause(t *testing.T) {
	h := newHarness(t, common.ThemeLight)
	h.signaler.err = fmt.Errorf("%w: pid 1", common.ErrPermissionDenied)

	h.ctrl.Dispatch(KillRequested{PID: 1})
	h.ctrl.Dispatch(KillDialogResolved{Confirmed: true})

	out := h.ctrl.LastKill()
	assert.ErrorIs(t, out.Err, common.ErrKillFailed)
	assert.ErrorIs(t, out.Err, common.ErrPermissionDenied)
	assert.NotErrorIs(t, out.Err, common.ErrProcessNotFound)
}

func TestKillFlow_ResolveWithoutRequest(t *testing.T) {
	h := newHarness(t, common.ThemeLight)

	h.ctrl.Dispatch(KillDialogResolved{Confirmed: true})

	assert.Empty(t, h.signaler.pids)
	assert.False(t, h.ctrl.LastKill().Attempted)
}

func TestInitialLayout(t *testing.T) {
	prefs := newMemPrefs(common.ThemeLight)
	prefs.ints[common.OptionProcessTabIndex] = 1
	prefs.strings[common.OptionProcessColumns] = "cpu,pid"

	layout := InitialLayout(prefs)

	assert.Equal(t, 1, layout.TabIndex)
	assert.Equal(t, ColumnFlags{true, true, false, false, false, false, false, true}, layout.Columns)
}
