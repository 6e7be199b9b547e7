package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/config"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/history"
	"github.com/yllada/system-monitor/monitor"
)

type signalRecorder struct {
	pids []int
	err  error
}

func (s *signalRecorder) Terminate(pid int) error {
	s.pids = append(s.pids, pid)
	return s.err
}

func lookupFirefox(ctx context.Context, pid int) (string, error) {
	if pid == 42 {
		return "firefox", nil
	}
	return "", common.ErrProcessNotFound
}

// run executes the command line with args and returns its output.
func run(t *testing.T, opts Options, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	opts.In = strings.NewReader(stdin)
	opts.Out = &out
	opts.Err = &out
	opts.LogDir = t.TempDir()
	if opts.LookupName == nil {
		opts.LookupName = lookupFirefox
	}

	cmd := NewRootCmd(opts)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd(Options{Version: "1.0.0"})

	assert.Equal(t, "system-monitor", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"tui", "list", "status", "kill", "history", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, Options{Version: "1.2.3"}, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "System Monitor 1.2.3\n", out)

	out, err = run(t, Options{Version: "1.2.3", BuildTime: "2026-01-01", Commit: "abc123"}, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Build:  2026-01-01")
	assert.Contains(t, out, "Commit: abc123")

	out, err = run(t, Options{Version: "1.2.3"}, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "System Monitor 1.2.3\n", out)
}

func TestGUI_ReceivesStore(t *testing.T) {
	var got *config.Store
	opts := Options{
		RunGUI: func(store *config.Store, args []string) int {
			got = store
			return 0
		},
	}

	_, err := run(t, opts, "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, common.ThemeLight, got.String(common.OptionThemeStyle))
}

func TestGUI_NotAvailable(t *testing.T) {
	_, err := run(t, Options{}, "")
	assert.Error(t, err)
}

func TestKill(t *testing.T) {
	failure := errors.New("operation not permitted")

	tests := []struct {
		name       string
		args       []string
		stdin      string
		signalErr  error
		wantPIDs   []int
		wantOutput string
		wantErr    error
	}{
		{name: "confirmed", args: []string{"kill", "42"}, stdin: "y\n", wantPIDs: []int{42}, wantOutput: "Ended firefox (pid 42)"},
		{name: "confirmed long form", args: []string{"kill", "42"}, stdin: "YES\n", wantPIDs: []int{42}, wantOutput: "Ended firefox"},
		{name: "declined", args: []string{"kill", "42"}, stdin: "n\n", wantOutput: "Cancelled."},
		{name: "no answer", args: []string{"kill", "42"}, stdin: "", wantOutput: "Cancelled."},
		{name: "yes flag", args: []string{"kill", "42", "--yes"}, wantPIDs: []int{42}, wantOutput: "Ended firefox"},
		{name: "signal fails", args: []string{"kill", "42", "-y"}, signalErr: failure, wantPIDs: []int{42}, wantErr: common.ErrKillFailed},
		{name: "unknown pid", args: []string{"kill", "7", "-y"}, wantErr: common.ErrProcessNotFound},
		{name: "not a number", args: []string{"kill", "abc"}, wantErr: common.ErrInvalidPID},
		{name: "negative", args: []string{"kill", "--", "-3"}, wantErr: common.ErrInvalidPID},
		{name: "wider than a pid", args: []string{"kill", "4294967338", "-y"}, wantErr: common.ErrInvalidPID},
		{name: "permission denied", args: []string{"kill", "42", "-y"}, signalErr: common.ErrPermissionDenied, wantPIDs: []int{42}, wantErr: common.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := &signalRecorder{err: tt.signalErr}

			out, err := run(t, Options{Signaler: sig}, tt.stdin, tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Contains(t, out, tt.wantOutput)
			}
			assert.Equal(t, tt.wantPIDs, sig.pids)
		})
	}
}

func TestKill_PromptShowsWarning(t *testing.T) {
	out, err := run(t, Options{Signaler: &signalRecorder{}}, "n\n", "kill", "42")
	require.NoError(t, err)
	assert.Contains(t, out, killWarning)
	assert.Contains(t, out, "End firefox (pid 42)? [y/N]")
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	out, err := run(t, Options{}, "", "history", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No samples recorded.")

	store, err := history.Open(ctx, path, "testhost")
	require.NoError(t, err)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	for i, cpu := range []float64{11, 22, 33} {
		require.NoError(t, store.RecordStatus(ctx, monitor.Status{
			Time:        base.Add(time.Duration(i) * time.Minute),
			CPUPercent:  cpu,
			MemoryUsed:  1,
			MemoryTotal: 4,
		}))
	}
	require.NoError(t, store.Close())

	out, err = run(t, Options{}, "", "history", "--db", path, "--limit", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "11.0%")
	assert.Contains(t, out, "22.0%")
	assert.Contains(t, out, "33.0%")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "2026-03-01 10:02:00")
}

func TestList_RejectsUnknownTab(t *testing.T) {
	_, err := run(t, Options{}, "", "list", "--tab", "nope", "--interval", "0")
	assert.ErrorIs(t, err, common.ErrInvalidOption)
}

func TestRenderProcesses(t *testing.T) {
	procs := []monitor.ProcessInfo{
		{PID: 42, Name: "firefox", CPUPercent: 12.5},
		{PID: 7, Name: "a-very-long-process-name-that-does-not-fit", CPUPercent: 1},
	}
	flags := controller.ColumnFlags{}.With(controller.ColumnName, true).With(controller.ColumnPID, true)

	var buf bytes.Buffer
	renderProcesses(&buf, procs, flags, -1)
	out := buf.String()
	assert.Contains(t, out, "firefox")
	assert.Contains(t, out, "PID")
	assert.Contains(t, out, "42")
	assert.NotContains(t, out, "Memory")
	assert.Contains(t, out, "a-very-long-process-name-that-does-not-fit")

	buf.Reset()
	renderProcesses(&buf, procs, flags, 20)
	assert.NotContains(t, buf.String(), "a-very-long-process-name-that-does-not-fit")
	assert.Contains(t, buf.String(), "…")
}

func TestRenderStatus(t *testing.T) {
	st := monitor.Status{
		CPUPercent:  42,
		MemoryUsed:  1 << 30,
		MemoryTotal: 4 << 30,
		Uptime:      90 * time.Minute,
		ProcessCounts: map[monitor.Filter]int{
			monitor.FilterGUI:  1,
			monitor.FilterMine: 5,
			monitor.FilterAll:  9,
		},
	}

	var buf bytes.Buffer
	renderStatus(&buf, st, "firefox (pid 42, 12.5%)")
	out := buf.String()
	assert.Contains(t, out, "42.0%")
	assert.Contains(t, out, "(25.0%)")
	assert.Contains(t, out, "1 apps, 5 mine, 9 total")
	assert.Contains(t, out, "1h30m0s")
	assert.Contains(t, out, "firefox (pid 42, 12.5%)")
	assert.NotContains(t, out, "Swap")
}

func TestTopProcess(t *testing.T) {
	assert.Equal(t, "-", topProcess(nil))
	assert.Equal(t, "bash (pid 3, 2.0%)", topProcess([]monitor.ProcessInfo{{PID: 3, Name: "bash", CPUPercent: 2}}))
}

func TestTruncTransformer(t *testing.T) {
	tr := truncTransformer(5)
	assert.Equal(t, "abc", tr("abc"))
	assert.Equal(t, "abcd…", tr("abcdefgh"))
	assert.Equal(t, "…", truncTransformer(1)("abc"))
}
