package monitor

import (
	"context"
	"errors"
	"math"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/system-monitor/common"
)

func sampleProcs() []ProcessInfo {
	return []ProcessInfo{
		{PID: 1, Name: "systemd", User: "root", UID: 0},
		{PID: 1200, Name: "firefox", User: "alice", UID: 1000, GUI: true},
		{PID: 1300, Name: "bash", User: "alice", UID: 1000},
		{PID: 4242, Name: "Xorg", User: "root", UID: 0, GUI: true},
	}
}

func pids(procs []ProcessInfo) []int32 {
	out := make([]int32, 0, len(procs))
	for _, p := range procs {
		out = append(out, p.PID)
	}
	return out
}

func TestFilterForTab(t *testing.T) {
	assert.Equal(t, FilterGUI, FilterForTab(0))
	assert.Equal(t, FilterMine, FilterForTab(1))
	assert.Equal(t, FilterAll, FilterForTab(2))
	assert.Equal(t, FilterAll, FilterForTab(9))
	assert.Equal(t, FilterAll, FilterForTab(-1))
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
		ok   bool
	}{
		{"gui", FilterGUI, true},
		{"apps", FilterGUI, true},
		{"mine", FilterMine, true},
		{"all", FilterAll, true},
		{"", FilterAll, true},
		{"zombies", FilterAll, false},
	}
	for _, tt := range tests {
		got, ok := ParseFilter(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestApply(t *testing.T) {
	procs := sampleProcs()

	assert.Equal(t, []int32{1200, 4242}, pids(Apply(procs, FilterGUI, 1000, "")))
	assert.Equal(t, []int32{1200, 1300}, pids(Apply(procs, FilterMine, 1000, "")))
	assert.Len(t, Apply(procs, FilterAll, 1000, ""), 4)
}

func TestMatchesQuery(t *testing.T) {
	procs := sampleProcs()

	assert.Equal(t, []int32{1200}, pids(Apply(procs, FilterAll, 1000, "FIRE")))
	assert.Equal(t, []int32{1, 4242}, pids(Apply(procs, FilterAll, 1000, "root")))
	assert.Equal(t, []int32{4242}, pids(Apply(procs, FilterAll, 1000, "424")))
	assert.Empty(t, Apply(procs, FilterAll, 1000, "nothing-matches"))
}

func TestRate(t *testing.T) {
	assert.InDelta(t, 512.0, rate(1024, 2048, 2*time.Second), 0.001)
	assert.Zero(t, rate(2048, 1024, time.Second), "counter reset")
	assert.Zero(t, rate(0, 1024, 0), "no elapsed time")
}

func TestCPUPercent(t *testing.T) {
	assert.InDelta(t, 50.0, cpuPercent(10, 11, time.Second, 2), 0.001)
	assert.InDelta(t, 100.0, cpuPercent(10, 11, time.Second, 0), 0.001)
	assert.Zero(t, cpuPercent(11, 10, time.Second, 4))
}

func TestSortByCPU(t *testing.T) {
	procs := []ProcessInfo{
		{PID: 3, CPUPercent: 1},
		{PID: 2, CPUPercent: 5},
		{PID: 1, CPUPercent: 1},
	}

	assert.Equal(t, []int32{2, 1, 3}, pids(sortByCPU(procs)))
}

func TestStatus_Percentages(t *testing.T) {
	st := Status{MemoryUsed: 512, MemoryTotal: 2048, SwapUsed: 0, SwapTotal: 0}

	assert.InDelta(t, 25.0, st.MemoryPercent(), 0.001)
	assert.Zero(t, st.SwapPercent())
	assert.Contains(t, st.Summary(), "Memory 512 B / 2.0 KiB")
}

func TestIsApplicationName(t *testing.T) {
	assert.True(t, isApplicationName("org.mozilla.firefox.ZGVmYXVsdA__"))
	assert.True(t, isApplicationName("org.gnome.Nautilus"))
	assert.False(t, isApplicationName(":1.42"))
	assert.False(t, isApplicationName("org.freedesktop.Notifications"))
	assert.False(t, isApplicationName("org.gtk.vfs.Daemon"))
	assert.False(t, isApplicationName("com.example"))
}

func TestLaunchedFromDesktop(t *testing.T) {
	assert.True(t, launchedFromDesktop([]string{"HOME=/home/a", "GIO_LAUNCHED_DESKTOP_FILE=/usr/share/applications/x.desktop"}))
	assert.False(t, launchedFromDesktop([]string{"HOME=/home/a", "DESKTOP_STARTUP_ID="}))
	assert.False(t, launchedFromDesktop(nil))
}

func TestClassifySignalError(t *testing.T) {
	assert.ErrorIs(t, classifySignalError(1, syscall.EPERM), common.ErrPermissionDenied)
	assert.ErrorIs(t, classifySignalError(1, syscall.ESRCH), common.ErrProcessNotFound)
	assert.ErrorIs(t, classifySignalError(1, os.ErrProcessDone), common.ErrProcessNotFound)

	other := errors.New("boom")
	assert.ErrorIs(t, classifySignalError(1, other), other)
}

func TestTerminator_InvalidPID(t *testing.T) {
	for _, pid := range []int{0, -1, math.MaxInt32 + 1, 1<<32 + os.Getpid()} {
		err := Terminator{}.Terminate(pid)
		assert.ErrorIs(t, err, common.ErrInvalidPID, "pid %d", pid)
	}
}

func TestProcessName(t *testing.T) {
	name, err := ProcessName(context.Background(), os.Getpid())
	require.NoError(t, err)
	assert.NotEmpty(t, name)

	_, err = ProcessName(context.Background(), -1)
	assert.ErrorIs(t, err, common.ErrInvalidPID)

	_, err = ProcessName(context.Background(), 1<<32+os.Getpid())
	assert.ErrorIs(t, err, common.ErrInvalidPID)
}

type notifyRecorder struct {
	messages []string
}

func (n *notifyRecorder) Notify(title, message string, urgency common.Urgency) error {
	n.messages = append(n.messages, message)
	return nil
}

func TestAlerter_FiresOncePerCrossing(t *testing.T) {
	rec := &notifyRecorder{}
	a := NewAlerter(rec, AlertConfig{CPUPercent: 80, MemoryPercent: 90})

	high := Status{CPUPercent: 95, MemoryUsed: 10, MemoryTotal: 100}
	low := Status{CPUPercent: 10, MemoryUsed: 10, MemoryTotal: 100}

	require.Len(t, a.Check(high), 1)
	assert.Empty(t, a.Check(high), "still high, no repeat")
	assert.Empty(t, a.Check(low))
	assert.Len(t, a.Check(high), 1, "re-armed after dropping")

	assert.Len(t, rec.messages, 2)
	assert.Contains(t, rec.messages[0], "CPU usage is at 95%")
}

func TestAlerter_MemoryAndDisabled(t *testing.T) {
	a := NewAlerter(nil, AlertConfig{CPUPercent: 0, MemoryPercent: 50})

	raised := a.Check(Status{CPUPercent: 100, MemoryUsed: 60, MemoryTotal: 100})

	require.Len(t, raised, 1)
	assert.Contains(t, raised[0], "Memory usage is at 60%")
}

func TestSampler_StartStop(t *testing.T) {
	s := NewSampler(NewManager(nil), SamplerConfig{Interval: time.Hour})
	s.SetOnStatus(func(Status) {})

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.ErrorIs(t, s.Start(), common.ErrSamplerRunning)

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestSampler_Filter(t *testing.T) {
	s := NewSampler(NewManager(nil), SamplerConfig{})
	assert.Equal(t, FilterGUI, s.Filter())

	s.SetFilter(FilterMine)
	assert.Equal(t, FilterMine, s.Filter())
}

func TestSampler_SetInterval(t *testing.T) {
	s := NewSampler(NewManager(nil), SamplerConfig{Interval: time.Hour})
	assert.Equal(t, time.Hour, s.Interval())

	s.SetInterval(time.Millisecond)
	assert.Equal(t, common.MinSampleInterval, s.Interval())

	require.NoError(t, s.Start())
	s.SetInterval(2 * time.Hour)
	assert.True(t, s.IsRunning())
	assert.Equal(t, 2*time.Hour, s.Interval())
	s.Stop()
}

func TestFormatColumn(t *testing.T) {
	p := ProcessInfo{
		PID:           77,
		Name:          "vim",
		User:          "alice",
		CPUPercent:    12.345,
		MemoryRSS:     2048,
		DiskReadRate:  1024,
		DiskWriteRate: 0,
		DownloadRate:  3 * 1024 * 1024,
		UploadRate:    10,
	}

	tests := map[string]string{
		"name":       "vim",
		"cpu":        "12.3%",
		"memory":     "2.0 KiB",
		"disk_read":  "1.0 KiB/s",
		"disk_write": "0 B/s",
		"download":   "3.0 MiB/s",
		"upload":     "10 B/s",
		"pid":        "77",
		"user":       "alice",
		"threads":    "",
	}
	for column, want := range tests {
		assert.Equal(t, want, FormatColumn(column, p), column)
	}
}
