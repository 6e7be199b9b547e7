package monitor

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/yllada/system-monitor/common"
)

// ProcessInfo is one row of the process list.
type ProcessInfo struct {
	PID           int32
	Name          string
	User          string
	UID           uint32
	GUI           bool
	CPUPercent    float64
	MemoryRSS     uint64
	DiskReadRate  float64
	DiskWriteRate float64
	DownloadRate  float64
	UploadRate    float64
}

// counters are the cumulative values rates are derived from.
type counters struct {
	cpuSeconds float64
	readBytes  uint64
	writeBytes uint64
	rxBytes    uint64
	txBytes    uint64
}

// Manager produces process snapshots. Rates are computed against the
// previous snapshot, so the first call reports zero rates.
type Manager struct {
	mu       sync.Mutex
	gui      GUIDetector
	uid      uint32
	numCPU   int
	hostNet  string
	previous map[int32]counters
	lastAt   time.Time
	last     []ProcessInfo
}

// NewManager creates a process manager. gui may be nil, in which case no
// process is considered a GUI application.
func NewManager(gui GUIDetector) *Manager {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		n = runtime.NumCPU()
	}
	hostNet, _ := os.Readlink("/proc/self/ns/net")

	return &Manager{
		gui:      gui,
		uid:      uint32(os.Getuid()),
		numCPU:   n,
		hostNet:  hostNet,
		previous: make(map[int32]counters),
	}
}

// UID returns the id of the user running the monitor.
func (m *Manager) UID() uint32 {
	return m.uid
}

// Snapshot samples every process and returns those matching filter, sorted
// by CPU usage.
func (m *Manager) Snapshot(ctx context.Context, filter Filter) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	var guiPIDs map[int32]bool
	if m.gui != nil {
		guiPIDs, err = m.gui.GUIPIDs(ctx)
		if err != nil {
			common.LogDebug("GUI detection failed: %v", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(m.lastAt)
	if m.lastAt.IsZero() {
		elapsed = 0
	}

	current := make(map[int32]counters, len(procs))
	infos := make([]ProcessInfo, 0, len(procs))

	for _, p := range procs {
		info, c, ok := m.sample(ctx, p)
		if !ok {
			continue
		}
		info.GUI = guiPIDs[p.Pid]

		if prev, seen := m.previous[p.Pid]; seen && elapsed > 0 {
			info.CPUPercent = cpuPercent(prev.cpuSeconds, c.cpuSeconds, elapsed, m.numCPU)
			info.DiskReadRate = rate(prev.readBytes, c.readBytes, elapsed)
			info.DiskWriteRate = rate(prev.writeBytes, c.writeBytes, elapsed)
			info.DownloadRate = rate(prev.rxBytes, c.rxBytes, elapsed)
			info.UploadRate = rate(prev.txBytes, c.txBytes, elapsed)
		}

		current[p.Pid] = c
		infos = append(infos, info)
	}

	m.previous = current
	m.lastAt = now
	m.last = infos

	return sortByCPU(Apply(infos, filter, m.uid, "")), nil
}

// Last returns the most recent unfiltered snapshot.
func (m *Manager) Last() []ProcessInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ProcessInfo, len(m.last))
	copy(out, m.last)
	return out
}

// Counts returns how many processes of the last snapshot fall into each
// filter.
func (m *Manager) Counts() map[Filter]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[Filter]int, 3)
	for _, p := range m.last {
		for _, f := range []Filter{FilterGUI, FilterMine, FilterAll} {
			if f.Matches(p, m.uid) {
				counts[f]++
			}
		}
	}
	return counts
}

// sample reads one process. Processes that vanish mid-read are skipped.
func (m *Manager) sample(ctx context.Context, p *process.Process) (ProcessInfo, counters, bool) {
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return ProcessInfo{}, counters{}, false
	}

	info := ProcessInfo{PID: p.Pid, Name: name}
	var c counters

	if user, err := p.UsernameWithContext(ctx); err == nil {
		info.User = user
	}
	if uids, err := p.UidsWithContext(ctx); err == nil && len(uids) > 0 {
		info.UID = uint32(uids[0])
	}
	if mem, err := p.MemoryInfoWithContext(ctx); err == nil {
		info.MemoryRSS = mem.RSS
	}
	if times, err := p.TimesWithContext(ctx); err == nil {
		c.cpuSeconds = times.User + times.System
	}
	// IO counters need the same uid or CAP_SYS_PTRACE; others read as zero.
	if io, err := p.IOCountersWithContext(ctx); err == nil {
		c.readBytes = io.ReadBytes
		c.writeBytes = io.WriteBytes
	}
	c.rxBytes, c.txBytes = m.netCounters(ctx, p.Pid)

	return info, c, true
}

// netCounters reads interface totals for processes living in their own
// network namespace. Processes sharing the host namespace report zero
// since the kernel does not account traffic per process there.
func (m *Manager) netCounters(ctx context.Context, pid int32) (rx, tx uint64) {
	if m.hostNet == "" {
		return 0, 0
	}
	ns, err := os.Readlink(fmt.Sprintf("/proc/%d/ns/net", pid))
	if err != nil || ns == m.hostNet {
		return 0, 0
	}
	stats, err := psnet.IOCountersByFileWithContext(ctx, false, fmt.Sprintf("/proc/%d/net/dev", pid))
	if err != nil || len(stats) == 0 {
		return 0, 0
	}
	return stats[0].BytesRecv, stats[0].BytesSent
}

// cpuPercent converts a CPU-seconds delta into a share of total machine
// capacity.
func cpuPercent(prev, cur float64, elapsed time.Duration, numCPU int) float64 {
	if elapsed <= 0 || cur < prev {
		return 0
	}
	if numCPU <= 0 {
		numCPU = 1
	}
	return (cur - prev) / elapsed.Seconds() / float64(numCPU) * 100
}

// rate converts a counter delta into bytes per second. Counter resets
// yield zero.
func rate(prev, cur uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 || cur < prev {
		return 0
	}
	return float64(cur-prev) / elapsed.Seconds()
}

func sortByCPU(procs []ProcessInfo) []ProcessInfo {
	sort.SliceStable(procs, func(i, j int) bool {
		if procs[i].CPUPercent != procs[j].CPUPercent {
			return procs[i].CPUPercent > procs[j].CPUPercent
		}
		return procs[i].PID < procs[j].PID
	})
	return procs
}
