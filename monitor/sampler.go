package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/yllada/system-monitor/common"
)

// Status is one sample of system-wide resource usage.
type Status struct {
	Time          time.Time
	CPUPercent    float64
	MemoryUsed    uint64
	MemoryTotal   uint64
	SwapUsed      uint64
	SwapTotal     uint64
	DiskReadRate  float64
	DiskWriteRate float64
	DownloadRate  float64
	UploadRate    float64
	Uptime        time.Duration
	ProcessCounts map[Filter]int
}

// MemoryPercent returns used memory as a percentage of total.
func (s Status) MemoryPercent() float64 {
	return percentOf(s.MemoryUsed, s.MemoryTotal)
}

// SwapPercent returns used swap as a percentage of total.
func (s Status) SwapPercent() float64 {
	return percentOf(s.SwapUsed, s.SwapTotal)
}

// Summary renders the one-line status shown under the process list.
func (s Status) Summary() string {
	return fmt.Sprintf("CPU %.1f%%  Memory %s / %s  Disk %s read, %s write  Network %s down, %s up",
		s.CPUPercent,
		common.FormatBytes(s.MemoryUsed), common.FormatBytes(s.MemoryTotal),
		common.FormatRate(s.DiskReadRate), common.FormatRate(s.DiskWriteRate),
		common.FormatRate(s.DownloadRate), common.FormatRate(s.UploadRate))
}

func percentOf(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}

type ioTotals struct {
	diskRead, diskWrite uint64
	netRx, netTx        uint64
}

// SamplerConfig holds configuration for the status sampler.
type SamplerConfig struct {
	// Interval is how often to sample.
	Interval time.Duration
	// Filter selects the process list refreshed with every sample.
	Filter Filter
}

// Sampler polls system status and the process list on an interval.
type Sampler struct {
	mu        sync.RWMutex
	config    SamplerConfig
	manager   *Manager
	running   bool
	stopChan  chan struct{}
	previous  ioTotals
	lastAt    time.Time
	onStatus  func(Status)
	onProcess func([]ProcessInfo)
}

// NewSampler creates a sampler feeding from manager.
func NewSampler(manager *Manager, config SamplerConfig) *Sampler {
	if config.Interval <= 0 {
		config.Interval = common.DefaultSampleInterval
	}
	return &Sampler{
		config:   config,
		manager:  manager,
		stopChan: make(chan struct{}),
	}
}

// SetOnStatus sets the callback receiving each status sample. It runs on
// the sampler goroutine.
func (s *Sampler) SetOnStatus(callback func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStatus = callback
}

// SetOnProcesses sets the callback receiving each filtered process list.
func (s *Sampler) SetOnProcesses(callback func([]ProcessInfo)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onProcess = callback
}

// SetFilter changes the process filter used from the next sample on.
func (s *Sampler) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Filter = f
}

// Filter returns the current process filter.
func (s *Sampler) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Filter
}

// Start begins the sampling loop.
func (s *Sampler) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return common.ErrSamplerRunning
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	common.LogInfo("Status sampler started (interval: %v)", s.Interval())

	go s.runLoop()
	return nil
}

// Stop stops the sampling loop.
func (s *Sampler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	common.LogInfo("Status sampler stopped")
}

// IsRunning returns whether the sampler is currently running.
func (s *Sampler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Refresh takes a sample right away on a separate goroutine.
func (s *Sampler) Refresh() {
	go s.tick()
}

// SetInterval changes the sampling interval, restarting the loop if it is
// running. Intervals below the minimum are raised to it.
func (s *Sampler) SetInterval(d time.Duration) {
	if d < common.MinSampleInterval {
		d = common.MinSampleInterval
	}

	s.mu.Lock()
	changed := s.config.Interval != d
	s.config.Interval = d
	running := s.running
	s.mu.Unlock()

	if changed && running {
		s.Stop()
		_ = s.Start()
	}
}

// Interval returns the sampling interval.
func (s *Sampler) Interval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Interval
}

func (s *Sampler) runLoop() {
	s.mu.RLock()
	stop, interval := s.stopChan, s.config.Interval
	s.mu.RUnlock()

	s.tick()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Sampler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Interval())
	defer cancel()

	filter := s.Filter()
	procs, err := s.manager.Snapshot(ctx, filter)
	if err != nil {
		common.LogWarn("Process snapshot failed: %v", err)
	}

	status, err := s.Sample(ctx)
	if err != nil {
		common.LogWarn("Status sample failed: %v", err)
		return
	}
	status.ProcessCounts = s.manager.Counts()

	s.mu.RLock()
	onStatus, onProcess := s.onStatus, s.onProcess
	s.mu.RUnlock()

	if onProcess != nil && procs != nil {
		onProcess(procs)
	}
	if onStatus != nil {
		onStatus(status)
	}
}

// Sample reads system-wide status once. Rates are relative to the previous
// call.
func (s *Sampler) Sample(ctx context.Context) (Status, error) {
	now := time.Now()
	st := Status{Time: now}

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return st, fmt.Errorf("cpu: %w", err)
	}
	if len(percents) > 0 {
		st.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return st, fmt.Errorf("memory: %w", err)
	}
	st.MemoryUsed, st.MemoryTotal = vm.Used, vm.Total

	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		st.SwapUsed, st.SwapTotal = swap.Used, swap.Total
	}
	if uptime, err := host.UptimeWithContext(ctx); err == nil {
		st.Uptime = time.Duration(uptime) * time.Second
	}

	var totals ioTotals
	if disks, err := disk.IOCountersWithContext(ctx); err == nil {
		for _, d := range disks {
			totals.diskRead += d.ReadBytes
			totals.diskWrite += d.WriteBytes
		}
	}
	if nets, err := psnet.IOCountersWithContext(ctx, false); err == nil && len(nets) > 0 {
		totals.netRx, totals.netTx = nets[0].BytesRecv, nets[0].BytesSent
	}

	s.mu.Lock()
	if !s.lastAt.IsZero() {
		elapsed := now.Sub(s.lastAt)
		st.DiskReadRate = rate(s.previous.diskRead, totals.diskRead, elapsed)
		st.DiskWriteRate = rate(s.previous.diskWrite, totals.diskWrite, elapsed)
		st.DownloadRate = rate(s.previous.netRx, totals.netRx, elapsed)
		st.UploadRate = rate(s.previous.netTx, totals.netTx, elapsed)
	}
	s.previous = totals
	s.lastAt = now
	s.mu.Unlock()

	return st, nil
}
