package monitor

import (
	"fmt"
	"sync"

	"github.com/yllada/system-monitor/common"
)

// AlertConfig holds the alert thresholds in percent. Zero disables a check.
type AlertConfig struct {
	CPUPercent    float64
	MemoryPercent float64
}

// Alerter sends a notification when CPU or memory usage crosses its
// threshold. It fires once per crossing and re-arms when usage drops back
// below the threshold.
type Alerter struct {
	mu       sync.Mutex
	config   AlertConfig
	notifier common.Notifier
	cpuHigh  bool
	memHigh  bool
}

// NewAlerter creates an alerter. A nil notifier disables alerts.
func NewAlerter(notifier common.Notifier, config AlertConfig) *Alerter {
	return &Alerter{config: config, notifier: notifier}
}

// SetConfig replaces the thresholds.
func (a *Alerter) SetConfig(config AlertConfig) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.config = config
}

// Check evaluates one status sample and returns the alerts it raised.
func (a *Alerter) Check(st Status) []string {
	a.mu.Lock()
	var raised []string
	var fire bool
	fire, a.cpuHigh = crossed(st.CPUPercent, a.config.CPUPercent, a.cpuHigh)
	if fire {
		raised = append(raised, fmt.Sprintf("CPU usage is at %.0f%%", st.CPUPercent))
	}
	memPct := st.MemoryPercent()
	fire, a.memHigh = crossed(memPct, a.config.MemoryPercent, a.memHigh)
	if fire {
		raised = append(raised, fmt.Sprintf("Memory usage is at %.0f%%", memPct))
	}
	notifier := a.notifier
	a.mu.Unlock()

	if notifier == nil {
		return raised
	}
	for _, msg := range raised {
		if err := notifier.Notify("High resource usage", msg, common.UrgencyCritical); err != nil {
			common.LogWarn("Failed to send alert: %v", err)
		}
	}
	return raised
}

// crossed reports whether value has just gone over threshold, along with
// the new high state.
func crossed(value, threshold float64, wasHigh bool) (fire, high bool) {
	if threshold <= 0 {
		return false, false
	}
	high = value >= threshold
	return high && !wasHigh, high
}
