package tui

import (
	"fmt"
	"strings"

	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/monitor"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// statusPane is the usage sidebar. It implements controller.StatusPanel.
type statusPane struct {
	sampler Sampler
	filter  monitor.Filter
	width   int // cells
	last    monitor.Status
	sampled bool
	cpu     []float64
}

func newStatusPane(sampler Sampler) *statusPane {
	return &statusPane{
		sampler: sampler,
		width:   common.StatusBarWidth / cellPixels,
	}
}

// SwitchToOnlyGUI lists GUI applications only.
func (sp *statusPane) SwitchToOnlyGUI() { sp.switchTo(monitor.FilterGUI) }

// SwitchToOnlyMe lists the current user's processes.
func (sp *statusPane) SwitchToOnlyMe() { sp.switchTo(monitor.FilterMine) }

// SwitchToAllProcess lists every process.
func (sp *statusPane) SwitchToAllProcess() { sp.switchTo(monitor.FilterAll) }

func (sp *statusPane) switchTo(f monitor.Filter) {
	sp.filter = f
	sp.sampler.SetFilter(f)
	sp.sampler.Refresh()
}

// SetFixedWidth sets the sidebar width, given in pixels.
func (sp *statusPane) SetFixedWidth(width int) {
	sp.width = width / cellPixels
}

// Refresh requests a sample right away.
func (sp *statusPane) Refresh() {
	sp.sampler.Refresh()
}

func (sp *statusPane) update(st monitor.Status) {
	sp.last = st
	sp.sampled = true
	sp.cpu = append(sp.cpu, st.CPUPercent)
	if len(sp.cpu) > common.SparklinePoints {
		sp.cpu = sp.cpu[len(sp.cpu)-common.SparklinePoints:]
	}
}

// render draws the sidebar content.
func (sp *statusPane) render(s Styles) string {
	inner := max(sp.width-3, 10)
	if !sp.sampled {
		return s.Sidebar.Width(inner).Render(s.Dim.Render("Sampling..."))
	}
	st := sp.last

	var b strings.Builder
	section := func(title string, lines ...string) {
		b.WriteString(s.Title.Render(title))
		b.WriteString("\n")
		for _, l := range lines {
			b.WriteString(s.Value.Render(l))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(s.Title.Render("CPU"))
	b.WriteString("\n")
	b.WriteString(s.Value.Bold(true).Render(fmt.Sprintf("%.1f%%", st.CPUPercent)))
	b.WriteString("\n")
	b.WriteString(s.Graph.Render(sparkline(sp.cpu, 100, inner)))
	b.WriteString("\n\n")

	section("Memory",
		fmt.Sprintf("%s / %s", common.FormatBytes(st.MemoryUsed), common.FormatBytes(st.MemoryTotal)),
		bar(st.MemoryPercent(), inner),
	)
	if st.SwapTotal > 0 {
		section("Swap",
			fmt.Sprintf("%s / %s", common.FormatBytes(st.SwapUsed), common.FormatBytes(st.SwapTotal)),
			bar(st.SwapPercent(), inner),
		)
	}
	section("Disk",
		"Read  "+common.FormatRate(st.DiskReadRate),
		"Write "+common.FormatRate(st.DiskWriteRate),
	)
	section("Network",
		"Down "+common.FormatRate(st.DownloadRate),
		"Up   "+common.FormatRate(st.UploadRate),
	)
	counts := st.ProcessCounts
	section("Processes",
		fmt.Sprintf("%d apps", counts[monitor.FilterGUI]),
		fmt.Sprintf("%d mine", counts[monitor.FilterMine]),
		fmt.Sprintf("%d total", counts[monitor.FilterAll]),
	)

	return s.Sidebar.Width(inner).Render(strings.TrimRight(b.String(), "\n"))
}

// sparkline draws the last width values scaled to limit.
func sparkline(values []float64, limit float64, width int) string {
	if len(values) > width {
		values = values[len(values)-width:]
	}
	if limit <= 0 {
		limit = 1
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(values)))
	top := len(sparkRunes) - 1
	for _, v := range values {
		i := int(v / limit * float64(top))
		i = min(max(i, 0), top)
		b.WriteRune(sparkRunes[i])
	}
	return b.String()
}

// bar draws a horizontal percentage bar width cells wide.
func bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

