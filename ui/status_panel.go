// Package ui provides the graphical user interface for System Monitor.
// This file contains the StatusPanel sidebar with live system metrics.
package ui

import (
	"fmt"
	"image/color"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/monitor"
)

var (
	cpuGraph = SparklineConfig{
		Width:     common.StatusBarWidth - 24,
		Height:    48,
		LineColor: color.RGBA{53, 132, 228, 255},
		FillColor: color.RGBA{53, 132, 228, 80},
	}
	netGraph = SparklineConfig{
		Width:     common.StatusBarWidth - 24,
		Height:    36,
		LineColor: color.RGBA{46, 194, 126, 255},
		FillColor: color.RGBA{46, 194, 126, 80},
	}
)

// StatusPanel is the sidebar showing aggregate usage.
// It implements controller.StatusPanel.
type StatusPanel struct {
	sampler *monitor.Sampler
	root    *gtk.Box

	cpuLabel    *gtk.Label
	cpuGraph    *gtk.Picture
	memLabel    *gtk.Label
	memBar      *gtk.LevelBar
	swapLabel   *gtk.Label
	swapBar     *gtk.LevelBar
	diskLabel   *gtk.Label
	netLabel    *gtk.Label
	netGraph    *gtk.Picture
	countsLabel *gtk.Label
	uptimeLabel *gtk.Label
	cpuHistory  []float64
	netHistory  []float64
}

// NewStatusPanel creates the sidebar. seed pre-fills the CPU graph.
func NewStatusPanel(sampler *monitor.Sampler, seed []float64) *StatusPanel {
	sp := &StatusPanel{sampler: sampler}
	sp.cpuHistory = append(sp.cpuHistory, seed...)
	sp.build()
	return sp
}

// GetWidget returns the sidebar widget.
func (sp *StatusPanel) GetWidget() gtk.Widgetter {
	return sp.root
}

func (sp *StatusPanel) build() {
	sp.root = gtk.NewBox(gtk.OrientationVertical, 10)
	sp.root.AddCSSClass("status-panel")
	sp.root.SetSizeRequest(common.StatusBarWidth, -1)

	// CPU
	sp.root.Append(sectionTitle("CPU"))
	sp.cpuLabel = valueLabel("--")
	sp.cpuLabel.AddCSSClass("status-big")
	sp.root.Append(sp.cpuLabel)
	sp.cpuGraph = gtk.NewPicture()
	sp.cpuGraph.SetCanShrink(false)
	sp.root.Append(sp.cpuGraph)

	// Memory
	sp.root.Append(sectionTitle("Memory"))
	sp.memLabel = valueLabel("--")
	sp.root.Append(sp.memLabel)
	sp.memBar = gtk.NewLevelBarForInterval(0, 100)
	sp.root.Append(sp.memBar)

	sp.swapLabel = valueLabel("Swap --")
	sp.root.Append(sp.swapLabel)
	sp.swapBar = gtk.NewLevelBarForInterval(0, 100)
	sp.root.Append(sp.swapBar)

	// Disk
	sp.root.Append(sectionTitle("Disk"))
	sp.diskLabel = valueLabel("--")
	sp.root.Append(sp.diskLabel)

	// Network
	sp.root.Append(sectionTitle("Network"))
	sp.netLabel = valueLabel("--")
	sp.root.Append(sp.netLabel)
	sp.netGraph = gtk.NewPicture()
	sp.netGraph.SetCanShrink(false)
	sp.root.Append(sp.netGraph)

	// Process counts
	sp.root.Append(sectionTitle("Processes"))
	sp.countsLabel = valueLabel("--")
	sp.root.Append(sp.countsLabel)

	sp.uptimeLabel = valueLabel("")
	sp.uptimeLabel.AddCSSClass("dim-label")
	sp.uptimeLabel.SetVExpand(true)
	sp.uptimeLabel.SetVAlign(gtk.AlignEnd)
	sp.root.Append(sp.uptimeLabel)

	sp.redrawGraphs()
}

func sectionTitle(text string) *gtk.Label {
	label := gtk.NewLabel(text)
	label.SetXAlign(0)
	label.AddCSSClass("status-title")
	return label
}

func valueLabel(text string) *gtk.Label {
	label := gtk.NewLabel(text)
	label.SetXAlign(0)
	label.AddCSSClass("status-value")
	return label
}

// Update shows a new status sample. Must run on the GTK main loop.
func (sp *StatusPanel) Update(st monitor.Status) {
	sp.cpuLabel.SetText(fmt.Sprintf("%.1f%%", st.CPUPercent))
	sp.memLabel.SetText(fmt.Sprintf("%s / %s",
		common.FormatBytes(st.MemoryUsed), common.FormatBytes(st.MemoryTotal)))
	sp.memBar.SetValue(st.MemoryPercent())

	if st.SwapTotal > 0 {
		sp.swapLabel.SetText(fmt.Sprintf("Swap %s / %s",
			common.FormatBytes(st.SwapUsed), common.FormatBytes(st.SwapTotal)))
		sp.swapBar.SetValue(st.SwapPercent())
	} else {
		sp.swapLabel.SetText("Swap not available")
		sp.swapBar.SetValue(0)
	}

	sp.diskLabel.SetText(fmt.Sprintf("Read  %s\nWrite %s",
		common.FormatRate(st.DiskReadRate), common.FormatRate(st.DiskWriteRate)))
	sp.netLabel.SetText(fmt.Sprintf("Down %s\nUp   %s",
		common.FormatRate(st.DownloadRate), common.FormatRate(st.UploadRate)))

	counts := st.ProcessCounts
	sp.countsLabel.SetText(fmt.Sprintf("%d apps, %d mine, %d total",
		counts[monitor.FilterGUI], counts[monitor.FilterMine], counts[monitor.FilterAll]))

	if st.Uptime > 0 {
		sp.uptimeLabel.SetText("Up " + st.Uptime.Truncate(60e9).String())
	}

	sp.cpuHistory = appendBounded(sp.cpuHistory, st.CPUPercent)
	sp.netHistory = appendBounded(sp.netHistory, st.DownloadRate+st.UploadRate)
	sp.redrawGraphs()
}

func appendBounded(values []float64, v float64) []float64 {
	values = append(values, v)
	if len(values) > common.SparklinePoints {
		values = values[len(values)-common.SparklinePoints:]
	}
	return values
}

func (sp *StatusPanel) redrawGraphs() {
	setPicturePNG(sp.cpuGraph, RenderSparkline(sp.cpuHistory, 100, cpuGraph))
	setPicturePNG(sp.netGraph, RenderSparkline(sp.netHistory, 0, netGraph))
}

func setPicturePNG(picture *gtk.Picture, data []byte) {
	texture, err := gdk.NewTextureFromBytes(glib.NewBytes(data))
	if err != nil {
		common.LogDebug("Failed to load graph texture: %v", err)
		return
	}
	picture.SetPaintable(texture)
}

// SwitchToOnlyGUI lists GUI applications only.
func (sp *StatusPanel) SwitchToOnlyGUI() {
	sp.switchTo(monitor.FilterGUI)
}

// SwitchToOnlyMe lists the current user's processes.
func (sp *StatusPanel) SwitchToOnlyMe() {
	sp.switchTo(monitor.FilterMine)
}

// SwitchToAllProcess lists every process.
func (sp *StatusPanel) SwitchToAllProcess() {
	sp.switchTo(monitor.FilterAll)
}

func (sp *StatusPanel) switchTo(f monitor.Filter) {
	sp.sampler.SetFilter(f)
	sp.sampler.Refresh()
}

// SetFixedWidth sets the sidebar width in pixels.
func (sp *StatusPanel) SetFixedWidth(width int) {
	sp.root.SetSizeRequest(width, -1)
}

// Refresh requests a sample right away.
func (sp *StatusPanel) Refresh() {
	sp.sampler.Refresh()
}
