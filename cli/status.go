package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/monitor"
)

func (a *app) newStatusCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show system usage",
		Long:  `Show the figures of the status sidebar: CPU, memory, swap, disk and network usage and process counts.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			gui := monitor.NewSessionBusDetector()
			defer gui.Close()
			manager := monitor.NewManager(gui)
			sampler := monitor.NewSampler(manager, monitor.SamplerConfig{Interval: interval})

			if _, err := sampler.Sample(ctx); err != nil {
				return err
			}
			procs, err := measure(ctx, manager, monitor.FilterAll, interval)
			if err != nil {
				return err
			}
			st, err := sampler.Sample(ctx)
			if err != nil {
				return err
			}
			st.ProcessCounts = manager.Counts()

			renderStatus(cmd.OutOrStdout(), st, topProcess(procs))
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Window over which rates are measured")
	return cmd
}

func topProcess(procs []monitor.ProcessInfo) string {
	if len(procs) == 0 {
		return "-"
	}
	p := procs[0]
	return fmt.Sprintf("%s (pid %d, %.1f%%)", p.Name, p.PID, p.CPUPercent)
}

// renderStatus writes st as a property/value table.
func renderStatus(w io.Writer, st monitor.Status, top string) {
	tw := newTable(w)
	tw.AppendHeader(header("PROPERTY", "VALUE"))

	add := func(property, value string) {
		tw.AppendRow(table.Row{text.FgYellow.Sprint(property), value})
	}
	add("CPU", fmt.Sprintf("%.1f%%", st.CPUPercent))
	add("Memory", fmt.Sprintf("%s / %s (%.1f%%)",
		common.FormatBytes(st.MemoryUsed), common.FormatBytes(st.MemoryTotal), st.MemoryPercent()))
	if st.SwapTotal > 0 {
		add("Swap", fmt.Sprintf("%s / %s (%.1f%%)",
			common.FormatBytes(st.SwapUsed), common.FormatBytes(st.SwapTotal), st.SwapPercent()))
	}
	add("Disk read", common.FormatRate(st.DiskReadRate))
	add("Disk write", common.FormatRate(st.DiskWriteRate))
	add("Download", common.FormatRate(st.DownloadRate))
	add("Upload", common.FormatRate(st.UploadRate))
	add("Uptime", st.Uptime.Truncate(time.Second).String())
	add("Processes", fmt.Sprintf("%d apps, %d mine, %d total",
		st.ProcessCounts[monitor.FilterGUI], st.ProcessCounts[monitor.FilterMine], st.ProcessCounts[monitor.FilterAll]))
	add("Top process", top)

	tw.Render()
}
