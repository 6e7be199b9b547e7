package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/history"
)

func (a *app) newHistoryCmd() *cobra.Command {
	var (
		limit int
		path  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded usage samples",
		Long:  `Show the most recent status samples recorded while the window or the terminal frontend was running.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				var err error
				if path, err = history.DefaultPath(); err != nil {
					return err
				}
			}

			samples, err := history.ReadRecent(cmd.Context(), path, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(samples) == 0 {
				fmt.Fprintln(out, "No samples recorded.")
				return nil
			}
			renderHistory(out, samples)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of samples to show")
	cmd.Flags().StringVar(&path, "db", "", "History database (default ~/.local/share/system-monitor/history.db)")
	return cmd
}

// renderHistory writes samples oldest first.
func renderHistory(w io.Writer, samples []history.Sample) {
	tw := newTable(w)
	tw.AppendHeader(header("TIME", "CPU", "MEMORY", "DOWNLOAD", "UPLOAD", "DISK READ", "DISK WRITE"))

	configs := make([]table.ColumnConfig, 0, 6)
	for i := 2; i <= 7; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)

	for _, s := range samples {
		tw.AppendRow(table.Row{
			s.Time.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.1f%%", s.CPUPercent),
			fmt.Sprintf("%.1f%%", s.MemoryPercent()),
			common.FormatRate(s.DownloadRate),
			common.FormatRate(s.UploadRate),
			common.FormatRate(s.DiskReadRate),
			common.FormatRate(s.DiskWriteRate),
		})
	}
	tw.Render()
}
