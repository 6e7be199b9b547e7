package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/monitor"
)

// minNameWidth keeps the name column readable on narrow terminals.
const minNameWidth = 16

type listOptions struct {
	tab      string
	search   string
	limit    int
	interval time.Duration
}

func (a *app) newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processes",
		Long: `List processes sorted by CPU usage. The tab and the visible columns
default to the ones last used in the window.`,
		Example: `  system-monitor list
  system-monitor list --tab gui
  system-monitor list --tab mine --search fire --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.tab, "tab", "", "Process subset: gui, mine or all (default: last used tab)")
	cmd.Flags().StringVar(&opts.search, "search", "", "Only show processes whose name, user or pid contains this text")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Show at most this many processes (0 shows all)")
	cmd.Flags().DurationVar(&opts.interval, "interval", time.Second, "Window over which rates are measured")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, opts listOptions) error {
	store, err := a.preferences()
	if err != nil {
		return err
	}
	layout := controller.InitialLayout(store)

	filter := monitor.FilterForTab(layout.TabIndex)
	if opts.tab != "" {
		f, ok := monitor.ParseFilter(opts.tab)
		if !ok {
			return fmt.Errorf("%w: tab %q", common.ErrInvalidOption, opts.tab)
		}
		filter = f
	}

	gui := monitor.NewSessionBusDetector()
	defer gui.Close()

	procs, err := measure(cmd.Context(), monitor.NewManager(gui), filter, opts.interval)
	if err != nil {
		return err
	}
	procs = monitor.Apply(procs, monitor.FilterAll, 0, opts.search)
	if opts.limit > 0 && len(procs) > opts.limit {
		procs = procs[:opts.limit]
	}

	out := cmd.OutOrStdout()
	renderProcesses(out, procs, layout.Columns, terminalWidth(out))
	fmt.Fprintf(out, "%d processes (%s)\n", len(procs), filter)
	return nil
}

// measure takes two snapshots interval apart so rates are filled in.
func measure(ctx context.Context, manager *monitor.Manager, filter monitor.Filter, interval time.Duration) ([]monitor.ProcessInfo, error) {
	if _, err := manager.Snapshot(ctx, filter); err != nil {
		return nil, err
	}
	if interval > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
	return manager.Snapshot(ctx, filter)
}

// renderProcesses writes the visible columns of procs as a table. width is
// the terminal width, or -1 when unknown.
func renderProcesses(w io.Writer, procs []monitor.ProcessInfo, flags controller.ColumnFlags, width int) {
	tw := newTable(w)

	var (
		titles  []string
		columns []controller.Column
	)
	for _, c := range controller.Columns() {
		if flags.Visible(c) {
			titles = append(titles, c.Title())
			columns = append(columns, c)
		}
	}
	tw.AppendHeader(header(titles...))

	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, c := range columns {
		cfg := table.ColumnConfig{Number: i + 1, Align: text.AlignRight}
		if c == controller.ColumnName {
			cfg.Align = text.AlignLeft
			if width > 0 {
				// Every other column fits in about twelve cells.
				nameWidth := max(width-12*(len(columns)-1)-4, minNameWidth)
				cfg.WidthMax = nameWidth
				cfg.Transformer = truncTransformer(nameWidth)
			}
		}
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)

	for _, p := range procs {
		row := make(table.Row, 0, len(columns))
		for _, c := range columns {
			row = append(row, monitor.FormatColumn(c.String(), p))
		}
		tw.AppendRow(row)
	}
	tw.Render()
}
