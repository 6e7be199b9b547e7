package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/history"
	"github.com/yllada/system-monitor/monitor"
	"github.com/yllada/system-monitor/tui"
)

func (a *app) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal frontend",
		Long: `Run System Monitor inside the terminal. It shares the preferences of the
desktop window: the selected tab, the visible columns and the theme.`,
		Args: cobra.NoArgs,
		RunE: a.runTUI,
	}
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the terminal frontend needs an interactive terminal")
	}
	store, err := a.preferences()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	// The alternate screen owns stdout and stderr from here on.
	common.GetLogger().SetOutput(io.Discard)

	cfg := store.Config()
	gui := monitor.NewSessionBusDetector()
	defer gui.Close()

	manager := monitor.NewManager(gui)
	sampler := monitor.NewSampler(manager, monitor.SamplerConfig{
		Interval: cfg.SampleInterval,
		Filter:   monitor.FilterForTab(controller.InitialLayout(store).TabIndex),
	})

	var frontend tui.Sampler = sampler
	if cfg.HistoryEnabled {
		if rec := openRecorder(ctx); rec != nil {
			defer rec.Close()
			frontend = recordingSampler{Sampler: sampler, store: rec}
		}
	}

	return tui.Run(ctx, tui.Options{
		Preferences: store,
		Sampler:     frontend,
		Source:      manager,
		Signaler:    a.opts.Signaler,
		Logger:      common.GetLogger(),
	})
}

func openRecorder(ctx context.Context) *history.Store {
	path, err := history.DefaultPath()
	if err != nil {
		common.LogWarn("History disabled: %v", err)
		return nil
	}
	hostname, _ := os.Hostname()
	store, err := history.Open(ctx, path, hostname)
	if err != nil {
		common.LogWarn("History disabled: %v", err)
		return nil
	}
	return store
}

// recordingSampler stores every status sample before handing it on.
type recordingSampler struct {
	*monitor.Sampler
	store *history.Store
}

func (r recordingSampler) SetOnStatus(fn func(monitor.Status)) {
	r.Sampler.SetOnStatus(func(st monitor.Status) {
		if err := r.store.RecordStatus(context.Background(), st); err != nil {
			common.LogDebug("Failed to record sample: %v", err)
		}
		fn(st)
	})
}
