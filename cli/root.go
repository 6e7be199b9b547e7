// Package cli provides the command line of System Monitor. Without a
// subcommand it opens the desktop window; the subcommands run the terminal
// frontend or print one-shot reports for scripting.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/config"
	"github.com/yllada/system-monitor/controller"
	"github.com/yllada/system-monitor/monitor"
)

// Options holds the build metadata and the collaborators of the commands.
type Options struct {
	Version   string
	BuildTime string
	Commit    string

	// RunGUI opens the desktop window and returns its exit code.
	RunGUI func(store *config.Store, args []string) int
	// Signaler ends processes. Defaults to monitor.Terminator.
	Signaler controller.Signaler
	// LookupName resolves a pid to its process name for the kill prompt.
	LookupName func(ctx context.Context, pid int) (string, error)
	// LogDir overrides the directory of the log file.
	LogDir string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type app struct {
	opts       Options
	verbose    bool
	configPath string
	store      *config.Store
	exitCode   int
}

func newApp(opts Options) *app {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Signaler == nil {
		opts.Signaler = monitor.Terminator{}
	}
	if opts.LookupName == nil {
		opts.LookupName = monitor.ProcessName
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	return &app{opts: opts}
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts Options) *cobra.Command {
	return newApp(opts).rootCmd()
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, opts Options) int {
	a := newApp(opts)
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		// Cobra prints the error, we just exit non-zero
		return 1
	}
	return a.exitCode
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "system-monitor",
		Short: "Watch and manage the processes of this machine",
		Long: `System Monitor shows live CPU, memory, disk and network usage next to
the list of running processes, and lets you end misbehaving ones.

Run without a command to open the desktop window, or use "tui" for the
terminal frontend.`,
		Version:           a.opts.Version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runGUI,
	}
	root.SetVersionTemplate(`{{printf "System Monitor %s\n" .Version}}`)
	root.SetIn(a.opts.In)
	root.SetOut(a.opts.Out)
	root.SetErr(a.opts.Err)

	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Configuration file (default ~/.config/system-monitor/config.yaml)")

	root.AddCommand(
		a.newTUICmd(),
		a.newListCmd(),
		a.newStatusCmd(),
		a.newKillCmd(),
		a.newHistoryCmd(),
		a.newVersionCmd(),
	)
	return root
}

// setup configures logging. Long running frontends also log to a file.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	level := common.LevelInfo
	if a.verbose {
		level = common.LevelDebug
	}

	longRunning := cmd == cmd.Root() || cmd.Name() == "tui"
	if err := common.InitLogger(common.LogConfig{
		Level:      level,
		EnableFile: longRunning,
		Dir:        a.opts.LogDir,
	}); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not initialize file logging: %v\n", err)
	}
	return nil
}

// preferences opens the configuration store on first use.
func (a *app) preferences() (*config.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	var (
		store *config.Store
		err   error
	)
	if a.configPath != "" {
		store, err = config.OpenStore(a.configPath)
	} else {
		store, err = config.OpenDefaultStore()
	}
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

func (a *app) runGUI(cmd *cobra.Command, args []string) error {
	if a.opts.RunGUI == nil {
		return fmt.Errorf("desktop frontend not available in this build")
	}
	store, err := a.preferences()
	if err != nil {
		return err
	}

	common.LogInfo("Starting %s %s", common.AppName, a.opts.Version)
	a.exitCode = a.opts.RunGUI(store, os.Args[:1])
	if a.exitCode != 0 {
		common.LogWarn("Application exited with code %d", a.exitCode)
	}
	return nil
}
