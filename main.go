// Package main provides the entry point for System Monitor.
// System Monitor is a GTK4 process monitor for Linux that shows live system
// usage next to the running processes and lets the user end them.
//
// Features:
//   - Process list filtered by applications, own processes or all
//   - Status sidebar with CPU, memory, disk and network usage
//   - Kill picker and confirmation dialog for ending applications
//   - Light and dark themes, remembered across runs
//   - Terminal frontend and one-shot commands for scripting
//
// Usage:
//
//	system-monitor [command] [flags]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/system-monitor/cli"
	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/config"
	"github.com/yllada/system-monitor/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

func main() {
	// Cancel the context on SIGINT/SIGTERM. In GUI mode GTK handles the
	// shutdown through the window instead.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, cli.Options{
		Version:   appVersion,
		BuildTime: buildTime,
		Commit:    commitSHA,
		RunGUI:    runGUI,
	})

	stop()
	_ = common.CloseLogger()
	os.Exit(code)
}

func runGUI(store *config.Store, args []string) int {
	return ui.NewApplication(common.AppID, appVersion, store).Run(args)
}
