package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of System Monitor",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "System Monitor %s\n", a.opts.Version)
			if a.opts.BuildTime != "" && a.opts.BuildTime != "unknown" {
				fmt.Fprintf(out, "  Build:  %s\n", a.opts.BuildTime)
				fmt.Fprintf(out, "  Commit: %s\n", a.opts.Commit)
			}
		},
	}
}
