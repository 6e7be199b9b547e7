package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/controller"
)

const killWarning = "Ending an application risks losing data."

func (a *app) newKillCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "kill <pid>",
		Short: "End a process",
		Long: `Send the termination signal to a process after asking for confirmation,
like the "End process" dialog of the window.`,
		Example: `  system-monitor kill 4242
  system-monitor kill 4242 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil || n <= 0 {
				return fmt.Errorf("%w: %s", common.ErrInvalidPID, args[0])
			}
			return a.runKill(cmd, int(n), yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *app) runKill(cmd *cobra.Command, pid int, yes bool) error {
	name, err := a.opts.LookupName(cmd.Context(), pid)
	if err != nil {
		return err
	}

	flow := controller.NewKillFlow(a.opts.Signaler, common.GetLogger())
	flow.Request(pid)

	confirmed := yes || confirm(cmd, fmt.Sprintf("%s\nEnd %s (pid %d)? [y/N] ", killWarning, name, pid))
	outcome := flow.Resolve(confirmed)

	out := cmd.OutOrStdout()
	switch {
	case !outcome.Attempted:
		fmt.Fprintln(out, "Cancelled.")
	case outcome.Err != nil:
		return outcome.Err
	default:
		fmt.Fprintf(out, "✓ Ended %s (pid %d)\n", name, pid)
	}
	return nil
}

// confirm prints prompt and reads a yes/no answer. Anything but yes,
// including end of input, is no.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
