// internal/cli/watch.go
package trench

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/trench/internal/logging"
	"github.com/mwiater/trench/internal/observe"
	"github.com/mwiater/trench/internal/tui"
)

// watchCmd is the interactive sibling of 'trench wait': same wait semantics,
// rendered as a live countdown instead of a silent block.
var watchCmd = &cobra.Command{
	Use:          "watch <target-time>",
	Short:        "Watch simulation time advance toward a target",
	Long:         `The 'watch' command waits for the simulation clock to reach the target ISO-8601 time while rendering live progress. Press q to abort; an aborted watch exits with status 1.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		cfg := getConfig()

		poll, _ := cmd.Flags().GetDuration("poll")
		if poll <= 0 {
			poll = cfg.PollInterval()
		}
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if timeout <= 0 {
			timeout = cfg.WaitTimeout()
		}

		logging.LogEvent("Watching for simulation time %s (poll %s, timeout %s)", args[0], poll, timeout)

		outcome, aborted, err := tui.Run(cmd.Context(), tui.Config{
			Target:       args[0],
			Source:       client,
			PollInterval: poll,
			Timeout:      timeout,
		})
		if err != nil {
			return err
		}

		if aborted {
			observe.DefaultMetrics().RecordWaitOutcome(cmd.Context(), "aborted")
			logging.LogEvent("Watch aborted by user")
			fmt.Fprintln(cmd.OutOrStdout(), "watch aborted")
			exitFunc(1)
			return nil
		}

		observe.DefaultMetrics().RecordWaitOutcome(cmd.Context(), outcome.Kind.String())
		logging.LogEvent("Watch finished: %s", outcome)
		fmt.Fprintln(cmd.OutOrStdout(), outcome)
		exitFunc(waitExitCode(outcome.Kind))
		return nil
	},
}

func init() {
	watchCmd.Flags().Duration("poll", 0, "delay between time queries (default from config, 100ms)")
	watchCmd.Flags().Duration("timeout", 0, "wall-clock budget for the wait (default from config, 24h)")
	rootCmd.AddCommand(watchCmd)
}
