// internal/cli/wait.go
package trench

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwiater/trench/internal/logging"
	"github.com/mwiater/trench/internal/observe"
	"github.com/mwiater/trench/internal/timewait"
)

var exitFunc = os.Exit

// Exit codes for 'trench wait', one per terminal outcome.
const (
	exitReached     = 0
	exitTimedOut    = 2
	exitParseError  = 3
	exitSourceError = 4
)

// waitCmd blocks until the simulation clock reaches the target time.
var waitCmd = &cobra.Command{
	Use:          "wait <target>",
	Short:        "Block until the simulation reaches a target time",
	Long:         `The 'wait' command polls the Trench API until the simulation clock reaches the target ISO-8601 time, then exits. The exit code reflects the outcome: 0 reached, 2 timed out, 3 unparseable timestamp, 4 time source failure.`,
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

		waiter := &timewait.Waiter{
			Source:       client,
			PollInterval: poll,
			Timeout:      timeout,
		}

		logging.LogEvent("wait started: target=%s poll=%s timeout=%s", args[0], poll, timeout)
		outcome := waiter.Wait(cmd.Context(), args[0])
		logging.LogEvent("wait finished: %s", outcome)
		observe.DefaultMetrics().RecordWaitOutcome(cmd.Context(), outcome.Kind.String())

		fmt.Fprintln(cmd.OutOrStdout(), outcome)
		exitFunc(waitExitCode(outcome.Kind))
		return nil
	},
}

// waitExitCode maps an outcome tag to the command's exit code.
func waitExitCode(kind timewait.OutcomeKind) int {
	switch kind {
	case timewait.OutcomeReached:
		return exitReached
	case timewait.OutcomeTimedOut:
		return exitTimedOut
	case timewait.OutcomeParseError:
		return exitParseError
	case timewait.OutcomeSourceError:
		return exitSourceError
	default:
		return 1
	}
}

func init() {
	waitCmd.Flags().Duration("poll", 0, "delay between time queries (default from config, 100ms)")
	waitCmd.Flags().Duration("timeout", 0, "wall-clock budget for the wait (default from config, 24h)")
	rootCmd.AddCommand(waitCmd)
}
