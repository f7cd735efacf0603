// internal/cli/time.go
package trench

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	api "github.com/mwiater/trench/internal/trench"
	"github.com/mwiater/trench/internal/timewait"
)

var headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)

// timeCmd prints the current simulation time.
var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Show the current simulation time",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		reading, err := client.Time(cmd.Context())
		if err != nil {
			return err
		}
		printTimeReading(cmd.OutOrStdout(), reading)
		return nil
	},
}

// printTimeReading renders one /time snapshot.
func printTimeReading(out io.Writer, reading api.TimeReading) {
	fmt.Fprintln(out, headingStyle.Render("Simulation time"))
	fmt.Fprintf(out, "  Current:     %s\n", formatWireTime(reading.CurrentTime))
	fmt.Fprintf(out, "  Epoch start: %s\n", formatWireTime(reading.EpochStart))
	fmt.Fprintf(out, "  Clock speed: %gx real time\n", reading.ClockSpeed)
}

// formatWireTime reformats an API timestamp for display, falling back to the
// raw text when it does not parse.
func formatWireTime(raw string) string {
	parsed, err := timewait.ParseTimestamp(raw)
	if err != nil {
		return raw
	}
	return parsed.Format("2006-01-02 15:04:05 UTC")
}

func init() {
	rootCmd.AddCommand(timeCmd)
}
