// internal/cli/status.go
package trench

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	api "github.com/mwiater/trench/internal/trench"
)

var (
	nominalStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	degradedTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	offlineStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// statusCmd summarizes the simulation and the satellite fleet in one view.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show simulation and fleet status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		return runStatus(cmd.Context(), cmd.OutOrStdout(), client)
	},
}

// runStatus fetches the simulation summary plus the satellite and station
// catalogs and renders them.
func runStatus(ctx context.Context, out io.Writer, client *api.Client) error {
	sim, err := client.Simulation(ctx)
	if err != nil {
		return err
	}
	sats, err := client.Satellites(ctx)
	if err != nil {
		return err
	}
	stations, err := client.GroundStations(ctx)
	if err != nil {
		return err
	}
	printStatus(out, sim, sats, stations)
	return nil
}

func printStatus(out io.Writer, sim api.Simulation, sats []api.Satellite, stations []api.GroundStation) {
	fmt.Fprintln(out, headingStyle.Render("Simulation: "+sim.Name))
	fmt.Fprintf(out, "  State:       %s\n", sim.State)
	fmt.Fprintf(out, "  Epoch start: %s\n", formatWireTime(sim.EpochStart))
	fmt.Fprintf(out, "  Clock speed: %gx real time\n", sim.ClockSpeed)
	fmt.Fprintf(out, "  Elapsed:     %.0fs simulated\n", sim.ElapsedSeconds)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s\n", headingStyle.Render(fmt.Sprintf("Satellites (%d):", len(sats))))
	for _, sat := range sats {
		fmt.Fprintf(out, "  %-12s %-20s %s\n", sat.ID, sat.Name, statusText(sat.Status))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s\n", headingStyle.Render(fmt.Sprintf("Ground stations (%d):", len(stations))))
	for _, st := range stations {
		fmt.Fprintf(out, "  %-12s %-20s %s\n", st.ID, st.Name, statusText(st.Status))
	}
}

// statusText colors a status word by how worried the operator should be.
func statusText(status string) string {
	switch strings.ToLower(status) {
	case "nominal", "online":
		return nominalStyle.Render(status)
	case "degraded", "safe_mode":
		return degradedTextStyle.Render(status)
	case "offline", "lost":
		return offlineStyle.Render(status)
	default:
		return status
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
