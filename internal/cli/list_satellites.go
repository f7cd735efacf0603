// internal/cli/list_satellites.go
package trench

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	api "github.com/mwiater/trench/internal/trench"
)

// satellitesCmd implements 'list satellites', printing the satellite catalog.
var satellitesCmd = &cobra.Command{
	Use:   "satellites",
	Short: "List the satellite catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		sats, err := client.Satellites(cmd.Context())
		if err != nil {
			return err
		}
		printSatellites(cmd.OutOrStdout(), sats)
		return nil
	},
}

// printSatellites renders the catalog as an aligned table.
func printSatellites(out io.Writer, sats []api.Satellite) {
	if len(sats) == 0 {
		fmt.Fprintln(out, "No satellites in the catalog.")
		return
	}

	fmt.Fprintf(out, "%s\n", headingStyle.Render(fmt.Sprintf("Satellites (%d):", len(sats))))
	fmt.Fprintf(out, "  %-12s %-20s %-10s %-10s %s\n", "ID", "NAME", "NORAD", "STATUS", "PERIOD")
	for _, sat := range sats {
		norad := "-"
		if sat.NoradID != 0 {
			norad = fmt.Sprintf("%d", sat.NoradID)
		}
		fmt.Fprintf(out, "  %-12s %-20s %-10s %-10s %.1f min\n",
			sat.ID, sat.Name, norad, sat.Status, sat.Orbit.PeriodMinutes)
	}
}

func init() {
	listCmd.AddCommand(satellitesCmd)
}
