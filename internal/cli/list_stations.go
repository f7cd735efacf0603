// internal/cli/list_stations.go
package trench

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	api "github.com/mwiater/trench/internal/trench"
)

// stationsCmd implements 'list stations', printing the ground-station catalog.
var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List the ground-station catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		stations, err := client.GroundStations(cmd.Context())
		if err != nil {
			return err
		}
		printStations(cmd.OutOrStdout(), stations)
		return nil
	},
}

// printStations renders the catalog as an aligned table.
func printStations(out io.Writer, stations []api.GroundStation) {
	if len(stations) == 0 {
		fmt.Fprintln(out, "No ground stations in the catalog.")
		return
	}

	fmt.Fprintf(out, "%s\n", headingStyle.Render(fmt.Sprintf("Ground stations (%d):", len(stations))))
	fmt.Fprintf(out, "  %-14s %-20s %9s %10s %7s  %s\n", "ID", "NAME", "LAT", "LON", "ELEV", "STATUS")
	for _, st := range stations {
		fmt.Fprintf(out, "  %-14s %-20s %8.3f° %9.3f° %5.0fm  %s\n",
			st.ID, st.Name, st.LatitudeDeg, st.LongitudeDeg, st.ElevationM, st.Status)
	}
}

func init() {
	listCmd.AddCommand(stationsCmd)
}
