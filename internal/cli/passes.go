// internal/cli/passes.go
package trench

import (
	"github.com/spf13/cobra"

	api "github.com/mwiater/trench/internal/trench"
)

// passesCmd lists upcoming satellite passes over ground stations.
var passesCmd = &cobra.Command{
	Use:   "passes",
	Short: "List upcoming satellite passes",
	Long:  "Lists upcoming passes in simulation time, soonest acquisition of signal first. Filter by satellite or ground station with the flags.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		satellite, _ := cmd.Flags().GetString("satellite")
		station, _ := cmd.Flags().GetString("station")
		limit, _ := cmd.Flags().GetInt("limit")

		passes, err := client.Passes(cmd.Context(), api.PassQuery{
			SatelliteID: satellite,
			StationID:   station,
			Limit:       limit,
		})
		if err != nil {
			return err
		}
		printPasses(cmd.OutOrStdout(), passes)
		return nil
	},
}

func init() {
	passesCmd.Flags().String("satellite", "", "only passes for this satellite id")
	passesCmd.Flags().String("station", "", "only passes over this ground station id")
	passesCmd.Flags().Int("limit", 0, "maximum number of passes to list")
	rootCmd.AddCommand(passesCmd)
}
