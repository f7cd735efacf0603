// internal/cli/passes_entry.go
package trench

import (
	"fmt"
	"io"

	api "github.com/mwiater/trench/internal/trench"
	"github.com/mwiater/trench/internal/timewait"
)

// printPasses renders passes as an aligned table, one row per pass.
func printPasses(out io.Writer, passes []api.Pass) {
	if len(passes) == 0 {
		fmt.Fprintln(out, "No upcoming passes.")
		return
	}

	fmt.Fprintf(out, "%s\n", headingStyle.Render(fmt.Sprintf("Upcoming passes (%d):", len(passes))))
	fmt.Fprintf(out, "  %-12s %-14s %-21s %-21s %s\n", "SATELLITE", "STATION", "AOS", "LOS", "MAX ELEV")
	for _, pass := range passes {
		fmt.Fprintf(out, "  %-12s %-14s %-21s %-21s %5.1f°\n",
			pass.SatelliteID,
			pass.StationID,
			passTime(pass.AOS),
			passTime(pass.LOS),
			pass.MaxElevationDeg,
		)
	}
}

// passTime compacts a wire timestamp for table display.
func passTime(raw string) string {
	parsed, err := timewait.ParseTimestamp(raw)
	if err != nil {
		return raw
	}
	return parsed.Format("2006-01-02 15:04:05")
}
