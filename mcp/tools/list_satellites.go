package tools

import (
	"context"
	"fmt"
	"strings"
)

// ListSatellitesDefinition describes the satellite catalog tool.
func ListSatellitesDefinition() Definition {
	return Definition{
		Name:        ListSatellitesName,
		Description: "List every satellite in the Trench simulation with its status and orbit summary.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

// ListSatellitesTool returns the complete, wrapped tool definition.
func ListSatellitesTool() Tool {
	return Tool{
		Type:     "function",
		Function: ListSatellitesDefinition(),
	}
}

// listSatellites fetches the satellite catalog.
func (r *Registry) listSatellites(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	satellites, err := r.Client.Satellites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list satellites: %w", err)
	}

	jsonContent, err := jsonPart(satellites)
	if err != nil {
		return nil, err
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "%d satellite(s) in the simulation.", len(satellites))
	for _, sat := range satellites {
		fmt.Fprintf(&summary, "\n- %s (%s): %s, period %s, inclination %s",
			sat.Name, sat.ID, sat.Status,
			formatFloat(sat.Orbit.PeriodMinutes, "min"),
			formatFloat(sat.Orbit.InclinationDeg, "deg"),
		)
	}

	return []ContentPart{jsonContent, textPart(summary.String())}, nil
}
