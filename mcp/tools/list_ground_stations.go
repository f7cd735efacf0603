package tools

import (
	"context"
	"fmt"
	"strings"
)

// ListGroundStationsDefinition describes the ground-station catalog tool.
func ListGroundStationsDefinition() Definition {
	return Definition{
		Name:        ListGroundStationsName,
		Description: "List every ground station in the Trench simulation with its location and status.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

// ListGroundStationsTool returns the complete, wrapped tool definition.
func ListGroundStationsTool() Tool {
	return Tool{
		Type:     "function",
		Function: ListGroundStationsDefinition(),
	}
}

// listGroundStations fetches the ground-station catalog.
func (r *Registry) listGroundStations(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	stations, err := r.Client.GroundStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ground stations: %w", err)
	}

	jsonContent, err := jsonPart(stations)
	if err != nil {
		return nil, err
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "%d ground station(s).", len(stations))
	for _, station := range stations {
		fmt.Fprintf(&summary, "\n- %s (%s): %s, %s, elevation %s, %s",
			station.Name, station.ID,
			formatFloat(station.LatitudeDeg, "deg lat"),
			formatFloat(station.LongitudeDeg, "deg lon"),
			formatFloat(station.ElevationM, "m"),
			station.Status,
		)
	}

	return []ContentPart{jsonContent, textPart(summary.String())}, nil
}
