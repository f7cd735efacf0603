package tools

import (
	"context"
	"fmt"
	"strings"
)

// GetSatelliteDefinition describes the satellite detail tool.
func GetSatelliteDefinition() Definition {
	return Definition{
		Name:        GetSatelliteName,
		Description: "Get one satellite's detail: status, orbital elements, and current position.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"satellite_id": map[string]any{
					"type":        "string",
					"description": "The satellite identifier, e.g. sat-1",
				},
			},
			"required": []string{"satellite_id"},
		},
	}
}

// GetSatelliteTool returns the complete, wrapped tool definition.
func GetSatelliteTool() Tool {
	return Tool{
		Type:     "function",
		Function: GetSatelliteDefinition(),
	}
}

// getSatellite fetches one satellite by id.
func (r *Registry) getSatellite(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	id, err := requiredStringArg(args, "satellite_id")
	if err != nil {
		return nil, err
	}

	sat, err := r.Client.Satellite(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch satellite %s: %w", id, err)
	}

	jsonContent, err := jsonPart(sat)
	if err != nil {
		return nil, err
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "%s (%s) is %s. Orbit: %s x %s at %s inclination, period %s.",
		sat.Name, sat.ID, sat.Status,
		formatFloat(sat.Orbit.ApogeeKM, "km"),
		formatFloat(sat.Orbit.PerigeeKM, "km"),
		formatFloat(sat.Orbit.InclinationDeg, "deg"),
		formatFloat(sat.Orbit.PeriodMinutes, "min"),
	)
	if sat.Position != nil {
		fmt.Fprintf(&summary, " Position: %s, %s at %s altitude, %s.",
			formatFloat(sat.Position.LatitudeDeg, "deg lat"),
			formatFloat(sat.Position.LongitudeDeg, "deg lon"),
			formatFloat(sat.Position.AltitudeKM, "km"),
			formatFloat(sat.Position.VelocityKMS, "km/s"),
		)
	}

	return []ContentPart{jsonContent, textPart(summary.String())}, nil
}
