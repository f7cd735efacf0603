package tools

import (
	"context"
	"fmt"
)

// GetTelemetryDefinition describes the telemetry tool.
func GetTelemetryDefinition() Definition {
	return Definition{
		Name:        GetTelemetryName,
		Description: "Get the latest telemetry frame for a satellite: battery, temperature, signal strength, and mode.",
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

// GetTelemetryTool returns the complete, wrapped tool definition.
func GetTelemetryTool() Tool {
	return Tool{
		Type:     "function",
		Function: GetTelemetryDefinition(),
	}
}

// getTelemetry fetches the newest telemetry frame for one satellite.
func (r *Registry) getTelemetry(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	id, err := requiredStringArg(args, "satellite_id")
	if err != nil {
		return nil, err
	}

	frame, err := r.Client.Telemetry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch telemetry for %s: %w", id, err)
	}

	jsonContent, err := jsonPart(frame)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("%s at %s: battery %s, temperature %s, signal %s, mode %s.",
		frame.SatelliteID,
		formatTimestamp(frame.Timestamp),
		formatFloat(frame.BatteryPct, "%"),
		formatFloat(frame.TemperatureC, "C"),
		formatFloat(frame.SignalDBM, "dBm"),
		frame.Mode,
	)

	return []ContentPart{jsonContent, textPart(summary)}, nil
}
