package tools

import (
	"context"
	"fmt"
)

// GetSimulationTimeDefinition describes the simulation-time tool for discovery
// by the MCP host.
func GetSimulationTimeDefinition() Definition {
	return Definition{
		Name:        GetSimulationTimeName,
		Description: "Get the current Trench simulation time along with the epoch start and the clock-speed multiplier.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

// GetSimulationTimeTool returns the complete, wrapped tool definition.
func GetSimulationTimeTool() Tool {
	return Tool{
		Type:     "function",
		Function: GetSimulationTimeDefinition(),
	}
}

// getSimulationTime fetches the /time snapshot and returns it as JSON plus a
// one-line summary.
func (r *Registry) getSimulationTime(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	reading, err := r.Client.Time(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch simulation time: %w", err)
	}

	jsonContent, err := jsonPart(reading)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("Simulation time is %s (epoch start %s, running at %gx real time).",
		formatTimestamp(reading.CurrentTime),
		formatTimestamp(reading.EpochStart),
		reading.ClockSpeed,
	)

	return []ContentPart{jsonContent, textPart(summary)}, nil
}
