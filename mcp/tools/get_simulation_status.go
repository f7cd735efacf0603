package tools

import (
	"context"
	"fmt"
	"strings"
)

// GetSimulationStatusDefinition describes the simulation-status tool.
func GetSimulationStatusDefinition() Definition {
	return Definition{
		Name:        GetSimulationStatusName,
		Description: "Get the Trench simulation run state: scenario name, running or paused, epoch start, clock speed, and elapsed simulation seconds.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

// GetSimulationStatusTool returns the complete, wrapped tool definition.
func GetSimulationStatusTool() Tool {
	return Tool{
		Type:     "function",
		Function: GetSimulationStatusDefinition(),
	}
}

// getSimulationStatus fetches the /simulation snapshot.
func (r *Registry) getSimulationStatus(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	sim, err := r.Client.Simulation(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch simulation status: %w", err)
	}

	jsonContent, err := jsonPart(sim)
	if err != nil {
		return nil, err
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "Scenario %q is %s.", sim.Name, sim.State)
	fmt.Fprintf(&summary, " Epoch started %s, clock at %gx, %s of simulated time elapsed.",
		formatTimestamp(sim.EpochStart),
		sim.ClockSpeed,
		formatFloat(sim.ElapsedSeconds, "s"),
	)

	return []ContentPart{jsonContent, textPart(summary.String())}, nil
}
