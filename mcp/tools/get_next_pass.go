package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mwiater/trench/internal/timewait"
	"github.com/mwiater/trench/internal/trench"
)

// GetNextPassDefinition describes the next-pass tool.
func GetNextPassDefinition() Definition {
	return Definition{
		Name:        GetNextPassName,
		Description: "Get the next upcoming pass (AOS/LOS window) for a satellite, optionally over a specific ground station, relative to the current simulation time.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"satellite_id": map[string]any{
					"type":        "string",
					"description": "The satellite identifier, e.g. sat-1",
				},
				"station_id": map[string]any{
					"type":        "string",
					"description": "Only consider passes over this ground station",
				},
			},
			"required": []string{"satellite_id"},
		},
	}
}

// GetNextPassTool returns the complete, wrapped tool definition.
func GetNextPassTool() Tool {
	return Tool{
		Type:     "function",
		Function: GetNextPassDefinition(),
	}
}

// getNextPass finds the earliest pass that has not ended yet, judged against
// the current simulation time.
func (r *Registry) getNextPass(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	satellite, err := requiredStringArg(args, "satellite_id")
	if err != nil {
		return nil, err
	}
	station, err := optionalStringArg(args, "station_id")
	if err != nil {
		return nil, err
	}

	raw, err := r.Client.CurrentTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch simulation time: %w", err)
	}
	now, err := timewait.ParseTimestamp(raw)
	if err != nil {
		return nil, fmt.Errorf("simulation time %q is not parseable: %w", raw, err)
	}

	passes, err := r.Client.Passes(ctx, trench.PassQuery{SatelliteID: satellite, StationID: station})
	if err != nil {
		return nil, fmt.Errorf("failed to list passes: %w", err)
	}

	var next *trench.Pass
	var nextAOS time.Time
	for i, pass := range passes {
		aos, err := timewait.ParseTimestamp(pass.AOS)
		if err != nil {
			continue
		}
		if los, err := timewait.ParseTimestamp(pass.LOS); err == nil && los.Before(now) {
			continue
		}
		if next == nil || aos.Before(nextAOS) {
			next = &passes[i]
			nextAOS = aos
		}
	}

	if next == nil {
		return []ContentPart{textPart(fmt.Sprintf("No upcoming passes for %s.", satellite))}, nil
	}

	jsonContent, err := jsonPart(next)
	if err != nil {
		return nil, err
	}

	var summary string
	if nextAOS.After(now) {
		summary = fmt.Sprintf("Next pass for %s over %s begins in %s of simulation time: AOS %s, LOS %s, max elevation %s.",
			next.SatelliteID, next.StationID,
			nextAOS.Sub(now).Round(time.Second),
			formatTimestamp(next.AOS),
			formatTimestamp(next.LOS),
			formatFloat(next.MaxElevationDeg, "deg"),
		)
	} else {
		summary = fmt.Sprintf("Pass for %s over %s is in progress now: AOS %s, LOS %s, max elevation %s.",
			next.SatelliteID, next.StationID,
			formatTimestamp(next.AOS),
			formatTimestamp(next.LOS),
			formatFloat(next.MaxElevationDeg, "deg"),
		)
	}

	return []ContentPart{jsonContent, textPart(summary)}, nil
}
