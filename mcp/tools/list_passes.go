package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/trench/internal/trench"
)

// ListPassesDefinition describes the pass schedule tool.
func ListPassesDefinition() Definition {
	return Definition{
		Name:        ListPassesName,
		Description: "List upcoming satellite passes (AOS/LOS windows) over ground stations, optionally filtered by satellite or station.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"satellite_id": map[string]any{
					"type":        "string",
					"description": "Only passes for this satellite",
				},
				"station_id": map[string]any{
					"type":        "string",
					"description": "Only passes over this ground station",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of passes to return",
					"minimum":     1,
				},
			},
		},
	}
}

// ListPassesTool returns the complete, wrapped tool definition.
func ListPassesTool() Tool {
	return Tool{
		Type:     "function",
		Function: ListPassesDefinition(),
	}
}

// listPasses fetches the pass schedule with the requested filters.
func (r *Registry) listPasses(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	query, err := passQueryFromArgs(args)
	if err != nil {
		return nil, err
	}

	passes, err := r.Client.Passes(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list passes: %w", err)
	}

	jsonContent, err := jsonPart(passes)
	if err != nil {
		return nil, err
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "%d pass(es) scheduled.", len(passes))
	for _, pass := range passes {
		summary.WriteString("\n" + formatPass(pass))
	}

	return []ContentPart{jsonContent, textPart(summary.String())}, nil
}

// passQueryFromArgs builds the pass filter from tool arguments.
func passQueryFromArgs(args map[string]any) (trench.PassQuery, error) {
	var query trench.PassQuery

	satellite, err := optionalStringArg(args, "satellite_id")
	if err != nil {
		return query, err
	}
	station, err := optionalStringArg(args, "station_id")
	if err != nil {
		return query, err
	}
	limit, ok, err := optionalNumberArg(args, "limit")
	if err != nil {
		return query, err
	}

	query.SatelliteID = satellite
	query.StationID = station
	if ok {
		query.Limit = int(limit)
	}
	return query, nil
}

// formatPass renders one pass as a single summary line.
func formatPass(pass trench.Pass) string {
	return fmt.Sprintf("- %s over %s: AOS %s, LOS %s, max elevation %s",
		pass.SatelliteID, pass.StationID,
		formatTimestamp(pass.AOS),
		formatTimestamp(pass.LOS),
		formatFloat(pass.MaxElevationDeg, "deg"),
	)
}
