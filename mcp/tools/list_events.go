package tools

import (
	"context"
	"fmt"
	"strings"
)

// ListEventsDefinition describes the event log tool.
func ListEventsDefinition() Definition {
	return Definition{
		Name:        ListEventsName,
		Description: "List recent simulation events (pass boundaries, command lifecycle, anomalies), newest first.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of events to return",
					"minimum":     1,
				},
			},
		},
	}
}

// ListEventsTool returns the complete, wrapped tool definition.
func ListEventsTool() Tool {
	return Tool{
		Type:     "function",
		Function: ListEventsDefinition(),
	}
}

// listEvents fetches the recent event log.
func (r *Registry) listEvents(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	limit, ok, err := optionalNumberArg(args, "limit")
	if err != nil {
		return nil, err
	}

	var n int
	if ok {
		n = int(limit)
	}

	events, err := r.Client.Events(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	jsonContent, err := jsonPart(events)
	if err != nil {
		return nil, err
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "%d event(s).", len(events))
	for _, event := range events {
		fmt.Fprintf(&summary, "\n- [%s] %s %s: %s",
			strings.ToUpper(event.Severity),
			formatTimestamp(event.Timestamp),
			event.Source,
			event.Message,
		)
	}

	return []ContentPart{jsonContent, textPart(summary.String())}, nil
}
