package tools

import (
	"context"
	"fmt"
	"strings"
)

// GetCommandStatusDefinition describes the command status tool.
func GetCommandStatusDefinition() Definition {
	return Definition{
		Name:        GetCommandStatusName,
		Description: "Get the status of a previously sent satellite command by its command id.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"command_id": map[string]any{
					"type":        "string",
					"description": "The command id returned by send_command",
				},
			},
			"required": []string{"command_id"},
		},
	}
}

// GetCommandStatusTool returns the complete, wrapped tool definition.
func GetCommandStatusTool() Tool {
	return Tool{
		Type:     "function",
		Function: GetCommandStatusDefinition(),
	}
}

// getCommandStatus fetches one command's lifecycle state.
func (r *Registry) getCommandStatus(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	id, err := requiredStringArg(args, "command_id")
	if err != nil {
		return nil, err
	}

	status, err := r.Client.Command(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch command %s: %w", id, err)
	}

	jsonContent, err := jsonPart(status)
	if err != nil {
		return nil, err
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "Command %s (%s for %s) is %s, issued %s.",
		status.CommandID, status.Command, status.SatelliteID, status.Status,
		formatTimestamp(status.IssuedAt),
	)
	if status.CompletedAt != "" {
		fmt.Fprintf(&summary, " Completed %s.", formatTimestamp(status.CompletedAt))
	}
	if status.Detail != "" {
		fmt.Fprintf(&summary, " %s", status.Detail)
	}

	return []ContentPart{jsonContent, textPart(summary.String())}, nil
}
