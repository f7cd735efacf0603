package tools

import (
	"context"
	"fmt"
)

// SendCommandDefinition describes the command uplink tool.
func SendCommandDefinition() Definition {
	return Definition{
		Name:        SendCommandName,
		Description: "Enqueue a command for a satellite, e.g. SAFE_MODE or DOWNLINK. Returns a command id for status polling.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"satellite_id": map[string]any{
					"type":        "string",
					"description": "The satellite identifier, e.g. sat-1",
				},
				"command": map[string]any{
					"type":        "string",
					"description": "The command mnemonic, e.g. SAFE_MODE",
				},
				"args": map[string]any{
					"type":        "object",
					"description": "Optional command arguments",
				},
			},
			"required": []string{"satellite_id", "command"},
		},
	}
}

// SendCommandTool returns the complete, wrapped tool definition.
func SendCommandTool() Tool {
	return Tool{
		Type:     "function",
		Function: SendCommandDefinition(),
	}
}

// sendCommand posts one command to a satellite's uplink queue.
func (r *Registry) sendCommand(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	satellite, err := requiredStringArg(args, "satellite_id")
	if err != nil {
		return nil, err
	}
	command, err := requiredStringArg(args, "command")
	if err != nil {
		return nil, err
	}

	var commandArgs map[string]any
	if val, ok := args["args"]; ok && val != nil {
		commandArgs, ok = val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("'args' argument must be an object")
		}
	}

	receipt, err := r.Client.SendCommand(ctx, satellite, command, commandArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s to %s: %w", command, satellite, err)
	}

	jsonContent, err := jsonPart(receipt)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("Command %s accepted for %s: id %s, status %s.",
		command, satellite, receipt.CommandID, receipt.Status)

	return []ContentPart{jsonContent, textPart(summary)}, nil
}
