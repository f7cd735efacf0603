package tools

import (
	"context"
	"fmt"
	"strings"
)

// AvailableToolsDefinition describes a helper tool that lists MCP tools.
func AvailableToolsDefinition() Definition {
	return Definition{
		Name:        AvailableToolsName,
		Description: "Use this tool when the user asks which Trench tools are available or requests a summary of their capabilities. Do not call any other tool while answering this question.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

// AvailableToolsTool returns the complete, wrapped tool definition.
func AvailableToolsTool() Tool {
	return Tool{
		Type:     "function",
		Function: AvailableToolsDefinition(),
	}
}

// availableTools summarizes the registry in both JSON and a bulleted list.
func (r *Registry) availableTools(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	definitions := r.Definitions()

	payload := make([]map[string]string, 0, len(definitions))
	var summaryBuilder strings.Builder

	for _, def := range definitions {
		payload = append(payload, map[string]string{
			"name":        def.Name,
			"description": def.Description,
		})
		if summaryBuilder.Len() > 0 {
			summaryBuilder.WriteString("\n")
		}
		summaryBuilder.WriteString(fmt.Sprintf("- %s: %s", def.Name, def.Description))
	}

	jsonContent, err := jsonPart(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare available tools response")
	}

	return []ContentPart{
		jsonContent,
		textPart(summaryBuilder.String()),
	}, nil
}
