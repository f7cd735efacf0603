// Package mcpserver bridges the Trench tool registry onto the official MCP
// Go SDK: every registry definition is registered with its JSON schema and
// served over stdio or streamable HTTP. Tool failures are reported as in-band
// results with IsError set, never as protocol errors.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mwiater/trench/internal/logging"
	"github.com/mwiater/trench/internal/observe"
	"github.com/mwiater/trench/mcp/tools"
)

// ServerName is the MCP implementation name announced during initialize.
const ServerName = "trench-mcp"

// Build assembles an MCP server exposing every tool in the registry.
func Build(registry *tools.Registry, version string) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)

	for _, entry := range registry.Entries() {
		schema, err := schemaFromDefinition(entry.Definition)
		if err != nil {
			return nil, fmt.Errorf("tool %s has an invalid schema: %w", entry.Definition.Name, err)
		}
		mcp.AddTool(server, &mcp.Tool{
			Name:        entry.Definition.Name,
			Description: entry.Definition.Description,
			InputSchema: schema,
		}, toolHandler(entry))
	}

	return server, nil
}

// schemaFromDefinition converts the registry's map-based JSON schema into the
// SDK's schema type via a JSON round-trip.
func schemaFromDefinition(def tools.Definition) (*jsonschema.Schema, error) {
	data, err := json.Marshal(def.Parameters)
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// toolHandler adapts one registry entry to the SDK handler signature.
func toolHandler(entry tools.Entry) mcp.ToolHandlerFor[map[string]any, any] {
	name := entry.Definition.Name
	return func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		logging.LogToolCall("call", name, args)

		if err := tools.ValidateArguments(entry.Definition, args); err != nil {
			observe.DefaultMetrics().RecordToolCall(ctx, name, time.Since(start), "error")
			logging.LogToolCall("result", name, err.Error())
			return errorResult(nil, err), nil, nil
		}

		parts, err := entry.Handler(ctx, args)
		duration := time.Since(start)
		if err != nil {
			observe.DefaultMetrics().RecordToolCall(ctx, name, duration, "error")
			logging.LogToolCall("result", name, err.Error())
			return errorResult(parts, err), nil, nil
		}

		observe.DefaultMetrics().RecordToolCall(ctx, name, duration, "ok")
		logging.LogToolCall("result", name, fmt.Sprintf("ok in %s", duration.Round(time.Millisecond)))
		return &mcp.CallToolResult{Content: contentFromParts(parts)}, nil, nil
	}
}

// contentFromParts flattens registry content parts into SDK text content.
func contentFromParts(parts []tools.ContentPart) []mcp.Content {
	content := make([]mcp.Content, 0, len(parts))
	for _, part := range parts {
		content = append(content, &mcp.TextContent{Text: part.Text})
	}
	return content
}

// errorResult renders a failed tool call, keeping any parts the handler
// produced alongside the error text.
func errorResult(parts []tools.ContentPart, err error) *mcp.CallToolResult {
	content := contentFromParts(parts)
	if len(content) == 0 {
		content = []mcp.Content{&mcp.TextContent{Text: err.Error()}}
	}
	return &mcp.CallToolResult{Content: content, IsError: true}
}
