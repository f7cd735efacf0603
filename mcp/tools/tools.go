// Package tools defines the Trench MCP tool registry: one Definition plus one
// handler per tool, all backed by a single Trench API client. The registry is
// the only catalog; the MCP server and the CLI both consume it.
package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mwiater/trench/internal/timewait"
	"github.com/mwiater/trench/internal/trench"
)

// Definition describes the metadata the MCP server exposes for a tool.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Tool wraps a Definition to match the required "function" wrapper structure.
type Tool struct {
	Type     string     `json:"type"`
	Function Definition `json:"function"`
}

// ContentPart represents a piece of data returned from a tool invocation.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Handler executes a tool using the provided arguments and returns content for
// the caller. A non-nil error marks the tool result as failed; any parts
// returned alongside it are still delivered so the caller sees the details.
type Handler func(ctx context.Context, args map[string]any) ([]ContentPart, error)

// Entry pairs a tool definition with the handler that executes it.
type Entry struct {
	Definition Definition
	Handler    Handler
}

const (
	// AvailableToolsName is the canonical name for the available-tools helper.
	AvailableToolsName = "available_tools"
	// GetSimulationTimeName is the canonical name for the simulation-time tool.
	GetSimulationTimeName = "get_simulation_time"
	// GetSimulationStatusName is the canonical name for the simulation-status tool.
	GetSimulationStatusName = "get_simulation_status"
	// ListSatellitesName is the canonical name for the satellite catalog tool.
	ListSatellitesName = "list_satellites"
	// GetSatelliteName is the canonical name for the satellite detail tool.
	GetSatelliteName = "get_satellite"
	// ListGroundStationsName is the canonical name for the ground-station catalog tool.
	ListGroundStationsName = "list_ground_stations"
	// ListPassesName is the canonical name for the pass schedule tool.
	ListPassesName = "list_passes"
	// GetNextPassName is the canonical name for the next-pass tool.
	GetNextPassName = "get_next_pass"
	// GetTelemetryName is the canonical name for the telemetry tool.
	GetTelemetryName = "get_telemetry"
	// SendCommandName is the canonical name for the command uplink tool.
	SendCommandName = "send_command"
	// GetCommandStatusName is the canonical name for the command status tool.
	GetCommandStatusName = "get_command_status"
	// ListEventsName is the canonical name for the event log tool.
	ListEventsName = "list_events"
	// WaitUntilTimeName is the canonical name for the simulation-time waiter tool.
	WaitUntilTimeName = "wait_until_time"
)

// Registry binds every tool definition to a handler backed by one API client.
// PollInterval and WaitTimeout seed wait_until_time when the caller does not
// override them; zero values fall back to the waiter package defaults.
type Registry struct {
	Client       *trench.Client
	PollInterval time.Duration
	WaitTimeout  time.Duration
	Clock        timewait.Clock
}

// NewRegistry returns a registry serving every Trench tool through client.
func NewRegistry(client *trench.Client) *Registry {
	return &Registry{Client: client}
}

// Entries returns every tool in presentation order.
func (r *Registry) Entries() []Entry {
	return []Entry{
		{AvailableToolsDefinition(), r.availableTools},
		{GetSimulationTimeDefinition(), r.getSimulationTime},
		{GetSimulationStatusDefinition(), r.getSimulationStatus},
		{ListSatellitesDefinition(), r.listSatellites},
		{GetSatelliteDefinition(), r.getSatellite},
		{ListGroundStationsDefinition(), r.listGroundStations},
		{ListPassesDefinition(), r.listPasses},
		{GetNextPassDefinition(), r.getNextPass},
		{GetTelemetryDefinition(), r.getTelemetry},
		{SendCommandDefinition(), r.sendCommand},
		{GetCommandStatusDefinition(), r.getCommandStatus},
		{ListEventsDefinition(), r.listEvents},
		{WaitUntilTimeDefinition(), r.waitUntilTime},
	}
}

// Definitions returns the bare definitions in the same order as Entries.
func (r *Registry) Definitions() []Definition {
	entries := r.Entries()
	defs := make([]Definition, 0, len(entries))
	for _, entry := range entries {
		defs = append(defs, entry.Definition)
	}
	return defs
}

// Lookup finds a tool entry by name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	for _, entry := range r.Entries() {
		if entry.Definition.Name == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// ValidateArguments checks an argument map against the tool's parameter schema
// before the handler runs.
func ValidateArguments(def Definition, args map[string]any) error {
	if len(def.Parameters) == 0 {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(def.Parameters)
	documentLoader := gojsonschema.NewGoLoader(args)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("invalid arguments for %s: %s", def.Name, strings.Join(errs, ", "))
}

// requiredStringArg extracts a named string argument, rejecting missing,
// mistyped, and empty values with explicit messages.
func requiredStringArg(args map[string]any, key string) (string, error) {
	val, ok := args[key]
	if !ok || val == nil {
		return "", fmt.Errorf("'%s' argument is required", key)
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("'%s' argument must be a string", key)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("'%s' argument cannot be empty", key)
	}
	return s, nil
}

// optionalStringArg extracts a named string argument; absent values yield "".
func optionalStringArg(args map[string]any, key string) (string, error) {
	val, ok := args[key]
	if !ok || val == nil {
		return "", nil
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("'%s' argument must be a string", key)
	}
	return s, nil
}

// optionalNumberArg extracts a named numeric argument. JSON numbers decode as
// float64; integers passed by stricter clients are accepted too.
func optionalNumberArg(args map[string]any, key string) (float64, bool, error) {
	val, ok := args[key]
	if !ok || val == nil {
		return 0, false, nil
	}
	switch n := val.(type) {
	case float64:
		return n, true, nil
	case int:
		return float64(n), true, nil
	case int64:
		return float64(n), true, nil
	default:
		return 0, false, fmt.Errorf("'%s' argument must be a number", key)
	}
}
