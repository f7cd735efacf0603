package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mwiater/trench/internal/trench"
)

func newTestRegistry(t *testing.T, handler http.HandlerFunc) *Registry {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := trench.NewClient(server.URL, "test-token", 5*time.Second)
	return NewRegistry(client)
}

func TestRegistryExposesEveryTool(t *testing.T) {
	registry := NewRegistry(nil)

	entries := registry.Entries()
	if len(entries) != 13 {
		t.Fatalf("expected 13 tools, got %d", len(entries))
	}
	if entries[0].Definition.Name != AvailableToolsName {
		t.Fatalf("expected %s first, got %s", AvailableToolsName, entries[0].Definition.Name)
	}

	for _, name := range []string{
		GetSimulationTimeName, GetSimulationStatusName, ListSatellitesName,
		GetSatelliteName, ListGroundStationsName, ListPassesName,
		GetNextPassName, GetTelemetryName, SendCommandName,
		GetCommandStatusName, ListEventsName, WaitUntilTimeName,
	} {
		entry, ok := registry.Lookup(name)
		if !ok {
			t.Fatalf("expected registry to contain %s", name)
		}
		if entry.Handler == nil {
			t.Fatalf("expected a handler for %s", name)
		}
		if entry.Definition.Description == "" {
			t.Fatalf("expected a description for %s", name)
		}
	}

	if _, ok := registry.Lookup("no_such_tool"); ok {
		t.Fatalf("expected lookup miss for unknown tool")
	}
}

func TestValidateArguments(t *testing.T) {
	def := GetSatelliteDefinition()

	if err := ValidateArguments(def, map[string]any{"satellite_id": "sat-1"}); err != nil {
		t.Fatalf("expected valid arguments, got %v", err)
	}

	err := ValidateArguments(def, map[string]any{})
	if err == nil {
		t.Fatalf("expected missing required argument to fail validation")
	}
	if !strings.Contains(err.Error(), "satellite_id") {
		t.Fatalf("expected error to name the missing argument, got %v", err)
	}

	if err := ValidateArguments(def, map[string]any{"satellite_id": 42}); err == nil {
		t.Fatalf("expected mistyped argument to fail validation")
	}

	if err := ValidateArguments(def, nil); err == nil {
		t.Fatalf("expected nil arguments to fail a schema with required fields")
	}

	if err := ValidateArguments(GetSimulationTimeDefinition(), nil); err != nil {
		t.Fatalf("expected nil arguments to satisfy an empty schema, got %v", err)
	}
}

func TestAvailableToolsPayload(t *testing.T) {
	registry := NewRegistry(nil)

	parts, err := registry.availableTools(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("availableTools error: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected json and text parts, got %d", len(parts))
	}

	var payload []map[string]string
	if err := json.Unmarshal([]byte(parts[0].Text), &payload); err != nil {
		t.Fatalf("invalid json payload: %v", err)
	}
	if len(payload) != 13 {
		t.Fatalf("expected 13 tools in payload, got %d", len(payload))
	}
	if !strings.Contains(parts[1].Text, WaitUntilTimeName) {
		t.Fatalf("expected summary to mention %s", WaitUntilTimeName)
	}
}

func TestGetSatelliteRequiresID(t *testing.T) {
	var calls atomic.Int64
	registry := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	if _, err := registry.getSatellite(context.Background(), map[string]any{}); err == nil {
		t.Fatalf("expected error for missing satellite_id")
	}
	if _, err := registry.getSatellite(context.Background(), map[string]any{"satellite_id": "  "}); err == nil {
		t.Fatalf("expected error for blank satellite_id")
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no API calls for rejected arguments, got %d", calls.Load())
	}
}

func TestGetSimulationTimeFormatsSnapshot(t *testing.T) {
	registry := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_time":"2025-09-15T17:30:00Z","epoch_start":"2025-09-15T00:00:00Z","clock_speed":10}`))
	})

	parts, err := registry.getSimulationTime(context.Background(), nil)
	if err != nil {
		t.Fatalf("getSimulationTime error: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Type != "json" {
		t.Fatalf("expected json part first, got %s", parts[0].Type)
	}
	if !strings.Contains(parts[1].Text, "2025-09-15 17:30:00 UTC") {
		t.Fatalf("expected formatted time in summary, got %q", parts[1].Text)
	}
	if !strings.Contains(parts[1].Text, "10x") {
		t.Fatalf("expected clock speed in summary, got %q", parts[1].Text)
	}
}

func TestGetNextPassPicksEarliestUpcoming(t *testing.T) {
	registry := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/time":
			_, _ = w.Write([]byte(`{"current_time":"2025-09-15T12:00:00Z"}`))
		case "/api/v1/passes":
			if got := r.URL.Query().Get("satellite"); got != "sat-1" {
				t.Errorf("satellite filter = %q", got)
			}
			_, _ = w.Write([]byte(`{"passes":[
				{"satellite_id":"sat-1","station_id":"gs-1","aos":"2025-09-15T09:00:00Z","los":"2025-09-15T09:10:00Z","max_elevation_deg":10},
				{"satellite_id":"sat-1","station_id":"gs-2","aos":"2025-09-15T18:00:00Z","los":"2025-09-15T18:12:00Z","max_elevation_deg":52},
				{"satellite_id":"sat-1","station_id":"gs-1","aos":"2025-09-15T14:30:00Z","los":"2025-09-15T14:41:00Z","max_elevation_deg":33}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	parts, err := registry.getNextPass(context.Background(), map[string]any{"satellite_id": "sat-1"})
	if err != nil {
		t.Fatalf("getNextPass error: %v", err)
	}

	var pass trench.Pass
	if err := json.Unmarshal([]byte(parts[0].Text), &pass); err != nil {
		t.Fatalf("invalid json payload: %v", err)
	}
	if pass.AOS != "2025-09-15T14:30:00Z" {
		t.Fatalf("expected the 14:30 pass, got AOS %s", pass.AOS)
	}
	if !strings.Contains(parts[1].Text, "2h30m0s") {
		t.Fatalf("expected countdown in summary, got %q", parts[1].Text)
	}
}

func TestGetNextPassReportsNoneUpcoming(t *testing.T) {
	registry := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/time":
			_, _ = w.Write([]byte(`{"current_time":"2025-09-16T00:00:00Z"}`))
		case "/api/v1/passes":
			_, _ = w.Write([]byte(`{"passes":[{"satellite_id":"sat-1","station_id":"gs-1","aos":"2025-09-15T09:00:00Z","los":"2025-09-15T09:10:00Z","max_elevation_deg":10}]}`))
		}
	})

	parts, err := registry.getNextPass(context.Background(), map[string]any{"satellite_id": "sat-1"})
	if err != nil {
		t.Fatalf("getNextPass error: %v", err)
	}
	if len(parts) != 1 || !strings.Contains(parts[0].Text, "No upcoming passes") {
		t.Fatalf("expected no-passes message, got %+v", parts)
	}
}

func TestSendCommandRejectsNonObjectArgs(t *testing.T) {
	registry := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected API call for invalid arguments")
	})

	_, err := registry.sendCommand(context.Background(), map[string]any{
		"satellite_id": "sat-1",
		"command":      "SAFE_MODE",
		"args":         "not-an-object",
	})
	if err == nil || !strings.Contains(err.Error(), "'args'") {
		t.Fatalf("expected args type error, got %v", err)
	}
}
