package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mwiater/trench/internal/trench"
	"github.com/mwiater/trench/mcp/tools"
)

// newSessionPair builds a server from a registry backed by the given API
// handler and connects an in-memory client to it.
func newSessionPair(t *testing.T, handler http.HandlerFunc) *mcp.ClientSession {
	t.Helper()

	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	registry := tools.NewRegistry(trench.NewClient(backend.URL, "test-token", 5*time.Second))
	server, err := Build(registry, "test")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect error: %v", err)
	}
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "trench-test-client", Version: "0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect error: %v", err)
	}
	t.Cleanup(func() { _ = clientSession.Close() })

	return clientSession
}

// textOf concatenates all text content in a tool result.
func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func TestServerListsEveryTool(t *testing.T) {
	session := newSessionPair(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_time":"2025-09-15T17:30:00Z"}`))
	})

	var listed []mcp.Tool
	for tool, err := range session.Tools(context.Background(), nil) {
		if err != nil {
			t.Fatalf("Tools error: %v", err)
		}
		listed = append(listed, *tool)
	}

	if len(listed) != 13 {
		t.Fatalf("expected 13 tools, got %d", len(listed))
	}
	names := make(map[string]bool, len(listed))
	for _, tool := range listed {
		names[tool.Name] = true
		if tool.InputSchema == nil {
			t.Fatalf("tool %s has no input schema", tool.Name)
		}
	}
	for _, want := range []string{tools.WaitUntilTimeName, tools.GetSimulationTimeName, tools.SendCommandName} {
		if !names[want] {
			t.Fatalf("expected tool %s in listing", want)
		}
	}
}

func TestServerCallReturnsToolContent(t *testing.T) {
	session := newSessionPair(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_time":"2025-09-15T17:30:00Z","epoch_start":"2025-09-15T00:00:00Z","clock_speed":10}`))
	})

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: tools.GetSimulationTimeName,
	})
	if err != nil {
		t.Fatalf("CallTool error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error result: %s", textOf(t, result))
	}
	if got := textOf(t, result); !strings.Contains(got, "2025-09-15") {
		t.Fatalf("expected simulation time in content, got %q", got)
	}
}

func TestServerReportsHandlerFailureInBand(t *testing.T) {
	session := newSessionPair(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected API call for rejected arguments")
	})

	// A blank id passes the JSON schema but is rejected by the handler, so
	// the failure must come back as an IsError result, not a protocol error.
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      tools.GetSatelliteName,
		Arguments: map[string]any{"satellite_id": "   "},
	})
	if err != nil {
		t.Fatalf("CallTool error: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected error result")
	}
	if got := textOf(t, result); !strings.Contains(got, "satellite_id") {
		t.Fatalf("expected argument error in content, got %q", got)
	}
}

func TestServerWaitToolParseErrorSkipsBackend(t *testing.T) {
	var calls atomic.Int64
	session := newSessionPair(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"current_time":"2025-09-15T17:30:00Z"}`))
	})

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      tools.WaitUntilTimeName,
		Arguments: map[string]any{"target": "not-a-timestamp"},
	})
	if err != nil {
		t.Fatalf("CallTool error: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected error result for malformed target")
	}
	if got := textOf(t, result); !strings.Contains(got, "parse_error") {
		t.Fatalf("expected parse_error outcome in content, got %q", got)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no backend calls for malformed target, got %d", calls.Load())
	}
}

func TestServerWaitToolReached(t *testing.T) {
	session := newSessionPair(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_time":"2025-09-15T17:30:00Z"}`))
	})

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      tools.WaitUntilTimeName,
		Arguments: map[string]any{"target": "2025-09-15T17:30:00+00:00"},
	})
	if err != nil {
		t.Fatalf("CallTool error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error result: %s", textOf(t, result))
	}
	if got := textOf(t, result); !strings.Contains(got, "reached") {
		t.Fatalf("expected reached outcome, got %q", got)
	}
}
