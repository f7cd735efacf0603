// internal/cli/tools_test.go
package trench

import (
	"bytes"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TestListTools verifies the two-column tool listing.
func TestListTools(t *testing.T) {
	b := new(bytes.Buffer)
	listTools(b, []mcp.Tool{
		{Name: "wait_until_time", Description: "Block until the simulation reaches a target time."},
		{Name: "get_time", Description: "Read the current simulation time."},
	})

	out := b.String()
	if !strings.Contains(out, "Available tools (2):") {
		t.Errorf("missing header in %q", out)
	}
	for _, want := range []string{"wait_until_time", "get_time", "Block until", "Read the current"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// TestListToolsEmpty verifies the empty-catalogue message.
func TestListToolsEmpty(t *testing.T) {
	b := new(bytes.Buffer)
	listTools(b, nil)
	if got := b.String(); got != "The server exposes no tools.\n" {
		t.Errorf("unexpected output %q", got)
	}
}
