// internal/cli/call_test.go
package trench

import (
	"testing"
)

// TestParseToolArgs covers the JSON argument parsing behind 'call --args'.
func TestParseToolArgs(t *testing.T) {
	args, err := parseToolArgs("")
	if err != nil {
		t.Fatalf("empty args: %v", err)
	}
	if args == nil || len(args) != 0 {
		t.Fatalf("empty args should yield an empty map, got %v", args)
	}

	args, err = parseToolArgs(`{"target_time": "2025-09-15T12:30:00Z", "limit": 3}`)
	if err != nil {
		t.Fatalf("valid args: %v", err)
	}
	if args["target_time"] != "2025-09-15T12:30:00Z" {
		t.Errorf("unexpected target_time %v", args["target_time"])
	}
	if args["limit"] != float64(3) {
		t.Errorf("unexpected limit %v", args["limit"])
	}

	if _, err := parseToolArgs("{not json"); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := parseToolArgs(`["a", "b"]`); err == nil {
		t.Error("expected error for a JSON array")
	}
}
