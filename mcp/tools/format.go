package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mwiater/trench/internal/timewait"
)

// jsonPart marshals v into a "json" content part.
func jsonPart(v any) (ContentPart, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return ContentPart{}, fmt.Errorf("failed to prepare tool response: %w", err)
	}
	return ContentPart{Type: "json", Text: string(payload)}, nil
}

// textPart wraps a human-readable summary in a "text" content part.
func textPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

// formatFloat formats a float64 to one decimal place and appends the unit.
func formatFloat(val float64, unit string) string {
	return fmt.Sprintf("%.1f %s", val, unit)
}

// formatTimestamp renders an ISO-8601 timestamp as a normalized UTC string.
// It gracefully falls back to the raw string if parsing fails.
func formatTimestamp(raw string) string {
	t, err := timewait.ParseTimestamp(raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02 15:04:05 UTC")
}
