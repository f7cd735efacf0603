package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mwiater/trench/internal/timewait"
)

// waitReport is the machine-readable rendering of a wait outcome.
type waitReport struct {
	Outcome        string  `json:"outcome"`
	Target         string  `json:"target"`
	CurrentTime    string  `json:"current_time,omitempty"`
	OffendingText  string  `json:"offending_text,omitempty"`
	ElapsedSeconds float64 `json:"elapsed_seconds,omitempty"`
	Detail         string  `json:"detail,omitempty"`
}

// WaitUntilTimeDefinition describes the simulation-time waiter tool.
func WaitUntilTimeDefinition() Definition {
	return Definition{
		Name:        WaitUntilTimeName,
		Description: "Block until the simulation clock reaches a target ISO-8601 timestamp, polling the simulation time until it is greater than or equal to the target. A timestamp without an offset is treated as UTC.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"target": map[string]any{
					"type":        "string",
					"description": "ISO-8601 timestamp to wait for, e.g. 2025-09-15T17:30:00Z",
				},
				"poll_interval_seconds": map[string]any{
					"type":             "number",
					"description":      "Seconds between simulation-time checks (default 0.1)",
					"exclusiveMinimum": 0,
				},
				"timeout_seconds": map[string]any{
					"type":             "number",
					"description":      "Wall-clock seconds to wait before giving up (default 86400)",
					"exclusiveMinimum": 0,
				},
			},
			"required": []string{"target"},
		},
	}
}

// WaitUntilTimeTool returns the complete, wrapped tool definition.
func WaitUntilTimeTool() Tool {
	return Tool{
		Type:     "function",
		Function: WaitUntilTimeDefinition(),
	}
}

// waitUntilTime runs the polling waiter against the live simulation clock and
// renders the outcome. Every tag is reported in the content parts; the
// non-reached tags also surface as a tool error.
func (r *Registry) waitUntilTime(ctx context.Context, args map[string]any) ([]ContentPart, error) {
	target, err := requiredStringArg(args, "target")
	if err != nil {
		return nil, err
	}

	waiter := timewait.Waiter{
		Source:       r.Client,
		PollInterval: r.PollInterval,
		Timeout:      r.WaitTimeout,
		Clock:        r.Clock,
	}

	if v, ok, err := optionalNumberArg(args, "poll_interval_seconds"); err != nil {
		return nil, err
	} else if ok {
		if v <= 0 {
			return nil, fmt.Errorf("'poll_interval_seconds' argument must be positive")
		}
		waiter.PollInterval = time.Duration(v * float64(time.Second))
	}

	if v, ok, err := optionalNumberArg(args, "timeout_seconds"); err != nil {
		return nil, err
	} else if ok {
		if v <= 0 {
			return nil, fmt.Errorf("'timeout_seconds' argument must be positive")
		}
		waiter.Timeout = time.Duration(v * float64(time.Second))
	}

	outcome := waiter.Wait(ctx, target)

	report := waitReport{
		Outcome: outcome.Kind.String(),
		Target:  target,
	}
	switch outcome.Kind {
	case timewait.OutcomeReached:
		report.CurrentTime = outcome.Current.Format(time.RFC3339)
	case timewait.OutcomeSourceError:
		report.Detail = outcome.Err.Error()
	case timewait.OutcomeParseError:
		report.OffendingText = outcome.Raw
		report.Detail = outcome.Err.Error()
	case timewait.OutcomeTimedOut:
		report.ElapsedSeconds = outcome.Elapsed.Seconds()
	}

	jsonContent, err := jsonPart(report)
	if err != nil {
		return nil, err
	}
	parts := []ContentPart{jsonContent, textPart(outcome.String())}

	if outcome.Kind != timewait.OutcomeReached {
		return parts, errors.New(outcome.String())
	}
	return parts, nil
}
