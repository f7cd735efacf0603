// internal/cli/wait_test.go
package trench

import (
	"testing"

	"github.com/mwiater/trench/internal/timewait"
)

// TestWaitExitCode verifies the outcome-to-exit-code mapping the wait and
// watch commands share.
func TestWaitExitCode(t *testing.T) {
	cases := []struct {
		kind timewait.OutcomeKind
		want int
	}{
		{timewait.OutcomeReached, 0},
		{timewait.OutcomeTimedOut, 2},
		{timewait.OutcomeParseError, 3},
		{timewait.OutcomeSourceError, 4},
		{timewait.OutcomeKind(99), 1},
	}
	for _, tc := range cases {
		if got := waitExitCode(tc.kind); got != tc.want {
			t.Errorf("waitExitCode(%v) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}
