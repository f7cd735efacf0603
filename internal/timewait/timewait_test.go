package timewait

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeClock advances only when the waiter sleeps, so loop timing is exact.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

// scriptedSource replays a fixed sequence of readings and counts calls.
type scriptedSource struct {
	readings []string
	calls    int
}

func (s *scriptedSource) CurrentTime(ctx context.Context) (string, error) {
	if s.calls >= len(s.readings) {
		return "", fmt.Errorf("unexpected call %d", s.calls+1)
	}
	reading := s.readings[s.calls]
	s.calls++
	return reading, nil
}

func TestWaitReachedOnFirstQueryWithoutSleeping(t *testing.T) {
	source := &scriptedSource{readings: []string{"2025-09-15T17:30:00Z"}}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	w := &Waiter{Source: source, PollInterval: 100 * time.Millisecond, Timeout: time.Minute, Clock: clock}

	outcome := w.Wait(context.Background(), "2025-09-15T17:30:00Z")

	if outcome.Kind != OutcomeReached {
		t.Fatalf("outcome = %v, want reached", outcome)
	}
	if source.calls != 1 {
		t.Fatalf("source queried %d times, want 1", source.calls)
	}
	if len(clock.sleeps) != 0 {
		t.Fatalf("waiter slept %d times, want 0", len(clock.sleeps))
	}
	want := time.Date(2025, 9, 15, 17, 30, 0, 0, time.UTC)
	if !outcome.Current.Equal(want) {
		t.Fatalf("outcome.Current = %v, want %v", outcome.Current, want)
	}
}

func TestWaitPollsUntilTargetReached(t *testing.T) {
	source := &scriptedSource{readings: []string{
		"2025-09-15T17:29:59+00:00",
		"2025-09-15T17:30:00+00:00",
	}}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	w := &Waiter{Source: source, PollInterval: 100 * time.Millisecond, Timeout: time.Minute, Clock: clock}

	outcome := w.Wait(context.Background(), "2025-09-15T17:30:00Z")

	if outcome.Kind != OutcomeReached {
		t.Fatalf("outcome = %v, want reached", outcome)
	}
	if source.calls != 2 {
		t.Fatalf("source queried %d times, want 2", source.calls)
	}
	if len(clock.sleeps) != 1 {
		t.Fatalf("waiter slept %d times, want 1", len(clock.sleeps))
	}
	if clock.sleeps[0] != 100*time.Millisecond {
		t.Fatalf("slept %v, want 100ms", clock.sleeps[0])
	}
	if outcome.Raw != "2025-09-15T17:30:00+00:00" {
		t.Fatalf("outcome.Raw = %q, want the second reading", outcome.Raw)
	}
}

func TestWaitComparesInstantsNotStrings(t *testing.T) {
	// 17:30:00+02:00 is 15:30:00 UTC, so a Z-suffixed 15:30:00 satisfies it.
	source := &scriptedSource{readings: []string{"2025-09-15T15:30:00Z"}}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	w := &Waiter{Source: source, PollInterval: 100 * time.Millisecond, Timeout: time.Minute, Clock: clock}

	outcome := w.Wait(context.Background(), "2025-09-15T17:30:00+02:00")

	if outcome.Kind != OutcomeReached {
		t.Fatalf("outcome = %v, want reached", outcome)
	}
	if source.calls != 1 {
		t.Fatalf("source queried %d times, want 1", source.calls)
	}
}

func TestWaitTimesOutWithinOneIntervalOfBudget(t *testing.T) {
	// The simulation never reaches the target; every reading is early.
	stuck := TimeSourceFunc(func(ctx context.Context) (string, error) {
		return "2025-09-15T00:00:00Z", nil
	})
	clock := &fakeClock{now: time.Unix(1000, 0)}
	timeout := 250 * time.Millisecond
	interval := 100 * time.Millisecond
	w := &Waiter{Source: stuck, PollInterval: interval, Timeout: timeout, Clock: clock}

	outcome := w.Wait(context.Background(), "2025-09-16T00:00:00Z")

	if outcome.Kind != OutcomeTimedOut {
		t.Fatalf("outcome = %v, want timed out", outcome)
	}
	if outcome.Elapsed < timeout {
		t.Fatalf("elapsed %v below timeout %v", outcome.Elapsed, timeout)
	}
	if outcome.Elapsed >= timeout+interval {
		t.Fatalf("elapsed %v exceeds timeout %v by a full interval", outcome.Elapsed, timeout)
	}
	want := time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC)
	if !outcome.Target.Equal(want) {
		t.Fatalf("outcome.Target = %v, want %v", outcome.Target, want)
	}
}

func TestWaitMalformedTargetNeverQueriesSource(t *testing.T) {
	source := &scriptedSource{}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	w := &Waiter{Source: source, PollInterval: 100 * time.Millisecond, Timeout: time.Minute, Clock: clock}

	outcome := w.Wait(context.Background(), "not-a-time")

	if outcome.Kind != OutcomeParseError {
		t.Fatalf("outcome = %v, want parse error", outcome)
	}
	if outcome.Raw != "not-a-time" {
		t.Fatalf("outcome.Raw = %q, want the offending text", outcome.Raw)
	}
	if source.calls != 0 {
		t.Fatalf("source queried %d times, want 0", source.calls)
	}
	if len(clock.sleeps) != 0 {
		t.Fatalf("waiter slept %d times, want 0", len(clock.sleeps))
	}
}

func TestWaitStopsOnFirstSourceFailure(t *testing.T) {
	calls := 0
	failing := TimeSourceFunc(func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("connection refused")
	})
	clock := &fakeClock{now: time.Unix(1000, 0)}
	w := &Waiter{Source: failing, PollInterval: 100 * time.Millisecond, Timeout: time.Minute, Clock: clock}

	outcome := w.Wait(context.Background(), "2025-09-15T17:30:00Z")

	if outcome.Kind != OutcomeSourceError {
		t.Fatalf("outcome = %v, want source error", outcome)
	}
	if calls != 1 {
		t.Fatalf("source queried %d times, want 1", calls)
	}
	if len(clock.sleeps) != 0 {
		t.Fatalf("waiter slept %d times, want 0", len(clock.sleeps))
	}
}

func TestWaitEmptyReadingIsSourceErrorNotParseError(t *testing.T) {
	empty := TimeSourceFunc(func(ctx context.Context) (string, error) {
		return "   ", nil
	})
	clock := &fakeClock{now: time.Unix(1000, 0)}
	w := &Waiter{Source: empty, PollInterval: 100 * time.Millisecond, Timeout: time.Minute, Clock: clock}

	outcome := w.Wait(context.Background(), "2025-09-15T17:30:00Z")

	if outcome.Kind != OutcomeSourceError {
		t.Fatalf("outcome = %v, want source error", outcome)
	}
	if !errors.Is(outcome.Err, ErrEmptyReading) {
		t.Fatalf("outcome.Err = %v, want ErrEmptyReading", outcome.Err)
	}
}

func TestWaitUnparseableReadingCarriesOffendingText(t *testing.T) {
	bad := TimeSourceFunc(func(ctx context.Context) (string, error) {
		return "half past never", nil
	})
	clock := &fakeClock{now: time.Unix(1000, 0)}
	w := &Waiter{Source: bad, PollInterval: 100 * time.Millisecond, Timeout: time.Minute, Clock: clock}

	outcome := w.Wait(context.Background(), "2025-09-15T17:30:00Z")

	if outcome.Kind != OutcomeParseError {
		t.Fatalf("outcome = %v, want parse error", outcome)
	}
	if outcome.Raw != "half past never" {
		t.Fatalf("outcome.Raw = %q, want the offending text", outcome.Raw)
	}
}

func TestWaiterDefaults(t *testing.T) {
	w := New(TimeSourceFunc(func(ctx context.Context) (string, error) {
		return "2025-09-15T17:30:00Z", nil
	}))
	if got := w.pollInterval(); got != DefaultPollInterval {
		t.Fatalf("default poll interval = %v, want %v", got, DefaultPollInterval)
	}
	if got := w.timeout(); got != DefaultTimeout {
		t.Fatalf("default timeout = %v, want %v", got, DefaultTimeout)
	}
	if _, ok := w.clock().(SystemClock); !ok {
		t.Fatalf("default clock = %T, want SystemClock", w.clock())
	}
}

func TestGoDeliversOutcomeOnChannel(t *testing.T) {
	source := &scriptedSource{readings: []string{"2025-09-15T17:30:00Z"}}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	w := &Waiter{Source: source, PollInterval: 100 * time.Millisecond, Timeout: time.Minute, Clock: clock}

	select {
	case outcome := <-w.Go(context.Background(), "2025-09-15T17:30:00Z"):
		if outcome.Kind != OutcomeReached {
			t.Fatalf("outcome = %v, want reached", outcome)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no outcome delivered")
	}
}

func TestOutcomeStrings(t *testing.T) {
	reached := Outcome{Kind: OutcomeReached, Current: time.Date(2025, 9, 15, 17, 30, 0, 0, time.UTC)}
	if got := reached.String(); got != "reached 2025-09-15T17:30:00Z" {
		t.Fatalf("reached summary = %q", got)
	}
	if got := OutcomeTimedOut.String(); got != "timed_out" {
		t.Fatalf("kind tag = %q, want timed_out", got)
	}
}
