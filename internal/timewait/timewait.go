// Package timewait implements the polling wait used to synchronize on
// simulation time: poll a time source until it reports an instant at or
// past a target, or until a wall-clock timeout elapses.
package timewait

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultPollInterval is the delay between time-source queries when the
	// caller does not set one.
	DefaultPollInterval = 100 * time.Millisecond
	// DefaultTimeout is the wall-clock polling budget when the caller does
	// not set one.
	DefaultTimeout = 24 * time.Hour
)

// ErrEmptyReading reports a time source that answered without any
// current-time text. It is a missing reading, not a malformed one.
var ErrEmptyReading = errors.New("time source returned an empty current-time reading")

// TimeSource supplies the current simulation time. Implementations return
// the raw ISO-8601 text on success or an opaque error on failure.
type TimeSource interface {
	CurrentTime(ctx context.Context) (string, error)
}

// TimeSourceFunc adapts a plain function to the TimeSource interface.
type TimeSourceFunc func(ctx context.Context) (string, error)

// CurrentTime calls f.
func (f TimeSourceFunc) CurrentTime(ctx context.Context) (string, error) {
	return f(ctx)
}

// OutcomeKind tags the terminal result of a wait.
type OutcomeKind int

const (
	// OutcomeReached means the source reported a time at or past the target.
	OutcomeReached OutcomeKind = iota
	// OutcomeSourceError means a time-source query failed. The wait stops on
	// the first failure; transient and permanent failures are not distinguished.
	OutcomeSourceError
	// OutcomeParseError means the target or an observed reading was not
	// valid ISO-8601.
	OutcomeParseError
	// OutcomeTimedOut means the wall-clock budget elapsed before the target
	// was reached.
	OutcomeTimedOut
)

// String returns a stable lowercase tag, usable as a metric attribute.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeReached:
		return "reached"
	case OutcomeSourceError:
		return "source_error"
	case OutcomeParseError:
		return "parse_error"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one wait. Which fields are populated
// depends on Kind: Reached carries Current and Raw, SourceError carries Err,
// ParseError carries Raw and Err, TimedOut carries Elapsed and Target.
type Outcome struct {
	Kind    OutcomeKind
	Current time.Time
	Raw     string
	Target  time.Time
	Elapsed time.Duration
	Err     error
}

// String renders a one-line human-readable summary of the outcome.
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeReached:
		return fmt.Sprintf("reached %s", o.Current.Format(time.RFC3339))
	case OutcomeSourceError:
		return fmt.Sprintf("time source error: %v", o.Err)
	case OutcomeParseError:
		return fmt.Sprintf("unparseable timestamp %q: %v", o.Raw, o.Err)
	case OutcomeTimedOut:
		return fmt.Sprintf("timed out after %s waiting for %s", o.Elapsed, o.Target.Format(time.RFC3339))
	default:
		return "unknown outcome"
	}
}

// Waiter polls a TimeSource until the reported time reaches a target.
// Zero-value fields fall back to DefaultPollInterval, DefaultTimeout, and
// the system clock. Each call to Wait is self-contained; a Waiter holds no
// state between calls and may be shared across goroutines.
type Waiter struct {
	Source       TimeSource
	PollInterval time.Duration
	Timeout      time.Duration
	Clock        Clock
}

// New returns a Waiter for source with default interval, timeout, and clock.
func New(source TimeSource) *Waiter {
	return &Waiter{Source: source}
}

// Wait polls until the source reports a time at or past target, the timeout
// elapses, or a source or parse failure ends the wait. The target and every
// reading are normalized to UTC before comparison, and the comparison is
// non-strict: a reading exactly equal to the target satisfies the wait.
//
// The timeout is measured on this process's wall clock. The simulation may
// run at a different rate; that rate never stretches or shrinks the budget.
//
// The loop itself has no cancellation branch. ctx is handed to the source,
// so canceling it surfaces as a source failure on the next query. Callers
// that want to abandon a wait outright should use Go and stop listening.
func (w *Waiter) Wait(ctx context.Context, target string) Outcome {
	targetTime, err := ParseTimestamp(target)
	if err != nil {
		return Outcome{Kind: OutcomeParseError, Raw: target, Err: err}
	}

	clock := w.clock()
	interval := w.pollInterval()
	timeout := w.timeout()

	start := clock.Now()
	for {
		elapsed := clock.Now().Sub(start)
		if elapsed >= timeout {
			return Outcome{Kind: OutcomeTimedOut, Target: targetTime, Elapsed: elapsed}
		}

		raw, err := w.Source.CurrentTime(ctx)
		if err != nil {
			return Outcome{Kind: OutcomeSourceError, Err: err}
		}
		if strings.TrimSpace(raw) == "" {
			return Outcome{Kind: OutcomeSourceError, Err: ErrEmptyReading}
		}

		current, err := ParseTimestamp(raw)
		if err != nil {
			return Outcome{Kind: OutcomeParseError, Raw: raw, Err: err}
		}

		if !current.Before(targetTime) {
			return Outcome{Kind: OutcomeReached, Current: current, Raw: raw}
		}

		clock.Sleep(interval)
	}
}

// Go runs Wait in its own goroutine and returns a buffered channel that
// receives the single outcome. The channel lets callers race the wait
// against their own cancellation or deadline without changing the wait's
// contract; an abandoned wait still runs to its own terminal outcome.
func (w *Waiter) Go(ctx context.Context, target string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		ch <- w.Wait(ctx, target)
	}()
	return ch
}

func (w *Waiter) clock() Clock {
	if w.Clock != nil {
		return w.Clock
	}
	return SystemClock{}
}

func (w *Waiter) pollInterval() time.Duration {
	if w.PollInterval > 0 {
		return w.PollInterval
	}
	return DefaultPollInterval
}

func (w *Waiter) timeout() time.Duration {
	if w.Timeout > 0 {
		return w.Timeout
	}
	return DefaultTimeout
}
