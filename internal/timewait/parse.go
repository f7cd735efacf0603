package timewait

import (
	"fmt"
	"strings"
	"time"
)

// offsetLayouts cover ISO-8601 text that carries an explicit UTC offset.
// A trailing "Z" parses the same as "+00:00".
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
}

// naiveLayouts cover ISO-8601 text without an offset. These are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp normalizes ISO-8601 text to an absolute UTC instant.
// Text without an offset is interpreted as UTC rather than local time,
// so results do not depend on the machine's timezone.
func ParseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("not a valid ISO-8601 timestamp: %q", value)
}
