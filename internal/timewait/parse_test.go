package timewait

import (
	"testing"
	"time"
)

func TestParseTimestampZuluEqualsExplicitOffset(t *testing.T) {
	zulu, err := ParseTimestamp("2025-09-15T17:30:00Z")
	if err != nil {
		t.Fatalf("ParseTimestamp(Z) error: %v", err)
	}
	offset, err := ParseTimestamp("2025-09-15T17:30:00+00:00")
	if err != nil {
		t.Fatalf("ParseTimestamp(+00:00) error: %v", err)
	}
	if !zulu.Equal(offset) {
		t.Fatalf("Z form %v != +00:00 form %v", zulu, offset)
	}
}

func TestParseTimestampRoundTrip(t *testing.T) {
	want := time.Date(2025, 9, 15, 17, 30, 0, 0, time.UTC)
	got, err := ParseTimestamp(want.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("ParseTimestamp error: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("round trip: got %v, want %v", got, want)
	}
}

func TestParseTimestampMissingOffsetIsUTC(t *testing.T) {
	got, err := ParseTimestamp("2025-09-15T17:30:00")
	if err != nil {
		t.Fatalf("ParseTimestamp error: %v", err)
	}
	want := time.Date(2025, 9, 15, 17, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("naive timestamp: got %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", got.Location())
	}
}

func TestParseTimestampAcceptedForms(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-09-15T17:30:00.250Z", time.Date(2025, 9, 15, 17, 30, 0, 250_000_000, time.UTC)},
		{"2025-09-15T19:30:00+02:00", time.Date(2025, 9, 15, 17, 30, 0, 0, time.UTC)},
		{"2025-09-15T19:30:00+0200", time.Date(2025, 9, 15, 17, 30, 0, 0, time.UTC)},
		{"2025-09-15 17:30:00", time.Date(2025, 9, 15, 17, 30, 0, 0, time.UTC)},
		{"2025-09-15T17:30", time.Date(2025, 9, 15, 17, 30, 0, 0, time.UTC)},
		{"2025-09-15", time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)},
		{"  2025-09-15T17:30:00Z  ", time.Date(2025, 9, 15, 17, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q) error: %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseTimestamp(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "not-a-time", "15:30 tomorrow", "2025-13-40T99:99:99Z"} {
		if _, err := ParseTimestamp(in); err == nil {
			t.Fatalf("ParseTimestamp(%q) succeeded, want error", in)
		}
	}
}
