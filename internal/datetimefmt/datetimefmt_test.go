package datetimefmt

import (
	"testing"
	"time"
)

func TestParseTimezoneUTC(t *testing.T) {
	loc, err := ParseTimezone("UTC")
	if err != nil || loc != time.UTC {
		t.Fatalf("ParseTimezone(UTC) = %v, %v", loc, err)
	}
}

func TestParseTimezoneOffsets(t *testing.T) {
	loc, err := ParseTimezone("UTC+5")
	if err != nil {
		t.Fatalf("ParseTimezone(UTC+5): %v", err)
	}
	_, offset := time.Now().In(loc).Zone()
	if offset != 5*3600 {
		t.Errorf("offset = %d, want %d", offset, 5*3600)
	}

	loc, err = ParseTimezone("UTC-8")
	if err != nil {
		t.Fatalf("ParseTimezone(UTC-8): %v", err)
	}
	_, offset = time.Now().In(loc).Zone()
	if offset != -8*3600 {
		t.Errorf("offset = %d, want %d", offset, -8*3600)
	}
}

func TestParseTimezoneRejectsGarbage(t *testing.T) {
	for _, spec := range []string{"PST", "UTC+25", "UTC+", "GMT+5"} {
		if _, err := ParseTimezone(spec); err == nil {
			t.Errorf("ParseTimezone(%q) should have failed", spec)
		}
	}
}

func TestParseDateFilterBothLayouts(t *testing.T) {
	if _, err := ParseDateFilter("2024-03-15"); err != nil {
		t.Errorf("date-only layout: %v", err)
	}
	if _, err := ParseDateFilter("2024-03-15 10:30:00"); err != nil {
		t.Errorf("datetime layout: %v", err)
	}
	if _, err := ParseDateFilter("not-a-date"); err == nil {
		t.Error("expected an error for a malformed date filter")
	}
}

func TestFormatUTCOffsetWholeHour(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	got := FormatUTCOffset(time.Now().In(loc))
	if got != "UTC+3" {
		t.Errorf("FormatUTCOffset = %q, want %q", got, "UTC+3")
	}
}

func TestFormatUTCOffsetZero(t *testing.T) {
	if got := FormatUTCOffset(time.Now().UTC()); got != "UTC" {
		t.Errorf("FormatUTCOffset(UTC) = %q, want %q", got, "UTC")
	}
}

func TestFormatTimestampHumanShape(t *testing.T) {
	sample := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) // a Friday
	got := FormatTimestampHuman(sample, time.UTC)
	want := "Fri 2024-03-15 10:30:00 UTC"
	if got != want {
		t.Errorf("FormatTimestampHuman = %q, want %q", got, want)
	}
}
