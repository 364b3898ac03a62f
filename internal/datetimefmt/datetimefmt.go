// Package datetimefmt implements timezone/date parsing and timestamp
// formatting for the CSV/human writer sinks. Timezones are plain UTC
// offsets rather than named zones, so this stays on time.FixedZone instead
// of a timezone database dependency (see DESIGN.md).
package datetimefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shubham030/tl/internal/timeline"
)

// ParseTimezone accepts "UTC" or "UTC+<h>"/"UTC-<h>" (integer hours) as a
// --timezone value. Any other spec is InvalidInput.
func ParseTimezone(spec string) (*time.Location, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "UTC" {
		return time.UTC, nil
	}
	if !strings.HasPrefix(spec, "UTC") {
		return nil, timeline.NewError(timeline.ErrInvalidInput, "unsupported timezone spec: "+spec)
	}
	rest := spec[3:]
	if len(rest) < 2 {
		return nil, timeline.NewError(timeline.ErrInvalidInput, "unsupported timezone spec: "+spec)
	}
	sign := rest[0]
	if sign != '+' && sign != '-' {
		return nil, timeline.NewError(timeline.ErrInvalidInput, "unsupported timezone spec: "+spec)
	}
	hours, err := strconv.Atoi(rest[1:])
	if err != nil || hours < 0 || hours > 23 {
		return nil, timeline.NewError(timeline.ErrInvalidInput, "unsupported timezone spec: "+spec)
	}
	offsetSeconds := hours * 3600
	name := spec
	if sign == '-' {
		offsetSeconds = -offsetSeconds
	}
	return time.FixedZone(name, offsetSeconds), nil
}

// dateLayouts are the accepted "YYYY-MM-DD" and "YYYY-MM-DD HH:MM:SS" forms
// for --after/--before, always interpreted as UTC.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateFilter parses an --after/--before argument as a UTC instant.
func ParseDateFilter(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, timeline.NewError(timeline.ErrInvalidInput, "malformed date filter: "+s)
}

var weekdayAbbrev = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatWeekday renders the three-letter English weekday abbreviation.
func FormatWeekday(t time.Time) string { return weekdayAbbrev[int(t.Weekday())] }

// FormatUTCOffset renders the zone suffix: "UTC", "UTC+<h>"/"UTC-<h>" for
// whole-hour offsets, else "UTC±<h>:<mm>".
func FormatUTCOffset(t time.Time) string {
	_, offsetSeconds := t.Zone()
	if offsetSeconds == 0 {
		return "UTC"
	}
	sign := "+"
	abs := offsetSeconds
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	hours := abs / 3600
	minutes := (abs % 3600) / 60
	if minutes == 0 {
		return fmt.Sprintf("UTC%s%d", sign, hours)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, hours, minutes)
}

// FormatTimestampHuman renders "<weekday> YYYY-MM-DD HH:MM:SS <UTC±N>" in
// the given location.
func FormatTimestampHuman(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return fmt.Sprintf("%s %s %s",
		FormatWeekday(local),
		local.Format("2006-01-02 15:04:05"),
		FormatUTCOffset(local),
	)
}

// FormatTimestampFullPrecision renders an RFC3339-nanosecond form, keeping
// full 100ns precision instead of the human-oriented layout above. The
// JSON writer does not call it; it formats timestamps with its own layout.
func FormatTimestampFullPrecision(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
