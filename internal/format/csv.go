// Package format implements the writer sinks consumed by cmd/tl: CSV,
// JSON, and human-readable text, each serializing a []timeline.TimelineEvent
// rather than raw MFT records.
package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shubham030/tl/internal/datetimefmt"
	"github.com/shubham030/tl/internal/timeline"
)

// escapeCSVField always quotes the field and doubles embedded double
// quotes; embedded newlines are preserved verbatim inside the quotes.
func escapeCSVField(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' {
			b.WriteString(`""`)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// WriteCSV writes one line per event in the order filename, timestamp,
// event_description, file_size, location.
func WriteCSV(w io.Writer, events []timeline.TimelineEvent, loc *time.Location) error {
	for _, e := range events {
		fields := []string{
			escapeCSVField(e.Filename),
			escapeCSVField(datetimefmt.FormatTimestampHuman(e.Timestamp, loc)),
			escapeCSVField(e.EventDescription()),
			strconv.FormatUint(e.FileSize, 10),
			escapeCSVField(e.Location),
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return timeline.Wrap(timeline.ErrIO, "writing CSV row", err)
		}
	}
	return nil
}
