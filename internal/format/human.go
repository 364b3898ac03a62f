package format

import (
	"fmt"
	"io"
	"time"

	"github.com/shubham030/tl/internal/datetimefmt"
	"github.com/shubham030/tl/internal/timeline"
)

// WriteHuman writes one plain-text line per event: timestamp, description,
// filename, and location, meant for terminal review rather than machine
// parsing.
func WriteHuman(w io.Writer, events []timeline.TimelineEvent, loc *time.Location) error {
	for _, e := range events {
		line := fmt.Sprintf("%s  %-40s  %s  (%s)",
			datetimefmt.FormatTimestampHuman(e.Timestamp, loc),
			e.EventDescription(),
			e.Filename,
			e.Location,
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return timeline.Wrap(timeline.ErrIO, "writing human-readable line", err)
		}
	}
	return nil
}
