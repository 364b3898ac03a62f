// Package assemble implements the timeline assembler: explodes decoded
// records into timestamped events and sorts them into a single
// deterministic order.
package assemble

import (
	"sort"

	"github.com/shubham030/tl/internal/timeline"
)

// largeDatasetThreshold is the point past which an unstable sort is used
// instead of a stable one, since the three keys fully determine order.
const largeDatasetThreshold = 10000

// ExtractEvents explodes every record (up to eight events each) and
// returns them in the canonical sort order.
func ExtractEvents(records []timeline.Record) []timeline.TimelineEvent {
	events := make([]timeline.TimelineEvent, 0, len(records)*2)
	for _, r := range records {
		events = append(events, r.ExtractTimelineEvents()...)
	}
	SortEvents(events)
	return events
}

// SortEvents sorts in place by a three-key order: timestamp ascending,
// then timestamp_kind priority, then provenance's
// canonical string lexicographically ("$FILE_NAME" < "$STANDARD_INFORMATION").
// Below largeDatasetThreshold the sort is stable (ties beyond the tertiary
// key preserve input order); at or above it, an unstable sort is used since
// the keys above already fully determine order for any realistic dataset.
func SortEvents(events []timeline.TimelineEvent) {
	less := func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if a.TimestampKind.SortPriority() != b.TimestampKind.SortPriority() {
			return a.TimestampKind.SortPriority() < b.TimestampKind.SortPriority()
		}
		return a.TimestampProvenance.ShortForm() < b.TimestampProvenance.ShortForm()
	}

	if len(events) >= largeDatasetThreshold {
		sort.Slice(events, less)
		return
	}
	sort.SliceStable(events, less)
}
