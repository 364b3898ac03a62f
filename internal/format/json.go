package format

import (
	"encoding/json"
	"io"

	"github.com/shubham030/tl/internal/timeline"
)

// jsonEvent is the wire shape written by WriteJSON: UTC timestamps in a
// fixed nine-fractional-digit layout, field names matching the TimelineEvent
// data model.
type jsonEvent struct {
	Filename            string `json:"filename"`
	Timestamp           string `json:"timestamp"`
	TimestampKind        string `json:"timestamp_kind"`
	TimestampProvenance  string `json:"timestamp_provenance"`
	SourceRecordNumber   uint64 `json:"source_record_number"`
	Location             string `json:"location"`
	FileSize             uint64 `json:"file_size"`
	IsDirectory          bool   `json:"is_directory"`
	EventSource          string `json:"event_source"`
}

// WriteJSON writes the full event slice as a single JSON array.
func WriteJSON(w io.Writer, events []timeline.TimelineEvent) error {
	out := make([]jsonEvent, 0, len(events))
	for _, e := range events {
		out = append(out, jsonEvent{
			Filename:            e.Filename,
			Timestamp:           e.Timestamp.UTC().Format("2006-01-02T15:04:05.000000000Z"),
			TimestampKind:       kindName(e.TimestampKind),
			TimestampProvenance: e.TimestampProvenance.ShortForm(),
			SourceRecordNumber:  e.SourceRecordNumber,
			Location:            e.Location,
			FileSize:             e.FileSize,
			IsDirectory:          e.IsDirectory,
			EventSource:          string(e.EventSource),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return timeline.Wrap(timeline.ErrIO, "writing JSON", err)
	}
	return nil
}

func kindName(k timeline.TimestampKind) string {
	switch k {
	case timeline.Created:
		return "Created"
	case timeline.Modified:
		return "Modified"
	case timeline.MftModified:
		return "MftModified"
	case timeline.Accessed:
		return "Accessed"
	default:
		return "Unknown"
	}
}
