// Package timeline holds the data model shared by every stage of the
// pipeline: bytes -> dispatcher -> decoder -> path resolver -> assembler.
package timeline

import "time"

// EventSource discriminates which forensic artifact produced a Record or
// TimelineEvent.
type EventSource string

const (
	SourceMFT       EventSource = "MFT"
	SourceLNK       EventSource = "LNK"
	SourceJumplist  EventSource = "Jumplist"
	SourceRegistry  EventSource = "Registry"
)

// Timestamps is the quadruple of optional UTC instants carried by both
// $STANDARD_INFORMATION and $FILE_NAME attributes.
type Timestamps struct {
	Created     *time.Time
	Modified    *time.Time
	MFTModified *time.Time
	Accessed    *time.Time
}

// AlternateDataStream describes one named $DATA attribute beyond the
// unnamed default stream.
type AlternateDataStream struct {
	Name     string
	Size     uint64
	Resident bool
}

// Record is the canonical logical MFT entry, or a lightweight stand-in
// built from a sibling artifact (LNK/jumplist/registry).
type Record struct {
	RecordNumber    uint64
	SequenceNumber  uint16
	LinkCount       uint16
	IsDirectory     bool
	IsDeleted       bool
	ParentDirectory uint64

	SITimestamps Timestamps
	FNTimestamps Timestamps

	Filename             string
	FileSize             uint64
	AllocatedSize        uint64
	AlternateDataStreams []AlternateDataStream

	Location    string
	EventSource EventSource

	// SoftError is set when fixup validation failed but the record was
	// still decoded.
	SoftError bool
}

// TimestampKind enumerates the four timestamp slots carried by both SI and
// FN attributes.
type TimestampKind int

const (
	Created TimestampKind = iota
	Modified
	MftModified
	Accessed
)

// SortPriority is the secondary timeline sort key:
// Created(0) < Modified(1) < MftModified(2) < Accessed(3).
func (k TimestampKind) SortPriority() uint8 { return uint8(k) }

// DisplayName returns the MFT-flavored description of this timestamp kind.
func (k TimestampKind) DisplayName() string {
	switch k {
	case Created:
		return "File/folder created"
	case Modified:
		return "File/folder modified"
	case MftModified:
		return "File/folder index record modified"
	case Accessed:
		return "File/folder accessed"
	default:
		return "Unknown"
	}
}

// DisplayNameForSource returns the event-description text used in the
// third CSV column.
func (k TimestampKind) DisplayNameForSource(source EventSource) string {
	switch source {
	case SourceLNK:
		switch k {
		case Created:
			return "Shortcut file created"
		case Modified, MftModified:
			return "Shortcut file modified"
		case Accessed:
			return "Shortcut file accessed"
		}
	case SourceRegistry:
		switch k {
		case Created:
			return "Registry key created"
		case Modified, MftModified:
			return "Registry key modified"
		case Accessed:
			return "Registry key accessed"
		}
	case SourceJumplist:
		switch k {
		case Created:
			return "Jumplist entry created"
		case Modified, MftModified:
			return "Jumplist entry modified"
		case Accessed:
			return "Jumplist entry accessed"
		}
	}
	return k.DisplayName()
}

// TimestampProvenance distinguishes which attribute a timestamp came from.
type TimestampProvenance int

const (
	ProvenanceStandardInformation TimestampProvenance = iota
	ProvenanceFileName
)

// ShortForm is the canonical attribute name used for tertiary sorting and
// CSV event descriptions.
func (p TimestampProvenance) ShortForm() string {
	if p == ProvenanceFileName {
		return "$FILE_NAME"
	}
	return "$STANDARD_INFORMATION"
}

// TimelineEvent is one row of the final timeline.
type TimelineEvent struct {
	Filename            string
	Timestamp           time.Time
	TimestampKind       TimestampKind
	TimestampProvenance TimestampProvenance
	SourceRecordNumber  uint64
	Location            string
	FileSize            uint64
	IsDirectory         bool
	EventSource         EventSource
}

// EventDescription renders the third CSV column.
func (e TimelineEvent) EventDescription() string {
	if e.EventSource != "" && e.EventSource != SourceMFT {
		return e.TimestampKind.DisplayNameForSource(e.EventSource)
	}
	return e.TimestampKind.DisplayNameForSource(e.EventSource) + " (" + e.TimestampProvenance.ShortForm() + ")"
}

// ExtractTimelineEvents explodes one record into up to eight events: the
// Cartesian product of {Created,Modified,MftModified,Accessed} x
// {StandardInformation,FileName}, dropping absent timestamps.
func (r Record) ExtractTimelineEvents() []TimelineEvent {
	events := make([]TimelineEvent, 0, 8)
	add := func(ts *time.Time, kind TimestampKind, prov TimestampProvenance) {
		if ts == nil {
			return
		}
		events = append(events, TimelineEvent{
			Filename:            r.Filename,
			Timestamp:           *ts,
			TimestampKind:       kind,
			TimestampProvenance: prov,
			SourceRecordNumber:  r.RecordNumber,
			Location:            r.Location,
			FileSize:            r.FileSize,
			IsDirectory:         r.IsDirectory,
			EventSource:         r.EventSource,
		})
	}

	add(r.SITimestamps.Created, Created, ProvenanceStandardInformation)
	add(r.SITimestamps.Modified, Modified, ProvenanceStandardInformation)
	add(r.SITimestamps.MFTModified, MftModified, ProvenanceStandardInformation)
	add(r.SITimestamps.Accessed, Accessed, ProvenanceStandardInformation)

	add(r.FNTimestamps.Created, Created, ProvenanceFileName)
	add(r.FNTimestamps.Modified, Modified, ProvenanceFileName)
	add(r.FNTimestamps.MFTModified, MftModified, ProvenanceFileName)
	add(r.FNTimestamps.Accessed, Accessed, ProvenanceFileName)

	return events
}

// ParsingConfig controls MFT parsing behavior. Earlier "optimized"/"fast"
// presets collapse into this single struct since they were never
// behaviorally different.
type ParsingConfig struct {
	Parallel      bool
	MaxWorkers    int
	MaxPathDepth  int
	UseSIMD       bool
}

// DefaultParsingConfig returns the baseline parsing configuration.
func DefaultParsingConfig() ParsingConfig {
	return ParsingConfig{
		Parallel:     true,
		MaxWorkers:   0, // resolved to min(GOMAXPROCS, 16) by the parallel driver
		MaxPathDepth: 50,
		UseSIMD:      true,
	}
}
