// Package pipeline wires the end-to-end forensic timeline flow: a
// classified input (internal/container) becomes decoded records (via
// internal/mft for MFT buffers, or the sibling decoders for LNK/Jumplist/
// registry artifacts), records get full paths (internal/pathresolve), and
// the result is exploded and sorted into a timeline (internal/assemble).
// cmd/tl and cmd/tlview both drive this single entry point rather than
// repeating the wiring.
package pipeline

import (
	"context"
	"io"

	"github.com/shubham030/tl/internal/assemble"
	"github.com/shubham030/tl/internal/container"
	"github.com/shubham030/tl/internal/intern"
	"github.com/shubham030/tl/internal/jumplist"
	"github.com/shubham030/tl/internal/lnk"
	"github.com/shubham030/tl/internal/mft"
	"github.com/shubham030/tl/internal/pathresolve"
	"github.com/shubham030/tl/internal/progress"
	"github.com/shubham030/tl/internal/registry"
	"github.com/shubham030/tl/internal/timeline"
)

// Options controls one Run, mirroring the CLI flags.
type Options struct {
	Password     string
	Parallel     bool
	MaxWorkers   int
	MaxPathDepth int
	UseSIMD      bool
	MaxParseErrors int
}

// DefaultOptions mirrors timeline.DefaultParsingConfig().
func DefaultOptions() Options {
	dc := timeline.DefaultParsingConfig()
	return Options{
		Parallel:     dc.Parallel,
		MaxWorkers:   dc.MaxWorkers,
		MaxPathDepth: dc.MaxPathDepth,
		UseSIMD:      dc.UseSIMD,
	}
}

// Result is everything Run produces: the final sorted timeline plus the
// soft-error count the CLI summary line reports.
type Result struct {
	Events      []timeline.TimelineEvent
	ParseErrors int
}

// Run classifies name via internal/container, decodes every resulting
// artifact with the decoder appropriate to its kind, resolves full paths
// for MFT-sourced records, and assembles the final timeline.
func Run(ctx context.Context, name string, r io.ReaderAt, size int64, opts Options, reporter progress.Reporter) (Result, error) {
	if reporter == nil {
		reporter = progress.Discard{}
	}

	dispatch, err := container.Dispatch(name, r, size, opts.Password)
	if err != nil {
		return Result{}, err
	}

	pool := intern.New()
	var records []timeline.Record
	var parseErrors int

	if dispatch.MFTBytes != nil && (dispatch.Kind == container.KindMFTBuffer ||
		dispatch.Kind == container.KindZIP || dispatch.Kind == container.KindRawImage) {
		recs, errs, err := decodeMFT(ctx, dispatch.MFTBytes, opts, reporter)
		if err != nil {
			return Result{}, err
		}
		records = append(records, recs...)
		parseErrors += errs
	}

	for _, a := range dispatch.Artifacts {
		switch a.Kind {
		case container.KindMFTBuffer:
			// Already folded into dispatch.MFTBytes by container.Dispatch
			// when it's the first MFT artifact found in a ZIP; any
			// additional ones are intentionally skipped since only one
			// MFT is expected per container.
			continue
		case container.KindLNK:
			rec, err := lnk.Decode(a.Data, pool)
			if err != nil {
				parseErrors++
				continue
			}
			records = append(records, *rec)
		case container.KindAutomaticJumplist, container.KindCustomJumplist:
			recs, err := jumplist.Decode(a.Data, pool)
			if err != nil {
				parseErrors++
				continue
			}
			records = append(records, recs...)
		case container.KindRegistryHive:
			recs, err := registry.Decode(a.Data)
			if err != nil {
				parseErrors++
				continue
			}
			records = append(records, recs...)
		}
	}

	// A bare LNK/Jumplist/registry-hive input (not inside a ZIP) arrives
	// as dispatch.MFTBytes too, since container.Dispatch has no MFT-
	// specific knowledge of those kinds; route it to the matching sibling
	// decoder instead of treating it as an MFT buffer.
	if dispatch.MFTBytes != nil && records == nil {
		switch dispatch.Kind {
		case container.KindLNK:
			rec, err := lnk.Decode(dispatch.MFTBytes, pool)
			if err == nil {
				records = []timeline.Record{*rec}
			}
		case container.KindAutomaticJumplist, container.KindCustomJumplist:
			recs, err := jumplist.Decode(dispatch.MFTBytes, pool)
			if err == nil {
				records = recs
			}
		case container.KindRegistryHive:
			recs, err := registry.Decode(dispatch.MFTBytes)
			if err == nil {
				records = recs
			}
		}
	}

	reporter.Begin(progress.StageResolve, len(records))
	resolvePaths(records, opts.MaxPathDepth)
	reporter.Advance(progress.StageResolve, len(records))
	reporter.Finish(progress.StageResolve)

	reporter.Begin(progress.StageAssemble, len(records))
	events := assemble.ExtractEvents(records)
	reporter.Finish(progress.StageAssemble)

	return Result{Events: events, ParseErrors: parseErrors}, nil
}

func decodeMFT(ctx context.Context, buf []byte, opts Options, reporter progress.Reporter) ([]timeline.Record, int, error) {
	parser := mft.NewParser(mft.Config{
		Parallel:       opts.Parallel,
		MaxWorkers:     opts.MaxWorkers,
		MaxPathDepth:   opts.MaxPathDepth,
		UseSIMD:        opts.UseSIMD,
		MaxParseErrors: opts.MaxParseErrors,
	})
	result, err := parser.Parse(ctx, buf, 0, reporter)
	if err != nil {
		return nil, 0, err
	}
	return result.Records, result.ParseErrors, nil
}

// resolvePaths is only meaningful for MFT-sourced records, which carry a
// ParentDirectory reference; sibling-decoder records already set Location
// themselves during decode (a key path, a shortcut target, …) and are left
// untouched here.
func resolvePaths(records []timeline.Record, maxDepth int) {
	resolver := pathresolve.New(maxDepth)
	for _, r := range records {
		if r.EventSource == timeline.SourceMFT {
			resolver.Add(r.RecordNumber, r.Filename, r.ParentDirectory)
		}
	}
	for i := range records {
		if records[i].EventSource == timeline.SourceMFT {
			records[i].Location = resolver.FullPath(records[i].RecordNumber)
		}
	}
}
