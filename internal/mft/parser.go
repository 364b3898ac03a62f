package mft

import (
	"context"
	"sync"

	"github.com/shubham030/tl/internal/intern"
	"github.com/shubham030/tl/internal/parallel"
	"github.com/shubham030/tl/internal/progress"
	"github.com/shubham030/tl/internal/timeline"
)

// Config is the Parser construction contract.
type Config struct {
	Parallel     bool
	MaxWorkers   int
	MaxPathDepth int
	UseSIMD      bool

	// MaxParseErrors bounds how many per-record soft failures are
	// tolerated before the parse aborts entirely. Zero means unlimited.
	MaxParseErrors int
}

// DefaultConfig returns the default parser configuration.
func DefaultConfig() Config {
	dc := timeline.DefaultParsingConfig()
	return Config{
		Parallel:     dc.Parallel,
		MaxWorkers:   dc.MaxWorkers,
		MaxPathDepth: dc.MaxPathDepth,
		UseSIMD:      dc.UseSIMD,
	}
}

// Parser is the single entry point consumed by the CLI.
type Parser struct {
	config Config
	pool   *intern.Pool
}

// NewParser builds a Parser bound to config and a fresh string interner
// whose lifetime matches the parser instance.
func NewParser(config Config) *Parser {
	return &Parser{config: config, pool: intern.New()}
}

// Config returns the parser's effective configuration.
func (p *Parser) Config() Config { return p.config }

// ParseResult bundles the decoded records with the soft-error count a
// final summary line reports.
type ParseResult struct {
	Records    []timeline.Record
	ParseErrors int
}

// Parse scans boundaries, applies fixups, and decodes records over an
// in-memory MFT buffer, reporting progress for the scan and decode
// stages. recordSize overrides RecordSize when the caller already knows
// it; pass 0 to default (the pipeline always passes 0).
func (p *Parser) Parse(ctx context.Context, buf []byte, recordSize int, reporter progress.Reporter) (ParseResult, error) {
	if reporter == nil {
		reporter = progress.Discard{}
	}
	if recordSize <= 0 {
		recordSize = RecordSize
	}

	reporter.Begin(progress.StageScan, len(buf)/recordSize)
	boundaries := Scan(buf, recordSize)
	reporter.Advance(progress.StageScan, len(boundaries.Offsets))
	reporter.Finish(progress.StageScan)

	workers := parallel.WorkerCount(p.config.Parallel, p.config.MaxWorkers)

	reporter.Begin(progress.StageDecode, len(boundaries.Offsets))

	results := make([][]timeline.Record, workers)
	errCounts := make([]int, workers)

	var mu sync.Mutex
	var totalErrors int
	ceiling := p.config.MaxParseErrors

	err := parallel.Run(ctx, len(boundaries.Offsets), workers, func(ctx context.Context, idx, start, end int) error {
		local := make([]timeline.Record, 0, end-start)
		localErrs := 0
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return timeline.Wrap(timeline.ErrCancelled, "parse cancelled", err)
			}

			off := boundaries.Offsets[i]
			recEnd := off + recordSize
			if recEnd > len(buf) {
				localErrs++
				continue
			}
			record := make([]byte, recordSize)
			copy(record, buf[off:recEnd])

			// BAAD records are corrupted at the NTFS level and never
			// decoded, matching the dense-mode boundary invariant (only
			// FILE signatures produce records); Scan still reports their
			// offsets as boundaries for bookkeeping.
			if IsBaad(record[:4]) {
				localErrs++
				continue
			}

			h, ok := parseHeader(record)
			if !ok {
				localErrs++
				continue
			}
			fixupValid, fixupOK := ApplyFixup(record, h.usaOffset, h.usaSize)
			if !fixupOK {
				localErrs++
				continue
			}

			recNum := uint64(off / recordSize)
			rec, skip := DecodeRecord(record, recNum, p.pool, fixupValid, p.resolveExtension(buf, recordSize))
			if skip {
				localErrs++
				continue
			}
			local = append(local, *rec)
			reporter.Advance(progress.StageDecode, 1)
		}

		results[idx] = local
		errCounts[idx] = localErrs

		if ceiling > 0 {
			mu.Lock()
			totalErrors += localErrs
			exceeded := totalErrors > ceiling
			mu.Unlock()
			if exceeded {
				return timeline.NewError(timeline.ErrParse, "parse error ceiling exceeded")
			}
		}
		return nil
	})
	reporter.Finish(progress.StageDecode)
	if err != nil {
		return ParseResult{}, err
	}

	var out ParseResult
	for i, part := range results {
		out.Records = append(out.Records, part...)
		out.ParseErrors += errCounts[i]
	}
	return out, nil
}

// resolveExtension builds an ExtensionResolver closure over one parse's
// buffer and record size, for following $ATTRIBUTE_LIST extent records.
// Each call copies and fixes up the addressed record independently, so
// concurrent callers never share mutable state.
func (p *Parser) resolveExtension(buf []byte, recordSize int) ExtensionResolver {
	return func(recordNumber uint64) ([]byte, bool) {
		off := int(recordNumber) * recordSize
		end := off + recordSize
		if off < 0 || end > len(buf) {
			return nil, false
		}
		record := make([]byte, recordSize)
		copy(record, buf[off:end])

		h, ok := parseHeader(record)
		if !ok {
			return nil, false
		}
		if _, ok := ApplyFixup(record, h.usaOffset, h.usaSize); !ok {
			return nil, false
		}
		return record, true
	}
}
