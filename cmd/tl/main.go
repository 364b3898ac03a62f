// Command tl builds a forensic timeline from an NTFS $MFT (or a ZIP/raw
// disk image/live volume containing one), plus sibling LNK/Jumplist/
// registry artifacts, and writes it as CSV, JSON, or human-readable text.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/shubham030/tl/internal/datetimefmt"
	"github.com/shubham030/tl/internal/device"
	"github.com/shubham030/tl/internal/disk"
	"github.com/shubham030/tl/internal/format"
	"github.com/shubham030/tl/internal/pipeline"
	"github.com/shubham030/tl/internal/progress"
	"github.com/shubham030/tl/internal/timeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	var tlErr *timeline.Error
	if ok := asTimelineError(err, &tlErr); ok {
		return tlErr.Kind.ExitCode()
	}
	return 1
}

func asTimelineError(err error, target **timeline.Error) bool {
	for err != nil {
		if e, ok := err.(*timeline.Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func newRootCmd() *cobra.Command {
	var (
		outputFormat string
		outputPath   string
		password     string
		timezone     string
		afterStr     string
		beforeStr    string
		filter       string
		noParallel   bool
	)

	cmd := &cobra.Command{
		Use:   "tl <input>",
		Short: "Build a forensic timeline from an NTFS MFT and sibling artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") && outputPath == "" && isatty.IsTerminal(os.Stdout.Fd()) {
				// No explicit --format and no --output redirect: the
				// operator is reading this directly in a terminal, so
				// default to the human-readable sink instead of raw CSV.
				outputFormat = "human"
			}
			return run(cmd.Context(), args[0], runOptions{
				outputFormat: outputFormat,
				outputPath:   outputPath,
				password:     password,
				timezone:     timezone,
				afterStr:     afterStr,
				beforeStr:    beforeStr,
				filter:       filter,
				noParallel:   noParallel,
			})
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", "csv", "output format: csv, json, human")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file path (default: stdout)")
	cmd.Flags().StringVar(&password, "password", "", "password for encrypted ZIP archives")
	cmd.Flags().StringVar(&timezone, "timezone", "UTC", `display timezone: "UTC" or "UTC+N"/"UTC-N"`)
	cmd.Flags().StringVar(&afterStr, "after", "", "only include events at or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&beforeStr, "before", "", "only include events at or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter, "filter", "", "only include events whose filename or location matches this regex (case-insensitive)")
	cmd.Flags().BoolVar(&noParallel, "no-parallel", false, "disable the parallel worker pool")

	return cmd
}

type runOptions struct {
	outputFormat string
	outputPath   string
	password     string
	timezone     string
	afterStr     string
	beforeStr    string
	filter       string
	noParallel   bool
}

func run(ctx context.Context, input string, opts runOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	loc, err := datetimefmt.ParseTimezone(opts.timezone)
	if err != nil {
		return err
	}

	var after, before *time.Time
	if opts.afterStr != "" {
		t, err := datetimefmt.ParseDateFilter(opts.afterStr)
		if err != nil {
			return err
		}
		after = &t
	}
	if opts.beforeStr != "" {
		t, err := datetimefmt.ParseDateFilter(opts.beforeStr)
		if err != nil {
			return err
		}
		before = &t
	}

	path := input
	if device.IsLiveVolumeDesignator(input) {
		resolved, err := device.ResolveVolumePath(input)
		if err != nil {
			return err
		}
		path = resolved
	}

	reader, err := disk.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	popts := pipeline.DefaultOptions()
	popts.Password = opts.password
	if opts.noParallel {
		popts.Parallel = false
	}

	result, err := pipeline.Run(ctx, path, reader, reader.Size(), popts, progress.Discard{})
	if err != nil {
		return err
	}

	events, err := filterEvents(result.Events, opts.filter, after, before)
	if err != nil {
		return err
	}

	out := os.Stdout
	if opts.outputPath != "" {
		f, err := os.Create(opts.outputPath)
		if err != nil {
			return timeline.Wrap(timeline.ErrIO, "creating output file", err)
		}
		defer f.Close()
		out = f
	}

	switch strings.ToLower(opts.outputFormat) {
	case "csv", "":
		err = format.WriteCSV(out, events, loc)
	case "json":
		err = format.WriteJSON(out, events)
	case "human":
		err = format.WriteHuman(out, events, loc)
	default:
		err = timeline.NewError(timeline.ErrInvalidInput, "unknown output format: "+opts.outputFormat)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d events, %d parse errors\n", len(events), result.ParseErrors)
	return nil
}

func filterEvents(events []timeline.TimelineEvent, filter string, after, before *time.Time) ([]timeline.TimelineEvent, error) {
	if filter == "" && after == nil && before == nil {
		return events, nil
	}
	var re *regexp.Regexp
	if filter != "" {
		compiled, err := regexp.Compile("(?i)" + filter)
		if err != nil {
			return nil, timeline.Wrap(timeline.ErrInvalidInput, "compiling --filter pattern", err)
		}
		re = compiled
	}
	out := make([]timeline.TimelineEvent, 0, len(events))
	for _, e := range events {
		if re != nil && !re.MatchString(e.Filename) && !re.MatchString(e.Location) {
			continue
		}
		if after != nil && e.Timestamp.Before(*after) {
			continue
		}
		if before != nil && e.Timestamp.After(*before) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
