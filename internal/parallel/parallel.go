// Package parallel implements a bounded worker pool: static partition of
// boundary offsets across T = min(hardware_concurrency, 16) workers,
// cooperative cancellation via context.Context, built on
// golang.org/x/sync/errgroup. Merging the per-worker results is left to
// the caller.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const maxDefaultWorkers = 16

// WorkerCount resolves the configured worker count to a concrete value:
// 1 when parallel is false, else min(requested or GOMAXPROCS, 16).
func WorkerCount(parallelEnabled bool, requested int) int {
	if !parallelEnabled {
		return 1
	}
	n := requested
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > maxDefaultWorkers {
		n = maxDefaultWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Partition splits n items into at most workers contiguous [start, end)
// ranges, balanced within one item of each other.
func Partition(n, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	if n == 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	base := n / workers
	rem := n % workers
	parts := make([][2]int, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		parts = append(parts, [2]int{start, start + size})
		start += size
	}
	return parts
}

// Run partitions n work items across workers goroutines and calls fn once
// per partition with the [start, end) range. fn must be safe to call
// concurrently with other invocations and should check ctx.Err()
// periodically for cooperative cancellation. Results are the caller's
// responsibility to merge in partition order, since Run itself carries no
// notion of a per-item result type.
func Run(ctx context.Context, n, workers int, fn func(ctx context.Context, partitionIndex, start, end int) error) error {
	parts := Partition(n, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range parts {
		i, p := i, p
		g.Go(func() error {
			return fn(gctx, i, p[0], p[1])
		})
	}
	return g.Wait()
}
