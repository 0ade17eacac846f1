// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package densemap

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// rangeExecutor splits [0, nitems) into at most nworkers contiguous
// ranges and runs fn on each range in its own goroutine.
type rangeExecutor struct {
	nworkers int
}

func newRangeExecutor(nworkers int) rangeExecutor {
	if nworkers <= 0 {
		nworkers = runtime.NumCPU()
	}
	return rangeExecutor{nworkers: nworkers}
}

// execute blocks until every range is done and returns the first
// error, if any.
func (e rangeExecutor) execute(ctx context.Context, nitems int,
	fn func(ctx context.Context, start, end int) error) error {

	g, ctx := errgroup.WithContext(ctx)

	q := nitems / e.nworkers
	r := nitems % e.nworkers

	start := 0
	for i := 0; i < e.nworkers; i++ {
		size := q
		if i < r {
			size++
		}
		if size == 0 {
			break
		}
		end := start + size
		curStart, curEnd := start, end
		g.Go(func() error {
			return fn(ctx, curStart, curEnd)
		})
		start = end
	}
	return g.Wait()
}
