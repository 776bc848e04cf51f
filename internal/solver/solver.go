// Package solver implements the retrograde, stratum-by-stratum fixed-point
// solver that fills a probdb.ProbDb with Green's win probability for every
// reachable ROGOUR position.
package solver

import (
	"context"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/msheby/rogour/internal/codec"
	"github.com/msheby/rogour/internal/probdb"
	"github.com/msheby/rogour/internal/rules"
)

// StratumInfo is reported to Options.OnStratumDone after a stratum's sweeps
// converge.
type StratumInfo struct {
	GOff, ROff int
	Rounds     int
	MaxError   float64
	Elapsed    time.Duration
}

// Options configures one Solve run.
type Options struct {
	// Tolerance is the maximum per-sweep probability change below which a
	// stratum is considered converged. Zero selects the 1e-6 default.
	Tolerance float64

	// Threads, when > 1, switches a stratum's sweeps from the default
	// Gauss-Seidel single-threaded walk to a Jacobi-parallel walk
	// partitioned across this many goroutines, capped at runtime.NumCPU().
	Threads int

	// Skip holds strata already completed by a prior run (from
	// checkpoint.CompletedStrata); Solve leaves their entries in db
	// untouched and does not recompute them.
	Skip map[[2]int]bool

	// OnStratumDone, if set, is called after each stratum converges, before
	// moving to the next one. Returning an error aborts Solve.
	OnStratumDone func(StratumInfo) error
}

func (o Options) tolerance() float64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}
	return 1e-6
}

// Solve fills db in place. db must already be allocated (probdb.NewEmpty or
// probdb.Load) at the intended width; Solve seeds the terminal strata itself
// unless they are present in Options.Skip.
func Solve(ctx context.Context, db *probdb.ProbDb, opts Options) error {
	if err := seedTerminal(db, opts.Skip); err != nil {
		return err
	}

	for gm := 6; gm >= 0; gm-- {
		for rm := gm; rm >= 0; rm-- {
			if err := ctx.Err(); err != nil {
				return err
			}
			if opts.Skip[[2]int{gm, rm}] {
				continue
			}

			start := time.Now()
			items, err := buildUpdateList(gm, rm)
			if err != nil {
				return err
			}

			rounds, maxErr, err := runStratum(ctx, db, items, opts)
			if err != nil {
				return err
			}

			if opts.OnStratumDone != nil {
				if err := opts.OnStratumDone(StratumInfo{
					GOff: gm, ROff: rm, Rounds: rounds, MaxError: maxErr, Elapsed: time.Since(start),
				}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// seedTerminal sets every board with Green fully off to P = 1, and its
// reverse (Red fully off) to P = 0, for every Red off-count 0..6. The
// (7,7) board is unreachable (rules.Validate forbids both sides at 7), so
// it is left unseeded, although the index space and
// codec.PositionsIterator(7, 7) still include it.
func seedTerminal(db *probdb.ProbDb, skip map[[2]int]bool) error {
	for rOff := 0; rOff <= 6; rOff++ {
		if skip[[2]int{7, rOff}] {
			continue
		}
		for b := range codec.PositionsIterator(7, rOff) {
			if err := db.ASet(b, 1); err != nil {
				return err
			}
			if err := db.ASet(rules.ReverseBoard(b), 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// updateItem is one unordered {board, reverse} pair's cached recipe.
type updateItem struct {
	key, rkey int64
	fwd, rev  recipe
}

// buildUpdateList enumerates every position in the (gOff=gm, rOff=rm)
// stratum exactly once per unordered {board, reverse} pair (skipping a
// board whose reverse was already emitted as another pair's primary board),
// sorted by ascending total pip progress so near-terminal positions
// converge first.
func buildUpdateList(gm, rm int) ([]updateItem, error) {
	type scored struct {
		pips int
		item updateItem
	}
	seen := make(map[int64]bool)
	var scoredItems []scored

	for b := range codec.PositionsIterator(gm, rm) {
		key, err := codec.BoardToIndex(b)
		if err != nil {
			return nil, err
		}
		rboard := rules.ReverseBoard(b)
		rkey, err := codec.BoardToIndex(rboard)
		if err != nil {
			return nil, err
		}
		if seen[rkey] {
			continue
		}
		seen[key] = true

		fwd, err := buildRecipe(b, rboard)
		if err != nil {
			return nil, err
		}
		rev, err := buildRecipe(rboard, b)
		if err != nil {
			return nil, err
		}

		scoredItems = append(scoredItems, scored{
			pips: totalPips(b),
			item: updateItem{key: key, rkey: rkey, fwd: fwd, rev: rev},
		})
	}

	sort.SliceStable(scoredItems, func(i, j int) bool { return scoredItems[i].pips < scoredItems[j].pips })

	items := make([]updateItem, len(scoredItems))
	for i, s := range scoredItems {
		items[i] = s.item
	}
	return items, nil
}

// runStratum sweeps items until the maximum per-sweep change drops below
// opts.tolerance(), returning the round count and final max error.
func runStratum(ctx context.Context, db *probdb.ProbDb, items []updateItem, opts Options) (int, float64, error) {
	tol := opts.tolerance()
	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}

	rounds := 0
	maxErr := 1.0
	for maxErr > tol {
		if err := ctx.Err(); err != nil {
			return rounds, maxErr, err
		}
		rounds++
		var err error
		if threads <= 1 {
			maxErr, err = sweepSerial(db, items)
		} else {
			maxErr, err = sweepParallel(ctx, db, items, threads)
		}
		if err != nil {
			return rounds, maxErr, err
		}
	}
	return rounds, maxErr, nil
}

func sweepSerial(db *probdb.ProbDb, items []updateItem) (float64, error) {
	maxErr := 0.0
	for _, it := range items {
		old1, _ := db.Get(it.key)
		old2, _ := db.Get(it.rkey)
		p1, p2 := update(it.fwd, it.rev, db)
		if e := abs(old1 - p1); e > maxErr {
			maxErr = e
		}
		if e := abs(old2 - p2); e > maxErr {
			maxErr = e
		}
		db.Set(it.key, p1)
		db.Set(it.rkey, p2)
	}
	return maxErr, nil
}

// sweepParallel partitions items into threads contiguous ranges. Each
// goroutine reads db (a snapshot for the duration of the sweep, since
// nothing writes until every goroutine's results are collected) and writes
// its results into a private buffer; results are applied to db only after
// the whole sweep's errgroup joins, matching the Jacobi update model.
func sweepParallel(ctx context.Context, db *probdb.ProbDb, items []updateItem, threads int) (float64, error) {
	if threads > runtime.NumCPU() {
		threads = runtime.NumCPU()
	}
	if threads < 1 {
		threads = 1
	}

	n := len(items)
	chunk := (n + threads - 1) / threads
	if chunk == 0 {
		return 0, nil
	}

	type result struct {
		key, rkey int64
		p1, p2    float64
	}
	results := make([][]result, threads)

	g, gctx := errgroup.WithContext(ctx)
	for t := 0; t < threads; t++ {
		t := t
		lo := t * chunk
		if lo >= n {
			continue
		}
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local := make([]result, 0, hi-lo)
			for _, it := range items[lo:hi] {
				p1, p2 := update(it.fwd, it.rev, db)
				local = append(local, result{key: it.key, rkey: it.rkey, p1: p1, p2: p2})
			}
			results[t] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	maxErr := 0.0
	for _, part := range results {
		for _, r := range part {
			old1, _ := db.Get(r.key)
			old2, _ := db.Get(r.rkey)
			if e := abs(old1 - r.p1); e > maxErr {
				maxErr = e
			}
			if e := abs(old2 - r.p2); e > maxErr {
				maxErr = e
			}
			db.Set(r.key, r.p1)
			db.Set(r.rkey, r.p2)
		}
	}
	return maxErr, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
