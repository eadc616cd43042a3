// Package matching implements the dimension combiner and driver of
// spec §4.4-§4.5: SortMatching is the library's single entry point,
// equivalent to the original's sort_matching(dataset, out) -> error_code.
package matching

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/sortmatch/bitmatrix"
	"github.com/grailbio/sortmatch/extent"
	"github.com/grailbio/sortmatch/space"
	"github.com/grailbio/sortmatch/sweep"
)

// SortMatching computes the N_u x N_s overlap matrix for ds: cell (u, s)
// is 1 iff update u and subscription s overlap in every dimension.
//
// It validates ds.Dimensions, allocates the result (and, in TwoMatrix
// mode, a scratch) matrix, sweeps each dimension per cfg.Parallel, and
// combines per cfg.Combine. On any validation, allocation, or worker
// failure it returns the first such error without allocating or
// mutating further (spec §4.5).
func SortMatching[T space.Value](ds extent.Dataset[T], cfg Config) (*bitmatrix.BitMatrix, error) {
	if ds.Dimensions < 1 {
		return nil, invalidInput("dimensions must be >= 1", ds.Dimensions)
	}
	if ds.Dimensions > MaxDimensions {
		return nil, tooManyDimensions(ds.Dimensions, MaxDimensions)
	}

	nUpdates := len(ds.Updates)
	nSubs := len(ds.Subscriptions)

	log.Printf("matching.SortMatching: dims=%d updates=%d subs=%d fingerprint=%x",
		ds.Dimensions, nUpdates, nSubs, fingerprint(ds))

	out, err := allocMatrix(cfg, nUpdates, nSubs)
	if err != nil {
		return nil, allocation(err)
	}

	widen := cfg.widen()
	if cfg.Parallel == PerDimensionThread {
		if err := runThreaded(ds, out, widen); err != nil {
			return nil, err
		}
		return out, nil
	}

	switch cfg.Combine {
	case InPlace:
		runInPlace(ds, out, widen)
	default:
		if err := runTwoMatrix(ds, out, cfg.Alloc, widen); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// allocMatrix backs a rows x cols result or scratch matrix per cfg.Alloc.
func allocMatrix(cfg Config, rows, cols int) (*bitmatrix.BitMatrix, error) {
	if cfg.Alloc == AllocMmap {
		return bitmatrix.NewMmapped(rows, cols)
	}
	return bitmatrix.New(rows, cols)
}

// runTwoMatrix implements the TwoMatrix combine mode (spec §4.4): each
// dimension's sweep writes into out (dimension 0) or a scratch matrix
// (every later dimension), is NOT-ed in place, and ANDed into out.
func runTwoMatrix[T space.Value](ds extent.Dataset[T], out *bitmatrix.BitMatrix, alloc AllocMode, widen bool) error {
	nUpdates := len(ds.Updates)
	nSubs := len(ds.Subscriptions)

	var tmp *bitmatrix.BitMatrix
	if ds.Dimensions > 1 {
		var err error
		tmp, err = allocMatrix(Config{Alloc: alloc}, nUpdates, nSubs)
		if err != nil {
			return allocation(err)
		}
	}

	before := make([]uint32, out.WordsPerRow)
	after := make([]uint32, out.WordsPerRow)

	for d := 0; d < ds.Dimensions; d++ {
		target := out
		if d > 0 {
			target = tmp
		}
		events := sweep.BuildEndpointList(ds.Subscriptions, ds.Updates, d, widen)
		sweep.Sort(events, widen)
		sweep.Run(events, target, before, after, nUpdates, sweep.LowerCopy, nil)
		bitmatrix.Not(target.Words())
		if d > 0 {
			bitmatrix.And(out.Words(), tmp.Words())
		}
	}
	return nil
}

// runInPlace implements the InPlace (low-memory) combine mode (spec
// §4.4): every dimension ORs its non-overlap bits into the single shared
// out, which is NOT-ed once at the end.
func runInPlace[T space.Value](ds extent.Dataset[T], out *bitmatrix.BitMatrix, widen bool) {
	nUpdates := len(ds.Updates)
	before := make([]uint32, out.WordsPerRow)
	after := make([]uint32, out.WordsPerRow)

	for d := 0; d < ds.Dimensions; d++ {
		events := sweep.BuildEndpointList(ds.Subscriptions, ds.Updates, d, widen)
		sweep.Sort(events, widen)
		sweep.Run(events, out, before, after, nUpdates, sweep.LowerOr, nil)
	}
	bitmatrix.Not(out.Words())
}

// runThreaded implements the PerDimensionThread combine mode (spec §4.4,
// §5): one goroutine per dimension, each with its own endpoint list and
// B/A scratch, ORing into the shared out under per-row locks. Semantics
// are identical to InPlace, but parallel.
func runThreaded[T space.Value](ds extent.Dataset[T], out *bitmatrix.BitMatrix, widen bool) error {
	locks := sweep.NewLocks(len(ds.Updates))
	nUpdates := len(ds.Updates)

	var once errors.Once
	terr := traverse.Each(ds.Dimensions, func(d int) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("sortmatch: panic in dimension %d worker: %v", d, r)
			}
		}()
		before := make([]uint32, out.WordsPerRow)
		after := make([]uint32, out.WordsPerRow)
		events := sweep.BuildEndpointList(ds.Subscriptions, ds.Updates, d, widen)
		sweep.Sort(events, widen)
		sweep.Run(events, out, before, after, nUpdates, sweep.LowerOr, locks)
		return nil
	})
	if terr != nil {
		once.Set(terr)
	}
	if err := once.Err(); err != nil {
		return threads(err)
	}

	bitmatrix.Not(out.Words())
	return nil
}
