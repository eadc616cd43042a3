package matching

import "github.com/grailbio/sortmatch/extent"

// MaxDimensions is the upper bound on Dataset.Dimensions the driver will
// accept, re-exported from package extent for convenience.
const MaxDimensions = extent.MaxDimensions

// CombineMode selects how per-dimension non-overlap results are
// accumulated into the final overlap matrix (spec §4.4).
type CombineMode int

const (
	// TwoMatrix keeps one result matrix and one scratch matrix, NOT-ing
	// and AND-ing a dimension at a time. This is the default mode.
	TwoMatrix CombineMode = iota
	// InPlace (the original's LOWMEM) uses a single matrix that every
	// dimension ORs its non-overlap bits into, halving peak memory.
	InPlace
)

// ParallelMode selects whether dimensions are swept sequentially or
// concurrently (spec §4.5, §5).
type ParallelMode int

const (
	// Sequential sweeps each dimension one at a time, on the calling
	// goroutine.
	Sequential ParallelMode = iota
	// PerDimensionThread sweeps every dimension concurrently, one
	// goroutine per dimension, with row-level locking on the shared
	// result matrix. Implies InPlace combine semantics (spec §4.4: the
	// threaded mode's semantics are "identical to low-memory, but
	// parallel").
	PerDimensionThread
)

// WidenMode selects whether endpoints are widened by one increment
// before the sweep (spec §4.2's SUPERSET option).
type WidenMode int

const (
	// Exact uses endpoints as given.
	Exact WidenMode = iota
	// Superset widens every endpoint by one minimum increment, so
	// zero-width and touching extents are always treated as overlapping
	// and tie-breaking on coincident endpoints is unspecified.
	Superset
)

// AllocMode selects how the result (and, in TwoMatrix mode, scratch)
// matrix is backed.
type AllocMode int

const (
	// AllocHeap uses a normal Go slice allocation (bitmatrix.New). This is
	// the default.
	AllocHeap AllocMode = iota
	// AllocMmap backs the matrix with an anonymous, huge-page-advised mmap
	// region (bitmatrix.NewMmapped), for result matrices too large to
	// comfortably allocate through the normal heap. Linux-only; its
	// failure surfaces as KindAllocation the same way AllocHeap's does.
	AllocMmap
)

// Config is the runtime configuration the original encoded as
// compile-time preprocessor switches (spec §9's Design Note: "replace
// with runtime configuration enumerated once at driver entry").
type Config struct {
	Combine  CombineMode
	Parallel ParallelMode
	Widen    WidenMode
	Alloc    AllocMode
}

// widen reports whether this Config widens endpoints.
func (c Config) widen() bool { return c.Widen == Superset }
