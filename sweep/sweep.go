package sweep

import (
	"sync"

	"github.com/grailbio/sortmatch/bitmatrix"
	"github.com/grailbio/sortmatch/space"
)

// LowerWrite selects how a lower-endpoint event is written into out[u]
// (spec §4.3's mode table). Upper-endpoint events always OR the "after"
// set into out[u]; only the lower-endpoint write strategy differs
// between two-matrix mode (Copy) and low-memory/threaded mode (Or).
type LowerWrite int

const (
	// LowerCopy overwrites out[u] with the "before" set (two-matrix mode,
	// where out starts the dimension zeroed).
	LowerCopy LowerWrite = iota
	// LowerOr ORs the "before" set into out[u] (low-memory and threaded
	// modes, which accumulate non-overlap bits across dimensions in
	// place).
	LowerOr
)

// Locks, when non-nil, is one mutex per update row, acquired around each
// write to out[u] (spec §5's row-level locking for the threaded mode).
// It is nil for the sequential sweeps used by two-matrix and low-memory
// combine modes, which never run concurrently with another writer of the
// same out.
type Locks []sync.Mutex

// NewLocks allocates n row mutexes.
func NewLocks(n int) Locks {
	return make(Locks, n)
}

// Run performs the single-dimension sweep (spec §4.3): consumes a sorted
// endpoint list for one dimension and writes, into each row u of out, the
// set of subscriptions proven not to overlap update u in this dimension.
//
// before and after are scratch bitvectors sized out.WordsPerRow; Run
// reinitializes them (before = all-zero, after = all-one) and owns them
// for the duration of the call, matching spec §5's scratch-ownership
// rule — the caller must not touch them concurrently.
//
// Events with Kind == Subscription address out's columns by their ID,
// and events with Kind == Update address out's rows by their ID.
// nUpdates is the number of updates; the sweep stops once all 2*nUpdates
// update events have been processed. events must already be sorted (see
// Sort).
func Run[T space.Value](events []EndpointEvent[T], out *bitmatrix.BitMatrix, before, after []uint32, nUpdates int, lower LowerWrite, locks Locks) {
	for i := range before {
		before[i] = 0
		after[i] = 0xFFFFFFFF
	}

	remaining := 2 * nUpdates
	for _, e := range events {
		if remaining == 0 {
			break
		}
		if e.Kind == Subscription {
			k := int(e.ID)
			word, mask := k/32, uint32(0x80000000>>uint(k%32))
			if e.IsLower {
				after[word] &^= mask
			} else {
				before[word] |= mask
			}
			continue
		}

		remaining--
		u := int(e.ID)
		if locks != nil {
			locks[u].Lock()
		}
		row := out.Row(u)
		if e.IsLower {
			switch lower {
			case LowerCopy:
				bitmatrix.Copy(row, before)
			case LowerOr:
				bitmatrix.Or(row, before)
			}
		} else {
			bitmatrix.Or(row, after)
		}
		if locks != nil {
			locks[u].Unlock()
		}
	}
}
