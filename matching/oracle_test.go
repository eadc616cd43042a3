package matching

import (
	"testing"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/sortmatch/extent"
)

// subKey orders subscriptions by (upper endpoint, id) in one dimension,
// for llrb.Tree. It gives oracleBeforeSet an ordering structure wholly
// independent of the sweep's own before/after bitvectors.
type subKey struct {
	upper int64
	id    uint32
}

func (k subKey) Compare(c llrb.Comparable) int {
	o := c.(subKey)
	if k.upper != o.upper {
		if k.upper < o.upper {
			return -1
		}
		return 1
	}
	if k.id != o.id {
		if k.id < o.id {
			return -1
		}
		return 1
	}
	return 0
}

// oracleBeforeSet walks an llrb.Tree of subscription (upper, id) pairs
// and returns the ids whose upper endpoint is strictly less than lower
// (the set the sweep's "before" bitvector is supposed to equal at the
// moment update u's lower endpoint is processed). This is a second,
// independently-built ordered index; TestOracleBeforeSetMatchesBruteForce
// checks it against a hand-computed set, and no test compares it with
// the sweep's bitvectors. Grounded on llrb.Tree's use as an
// ordered index in cmd/bio-bam-sort/sorter/sort.go and
// encoding/bampair/shard_info.go.
func oracleBeforeSet(subs []extent.Extent[int32], dim int, lower int32) map[uint32]bool {
	tree := llrb.Tree{}
	for i, s := range subs {
		tree.Insert(subKey{upper: int64(s.Endpoints[dim].Upper), id: uint32(i)})
	}
	before := map[uint32]bool{}
	tree.Do(func(item llrb.Comparable) bool {
		k := item.(subKey)
		if k.upper < int64(lower) {
			before[k.id] = true
		}
		return false
	})
	return before
}

func TestOracleBeforeSetMatchesBruteForce(t *testing.T) {
	subs := []extent.Extent[int32]{
		{Endpoints: []extent.Endpoint[int32]{{Lower: 0, Upper: 1}}},
		{Endpoints: []extent.Endpoint[int32]{{Lower: 3, Upper: 4}}},
		{Endpoints: []extent.Endpoint[int32]{{Lower: 6, Upper: 7}}},
	}
	got := oracleBeforeSet(subs, 0, 5)
	want := map[uint32]bool{0: true, 1: true}
	if len(got) != len(want) {
		t.Fatalf("oracleBeforeSet = %v, want %v", got, want)
	}
	for id := range want {
		if !got[id] {
			t.Errorf("oracleBeforeSet missing id %d", id)
		}
	}
}

// bruteForceOverlap computes the overlap matrix by the direct O(N_u *
// N_s * D) definition of spec §8 invariant 1, independent of the sweep
// algorithm entirely.
func bruteForceOverlap[T interface {
	~int32 | ~int64 | ~float32 | ~float64
}](updates, subs []extent.Extent[T], dims int) [][]bool {
	out := make([][]bool, len(updates))
	for u, ue := range updates {
		row := make([]bool, len(subs))
		for s, se := range subs {
			row[s] = ue.Overlaps(se, dims)
		}
		out[u] = row
	}
	return out
}
