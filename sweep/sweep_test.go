package sweep

import (
	"encoding/binary"
	"testing"

	"github.com/grailbio/sortmatch/bitmatrix"
	"github.com/grailbio/sortmatch/extent"
)

// packEvents canonicalizes a sorted event list into bytes for
// bitmatrix.EndpointDedupKey. The event ID is left out: it is the
// extent's position in its input slice, so it differs between two
// orderings of the same extents. Since events is already in Point order,
// two equivalent endpoint lists built from differently-ordered input
// extents pack identically as long as no two events share a Point.
func packEvents(events []EndpointEvent[int32]) []byte {
	buf := make([]byte, 0, len(events)*6)
	for _, e := range events {
		var tmp [6]byte
		tmp[0] = byte(e.Kind)
		if e.IsLower {
			tmp[1] = 1
		}
		binary.BigEndian.PutUint32(tmp[2:6], uint32(e.Point))
		buf = append(buf, tmp[:]...)
	}
	return buf
}

func ep(lower, upper int32) extent.Endpoint[int32] {
	return extent.Endpoint[int32]{Lower: lower, Upper: upper}
}

func runOneDim(t *testing.T, subs, updates []extent.Extent[int32], widen bool) *bitmatrix.BitMatrix {
	t.Helper()
	out, err := bitmatrix.New(len(updates), len(subs))
	if err != nil {
		t.Fatal(err)
	}
	events := BuildEndpointList(subs, updates, 0, widen)
	Sort(events, widen)
	before := make([]uint32, out.WordsPerRow)
	after := make([]uint32, out.WordsPerRow)
	Run(events, out, before, after, len(updates), LowerCopy, nil)
	bitmatrix.Not(out.Words())
	return out
}

func TestSweepScenario1(t *testing.T) {
	updates := []extent.Extent[int32]{{Endpoints: []extent.Endpoint[int32]{ep(2, 5)}}}
	subs := []extent.Extent[int32]{
		{Endpoints: []extent.Endpoint[int32]{ep(0, 1)}},
		{Endpoints: []extent.Endpoint[int32]{ep(3, 4)}},
		{Endpoints: []extent.Endpoint[int32]{ep(6, 7)}},
	}
	m := runOneDim(t, subs, updates, false)
	want := []bool{false, true, false}
	for s, w := range want {
		if got := m.Get(0, s); got != w {
			t.Errorf("M[0][%d] = %v, want %v", s, got, w)
		}
	}
}

func TestSweepScenario2TouchingCounts(t *testing.T) {
	updates := []extent.Extent[int32]{{Endpoints: []extent.Endpoint[int32]{ep(0, 10)}}}
	subs := []extent.Extent[int32]{
		{Endpoints: []extent.Endpoint[int32]{ep(0, 0)}},
		{Endpoints: []extent.Endpoint[int32]{ep(10, 10)}},
		{Endpoints: []extent.Endpoint[int32]{ep(5, 5)}},
	}
	m := runOneDim(t, subs, updates, false)
	for s := 0; s < 3; s++ {
		if !m.Get(0, s) {
			t.Errorf("M[0][%d] = false, want true (touching counts as overlap)", s)
		}
	}
}

func TestSweepScenario3EachEndTouches(t *testing.T) {
	updates := []extent.Extent[int32]{
		{Endpoints: []extent.Endpoint[int32]{ep(0, 1)}},
		{Endpoints: []extent.Endpoint[int32]{ep(2, 3)}},
	}
	subs := []extent.Extent[int32]{{Endpoints: []extent.Endpoint[int32]{ep(1, 2)}}}
	m := runOneDim(t, subs, updates, false)
	if !m.Get(0, 0) || !m.Get(1, 0) {
		t.Error("both updates should touch the subscription at one endpoint")
	}
}

// TestSupersetEndpointListDedupKey exercises bitmatrix.EndpointDedupKey
// over widened (superset-mode) endpoint lists: two datasets that list
// the same subscriptions/updates in different input order must widen
// and sort to the identical canonical byte sequence, and so hash
// identically; a dataset with different extents must hash differently.
func TestSupersetEndpointListDedupKey(t *testing.T) {
	subsA := []extent.Extent[int32]{
		{ID: 0, Endpoints: []extent.Endpoint[int32]{ep(10, 20)}},
		{ID: 1, Endpoints: []extent.Endpoint[int32]{ep(30, 40)}},
	}
	subsB := []extent.Extent[int32]{
		{ID: 1, Endpoints: []extent.Endpoint[int32]{ep(30, 40)}},
		{ID: 0, Endpoints: []extent.Endpoint[int32]{ep(10, 20)}},
	}
	updates := []extent.Extent[int32]{{ID: 0, Endpoints: []extent.Endpoint[int32]{ep(0, 5)}}}

	eventsA := BuildEndpointList(subsA, updates, 0, true)
	Sort(eventsA, true)
	eventsB := BuildEndpointList(subsB, updates, 0, true)
	Sort(eventsB, true)

	keyA := bitmatrix.EndpointDedupKey(packEvents(eventsA))
	keyB := bitmatrix.EndpointDedupKey(packEvents(eventsB))
	if keyA != keyB {
		t.Errorf("equivalent endpoint lists in different input order produced different dedup keys: %x != %x", keyA, keyB)
	}

	subsC := []extent.Extent[int32]{
		{ID: 0, Endpoints: []extent.Endpoint[int32]{ep(100, 200)}},
	}
	eventsC := BuildEndpointList(subsC, updates, 0, true)
	Sort(eventsC, true)
	keyC := bitmatrix.EndpointDedupKey(packEvents(eventsC))
	if keyA == keyC {
		t.Error("different endpoint lists should not share a dedup key")
	}
}

func TestSweepEmptyUpdates(t *testing.T) {
	subs := []extent.Extent[int32]{{Endpoints: []extent.Endpoint[int32]{ep(0, 1)}}}
	m := runOneDim(t, subs, nil, false)
	if m.Rows != 0 {
		t.Errorf("Rows = %d, want 0", m.Rows)
	}
}
