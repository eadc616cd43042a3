// Package sweep implements the per-dimension sort-matching kernel
// (spec §4.2, §4.3): building a dimension's sorted endpoint-event list
// and sweeping it into a per-update non-overlap bitset.
package sweep

import (
	"sort"

	"github.com/grailbio/sortmatch/extent"
	"github.com/grailbio/sortmatch/space"
)

// Kind distinguishes which of the two extent sequences an EndpointEvent
// belongs to. The original C source folded this into a biased id
// (update ids offset by N_s) to avoid storing an extra field; we keep an
// explicit tag instead, per the Design Notes in spec.md §9 ("implementers
// may keep [the biased form] for cache footprint but must document it" —
// we chose the explicit form for clarity; the tag is one byte, but with
// alignment padding it makes each event 4 bytes larger for 32-bit
// points and 8 bytes larger for 64-bit points).
type Kind uint8

const (
	Subscription Kind = iota
	Update
)

// EndpointEvent is one sortable endpoint: which extent it came from, its
// polarity, and its position on the sweep axis.
type EndpointEvent[T space.Value] struct {
	Kind    Kind
	ID      uint32
	IsLower bool
	Point   T
}

// BuildEndpointList materializes the 2*(len(updates)+len(subs)) endpoint
// events for dimension dim, widening by one increment in each direction
// when widen is true (spec §4.2's SUPERSET mode).
func BuildEndpointList[T space.Value](subs, updates []extent.Extent[T], dim int, widen bool) []EndpointEvent[T] {
	events := make([]EndpointEvent[T], 0, 2*(len(subs)+len(updates)))
	events = appendEvents(events, Subscription, subs, dim, widen)
	events = appendEvents(events, Update, updates, dim, widen)
	return events
}

func appendEvents[T space.Value](events []EndpointEvent[T], kind Kind, extents []extent.Extent[T], dim int, widen bool) []EndpointEvent[T] {
	min, max, inc := space.Min[T](), space.Max[T](), space.Inc[T]()
	for i, e := range extents {
		ep := e.Endpoints[dim]
		lower, upper := ep.Lower, ep.Upper
		if widen {
			if lower > min {
				lower -= inc
			}
			if upper < max {
				upper += inc
			}
		}
		events = append(events,
			EndpointEvent[T]{Kind: kind, ID: uint32(i), IsLower: true, Point: lower},
			EndpointEvent[T]{Kind: kind, ID: uint32(i), IsLower: false, Point: upper},
		)
	}
	return events
}

// Sort orders events by Point ascending. In non-superset mode, ties are
// broken lower-before-upper so a subscription's upper event is never
// moved into the "before" set ahead of a coincident update's lower
// event (spec §4.3 step 1). In superset mode any tie order is accepted,
// so plain sort.Slice (not required to be stable) is used either way.
func Sort[T space.Value](events []EndpointEvent[T], widen bool) {
	if widen {
		sort.Slice(events, func(i, j int) bool {
			return events[i].Point < events[j].Point
		})
		return
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Point != events[j].Point {
			return events[i].Point < events[j].Point
		}
		if events[i].IsLower != events[j].IsLower {
			return events[i].IsLower
		}
		return false
	})
}
