// Package extent defines the axis-aligned hyperrectangles matched by
// package matching: Endpoint, Extent, and Dataset (spec §3).
package extent

import "github.com/grailbio/sortmatch/space"

// MaxDimensions is the largest Dataset.Dimensions that the matching
// driver accepts. The original algorithm needed this for stack-allocated
// per-dimension arrays in its driver; here Extent.Endpoints is a
// heap-allocated slice and this package does not check its length
// against the constant, so lifting it is a matter of raising the constant.
const MaxDimensions = 3

// Endpoint is the lower/upper bound pair of an extent in one dimension.
// Invariant: Lower <= Upper.
type Endpoint[T space.Value] struct {
	Lower T
	Upper T
}

// Extent is one axis-aligned hyperrectangle: an identifier plus one
// Endpoint per dimension.
type Extent[T space.Value] struct {
	ID        uint32
	Endpoints []Endpoint[T]
}

// Overlaps reports whether e and o overlap in every one of the first dims
// dimensions. Two closed intervals [a,b] and [c,d] overlap iff a <= d and
// c <= b.
func (e Extent[T]) Overlaps(o Extent[T], dims int) bool {
	for d := 0; d < dims; d++ {
		ed, od := e.Endpoints[d], o.Endpoints[d]
		if ed.Lower > od.Upper || od.Lower > ed.Upper {
			return false
		}
	}
	return true
}

// Dataset is the matching problem's input: a dimensionality and the two
// ordered extent sequences to cross-match.
type Dataset[T space.Value] struct {
	Dimensions    int
	Updates       []Extent[T]
	Subscriptions []Extent[T]
}
