package matching

import (
	"encoding/binary"
	"math"

	"github.com/grailbio/sortmatch/bitmatrix"
	"github.com/grailbio/sortmatch/extent"
	"github.com/grailbio/sortmatch/space"
)

// fingerprint folds every extent in ds into a single farm-hash-derived
// value (via bitmatrix.FingerprintExtent) for the one-line driver log
// message, without hashing or logging the dataset's full contents.
func fingerprint[T space.Value](ds extent.Dataset[T]) uint64 {
	var acc uint64
	for _, e := range ds.Subscriptions {
		acc ^= bitmatrix.FingerprintExtent(e.ID, endpointBytes(e))
	}
	for _, e := range ds.Updates {
		acc ^= bitmatrix.FingerprintExtent(e.ID+1<<31, endpointBytes(e))
	}
	return acc
}

func endpointBytes[T space.Value](e extent.Extent[T]) []byte {
	buf := make([]byte, 0, len(e.Endpoints)*16)
	for _, ep := range e.Endpoints {
		buf = appendValueBytes(buf, ep.Lower)
		buf = appendValueBytes(buf, ep.Upper)
	}
	return buf
}

func appendValueBytes[T space.Value](buf []byte, v T) []byte {
	var bits uint64
	switch x := any(v).(type) {
	case int32:
		bits = uint64(uint32(x))
	case int64:
		bits = uint64(x)
	case float32:
		bits = uint64(math.Float32bits(x))
	case float64:
		bits = math.Float64bits(x)
	}
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], bits)
	return append(buf, tmp[:]...)
}
