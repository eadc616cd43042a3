package bitmatrix

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"
	"github.com/minio/highwayhash"
)

// FingerprintExtent folds one extent's id and packed endpoint bytes into
// a single farm hash, the same Hash64WithSeed call fusion/kmer_index.go
// makes over k-mer byte slices. Driver code uses this to produce a
// one-line per-dataset fingerprint for log messages, without hashing or
// logging the whole dataset.
func FingerprintExtent(id uint32, endpointBytes []byte) uint64 {
	buf := make([]byte, 4+len(endpointBytes))
	binary.BigEndian.PutUint32(buf, id)
	copy(buf[4:], endpointBytes)
	return farm.Hash64WithSeed(buf, 0)
}

// highwayKey is a fixed all-zero key: these dedup keys are never used
// cryptographically, only to group identical endpoint byte sequences in
// test fixtures, so a stable fixed key (not a per-process random one) is
// what gives repeatable test output.
var highwayKey = func() []byte {
	return make([]byte, 32)
}()

// EndpointDedupKey hashes a packed endpoint-event byte sequence with
// highwayhash, for deduping equivalent superset-mode test fixtures
// (two endpoint lists that differ only in event order but describe the
// same widened intervals hash identically once sorted into canonical
// form by the caller). Mirrors fusion/postprocess.go's use of
// highwayhash.Sum over a fixed-size key.
func EndpointDedupKey(packed []byte) [highwayhash.Size]byte {
	return highwayhash.Sum(packed, highwayKey)
}
