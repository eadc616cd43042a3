package bitmatrix

// Not inverts every word of v in place, the Go equivalent of
// vector_bitwise_not from 03lowmem/src/utils.c. Called with the full
// Words() slice, it inverts the whole matrix in one pass.
func Not(v []uint32) {
	for i := range v {
		v[i] = ^v[i]
	}
}

// And computes dst &= src word-wise, the equivalent of
// vector_bitwise_and. len(src) must be >= len(dst); only len(dst) words
// are touched.
func And(dst, src []uint32) {
	for i := range dst {
		dst[i] &= src[i]
	}
}

// Or computes dst |= src word-wise, the equivalent of vector_bitwise_or.
// len(src) must be >= len(dst); only len(dst) words are touched.
func Or(dst, src []uint32) {
	for i := range dst {
		dst[i] |= src[i]
	}
}

// Copy overwrites dst with src word-wise. len(src) must be >= len(dst).
func Copy(dst, src []uint32) {
	copy(dst, src)
}
