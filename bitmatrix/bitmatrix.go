// Package bitmatrix implements the packed-bit result matrix (spec §4.1):
// an N_u x N_s matrix of bits, stored as N_u rows of ceil(N_s/32) 32-bit
// words, MSB-first within each word (bit k lives in word k/32 at mask
// 0x80000000 >> (k mod 32)).
//
// Because the matrix is one contiguous slice of words, a bulk op over
// rows*wordsPerRow words is equivalent to applying it to every cell at
// once; the combiner in package matching relies on that equivalence.
package bitmatrix

import (
	"strings"

	"github.com/blainsmith/seahash"
	"github.com/grailbio/base/errors"
)

// wordBits is the number of bits in one storage word.
const wordBits = 32

// WordsForBits returns ceil(bits/32), the number of 32-bit words needed
// to hold bits bits.
func WordsForBits(bits int) int {
	return (bits + wordBits - 1) / wordBits
}

// bitMask returns the MSB-first mask for bit k within its word.
func bitMask(k int) uint32 {
	return 0x80000000 >> uint(k%wordBits)
}

// BitMatrix is a dense rows x cols bit matrix, stored row-major as
// rows*WordsPerRow 32-bit words in a single contiguous slice.
type BitMatrix struct {
	words       []uint32
	Rows        int
	Cols        int
	WordsPerRow int
}

// New allocates a zero-initialized rows x cols BitMatrix. It returns an
// error built with github.com/grailbio/base/errors (Kind errors.Invalid;
// package matching wraps it as KindAllocation) only if rows or cols is
// negative or rows*wordsPerRow overflows int; Go slice
// allocation itself panics rather than returning an error for OOM, which
// this function does not attempt to recover from, matching the "driver
// does not swallow errors" rule of spec §7 — a panic here is a fatal
// condition, not a recoverable allocation error.
func New(rows, cols int) (*BitMatrix, error) {
	wpr := WordsForBits(cols)
	total := rows * wpr
	if rows < 0 || cols < 0 || (wpr != 0 && total/wpr != rows) {
		return nil, errors.E(errors.Invalid, "bitmatrix.New: invalid dimensions", rows, cols)
	}
	return &BitMatrix{
		words:       make([]uint32, total),
		Rows:        rows,
		Cols:        cols,
		WordsPerRow: wpr,
	}, nil
}

// Row returns the word slice backing row r. Mutating it mutates the
// matrix.
func (m *BitMatrix) Row(r int) []uint32 {
	start := r * m.WordsPerRow
	return m.words[start : start+m.WordsPerRow]
}

// Words returns the full contiguous backing slice, for bulk NOT/AND/OR
// over the entire matrix at once.
func (m *BitMatrix) Words() []uint32 {
	return m.words
}

// Get reports the bit at (row, col).
func (m *BitMatrix) Get(row, col int) bool {
	w := m.Row(row)[col/wordBits]
	return w&bitMask(col) != 0
}

// Set sets the bit at (row, col) to 1.
func (m *BitMatrix) Set(row, col int) {
	r := m.Row(row)
	r[col/wordBits] |= bitMask(col)
}

// String renders the matrix one row per line, each row's 32-bit words
// written MSB-first as 0/1 digits and separated by single spaces, mirroring the original's VERBOSE
// print_bitmatrix output (without the build-time #ifdef gate it lived
// behind in C — callers opt in by calling String() explicitly).
func (m *BitMatrix) String() string {
	var b strings.Builder
	for r := 0; r < m.Rows; r++ {
		row := m.Row(r)
		for i, w := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			for bit := 0; bit < wordBits; bit++ {
				if w&(0x80000000>>uint(bit)) != 0 {
					b.WriteByte('1')
				} else {
					b.WriteByte('0')
				}
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Checksum hashes the matrix's packed words with seahash, giving tests
// and driver diagnostics a cheap way to compare/log whole-matrix results
// without printing them. Unused trailing bits in the last word of each
// row (beyond Cols) are included in the hash as-is; per spec §8, their
// value is unspecified, so Checksum is only meaningful for comparing two
// matrices produced by the same code path (e.g. idempotence/mode-
// equivalence checks), not as a canonical content hash.
func (m *BitMatrix) Checksum() uint64 {
	buf := make([]byte, len(m.words)*4)
	for i, w := range m.words {
		buf[i*4+0] = byte(w >> 24)
		buf[i*4+1] = byte(w >> 16)
		buf[i*4+2] = byte(w >> 8)
		buf[i*4+3] = byte(w)
	}
	return seahash.Sum64(buf)
}
