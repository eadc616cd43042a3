//go:build linux

package bitmatrix

import (
	"unsafe"

	"github.com/grailbio/base/errors"
	"golang.org/x/sys/unix"
)

// mmapped backs a BitMatrix with an anonymous mmap region instead of a
// Go slice allocation, for result matrices too large to comfortably
// allocate through the normal heap. Grounded on fusion/kmer_index.go's
// table allocator.
type mmapped struct {
	raw []byte
}

// NewMmapped allocates a rows x cols BitMatrix backed by an anonymous,
// huge-page-advised mmap region. Returns a KindAllocation-classified
// error (via errors.Internal; package matching re-wraps it with
// KindAllocation) if the mmap call fails; a failed madvise is ignored.
func NewMmapped(rows, cols int) (*BitMatrix, error) {
	wpr := WordsForBits(cols)
	total := rows * wpr
	size := total * 4
	if size == 0 {
		size = 4
	}
	raw, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.E(errors.Internal, "bitmatrix.NewMmapped: mmap failed", err)
	}
	// Best-effort: huge pages reduce TLB pressure for large matrices, but
	// their absence doesn't make the region unusable.
	_ = unix.Madvise(raw, unix.MADV_HUGEPAGE)

	words := unsafe.Slice((*uint32)(unsafe.Pointer(&raw[0])), total)
	return &BitMatrix{
		words:       words,
		Rows:        rows,
		Cols:        cols,
		WordsPerRow: wpr,
	}, nil
}

// Unmap releases the mmap region backing m. Only valid for matrices
// returned by NewMmapped; calling it on a normally-allocated BitMatrix is
// a programming error since its words were never mmapped.
func Unmap(m *BitMatrix) error {
	if len(m.words) == 0 {
		return nil
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&m.words[0])), len(m.words)*4)
	return unix.Munmap(raw)
}
