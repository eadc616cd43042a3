//go:build !linux

package bitmatrix

import "github.com/grailbio/base/errors"

// NewMmapped is unsupported outside Linux; unix.Mmap/Madvise have no
// portable equivalent in this tree (mirrors fusion/kmer_index.go's own
// lack of a non-Linux fallback in the teacher).
func NewMmapped(rows, cols int) (*BitMatrix, error) {
	return nil, errors.E(errors.Internal, "bitmatrix.NewMmapped: unsupported on this platform")
}

// Unmap is unsupported outside Linux.
func Unmap(m *BitMatrix) error {
	return errors.E(errors.Internal, "bitmatrix.Unmap: unsupported on this platform")
}
