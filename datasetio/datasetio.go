// Package datasetio loads extent.Dataset values from a line-oriented text
// format, grounded on interval.NewBEDUnion/NewBEDUnionFromPath's split
// between a reader-based loader and a path-based wrapper that resolves
// remote paths and transparent gzip (interval/bedunion.go).
//
// Format: the first non-blank, non-comment line is "dims". Every
// following non-blank, non-comment line is either
//
//	U id lo0 hi0 [lo1 hi1 [lo2 hi2]]
//	S id lo0 hi0 [lo1 hi1 [lo2 hi2]]
//
// declaring one update or subscription extent with dims (lo, hi) pairs.
// Lines beginning with '#' are comments. Dimension 0's lo/hi tokens may
// be a chromosome name instead of a number when a *sam.Header is
// supplied to LoadDatasetFromPath, resolved the way
// interval.BEDUnion.nameToIDData resolves BED chromosome names against
// a header's reference list.
package datasetio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/sortmatch/extent"
	"github.com/grailbio/sortmatch/space"
	"github.com/klauspost/compress/gzip"
)

// chrResolver maps chromosome names appearing in dimension-0 tokens to
// their SAM reference ID, mirroring BEDUnion's name-to-ID table.
type chrResolver map[string]int

func newChrResolver(header *sam.Header) chrResolver {
	if header == nil {
		return nil
	}
	m := make(chrResolver, len(header.Refs()))
	for _, ref := range header.Refs() {
		m[ref.Name()] = ref.ID()
	}
	return m
}

func parseValue[T space.Value](tok string, chrs chrResolver) (T, error) {
	var zero T
	if chrs != nil {
		if id, ok := chrs[tok]; ok {
			return convertInt[T](id), nil
		}
	}
	switch any(zero).(type) {
	case int32:
		n, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return zero, err
		}
		return any(int32(n)).(T), nil
	case int64:
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return zero, err
		}
		return any(n).(T), nil
	case float32:
		n, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return zero, err
		}
		return any(float32(n)).(T), nil
	case float64:
		n, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return zero, err
		}
		return any(n).(T), nil
	}
	return zero, errors.E(errors.Invalid, "datasetio: unsupported space.Value type")
}

func convertInt[T space.Value](n int) T {
	var zero T
	switch any(zero).(type) {
	case int32:
		return any(int32(n)).(T)
	case int64:
		return any(int64(n)).(T)
	case float32:
		return any(float32(n)).(T)
	case float64:
		return any(float64(n)).(T)
	}
	return zero
}

// LoadDataset reads a Dataset from r. header, if non-nil, enables
// chromosome-name resolution for dimension 0's tokens.
func LoadDataset[T space.Value](r io.Reader, header *sam.Header) (extent.Dataset[T], error) {
	chrs := newChrResolver(header)
	scanner := bufio.NewScanner(r)

	var ds extent.Dataset[T]
	haveDims := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !haveDims {
			d, err := strconv.Atoi(line)
			if err != nil {
				return ds, errors.E(errors.Invalid, "datasetio: bad dimension count", lineNo, err)
			}
			ds.Dimensions = d
			haveDims = true
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || (len(fields)-2)%2 != 0 {
			return ds, errors.E(errors.Invalid, "datasetio: malformed extent line", lineNo, line)
		}
		kind := fields[0]
		id, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return ds, errors.E(errors.Invalid, "datasetio: bad id", lineNo, err)
		}
		nDims := (len(fields) - 2) / 2
		e := extent.Extent[T]{ID: uint32(id), Endpoints: make([]extent.Endpoint[T], nDims)}
		for d := 0; d < nDims; d++ {
			var chrForDim chrResolver
			if d == 0 {
				chrForDim = chrs
			}
			lo, err := parseValue[T](fields[2+2*d], chrForDim)
			if err != nil {
				return ds, errors.E(errors.Invalid, "datasetio: bad lower bound", lineNo, err)
			}
			hi, err := parseValue[T](fields[3+2*d], chrForDim)
			if err != nil {
				return ds, errors.E(errors.Invalid, "datasetio: bad upper bound", lineNo, err)
			}
			e.Endpoints[d] = extent.Endpoint[T]{Lower: lo, Upper: hi}
		}
		switch kind {
		case "U":
			ds.Updates = append(ds.Updates, e)
		case "S":
			ds.Subscriptions = append(ds.Subscriptions, e)
		default:
			return ds, errors.E(errors.Invalid, "datasetio: unknown line kind", lineNo, kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return ds, errors.E(errors.Internal, "datasetio: scan failed", err)
	}
	if !haveDims {
		return ds, errors.E(errors.Invalid, "datasetio: missing dimension count")
	}
	return ds, nil
}

// LoadDatasetFromPath is a wrapper for LoadDataset that opens path through
// github.com/grailbio/base/file (so s3:// and other remote schemes work
// the same as a local path) and transparently decompresses it when
// github.com/grailbio/base/fileio.DetermineType reports gzip, exactly as
// interval.NewBEDUnionFromPath does for BED files.
func LoadDatasetFromPath[T space.Value](path string, header *sam.Header) (ds extent.Dataset[T], err error) {
	ctx := vcontext.Background()
	var f file.File
	if f, err = file.Open(ctx, path); err != nil {
		return ds, errors.E(errors.NotExist, "datasetio: open failed", path, err)
	}
	defer func() {
		if cerr := f.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	reader := io.Reader(f.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		gz, gerr := gzip.NewReader(reader)
		if gerr != nil {
			return ds, errors.E(errors.Invalid, "datasetio: gzip open failed", path, gerr)
		}
		defer gz.Close()
		reader = gz
	}
	return LoadDataset[T](reader, header)
}
