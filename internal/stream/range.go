// Package stream serves media files over HTTP with single-range
// partial-content semantics.
package stream

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrIgnoreRange indicates a header that is absent or malformed in a way
	// the caller should ignore, falling back to full-content serving.
	ErrIgnoreRange = errors.New("range header ignored")

	// ErrUnsatisfiable indicates a syntactically valid range that cannot be
	// satisfied for the resource length (HTTP 416).
	ErrUnsatisfiable = errors.New("range not satisfiable")
)

// ByteRange is a validated inclusive byte interval within a resource.
// It is only ever constructed by ResolveRange, so Start <= End < size holds.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes the range covers.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ResolveRange parses a Range request header against a resource length.
//
// Only the single-range subset of the HTTP range spec is handled; in a
// comma-separated request everything after the first range is ignored.
// Malformed headers yield ErrIgnoreRange rather than an error response,
// matching the lenient behavior players rely on.
func ResolveRange(header string, size int64) (ByteRange, error) {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return ByteRange{}, ErrIgnoreRange
	}
	// First syntactic range only; multi-range is a documented limitation.
	if idx := strings.Index(spec, ","); idx >= 0 {
		spec = spec[:idx]
	}

	parts := strings.Split(spec, "-")
	if len(parts) != 2 {
		return ByteRange{}, ErrIgnoreRange
	}

	start, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || start < 0 {
		return ByteRange{}, ErrIgnoreRange
	}

	end := size - 1
	if endText := strings.TrimSpace(parts[1]); endText != "" {
		end, err = strconv.ParseInt(endText, 10, 64)
		if err != nil || end < 0 {
			return ByteRange{}, ErrIgnoreRange
		}
	}

	if end > size-1 {
		end = size - 1
	}
	if start > end || start >= size {
		return ByteRange{}, ErrUnsatisfiable
	}
	return ByteRange{Start: start, End: end}, nil
}
