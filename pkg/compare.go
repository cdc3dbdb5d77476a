package dupescan

import (
	"bytes"
	"fmt"
	"io"
)

// Precision selects how much work the comparator does before declaring two
// files identical. It is fixed for the lifetime of one run.
type Precision int

const (
	// PrecisionLength compares byte length only. Cheapest tier; accepts
	// false positives by design.
	PrecisionLength Precision = iota

	// PrecisionChecksum compares length and full-content digest, with a
	// head/tail window pre-check for very large files.
	PrecisionChecksum

	// PrecisionByte compares length and then every byte. No false
	// positives.
	PrecisionByte
)

// String returns the human-readable name of the precision tier
func (p Precision) String() string {
	switch p {
	case PrecisionLength:
		return "length"
	case PrecisionChecksum:
		return "checksum"
	case PrecisionByte:
		return "byte"
	default:
		return "unknown"
	}
}

// ParsePrecision converts a numeric precision level (0, 1 or 2) into a
// Precision value, rejecting anything outside the closed range
func ParsePrecision(level int) (Precision, error) {
	switch level {
	case 0:
		return PrecisionLength, nil
	case 1:
		return PrecisionChecksum, nil
	case 2:
		return PrecisionByte, nil
	default:
		return 0, fmt.Errorf("invalid precision level %d: must be 0, 1 or 2", level)
	}
}

// Comparator decides whether two files are identical at a fixed precision.
// The threshold and window fields default to the production constants and
// exist so the large-file path can be exercised with small fixtures.
type Comparator struct {
	precision Precision
	cache     *MetadataCache

	LargeFileThreshold int64
	PartialWindow      int64
	BufferSize         int
}

// NewComparator creates a comparator at the given precision backed by the
// given metadata cache
func NewComparator(precision Precision, cache *MetadataCache) *Comparator {
	return &Comparator{
		precision:          precision,
		cache:              cache,
		LargeFileThreshold: LargeFileThreshold,
		PartialWindow:      PartialWindowSize,
		BufferSize:         cache.BufferSize(),
	}
}

// Precision returns the tier this comparator operates at
func (c *Comparator) Precision() Precision {
	return c.precision
}

// Identical reports whether a and b have equal content under the active
// precision. Every tier requires equal length and returns without touching
// content when lengths differ.
func (c *Comparator) Identical(a, b *FileHandle) (bool, error) {
	lenA, err := c.cache.Length(a)
	if err != nil {
		return false, err
	}
	lenB, err := c.cache.Length(b)
	if err != nil {
		return false, err
	}
	if lenA != lenB {
		if IsDebugEnabled("compare") {
			VerboseLog(3, "Identical: %s vs %s rejected on length (%d vs %d)", a.RelPath, b.RelPath, lenA, lenB)
		}
		return false, nil
	}

	if IsDebugEnabled("compare") {
		VerboseLog(3, "Identical: %s vs %s equal length %d, comparing at %s precision", a.RelPath, b.RelPath, lenA, c.precision)
	}

	switch c.precision {
	case PrecisionLength:
		return true, nil

	case PrecisionChecksum:
		if lenA > c.LargeFileThreshold && lenB > c.LargeFileThreshold {
			match, err := c.partialEqual(a, b)
			if err != nil {
				return false, err
			}
			if !match {
				VerboseLog(2, "window pre-check rejected %s vs %s", a.Path, b.Path)
				return false, nil
			}
		}
		// The window pre-check can only reject early; a pass never
		// stands in for the full digest comparison.
		sumA, err := c.cache.Checksum(a)
		if err != nil {
			return false, err
		}
		sumB, err := c.cache.Checksum(b)
		if err != nil {
			return false, err
		}
		return bytes.Equal(sumA, sumB), nil

	case PrecisionByte:
		return c.byteStreamEqual(a, b)
	}

	return false, fmt.Errorf("invalid precision: %d", int(c.precision))
}

// partialEqual digests the first and last PartialWindow bytes of both files
// and reports whether both window digests match. Only called once both files
// exceed the large-file threshold with equal length, so the windows always
// fit without overlapping.
func (c *Comparator) partialEqual(a, b *FileHandle) (bool, error) {
	fileA, err := a.Open()
	if err != nil {
		return false, err
	}
	defer fileA.Close()

	fileB, err := b.Open()
	if err != nil {
		return false, err
	}
	defer fileB.Close()

	algorithm := c.cache.Algorithm()

	headA, err := hashFileWindow(fileA, algorithm, 0, c.PartialWindow)
	if err != nil {
		return false, err
	}
	headB, err := hashFileWindow(fileB, algorithm, 0, c.PartialWindow)
	if err != nil {
		return false, err
	}
	if !bytes.Equal(headA, headB) {
		return false, nil
	}

	tailA, err := hashFileWindow(fileA, algorithm, a.Size-c.PartialWindow, c.PartialWindow)
	if err != nil {
		return false, err
	}
	tailB, err := hashFileWindow(fileB, algorithm, b.Size-c.PartialWindow, c.PartialWindow)
	if err != nil {
		return false, err
	}

	return bytes.Equal(tailA, tailB), nil
}

// byteStreamEqual compares both files byte-for-byte in lock-step using
// bounded buffers, returning false at the first mismatching position. Both
// files are closed on every exit path.
func (c *Comparator) byteStreamEqual(a, b *FileHandle) (bool, error) {
	fileA, err := a.Open()
	if err != nil {
		return false, err
	}
	defer fileA.Close()

	fileB, err := b.Open()
	if err != nil {
		return false, err
	}
	defer fileB.Close()

	bufferSize := c.BufferSize
	if bufferSize <= 0 {
		bufferSize = DefaultReadBufferSize
	}
	bufA := make([]byte, bufferSize)
	bufB := make([]byte, bufferSize)

	for {
		nA, errA := io.ReadFull(fileA, bufA)
		if errA != nil && errA != io.EOF && errA != io.ErrUnexpectedEOF {
			return false, fmt.Errorf("failed to read from file %s: %w", a.Path, errA)
		}
		nB, errB := io.ReadFull(fileB, bufB)
		if errB != nil && errB != io.EOF && errB != io.ErrUnexpectedEOF {
			return false, fmt.Errorf("failed to read from file %s: %w", b.Path, errB)
		}

		if nA != nB {
			return false, nil
		}
		if !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}

		if errA != nil || errB != nil {
			// End of stream; lengths matched up front so a clean
			// lock-step EOF on both sides means equal content
			return errA != nil && errB != nil, nil
		}
	}
}
