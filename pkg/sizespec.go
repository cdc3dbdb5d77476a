package dupescan

import (
	"fmt"
)

// SizeSpec is a parsed size predicate. "-500" accepts files smaller than 500
// bytes, "+200M" files larger than 200 MiB, "500K" files of exactly 512000
// bytes. A nil SizeSpec accepts everything.
type SizeSpec struct {
	Mode  byte // '<', '>' or '='
	Bytes int64
}

// ParseSizeSpec parses a size specification with an optional +/- prefix and
// K/M/G suffix. Parse failures surface before any scan begins.
func ParseSizeSpec(spec string) (*SizeSpec, error) {
	if spec == "" {
		return nil, fmt.Errorf("empty size specification")
	}

	mode := byte('=')
	rest := spec
	switch spec[0] {
	case '+':
		mode = '>'
		rest = spec[1:]
	case '-':
		mode = '<'
		rest = spec[1:]
	}

	if rest == "" {
		return nil, fmt.Errorf("size specification missing numeric value: %s", spec)
	}

	size, err := ParseHumanSize(rest)
	if err != nil {
		return nil, fmt.Errorf("invalid size specification %q: %w", spec, err)
	}

	return &SizeSpec{Mode: mode, Bytes: size}, nil
}

// Matches reports whether a file of the given size passes the predicate
func (ss *SizeSpec) Matches(size int64) bool {
	if ss == nil {
		return true
	}
	switch ss.Mode {
	case '<':
		return size < ss.Bytes
	case '>':
		return size > ss.Bytes
	default:
		return size == ss.Bytes
	}
}

// String renders the spec in its command-line form
func (ss *SizeSpec) String() string {
	switch ss.Mode {
	case '<':
		return "-" + FormatSize(ss.Bytes)
	case '>':
		return "+" + FormatSize(ss.Bytes)
	default:
		return FormatSize(ss.Bytes)
	}
}
