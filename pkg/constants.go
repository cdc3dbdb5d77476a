package dupescan

// Context constants for skiplist operations
const (
	ScanContext = "scan"
)

// File constants
const (
	ConfigFileName = "config"
	IgnoreFileName = ".dupescanignore"
)

// Large file handling constants
const (
	// LargeFileThreshold is the size above which the checksum tier runs the
	// head/tail window pre-check before computing a full digest.
	LargeFileThreshold int64 = 524288000

	// PartialWindowSize is the number of bytes digested from each end of a
	// large file by the pre-check. The threshold is larger than twice this
	// window, so the two windows never overlap.
	PartialWindowSize int64 = 5242880
)

// DefaultReadBufferSize bounds memory use during digest and byte comparison
const DefaultReadBufferSize = 2 * 1024 * 1024

// Hash type constants
const (
	HashTypeXXH64  uint16 = 1 // xxHash64 (8 bytes, non-cryptographic)
	HashTypeSHA1   uint16 = 2 // SHA-1 (20 bytes)
	HashTypeSHA256 uint16 = 3 // SHA-256 (32 bytes)
	HashTypeSHA512 uint16 = 4 // SHA-512 (64 bytes)
)

// Hash size constants
const (
	HashSizeXXH64  = 8  // xxHash64 digest size in bytes
	HashSizeSHA1   = 20 // SHA-1 hash size in bytes
	HashSizeSHA256 = 32 // SHA-256 hash size in bytes
	HashSizeSHA512 = 64 // SHA-512 hash size in bytes
)
