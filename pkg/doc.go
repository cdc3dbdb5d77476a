// Package dupescan provides directory scanning and duplicate file detection
// with configurable comparison precision, trading accuracy for speed.
//
// # Core API
//
// Scan a directory and group duplicate files:
//
//	scanner := dupescan.NewScanner("/path/to/dir", true)
//	files, err := scanner.Scan()
//
//	cache := dupescan.NewMetadataCache(algorithm, bufferSize)
//	comparator := dupescan.NewComparator(dupescan.PrecisionByte, cache)
//	groups, err := dupescan.NewGrouper(comparator).FindDuplicates(files)
//
// # Precision
//
// Three comparison tiers are available:
//   - PrecisionLength: file length only (fast, accepts false positives)
//   - PrecisionChecksum: length + content digest, with a head/tail window
//     pre-check for very large files
//   - PrecisionByte: length + exact byte-by-byte comparison (the default)
//
// # Configuration
//
// Defaults (precision, digest algorithm, read buffer size) are read from an
// ini config file, see LoadConfig. Enable diagnostic output with:
//
//	dupescan.SetVerboseLevel(2)
//	dupescan.SetDebugFlags("scan,compare")
//
// # Note on Internal API
//
// Types like fileKey and metaEntry are internal implementation details and
// may change in future versions. External consumers should primarily use
// Scanner, Comparator, Grouper, MetadataCache, ReportWriter and the result
// type DuplicateGroup.
package dupescan
