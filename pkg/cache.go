package dupescan

// metaEntry holds the memoized metadata for one file. sum stays nil until a
// digest has been requested; failed computations are never cached.
type metaEntry struct {
	size     int64
	haveSize bool
	sum      []byte
}

// MetadataCache memoizes per-file length and full-content digest so repeated
// comparisons against the same file are O(1) after the first computation.
// One cache is constructed per run and passed to every component that needs
// it; entries live for the run, there is no eviction or invalidation.
//
// The cache is not safe for concurrent use. Runs are single-threaded; a
// parallel caller would need to guard population so each key is computed at
// most once.
type MetadataCache struct {
	algorithm  *HashAlgorithm
	bufferSize int
	entries    map[fileKey]*metaEntry
}

// NewMetadataCache creates a cache that digests content with the given
// algorithm using a bounded read buffer
func NewMetadataCache(algorithm *HashAlgorithm, bufferSize int) *MetadataCache {
	if bufferSize <= 0 {
		bufferSize = DefaultReadBufferSize
	}
	return &MetadataCache{
		algorithm:  algorithm,
		bufferSize: bufferSize,
		entries:    make(map[fileKey]*metaEntry),
	}
}

// Algorithm returns the digest algorithm this cache computes checksums with
func (mc *MetadataCache) Algorithm() *HashAlgorithm {
	return mc.algorithm
}

// BufferSize returns the read buffer size used for digest computation
func (mc *MetadataCache) BufferSize() int {
	return mc.bufferSize
}

func (mc *MetadataCache) entry(key fileKey) *metaEntry {
	e, ok := mc.entries[key]
	if !ok {
		e = &metaEntry{}
		mc.entries[key] = e
	}
	return e
}

// Length returns the memoized byte length of the file. The length comes from
// the stat performed when the handle was built; files are assumed immutable
// during a scan.
func (mc *MetadataCache) Length(fh *FileHandle) (int64, error) {
	e := mc.entry(fh.Identity())
	if !e.haveSize {
		e.size = fh.Size
		e.haveSize = true
	}
	return e.size, nil
}

// Checksum returns the memoized full-content digest of the file, computing
// it with one sequential read on first request. An I/O failure propagates to
// the caller and leaves the entry uncached, so a retry recomputes.
func (mc *MetadataCache) Checksum(fh *FileHandle) ([]byte, error) {
	e := mc.entry(fh.Identity())
	if e.sum == nil {
		sum, err := HashFile(fh.Path, mc.algorithm, mc.bufferSize)
		if err != nil {
			return nil, err
		}
		VerboseLog(2, "computed %s digest for %s", mc.algorithm.Name, fh.Path)
		e.sum = sum
	}
	return e.sum, nil
}
