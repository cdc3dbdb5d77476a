package dupescan

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// FileHandle is a read-only reference to a regular file discovered during a
// scan. Size, Dev and Ino are captured at construction time; files are
// assumed immutable for the duration of one run.
type FileHandle struct {
	Path    string // absolute path
	RelPath string // path relative to the scan root, used for reporting
	Size    int64
	Dev     uint64
	Ino     uint64
}

// fileKey identifies a file for cache and claimed-set purposes. Identity is
// primarily the path; dev/ino disambiguate, they do not merge hardlinked
// paths into one entry.
type fileKey struct {
	Dev  uint64
	Ino  uint64
	Path string
}

// NewFileHandle stats path and builds a handle for it. relPath is the
// root-relative path used in report output.
func NewFileHandle(path, relPath string) (*FileHandle, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}

	return &FileHandle{
		Path:    path,
		RelPath: relPath,
		Size:    st.Size,
		Dev:     uint64(st.Dev),
		Ino:     uint64(st.Ino),
	}, nil
}

// Identity returns the cache/claimed-set key for this handle
func (fh *FileHandle) Identity() fileKey {
	return fileKey{Dev: fh.Dev, Ino: fh.Ino, Path: fh.Path}
}

// Open opens the underlying file for sequential reading
func (fh *FileHandle) Open() (*os.File, error) {
	file, err := os.Open(fh.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fh.Path, err)
	}
	return file, nil
}
