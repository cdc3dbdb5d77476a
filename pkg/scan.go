package dupescan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// NameFilter matches file base names against a regular expression,
// optionally inverted. A nil filter accepts everything.
type NameFilter struct {
	Pattern *regexp.Regexp
	Invert  bool
}

// NewNameFilter compiles expr into a name filter. Compile failures surface
// before any scan begins.
func NewNameFilter(expr string, invert bool) (*NameFilter, error) {
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", expr, err)
	}
	return &NameFilter{Pattern: pattern, Invert: invert}, nil
}

// Match reports whether the base name passes the filter
func (nf *NameFilter) Match(name string) bool {
	if nf == nil {
		return true
	}
	matched := nf.Pattern.MatchString(name)
	if nf.Invert {
		return !matched
	}
	return matched
}

// Scanner walks one directory tree and produces the ordered, filtered file
// list the grouper consumes. Filters that are left nil accept all files.
type Scanner struct {
	Root    string
	Recurse bool
	Size    *SizeSpec
	Name    *NameFilter

	ignore *IgnoreManager
}

// NewScanner creates a scanner for the given root directory
func NewScanner(root string, recurse bool) *Scanner {
	return &Scanner{
		Root:    root,
		Recurse: recurse,
		ignore:  NewIgnoreManager(root),
	}
}

// newFileSkiplist builds a skiplist of file handles keyed by relative path.
// The item size callback is a serialization hint the scanner never uses.
func newFileSkiplist() *zcsl.ZeroCopySkiplist[FileHandle, string, string] {
	return zcsl.MakeZeroCopySkiplist[FileHandle, string, string](
		16,
		func(fh *FileHandle) string { return fh.RelPath },
		func(fh *FileHandle) int { return len(fh.RelPath) },
		func(a, b string) int { return strings.Compare(a, b) },
	)
}

// Scan walks the root and returns the eligible regular files ordered by
// relative path, so the list handed to the grouper is deterministic
// regardless of readdir order
func (s *Scanner) Scan() ([]*FileHandle, error) {
	defer VerboseEnter()()

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scan root %s: %w", s.Root, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", s.Root)
	}

	if err := s.ignore.LoadIgnorePatterns(); err != nil {
		return nil, err
	}

	skiplist := newFileSkiplist()

	if s.Recurse {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == root {
					return nil
				}
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					return relErr
				}
				if s.ignore.ShouldIgnore(rel) {
					VerboseLog(2, "ignoring directory %s", rel)
					return fs.SkipDir
				}
				return nil
			}
			return s.visit(skiplist, root, path, d)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", s.Root, err)
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", s.Root, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if err := s.visit(skiplist, root, filepath.Join(root, entry.Name()), entry); err != nil {
				return nil, err
			}
		}
	}

	files := make([]*FileHandle, 0, skiplist.Length())
	for node := skiplist.First(); node != nil; node = node.Next() {
		files = append(files, node.Item())
	}

	VerboseLog(1, "scan found %d candidate files under %s", len(files), root)

	return files, nil
}

// visit applies the filters to one directory entry and records it when eligible
func (s *Scanner) visit(skiplist *zcsl.ZeroCopySkiplist[FileHandle, string, string], root, path string, d fs.DirEntry) error {
	if !d.Type().IsRegular() {
		return nil // symlinks, sockets, devices are never candidates
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return fmt.Errorf("failed to relativize %s: %w", path, err)
	}

	// Only the scan root's ignore file is special; a nested file that
	// happens to share the name is an ordinary candidate
	if rel == IgnoreFileName {
		return nil
	}

	if s.ignore.ShouldIgnore(rel) {
		VerboseLog(2, "ignoring %s", rel)
		return nil
	}

	name := d.Name()
	if !s.Name.Match(name) {
		if IsDebugEnabled("scan") {
			VerboseLog(3, "visit: %s rejected by name filter", rel)
		}
		return nil
	}

	fh, err := NewFileHandle(path, rel)
	if err != nil {
		return err
	}

	if !s.Size.Matches(fh.Size) {
		if IsDebugEnabled("scan") {
			VerboseLog(3, "visit: %s rejected by size filter (size %d)", rel, fh.Size)
		}
		return nil
	}

	if IsDebugEnabled("scan") {
		VerboseLog(3, "visit: accepted %s (size %d)", rel, fh.Size)
	}

	skiplist.Insert(fh, ScanContext)
	return nil
}
