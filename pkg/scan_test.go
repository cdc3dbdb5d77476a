package dupescan

import (
	"os"
	"path/filepath"
	"testing"
)

func mustWrite(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func relPaths(files []*FileHandle) []string {
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		paths = append(paths, fh.RelPath)
	}
	return paths
}

func assertPaths(t *testing.T, files []*FileHandle, expected []string) {
	t.Helper()
	got := relPaths(files)
	if len(got) != len(expected) {
		t.Fatalf("Expected files %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Expected file %d to be %s, got %s", i, expected[i], got[i])
		}
	}
}

func TestScanner_FlatIgnoresSubdirectories(t *testing.T) {
	tempDir := t.TempDir()
	mustWrite(t, filepath.Join(tempDir, "b.txt"), []byte("bbb"))
	mustWrite(t, filepath.Join(tempDir, "a.txt"), []byte("aaa"))
	mustWrite(t, filepath.Join(tempDir, "sub", "c.txt"), []byte("ccc"))

	files, err := NewScanner(tempDir, false).Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	assertPaths(t, files, []string{"a.txt", "b.txt"})
}

func TestScanner_RecurseFindsNestedFiles(t *testing.T) {
	tempDir := t.TempDir()
	mustWrite(t, filepath.Join(tempDir, "top.txt"), []byte("top"))
	mustWrite(t, filepath.Join(tempDir, "sub", "nested.txt"), []byte("nested"))
	mustWrite(t, filepath.Join(tempDir, "sub", "deeper", "deep.txt"), []byte("deep"))

	files, err := NewScanner(tempDir, true).Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	assertPaths(t, files, []string{
		filepath.Join("sub", "deeper", "deep.txt"),
		filepath.Join("sub", "nested.txt"),
		"top.txt",
	})
}

func TestScanner_OrderIsDeterministic(t *testing.T) {
	tempDir := t.TempDir()
	for _, name := range []string{"zz.txt", "aa.txt", "mm.txt"} {
		mustWrite(t, filepath.Join(tempDir, name), []byte(name))
	}

	first, err := NewScanner(tempDir, false).Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	second, err := NewScanner(tempDir, false).Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	assertPaths(t, first, []string{"aa.txt", "mm.txt", "zz.txt"})
	assertPaths(t, second, relPaths(first))
}

func TestScanner_SizeFilterExcludesAll(t *testing.T) {
	tempDir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		mustWrite(t, filepath.Join(tempDir, name), []byte("hello")) // 5 bytes each
	}

	scanner := NewScanner(tempDir, false)
	spec, err := ParseSizeSpec("+10")
	if err != nil {
		t.Fatalf("ParseSizeSpec failed: %v", err)
	}
	scanner.Size = spec

	files, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expected size filter +10 to exclude all 5-byte files, got %v", relPaths(files))
	}
}

func TestScanner_RegexFilter(t *testing.T) {
	tempDir := t.TempDir()
	mustWrite(t, filepath.Join(tempDir, "notes.txt"), []byte("1"))
	mustWrite(t, filepath.Join(tempDir, "more.txt"), []byte("2"))
	mustWrite(t, filepath.Join(tempDir, "app.log"), []byte("3"))
	mustWrite(t, filepath.Join(tempDir, "daemon.log"), []byte("4"))

	t.Run("plain match", func(t *testing.T) {
		scanner := NewScanner(tempDir, false)
		filter, err := NewNameFilter(`.*\.txt`, false)
		if err != nil {
			t.Fatalf("NewNameFilter failed: %v", err)
		}
		scanner.Name = filter

		files, err := scanner.Scan()
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		assertPaths(t, files, []string{"more.txt", "notes.txt"})
	})

	t.Run("inverted match leaves only logs", func(t *testing.T) {
		scanner := NewScanner(tempDir, false)
		filter, err := NewNameFilter(`.*\.txt`, true)
		if err != nil {
			t.Fatalf("NewNameFilter failed: %v", err)
		}
		scanner.Name = filter

		files, err := scanner.Scan()
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		assertPaths(t, files, []string{"app.log", "daemon.log"})
	})
}

func TestScanner_IgnoreFilePatterns(t *testing.T) {
	tempDir := t.TempDir()
	mustWrite(t, filepath.Join(tempDir, IgnoreFileName), []byte("# skip build output\n^build/\n\\.tmp$\n"))
	mustWrite(t, filepath.Join(tempDir, "keep.txt"), []byte("keep"))
	mustWrite(t, filepath.Join(tempDir, "scratch.tmp"), []byte("tmp"))
	mustWrite(t, filepath.Join(tempDir, "build", "out.bin"), []byte("out"))

	files, err := NewScanner(tempDir, true).Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// The ignore file itself is never a candidate either
	assertPaths(t, files, []string{"keep.txt"})
}

func TestScanner_NestedIgnoreFileNameIsCandidate(t *testing.T) {
	tempDir := t.TempDir()
	mustWrite(t, filepath.Join(tempDir, IgnoreFileName), []byte("# nothing ignored\n"))
	mustWrite(t, filepath.Join(tempDir, "a.txt"), []byte("a"))
	mustWrite(t, filepath.Join(tempDir, "sub", IgnoreFileName), []byte("not a pattern file here"))

	files, err := NewScanner(tempDir, true).Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// Only the root's ignore file is special; the nested namesake is an
	// ordinary candidate
	assertPaths(t, files, []string{"a.txt", filepath.Join("sub", IgnoreFileName)})
}

func TestScanner_InvalidIgnorePatternFailsScan(t *testing.T) {
	tempDir := t.TempDir()
	mustWrite(t, filepath.Join(tempDir, IgnoreFileName), []byte("[unclosed\n"))
	mustWrite(t, filepath.Join(tempDir, "a.txt"), []byte("a"))

	if _, err := NewScanner(tempDir, false).Scan(); err == nil {
		t.Error("Expected error for invalid ignore pattern, got none")
	}
}

func TestScanner_SkipsSymlinks(t *testing.T) {
	tempDir := t.TempDir()
	mustWrite(t, filepath.Join(tempDir, "real.txt"), []byte("real"))
	if err := os.Symlink(filepath.Join(tempDir, "real.txt"), filepath.Join(tempDir, "link.txt")); err != nil {
		t.Skipf("Symlinks not supported: %v", err)
	}

	files, err := NewScanner(tempDir, false).Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	assertPaths(t, files, []string{"real.txt"})
}

func TestScanner_MissingRoot(t *testing.T) {
	if _, err := NewScanner(filepath.Join(t.TempDir(), "nope"), false).Scan(); err == nil {
		t.Error("Expected error for missing scan root, got none")
	}
}

func TestScanner_RootIsFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "file.txt")
	mustWrite(t, path, []byte("not a dir"))

	if _, err := NewScanner(path, false).Scan(); err == nil {
		t.Error("Expected error for non-directory scan root, got none")
	}
}

func TestNameFilter_NilAcceptsAll(t *testing.T) {
	var filter *NameFilter
	if !filter.Match("anything.txt") {
		t.Error("Nil filter should accept every name")
	}
}
