package dupescan

import (
	"bytes"
	"os"
	"testing"
)

func newTestCache(t *testing.T) *MetadataCache {
	t.Helper()
	algorithm, err := GetHashAlgorithm("xxh64")
	if err != nil {
		t.Fatalf("GetHashAlgorithm failed: %v", err)
	}
	return NewMetadataCache(algorithm, 64)
}

func TestMetadataCache_Length(t *testing.T) {
	tempDir := t.TempDir()
	cache := newTestCache(t)

	fh := writeTestFile(t, tempDir, "a.txt", []byte("hello"))
	length, err := cache.Length(fh)
	if err != nil {
		t.Fatalf("Length failed: %v", err)
	}
	if length != 5 {
		t.Errorf("Expected length 5, got %d", length)
	}
}

func TestMetadataCache_ChecksumMemoized(t *testing.T) {
	tempDir := t.TempDir()
	cache := newTestCache(t)

	fh := writeTestFile(t, tempDir, "a.txt", []byte("hello"))

	first, err := cache.Checksum(fh)
	if err != nil {
		t.Fatalf("Checksum failed: %v", err)
	}

	// Rewrite the file; the cached digest must not change within a run
	if err := os.WriteFile(fh.Path, []byte("world"), 0644); err != nil {
		t.Fatalf("Failed to rewrite file: %v", err)
	}

	second, err := cache.Checksum(fh)
	if err != nil {
		t.Fatalf("Checksum after rewrite failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("Cached digest changed: %x vs %x", first, second)
	}
}

func TestMetadataCache_ErrorNotCached(t *testing.T) {
	tempDir := t.TempDir()
	cache := newTestCache(t)

	fh := writeTestFile(t, tempDir, "a.txt", []byte("hello"))
	if err := os.Remove(fh.Path); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}

	if _, err := cache.Checksum(fh); err == nil {
		t.Fatal("Expected error for vanished file, got none")
	}

	// Recreate the file; the failed computation must not have been cached
	if err := os.WriteFile(fh.Path, []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to recreate file: %v", err)
	}

	sum, err := cache.Checksum(fh)
	if err != nil {
		t.Fatalf("Checksum after recreate failed: %v", err)
	}
	if len(sum) != HashSizeXXH64 {
		t.Errorf("Expected %d byte digest, got %d", HashSizeXXH64, len(sum))
	}
}

func TestMetadataCache_DistinctPathsDistinctEntries(t *testing.T) {
	tempDir := t.TempDir()
	cache := newTestCache(t)

	a := writeTestFile(t, tempDir, "a.txt", []byte("hello"))
	b := writeTestFile(t, tempDir, "b.txt", []byte("world"))

	sumA, err := cache.Checksum(a)
	if err != nil {
		t.Fatalf("Checksum(a) failed: %v", err)
	}
	sumB, err := cache.Checksum(b)
	if err != nil {
		t.Fatalf("Checksum(b) failed: %v", err)
	}
	if bytes.Equal(sumA, sumB) {
		t.Error("Different content produced equal digests")
	}
}
