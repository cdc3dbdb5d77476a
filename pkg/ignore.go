package dupescan

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreManager handles ignore patterns loaded from the scan root. Patterns
// are regular expressions matched against root-relative paths, one per line,
// with # comments. A missing ignore file means nothing is ignored; the
// scanner never writes into the tree it scans.
type IgnoreManager struct {
	ignorePath string
	patterns   []*regexp.Regexp
	loaded     bool
}

// NewIgnoreManager creates an ignore manager for the given scan root
func NewIgnoreManager(root string) *IgnoreManager {
	return &IgnoreManager{
		ignorePath: filepath.Join(root, IgnoreFileName),
		patterns:   make([]*regexp.Regexp, 0),
	}
}

// LoadIgnorePatterns loads ignore patterns from the ignore file
func (im *IgnoreManager) LoadIgnorePatterns() error {
	if im.loaded {
		return nil // Already loaded
	}

	file, err := os.Open(im.ignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			im.loaded = true
			return nil
		}
		return fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pattern, err := regexp.Compile(line)
		if err != nil {
			return fmt.Errorf("invalid ignore pattern at line %d: %s - %w", lineNum, line, err)
		}

		im.patterns = append(im.patterns, pattern)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading ignore file: %w", err)
	}

	VerboseLog(2, "loaded %d ignore patterns from %s", len(im.patterns), im.ignorePath)

	im.loaded = true
	return nil
}

// ShouldIgnore checks if a root-relative path matches any ignore pattern
func (im *IgnoreManager) ShouldIgnore(relativePath string) bool {
	for _, pattern := range im.patterns {
		if pattern.MatchString(relativePath) {
			return true
		}
	}
	return false
}
