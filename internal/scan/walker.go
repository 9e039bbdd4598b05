package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Matcher is the strategy plugged into Walk. The manifest-aware and the
// name-only scans are the same traversal with different matchers.
type Matcher interface {
	// ShouldPrune reports directories the strategy refuses to enter by
	// name, independent of the shared path filter.
	ShouldPrune(name string) bool

	// OnEntry inspects one visited entry. Returning prune stops descent
	// below the entry when it is a directory.
	OnEntry(path string, d fs.DirEntry) (prune bool)
}

// Walk performs one non-following, depth-bounded traversal from root,
// gating every entry through filter and handing survivors to m.
//
// Per-entry errors (permission denied, vanished files) are skipped and the
// walk continues. The returned error is non-nil only when root itself
// cannot be walked.
func Walk(root string, maxDepth int, filter *Filter, m Matcher) error {
	cleanRoot := filepath.Clean(root)

	walkErr := filepath.WalkDir(cleanRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == cleanRoot {
				return fmt.Errorf("walk %s: %w", root, err)
			}
			return nil // transient per-entry error: skip, keep walking
		}

		rel, relErr := filepath.Rel(cleanRoot, path)
		if relErr != nil {
			return nil
		}

		if filter.Skip(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() && m.ShouldPrune(d.Name()) {
			return fs.SkipDir
		}

		prune := m.OnEntry(path, d)
		if d.IsDir() {
			// A directory at the depth ceiling is still visited (it may
			// have matched above) but never descended into.
			if prune || (path != cleanRoot && depthOf(rel) >= maxDepth) {
				return fs.SkipDir
			}
		}
		return nil
	})

	return walkErr
}

// depthOf counts path components of a cleaned relative path.
func depthOf(rel string) int {
	if rel == "." || rel == "" {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

// canonicalPath resolves symlinks and relative segments so that two walk
// paths reaching the same directory compare equal. Falls back to the
// absolute path when resolution fails (e.g. the path just vanished).
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// pathKey hashes a canonical path for the dedup set, so a scan over tens
// of thousands of projects does not retain every canonical string twice.
func pathKey(canonical string) uint64 {
	return xxhash.Sum64String(canonical)
}
