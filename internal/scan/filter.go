package scan

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Filter decides whether a directory subtree must be skipped entirely.
// It is a pure predicate over the path relative to the scan root; the
// walker applies it before descending, so a skipped directory's children
// are never visited.
type Filter struct {
	// Excluded skips any path with a component containing one of these
	// substrings. Substring match, not exact: excluding "lib" also
	// excludes "library".
	Excluded []string

	// ExcludeHidden skips any path with a component starting with ".".
	ExcludeHidden bool
}

// Skip reports whether rel (a path relative to the scan root) must be
// pruned. The root itself ("" or ".") is never skipped.
func (f *Filter) Skip(rel string) bool {
	if f == nil || rel == "" || rel == "." {
		return false
	}
	for _, comp := range strings.Split(filepath.ToSlash(rel), "/") {
		if comp == "" {
			continue
		}
		for _, excluded := range f.Excluded {
			if excluded != "" && strings.Contains(comp, excluded) {
				return true
			}
		}
		if f.ExcludeHidden && strings.HasPrefix(comp, ".") {
			return true
		}
	}
	return false
}

// SystemIgnoredFolders returns directory names that the name-only scan
// refuses to enter by default: VCS metadata plus well-known OS paths that
// could never hold a project build directory worth deleting.
func SystemIgnoredFolders() []string {
	ignored := []string{".git"}
	switch runtime.GOOS {
	case "windows":
		ignored = append(ignored, "Windows", "Program Files", "Program Files (x86)")
	default:
		ignored = append(ignored, "bin", "boot", "dev", "etc", "lib", "proc", "sys", "usr")
	}
	return ignored
}
