package scan

import "strings"

// Well-known file names relative to a project root.
const (
	ManifestName = "Cargo.toml"
	LockFileName = "Cargo.lock"
)

// lastModifiedProbes are the files whose newest modification time stands
// in for the project's last-modified timestamp.
var lastModifiedProbes = []string{
	ManifestName,
	LockFileName,
	"src/main.rs",
	"src/lib.rs",
}

// ManifestInfo is what the line-oriented manifest heuristics extract.
// This is deliberately not a validating parser: the dependency count over-
// counts values spanning multiple lines and under-counts inline tables,
// and the name heuristic takes the first plausible line. That approximate
// contract is the behavior callers and tests rely on.
type ManifestInfo struct {
	// Name is the declared package name, "" when no name line was found.
	Name string

	// WorkspaceRoot is set when the manifest carries a workspace section.
	WorkspaceRoot bool

	// DependencyCount approximates the number of declared dependencies
	// across dependency, dev-dependency and build-dependency sections.
	DependencyCount int
}

// ParseManifest runs the line heuristics over raw manifest text.
func ParseManifest(content string) ManifestInfo {
	info := ManifestInfo{
		Name:          extractName(content),
		WorkspaceRoot: strings.Contains(content, "[workspace]"),
	}
	info.DependencyCount = countDependencies(content)
	return info
}

// extractName finds the first line starting with the name key and takes
// the right-hand side of its first '=', with quote characters stripped.
func extractName(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "name") {
			continue
		}
		_, value, found := strings.Cut(trimmed, "=")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		return value
	}
	return ""
}

// countDependencies toggles an "inside a dependency section" flag on
// section-header lines and counts the non-empty, non-comment lines while
// the flag is set.
func countDependencies(content string) int {
	inDependencies := false
	count := 0

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") {
			inDependencies = strings.HasPrefix(trimmed, "[dependencies") ||
				strings.HasPrefix(trimmed, "[dev-dependencies") ||
				strings.HasPrefix(trimmed, "[build-dependencies")
			continue
		}

		if inDependencies && trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			count++
		}
	}

	return count
}
