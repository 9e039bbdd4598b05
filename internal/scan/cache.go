package scan

import (
	"os"
	"path/filepath"
)

// GlobalCache aggregates the shared dependency caches that live outside
// any individual project. It is computed at most once per scan and
// reported next to the project list, never attributed to a single project:
// summing a per-project copy would count the same global bytes once per
// project.
type GlobalCache struct {
	RegistrySize int64
	GitSize      int64
	Artifacts    []BuildArtifact
}

// TotalSize is the combined size of all shared caches.
func (g *GlobalCache) TotalSize() int64 {
	if g == nil {
		return 0
	}
	return g.RegistrySize + g.GitSize
}

// MeasureGlobalCache sizes the well-known registry and git caches under
// the user's home-relative cache root. Missing directories contribute
// zero. Returns nil only when the home directory cannot be determined.
func MeasureGlobalCache() *GlobalCache {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return measureGlobalCacheAt(filepath.Join(home, ".cargo"))
}

func measureGlobalCacheAt(cacheRoot string) *GlobalCache {
	g := &GlobalCache{}

	registry := filepath.Join(cacheRoot, "registry")
	if info, err := os.Stat(registry); err == nil && info.IsDir() {
		g.RegistrySize = DirSize(registry)
		g.Artifacts = append(g.Artifacts, BuildArtifact{
			Path:         registry,
			Kind:         KindRegistryCache,
			Size:         g.RegistrySize,
			LastModified: info.ModTime(),
		})
	}

	git := filepath.Join(cacheRoot, "git")
	if info, err := os.Stat(git); err == nil && info.IsDir() {
		g.GitSize = DirSize(git)
		g.Artifacts = append(g.Artifacts, BuildArtifact{
			Path:         git,
			Kind:         KindGitCache,
			Size:         g.GitSize,
			LastModified: info.ModTime(),
		})
	}

	return g
}
