package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArtifactKind classifies a subdirectory inside a project's build-output
// tree. The first six kinds are per-project and safe to delete without
// cross-project side effects; the cache kinds are shared across every
// project on the machine and deserve an extra look before deletion.
type ArtifactKind int

const (
	KindBuildOutput ArtifactKind = iota
	KindIncrementalCache
	KindDependencyArtifacts
	KindExampleBinaries
	KindTestBinaries
	KindBenchmarkBinaries
	KindRegistryCache
	KindGitCache
	KindConfigCache
)

// String returns the kind's display name.
func (k ArtifactKind) String() string {
	switch k {
	case KindBuildOutput:
		return "build output"
	case KindIncrementalCache:
		return "incremental cache"
	case KindDependencyArtifacts:
		return "dependencies"
	case KindExampleBinaries:
		return "examples"
	case KindTestBinaries:
		return "tests"
	case KindBenchmarkBinaries:
		return "benchmarks"
	case KindRegistryCache:
		return "registry cache"
	case KindGitCache:
		return "git cache"
	case KindConfigCache:
		return "config cache"
	default:
		return "unknown"
	}
}

// Description returns a longer human-readable description.
func (k ArtifactKind) Description() string {
	switch k {
	case KindBuildOutput:
		return "Compiled build outputs"
	case KindIncrementalCache:
		return "Incremental compilation cache"
	case KindDependencyArtifacts:
		return "Compiled dependencies"
	case KindExampleBinaries:
		return "Compiled examples"
	case KindTestBinaries:
		return "Compiled tests"
	case KindBenchmarkBinaries:
		return "Compiled benchmarks"
	case KindRegistryCache:
		return "Registry download cache (shared)"
	case KindGitCache:
		return "Git checkout cache (shared)"
	case KindConfigCache:
		return "Configuration cache (shared)"
	default:
		return "Unknown artifact"
	}
}

// Shared reports whether the kind names a global cache rather than a
// per-project directory. Shared caches need extra confirmation: deleting
// one affects every project on the machine.
func (k ArtifactKind) Shared() bool {
	switch k {
	case KindRegistryCache, KindGitCache, KindConfigCache:
		return true
	}
	return false
}

// SafeToDelete reports whether the kind can be removed without
// cross-project side effects.
func (k ArtifactKind) SafeToDelete() bool { return !k.Shared() }

// BuildArtifact is one classified subdirectory inside a build-output tree.
// Artifacts are created during classification and never mutated; they are
// discarded wholesale when the owning project is cleaned.
type BuildArtifact struct {
	Path         string
	Kind         ArtifactKind
	Size         int64
	LastModified time.Time
}

// classifyDirName maps a build-output subdirectory name to its kind.
// Unmatched names carry no classification.
func classifyDirName(name string) (ArtifactKind, bool) {
	switch name {
	case "debug", "release":
		return KindBuildOutput, true
	case "incremental":
		return KindIncrementalCache, true
	case "deps":
		return KindDependencyArtifacts, true
	case "examples":
		return KindExampleBinaries, true
	case "tests":
		return KindTestBinaries, true
	case "benches", "benchmarks":
		return KindBenchmarkBinaries, true
	}
	return 0, false
}

// artifactClassifyDepth bounds how far below the build-output root the
// classifier looks. Conventional layouts keep everything interesting at
// <profile>/<subdir>, i.e. two levels down.
const artifactClassifyDepth = 2

// ClassifyArtifacts walks the build-output tree up to two levels deep and
// labels every subdirectory whose name matches the artifact vocabulary.
// This is a labeling pass only: unmatched directories are not reported,
// but their bytes still count toward the project's aggregate target size.
func ClassifyArtifacts(targetDir string) []BuildArtifact {
	var artifacts []BuildArtifact

	root := filepath.Clean(targetDir)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if !d.IsDir() || path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return fs.SkipDir
		}
		if strings.Count(rel, string(filepath.Separator))+1 > artifactClassifyDepth {
			return fs.SkipDir
		}

		kind, ok := classifyDirName(d.Name())
		if !ok {
			return nil
		}

		artifact := BuildArtifact{
			Path: path,
			Kind: kind,
			Size: DirSize(path),
		}
		if info, statErr := os.Stat(path); statErr == nil {
			artifact.LastModified = info.ModTime()
		}
		artifacts = append(artifacts, artifact)
		return nil
	})

	return artifacts
}
