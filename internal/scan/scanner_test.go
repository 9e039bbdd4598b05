package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, name string) {
	t.Helper()
	content := "[package]\nname = \"" + name + "\"\n\n[dependencies]\nserde = \"1\"\n"
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0o644))
}

func TestScanEndToEnd(t *testing.T) {
	root := t.TempDir()
	proj := filepath.Join(root, "proj")
	writeManifest(t, proj, "proj")
	writeFile(t, filepath.Join(proj, "target", "debug", "bin"), 10000)
	writeFile(t, filepath.Join(proj, "target", "incremental", "unit"), 2000)

	scanner := NewProjectScanner(Options{Root: root}, nil)
	result, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, result.Projects, 1)

	p := result.Projects[0]
	assert.Equal(t, "proj", p.Name)
	assert.Equal(t, int64(12000), p.TargetSize)
	assert.Equal(t, int64(12000), p.TotalCleanableSize(), "cache inclusion off: cleanable == target size")
	assert.NotEmpty(t, p.TargetDir)
	assert.True(t, p.HasLockFile == false)
	assert.Equal(t, 1, p.DependencyCount)
	assert.False(t, p.LastModified.IsZero(), "manifest mtime should set last-modified")

	var sawBuild, sawIncremental bool
	for _, a := range p.Artifacts {
		switch a.Kind {
		case KindBuildOutput:
			sawBuild = true
			assert.GreaterOrEqual(t, a.Size, int64(10000))
		case KindIncrementalCache:
			sawIncremental = true
			assert.Equal(t, int64(2000), a.Size)
		}
	}
	assert.True(t, sawBuild, "expected a build-output artifact")
	assert.True(t, sawIncremental, "expected an incremental-cache artifact")

	assert.Nil(t, result.GlobalCache, "global cache not requested")
}

func TestScanExcludesNestedManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "a"), "a")
	writeManifest(t, filepath.Join(root, "a", "nested"), "nested")

	scanner := NewProjectScanner(Options{Root: root, Excluded: []string{"nested"}}, nil)
	result, err := scanner.Scan()
	require.NoError(t, err)

	require.Len(t, result.Projects, 1)
	assert.Equal(t, "a", result.Projects[0].Name)
}

func TestScanDistinctCanonicalPathsOnce(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "a"), "a")
	writeManifest(t, filepath.Join(root, "b"), "b")
	writeManifest(t, filepath.Join(root, "a", "inner"), "inner")

	scanner := NewProjectScanner(Options{Root: root}, nil)
	result, err := scanner.Scan()
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, p := range result.Projects {
		seen[p.Path]++
	}
	assert.Len(t, seen, 3)
	for path, n := range seen {
		assert.Equal(t, 1, n, "path %s returned more than once", path)
	}
}

func TestScanNameFallsBackToBasename(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "unnamed")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte("[package]\nversion = \"0.1\"\n"), 0o644))

	result, err := NewProjectScanner(Options{Root: root}, nil).Scan()
	require.NoError(t, err)
	require.Len(t, result.Projects, 1)
	assert.Equal(t, "unnamed", result.Projects[0].Name)
}

func TestScanDepthCeiling(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "1", "2", "3", "4", "5", "6", "7")
	writeManifest(t, deep, "deep")
	writeManifest(t, filepath.Join(root, "shallow"), "shallow")

	result, err := NewProjectScanner(Options{Root: root}, nil).Scan()
	require.NoError(t, err)
	require.Len(t, result.Projects, 1, "default depth must not reach depth-8 manifests")
	assert.Equal(t, "shallow", result.Projects[0].Name)

	result, err = NewProjectScanner(Options{Root: root, Deep: true}, nil).Scan()
	require.NoError(t, err)
	assert.Len(t, result.Projects, 2, "deep scan raises the ceiling")
}

func TestScanUnwalkableRoot(t *testing.T) {
	_, err := NewProjectScanner(Options{Root: filepath.Join(t.TempDir(), "missing")}, nil).Scan()
	assert.Error(t, err, "an unwalkable root is the only fatal scan failure")
}

func TestSortProjectsBySize(t *testing.T) {
	projects := []*Project{
		{Path: "/a", TargetSize: 10},
		{Path: "/b", TargetSize: 300},
		{Path: "/c", TargetSize: 50},
	}
	sortProjects(projects, SortBySize)

	for i := 1; i < len(projects); i++ {
		assert.GreaterOrEqual(t,
			projects[i-1].TotalCleanableSize(), projects[i].TotalCleanableSize(),
			"size sort must be descending")
	}
}

func TestSortProjectsByPath(t *testing.T) {
	projects := []*Project{{Path: "/z"}, {Path: "/a"}, {Path: "/m"}}
	sortProjects(projects, SortByPath)

	assert.Equal(t, "/a", projects[0].Path)
	assert.Equal(t, "/m", projects[1].Path)
	assert.Equal(t, "/z", projects[2].Path)
}

func TestSortProjectsByLastModified(t *testing.T) {
	now := time.Now()
	projects := []*Project{
		{Path: "/none"},
		{Path: "/old", LastModified: now.Add(-48 * time.Hour)},
		{Path: "/new", LastModified: now},
		{Path: "/none2"},
	}
	sortProjects(projects, SortByLastMod)

	assert.Equal(t, "/new", projects[0].Path)
	assert.Equal(t, "/old", projects[1].Path)
	// Untimestamped projects sort after every timestamped one.
	assert.True(t, projects[2].LastModified.IsZero())
	assert.True(t, projects[3].LastModified.IsZero())
}

func TestMeasureGlobalCacheAt(t *testing.T) {
	cacheRoot := t.TempDir()
	writeFile(t, filepath.Join(cacheRoot, "registry", "cache.bin"), 700)
	writeFile(t, filepath.Join(cacheRoot, "git", "db.bin"), 300)

	g := measureGlobalCacheAt(cacheRoot)
	require.NotNil(t, g)
	assert.Equal(t, int64(700), g.RegistrySize)
	assert.Equal(t, int64(300), g.GitSize)
	assert.Equal(t, int64(1000), g.TotalSize())

	require.Len(t, g.Artifacts, 2)
	assert.Equal(t, KindRegistryCache, g.Artifacts[0].Kind)
	assert.Equal(t, KindGitCache, g.Artifacts[1].Kind)
	for _, a := range g.Artifacts {
		assert.True(t, a.Kind.Shared(), "global cache artifacts are shared kinds")
	}
}

func TestMeasureGlobalCacheAtEmpty(t *testing.T) {
	g := measureGlobalCacheAt(filepath.Join(t.TempDir(), "nope"))
	require.NotNil(t, g)
	assert.Zero(t, g.TotalSize())
	assert.Empty(t, g.Artifacts)
}
