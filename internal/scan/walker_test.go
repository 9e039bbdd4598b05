package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// recordingMatcher collects visited entry paths relative to its root.
type recordingMatcher struct {
	root    string
	pruned  []string
	visited []string
	pruneAt map[string]bool
}

func (m *recordingMatcher) ShouldPrune(name string) bool {
	for _, p := range m.pruned {
		if p == name {
			return true
		}
	}
	return false
}

func (m *recordingMatcher) OnEntry(path string, d fs.DirEntry) bool {
	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	m.visited = append(m.visited, rel)
	return m.pruneAt[rel]
}

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

func TestWalkVisitsDirsAtDepthCeiling(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a/b/c/d")

	m := &recordingMatcher{root: root}
	if err := Walk(root, 2, nil, m); err != nil {
		t.Fatal(err)
	}

	// Depth 2 entries are visited; nothing below them is.
	if !contains(m.visited, "a/b") {
		t.Errorf("directory at the ceiling not visited: %v", m.visited)
	}
	if contains(m.visited, "a/b/c") {
		t.Errorf("descended past the ceiling: %v", m.visited)
	}
}

func TestWalkMatcherPruneStopsDescent(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "proj/target/debug")

	m := &recordingMatcher{root: root, pruneAt: map[string]bool{"proj/target": true}}
	if err := Walk(root, 10, nil, m); err != nil {
		t.Fatal(err)
	}

	if !contains(m.visited, "proj/target") {
		t.Errorf("matched directory not visited: %v", m.visited)
	}
	if contains(m.visited, "proj/target/debug") {
		t.Errorf("descended into a pruned match: %v", m.visited)
	}
}

func TestWalkShouldPruneSkipsEntryEntirely(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "node_modules/pkg", "src")

	m := &recordingMatcher{root: root, pruned: []string{"node_modules"}}
	if err := Walk(root, 10, nil, m); err != nil {
		t.Fatal(err)
	}

	if contains(m.visited, "node_modules") {
		t.Errorf("name-pruned directory was handed to the matcher: %v", m.visited)
	}
	if !contains(m.visited, "src") {
		t.Errorf("sibling skipped: %v", m.visited)
	}
}

func TestWalkFilterBeatsMatcher(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, ".hidden/inner", "open/inner")

	m := &recordingMatcher{root: root}
	filter := &Filter{ExcludeHidden: true}
	if err := Walk(root, 10, filter, m); err != nil {
		t.Fatal(err)
	}

	for _, v := range m.visited {
		if v == ".hidden" || filepath.Dir(v) == ".hidden" {
			t.Errorf("filtered entry visited: %s", v)
		}
	}
	if !contains(m.visited, "open/inner") {
		t.Errorf("unfiltered entry missing: %v", m.visited)
	}
}

func TestWalkUnwalkableRoot(t *testing.T) {
	m := &recordingMatcher{root: "nope"}
	if err := Walk(filepath.Join(t.TempDir(), "missing"), 5, nil, m); err == nil {
		t.Fatal("expected an error for a missing root")
	}
}

func TestDepthOf(t *testing.T) {
	cases := map[string]int{
		".":                          0,
		"a":                          1,
		filepath.Join("a", "b"):      2,
		filepath.Join("a", "b", "c"): 3,
	}
	for rel, want := range cases {
		if got := depthOf(rel); got != want {
			t.Errorf("depthOf(%q) = %d, want %d", rel, got, want)
		}
	}
}

func TestCanonicalPathStable(t *testing.T) {
	dir := t.TempDir()
	a := canonicalPath(dir)
	b := canonicalPath(dir + string(filepath.Separator) + ".")
	if a != b {
		t.Errorf("equivalent paths canonicalise differently: %q vs %q", a, b)
	}
	if pathKey(a) != pathKey(b) {
		t.Error("keys differ for equal canonical paths")
	}
}

func TestWalkVisitsFilesInsideCeilingDir(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a")
	if err := os.WriteFile(filepath.Join(root, "a", "Cargo.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := &recordingMatcher{root: root}
	if err := Walk(root, 2, nil, m); err != nil {
		t.Fatal(err)
	}

	sort.Strings(m.visited)
	if !contains(m.visited, "a/Cargo.toml") {
		t.Errorf("file at the ceiling not visited: %v", m.visited)
	}
}
