package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rskill/rskill/internal/scan"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestModel(t *testing.T, projects ...*scan.Project) *Model {
	t.Helper()
	m := New(Options{Scan: scan.Options{Root: t.TempDir(), TargetName: "target"}})
	m.width = 100
	m.height = 30
	m.Update(scanDoneMsg{result: &scan.Result{Projects: projects}})
	return m
}

func tempProject(t *testing.T, name string, size int) *scan.Project {
	t.Helper()
	root := t.TempDir()
	targetDir := filepath.Join(root, "target")
	require.NoError(t, os.MkdirAll(targetDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(targetDir, "bin"), make([]byte, size), 0o644))
	return &scan.Project{
		Path:       root,
		Name:       name,
		TargetDir:  targetDir,
		TargetSize: int64(size),
		Status:     scan.StatusActive,
	}
}

func TestScanDoneEntersBrowsing(t *testing.T) {
	m := newTestModel(t, tempProject(t, "a", 10))

	assert.Equal(t, phaseBrowsing, m.phase)
	assert.Equal(t, 1, m.ctrl.Len())
	assert.Len(t, m.visible, 1)
}

func TestCursorMovement(t *testing.T) {
	m := newTestModel(t,
		tempProject(t, "a", 10),
		tempProject(t, "b", 10),
		tempProject(t, "c", 10),
	)

	m.Update(key("j"))
	assert.Equal(t, 1, m.cursor)
	m.Update(key("down"))
	assert.Equal(t, 2, m.cursor)
	m.Update(key("j"))
	assert.Equal(t, 2, m.cursor, "cursor clamps at the last row")

	m.Update(key("k"))
	m.Update(key("up"))
	m.Update(key("k"))
	assert.Equal(t, 0, m.cursor, "cursor clamps at the first row")
}

func TestDeleteSelectedKey(t *testing.T) {
	p := tempProject(t, "victim", 2048)
	targetDir := p.TargetDir
	m := newTestModel(t, p)

	m.Update(key(" "))

	assert.NoDirExists(t, targetDir)
	assert.Equal(t, scan.StatusCleaned, p.Status)
	assert.Equal(t, int64(2048), m.ctrl.TotalFreed())
	assert.Equal(t, 1, m.ctrl.Len(), "cleaned records stay listed as tombstones")
	assert.Equal(t, "Freed 2.0 KiB", m.toast)
}

func TestDeleteAllNeedsConfirmation(t *testing.T) {
	a := tempProject(t, "a", 100)
	b := tempProject(t, "b", 100)
	m := newTestModel(t, a, b)

	m.Update(key("a"))
	assert.Equal(t, phaseConfirmDeleteAll, m.phase)

	// Any key other than y/enter cancels.
	m.Update(key("n"))
	assert.Equal(t, phaseBrowsing, m.phase)
	assert.DirExists(t, a.TargetDir)

	m.Update(key("a"))
	m.Update(key("y"))
	assert.Equal(t, phaseBrowsing, m.phase)
	assert.NoDirExists(t, a.TargetDir)
	assert.NoDirExists(t, b.TargetDir)
	assert.Equal(t, 2, m.ctrl.DeletedCount())
}

func TestDryRunDeleteKeepsEverything(t *testing.T) {
	p := tempProject(t, "safe", 512)
	m := New(Options{Scan: scan.Options{Root: t.TempDir()}, DryRun: true})
	m.width, m.height = 100, 30
	m.Update(scanDoneMsg{result: &scan.Result{Projects: []*scan.Project{p}}})

	m.Update(key(" "))

	assert.DirExists(t, p.TargetDir)
	assert.Zero(t, m.ctrl.TotalFreed())
	assert.Zero(t, m.ctrl.DeletedCount())
}

func TestFilterNarrowsVisibleRows(t *testing.T) {
	m := newTestModel(t,
		tempProject(t, "alpha", 10),
		tempProject(t, "beta", 10),
		tempProject(t, "alphabet", 10),
	)

	m.Update(key("/"))
	assert.True(t, m.filtering)

	for _, r := range "alpha" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Len(t, m.visible, 2, "alpha and alphabet match")

	m.Update(key("enter"))
	assert.False(t, m.filtering)
	assert.Len(t, m.visible, 2)

	// Deleting through a filtered view must hit the filtered row, not the
	// underlying index.
	m.Update(key("j"))
	target := m.selectedTarget()
	require.NotNil(t, target)
	assert.Equal(t, "alphabet", target.DisplayName())

	// esc clears the filter.
	m.Update(key("/"))
	m.Update(key("esc"))
	assert.Len(t, m.visible, 3)
}

func TestWatcherEventMarksStale(t *testing.T) {
	m := newTestModel(t, tempProject(t, "a", 10))

	m.Update(watchEventMsg{})
	assert.True(t, m.stale)

	// A rescan clears the hint.
	m.Update(scanDoneMsg{result: &scan.Result{}})
	assert.False(t, m.stale)
}

func TestFatalScanErrorQuits(t *testing.T) {
	m := New(Options{Scan: scan.Options{Root: "/nonexistent"}})
	_, cmd := m.Update(scanDoneMsg{err: assert.AnError})
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

func TestViewShowsRootRelativePaths(t *testing.T) {
	root := t.TempDir()
	projectDir := filepath.Join(root, "workspace", "api-server")
	targetDir := filepath.Join(projectDir, "target")
	require.NoError(t, os.MkdirAll(targetDir, 0o755))

	m := New(Options{Scan: scan.Options{Root: root, TargetName: "target"}})
	m.width, m.height = 120, 30
	m.Update(scanDoneMsg{result: &scan.Result{Projects: []*scan.Project{{
		Path:      projectDir,
		Name:      "api-server",
		TargetDir: targetDir,
	}}}})

	out := m.View()
	assert.Contains(t, out, filepath.Join("workspace", "api-server"))
	assert.NotContains(t, out, projectDir)
}

func TestViewRendersRows(t *testing.T) {
	m := newTestModel(t, tempProject(t, "visible-project", 1024*1024))
	out := m.View()
	assert.Contains(t, out, "visible-project")
	assert.Contains(t, out, "1.00 MB")
}

func TestFolderModeRows(t *testing.T) {
	m := New(Options{Scan: scan.Options{Root: t.TempDir(), TargetName: "target"}, FolderMode: true})
	m.width, m.height = 100, 30
	folders := []*scan.Folder{
		{Path: "/x/target", Size: 2 * 1024 * 1024, SizeKnown: true},
	}
	m.Update(scanDoneMsg{folders: folders})

	assert.Equal(t, 1, m.ctrl.Len())
	out := m.View()
	assert.Contains(t, out, "/x/target")
	assert.Contains(t, out, "2.00 MB")
}
