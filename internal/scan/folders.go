package scan

import (
	"io/fs"
	"log/slog"
	"slices"
)

// folderScanDepth is the fixed traversal ceiling of the name-only scan.
const folderScanDepth = 10

// FolderScanner is the lighter alternate strategy: it matches raw folder
// names with no manifest required, for "just find directories named X".
type FolderScanner struct {
	root       string
	targetName string
	ignored    []string
	log        *slog.Logger
}

// NewFolderScanner returns a scanner that finds directories named
// targetName under root. Directories whose own name is in ignored are
// pruned without being added, regardless of whether they match.
func NewFolderScanner(root, targetName string, ignored []string, logger *slog.Logger) *FolderScanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &FolderScanner{
		root:       root,
		targetName: targetName,
		ignored:    ignored,
		log:        logger,
	}
}

// FindFolders runs the walk. A matched directory is recorded with its
// size pre-computed and is not descended into further. The error is
// non-nil only when the root cannot be walked at all.
func (s *FolderScanner) FindFolders() ([]*Folder, error) {
	m := &folderMatcher{scanner: s}
	if err := Walk(s.root, folderScanDepth, nil, m); err != nil {
		return nil, err
	}
	return m.folders, nil
}

// folderMatcher matches directories by bare name.
type folderMatcher struct {
	scanner *FolderScanner
	folders []*Folder
}

// ShouldPrune skips ignored directory names outright, before any match.
func (m *folderMatcher) ShouldPrune(name string) bool {
	return slices.Contains(m.scanner.ignored, name)
}

// OnEntry records target-named directories and prunes below them.
func (m *folderMatcher) OnEntry(path string, d fs.DirEntry) bool {
	if !d.IsDir() || d.Name() != m.scanner.targetName {
		return false
	}
	m.folders = append(m.folders, &Folder{
		Path:      canonicalPath(path),
		Size:      DirSize(path),
		SizeKnown: true,
		Status:    StatusActive,
	})
	return true
}
