package scan

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// SortKey selects the ordering of a scan's result set.
type SortKey string

const (
	SortBySize    SortKey = "size"
	SortByPath    SortKey = "path"
	SortByLastMod SortKey = "lastmod"
)

// Traversal depth ceilings. A deep scan (typically rooted at the user's
// home directory) looks twice as far down.
const (
	shallowScanDepth = 5
	deepScanDepth    = 10
)

// Options configures a scan.
type Options struct {
	// Root is the directory the walk starts from.
	Root string

	// TargetName is the build-output directory name under a project root,
	// conventionally "target".
	TargetName string

	// Excluded prunes any path with a component containing one of these
	// substrings.
	Excluded []string

	// ExcludeHidden prunes dot-directories.
	ExcludeHidden bool

	// Deep raises the traversal depth ceiling from 5 to 10.
	Deep bool

	// IncludeGlobalCache measures the shared registry/git caches once per
	// scan and attaches them to the result.
	IncludeGlobalCache bool

	// Sort orders the result set. Defaults to SortBySize.
	Sort SortKey
}

// Result is one scan's output: the ordered project list plus, when
// requested, the shared global cache aggregate.
type Result struct {
	Projects    []*Project
	GlobalCache *GlobalCache
}

// TotalCleanableSize sums the cleanable bytes across all projects. The
// global cache is deliberately not included; it is shared, not additive
// per project.
func (r *Result) TotalCleanableSize() int64 {
	var total int64
	for _, p := range r.Projects {
		total += p.TotalCleanableSize()
	}
	return total
}

// ProjectScanner discovers dependency-managed projects under a root path
// by locating manifest files during a depth-bounded walk.
type ProjectScanner struct {
	opts Options
	log  *slog.Logger
}

// NewProjectScanner returns a scanner for opts. A nil logger is replaced
// with the default.
func NewProjectScanner(opts Options, logger *slog.Logger) *ProjectScanner {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TargetName == "" {
		opts.TargetName = "target"
	}
	if opts.Sort == "" {
		opts.Sort = SortBySize
	}
	return &ProjectScanner{opts: opts, log: logger}
}

// Scan walks the root, assembles one Project per distinct canonical
// project root, and returns the sorted result set. A manifest that fails
// to read drops that single project; the scan itself fails only when the
// root cannot be walked at all.
func (s *ProjectScanner) Scan() (*Result, error) {
	maxDepth := shallowScanDepth
	if s.opts.Deep {
		maxDepth = deepScanDepth
	}

	filter := &Filter{
		Excluded:      s.opts.Excluded,
		ExcludeHidden: s.opts.ExcludeHidden,
	}

	m := &projectMatcher{scanner: s, seen: make(map[uint64]struct{})}
	if err := Walk(s.opts.Root, maxDepth, filter, m); err != nil {
		return nil, err
	}

	result := &Result{Projects: m.projects}
	if s.opts.IncludeGlobalCache {
		result.GlobalCache = MeasureGlobalCache()
	}

	sortProjects(result.Projects, s.opts.Sort)
	return result, nil
}

// projectMatcher matches manifest files during the walk and assembles a
// Project per new canonical parent directory.
type projectMatcher struct {
	scanner  *ProjectScanner
	seen     map[uint64]struct{}
	projects []*Project
}

// ShouldPrune is a no-op: the shared filter already gates the walk.
func (m *projectMatcher) ShouldPrune(string) bool { return false }

// OnEntry reacts to manifest files. A project can be reached through more
// than one walk entry when symlinked paths resolve to the same target;
// the dedup set keyed by canonical path counts it once.
func (m *projectMatcher) OnEntry(path string, d fs.DirEntry) bool {
	if d.IsDir() || d.Name() != ManifestName {
		return false
	}

	projectDir := canonicalPath(filepath.Dir(path))
	key := pathKey(projectDir)
	if _, dup := m.seen[key]; dup {
		return false
	}
	m.seen[key] = struct{}{}

	project, err := m.scanner.analyzeProject(projectDir)
	if err != nil {
		m.scanner.log.Debug("skipping project", "dir", projectDir, "error", err)
		return false
	}
	m.projects = append(m.projects, project)
	return false
}

// analyzeProject assembles one Project record from its root directory.
func (s *ProjectScanner) analyzeProject(projectDir string) (*Project, error) {
	manifestPath := filepath.Join(projectDir, ManifestName)
	content, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, err
	}
	info := ParseManifest(string(content))

	name := info.Name
	if name == "" {
		name = filepath.Base(projectDir)
	}

	project := &Project{
		Path:            projectDir,
		Name:            name,
		WorkspaceRoot:   info.WorkspaceRoot,
		DependencyCount: info.DependencyCount,
		LastModified:    lastModifiedTime(projectDir),
		Status:          StatusActive,
	}

	if _, err := os.Stat(filepath.Join(projectDir, LockFileName)); err == nil {
		project.HasLockFile = true
	}

	targetDir := filepath.Join(projectDir, s.opts.TargetName)
	if stat, err := os.Stat(targetDir); err == nil && stat.IsDir() {
		project.TargetDir = targetDir
		project.TargetSize = DirSize(targetDir)
		project.Artifacts = ClassifyArtifacts(targetDir)
	}

	return project, nil
}

// lastModifiedTime derives the project's last-modified timestamp as the
// newest modification time among a fixed set of well-known files, zero
// when none of them exist.
func lastModifiedTime(projectDir string) (latest time.Time) {
	for _, rel := range lastModifiedProbes {
		info, err := os.Stat(filepath.Join(projectDir, rel))
		if err != nil {
			continue
		}
		if mod := info.ModTime(); mod.After(latest) {
			latest = mod
		}
	}
	return latest
}

// sortProjects orders in place by the requested key:
//   - size: total cleanable size, descending;
//   - path: canonical path, ascending;
//   - lastmod: newest first, untimestamped projects after all timestamped
//     ones and mutually equal.
func sortProjects(projects []*Project, key SortKey) {
	switch key {
	case SortByPath:
		sort.Slice(projects, func(i, j int) bool {
			return projects[i].Path < projects[j].Path
		})
	case SortByLastMod:
		sort.SliceStable(projects, func(i, j int) bool {
			a, b := projects[i].LastModified, projects[j].LastModified
			switch {
			case a.IsZero() && b.IsZero():
				return false
			case b.IsZero():
				return true
			case a.IsZero():
				return false
			default:
				return a.After(b)
			}
		})
	default: // SortBySize
		sort.SliceStable(projects, func(i, j int) bool {
			return projects[i].TotalCleanableSize() > projects[j].TotalCleanableSize()
		})
	}
}
