package scan

import (
	"time"
)

// Status describes a record's lifecycle within one scan's result set.
// Records are never removed after deletion; they become tombstones so the
// UI can show "already cleaned" feedback.
type Status int

const (
	StatusActive Status = iota
	StatusCleaned
	StatusError
)

// String returns a short label for display.
func (s Status) String() string {
	switch s {
	case StatusCleaned:
		return "cleaned"
	case StatusError:
		return "error"
	default:
		return "active"
	}
}

// Project is one discovered dependency-managed project.
type Project struct {
	// Path is the canonical absolute path of the project root (the
	// directory containing the manifest). Unique within a scan.
	Path string

	// Name is the declared package name, falling back to the directory
	// basename when the manifest has no usable name line.
	Name string

	// TargetDir is the absolute path of the build-output directory, or ""
	// when it did not exist at scan time.
	TargetDir string

	// TargetSize is the byte size of the build-output tree at scan time.
	TargetSize int64

	// CacheSize is a dependency-cache share attributed to this project.
	// The scanner reports the global cache as a ScanResult aggregate and
	// leaves this zero; it exists so TotalCleanableSize stays meaningful
	// for callers that do attribute cache bytes to a project.
	CacheSize int64

	// LastModified is the newest modification time among a fixed set of
	// well-known project files. Zero when none of them exist.
	LastModified time.Time

	WorkspaceRoot   bool
	HasLockFile     bool
	DependencyCount int

	Artifacts []BuildArtifact

	Status  Status
	LastErr error
}

// TotalCleanableSize is the number of bytes deleting this project's
// build output (plus any attributed cache share) would free.
func (p *Project) TotalCleanableSize() int64 {
	return p.TargetSize + p.CacheSize
}

// DaysSinceModified returns whole days since the project was last touched.
// ok is false when no modification time is known.
func (p *Project) DaysSinceModified() (days int, ok bool) {
	if p.LastModified.IsZero() {
		return 0, false
	}
	return int(time.Since(p.LastModified).Hours() / 24), true
}

// IsLikelyActive reports whether the project was modified within the last
// 30 days. Unknown modification time counts as active, for safety.
func (p *Project) IsLikelyActive() bool {
	days, ok := p.DaysSinceModified()
	if !ok {
		return true
	}
	return days < 30
}

// Location identifies the record for the cleanup controller.
func (p *Project) Location() string { return p.Path }

// DisplayName is the name shown in lists.
func (p *Project) DisplayName() string { return p.Name }

// CleanablePath is the directory a delete operation removes, "" when none.
func (p *Project) CleanablePath() string { return p.TargetDir }

// CleanableSize is the number of bytes a delete operation frees.
func (p *Project) CleanableSize() int64 { return p.TotalCleanableSize() }

// MarkCleaned tombstones the record after a successful deletion: metrics
// zeroed, artifact list dropped, record kept in the result set.
func (p *Project) MarkCleaned() {
	p.TargetDir = ""
	p.TargetSize = 0
	p.CacheSize = 0
	p.Artifacts = nil
	p.Status = StatusCleaned
	p.LastErr = nil
}

// MarkFailed records a deletion failure without touching the metrics, so
// a retry can still see the original size.
func (p *Project) MarkFailed(err error) {
	p.Status = StatusError
	p.LastErr = err
}

// Folder is a bare match of the target directory name found by the
// name-only scan strategy. No manifest is required.
type Folder struct {
	// Path is the absolute path of the matched directory.
	Path string

	// Size is the byte size of the directory tree. SizeKnown is false when
	// the size computation failed entirely.
	Size      int64
	SizeKnown bool

	Status  Status
	LastErr error
}

// Location identifies the record for the cleanup controller.
func (f *Folder) Location() string { return f.Path }

// DisplayName is the name shown in lists.
func (f *Folder) DisplayName() string { return f.Path }

// CleanablePath is the directory a delete operation removes, "" once the
// folder has been cleaned.
func (f *Folder) CleanablePath() string {
	if f.Status == StatusCleaned {
		return ""
	}
	return f.Path
}

// CleanableSize is the number of bytes a delete operation frees.
func (f *Folder) CleanableSize() int64 {
	if f.Status == StatusCleaned {
		return 0
	}
	return f.Size
}

// MarkCleaned tombstones the folder. Unlike earlier revisions that removed
// cleaned folders from the result set, the record stays listed with zeroed
// metrics so both scan modes share one post-deletion lifecycle.
func (f *Folder) MarkCleaned() {
	f.Size = 0
	f.Status = StatusCleaned
	f.LastErr = nil
}

// MarkFailed records a deletion failure.
func (f *Folder) MarkFailed(err error) {
	f.Status = StatusError
	f.LastErr = err
}
