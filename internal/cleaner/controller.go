package cleaner

import (
	"log/slog"
)

// Target is one cleanable record managed by the Controller. Both
// manifest-discovered projects and bare-name folder matches satisfy it.
type Target interface {
	// Location identifies the record (project root or folder path).
	Location() string
	// DisplayName is the name shown to the user.
	DisplayName() string
	// CleanablePath is the directory a delete removes, "" when nothing
	// remains to remove.
	CleanablePath() string
	// CleanableSize is the number of bytes a delete would free.
	CleanableSize() int64
	// MarkCleaned tombstones the record after a successful deletion.
	MarkCleaned()
	// MarkFailed records a deletion failure.
	MarkFailed(err error)
}

// Outcome is the per-item result of a bulk deletion.
type Outcome struct {
	Target Target
	Freed  int64
	Err    error
}

// BatchResult collects every outcome of a deleteAll: each item is
// attempted, successes and failures are reported together, and a failure
// on one item never aborts the rest.
type BatchResult struct {
	Outcomes []Outcome
	Freed    int64
	Deleted  int
	Failed   int
}

// Controller drives safe, resumable, partially-failable deletion over one
// scan's result set. It owns the selection cursor and the freed-space
// accounting. It is not safe for concurrent use; the UI owns it and runs
// filesystem operations to completion before reading state again.
//
// No confirmation gate is enforced here, even for recently modified or
// very large targets: the activity and size signals are exposed on the
// records and the presentation layer decides whether to prompt. Dry-run
// is the only built-in safety.
type Controller struct {
	targets []Target
	cursor  int
	dryRun  bool

	totalFreed   int64
	deletedCount int

	log *slog.Logger
}

// New returns a controller over targets. A nil logger is replaced with
// the default.
func New(targets []Target, dryRun bool, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{targets: targets, dryRun: dryRun, log: logger}
}

// Targets returns the current result set in display order.
func (c *Controller) Targets() []Target { return c.targets }

// Len returns the size of the result set.
func (c *Controller) Len() int { return len(c.targets) }

// DryRun reports whether destructive operations are simulated.
func (c *Controller) DryRun() bool { return c.dryRun }

// Cursor returns the selection index, -1 on an empty set.
func (c *Controller) Cursor() int {
	if len(c.targets) == 0 {
		return -1
	}
	return c.cursor
}

// Selected returns the record under the cursor, nil on an empty set.
func (c *Controller) Selected() Target {
	if len(c.targets) == 0 {
		return nil
	}
	return c.targets[c.cursor]
}

// Select clamps the cursor to i.
func (c *Controller) Select(i int) {
	if len(c.targets) == 0 {
		c.cursor = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(c.targets)-1 {
		i = len(c.targets) - 1
	}
	c.cursor = i
}

// SelectNext moves the cursor down, clamped to the last record.
func (c *Controller) SelectNext() { c.Select(c.cursor + 1) }

// SelectPrevious moves the cursor up, clamped to the first record.
func (c *Controller) SelectPrevious() { c.Select(c.cursor - 1) }

// TotalFreed returns the running total of bytes freed by non-dry-run
// deletions since the controller was created.
func (c *Controller) TotalFreed() int64 { return c.totalFreed }

// DeletedCount returns the number of records cleaned so far.
func (c *Controller) DeletedCount() int { return c.deletedCount }

// DeleteSelected removes the selected record's cleanable directory. It is
// a no-op when nothing is selected or the record has nothing left to
// clean. On failure the record's metrics are left untouched so a retry
// still sees the original size; only the error status is recorded.
func (c *Controller) DeleteSelected() (freed int64, err error) {
	target := c.Selected()
	if target == nil {
		return 0, nil
	}
	return c.deleteOne(target)
}

// DeleteAll attempts every record with a cleanable directory and collects
// per-item outcomes. Unlike a fail-fast loop, one error never aborts the
// remaining items.
func (c *Controller) DeleteAll() BatchResult {
	var result BatchResult
	for _, target := range c.targets {
		if target.CleanablePath() == "" {
			continue
		}
		freed, err := c.deleteOne(target)
		result.Outcomes = append(result.Outcomes, Outcome{Target: target, Freed: freed, Err: err})
		if err != nil {
			result.Failed++
			continue
		}
		if !c.dryRun {
			result.Freed += freed
			result.Deleted++
		}
	}
	return result
}

func (c *Controller) deleteOne(target Target) (int64, error) {
	dir := target.CleanablePath()
	if dir == "" {
		return 0, nil
	}

	sizeBefore := target.CleanableSize()
	if err := RemoveDirectory(dir, c.dryRun, c.log); err != nil {
		c.log.Warn("delete failed", "path", dir, "error", err)
		target.MarkFailed(err)
		return 0, err
	}

	if c.dryRun {
		// Simulated: no bookkeeping, no record mutation.
		return 0, nil
	}

	target.MarkCleaned()
	c.totalFreed += sizeBefore
	c.deletedCount++
	c.log.Info("deleted", "path", dir, "freed", sizeBefore)
	return sizeBefore, nil
}

// Replace swaps in a fresh result set (after a rescan) and resets the
// cursor. Freed-space totals survive the refresh; they describe the whole
// session, not one result set.
func (c *Controller) Replace(targets []Target) {
	c.targets = targets
	c.cursor = 0
}

// OpenSelected opens the selected record's location in the platform file
// manager. Failure is non-fatal to the controller.
func (c *Controller) OpenSelected() error {
	target := c.Selected()
	if target == nil {
		return nil
	}
	return OpenInFileManager(target.Location())
}
