package cleaner

import (
	"log/slog"
	"os"
	"time"
)

// dryRunLatency simulates the time a real removal takes, so dry-run
// exercises the same UI states as a destructive run.
const dryRunLatency = 100 * time.Millisecond

// RemoveDirectory deletes path and everything under it. Under dry-run the
// intent is logged, a short latency is simulated and nothing is removed,
// so dry-run can never raise a deletion error. Removing an already-absent
// path is a no-op, making deletion idempotent.
func RemoveDirectory(path string, dryRun bool, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if dryRun {
		logger.Info("dry run: would delete", "path", path)
		time.Sleep(dryRunLatency)
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(path)
}
