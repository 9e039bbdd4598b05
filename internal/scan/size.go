package scan

import (
	"io/fs"
	"path/filepath"
)

// DirSize returns the total byte size of all regular files under dir.
// Symlinks are never followed and never counted. Unreadable files and
// directories contribute zero bytes; the walk continues past them.
//
// There is no caching: every call recomputes from scratch, so callers
// sizing a large shared tree should do it once and reuse the result.
func DirSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total
}
