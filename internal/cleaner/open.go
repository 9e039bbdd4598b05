package cleaner

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenInFileManager opens path in the platform's file manager. The child
// process is started and not waited on; a launch failure is returned but
// is never fatal to the caller.
func OpenInFileManager(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("open not supported on %s", runtime.GOOS)
	}
	return cmd.Start()
}
