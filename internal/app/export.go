package app

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// exportFilename names a downloaded export after the project, falling
// back to "export" when the project has no name.
func exportFilename(projectName, format string) string {
	name := projectName
	if name == "" {
		name = "export"
	}
	return name + "." + format
}

// saveExport writes an export payload into the download directory and
// returns the written path.
func saveExport(dir, projectName, format string, payload []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(dir, exportFilename(projectName, format))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// openURL hands a URL to the OS opener and does not wait for it. The
// video export streams through whatever opens the URL; there is no
// failure channel back into the model.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
