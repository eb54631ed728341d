package visualization

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// OpenBrowser opens target (a URL or file path) in the user's default
// browser. $BROWSER, when set, takes precedence over the platform opener.
func OpenBrowser(target string) error {
	cmd, err := browserCommand(runtime.GOOS, os.Getenv("BROWSER"), target)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func browserCommand(goos, override, target string) (*exec.Cmd, error) {
	if override != "" {
		return exec.Command(override, target), nil
	}
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	case "darwin":
		return exec.Command("open", target), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
