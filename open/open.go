// Package open hands paths and URLs to the desktop's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/gxplayer/gxplayer/constant"
)

// Command builds the launcher invocation for target on goos.
func Command(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", target), nil
	case constant.Darwin:
		return exec.Command("open", target), nil
	case constant.Linux:
		return exec.Command("xdg-open", target), nil
	default:
		return nil, fmt.Errorf("no default handler known for %s", goos)
	}
}

// Start launches target without waiting for the handler to exit.
func Start(goos, target string) error {
	cmd, err := Command(goos, target)
	if err != nil {
		return err
	}

	return cmd.Start()
}
