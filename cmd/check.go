package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/gxplayer/gxplayer/constant"
	"github.com/gxplayer/gxplayer/icon"
	"github.com/gxplayer/gxplayer/key"
	"github.com/gxplayer/gxplayer/style"
	"github.com/spf13/viper"
)

// CheckDependencies exits with an install hint when the mpv binary cannot be found.
func CheckDependencies() {
	binary := viper.GetString(key.MpvBinary)
	if _, err := exec.LookPath(binary); err != nil {
		printMissingDependencyError(binary)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.Failure).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.Failure).Render(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := fmt.Sprintf("%s was not found in your PATH.", style.Bold(dep))

	suggestion := ""
	if installCmd, ok := constant.MpvInstallHints[runtime.GOOS]; ok {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.Accent).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
