package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/gxplayer/gxplayer/constant"
	"github.com/gxplayer/gxplayer/key"
	"github.com/gxplayer/gxplayer/style"
	"github.com/gxplayer/gxplayer/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	lua "github.com/yuin/gopher-lua"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "print only the version")
	versionCmd.Flags().BoolP("json", "j", false, "print the build information as json")
}

type buildInfo struct {
	Version  string `json:"version"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"built_at"`
	BuiltBy  string `json:"built_by"`
	Platform string `json:"platform"`
	Lua      string `json:"lua"`
	Mpv      string `json:"mpv"`
}

// mpvVersion is the first line mpv prints about itself, empty when it cannot run.
func mpvVersion() string {
	out, err := exec.Command(viper.GetString(key.MpvBinary), "--version").Output()
	if err != nil {
		return ""
	}

	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := buildInfo{
			Version:  constant.Version,
			Revision: constant.Revision,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			Platform: runtime.GOOS + "/" + runtime.GOARCH,
			Lua:      lua.LuaVersion,
			Mpv:      mpvVersion(),
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
			return
		}

		defer version.Notify(cmd.Context())

		rows := [][2]string{
			{"Version", style.Bold(info.Version)},
			{"Git Commit", info.Revision},
			{"Build Date", info.BuiltAt},
			{"Built By", info.BuiltBy},
			{"Platform", info.Platform},
			{"Scripts", info.Lua},
			{"Player", lo.Ternary(info.Mpv != "", info.Mpv, style.Fg(style.Red)("mpv not found"))},
		}

		cmd.Printf("%s %s\n\n", style.Fg(style.Purple)("▇▇▇"), style.Fg(style.Purple)(constant.Gxplayer))
		for _, row := range rows {
			cmd.Printf("  %s %s\n", style.Faint(fmt.Sprintf("%-12s", row[0])), row[1])
		}
	},
}
