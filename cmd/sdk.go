package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gxplayer/gxplayer/filesystem"
	"github.com/gxplayer/gxplayer/icon"
	"github.com/gxplayer/gxplayer/key"
	"github.com/gxplayer/gxplayer/loader"
	"github.com/gxplayer/gxplayer/style"
	"github.com/gxplayer/gxplayer/util"
	"github.com/gxplayer/gxplayer/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(sdkCmd)
	sdkCmd.AddCommand(sdkLoadCmd, sdkListCmd)

	sdkLoadCmd.Flags().StringP("property", "p", "", "dotted global that marks the script as ready")
	sdkLoadCmd.Flags().String("parent", "body", "element the script is recorded under")
	sdkLoadCmd.Flags().Duration("max-wait", 0, "give up waiting for the property after this long")
	lo.Must0(viper.BindPFlag(key.LoaderMaxWait, sdkLoadCmd.Flags().Lookup("max-wait")))
}

var sdkCmd = &cobra.Command{
	Use:   "sdk",
	Short: "Bootstrap SDK scripts",
}

var sdkLoadCmd = &cobra.Command{
	Use:   "load <script>",
	Short: "Run a Lua script and wait until it defines its property",
	Long: `Run a Lua script and wait until it defines its property.

Relative paths are resolved against the scripts directory, http(s) scripts
are downloaded and cached.`,
	Example: "  gxplayer sdk load yt.lua --property YT.Player",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		host := loader.NewLuaHost(loader.LuaOptions{
			Dir:           where.Scripts(),
			CachePath:     where.ScriptCache(),
			CacheLifetime: viper.GetDuration(key.LoaderCacheTTL),
		})
		defer host.Close()

		l := loader.New(host, args[0], lo.Must(cmd.Flags().GetString("property")))
		l.Parent = lo.Must(cmd.Flags().GetString("parent"))
		l.Interval = viper.GetDuration(key.LoaderPollInterval)
		l.MaxWait = viper.GetDuration(key.LoaderMaxWait)

		erase := util.PrintErasable(fmt.Sprintf("%s Loading %s...", icon.Get(icon.Progress), args[0]))
		msg, err := l.Load(cmd.Context())
		erase()
		handleErr(err)

		fmt.Printf("%s %s\n", style.Fg(style.Green)(icon.Get(icon.Success)), msg)
	},
}

var sdkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scripts in the scripts directory",
	Run: func(cmd *cobra.Command, args []string) {
		dir := where.Scripts()
		entries, err := filesystem.API().ReadDir(dir)
		handleErr(err)

		scripts := lo.FilterMap(entries, func(entry fs.FileInfo, _ int) (string, bool) {
			return entry.Name(), !entry.IsDir() && strings.HasSuffix(entry.Name(), ".lua")
		})

		if len(scripts) == 0 {
			fmt.Printf("no scripts in %s\n", dir)
			return
		}

		for _, name := range scripts {
			fmt.Printf("%s %s %s\n", icon.Get(icon.Script), name, style.Faint(filepath.Join(dir, name)))
		}
	},
}
