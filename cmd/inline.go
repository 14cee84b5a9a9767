package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/gxplayer/gxplayer/filesystem"
	"github.com/gxplayer/gxplayer/inline"
	"github.com/gxplayer/gxplayer/key"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("at", "a", "", "position to report: seconds, h:mm:ss or a percentage like 50%")
	inlineCmd.Flags().IntP("volume", "V", -1, "volume to set before reporting, 0 to 100")
	inlineCmd.Flags().BoolP("json", "j", false, "print the report as json")
	inlineCmd.Flags().Bool("schema", false, "print the json schema of the report and exit")
	inlineCmd.Flags().DurationP("timeout", "t", inline.DefaultTimeout, "how long to wait for the media duration")
	inlineCmd.Flags().StringP("output", "o", "", "write the report to a file")
}

var inlineCmd = &cobra.Command{
	Use:   "inline <source>",
	Short: "Load a source without the interface and print a report",
	Long: `Load a source, wait until its duration is known and print a report of the player.

Positions:
  90    - seconds
  1:30  - h:mm:ss, hours and minutes are optional
  50%   - percentage of the duration`,
	Example: "  gxplayer inline song.flac --at 50% --json",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(inline.Schema()))
			return
		}

		if len(args) == 0 {
			handleErr(errors.New("source is required"))
		}
		source := args[0]

		at, err := inline.ParsePosition(lo.Must(cmd.Flags().GetString("at")))
		handleErr(err)

		volume := mo.None[int]()
		if v := lo.Must(cmd.Flags().GetInt("volume")); v >= 0 {
			volume = mo.Some(v)
		} else if viper.IsSet(key.PlayerVolume) {
			volume = mo.Some(viper.GetInt(key.PlayerVolume))
		}

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		element := startElement(cmd, source, true)

		handleErr(inline.Run(cmd.Context(), &inline.Options{
			Out:     writer,
			Media:   element,
			Source:  source,
			At:      at,
			Volume:  volume,
			Json:    lo.Must(cmd.Flags().GetBool("json")),
			Timeout: lo.Must(cmd.Flags().GetDuration("timeout")),
		}))
	},
}
