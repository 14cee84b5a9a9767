package cmd

import (
	"github.com/gxplayer/gxplayer/inline"
	"github.com/gxplayer/gxplayer/key"
	"github.com/gxplayer/gxplayer/log"
	"github.com/gxplayer/gxplayer/mpv"
	"github.com/gxplayer/gxplayer/player"
	"github.com/gxplayer/gxplayer/tui"
	"github.com/gxplayer/gxplayer/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("at", "a", "", "start position: seconds, h:mm:ss or a percentage like 50%")
	playCmd.Flags().IntP("volume", "V", 100, "initial volume, 0 to 100")
	lo.Must0(viper.BindPFlag(key.PlayerVolume, playCmd.Flags().Lookup("volume")))
	playCmd.Flags().IntP("seek-step", "s", 5, "percentage skipped by the seek keys")
	lo.Must0(viper.BindPFlag(key.PlayerSeekStep, playCmd.Flags().Lookup("seek-step")))
	playCmd.Flags().BoolP("no-video", "n", false, "play the audio only")
}

// startElement spawns mpv for source.
func startElement(cmd *cobra.Command, source string, noVideo bool) *mpv.Element {
	CheckDependencies()

	opts := mpv.OptionsFromConfig()
	opts.NoVideo = noVideo
	opts.Title = util.FileStem(source)

	element := mpv.New(opts)
	handleErr(element.Start(cmd.Context()))
	log.Infof("mpv listening on %s", element.SocketPath())

	return element
}

var playCmd = &cobra.Command{
	Use:     "play <source>",
	Short:   "Play a file or URL in the terminal player",
	Example: "  gxplayer play song.flac --at 1:30\n  gxplayer play https://example.com/video.mp4 --at 50%",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source := args[0]

		at, err := inline.ParsePosition(lo.Must(cmd.Flags().GetString("at")))
		handleErr(err)

		noVideo := lo.Must(cmd.Flags().GetBool("no-video"))
		element := startElement(cmd, source, noVideo)

		var (
			p    player.Player
			load func() error
		)
		if noVideo {
			audio := player.NewAudio(element)
			p, load = audio, func() error { return audio.Load(source) }
		} else {
			// mpv opens its own window, there is nothing to mount
			video := player.NewVideo(element, nil)
			p, load = video, func() error { return video.Load(source) }
		}

		handleErr(p.SetVolume(viper.GetInt(key.PlayerVolume)))

		handleErr(tui.Run(&tui.Options{
			Player:   p,
			Load:     load,
			At:       at,
			SeekStep: viper.GetInt(key.PlayerSeekStep),
		}))
	},
}
