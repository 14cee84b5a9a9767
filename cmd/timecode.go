package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gxplayer/gxplayer/timecode"
	"github.com/spf13/cobra"
)

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		handleErr(fmt.Errorf("not a number of seconds: %s", s))
	}
	return v
}

// parseDuration accepts a clock or plain seconds.
func parseDuration(s string) float64 {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}

	v, err := timecode.Parse(s)
	handleErr(err)
	return v
}

func init() {
	rootCmd.AddCommand(timecodeCmd)
	timecodeCmd.AddCommand(timecodeFormatCmd, timecodeParseCmd, timecodeAtCmd, timecodePercentCmd)
	timecodeCmd.SetOut(os.Stdout)
}

var timecodeCmd = &cobra.Command{
	Use:     "timecode",
	Short:   "Convert between seconds, clocks and percentages",
	Aliases: []string{"tc"},
}

var timecodeFormatCmd = &cobra.Command{
	Use:     "format <seconds>",
	Short:   "Print seconds as a clock",
	Example: "  gxplayer timecode format 3725",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(timecode.Format(parseSeconds(args[0])))
	},
}

var timecodeParseCmd = &cobra.Command{
	Use:     "parse <clock>",
	Short:   "Print a clock as seconds",
	Example: "  gxplayer timecode parse 1:02:05",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := timecode.Parse(args[0])
		handleErr(err)
		cmd.Println(strconv.FormatFloat(v, 'f', -1, 64))
	},
}

var timecodeAtCmd = &cobra.Command{
	Use:     "at <duration> <percentage>",
	Short:   "Print the position at a percentage of a duration",
	Example: "  gxplayer timecode at 3:20 25",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		seconds := timecode.TimeAt(parseDuration(args[0]), parseSeconds(args[1]))
		cmd.Printf("%s (%s)\n", timecode.Format(seconds), strconv.FormatFloat(seconds, 'f', -1, 64))
	},
}

var timecodePercentCmd = &cobra.Command{
	Use:     "percent <duration> <position>",
	Short:   "Print how far into a duration a position lies",
	Example: "  gxplayer timecode percent 3:20 0:50\n  gxplayer timecode percent 200 50%",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		duration := parseDuration(args[0])
		position := timecode.ParseSpec(args[1]).Resolve(duration)
		cmd.Printf("%s%%\n", strconv.FormatFloat(timecode.PercentOf(duration, position), 'f', 2, 64))
	},
}
