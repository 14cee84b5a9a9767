package version

import (
	"context"
	"fmt"
	"time"

	"github.com/gxplayer/gxplayer/constant"
	"github.com/gxplayer/gxplayer/icon"
	"github.com/gxplayer/gxplayer/key"
	"github.com/gxplayer/gxplayer/style"
	"github.com/gxplayer/gxplayer/util"
	"github.com/spf13/viper"
)

// Notify prints a banner when a newer release than the running one exists.
func Notify(ctx context.Context) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(style.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/gxplayer/gxplayer/releases/tag/v"+latest),
	)
}
