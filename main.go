package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gxplayer/gxplayer/cmd"
	"github.com/gxplayer/gxplayer/config"
	"github.com/gxplayer/gxplayer/internal/cache"
	"github.com/gxplayer/gxplayer/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd.Execute(ctx)
}
