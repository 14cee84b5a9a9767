// Package inline is the non-interactive mode: it loads one source, waits until
// its duration is known and prints a report of the player.
package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gxplayer/gxplayer/event"
	"github.com/gxplayer/gxplayer/log"
	"github.com/gxplayer/gxplayer/player"
	"github.com/samber/lo"
)

var errNoMedia = errors.New("no media element")

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if options.Media == nil {
		return errNoMedia
	}

	audio := player.NewAudio(options.Media)
	defer audio.Close()

	report, err := Inspect(ctx, audio, options)
	if err != nil {
		return err
	}

	if options.Json {
		data, err := asJson(report, options)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(options.Out, string(data))
		return err
	}

	return writeText(options.Out, report)
}

// Inspect loads the source into audio and returns its report once the duration is known.
// The media is left paused at the requested position.
func Inspect(ctx context.Context, audio *player.Audio, options *Options) (player.Report, error) {
	timeout := lo.Ternary(options.Timeout > 0, options.Timeout, DefaultTimeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ready := make(chan struct{}, 1)
	failed := make(chan *player.PlaybackError, 1)

	onReady := audio.On(player.EventReady, func(any, event.Data) error {
		select {
		case ready <- struct{}{}:
		default:
		}
		return nil
	})
	defer audio.RemoveEventListener(player.EventReady, onReady)

	onError := audio.On(player.EventError, func(_ any, data event.Data) error {
		if perr, ok := player.ErrorFrom(data); ok {
			select {
			case failed <- perr:
			default:
			}
		}
		return nil
	})
	defer audio.RemoveEventListener(player.EventError, onError)

	if volume, ok := options.Volume.Get(); ok {
		if err := audio.SetVolume(volume); err != nil {
			return player.Report{}, err
		}
	}

	logger := log.WithFields(log.Fields{"source": options.Source})
	logger.Info("loading")

	if err := audio.Load(options.Source); err != nil {
		return player.Report{}, fmt.Errorf("load %s: %w", options.Source, err)
	}

	if audio.Duration() <= 0 {
		select {
		case <-ready:
		case perr := <-failed:
			return player.Report{}, perr
		case <-ctx.Done():
			return player.Report{}, fmt.Errorf("waiting for %s: %w", options.Source, ctx.Err())
		}
	}

	if err := audio.Pause(); err != nil {
		logger.Warnf("pause: %v", err)
	}

	if at, ok := options.At.Get(); ok {
		if err := audio.Seek(at); err != nil {
			return player.Report{}, fmt.Errorf("seek to %s: %w", at, err)
		}
	}

	report := audio.Snapshot()
	logger.WithField("duration", report.Duration).Info("inspected")
	return report, nil
}

func writeText(out io.Writer, report player.Report) error {
	rows := [][2]string{
		{"source", report.Source},
		{"backend", report.Backend},
		{"status", string(report.Status)},
		{"duration", report.DurationFormatted},
		{"position", fmt.Sprintf("%s (%.0f%%)", report.CurrentTimeFormatted, report.CurrentPercentage)},
		{"remaining", fmt.Sprintf("%s (%.0f%%)", report.RemainingFormatted, report.RemainingPercentage)},
		{"volume", fmt.Sprint(report.State.Volume)},
	}

	width := lo.Max(lo.Map(rows, func(r [2]string, _ int) int { return len(r[0]) }))

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(r[0])
		b.WriteString(strings.Repeat(" ", width-len(r[0])+1))
		b.WriteString(r[1])
		b.WriteByte('\n')
	}

	_, err := io.WriteString(out, b.String())
	return err
}
