package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gxplayer/gxplayer/icon"
	"github.com/gxplayer/gxplayer/player"
	"github.com/gxplayer/gxplayer/style"
	"github.com/muesli/reflow/wrap"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case playingState:
		output = b.viewPlaying()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			style.Truncate(b.width)(b.spinnerC.View() + " " + b.source()),
		},
	)
}

func (b *statefulBubble) viewPlaying() string {
	r := b.report

	clock := fmt.Sprintf(
		"%s / %s  %s",
		r.CurrentTimeFormatted,
		r.DurationFormatted,
		style.Faint("-"+r.RemainingFormatted),
	)

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(b.statusIcon() + " " + style.Fg(style.Accent)(b.source())),
		"",
		b.progressC.ViewAs(r.CurrentPercentage / 100),
		clock + "  " + b.viewVolume(),
	}

	if r.Status == player.StatusBuffering {
		lines = append(lines, "", b.spinnerC.View()+" "+style.Fg(style.Warning)("buffering"))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewVolume() string {
	volume := b.report.State.Volume
	if volume == 0 {
		return style.Fg(style.Subtle)(icon.Get(icon.Muted) + " muted")
	}
	return fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), volume)
}

func (b *statefulBubble) statusIcon() string {
	switch b.report.Status {
	case player.StatusPlaying:
		return style.Fg(style.Success)(icon.Get(icon.Play))
	case player.StatusBuffering:
		return style.Fg(style.Warning)(icon.Get(icon.Buffering))
	case player.StatusEnded:
		return style.Fg(style.Subtle)(icon.Get(icon.Ended))
	default:
		return style.Fg(style.Secondary)(icon.Get(icon.Pause))
	}
}

func (b *statefulBubble) viewError() string {
	var message string
	if b.lastError != nil {
		message = b.lastError.Error()
	}

	errorMsg := wrap.String(style.Fg(style.Failure)(message), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Playback failed:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) source() string {
	if source := b.report.Source; source != "" {
		return source
	}
	return b.report.Backend
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
