package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gxplayer/gxplayer/event"
	"github.com/gxplayer/gxplayer/internal/ui"
	"github.com/gxplayer/gxplayer/log"
	"github.com/gxplayer/gxplayer/player"
	"github.com/gxplayer/gxplayer/timecode"
	"github.com/gxplayer/gxplayer/util"
	"github.com/samber/mo"
)

// playerEventMsg carries one player event into the program.
type playerEventMsg struct {
	Name string
	Data event.Data
}

type loadedMsg struct{}

func (b *statefulBubble) subscribe() {
	for _, name := range player.Events {
		l := event.Func(func(_ any, data event.Data) {
			select {
			case b.playerEventsChannel <- playerEventMsg{Name: name, Data: data}:
			default:
				// the program is behind, a later event carries a fresher state
				log.Debugf("tui dropped %s", name)
			}
		})
		b.listeners[name] = l
		b.player.AddEventListener(name, l)
	}
}

func (b *statefulBubble) close() {
	b.closeOnce.Do(func() {
		for name, l := range b.listeners {
			b.player.RemoveEventListener(name, l)
		}

		if err := b.player.Close(); err != nil {
			log.Warnf("close player: %v", err)
		}
	})
}

func (b *statefulBubble) load() tea.Cmd {
	return func() tea.Msg {
		if b.options.Load == nil {
			return loadedMsg{}
		}

		if err := b.options.Load(); err != nil {
			return fmt.Errorf("load: %w", err)
		}
		return loadedMsg{}
	}
}

func (b *statefulBubble) waitForPlayerEvent() tea.Cmd {
	return func() tea.Msg {
		return <-b.playerEventsChannel
	}
}

func (b *statefulBubble) refresh() {
	b.report = b.player.Snapshot()
}

func (b *statefulBubble) toggle() tea.Cmd {
	if err := b.player.Toggle(); err != nil {
		return ui.Notify(err.Error())
	}
	return nil
}

// seekBy moves the position by delta percent of the duration.
func (b *statefulBubble) seekBy(delta int) tea.Cmd {
	duration := b.player.Duration()
	if duration <= 0 {
		return nil
	}

	current := timecode.PercentOf(duration, b.player.CurrentTime())
	target := util.Clamp(current+float64(delta), 0, 100)

	if err := b.player.Seek(timecode.Percent(target)); err != nil {
		return ui.Notify(err.Error())
	}

	b.refresh()
	return ui.Notify("seek " + b.report.CurrentTimeFormatted)
}

func (b *statefulBubble) setVolume(volume int) tea.Cmd {
	volume = util.Clamp(volume, 0, 100)
	if err := b.player.SetVolume(volume); err != nil {
		return ui.Notify(err.Error())
	}

	b.refresh()
	return ui.Notify(fmt.Sprintf("volume %d%%", volume))
}

func (b *statefulBubble) changeVolume(delta int) tea.Cmd {
	return b.setVolume(b.player.Volume() + delta)
}

func (b *statefulBubble) toggleMute() tea.Cmd {
	if volume := b.player.Volume(); volume > 0 {
		b.unmuted = volume
		return b.setVolume(0)
	}

	return b.setVolume(max(b.unmuted, 10))
}

func (b *statefulBubble) replay() tea.Cmd {
	if err := b.player.PlayFrom(timecode.Seconds(0)); err != nil {
		return ui.Notify(err.Error())
	}

	b.refresh()
	return nil
}

// onReady jumps to the requested start position, once.
func (b *statefulBubble) onReady() tea.Cmd {
	if b.state == loadingState {
		b.setState(playingState)
	}

	at, ok := b.options.At.Get()
	if !ok {
		return nil
	}
	b.options.At = mo.None[timecode.Spec]()

	if err := b.player.Seek(at); err != nil {
		return ui.Notify(err.Error())
	}
	b.refresh()
	return nil
}
