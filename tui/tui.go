// Package tui is the interactive terminal player.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gxplayer/gxplayer/player"
	"github.com/gxplayer/gxplayer/timecode"
	"github.com/samber/mo"
)

type Options struct {
	Player player.Player
	// Load starts the media; it runs once the program is up.
	Load func() error
	// At is where playback jumps to once the media is ready.
	At mo.Option[timecode.Spec]
	// SeekStep is the percentage moved by the seek keys.
	SeekStep int
}

func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.close()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
