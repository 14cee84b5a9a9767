package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gxplayer/gxplayer/internal/ui"
	"github.com/gxplayer/gxplayer/player"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, tea.Batch(cmds...)
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, tea.Batch(append(cmds, cmd)...)
	case playerEventMsg:
		cmds = append(cmds, b.handlePlayerEvent(msg), b.waitForPlayerEvent())
		return b, tea.Batch(cmds...)
	case loadedMsg:
		b.loaded = true
		b.refresh()
		// the ready event may have fired before the program saw the load finish
		if b.state == loadingState && b.player.Duration() > 0 {
			cmds = append(cmds, b.onReady())
		}
		return b, tea.Batch(cmds...)
	case error:
		b.raiseError(msg)
		return b, tea.Batch(cmds...)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit), bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case playingState:
		cmd = b.updatePlaying(msg)
	case errorState:
		cmd = b.updateError(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) handlePlayerEvent(msg playerEventMsg) tea.Cmd {
	b.refresh()

	switch msg.Name {
	case player.EventReady:
		return b.onReady()
	case player.EventError:
		if perr, ok := player.ErrorFrom(msg.Data); ok {
			b.raiseError(perr)
		}
	case player.EventEnded:
		return ui.Notify("ended")
	}

	return nil
}

func (b *statefulBubble) updatePlaying(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	step := b.options.SeekStep

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.toggle):
		return b.toggle()
	case bubblesKey.Matches(keyMsg, b.keymap.seekForward):
		return b.seekBy(step)
	case bubblesKey.Matches(keyMsg, b.keymap.seekBackward):
		return b.seekBy(-step)
	case bubblesKey.Matches(keyMsg, b.keymap.volumeUp):
		return b.changeVolume(5)
	case bubblesKey.Matches(keyMsg, b.keymap.volumeDown):
		return b.changeVolume(-5)
	case bubblesKey.Matches(keyMsg, b.keymap.mute):
		return b.toggleMute()
	case bubblesKey.Matches(keyMsg, b.keymap.replay):
		return b.replay()
	case bubblesKey.Matches(keyMsg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return nil
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if bubblesKey.Matches(keyMsg, b.keymap.back) && b.loaded {
		b.lastError = nil
		b.setState(playingState)
	}

	return nil
}
