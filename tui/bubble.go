package tui

import (
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/gxplayer/gxplayer/event"
	"github.com/gxplayer/gxplayer/internal/ui"
	"github.com/gxplayer/gxplayer/player"
	"github.com/gxplayer/gxplayer/style"
	"github.com/gxplayer/gxplayer/util"
)

type statefulBubble struct {
	state  state
	loaded bool

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model
	notifier  *ui.Model

	player    player.Player
	listeners map[string]*event.Listener
	closeOnce sync.Once

	playerEventsChannel chan playerEventMsg

	report    player.Report
	unmuted   int
	lastError error

	width, height int

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.progressC.Width = max(b.width, 10)
	b.helpC.Width = b.width
}

func newBubble(options *Options) *statefulBubble {
	bubble := statefulBubble{
		keymap:              newStatefulKeymap(),
		notifier:            &ui.Model{},
		player:              options.Player,
		listeners:           make(map[string]*event.Listener),
		playerEventsChannel: make(chan playerEventMsg, 64),
		options:             options,
	}

	if bubble.options.SeekStep <= 0 {
		bubble.options.SeekStep = 5
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.Accent)

	bubble.progressC = progress.New(
		progress.WithGradient(string(style.Secondary), string(style.Accent)),
		progress.WithoutPercentage(),
	)
	bubble.progressC.EmptyColor = string(style.Track)

	bubble.setState(loadingState)
	bubble.subscribe()
	bubble.report = bubble.player.Snapshot()

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	} else {
		bubble.resize(80, 24)
	}

	return &bubble
}
