package player

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gxplayer/gxplayer/constant"
	"github.com/gxplayer/gxplayer/event"
	"github.com/gxplayer/gxplayer/key"
	"github.com/gxplayer/gxplayer/loader"
	"github.com/gxplayer/gxplayer/timecode"
	"github.com/spf13/viper"
)

// Widget state codes.
const (
	YouTubeUnstarted = -1
	YouTubeEnded     = 0
	YouTubePlaying   = 1
	YouTubePaused    = 2
	YouTubeBuffering = 3
	YouTubeCued      = 5
)

// YouTubeSDKError is the error code fired when the SDK itself could not be loaded.
const YouTubeSDKError = -100

// YouTubeErrorMessage describes a widget error code.
func YouTubeErrorMessage(code int) string {
	switch code {
	case 2:
		return "invalid parameters"
	case 5:
		return "the HTML5 player failed"
	case 100:
		return "the video was not found"
	case 101, 150:
		return "the owner does not allow the video to be played in embedded players"
	case YouTubeSDKError:
		return "the SDK could not be loaded"
	default:
		return "unknown error"
	}
}

// Widget is a vendor player instance.
type Widget interface {
	PlayVideo() error
	PauseVideo() error
	SeekTo(seconds float64, allowSeekAhead bool) error
	SetVolume(v int) error
	LoadVideoByID(id string) error
	CuePlaylist(id string) error
	CurrentTime() float64
	Duration() float64
	Destroy() error
}

// WidgetEvents are the callbacks a widget invokes, possibly from its own goroutine.
type WidgetEvents struct {
	OnReady       func()
	OnStateChange func(code int)
	OnError       func(code int)
}

// WidgetConfig describes the widget to create.
type WidgetConfig struct {
	EmbedID      string
	Width        int
	Height       int
	VideoID      string
	StartSeconds float64
	Autoplay     bool
	Controls     bool
	Events       WidgetEvents
}

// WidgetFactory builds widgets once the SDK is available.
type WidgetFactory interface {
	// Deploy makes sure the wrapper exists and holds an embed element,
	// and returns the wrapper width.
	Deploy(wrapperID, embedID string) (width int, err error)

	NewWidget(cfg WidgetConfig) (Widget, error)
}

// SDK loads the vendor script. *loader.Loader satisfies it.
type SDK interface {
	Load(ctx context.Context) (string, error)
}

// NewYouTubeSDK returns a loader for the configured SDK script on host.
func NewYouTubeSDK(host loader.Host) *loader.Loader {
	src := viper.GetString(key.YouTubeSDKURL)
	if src == "" {
		src = constant.YouTubeSDKURL
	}

	property := viper.GetString(key.YouTubeSDKProperty)
	if property == "" {
		property = constant.YouTubeSDKProperty
	}

	l := loader.New(host, src, property)
	if v := viper.GetDuration(key.LoaderPollInterval); v > 0 {
		l.Interval = v
	}
	l.MaxWait = viper.GetDuration(key.LoaderMaxWait)

	return l
}

// YouTubeSettings configure the embed.
type YouTubeSettings struct {
	WrapperID string
	EmbedID   string
	// Width is a pixel count or "auto" to fill the wrapper.
	Width          string
	Height         int
	Autoplay       bool
	Controls       bool
	FollowInterval time.Duration
}

// DefaultYouTubeSettings returns the stock embed settings.
func DefaultYouTubeSettings() YouTubeSettings {
	return YouTubeSettings{
		WrapperID:      constant.YouTubeWrapperID,
		EmbedID:        constant.YouTubeEmbedID,
		Width:          strconv.Itoa(constant.YouTubeWidth),
		Height:         constant.YouTubeHeight,
		Autoplay:       true,
		Controls:       true,
		FollowInterval: time.Second,
	}
}

// YouTubeSettingsFromConfig reads the settings from the configuration,
// keeping defaults for anything unset.
func YouTubeSettingsFromConfig() YouTubeSettings {
	s := DefaultYouTubeSettings()

	if v := viper.GetString(key.YouTubeWrapperID); v != "" {
		s.WrapperID = v
	}
	if v := viper.GetString(key.YouTubeEmbedID); v != "" {
		s.EmbedID = v
	}
	if v := viper.GetString(key.YouTubeWidth); v != "" {
		s.Width = v
	}
	if v := viper.GetInt(key.YouTubeHeight); v > 0 {
		s.Height = v
	}
	if v := viper.GetDuration(key.PlayerFollowInterval); v > 0 {
		s.FollowInterval = v
	}

	return s
}

// size computes the widget dimensions for a wrapper of the given width.
func (s YouTubeSettings) size(wrapperWidth int) (int, int) {
	if strings.EqualFold(strings.TrimSpace(s.Width), "auto") {
		return wrapperWidth, int(float64(wrapperWidth) / constant.YouTubeAspect)
	}

	width, err := strconv.Atoi(strings.TrimSpace(s.Width))
	if err != nil || width <= 0 {
		width = constant.YouTubeWidth
	}

	height := s.Height
	if height <= 0 {
		height = constant.YouTubeHeight
	}

	return width, height
}

// YouTube plays videos through an embedded vendor widget.
type YouTube struct {
	*Base

	settings YouTubeSettings
	sdk      SDK
	factory  WidgetFactory

	mu           sync.Mutex
	sdkReady     bool
	wrapperWidth int
	widget       Widget
	videoID      string
	currentTime  float64
	followStop   chan struct{}
}

// NewYouTube creates a player that loads sdk and builds widgets with factory.
func NewYouTube(sdk SDK, factory WidgetFactory, settings YouTubeSettings) *YouTube {
	if settings.FollowInterval <= 0 {
		settings.FollowInterval = time.Second
	}

	y := &YouTube{
		settings: settings,
		sdk:      sdk,
		factory:  factory,
	}
	y.Base = newBase(y, "youtube")

	return y
}

func (y *YouTube) Duration() float64 {
	if w := y.current(); w != nil {
		return w.Duration()
	}
	return 0
}

func (y *YouTube) CurrentTime() float64 {
	if w := y.current(); w != nil {
		return w.CurrentTime()
	}

	y.mu.Lock()
	defer y.mu.Unlock()
	return y.currentTime
}

// VideoID returns the last loaded video.
func (y *YouTube) VideoID() string {
	y.mu.Lock()
	defer y.mu.Unlock()
	return y.videoID
}

// Load plays videoID, loading the SDK and building the widget first when needed.
// It returns once the widget accepted the video.
func (y *YouTube) Load(ctx context.Context, videoID string) error {
	y.mu.Lock()
	y.videoID = videoID
	ready := y.sdkReady
	y.mu.Unlock()

	y.setSource(videoID)

	if !ready {
		if err := y.setupSDK(ctx); err != nil {
			return err
		}
	}

	y.startFollowing()

	if w := y.current(); w != nil {
		y.logger.Debugf("loading video %s", videoID)
		return w.LoadVideoByID(videoID)
	}

	if err := y.initializeWidget(ctx, videoID); err != nil {
		y.stopFollowing()
		return err
	}

	return y.Play()
}

func (y *YouTube) setupSDK(ctx context.Context) error {
	wrapperWidth, err := y.factory.Deploy(y.settings.WrapperID, y.settings.EmbedID)
	if err != nil {
		return err
	}

	y.mu.Lock()
	y.wrapperWidth = wrapperWidth
	y.mu.Unlock()

	msg, err := y.sdk.Load(ctx)
	if err != nil {
		y.fail(&PlaybackError{Code: YouTubeSDKError, Message: YouTubeErrorMessage(YouTubeSDKError), Err: err})
		return err
	}
	y.logger.Debug(msg)

	y.mu.Lock()
	y.sdkReady = true
	y.mu.Unlock()

	return nil
}

func (y *YouTube) initializeWidget(ctx context.Context, videoID string) error {
	y.mu.Lock()
	width, height := y.settings.size(y.wrapperWidth)
	y.mu.Unlock()

	// one outcome: ready or the first error, whichever comes first
	outcome := make(chan error, 1)
	settle := func(err error) {
		select {
		case outcome <- err:
		default:
		}
	}

	widget, err := y.factory.NewWidget(WidgetConfig{
		EmbedID:  y.settings.EmbedID,
		Width:    width,
		Height:   height,
		VideoID:  videoID,
		Autoplay: y.settings.Autoplay,
		Controls: y.settings.Controls,
		Events: WidgetEvents{
			OnReady: func() {
				settle(nil)
			},
			OnStateChange: y.onStateChange,
			OnError: func(code int) {
				perr := y.onError(code)
				settle(perr)
			},
		},
	})
	if err != nil {
		return err
	}

	// the widget is only installed once it reported ready
	select {
	case err = <-outcome:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		if derr := widget.Destroy(); derr != nil {
			y.logger.Warnf("destroy failed widget: %v", derr)
		}
		return err
	}

	y.mu.Lock()
	y.widget = widget
	y.mu.Unlock()

	y.onReady()
	return nil
}

func (y *YouTube) Play() error {
	w := y.current()
	if w == nil {
		return ErrNoWidget
	}

	if err := w.PlayVideo(); err != nil {
		return err
	}

	y.emit(EventPlay, nil)
	return nil
}

func (y *YouTube) PlayFrom(at timecode.Spec) error {
	if err := y.Seek(at); err != nil {
		return err
	}
	return y.Play()
}

func (y *YouTube) Pause() error {
	w := y.current()
	if w == nil {
		return ErrNoWidget
	}
	return w.PauseVideo()
}

func (y *YouTube) Seek(at timecode.Spec) error {
	w := y.current()
	if w == nil {
		return ErrNoWidget
	}
	return w.SeekTo(y.Resolve(at), true)
}

// SetVolume stores the volume and applies it to the widget when there is one.
// A stored volume is applied once the widget becomes ready.
func (y *YouTube) SetVolume(v int) error {
	v = clampVolume(v)

	if w := y.current(); w != nil {
		if err := w.SetVolume(v); err != nil {
			return err
		}
	}

	y.apply(func(s *State) { s.Volume = v })
	y.emit(EventVolumeChange, event.Data{"volume": v})
	return nil
}

// CuePlaylist queues a playlist in the widget.
func (y *YouTube) CuePlaylist(id string) error {
	w := y.current()
	if w == nil {
		return ErrNoWidget
	}
	return w.CuePlaylist(id)
}

// Reset stops following and destroys the widget. The SDK stays loaded.
func (y *YouTube) Reset() error {
	y.stopFollowing()

	y.mu.Lock()
	w := y.widget
	y.widget = nil
	y.mu.Unlock()

	if w == nil {
		return nil
	}

	y.update(func(s *State) { *s = State{Volume: s.Volume} })
	return w.Destroy()
}

func (y *YouTube) Close() error {
	return y.Reset()
}

func (y *YouTube) current() Widget {
	y.mu.Lock()
	defer y.mu.Unlock()
	return y.widget
}

func (y *YouTube) onReady() {
	if w := y.current(); w != nil {
		if err := w.SetVolume(y.Volume()); err != nil {
			y.logger.Warnf("restore volume: %v", err)
		}
	}
	y.emit(EventReady, event.Data{"videoId": y.VideoID()})
}

func (y *YouTube) onStateChange(code int) {
	y.logger.Debugf("state change %d", code)

	var (
		after State
		name  string
	)

	switch code {
	case YouTubeUnstarted:
		after, _ = y.apply(func(s *State) {
			*s = State{Volume: s.Volume}
		})

	case YouTubeEnded:
		after, _ = y.apply(func(s *State) {
			*s = State{Volume: s.Volume, Ended: true}
		})
		y.stopFollowing()
		name = EventEnded

	case YouTubePlaying:
		after, _ = y.apply(func(s *State) {
			*s = State{Volume: s.Volume, Playing: true, Reproducing: true}
		})
		y.startFollowing()
		name = EventPlaying

	case YouTubePaused:
		after, _ = y.apply(func(s *State) {
			*s = State{Volume: s.Volume, Paused: true}
		})
		name = EventPause

	case YouTubeBuffering:
		after, _ = y.apply(func(s *State) {
			*s = State{Volume: s.Volume, Playing: true, Buffering: true, Waiting: true}
		})
		name = EventWaiting

	case YouTubeCued:
		if err := y.Play(); err != nil {
			y.logger.Warnf("play cued video: %v", err)
		}
		after = y.State()

	default:
		after = y.State()
	}

	data := stateData(after)
	data["code"] = code
	y.emit(EventStateChange, data)

	if name != "" {
		y.emit(name, nil)
	}
}

func (y *YouTube) onError(code int) *PlaybackError {
	perr := &PlaybackError{Code: code, Message: YouTubeErrorMessage(code)}
	y.fail(perr)
	return perr
}

// startFollowing polls the widget position and fires timeupdate whenever it moved.
func (y *YouTube) startFollowing() {
	y.mu.Lock()
	defer y.mu.Unlock()

	if y.followStop != nil {
		return
	}

	stop := make(chan struct{})
	y.followStop = stop

	go func() {
		ticker := time.NewTicker(y.settings.FollowInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				y.following(stop)
			}
		}
	}()
}

func (y *YouTube) isFollowing() bool {
	y.mu.Lock()
	defer y.mu.Unlock()
	return y.followStop != nil
}

func (y *YouTube) stopFollowing() {
	y.mu.Lock()
	defer y.mu.Unlock()

	if y.followStop != nil {
		close(y.followStop)
		y.followStop = nil
	}
}

// following reports whether the position moved since the previous tick.
// A follower that was stopped in the meantime reports nothing.
func (y *YouTube) following(stop chan struct{}) bool {
	var t float64
	if w := y.current(); w != nil {
		t = w.CurrentTime()
	}

	y.mu.Lock()
	if y.followStop != stop {
		y.mu.Unlock()
		return false
	}
	moved := t != y.currentTime
	if moved {
		y.currentTime = t
	}
	y.mu.Unlock()

	if moved {
		y.emit(EventTimeUpdate, event.Data{"currentTime": t})
	}

	return moved
}
