package player

import (
	"errors"
	"fmt"

	"github.com/gxplayer/gxplayer/event"
)

// Event names fired by every backend.
const (
	EventPlay         = "play"
	EventPause        = "pause"
	EventPlaying      = "playing"
	EventWaiting      = "waiting"
	EventTimeUpdate   = "timeupdate"
	EventEnded        = "ended"
	EventError        = "error"
	EventReady        = "ready"
	EventStateChange  = "statechange"
	EventVolumeChange = "volumechange"
)

// Events lists every name in the order a playback usually produces them.
var Events = []string{
	EventReady,
	EventPlay,
	EventWaiting,
	EventPlaying,
	EventTimeUpdate,
	EventPause,
	EventVolumeChange,
	EventStateChange,
	EventEnded,
	EventError,
}

var (
	// ErrNoWidget is returned by YouTube operations before a widget exists.
	ErrNoWidget = errors.New("player widget is not initialised")

	// ErrNoSource is returned when playback is requested before a source was loaded.
	ErrNoSource = errors.New("no source loaded")

	// ErrNoMounter is returned when a video has nowhere to be placed.
	ErrNoMounter = errors.New("video has no mounter")
)

// PlaybackError is the payload of the error event.
type PlaybackError struct {
	Code    int
	Message string
	Err     error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback error %d: %s", e.Code, e.Message)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// Data converts the error into an event payload.
func (e *PlaybackError) Data() event.Data {
	return event.Data{
		"code":    e.Code,
		"message": e.Message,
		"error":   e,
	}
}

// ErrorFrom extracts the PlaybackError carried by an error event payload.
func ErrorFrom(data event.Data) (*PlaybackError, bool) {
	err, ok := data["error"].(*PlaybackError)
	return err, ok
}
