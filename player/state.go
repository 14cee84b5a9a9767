package player

import (
	"errors"
)

// Status is a one-word summary of a State.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPlaying   Status = "playing"
	StatusBuffering Status = "buffering"
	StatusPaused    Status = "paused"
	StatusEnded     Status = "ended"
)

// State is the set of playback flags.
//
// Playing means playback was requested, Reproducing means media is actually
// advancing. A buffering player is playing but not reproducing.
type State struct {
	Paused      bool `json:"paused" jsonschema:"description=Playback was suspended by the user"`
	Playing     bool `json:"playing" jsonschema:"description=Playback was requested"`
	Reproducing bool `json:"reproducing" jsonschema:"description=Media is actually advancing"`
	Buffering   bool `json:"buffering" jsonschema:"description=Playback waits for data"`
	Waiting     bool `json:"waiting" jsonschema:"description=Playback stopped for a temporary lack of data"`
	Ended       bool `json:"ended" jsonschema:"description=Playback reached the end of the media"`
	Volume      int  `json:"volume" jsonschema:"minimum=0,maximum=100"`
}

// NewState returns the state of a freshly created player.
func NewState() State {
	return State{Volume: 100}
}

// Status summarises s.
func (s State) Status() Status {
	switch {
	case s.Ended:
		return StatusEnded
	case s.Reproducing:
		return StatusPlaying
	case s.Playing:
		return StatusBuffering
	case s.Paused:
		return StatusPaused
	default:
		return StatusIdle
	}
}

// Valid reports every flag combination that cannot happen.
func (s State) Valid() error {
	var errs []error

	if s.Reproducing && s.Waiting {
		errs = append(errs, errors.New("reproducing while waiting"))
	}
	if s.Reproducing && !s.Playing {
		errs = append(errs, errors.New("reproducing while not playing"))
	}
	if s.Ended && s.Reproducing {
		errs = append(errs, errors.New("reproducing after the end"))
	}
	if s.Paused && s.Playing {
		errs = append(errs, errors.New("paused while playing"))
	}
	if s.Volume < 0 || s.Volume > 100 {
		errs = append(errs, errors.New("volume out of range"))
	}

	return errors.Join(errs...)
}

func clampVolume(v int) int {
	return min(max(v, 0), 100)
}
