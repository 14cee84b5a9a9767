package player

import (
	"sync"

	"github.com/gxplayer/gxplayer/event"
	"github.com/gxplayer/gxplayer/log"
	"github.com/gxplayer/gxplayer/timecode"
	"github.com/sirupsen/logrus"
)

// Report is a serialisable snapshot of a player.
type Report struct {
	Backend              string  `json:"backend" jsonschema:"enum=audio,enum=video,enum=youtube"`
	Source               string  `json:"source,omitempty"`
	Status               Status  `json:"status" jsonschema:"enum=idle,enum=playing,enum=buffering,enum=paused,enum=ended"`
	State                State   `json:"state"`
	Duration             float64 `json:"duration" jsonschema:"description=Media length in seconds"`
	DurationFormatted    string  `json:"duration_formatted"`
	CurrentTime          float64 `json:"current_time" jsonschema:"description=Playback position in seconds"`
	CurrentTimeFormatted string  `json:"current_time_formatted"`
	CurrentPercentage    float64 `json:"current_percentage" jsonschema:"minimum=0,maximum=100"`
	RemainingTime        float64 `json:"remaining_time"`
	RemainingFormatted   string  `json:"remaining_formatted"`
	RemainingPercentage  float64 `json:"remaining_percentage" jsonschema:"minimum=0,maximum=100"`
}

// Base implements the parts of Player that only depend on the clock and the state.
// Backends embed it and supply Duration, CurrentTime and the transport methods.
type Base struct {
	*event.Emitter

	self    Player
	backend string
	logger  *logrus.Entry

	mu     sync.RWMutex
	state  State
	source string
}

func newBase(self Player, backend string) *Base {
	b := &Base{
		Emitter: event.NewEmitter(self),
		self:    self,
		backend: backend,
		logger:  log.WithFields(log.Fields{"backend": backend}),
		state:   NewState(),
	}

	for _, name := range Events {
		b.Register(name)
	}

	return b
}

// Backend names the engine behind the player.
func (b *Base) Backend() string {
	return b.backend
}

// Source returns what was last loaded.
func (b *Base) Source() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.source
}

func (b *Base) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

func (b *Base) Volume() int {
	return b.State().Volume
}

// Toggle pauses when playback was requested and plays otherwise.
func (b *Base) Toggle() error {
	if b.State().Playing {
		return b.self.Pause()
	}
	return b.self.Play()
}

// Resolve converts at into seconds against the current duration.
func (b *Base) Resolve(at timecode.Spec) float64 {
	if at == nil {
		return 0
	}
	return at.Resolve(b.self.Duration())
}

func (b *Base) CurrentTimeFormatted() string {
	return timecode.Format(b.self.CurrentTime())
}

func (b *Base) CurrentTimePercentage() float64 {
	return timecode.CurrentPercentage(b.self.CurrentTime(), b.self.Duration())
}

// RemainingTime returns the seconds left, never negative.
func (b *Base) RemainingTime() float64 {
	return max(b.self.Duration()-b.self.CurrentTime(), 0)
}

func (b *Base) RemainingTimeFormatted() string {
	return timecode.Format(b.RemainingTime())
}

func (b *Base) RemainingTimePercentage() float64 {
	return timecode.RemainingPercentage(b.self.CurrentTime(), b.self.Duration())
}

func (b *Base) DurationFormatted() string {
	return timecode.Format(b.self.Duration())
}

// TimeAt returns the second found at percentage of the media.
func (b *Base) TimeAt(percentage float64) float64 {
	return timecode.TimeAt(b.self.Duration(), percentage)
}

func (b *Base) TimeAtFormatted(percentage float64) string {
	return timecode.Format(b.TimeAt(percentage))
}

// PercentageOf returns how far into the media at lies.
func (b *Base) PercentageOf(at timecode.Spec) float64 {
	return timecode.PercentOf(b.self.Duration(), b.Resolve(at))
}

func (b *Base) Snapshot() Report {
	state := b.State()
	current := b.self.CurrentTime()
	duration := b.self.Duration()
	remaining := max(duration-current, 0)

	return Report{
		Backend:              b.backend,
		Source:               b.Source(),
		Status:               state.Status(),
		State:                state,
		Duration:             duration,
		DurationFormatted:    timecode.Format(duration),
		CurrentTime:          current,
		CurrentTimeFormatted: timecode.Format(current),
		CurrentPercentage:    timecode.CurrentPercentage(current, duration),
		RemainingTime:        remaining,
		RemainingFormatted:   timecode.Format(remaining),
		RemainingPercentage:  timecode.RemainingPercentage(current, duration),
	}
}

func (b *Base) setSource(src string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.source = src
}

// apply mutates the state under the lock and reports whether any flag moved.
func (b *Base) apply(fn func(s *State)) (State, bool) {
	b.mu.Lock()
	before := b.state
	fn(&b.state)
	after := b.state
	b.mu.Unlock()

	if after != before {
		if err := after.Valid(); err != nil {
			b.logger.Warnf("inconsistent state %+v: %v", after, err)
		}
	}

	return after, after != before
}

// update applies fn and fires statechange when the flags moved.
func (b *Base) update(fn func(s *State)) State {
	after, changed := b.apply(fn)
	if changed {
		b.emit(EventStateChange, stateData(after))
	}
	return after
}

func stateData(s State) event.Data {
	return event.Data{"status": s.Status(), "state": s}
}

// emit fires name and logs listener failures; the engine that triggered it cannot act on them.
func (b *Base) emit(name string, data event.Data) error {
	err := b.Dispatch(name, data)
	if err != nil {
		b.logger.WithField("event", name).Warnf("listener failed: %v", err)
	}
	return err
}

func (b *Base) fail(perr *PlaybackError) {
	b.logger.WithField("code", perr.Code).Error(perr.Message)
	b.emit(EventError, perr.Data())
}
