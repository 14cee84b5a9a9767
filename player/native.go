package player

import (
	"fmt"
	"sync"

	"github.com/gxplayer/gxplayer/event"
	"github.com/gxplayer/gxplayer/timecode"
)

// Native media notifications, named after their HTML media counterparts.
const (
	MediaPlay           = "play"
	MediaPause          = "pause"
	MediaPlaying        = "playing"
	MediaWaiting        = "waiting"
	MediaTimeUpdate     = "timeupdate"
	MediaEnded          = "ended"
	MediaError          = "error"
	MediaLoadedMetadata = "loadedmetadata"
)

// MediaEvent is one notification from a Media.
type MediaEvent struct {
	Type string
	// Code and Err are set for MediaError.
	Code int
	Err  error
}

// Media is a native playback element: something that plays one source and
// reports what happens through Subscribe.
type Media interface {
	Play() error
	Pause() error
	CurrentTime() float64
	SetCurrentTime(seconds float64) error
	Duration() float64
	// Volume is in the 0-1 range.
	Volume() float64
	SetVolume(v float64) error
	SetSource(src string) error
	// Subscribe registers fn for every future notification.
	Subscribe(fn func(MediaEvent))
	Close() error
}

// ElementVolume maps a 0-100 volume onto the 0-1 range of a media element.
func ElementVolume(v int) float64 {
	return float64(clampVolume(v)) / 100
}

// Audio plays through a native Media element.
type Audio struct {
	*Base

	media Media

	mu          sync.Mutex
	currentTime float64
}

// NewAudio wraps media and starts translating its notifications.
func NewAudio(media Media) *Audio {
	a := &Audio{media: media}
	a.Base = newBase(a, "audio")
	a.init()
	return a
}

func (a *Audio) init() {
	volume := int(a.media.Volume()*100 + 0.5)
	a.apply(func(s *State) { s.Volume = clampVolume(volume) })
	a.media.Subscribe(a.handle)
}

func (a *Audio) Duration() float64 {
	return a.media.Duration()
}

// CurrentTime returns the position reported by the last timeupdate or seek.
func (a *Audio) CurrentTime() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentTime
}

// Load pauses the element, switches it to src and starts playback.
func (a *Audio) Load(src string) error {
	if err := a.media.Pause(); err != nil {
		a.logger.Debugf("pause before load: %v", err)
	}

	if err := a.media.SetSource(src); err != nil {
		return err
	}

	a.setSource(src)
	a.setCurrentTime(0)
	a.update(func(s *State) { *s = State{Volume: s.Volume} })

	return a.media.Play()
}

func (a *Audio) Play() error {
	if a.Source() == "" {
		return ErrNoSource
	}
	return a.media.Play()
}

func (a *Audio) PlayFrom(at timecode.Spec) error {
	if err := a.Seek(at); err != nil {
		return err
	}
	return a.Play()
}

func (a *Audio) Pause() error {
	if a.Source() == "" {
		return ErrNoSource
	}
	return a.media.Pause()
}

func (a *Audio) Seek(at timecode.Spec) error {
	if a.Source() == "" {
		return ErrNoSource
	}

	seconds := a.Resolve(at)
	if err := a.media.SetCurrentTime(seconds); err != nil {
		return err
	}

	a.setCurrentTime(seconds)
	return nil
}

func (a *Audio) SetVolume(v int) error {
	v = clampVolume(v)
	if err := a.media.SetVolume(ElementVolume(v)); err != nil {
		return err
	}

	a.apply(func(s *State) { s.Volume = v })
	a.emit(EventVolumeChange, event.Data{"volume": v})
	return nil
}

func (a *Audio) Close() error {
	return a.media.Close()
}

func (a *Audio) setCurrentTime(seconds float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.currentTime = seconds
}

func (a *Audio) handle(ev MediaEvent) {
	switch ev.Type {
	case MediaPlay:
		a.update(func(s *State) {
			s.Paused = false
			s.Playing = true
			s.Ended = false
		})
		a.emit(EventPlay, nil)

	case MediaPause:
		a.update(func(s *State) {
			s.Paused = true
			s.Reproducing = false
			s.Playing = false
		})
		a.emit(EventPause, nil)

	case MediaTimeUpdate:
		current := a.media.CurrentTime()
		a.setCurrentTime(current)
		a.update(func(s *State) {
			if s.Paused || s.Ended {
				return
			}
			s.Playing = true
			s.Reproducing = true
			s.Waiting = false
			s.Buffering = false
		})
		a.emit(EventTimeUpdate, event.Data{"currentTime": current})

	case MediaWaiting:
		a.update(func(s *State) {
			s.Reproducing = false
			s.Waiting = true
			s.Buffering = true
		})
		a.emit(EventWaiting, nil)

	case MediaPlaying:
		a.update(func(s *State) {
			s.Paused = false
			s.Playing = true
			s.Reproducing = true
			s.Waiting = false
			s.Buffering = false
		})
		a.emit(EventPlaying, nil)

	case MediaEnded:
		a.update(func(s *State) {
			s.Playing = false
			s.Paused = false
			s.Reproducing = false
			s.Waiting = false
			s.Buffering = false
			s.Ended = true
		})
		a.emit(EventEnded, nil)

	case MediaLoadedMetadata:
		a.emit(EventReady, event.Data{"duration": a.media.Duration()})

	case MediaError:
		message := "media error"
		if ev.Err != nil {
			message = ev.Err.Error()
		}
		a.update(func(s *State) {
			s.Reproducing = false
			s.Waiting = false
			s.Buffering = false
		})
		a.fail(&PlaybackError{Code: ev.Code, Message: message, Err: ev.Err})
	}
}

// Placement tells a Mounter where a video goes relative to its target.
type Placement int

const (
	AppendTo Placement = iota
	PrependTo
	AppendAfter
)

func (p Placement) String() string {
	switch p {
	case AppendTo:
		return "append"
	case PrependTo:
		return "prepend"
	case AppendAfter:
		return "after"
	default:
		return "unknown"
	}
}

// Mounter places a video surface into its host.
type Mounter interface {
	Mount(target string, p Placement) error
}

// Video is Audio with a surface that can be placed.
type Video struct {
	*Audio

	mounter Mounter
}

// NewVideo wraps media; mounter may be nil when the surface manages itself.
func NewVideo(media Media, mounter Mounter) *Video {
	v := &Video{mounter: mounter}
	v.Audio = &Audio{media: media}
	v.Base = newBase(v, "video")
	v.init()
	return v
}

// Mount places the video relative to target and fires ready.
func (v *Video) Mount(target string, p Placement) error {
	if v.mounter == nil {
		return ErrNoMounter
	}

	if err := v.mounter.Mount(target, p); err != nil {
		return fmt.Errorf("mount %s %s: %w", p, target, err)
	}

	v.logger.Debugf("mounted %s %s", p, target)
	v.emit(EventReady, event.Data{"target": target, "placement": p.String()})
	return nil
}

func (v *Video) AppendTo(target string) error    { return v.Mount(target, AppendTo) }
func (v *Video) PrependTo(target string) error   { return v.Mount(target, PrependTo) }
func (v *Video) AppendAfter(target string) error { return v.Mount(target, AppendAfter) }
