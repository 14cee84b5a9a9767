// Package player defines one playback contract shared by every backend.
// Backends translate their engine's native notifications into State changes
// and named events, so callers never branch on what is actually playing.
package player

import (
	"github.com/gxplayer/gxplayer/event"
	"github.com/gxplayer/gxplayer/timecode"
)

// Player is the capability set every backend provides.
type Player interface {
	// Duration returns the media length in seconds, 0 while unknown.
	Duration() float64

	// CurrentTime returns the playback position in seconds.
	CurrentTime() float64

	// Play resumes playback from the current position.
	Play() error

	// PlayFrom seeks to at and starts playback.
	PlayFrom(at timecode.Spec) error

	// Pause suspends playback.
	Pause() error

	// Toggle pauses a playing media and plays anything else.
	Toggle() error

	// Seek moves the playback position without changing whether it plays.
	Seek(at timecode.Spec) error

	// Volume returns the volume in the 0-100 range.
	Volume() int

	// SetVolume sets the volume; values are clamped to 0-100.
	SetVolume(v int) error

	// State returns a copy of the playback flags.
	State() State

	// Snapshot summarises the player at this instant.
	Snapshot() Report

	AddEventListener(name string, l *event.Listener) *event.Emitter
	RemoveEventListener(name string, l *event.Listener) *event.Emitter

	// Close releases the underlying engine.
	Close() error
}
