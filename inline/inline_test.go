package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gxplayer/gxplayer/player"
	"github.com/gxplayer/gxplayer/timecode"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

// media announces its metadata shortly after a source is set.
type media struct {
	mu       sync.Mutex
	duration float64
	position float64
	volume   float64
	fail     error
	silent   bool
	subs     []func(player.MediaEvent)
}

func (m *media) fire(ev player.MediaEvent) {
	m.mu.Lock()
	subs := append([]func(player.MediaEvent){}, m.subs...)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (m *media) Play() error {
	m.fire(player.MediaEvent{Type: player.MediaPlay})
	return nil
}

func (m *media) Pause() error {
	m.fire(player.MediaEvent{Type: player.MediaPause})
	return nil
}

func (m *media) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *media) SetCurrentTime(seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = seconds
	return nil
}

func (m *media) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *media) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *media) SetVolume(v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = v
	return nil
}

func (m *media) SetSource(string) error {
	if m.silent {
		return nil
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		if m.fail != nil {
			m.fire(player.MediaEvent{Type: player.MediaError, Code: 4, Err: m.fail})
			return
		}
		m.mu.Lock()
		m.duration = 200
		m.mu.Unlock()
		m.fire(player.MediaEvent{Type: player.MediaLoadedMetadata})
	}()
	return nil
}

func (m *media) Subscribe(fn func(player.MediaEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *media) Close() error { return nil }

func TestRun(t *testing.T) {
	Convey("Given a media element that knows its duration after loading", t, func() {
		var buf bytes.Buffer
		m := &media{volume: 1}
		options := &Options{
			Out:    &buf,
			Media:  m,
			Source: "/music/song.flac",
		}

		Convey("The text report lists the clock values", func() {
			options.At = mo.Some[timecode.Spec](timecode.Percent(25))
			So(Run(context.Background(), options), ShouldBeNil)

			out := buf.String()
			So(out, ShouldContainSubstring, "source    /music/song.flac")
			So(out, ShouldContainSubstring, "duration  03:20")
			So(out, ShouldContainSubstring, "position  00:50 (25%)")
			So(out, ShouldContainSubstring, "remaining 02:30 (75%)")
			So(out, ShouldContainSubstring, "status    paused")
		})

		Convey("The JSON report carries the requested position", func() {
			options.Json = true
			options.At = mo.Some[timecode.Spec](timecode.Clock("1:40"))
			options.Volume = mo.Some(40)
			So(Run(context.Background(), options), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.At, ShouldEqual, "1:40")
			So(output.Report.Backend, ShouldEqual, "audio")
			So(output.Report.CurrentTime, ShouldEqual, 100)
			So(output.Report.CurrentPercentage, ShouldEqual, 50)
			So(output.Report.State.Volume, ShouldEqual, 40)
			So(m.Volume(), ShouldEqual, 0.4)
		})

		Convey("A media error ends the wait", func() {
			m.fail = errors.New("unsupported")
			err := Run(context.Background(), options)

			var perr *player.PlaybackError
			So(errors.As(err, &perr), ShouldBeTrue)
			So(perr.Code, ShouldEqual, 4)
			So(buf.Len(), ShouldEqual, 0)
		})

		Convey("A media that never reports times out", func() {
			m.silent = true
			options.Timeout = 20 * time.Millisecond
			err := Run(context.Background(), options)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})

	Convey("Without a media element there is nothing to run", t, func() {
		So(Run(context.Background(), &Options{Source: "x"}), ShouldEqual, errNoMedia)
	})
}

func TestParsePosition(t *testing.T) {
	Convey("Positions given on the command line", t, func() {
		at, err := ParsePosition("")
		So(err, ShouldBeNil)
		So(at.IsAbsent(), ShouldBeTrue)

		at, err = ParsePosition("1:30")
		So(err, ShouldBeNil)
		So(at.MustGet(), ShouldEqual, timecode.Clock("1:30"))

		at, err = ParsePosition("50%")
		So(err, ShouldBeNil)
		So(at.MustGet(), ShouldEqual, timecode.Percent(50))

		at, err = ParsePosition("90")
		So(err, ShouldBeNil)
		So(at.MustGet(), ShouldEqual, timecode.Seconds(90))

		for _, bad := range []string{"abc", "150%", "-5", ":"} {
			_, err = ParsePosition(bad)
			So(err, ShouldNotBeNil)
		}
	})
}

func TestSchema(t *testing.T) {
	Convey("The schema describes the report", t, func() {
		data, err := json.Marshal(Schema())
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, "current_percentage")
		So(string(data), ShouldContainSubstring, "gxplayer.Report")
	})
}
