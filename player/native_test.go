package player

import (
	"errors"
	"testing"

	"github.com/gxplayer/gxplayer/event"
	"github.com/gxplayer/gxplayer/timecode"
	. "github.com/smartystreets/goconvey/convey"
)

func TestElementVolume(t *testing.T) {
	Convey("Volumes are mapped onto 0-1", t, func() {
		So(ElementVolume(0), ShouldEqual, 0)
		So(ElementVolume(1), ShouldEqual, 0.01)
		So(ElementVolume(5), ShouldEqual, 0.05)
		So(ElementVolume(55), ShouldEqual, 0.55)
		So(ElementVolume(100), ShouldEqual, 1)
		So(ElementVolume(-3), ShouldEqual, 0)
		So(ElementVolume(250), ShouldEqual, 1)
	})

	Convey("Every step up is louder and reads back unchanged", t, func() {
		previous := -1.0
		for v := 0; v <= 100; v++ {
			media := newFakeMedia()
			So(NewAudio(media).SetVolume(v), ShouldBeNil)
			So(media.Volume(), ShouldBeGreaterThan, previous)
			previous = media.Volume()

			So(NewAudio(media).Volume(), ShouldEqual, v)
		}
	})
}

func TestAudio(t *testing.T) {
	Convey("Given an audio player over a media element", t, func() {
		media := newFakeMedia()
		media.volume = 0.8
		audio := NewAudio(media)
		events := record(audio)

		Convey("It starts idle with the element volume", func() {
			So(audio.Backend(), ShouldEqual, "audio")
			So(audio.Volume(), ShouldEqual, 80)
			So(audio.State().Status(), ShouldEqual, StatusIdle)
		})

		Convey("Transport needs a source", func() {
			So(errors.Is(audio.Play(), ErrNoSource), ShouldBeTrue)
			So(errors.Is(audio.Pause(), ErrNoSource), ShouldBeTrue)
			So(errors.Is(audio.Seek(timecode.Seconds(3)), ErrNoSource), ShouldBeTrue)
		})

		Convey("Loading pauses, switches the source and plays", func() {
			So(audio.Load("song.mp3"), ShouldBeNil)
			So(media.src, ShouldEqual, "song.mp3")
			So(audio.Source(), ShouldEqual, "song.mp3")
			So(media.Calls(), ShouldResemble, []string{"pause", "play"})
			So(events.Count(EventPlay), ShouldEqual, 1)

			state := audio.State()
			So(state.Playing, ShouldBeTrue)
			So(state.Paused, ShouldBeFalse)
			So(state.Valid(), ShouldBeNil)

			Convey("A failing source is reported", func() {
				So(audio.Load(""), ShouldNotBeNil)
				So(audio.Source(), ShouldEqual, "song.mp3")
			})

			Convey("timeupdate makes it reproduce and feeds the clock", func() {
				media.Advance(30, 120)

				So(audio.State().Reproducing, ShouldBeTrue)
				So(audio.State().Status(), ShouldEqual, StatusPlaying)
				So(audio.CurrentTime(), ShouldEqual, 30)
				So(audio.CurrentTimeFormatted(), ShouldEqual, "00:30")
				So(audio.CurrentTimePercentage(), ShouldEqual, 25)
				So(audio.RemainingTime(), ShouldEqual, 90)
				So(audio.RemainingTimeFormatted(), ShouldEqual, "01:30")
				So(audio.RemainingTimePercentage(), ShouldEqual, 75)
				So(audio.DurationFormatted(), ShouldEqual, "02:00")
				So(audio.TimeAt(10), ShouldEqual, 12)
				So(audio.TimeAtFormatted(50), ShouldEqual, "01:00")
				So(audio.PercentageOf(timecode.Clock("1:30")), ShouldEqual, 75)
				So(events.Last(EventTimeUpdate)["currentTime"], ShouldEqual, 30)

				report := audio.Snapshot()
				So(report.Backend, ShouldEqual, "audio")
				So(report.Source, ShouldEqual, "song.mp3")
				So(report.Status, ShouldEqual, StatusPlaying)
				So(report.CurrentPercentage, ShouldEqual, 25)
				So(report.RemainingFormatted, ShouldEqual, "01:30")
			})

			Convey("Seek resolves every kind of position", func() {
				media.Advance(0, 200)

				So(audio.Seek(timecode.Percent(50)), ShouldBeNil)
				So(media.CurrentTime(), ShouldEqual, 100)
				So(audio.CurrentTime(), ShouldEqual, 100)

				So(audio.Seek(timecode.Clock("1:05")), ShouldBeNil)
				So(media.CurrentTime(), ShouldEqual, 65)

				So(audio.PlayFrom(timecode.ParseSpec("12 seconds")), ShouldBeNil)
				So(media.CurrentTime(), ShouldEqual, 12)
				So(media.Calls()[len(media.Calls())-1], ShouldEqual, "play")

				So(audio.Seek(timecode.ParseSpec("nonsense")), ShouldBeNil)
				So(media.CurrentTime(), ShouldEqual, 0)
			})

			Convey("Toggle alternates pause and play", func() {
				So(audio.Toggle(), ShouldBeNil)
				So(audio.State().Paused, ShouldBeTrue)
				So(audio.State().Status(), ShouldEqual, StatusPaused)
				So(events.Count(EventPause), ShouldEqual, 2)

				So(audio.Toggle(), ShouldBeNil)
				So(audio.State().Playing, ShouldBeTrue)
				So(events.Count(EventPlay), ShouldEqual, 2)
			})

			Convey("A paused player ignores late timeupdates", func() {
				So(audio.Pause(), ShouldBeNil)
				media.Advance(31, 120)
				So(audio.State().Reproducing, ShouldBeFalse)
				So(audio.CurrentTime(), ShouldEqual, 31)
			})

			Convey("waiting and playing switch buffering", func() {
				media.Advance(10, 100)
				media.Emit(MediaEvent{Type: MediaWaiting})
				state := audio.State()
				So(state.Reproducing, ShouldBeFalse)
				So(state.Waiting, ShouldBeTrue)
				So(state.Status(), ShouldEqual, StatusBuffering)
				So(events.Count(EventWaiting), ShouldEqual, 1)

				media.Emit(MediaEvent{Type: MediaPlaying})
				So(audio.State().Reproducing, ShouldBeTrue)
				So(audio.State().Waiting, ShouldBeFalse)
				So(events.Count(EventPlaying), ShouldEqual, 1)
			})

			Convey("ended clears playback", func() {
				media.Advance(100, 100)
				media.Emit(MediaEvent{Type: MediaEnded})
				state := audio.State()
				So(state.Ended, ShouldBeTrue)
				So(state.Playing, ShouldBeFalse)
				So(state.Reproducing, ShouldBeFalse)
				So(state.Status(), ShouldEqual, StatusEnded)
				So(events.Count(EventEnded), ShouldEqual, 1)
				So(events.Last(EventStateChange)["status"], ShouldEqual, StatusEnded)
			})

			Convey("element errors become playback errors", func() {
				media.Emit(MediaEvent{Type: MediaError, Code: 4, Err: errors.New("unsupported")})
				So(events.Count(EventError), ShouldEqual, 1)

				perr, ok := ErrorFrom(events.Last(EventError))
				So(ok, ShouldBeTrue)
				So(perr.Code, ShouldEqual, 4)
				So(perr.Message, ShouldEqual, "unsupported")
				So(events.Last(EventError)["code"], ShouldEqual, 4)
			})

			Convey("loadedmetadata means ready", func() {
				media.duration = 42
				media.Emit(MediaEvent{Type: MediaLoadedMetadata})
				So(events.Last(EventReady)["duration"], ShouldEqual, 42)
			})
		})

		Convey("The volume is clamped and normalised for the element", func() {
			So(audio.SetVolume(55), ShouldBeNil)
			So(audio.Volume(), ShouldEqual, 55)
			So(media.Volume(), ShouldEqual, 0.55)
			So(events.Last(EventVolumeChange)["volume"], ShouldEqual, 55)

			So(audio.SetVolume(150), ShouldBeNil)
			So(audio.Volume(), ShouldEqual, 100)
			So(media.Volume(), ShouldEqual, 1)

			So(audio.SetVolume(-1), ShouldBeNil)
			So(audio.Volume(), ShouldEqual, 0)
		})

		Convey("Removed listeners are not called again", func() {
			calls := 0
			l := event.Func(func(any, event.Data) { calls++ })
			audio.AddEventListener(EventVolumeChange, l)
			So(audio.SetVolume(10), ShouldBeNil)
			audio.RemoveEventListener(EventVolumeChange, l)
			So(audio.SetVolume(20), ShouldBeNil)
			So(calls, ShouldEqual, 1)
		})

		Convey("Callbacks receive the player", func() {
			var owner any
			audio.On(EventVolumeChange, func(o any, _ event.Data) error {
				owner = o
				return nil
			})
			So(audio.SetVolume(30), ShouldBeNil)
			So(owner, ShouldEqual, audio)
		})

		Convey("Close closes the element", func() {
			So(audio.Close(), ShouldBeNil)
			So(media.Calls(), ShouldContain, "close")
		})
	})
}

func TestVideo(t *testing.T) {
	Convey("Given a video player", t, func() {
		media := newFakeMedia()
		mounter := &fakeMounter{}
		video := NewVideo(media, mounter)
		events := record(video)

		Convey("It is a full player", func() {
			var p Player = video
			So(p.Snapshot().Backend, ShouldEqual, "video")
			So(video.Load("clip.mp4"), ShouldBeNil)
			So(video.State().Playing, ShouldBeTrue)
		})

		Convey("Mounting places the surface and fires ready", func() {
			So(video.AppendTo("stage"), ShouldBeNil)
			So(mounter.target, ShouldEqual, "stage")
			So(mounter.placement, ShouldEqual, AppendTo)

			So(video.PrependTo("list"), ShouldBeNil)
			So(mounter.placement, ShouldEqual, PrependTo)

			So(video.AppendAfter("title"), ShouldBeNil)
			So(mounter.placement, ShouldEqual, AppendAfter)
			So(events.Count(EventReady), ShouldEqual, 3)
			So(events.Last(EventReady)["placement"], ShouldEqual, "after")
		})

		Convey("Mount failures are wrapped", func() {
			mounter.err = errors.New("no such element")
			err := video.AppendTo("missing")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no such element")
			So(events.Count(EventReady), ShouldEqual, 0)
		})

		Convey("Without a mounter there is nowhere to go", func() {
			bare := NewVideo(newFakeMedia(), nil)
			So(errors.Is(bare.AppendTo("stage"), ErrNoMounter), ShouldBeTrue)
		})
	})
}

func TestState(t *testing.T) {
	Convey("Status summarises the flags", t, func() {
		So(NewState().Status(), ShouldEqual, StatusIdle)
		So(NewState().Volume, ShouldEqual, 100)
		So(State{Playing: true}.Status(), ShouldEqual, StatusBuffering)
		So(State{Playing: true, Reproducing: true}.Status(), ShouldEqual, StatusPlaying)
		So(State{Paused: true}.Status(), ShouldEqual, StatusPaused)
		So(State{Ended: true}.Status(), ShouldEqual, StatusEnded)
	})

	Convey("Valid rejects impossible combinations", t, func() {
		So(State{Playing: true, Reproducing: true, Volume: 50}.Valid(), ShouldBeNil)
		So(State{Reproducing: true, Waiting: true, Playing: true}.Valid(), ShouldNotBeNil)
		So(State{Reproducing: true}.Valid(), ShouldNotBeNil)
		So(State{Ended: true, Reproducing: true, Playing: true}.Valid(), ShouldNotBeNil)
		So(State{Paused: true, Playing: true}.Valid(), ShouldNotBeNil)
		So(State{Volume: 101}.Valid(), ShouldNotBeNil)
	})
}
