package timecode

import (
	"errors"
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormat(t *testing.T) {
	Convey("Format", t, func() {
		Convey("Pads minutes and seconds", func() {
			So(Format(59), ShouldEqual, "00:59")
			So(Format(60), ShouldEqual, "01:00")
			So(Format(0), ShouldEqual, "00:00")
			So(Format(754), ShouldEqual, "12:34")
		})

		Convey("Adds hours only when needed", func() {
			So(Format(3661), ShouldEqual, "1:01:01")
			So(Format(3599), ShouldEqual, "59:59")
			So(Format(36000), ShouldEqual, "10:00:00")
		})

		Convey("Rounds to the nearest second", func() {
			So(Format(59.5), ShouldEqual, "01:00")
			So(Format(59.4), ShouldEqual, "00:59")
		})

		Convey("Renders NaN as zero", func() {
			So(Format(math.NaN()), ShouldEqual, "00:00")
		})

		Convey("Renders values it cannot hold to the second as zero", func() {
			So(Format(math.Inf(1)), ShouldEqual, "00:00")
			So(Format(math.Inf(-1)), ShouldEqual, "00:00")
			So(Format(1e20), ShouldEqual, "00:00")
			So(Format(-1e20), ShouldEqual, "00:00")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Reads up to three groups", func() {
			So(MustParse("1:01:01"), ShouldEqual, 3661)
			So(MustParse("02:03"), ShouldEqual, 123)
			So(MustParse("45"), ShouldEqual, 45)
			So(MustParse("1h 2m 3s"), ShouldEqual, 3723)
		})

		Convey("Rejects more than three groups", func() {
			_, err := Parse("1:2:3:4")
			So(errors.Is(err, ErrFormat), ShouldBeTrue)
		})

		Convey("Rejects a group too large to read", func() {
			v, err := Parse("99999999999999999999:00")
			So(errors.Is(err, ErrFormat), ShouldBeTrue)
			So(v, ShouldEqual, 0)
		})

		Convey("Reads huge hours without wrapping around", func() {
			v, err := Parse("9223372036854775807:00:00")
			So(err, ShouldBeNil)
			So(v, ShouldBeGreaterThan, 0)
		})

		Convey("Rejects text without digits", func() {
			_, err := Parse("soon")
			So(errors.Is(err, ErrFormat), ShouldBeTrue)
		})

		Convey("Round-trips every whole second through Format", func() {
			for s := 0; s < 4*3600; s += 7 {
				v, err := Parse(Format(float64(s)))
				So(err, ShouldBeNil)
				if v != float64(s) {
					So(v, ShouldEqual, s)
				}
			}
		})
	})
}

func TestPercentages(t *testing.T) {
	Convey("Percentages", t, func() {
		Convey("TimeAt rounds the share of the duration", func() {
			So(TimeAt(200, 50), ShouldEqual, 100)
			So(TimeAt(3, 50), ShouldEqual, 2)
			So(TimeAt(0, 50), ShouldEqual, 0)
		})

		Convey("PercentOf guards a zero duration", func() {
			So(PercentOf(200, 50), ShouldEqual, 25)
			So(PercentOf(0, 50), ShouldEqual, 0)
			So(PercentOf(math.NaN(), 50), ShouldEqual, 0)
		})

		Convey("CurrentPercentage never yields NaN or Inf", func() {
			So(CurrentPercentage(50, 200), ShouldEqual, 25)
			So(CurrentPercentage(50, 0), ShouldEqual, 0)
			So(CurrentPercentage(0, 200), ShouldEqual, 0)
			So(CurrentPercentage(math.NaN(), 200), ShouldEqual, 0)
			So(CurrentPercentage(50, math.NaN()), ShouldEqual, 0)
			So(CurrentPercentage(50, math.Inf(1)), ShouldEqual, 0)
		})

		Convey("RemainingPercentage is the complement", func() {
			So(RemainingPercentage(50, 200), ShouldEqual, 75)
			So(RemainingPercentage(0, 0), ShouldEqual, 100)
		})
	})
}

func TestSpec(t *testing.T) {
	Convey("ParseSpec decides the kind once", t, func() {
		So(ParseSpec("1:30"), ShouldResemble, Clock("1:30"))
		So(ParseSpec("50%"), ShouldResemble, Percent(50))
		So(ParseSpec("42"), ShouldResemble, Seconds(42))
		So(ParseSpec("42.9"), ShouldResemble, Seconds(42))
		So(ParseSpec("12abc"), ShouldResemble, Seconds(12))
	})

	Convey("Resolve turns a spec into seconds", t, func() {
		So(Clock("1:30").Resolve(0), ShouldEqual, 90)
		So(Percent(50).Resolve(200), ShouldEqual, 100)
		So(Seconds(12.5).Resolve(0), ShouldEqual, 12.5)

		Convey("Unreadable positions resolve to zero", func() {
			So(ParseSpec("abc").Resolve(100), ShouldEqual, 0)
			So(ParseSpec("abc%").Resolve(100), ShouldEqual, 0)
			So(Clock("1:2:3:4").Resolve(100), ShouldEqual, 0)
			So(Seconds(math.Inf(1)).Resolve(100), ShouldEqual, 0)
		})
	})

	Convey("FromAny accepts loose input", t, func() {
		s, err := FromAny(90)
		So(err, ShouldBeNil)
		So(s, ShouldResemble, Seconds(90))

		s, err = FromAny(90 * time.Second)
		So(err, ShouldBeNil)
		So(s.Resolve(0), ShouldEqual, 90)

		s, err = FromAny("25%")
		So(err, ShouldBeNil)
		So(s.Resolve(400), ShouldEqual, 100)

		_, err = FromAny(struct{}{})
		So(err, ShouldNotBeNil)
	})

	Convey("Specs print back in their own notation", t, func() {
		So(Percent(25).String(), ShouldEqual, "25%")
		So(Seconds(1.5).String(), ShouldEqual, "1.5")
		So(Clock("1:00").String(), ShouldEqual, "1:00")
	})
}
