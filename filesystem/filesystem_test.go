package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAPI(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Defaults to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Switches to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestReadSmall(t *testing.T) {
	Convey("Given a file in memory", t, func() {
		SetMemMapFs()
		So(API().WriteFile("/scripts/sdk.lua", []byte("YT = {}"), 0o644), ShouldBeNil)

		Convey("It is read whole", func() {
			data, err := ReadSmall("/scripts/sdk.lua", 1024)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "YT = {}")
		})

		Convey("It is truncated at the limit", func() {
			data, err := ReadSmall("/scripts/sdk.lua", 2)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "YT")
		})

		Convey("A missing file is an error", func() {
			_, err := ReadSmall("/scripts/none.lua", 10)
			So(err, ShouldNotBeNil)
		})
	})
}
