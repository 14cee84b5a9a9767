package open

import (
	"testing"

	"github.com/gxplayer/gxplayer/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a target", t, func() {
		target := "/home/user/.config/gxplayer"

		Convey("Linux uses xdg-open", func() {
			cmd, err := Command(constant.Linux, target)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", target})
		})

		Convey("macOS uses open", func() {
			cmd, err := Command(constant.Darwin, target)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", target})
		})

		Convey("Windows goes through rundll32", func() {
			cmd, err := Command(constant.Windows, target)
			So(err, ShouldBeNil)
			So(cmd.Args[1:], ShouldResemble, []string{"url.dll,FileProtocolHandler", target})
		})

		Convey("An unknown platform is an error", func() {
			_, err := Command("plan9", target)
			So(err, ShouldNotBeNil)
		})
	})
}
