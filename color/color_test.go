package color

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestForHeight(t *testing.T) {
	Convey("ForHeight", t, func() {
		So(ForHeight(2160), ShouldEqual, Green)
		So(ForHeight(1080), ShouldEqual, Green)
		So(ForHeight(720), ShouldEqual, Cyan)
		So(ForHeight(480), ShouldEqual, Yellow)
		So(ForHeight(360), ShouldEqual, Red)
		So(ForHeight(0), ShouldEqual, Gray)
	})
}
