package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestReadFileOrStdin(t *testing.T) {
	Convey("ReadFileOrStdin", t, func() {
		SetMemMapFs()

		Convey("Should read a named file from the backend", func() {
			So(API().WriteFile("/packed.js", []byte("eval(x)"), os.ModePerm), ShouldBeNil)
			b, err := ReadFileOrStdin("/packed.js", nil)
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, "eval(x)")
		})

		Convey("Should read stdin for a dash", func() {
			So(API().WriteFile("/stdin", []byte("plain"), os.ModePerm), ShouldBeNil)
			f, err := API().Open("/stdin")
			So(err, ShouldBeNil)
			b, err := ReadFileOrStdin("-", f)
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, "plain")
		})
	})
}
