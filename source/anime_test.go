package source

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAnime(t *testing.T) {
	Convey("Anime", t, func() {
		a := &Anime{Name: "One Piece", URL: "https://asktv.example/one-piece", Source: testSource{}}

		Convey("String", func() {
			So(a.String(), ShouldEqual, "One Piece")
		})

		Convey("JSON leaves the source out", func() {
			b, err := json.Marshal(a)
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"url":"https://asktv.example/one-piece"`)
			So(string(b), ShouldNotContainSubstring, "source")
		})
	})
}
