package player

import (
	"testing"

	"github.com/anisan-cli/streamkit/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestArgs(t *testing.T) {
	Convey("Given a video with embed headers", t, func() {
		video := &source.Video{
			URL:     "https://cdn.example/hls/master.m3u8",
			Quality: "estream: 720p",
			Headers: map[string]string{
				"Referer":    "https://estream.to/embed-abc.html",
				"Origin":     "https://estream.to",
				"User-Agent": "Mozilla/5.0",
				"Cookie":     "a=1,b=2",
			},
		}

		args, err := Args(video, "Monster\tEpisode 3\n")
		So(err, ShouldBeNil)

		Convey("Headers are passed sorted with commas escaped", func() {
			So(args, ShouldContain, "--http-header-fields=Cookie: a=1%2Cb=2,Origin: https://estream.to,Referer: https://estream.to/embed-abc.html")
			So(args, ShouldContain, "--user-agent=Mozilla/5.0")
		})

		Convey("The title is cleaned", func() {
			So(args, ShouldContain, "--force-media-title=Monster Episode 3")
		})

		Convey("The URL comes last", func() {
			So(args[len(args)-1], ShouldEqual, video.URL)
		})
	})

	Convey("Given a video without headers or title", t, func() {
		args, err := Args(&source.Video{URL: "https://cdn.example/v.mp4", Quality: "Uqload Mirror"}, "")
		So(err, ShouldBeNil)
		So(args, ShouldContain, "--force-media-title=Uqload Mirror")
		for _, arg := range args {
			So(arg, ShouldNotStartWith, "--http-header-fields")
		}
	})

	Convey("Unsafe targets are rejected", t, func() {
		for _, u := range []string{"", "--script=evil.lua", "file:///etc/passwd", "https://x\n--y"} {
			_, err := Args(&source.Video{URL: u}, "x")
			So(err, ShouldNotBeNil)
		}
	})
}

func TestFind(t *testing.T) {
	Convey("A missing player falls back to the system handler", t, func() {
		p := Find("definitely-not-a-player-binary")
		So(p.Name(), ShouldEqual, "system")
	})

	Convey("An empty name means the system handler", t, func() {
		So(Find("").Name(), ShouldEqual, "system")
	})
}
