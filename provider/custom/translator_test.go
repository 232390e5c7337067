package custom

import (
	"testing"

	"github.com/anisan-cli/streamkit/source"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

// table evaluates a Lua table constructor.
func table(L *lua.LState, constructor string) *lua.LTable {
	So(L.DoString("return "+constructor), ShouldBeNil)
	t, ok := L.Get(-1).(*lua.LTable)
	So(ok, ShouldBeTrue)
	L.Pop(1)
	return t
}

func TestRecord(t *testing.T) {
	Convey("Given a record with mixed field types", t, func() {
		L := lua.NewState()
		defer L.Close()

		r := record{table(L, `{name = "Bleach", episodes = 366, tags = {"a", 2, "b"}, method = "POST"}`)}

		So(r.str("name"), ShouldEqual, "Bleach")
		So(r.str("episodes"), ShouldEqual, "")
		So(r.str("missing"), ShouldEqual, "")
		So(r.strOr("method", "GET"), ShouldEqual, "POST")
		So(r.strOr("body", "none"), ShouldEqual, "none")
		So(r.list("tags"), ShouldResemble, []string{"a", "b"})
		So(r.list("name"), ShouldResemble, []string{"Bleach"})
		So(r.dict("missing"), ShouldBeEmpty)
	})
}

func TestAnimeFromTable(t *testing.T) {
	Convey("animeFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Reads metadata next to name and url", func() {
			anime, err := animeFromTable(table(L, `{
				name = "Naruto",
				url = "https://example.com/naruto",
				cover = "https://example.com/cover.jpg",
				genres = "Action, Adventure, Fantasy",
				synonyms = {"ناروتو"},
			}`), 2)
			So(err, ShouldBeNil)
			So(anime.ID, ShouldEqual, "https://example.com/naruto")
			So(anime.Index, ShouldEqual, 2)
			So(anime.Metadata.Cover, ShouldEqual, "https://example.com/cover.jpg")
			So(anime.Metadata.Genres, ShouldResemble, []string{"Action", "Adventure", "Fantasy"})
			So(anime.Metadata.Synonyms, ShouldResemble, []string{"ناروتو"})
		})

		Convey("Rejects an entry without a name", func() {
			_, err := animeFromTable(table(L, `{url = "https://example.com"}`), 0)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "anime")
		})
	})
}

func TestVideoFromTable(t *testing.T) {
	Convey("videoFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Infers the extension and keeps headers", func() {
			video, err := videoFromTable(table(L, `{
				url = "https://example.com/stream.m3u8",
				quality = "1080p",
				headers = {Referer = "https://filelions.to/v/zx81"},
			}`), 3)
			So(err, ShouldBeNil)
			So(video.Extension, ShouldEqual, "m3u8")
			So(video.Quality, ShouldEqual, "1080p")
			So(video.Index, ShouldEqual, 3)
			So(video.Headers, ShouldResemble, map[string]string{"Referer": "https://filelions.to/v/zx81"})
		})

		Convey("Rejects an entry without a url", func() {
			_, err := videoFromTable(table(L, `{quality = "720p"}`), 0)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestEpisodeFromTable(t *testing.T) {
	Convey("episodeFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()
		anime := &source.Anime{Name: "Bleach"}

		for _, tc := range []struct {
			constructor string
			position    uint16
			want        uint16
		}{
			{`{name = "Season 2 Episode 13", url = "u"}`, 0, 13},
			{`{name = "Episode 7.5", url = "u"}`, 0, 7},
			{`{name = "الحلقة الأخيرة", url = "u", number = 24}`, 1, 24},
			{`{name = "Finale", url = "u", number = "12"}`, 1, 12},
			{`{name = "Finale", url = "u"}`, 9, 9},
		} {
			episode, err := episodeFromTable(table(L, tc.constructor), anime, tc.position)
			So(err, ShouldBeNil)
			So(episode.Index, ShouldEqual, tc.want)
			So(episode.Anime, ShouldEqual, anime)
		}
	})
}

func TestServersFromTable(t *testing.T) {
	Convey("serversFromTable accepts URLs and {name, url} tables", t, func() {
		L := lua.NewState()
		defer L.Close()

		servers := serversFromTable(table(L, `{
			"https://uqload.io/embed-abc.html",
			{name = "Vidbom", url = "https://vidbom.com/embed-abc"},
			{},
		}`))

		So(servers, ShouldResemble, []source.Server{
			{URL: "https://uqload.io/embed-abc.html"},
			{Name: "Vidbom", URL: "https://vidbom.com/embed-abc"},
		})
	})
}

func TestToTable(t *testing.T) {
	Convey("videoToTable round trips through videoFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		in := &source.Video{URL: "https://cdn.example/v.mp4", Quality: "720p", Extension: "mp4", Headers: map[string]string{"Referer": "https://uqload.io/"}}
		out, err := videoFromTable(videoToTable(L, in), 0)
		So(err, ShouldBeNil)
		So(out.URL, ShouldEqual, in.URL)
		So(out.Quality, ShouldEqual, in.Quality)
		So(out.Headers, ShouldResemble, in.Headers)
	})
}
