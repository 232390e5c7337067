package inline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/anisan-cli/streamkit/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSource struct {
	name    string
	animes  []string
	failing bool
}

func (f *fakeSource) Name() string { return f.name }
func (f *fakeSource) ID() string   { return f.name }

func (f *fakeSource) Search(query string) ([]*source.Anime, error) {
	if f.failing {
		return nil, errors.New("offline")
	}
	return lo.Map(f.animes, func(name string, i int) *source.Anime {
		return &source.Anime{Name: name, URL: "https://site.example/" + name, Index: uint16(i), Source: f}
	}), nil
}

func (f *fakeSource) EpisodesOf(anime *source.Anime) ([]*source.Episode, error) {
	return lo.Map(lo.Range(3), func(i int, _ int) *source.Episode {
		return &source.Episode{
			Name:  fmt.Sprintf("Episode %d", i+1),
			URL:   fmt.Sprintf("%s/ep/%d", anime.URL, i+1),
			Index: uint16(i + 1),
			Anime: anime,
		}
	}), nil
}

func (f *fakeSource) VideosOf(episode *source.Episode) ([]*source.Video, error) {
	return []*source.Video{
		{URL: episode.URL + "/360.mp4", Quality: "Vidbom: 360p"},
		{URL: episode.URL + "/1080.m3u8", Quality: "estream: 1080p"},
	}, nil
}

func TestWriteJsonResponse(t *testing.T) {
	Convey("writeJsonResponse", t, func() {
		Convey("Should produce valid JSON for empty anime list", func() {
			var buf bytes.Buffer
			opts := &Options{Query: "test", Json: true}
			err := writeJson(&buf, nil, opts)
			So(err, ShouldBeNil)

			var output Output
			err = json.Unmarshal(buf.Bytes(), &output)
			So(err, ShouldBeNil)
			So(output.Query, ShouldEqual, "test")
			So(output.Result, ShouldHaveLength, 0)
		})
	})
}

func TestParseEpisodesFilter(t *testing.T) {
	episodes := lo.Map(lo.Range(5), func(i int, _ int) *source.Episode {
		return &source.Episode{Name: fmt.Sprintf("Episode %d", i+1)}
	})
	names := func(eps []*source.Episode) []string {
		return lo.Map(eps, func(e *source.Episode, _ int) string { return e.Name })
	}

	Convey("ParseEpisodesFilter", t, func() {
		for _, tc := range []struct {
			filter string
			want   []string
		}{
			{"first", []string{"Episode 1"}},
			{"last", []string{"Episode 5"}},
			{"1-2", []string{"Episode 2", "Episode 3"}},
			{"3-99", []string{"Episode 4", "Episode 5"}},
			{"@isode 4@", []string{"Episode 4"}},
			{"0", []string{"Episode 1"}},
			{"9", []string{}},
		} {
			filter, err := ParseEpisodesFilter(tc.filter)
			So(err, ShouldBeNil)
			So(names(lo.Must(filter(episodes))), ShouldResemble, tc.want)
		}

		all := lo.Must(ParseEpisodesFilter("all"))
		So(lo.Must(all(episodes)), ShouldHaveLength, 5)

		_, err := ParseEpisodesFilter("some")
		So(err, ShouldNotBeNil)
	})
}

func TestParseAnimePicker(t *testing.T) {
	animes := []*source.Anime{{Name: "Mob"}, {Name: "Monster"}, {Name: "Mushishi"}}

	Convey("ParseAnimePicker", t, func() {
		So(lo.Must(ParseAnimePicker("first", ""))(animes).Name, ShouldEqual, "Mob")
		So(lo.Must(ParseAnimePicker("last", ""))(animes).Name, ShouldEqual, "Mushishi")
		So(lo.Must(ParseAnimePicker("exact", "Monster"))(animes).Name, ShouldEqual, "Monster")
		So(lo.Must(ParseAnimePicker("exact", "Mon"))(animes), ShouldBeNil)
		So(lo.Must(ParseAnimePicker("index", "10"))(animes).Name, ShouldEqual, "Mushishi")
		So(lo.Must(ParseAnimePicker("first", ""))(nil), ShouldBeNil)

		_, err := ParseAnimePicker("index", "x")
		So(err, ShouldNotBeNil)
		_, err = ParseAnimePicker("random", "")
		So(err, ShouldNotBeNil)
	})
}

func TestRun(t *testing.T) {
	Convey("Given two sources", t, func() {
		sources := []source.Source{
			&fakeSource{name: "asktv", animes: []string{"Mushishi"}},
			&fakeSource{name: "shahid", animes: []string{"Monster", "Mob"}},
		}
		var buf bytes.Buffer

		Convey("Plain output lists episode URLs of the picked anime", func() {
			err := Run(&Options{
				Out:            &buf,
				Sources:        sources,
				Query:          "m",
				AnimePicker:    mo.Some(lo.Must(ParseAnimePicker("index", "1"))),
				EpisodesFilter: mo.Some(lo.Must(ParseEpisodesFilter("first"))),
			})
			So(err, ShouldBeNil)
			So(buf.String(), ShouldEqual, "https://site.example/Monster/ep/1\n")
		})

		Convey("Videos are ordered by the preferred quality", func() {
			err := Run(&Options{
				Out:              &buf,
				Sources:          sources,
				Query:            "m",
				AnimePicker:      mo.Some(lo.Must(ParseAnimePicker("first", ""))),
				EpisodesFilter:   mo.Some(lo.Must(ParseEpisodesFilter("last"))),
				Videos:           true,
				PreferredQuality: "1080",
			})
			So(err, ShouldBeNil)
			So(buf.String(), ShouldEqual,
				"estream: 1080p\thttps://site.example/Mushishi/ep/3/1080.m3u8\n"+
					"Vidbom: 360p\thttps://site.example/Mushishi/ep/3/360.mp4\n")
		})

		Convey("JSON output carries the query and source names", func() {
			err := Run(&Options{
				Out:            &buf,
				Sources:        sources,
				Query:          "m",
				Json:           true,
				EpisodesFilter: mo.Some(lo.Must(ParseEpisodesFilter("first"))),
			})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Query, ShouldEqual, "m")
			So(lo.Map(output.Result, func(a *Anime, _ int) string { return a.Source }), ShouldResemble, []string{"asktv", "shahid", "shahid"})
			So(output.Result[2].Anime.Episodes, ShouldHaveLength, 1)
		})

		Convey("A failing source aborts the run", func() {
			sources = append(sources, &fakeSource{name: "dead", failing: true})
			err := Run(&Options{Out: &buf, Sources: sources, Query: "m"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "dead")
		})
	})
}

func TestPickerFromFlag(t *testing.T) {
	animes := []*source.Anime{{Name: "Mob"}, {Name: "Monster"}}

	Convey("PickerFromFlag", t, func() {
		So(lo.Must(PickerFromFlag("1", "m"))(animes).Name, ShouldEqual, "Monster")
		So(lo.Must(PickerFromFlag("exact", "Mob"))(animes).Name, ShouldEqual, "Mob")

		_, err := PickerFromFlag("-1", "")
		So(err, ShouldNotBeNil)
	})
}

func TestSchema(t *testing.T) {
	Convey("Schema", t, func() {
		Convey("Inline output names its package-qualified types", func() {
			b, err := json.Marshal(Schema(false))
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, "inline.Output")
			So(string(b), ShouldContainSubstring, "Query that was searched.")
		})

		Convey("Extract output is an array of videos", func() {
			b, err := json.Marshal(Schema(true))
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"type":"array"`)
			So(string(b), ShouldContainSubstring, "source.Video")
		})
	})
}
