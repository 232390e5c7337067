package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeFetcher map[string]string

func (f fakeFetcher) Get(_ context.Context, url string, _ map[string]string) (string, error) {
	body, ok := f[url]
	if !ok {
		return "", errors.New("404")
	}
	return body, nil
}

func TestPreCompileAndLoad(t *testing.T) {
	Convey("Given a script on disk", t, func() {
		const path = "/sources/answer.lua"
		lo.Must0(filesystem.API().WriteFile(path, []byte("Answer = 42"), 0o644))

		L := lua.NewState()
		defer L.Close()

		So(PreCompileAndLoad(L, path), ShouldBeNil)
		So(L.GetGlobal("Answer").String(), ShouldEqual, "42")

		Convey("A changed script is recompiled", func() {
			lo.Must0(filesystem.API().WriteFile(path, []byte("Answer = 43"), 0o644))
			So(PreCompileAndLoad(L, path), ShouldBeNil)
			So(L.GetGlobal("Answer").String(), ShouldEqual, "43")
		})

		Convey("Syntax errors are reported", func() {
			lo.Must0(filesystem.API().WriteFile(path, []byte("Answer = "), 0o644))
			So(PreCompileAndLoad(L, path), ShouldNotBeNil)
		})
	})
}

func TestUpdate(t *testing.T) {
	Convey("Given a remote script", t, func() {
		const (
			remote = "https://raw.example/sources/asktv.lua"
			local  = "/sources/asktv.lua"
		)
		fetcher := fakeFetcher{remote: "-- v2"}
		_ = filesystem.API().Remove(local)

		Convey("A missing local copy is created", func() {
			changed, err := Update(context.Background(), fetcher, remote, local)
			So(err, ShouldBeNil)
			So(changed, ShouldBeTrue)
			So(string(lo.Must(filesystem.API().ReadFile(local))), ShouldEqual, "-- v2")
		})

		Convey("An identical copy is left alone", func() {
			lo.Must0(filesystem.API().WriteFile(local, []byte("-- v2"), 0o644))
			changed, err := Update(context.Background(), fetcher, remote, local)
			So(err, ShouldBeNil)
			So(changed, ShouldBeFalse)
		})

		Convey("Download failures leave the local copy", func() {
			lo.Must0(filesystem.API().WriteFile(local, []byte("-- v1"), 0o644))
			_, err := Update(context.Background(), fetcher, remote+".missing", local)
			So(err, ShouldNotBeNil)
			So(string(lo.Must(filesystem.API().ReadFile(local))), ShouldEqual, "-- v1")
		})
	})
}
