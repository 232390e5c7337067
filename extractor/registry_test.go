package extractor

import (
	"context"
	"encoding/base64"
	"errors"
	"net/url"
	"regexp"
	"testing"

	"github.com/anisan-cli/streamkit/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Given the default registry", t, func() {
		client := newFakeClient(map[string]string{
			vidbomURL: page(vidbomScript),
		})
		registry := NewDefault(client)

		Convey("Presets are registered in match order", func() {
			So(registry.Names(), ShouldResemble, []string{"vidbom", "uqload", "streamwish", "jwplayer"})
		})

		Convey("Match dispatches on the URL", func() {
			cases := map[string]string{
				"https://vidbom.com/embed-abc":          "vidbom",
				"https://www.myviid.net/embed/abc":      "vidbom",
				"https://segavid.com/embed-abc.html":    "vidbom",
				"https://uqload.co/embed-abc.html":      "uqload",
				"https://vudeo.io/embed-abc.html":       "uqload",
				"https://embedwish.com/e/abc":           "streamwish",
				"https://filelions.sbs/f/abc":           "streamwish",
				"https://arabveturk.sbs/embed-abc.html": "jwplayer",
			}
			for embedURL, name := range cases {
				e, ok := registry.Match(embedURL)
				So(ok, ShouldBeTrue)
				So(e.Name, ShouldEqual, name)
			}

			_, ok := registry.Match("https://ok.ru/videoembed/1")
			So(ok, ShouldBeFalse)
		})

		Convey("Get finds by name", func() {
			e, ok := registry.Get("uqload")
			So(ok, ShouldBeTrue)
			So(e.Sources, ShouldEqual, BareList)

			_, ok = registry.Get("okru")
			So(ok, ShouldBeFalse)
		})

		Convey("Register rejects duplicates and missing patterns", func() {
			So(registry.Register(VidBom()), ShouldNotBeNil)
			So(registry.Register(Config{Name: "nopattern"}), ShouldNotBeNil)
			So(registry.Register(Config{Pattern: regexp.MustCompile("x")}), ShouldNotBeNil)
			So(registry.Register(Config{Name: "mixdrop", Pattern: regexp.MustCompile(`mixdrop\.co`)}), ShouldBeNil)
			So(registry.Names(), ShouldHaveLength, 5)
		})

		Convey("Resolve canonicalises before fetching", func() {
			videos, err := registry.Resolve(context.Background(), "https://vidbom.com/embed-a1b2c3")
			So(err, ShouldBeNil)
			So(labels(videos), ShouldResemble, []string{"Vidbom: 720p", "Vidbom: 480p"})
		})

		Convey("ResolveWithHeaders forwards the headers", func() {
			_, err := registry.ResolveWithHeaders(context.Background(), vidbomURL, map[string]string{"Referer": "https://site.example/"})
			So(err, ShouldBeNil)
			So(client.headers[vidbomURL]["Referer"], ShouldEqual, "https://site.example/")
		})

		Convey("Resolve rejects unknown hosts", func() {
			_, err := registry.Resolve(context.Background(), "https://ok.ru/videoembed/1")
			So(errors.Is(err, ErrUnsupportedHost), ShouldBeTrue)
		})
	})
}

func TestDecodeServers(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte(`{"servers":[{"name":"estream","id":"es77"},{"name":"ok","id":"123"},{"name":"now","id":"n1"}]}`))
	templates := map[string]string{
		"estream": "https://arabveturk.sbs/embed-{id}.html",
		"now":     "https://extreamnow.org/embed-{id}.html",
	}

	Convey("Given a base64 server payload", t, func() {
		servers, err := DecodeServers(payload, templates)
		So(err, ShouldBeNil)

		Convey("Servers with a template are kept in order", func() {
			So(servers, ShouldResemble, []source.Server{
				{Name: "estream", URL: "https://arabveturk.sbs/embed-es77.html"},
				{Name: "now", URL: "https://extreamnow.org/embed-n1.html"},
			})
		})
	})

	Convey("Given an embed link carrying the payload", t, func() {
		href := "https://asktv.example/embed/?post=" + url.PathEscape(payload) + "&ref=1"
		servers, err := DecodeServers(href, templates)
		So(err, ShouldBeNil)
		So(servers, ShouldHaveLength, 2)
	})

	Convey("Given garbage", t, func() {
		_, err := DecodeServers("%%%", templates)
		So(err, ShouldNotBeNil)

		_, err = DecodeServers(base64.StdEncoding.EncodeToString([]byte("not json")), templates)
		So(err, ShouldNotBeNil)
	})
}
