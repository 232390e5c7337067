package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anisan-cli/streamkit/constant"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClientGet(t *testing.T) {
	Convey("Given an embed host", t, func() {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			switch r.URL.Path {
			case "/embed":
				_, _ = w.Write([]byte(r.Header.Get("User-Agent") + "|" + r.Header.Get("Referer")))
			case "/gone":
				w.WriteHeader(http.StatusNotFound)
			default:
				w.WriteHeader(http.StatusTeapot)
			}
		}))
		defer server.Close()

		ctx := context.Background()

		Convey("Get should send browser headers and caller headers", func() {
			client := lo.Must(New(Options{}))
			body, err := client.Get(ctx, server.URL+"/embed", map[string]string{"Referer": "https://site.example/"})
			So(err, ShouldBeNil)
			So(body, ShouldEqual, constant.UserAgent+"|https://site.example/")
		})

		Convey("A non-2xx status should surface as a StatusError", func() {
			client := lo.Must(New(Options{}))
			_, err := client.Get(ctx, server.URL+"/gone", nil)

			var statusErr *StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.Status, ShouldEqual, http.StatusNotFound)
			So(err.Error(), ShouldContainSubstring, "404")
		})

		Convey("With a cache TTL the second Get should not reach the host", func() {
			client := lo.Must(New(Options{CacheTTL: time.Minute}))
			first := lo.Must(client.Get(ctx, server.URL+"/embed", nil))
			second := lo.Must(client.Get(ctx, server.URL+"/embed", nil))
			So(second, ShouldEqual, first)
			So(hits.Load(), ShouldEqual, 1)
		})

		Convey("Different headers should not share a cache entry", func() {
			client := lo.Must(New(Options{CacheTTL: time.Minute}))
			a := lo.Must(client.Get(ctx, server.URL+"/embed", map[string]string{"Referer": "a"}))
			b := lo.Must(client.Get(ctx, server.URL+"/embed", map[string]string{"Referer": "b"}))
			So(a, ShouldNotEqual, b)
			So(hits.Load(), ShouldEqual, 2)
		})
	})
}

func TestClientRetries(t *testing.T) {
	Convey("Given a host failing twice before answering", t, func() {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) <= 2 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		Convey("Two retries should be enough", func() {
			client := lo.Must(New(Options{Retries: 2, RetryInterval: time.Millisecond}))
			body, err := client.Get(context.Background(), server.URL, nil)
			So(err, ShouldBeNil)
			So(body, ShouldEqual, "ok")
			So(hits.Load(), ShouldEqual, 3)
		})

		Convey("Without retries the 502 is reported", func() {
			client := lo.Must(New(Options{}))
			_, err := client.Get(context.Background(), server.URL, nil)
			var statusErr *StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.Status, ShouldEqual, http.StatusBadGateway)
			So(hits.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given a 4xx response", t, func() {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := lo.Must(New(Options{Retries: 3, RetryInterval: time.Millisecond}))
		resp, err := client.Request(context.Background(), http.MethodGet, server.URL, "", nil)
		So(err, ShouldBeNil)
		So(resp.Status, ShouldEqual, http.StatusForbidden)
		So(hits.Load(), ShouldEqual, 1)
	})
}

func TestClientPost(t *testing.T) {
	Convey("Post should send an urlencoded form", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = r.ParseForm()
			_, _ = w.Write([]byte(r.Method + " " + r.Header.Get("Content-Type") + " " + r.PostForm.Get("post")))
		}))
		defer server.Close()

		client := lo.Must(New(Options{}))
		body, err := client.Post(context.Background(), server.URL, url.Values{"post": {"eyJ9"}}, nil)
		So(err, ShouldBeNil)
		So(body, ShouldEqual, "POST application/x-www-form-urlencoded eyJ9")
	})
}

func TestRateLimit(t *testing.T) {
	Convey("Given a limit of 20 requests per second", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		client := lo.Must(New(Options{RateLimit: 20}))
		start := time.Now()
		for range 3 {
			lo.Must(client.Get(context.Background(), server.URL, nil))
		}

		So(time.Since(start), ShouldBeGreaterThanOrEqualTo, 90*time.Millisecond)
	})

	Convey("A cancelled context should stop the wait", t, func() {
		client := lo.Must(New(Options{RateLimit: 0.001}))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Get(ctx, "http://127.0.0.1:1/", nil)
		So(err, ShouldNotBeNil)
	})
}

func TestPageKey(t *testing.T) {
	Convey("pageKey should not depend on header order", t, func() {
		a := pageKey("u", map[string]string{"A": "1", "B": "2"})
		b := pageKey("u", map[string]string{"B": "2", "A": "1"})
		So(a, ShouldEqual, b)
		So(pageKey("u", nil), ShouldEqual, "u")
	})
}
