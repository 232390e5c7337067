// Package hls expands HLS master playlists into their variant streams.
package hls

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"
)

// Getter fetches a page body. network.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string, headers map[string]string) (string, error)
}

// Variant is one rendition listed in a master playlist.
type Variant struct {
	URL       string
	Height    int
	Bandwidth uint32
}

// IsPlaylist reports whether rawURL points to an m3u8 file.
func IsPlaylist(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".m3u8")
}

// Variants fetches playlistURL and lists its variants with absolute URLs.
// A media playlist has no variants and yields nil without error.
func Variants(ctx context.Context, client Getter, playlistURL string, headers map[string]string) ([]Variant, error) {
	body, err := client.Get(ctx, playlistURL, headers)
	if err != nil {
		return nil, err
	}

	return Parse(playlistURL, body)
}

// Parse decodes an already fetched playlist. Relative variant URIs are resolved against playlistURL.
func Parse(playlistURL, body string) ([]Variant, error) {
	playlist, kind, err := m3u8.DecodeFrom(strings.NewReader(body), false)
	if err != nil {
		return nil, fmt.Errorf("decode playlist %s: %w", playlistURL, err)
	}

	if kind != m3u8.MASTER {
		return nil, nil
	}

	base, err := url.Parse(playlistURL)
	if err != nil {
		return nil, fmt.Errorf("parse playlist url: %w", err)
	}

	master := playlist.(*m3u8.MasterPlaylist)
	variants := make([]Variant, 0, len(master.Variants))
	for _, v := range master.Variants {
		if v == nil || v.Iframe {
			continue
		}

		ref, err := url.Parse(strings.TrimSpace(v.URI))
		if err != nil {
			return nil, fmt.Errorf("parse variant uri %q: %w", v.URI, err)
		}

		variants = append(variants, Variant{
			URL:       base.ResolveReference(ref).String(),
			Height:    Height(v.Resolution),
			Bandwidth: v.Bandwidth,
		})
	}

	return variants, nil
}

// Height is the vertical size of a WIDTHxHEIGHT resolution, or 0.
func Height(resolution string) int {
	_, h, found := strings.Cut(strings.ToLower(resolution), "x")
	if !found {
		return 0
	}

	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0
	}
	return height
}

// Label renders a variant quality suffix: "720p", or the bandwidth when the height is unknown.
func (v Variant) Label() string {
	if v.Height > 0 {
		return fmt.Sprintf("%dp", v.Height)
	}
	return fmt.Sprintf("%dkbps", v.Bandwidth/1000)
}
