// Package extractor turns embed page URLs into playable videos.
//
// Every supported host family is described by a Config: a URL pattern, the
// marker of the inline script holding the player setup, and how to read stream
// URLs and quality labels out of that script once it has been unpacked.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/streamkit/hls"
	"github.com/anisan-cli/streamkit/log"
	"github.com/anisan-cli/streamkit/source"
	"github.com/anisan-cli/streamkit/unpack"
	"github.com/samber/lo"
)

var (
	ErrNoScript        = errors.New("no player script found")
	ErrNoSources       = errors.New("no sources found in player script")
	ErrUnsupportedHost = errors.New("unsupported host")
)

// Client fetches pages. network.Client satisfies it.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (string, error)
}

type Extractor struct {
	Config

	client Client
	extra  map[string]string
}

func New(config Config, client Client) *Extractor {
	return &Extractor{Config: config, client: client}
}

// WithHeaders returns a copy of e that also sends headers.
func (e *Extractor) WithHeaders(headers map[string]string) *Extractor {
	clone := *e
	clone.extra = lo.Assign(e.extra, headers)
	return &clone
}

// Host names the host family of embedURL.
func (e *Extractor) Host(embedURL string) string {
	if e.HostName != "" {
		return e.HostName
	}

	if e.Pattern != nil {
		if m := e.Pattern.FindStringSubmatch(embedURL); len(m) > 1 && m[1] != "" {
			return strings.ToLower(m[1])
		}
	}

	u, err := url.Parse(embedURL)
	if err != nil {
		return ""
	}

	label, _, _ := strings.Cut(strings.TrimPrefix(u.Hostname(), "www."), ".")
	return label
}

func (e *Extractor) headers(embedURL string) map[string]string {
	headers := lo.Assign(e.Config.Headers, e.extra)
	if !lo.SomeBy(lo.Keys(headers), func(k string) bool { return strings.EqualFold(k, "Referer") }) {
		headers["Referer"] = embedURL
	}
	return headers
}

// Resolve canonicalises embedURL when the config asks for it and returns its videos.
func (e *Extractor) Resolve(ctx context.Context, embedURL string) ([]*source.Video, error) {
	target := CanonicalURL(e.Config, embedURL)
	log.With(log.Fields{"extractor": e.Name, "url": target}).Info("resolving")
	return e.Videos(ctx, target)
}

// Videos fetches embedURL and returns the videos its player script lists.
func (e *Extractor) Videos(ctx context.Context, embedURL string) ([]*source.Video, error) {
	logger := log.With(log.Fields{"extractor": e.Name, "url": embedURL})
	headers := e.headers(embedURL)

	page, err := e.client.Get(ctx, embedURL, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch embed page: %w", err)
	}

	script, err := e.findScript(page)
	if err != nil {
		return nil, err
	}

	streams := e.Sources.streams(script)
	if len(streams) == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrNoSources, e.Sources)
	}
	logger.Debugf("found %d streams", len(streams))

	host := e.Host(embedURL)
	videos := make([]*source.Video, 0, len(streams))
	for _, s := range streams {
		videos = append(videos, &source.Video{
			URL:     s.url,
			Quality: e.label(host, s.quality),
			Headers: maps.Clone(headers),
		})
	}

	if e.ExpandHLS {
		videos = e.expand(ctx, embedURL, host, videos)
	}

	for i, v := range videos {
		v.Index = uint16(i)
		v.InferExtension()
	}

	return videos, nil
}

// findScript returns the text of the first inline script carrying the marker,
// unpacked when it is packed.
func (e *Extractor) findScript(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse embed page: %w", err)
	}

	marker := e.marker()
	var found string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if e.Unpack {
			text = unpack.Auto(text)
		}

		if !strings.Contains(text, marker) {
			return true
		}

		found = unpack.Auto(text)
		return false
	})

	if found == "" {
		return "", ErrNoScript
	}
	return found, nil
}

func (e *Extractor) expand(ctx context.Context, embedURL, host string, videos []*source.Video) []*source.Video {
	expanded := make([]*source.Video, 0, len(videos))
	for _, v := range lo.UniqBy(videos, func(v *source.Video) string { return v.URL }) {
		if !hls.IsPlaylist(v.URL) {
			expanded = append(expanded, v)
			continue
		}

		variants, err := hls.Variants(ctx, e.client, v.URL, v.Headers)
		if err != nil {
			log.With(log.Fields{"extractor": e.Name, "url": embedURL, "playlist": v.URL}).Warnf("keeping unexpanded playlist: %s", err)
			expanded = append(expanded, v)
			continue
		}

		if len(variants) == 0 {
			expanded = append(expanded, v)
			continue
		}

		for _, variant := range variants {
			expanded = append(expanded, &source.Video{
				URL:     variant.URL,
				Quality: e.label(host, variant.Label()),
				Headers: maps.Clone(v.Headers),
			})
		}
	}

	return expanded
}

// CanonicalURL rewrites embedURL to https://www.<match>.html for configs that ask for it.
// Other URLs are returned unchanged.
func CanonicalURL(config Config, embedURL string) string {
	if !config.Canonical || config.Pattern == nil {
		return embedURL
	}

	match := config.Pattern.FindString(embedURL)
	if match == "" {
		return embedURL
	}
	return "https://www." + match + ".html"
}
