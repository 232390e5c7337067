// Package recent remembers resolved embed URLs for shell completion.
package recent

import (
	"slices"
	"strings"
	"sync"

	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/anisan-cli/streamkit/key"
	"github.com/anisan-cli/streamkit/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type record struct {
	Rank int    `json:"rank"`
	URL  string `json:"url"`
}

var (
	cacher     *gache.Cache[map[string]*record]
	cacherOnce sync.Once
)

func store() *gache.Cache[map[string]*record] {
	cacherOnce.Do(func() {
		cacher = gache.New[map[string]*record](&gache.Options{
			Path:       where.Recent(),
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return cacher
}

func load() map[string]*record {
	cached, expired, err := store().Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*record)
	}
	return cached
}

// Remember records url or bumps its rank when it is already known.
func Remember(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}

	cached := load()
	if r, ok := cached[url]; ok {
		r.Rank++
	} else {
		cached[url] = &record{Rank: 1, URL: url}
	}

	return store().Set(cached)
}

// Suggest returns remembered URLs fuzzily matching prefix, most used first.
func Suggest(prefix string) []string {
	if !viper.GetBool(key.SearchShowURLSuggestions) {
		return []string{}
	}

	prefix = strings.TrimSpace(prefix)
	records := lo.Filter(lo.Values(load()), func(r *record, _ int) bool {
		return fuzzy.MatchFold(prefix, r.URL)
	})

	slices.SortFunc(records, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.URL, b.URL)
	})

	return lo.Map(records, func(r *record, _ int) string {
		return r.URL
	})
}

// Clear forgets every remembered URL.
func Clear() error {
	return store().Set(make(map[string]*record))
}
