// Package inline runs the non-interactive search, episode and video pipeline.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/anisan-cli/streamkit/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	AnimePicker    func([]*source.Anime) *source.Anime
	EpisodesFilter func([]*source.Episode) ([]*source.Episode, error)
)

type Options struct {
	Out            io.Writer
	Sources        []source.Source
	Json           bool
	Query          string
	AnimePicker    mo.Option[AnimePicker]
	EpisodesFilter mo.Option[EpisodesFilter]
	Videos         bool
	// PreferredQuality moves matching videos to the front. Empty keeps source order.
	PreferredQuality string
}

// PickerFromFlag reads the --anime flag: a number selects by index, any
// other word is a picker kind matched against the query.
func PickerFromFlag(flag, query string) (AnimePicker, error) {
	if _, err := strconv.Atoi(flag); err == nil {
		return ParseAnimePicker("index", flag)
	}
	return ParseAnimePicker(flag, query)
}

// ParseAnimePicker builds a picker of the given kind: first, last, exact
// (name equals value) or index (zero based, clamped to the last result).
func ParseAnimePicker(kind, value string) (AnimePicker, error) {
	at := func(position func(n int) int) AnimePicker {
		return func(animes []*source.Anime) *source.Anime {
			if len(animes) == 0 {
				return nil
			}
			return animes[position(len(animes))]
		}
	}

	switch kind {
	case "first":
		return at(func(int) int { return 0 }), nil
	case "last":
		return at(func(n int) int { return n - 1 }), nil
	case "index":
		i, err := strconv.Atoi(value)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("invalid anime index %q", value)
		}
		return at(func(n int) int { return min(i, n-1) }), nil
	case "exact":
		return func(animes []*source.Anime) *source.Anime {
			found, _ := lo.Find(animes, func(a *source.Anime) bool { return a.Name == value })
			return found
		}, nil
	default:
		return nil, fmt.Errorf("unknown anime picker %q", kind)
	}
}

// ParseEpisodesFilter accepts "first", "last", "all", an inclusive range
// "1-5", a case-insensitive substring "@text@" or a single index "5".
// Indices are zero based; out of range selections come back empty.
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	window := func(bounds func(n int) (from, to int)) EpisodesFilter {
		return func(episodes []*source.Episode) ([]*source.Episode, error) {
			n := len(episodes)
			from, to := bounds(n)
			from, to = max(from, 0), min(to, n)
			if from >= to {
				return []*source.Episode{}, nil
			}
			return episodes[from:to], nil
		}
	}

	switch description {
	case "all":
		return window(func(n int) (int, int) { return 0, n }), nil
	case "first":
		return window(func(int) (int, int) { return 0, 1 }), nil
	case "last":
		return window(func(n int) (int, int) { return n - 1, n }), nil
	}

	if inner, ok := strings.CutPrefix(description, "@"); ok {
		if needle, ok := strings.CutSuffix(inner, "@"); ok {
			needle = strings.ToLower(needle)
			return func(episodes []*source.Episode) ([]*source.Episode, error) {
				return lo.Filter(episodes, func(e *source.Episode, _ int) bool {
					return strings.Contains(strings.ToLower(e.Name), needle)
				}), nil
			}, nil
		}
	}

	if a, b, ok := strings.Cut(description, "-"); ok {
		from, errFrom := strconv.Atoi(a)
		to, errTo := strconv.Atoi(b)
		if errFrom == nil && errTo == nil && from >= 0 && to >= 0 {
			return window(func(int) (int, int) { return from, to + 1 }), nil
		}
	}

	if i, err := strconv.Atoi(description); err == nil && i >= 0 {
		return window(func(int) (int, int) { return i, i + 1 }), nil
	}

	return nil, fmt.Errorf("invalid episode filter %q", description)
}
