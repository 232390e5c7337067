// Package quality orders videos by their quality labels.
package quality

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/anisan-cli/streamkit/source"
	"github.com/samber/lo"
)

var (
	progressivePattern = regexp.MustCompile(`(?i)(\d{3,4})p`)
	dimensionsPattern  = regexp.MustCompile(`(?i)\d+x(\d{3,4})`)
)

// Prefer moves the videos whose quality contains preferred to the front.
// Both groups keep their relative order. An empty preferred changes nothing.
func Prefer(videos []*source.Video, preferred string) []*source.Video {
	if preferred == "" {
		return videos
	}

	matching, rest := lo.FilterReject(videos, func(v *source.Video, _ int) bool {
		return strings.Contains(v.Quality, preferred)
	})

	return append(matching, rest...)
}

// Resolution extracts the vertical resolution from a label such as
// "Vidbom: 720p" or "1280x720". Labels without one give 0.
func Resolution(label string) int {
	for _, pattern := range []*regexp.Regexp{progressivePattern, dimensionsPattern} {
		if m := pattern.FindStringSubmatch(label); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n
		}
	}
	return 0
}

// SortByResolution orders videos from the highest resolution down, keeping ties in place.
func SortByResolution(videos []*source.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		return Resolution(videos[i].Quality) > Resolution(videos[j].Quality)
	})
}
