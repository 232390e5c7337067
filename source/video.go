package source

import (
	"net/url"
	"path"
	"strings"
)

// Video is a playable stream produced by an extractor.
type Video struct {
	URL       string            `json:"url"`
	Quality   string            `json:"quality"`
	Extension string            `json:"extension"`
	Headers   map[string]string `json:"headers"`
	Index     uint16            `json:"index"`
}

// String returns the quality or URL for display.
func (v *Video) String() string {
	if v.Quality != "" {
		return v.Quality
	}
	return v.URL
}

// InferExtension fills Extension from the URL path when it is empty.
// Only m3u8 and mp4 are recognised.
func (v *Video) InferExtension() {
	if v.Extension != "" {
		return
	}

	u, err := url.Parse(v.URL)
	if err != nil {
		return
	}

	switch ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), ".")); ext {
	case "m3u8", "mp4":
		v.Extension = ext
	}
}

// Server is one embed entry on an episode page.
type Server struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (s Server) String() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}
