package provider

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/anisan-cli/streamkit/constant"
	"github.com/samber/lo"
)

// Scaffold describes a new source script.
type Scaffold struct {
	Name   string
	URL    string
	Author string
}

var scaffoldTemplate = template.Must(template.New("source").Funcs(template.FuncMap{
	"repeat": strings.Repeat,
	"plus":   func(a, b int) int { return a + b },
	"max":    func(first int, rest ...int) int { return lo.Max(append(rest, first)) },
}).Parse(constant.SourceTemplate))

// Render writes a Lua source with stubs for every required function.
func (s Scaffold) Render(w io.Writer) error {
	if s.Name == "" || s.URL == "" {
		return fmt.Errorf("scaffold needs a name and a url")
	}
	if s.Author == "" {
		s.Author = "Anonymous"
	}

	return scaffoldTemplate.Execute(w, struct {
		Scaffold
		SearchAnimesFn, AnimeEpisodesFn, EpisodeVideosFn string
	}{s, constant.SearchAnimesFn, constant.AnimeEpisodesFn, constant.EpisodeVideosFn})
}
