package custom

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/anisan-cli/streamkit/source"
	"github.com/samber/lo"
	lua "github.com/yuin/gopher-lua"
)

// record reads typed fields out of a table returned by a script.
// Fields of the wrong type read as their zero value.
type record struct{ *lua.LTable }

func (r record) str(field string) string {
	if s, ok := r.RawGetString(field).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func (r record) strOr(field, fallback string) string {
	if r.RawGetString(field) == lua.LNil {
		return fallback
	}
	return r.RawGetString(field).String()
}

// list accepts "a, b" as well as {"a", "b"}.
func (r record) list(field string) []string {
	switch v := r.RawGetString(field).(type) {
	case lua.LString:
		return lo.Map(strings.Split(string(v), ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})
	case *lua.LTable:
		var out []string
		v.ForEach(func(_, item lua.LValue) {
			if s, ok := item.(lua.LString); ok {
				out = append(out, string(s))
			}
		})
		return out
	}
	return nil
}

func (r record) dict(field string) map[string]string {
	t, _ := r.RawGetString(field).(*lua.LTable)
	if m := stringMapFromTable(t); m != nil {
		return m
	}
	return map[string]string{}
}

func stringMapFromTable(t *lua.LTable) map[string]string {
	if t == nil {
		return nil
	}
	m := make(map[string]string)
	t.ForEach(func(k, v lua.LValue) { m[k.String()] = v.String() })
	return m
}

// nameAndURL returns both fields or an error naming the kind of item.
func (r record) nameAndURL(kind string) (string, string, error) {
	name, url := r.str("name"), r.str("url")
	if name == "" || url == "" {
		return "", "", errors.New(kind + " must have name and url")
	}
	return name, url, nil
}

func animeFromTable(table *lua.LTable, index uint16) (*source.Anime, error) {
	r := record{table}
	name, url, err := r.nameAndURL("anime")
	if err != nil {
		return nil, err
	}

	anime := &source.Anime{Name: name, URL: url, ID: url, Index: index}
	anime.Metadata.Summary = r.str("summary")
	anime.Metadata.Cover = r.str("cover")
	anime.Metadata.Status = r.str("status")
	anime.Metadata.Genres = r.list("genres")
	anime.Metadata.Synonyms = r.list("synonyms")
	return anime, nil
}

var trailingNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// episodeNumber prefers the last number in the name, then the number
// field, then the position in the list.
func episodeNumber(r record, name string, position uint16) uint16 {
	if found := trailingNumber.FindAllString(name, -1); len(found) > 0 {
		if f, err := strconv.ParseFloat(found[len(found)-1], 64); err == nil {
			return uint16(f)
		}
	}

	switch v := r.RawGetString("number").(type) {
	case lua.LNumber:
		return uint16(v)
	case lua.LString:
		if n, err := strconv.ParseUint(string(v), 10, 16); err == nil {
			return uint16(n)
		}
	}
	return position
}

func episodeFromTable(table *lua.LTable, anime *source.Anime, index uint16) (*source.Episode, error) {
	r := record{table}
	name, url, err := r.nameAndURL("episode")
	if err != nil {
		return nil, err
	}

	return &source.Episode{
		Name:  name,
		URL:   url,
		ID:    url,
		Index: episodeNumber(r, name, index),
		Anime: anime,
	}, nil
}

func videoFromTable(table *lua.LTable, index uint16) (*source.Video, error) {
	r := record{table}
	if r.str("url") == "" {
		return nil, errors.New("video must have url")
	}

	video := &source.Video{
		URL:       r.str("url"),
		Quality:   r.str("quality"),
		Extension: r.str("extension"),
		Headers:   r.dict("headers"),
		Index:     index,
	}
	video.InferExtension()
	return video, nil
}

// serversFromTable reads an array whose items are embed URLs or {name, url} tables.
func serversFromTable(table *lua.LTable) []source.Server {
	var servers []source.Server
	table.ForEach(func(_, item lua.LValue) {
		switch v := item.(type) {
		case lua.LString:
			servers = append(servers, source.Server{URL: string(v)})
		case *lua.LTable:
			if r := (record{v}); r.str("url") != "" {
				servers = append(servers, source.Server{Name: r.str("name"), URL: r.str("url")})
			}
		}
	})
	return servers
}

func tableOf(L *lua.LState, fields map[string]lua.LValue) *lua.LTable {
	t := L.CreateTable(0, len(fields))
	for k, v := range fields {
		t.RawSetString(k, v)
	}
	return t
}

func animeToTable(L *lua.LState, anime *source.Anime) *lua.LTable {
	return tableOf(L, map[string]lua.LValue{
		"name": lua.LString(anime.Name),
		"url":  lua.LString(anime.URL),
	})
}

func episodeToTable(L *lua.LState, episode *source.Episode) *lua.LTable {
	return tableOf(L, map[string]lua.LValue{
		"name": lua.LString(episode.Name),
		"url":  lua.LString(episode.URL),
	})
}

func videoToTable(L *lua.LState, video *source.Video) *lua.LTable {
	headers := make(map[string]lua.LValue, len(video.Headers))
	for k, v := range video.Headers {
		headers[k] = lua.LString(v)
	}

	return tableOf(L, map[string]lua.LValue{
		"url":       lua.LString(video.URL),
		"quality":   lua.LString(video.Quality),
		"extension": lua.LString(video.Extension),
		"headers":   tableOf(L, headers),
	})
}
