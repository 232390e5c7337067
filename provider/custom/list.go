package custom

import (
	"github.com/anisan-cli/streamkit/constant"
	"github.com/anisan-cli/streamkit/internal/cache"
	"github.com/anisan-cli/streamkit/source"
	lua "github.com/yuin/gopher-lua"
)

// decodeList converts the array part of a script result. Items that fail to
// decode are skipped; the first failure is returned only when nothing decoded.
func decodeList[T any](result *lua.LTable, decode func(*lua.LTable, uint16) (T, error)) ([]T, error) {
	var (
		items []T
		first error
	)

	result.ForEach(func(k, v lua.LValue) {
		position, isIndex := k.(lua.LNumber)
		item, isTable := v.(*lua.LTable)
		if !isIndex || !isTable {
			return
		}

		decoded, err := decode(item, uint16(position))
		if err != nil {
			if first == nil {
				first = err
			}
			return
		}
		items = append(items, decoded)
	})

	if len(items) == 0 && first != nil {
		return nil, first
	}
	return items, nil
}

// cachedList serves a list from the disk cache, falling back to fetch.
// Empty results are not cached.
func cachedList[T any](key string, fetch func() ([]T, error)) ([]T, error) {
	var items []T
	if cache.Read(key, &items) {
		return items, nil
	}

	items, err := fetch()
	if err == nil && len(items) > 0 {
		_ = cache.Write(key, items)
	}
	return items, err
}

func (s *luaSource) Search(query string) ([]*source.Anime, error) {
	animes, err := cachedList(cache.GenerateKey(query, s.Name()), func() ([]*source.Anime, error) {
		result, err := s.call(constant.SearchAnimesFn, lua.LTTable, lua.LString(query))
		if err != nil {
			return nil, err
		}
		return decodeList(result.(*lua.LTable), animeFromTable)
	})

	for _, anime := range animes {
		anime.Source = s
	}
	return animes, err
}

func (s *luaSource) EpisodesOf(anime *source.Anime) ([]*source.Episode, error) {
	episodes, err := cachedList(cache.GenerateKey(anime.URL, s.Name()+"_episodes"), func() ([]*source.Episode, error) {
		result, err := s.call(constant.AnimeEpisodesFn, lua.LTTable, animeToTable(s.state, anime))
		if err != nil {
			return nil, err
		}
		return decodeList(result.(*lua.LTable), func(t *lua.LTable, position uint16) (*source.Episode, error) {
			return episodeFromTable(t, anime, position)
		})
	})
	if err != nil {
		return nil, err
	}

	for _, episode := range episodes {
		episode.Anime = anime
	}
	anime.Episodes = episodes
	return episodes, nil
}
