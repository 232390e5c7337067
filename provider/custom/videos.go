package custom

import (
	"context"

	"github.com/anisan-cli/streamkit/config"
	"github.com/anisan-cli/streamkit/constant"
	"github.com/anisan-cli/streamkit/key"
	"github.com/anisan-cli/streamkit/resolve"
	"github.com/anisan-cli/streamkit/source"
	"github.com/spf13/viper"
	lua "github.com/yuin/gopher-lua"
)

// VideosOf never caches: stream links expire.
//
// EpisodeVideos may return the videos themselves or { servers = {...} }, a list
// of embed URLs (or {name, url} tables) the built-in extractors resolve concurrently.
func (s *luaSource) VideosOf(episode *source.Episode) ([]*source.Video, error) {
	val, err := s.call(constant.EpisodeVideosFn, lua.LTTable, episodeToTable(s.state, episode))
	if err != nil {
		return nil, err
	}

	table := val.(*lua.LTable)
	if servers, ok := table.RawGetString("servers").(*lua.LTable); ok {
		ctx, cancel := serversContext()
		defer cancel()

		return resolve.Servers(ctx, registry(), serversFromTable(servers), viper.GetInt(key.ExtractConcurrency)), nil
	}

	return decodeList(table, videoFromTable)
}

// serversContext bounds a whole fan-out to twice the per-request timeout.
func serversContext() (context.Context, context.CancelFunc) {
	if timeout := config.ExtractTimeout(); timeout > 0 {
		return context.WithTimeout(context.Background(), timeout*2)
	}
	return context.WithCancel(context.Background())
}
