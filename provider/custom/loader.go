// Package custom runs Lua source scripts as source.Source implementations.
package custom

import (
	"fmt"

	"github.com/anisan-cli/streamkit/constant"
	"github.com/anisan-cli/streamkit/internal/scraper"
	"github.com/anisan-cli/streamkit/source"
	"github.com/anisan-cli/streamkit/util"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
)

// IDfromName is the provider id of the script named name.
func IDfromName(name string) string {
	return name + " custom"
}

// NewState returns a Lua state with every module a source script may require.
func NewState() *lua.LState {
	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state)
	state.PreloadModule("extract", extractLoader)
	state.PreloadModule("unpack", unpackLoader)
	return state
}

// LoadSource runs the script at path and checks it defines every required function.
func LoadSource(path string) (source.Source, error) {
	state := NewState()

	if err := scraper.PreCompileAndLoad(state, path); err != nil {
		state.Close()
		return nil, err
	}

	name := util.FileStem(path)

	required := []string{
		constant.SearchAnimesFn,
		constant.AnimeEpisodesFn,
		constant.EpisodeVideosFn,
	}

	for _, fn := range required {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			state.Close()
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	return newLuaSource(name, state), nil
}
