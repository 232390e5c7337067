package custom

import (

	"github.com/anisan-cli/streamkit/extractor"
	"github.com/anisan-cli/streamkit/key"
	"github.com/anisan-cli/streamkit/resolve"
	"github.com/anisan-cli/streamkit/unpack"
	"github.com/spf13/viper"
	lua "github.com/yuin/gopher-lua"
)

// registry is the extractor registry Lua scripts resolve embeds with.
var registry = extractor.Default

// extractLoader backs require("extract"):
//
//	extract.videos(url [, headers]) -> {{url, quality, extension, headers}, ...}
//	extract.servers({url | {name, url}, ...}) -> videos of every server that resolved
//	extract.supports(url) -> boolean
//	extract.decode_servers(payload, {name = "https://host/embed-{id}.html"}) -> {{name, url}, ...}
func extractLoader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"videos":         extractVideos,
		"servers":        extractServers,
		"supports":       extractSupports,
		"decode_servers": extractDecodeServers,
	})
	L.Push(mod)
	return 1
}

func extractVideos(L *lua.LState) int {
	url := L.CheckString(1)
	headers := stringMapFromTable(L.OptTable(2, nil))

	videos, err := registry().ResolveWithHeaders(luaContext(L), url, headers)
	if err != nil {
		L.RaiseError("extract.videos: %s", err.Error())
		return 0
	}

	result := L.NewTable()
	for _, v := range videos {
		result.Append(videoToTable(L, v))
	}
	L.Push(result)
	return 1
}

func extractServers(L *lua.LState) int {
	servers := serversFromTable(L.CheckTable(1))
	videos := resolve.Servers(luaContext(L), registry(), servers, viper.GetInt(key.ExtractConcurrency))

	result := L.NewTable()
	for _, v := range videos {
		result.Append(videoToTable(L, v))
	}
	L.Push(result)
	return 1
}

func extractSupports(L *lua.LState) int {
	_, ok := registry().Match(L.CheckString(1))
	L.Push(lua.LBool(ok))
	return 1
}

func extractDecodeServers(L *lua.LState) int {
	payload := L.CheckString(1)
	templates := stringMapFromTable(L.CheckTable(2))

	servers, err := extractor.DecodeServers(payload, templates)
	if err != nil {
		L.RaiseError("extract.decode_servers: %s", err.Error())
		return 0
	}

	result := L.NewTable()
	for _, s := range servers {
		entry := L.NewTable()
		entry.RawSetString("name", lua.LString(s.Name))
		entry.RawSetString("url", lua.LString(s.URL))
		result.Append(entry)
	}
	L.Push(result)
	return 1
}

// unpackLoader backs require("unpack"):
//
//	unpack.detect(script) -> boolean
//	unpack.unpack(script) -> unpacked script, raising when it is not packed
//	unpack.auto(script)   -> unpacked script, or the script itself
func unpackLoader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"detect": func(L *lua.LState) int {
			L.Push(lua.LBool(unpack.Detect(L.CheckString(1))))
			return 1
		},
		"unpack": func(L *lua.LState) int {
			script := L.CheckString(1)
			unpacked, err := unpack.Decode(script)
			if err != nil {
				L.RaiseError("unpack.unpack: %s", err.Error())
				return 0
			}
			L.Push(lua.LString(unpacked))
			return 1
		},
		"auto": func(L *lua.LState) int {
			L.Push(lua.LString(unpack.Auto(L.CheckString(1))))
			return 1
		},
	})
	L.Push(mod)
	return 1
}
