// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Extension Function Identifiers - these are the global functions every Lua source must define.
const (
	SearchAnimesFn  = "SearchAnimes"
	AnimeEpisodesFn = "AnimeEpisodes"
	EpisodeVideosFn = "EpisodeVideos"
)

// SourceTemplate is a Go text/template for scaffolding new Lua sources.
const SourceTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias anime { name: string, url: string, cover: string|nil, genres: string|nil, summary: string|nil }
---@alias episode { name: string, url: string, number: number|nil }
---@alias video { url: string, quality: string|nil, headers: table|nil }


----- IMPORTS -----
local http = require("http")
local html = require("html")
local extract = require("extract")
--- END IMPORTS ---



----- VARIABLES -----
local client = http.client()
local base = "{{ .URL }}"
--- END VARIABLES ---



----- MAIN -----

--- Searches for anime with given query.
-- @param query string Query to search for
-- @return anime[] Table of animes
function {{ .SearchAnimesFn }}(query)
	return {}
end


--- Gets the list of all anime episodes.
-- @param anime anime The anime
-- @return episode[] Table of episodes
function {{ .AnimeEpisodesFn }}(anime)
	return {}
end


--- Gets the playable videos of an episode.
-- Returning { servers = { "https://embed.host/e/xyz", ... } } lets the
-- built-in embed extractors resolve every server concurrently.
-- Individual videos can be resolved with extract.videos(url).
-- @param episode episode The episode
-- @return video[]|{ servers: string[] }
function {{ .EpisodeVideosFn }}(episode)
	return { servers = {} }
end


--- END MAIN ---




----- HELPERS -----
--- END HELPERS ---

-- ex: ts=4 sw=4 et filetype=lua
`
