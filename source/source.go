// Package source holds the models exchanged between sources, extractors and the CLI.
package source

// Source is a site plugin able to search, list episodes and resolve videos.
type Source interface {
	Name() string

	// ID is the stable identifier used for caching.
	ID() string

	Search(query string) ([]*Anime, error)

	EpisodesOf(anime *Anime) ([]*Episode, error)

	// VideosOf resolves the playable streams of an episode.
	VideosOf(episode *Episode) ([]*Video, error)
}
