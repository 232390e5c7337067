package inline

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/anisan-cli/streamkit/log"
	"github.com/anisan-cli/streamkit/quality"
	"github.com/anisan-cli/streamkit/source"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	animes, err := search(options)
	if err != nil {
		return err
	}

	var selected []*source.Anime
	if options.AnimePicker.IsPresent() {
		picker := options.AnimePicker.MustGet()
		if choice := picker(animes); choice != nil {
			selected = []*source.Anime{choice}
		}
	} else {
		selected = animes
	}

	if len(selected) == 0 {
		if options.Json {
			return writeJson(options.Out, []*source.Anime{}, options)
		}
		return nil
	}

	for _, anime := range selected {
		if err := prepareAnime(anime, options); err != nil {
			return err
		}
	}

	if options.Json {
		return writeJson(options.Out, selected, options)
	}

	return writePlain(options.Out, selected, options)
}

// search queries every source at once, keeping the order of options.Sources.
func search(options *Options) ([]*source.Anime, error) {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		results = make([][]*source.Anime, len(options.Sources))
	)

	for i, src := range options.Sources {
		g.Go(func() error {
			animes, err := src.Search(options.Query)
			if err != nil {
				return fmt.Errorf("search failed for %s: %w", src.Name(), err)
			}

			mu.Lock()
			results[i] = animes
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return lo.Flatten(results), nil
}

func prepareAnime(anime *source.Anime, options *Options) error {
	episodes, err := anime.Source.EpisodesOf(anime)
	if err != nil {
		return err
	}

	if options.EpisodesFilter.IsPresent() {
		filter := options.EpisodesFilter.MustGet()
		if episodes, err = filter(episodes); err != nil {
			return err
		}
	}
	anime.Episodes = episodes

	if !options.Videos {
		return nil
	}

	for _, ep := range anime.Episodes {
		videos, err := anime.Source.VideosOf(ep)
		if err != nil {
			log.With(log.Fields{"episode": ep.Name, "url": ep.URL}).Warnf("failed to fetch videos: %v", err)
			continue
		}

		if options.PreferredQuality != "" {
			videos = quality.Prefer(videos, options.PreferredQuality)
		}
		ep.Videos = videos
	}

	return nil
}

func writePlain(out io.Writer, animes []*source.Anime, options *Options) error {
	for _, anime := range animes {
		for _, ep := range anime.Episodes {
			if !options.Videos {
				if _, err := fmt.Fprintln(out, ep.URL); err != nil {
					return err
				}
				continue
			}

			for _, v := range ep.Videos {
				if _, err := fmt.Fprintf(out, "%s\t%s\n", v.Quality, v.URL); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func writeJson(out io.Writer, animes []*source.Anime, options *Options) error {
	data, err := asJson(animes, options.Query)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
