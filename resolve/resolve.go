// Package resolve fans extraction out over the servers of an episode.
package resolve

import (
	"context"

	"github.com/anisan-cli/streamkit/extractor"
	"github.com/anisan-cli/streamkit/log"
	"github.com/anisan-cli/streamkit/source"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Func extracts the videos of one server.
type Func func(ctx context.Context, server source.Server) ([]*source.Video, error)

// All runs fn for every server, at most limit at a time (0 or less means no limit).
// A failing server contributes nothing and is logged. The result keeps server
// order and every video's Index is its position in it. Once ctx is done no
// further servers are started.
func All(ctx context.Context, servers []source.Server, fn Func, limit int) []*source.Video {
	results := make([][]*source.Video, len(servers))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, server := range servers {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			videos, err := fn(gctx, server)
			if err != nil {
				log.With(log.Fields{"server": server.Name, "url": server.URL}).Warnf("skipping server: %s", err)
				return nil
			}

			results[i] = videos
			return nil
		})
	}

	// workers never return an error
	_ = g.Wait()

	videos := lo.Flatten(results)
	for i, v := range videos {
		v.Index = uint16(i)
	}
	return videos
}

// Resolver resolves a single embed URL.
type Resolver interface {
	Resolve(ctx context.Context, embedURL string) ([]*source.Video, error)
}

// Servers resolves every server through the registry.
func Servers(ctx context.Context, registry Resolver, servers []source.Server, limit int) []*source.Video {
	return All(ctx, servers, func(ctx context.Context, server source.Server) ([]*source.Video, error) {
		return registry.Resolve(ctx, server.URL)
	}, limit)
}

var _ Resolver = (*extractor.Registry)(nil)
