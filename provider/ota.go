package provider

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/anisan-cli/streamkit/internal/scraper"
	"github.com/anisan-cli/streamkit/log"
	"github.com/anisan-cli/streamkit/where"
	"github.com/samber/lo"
)

// Update downloads every named script from baseURL into where.Sources(),
// skipping files whose content did not change. It returns the names that were
// replaced; a failed download is logged and does not stop the others.
func Update(ctx context.Context, client scraper.Fetcher, baseURL string, names []string) ([]string, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	var (
		updated []string
		failed  error
	)
	for _, name := range lo.Uniq(names) {
		if filepath.Ext(name) != ".lua" {
			name += ".lua"
		}

		changed, err := scraper.Update(ctx, client, baseURL+name, filepath.Join(where.Sources(), name))
		if err != nil {
			log.With(log.Fields{"script": name}).Warn(err)
			failed = err
			continue
		}

		if changed {
			log.Infof("updated source script %s", name)
			updated = append(updated, name)
		}
	}

	if len(updated) == 0 && failed != nil {
		return nil, failed
	}

	return updated, nil
}

// Installed lists the script file names currently in where.Sources(), common.lua included.
func Installed() []string {
	names := lo.Map(Customs(), func(p *Provider, _ int) string {
		return filepath.Base(p.Path)
	})

	if ok, _ := filesystem.API().Exists(filepath.Join(where.Sources(), Common)); ok {
		names = append(names, Common)
	}

	return names
}
