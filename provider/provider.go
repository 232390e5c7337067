// Package provider manages the Lua source scripts installed in where.Sources().
package provider

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/anisan-cli/streamkit/provider/custom"
	"github.com/anisan-cli/streamkit/source"
	"github.com/anisan-cli/streamkit/util"
	"github.com/anisan-cli/streamkit/where"
	"github.com/samber/lo"
)

// Common is a shared helper script, never a provider itself.
const Common = "common.lua"

// Provider represents a source provider.
type Provider struct {
	ID   string
	Name string
	Path string

	// UsesExtract is set when the script delegates embeds to the built-in extractors.
	UsesExtract  bool
	CreateSource func() (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Customs returns all available Lua providers.
func Customs() []*Provider {
	providers, _ := CustomProviders()
	return providers
}

// Get finds a provider by name.
func Get(name string) (*Provider, bool) {
	return lo.Find(Customs(), func(p *Provider) bool {
		return p.Name == name
	})
}

func CustomProviders() ([]*Provider, error) {
	files, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil, err
	}

	var providers []*Provider
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".lua" || f.Name() == Common {
			continue
		}

		path := filepath.Join(where.Sources(), f.Name())
		name := util.FileStem(f.Name())

		providers = append(providers, &Provider{
			ID:          custom.IDfromName(name),
			Name:        name,
			Path:        path,
			UsesExtract: requires(path, "extract"),
			CreateSource: func() (source.Source, error) {
				return custom.LoadSource(path)
			},
		})
	}

	return providers, nil
}

func requires(path, module string) bool {
	content, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return lo.SomeBy([]string{`require("%s")`, `require('%s')`, `require "%s"`}, func(format string) bool {
		return bytes.Contains(content, []byte(fmt.Sprintf(format, module)))
	})
}
