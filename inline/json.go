package inline

import (
	"encoding/json"
	"path"
	"reflect"

	"github.com/anisan-cli/streamkit/source"
	"github.com/invopop/jsonschema"
)

type Anime struct {
	// Source is the name of the provider.
	Source string `json:"source" jsonschema:"description=Name of the source script that found the anime."`
	// Anime is the anime object from the source.
	Anime *source.Anime `json:"anime"`
}

type Output struct {
	Query  string   `json:"query" jsonschema:"description=Query that was searched."`
	Result []*Anime `json:"result"`
}

func asJson(animes []*source.Anime, query string) ([]byte, error) {
	var result = make([]*Anime, len(animes))
	for i, a := range animes {
		result[i] = &Anime{
			Source: a.Source.Name(),
			Anime:  a,
		}
	}

	return json.Marshal(&Output{
		Query:  query,
		Result: result,
	})
}

// Schema describes the json output of inline mode, or of "extract --json"
// when videos is set.
func Schema(videos bool) *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		Anonymous: true,
		Namer: func(t reflect.Type) string {
			switch t.Name() {
			case "Anime", "Episode", "Video", "Output":
				return path.Base(t.PkgPath()) + "." + t.Name()
			}
			return t.Name()
		},
	}

	if videos {
		return reflector.Reflect([]*source.Video{})
	}
	return reflector.Reflect(&Output{})
}
