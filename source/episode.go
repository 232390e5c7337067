package source

// Episode belongs to an Anime. Videos is filled lazily.
type Episode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Index uint16 `json:"index"`

	Anime *Anime `json:"-"`

	Videos []*Video `json:"videos,omitempty"`
}

func (e *Episode) String() string {
	return e.Name
}

// Source returns the source of the parent anime, or nil when there is none.
func (e *Episode) Source() Source {
	if e.Anime == nil {
		return nil
	}
	return e.Anime.Source
}
