package source

// Anime is a search result returned by a source.
type Anime struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Index  uint16 `json:"index"`
	ID     string `json:"id"`
	Source Source `json:"-"`

	Episodes []*Episode `json:"episodes"`
	Metadata Metadata   `json:"metadata"`
}

// Metadata is whatever a source scraped besides the title.
type Metadata struct {
	Genres   []string `json:"genres"`
	Summary  string   `json:"summary"`
	Cover    string   `json:"cover"`
	Status   string   `json:"status"`
	Synonyms []string `json:"synonyms"`
}

func (a *Anime) String() string {
	return a.Name
}
