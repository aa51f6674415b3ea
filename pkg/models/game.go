package models

// Genre and Platform come back from the backend in server order;
// the first platform is the one shown on cards.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type Platform struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type Cover struct {
	ID     int    `json:"id,omitempty"`
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// LibraryEntry is a catalog game joined with one user's tracking data.
// Entries are immutable snapshots fetched per request; edits round-trip
// through the backend and invalidate the local cache.
type LibraryEntry struct {
	ID               int           `json:"id"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug,omitempty"`
	Summary          string        `json:"summary,omitempty"`
	FirstReleaseDate int64         `json:"firstReleaseDate,omitempty"` // Unix seconds, 0 = unknown
	Cover            *Cover        `json:"cover,omitempty"`
	Genres           []Genre       `json:"genres,omitempty"`
	Platforms        []Platform    `json:"platforms,omitempty"`
	UserGameData     *UserGameData `json:"userGameData,omitempty"`
}

// PrimaryPlatform returns the display platform name, "Unknown" when the
// backend sent none.
func (e LibraryEntry) PrimaryPlatform() string {
	if len(e.Platforms) == 0 {
		return "Unknown"
	}
	return e.Platforms[0].Name
}

// SearchResult is one catalog hit from GET /games/search.
type SearchResult struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Summary          string     `json:"summary,omitempty"`
	FirstReleaseDate int64      `json:"firstReleaseDate,omitempty"`
	TotalRating      float64    `json:"totalRating,omitempty"`
	Cover            *Cover     `json:"cover,omitempty"`
	Genres           []Genre    `json:"genres,omitempty"`
	Platforms        []Platform `json:"platforms,omitempty"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Meta    struct {
		Total  int    `json:"total"`
		Source string `json:"source,omitempty"`
	} `json:"meta"`
}
