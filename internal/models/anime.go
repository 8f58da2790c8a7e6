package models

// Anime is a catalog entry as the rest of the backend sees it. Records coming
// from Jikan and records stored in a watchlist are both mapped to this shape
// before they reach the scoring engine.
type Anime struct {
	ID       int      `json:"mal_id" bson:"mal_id"`
	Title    string   `json:"title" bson:"title"`
	Genres   []string `json:"genres,omitempty" bson:"genres,omitempty"`
	Type     string   `json:"type,omitempty" bson:"type,omitempty"`
	Score    float64  `json:"score,omitempty" bson:"score,omitempty"` // community rating 0-10, 0 = unknown
	Year     int      `json:"year,omitempty" bson:"year,omitempty"`
	Studios  []string `json:"studios,omitempty" bson:"studios,omitempty"` // first is the primary studio
	Image    string   `json:"image,omitempty" bson:"image,omitempty"`     // poster url
	URL      string   `json:"url,omitempty" bson:"url,omitempty"`
	Synopsis string   `json:"synopsis,omitempty" bson:"synopsis,omitempty"`
	Episodes int      `json:"episodes,omitempty" bson:"episodes,omitempty"`
	Airing   string   `json:"airing,omitempty" bson:"airing,omitempty"`
	Trailer  string   `json:"trailer,omitempty" bson:"trailer,omitempty"` // youtube id
}

// PrimaryStudio returns the first studio or "" when none is known.
func (a Anime) PrimaryStudio() string {
	if len(a.Studios) == 0 {
		return ""
	}
	return a.Studios[0]
}

// Catalog lists served by Jikan.
const (
	ListTopAiring  = "airing"
	ListNowPlaying = "now"
	ListTopPopular = "popular"
	ListTopMovies  = "movies"
)

// CatalogLists is the order in which lists are merged into the candidate pool.
var CatalogLists = []string{ListTopPopular, ListTopAiring, ListNowPlaying, ListTopMovies}

// ValidCatalogList reports whether name is one of CatalogLists.
func ValidCatalogList(name string) bool {
	for _, l := range CatalogLists {
		if l == name {
			return true
		}
	}
	return false
}
