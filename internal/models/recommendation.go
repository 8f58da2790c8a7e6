package models

// Recommendation is one ranked result of the scoring engine. Anime and Reason
// are attached by the caller after ranking.
type Recommendation struct {
	AnimeID    int     `json:"animeId"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`

	// only set on hybrid output
	CollaborativeScore *float64 `json:"collaborativeScore,omitempty"`
	ContentScore       *float64 `json:"contentScore,omitempty"`

	Anime  *Anime `json:"anime,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ====== Preference insights ======

type GenreCount struct {
	Genre      string `json:"genre"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type TypeCount struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type PreferenceInsights struct {
	TotalAnime    int          `json:"totalAnime"`
	AverageRating float64      `json:"averageRating"`
	TopGenres     []GenreCount `json:"topGenres"`
	TopTypes      []TypeCount  `json:"topTypes"`
}
