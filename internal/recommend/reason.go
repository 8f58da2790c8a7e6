package recommend

import (
	"strings"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

const (
	ReasonDefault     = "Based on your preferences"
	ReasonHighlyRated = "Highly rated anime that matches your taste"
	ReasonPatterns    = "Based on your watching patterns"
	ReasonPopular     = "Popular anime you might enjoy"

	highlyRatedThreshold = 8.0
	maxReasonGenres      = 2
)

// Explain returns a short human-readable reason for rec. It names up to two
// genres of anime (in the anime's own genre order) that also appear somewhere
// in the watchlist; otherwise it falls back to the community score and then
// to a generic message.
func Explain(rec models.Recommendation, watchlist []models.WatchlistEntry, anime *models.Anime) string {
	if anime == nil {
		return ReasonDefault
	}

	userGenres := make(map[string]struct{})
	for _, e := range watchlist {
		for _, g := range e.Genres {
			userGenres[g] = struct{}{}
		}
	}

	var common []string
	for _, g := range anime.Genres {
		if _, ok := userGenres[g]; ok {
			common = append(common, g)
			if len(common) == maxReasonGenres {
				break
			}
		}
	}

	if len(common) > 0 {
		return "Because you like " + strings.Join(common, " and ") + " anime"
	}
	if anime.Score > highlyRatedThreshold {
		return ReasonHighlyRated
	}
	return ReasonPatterns
}
