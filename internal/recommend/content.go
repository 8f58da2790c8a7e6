package recommend

import (
	"math"
	"sort"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

const (
	genrePrefWeight  = 0.6
	typePrefWeight   = 0.3
	popularityWeight = 0.1

	maxContentScore   = 10.0
	contentConfidence = 1.0
)

// ContentBased ranks pool entries against the genre and type distribution of
// the watchlist. Each preference is the share of watchlist entries carrying
// that genre or type; since an entry can carry several genres the genre
// shares may add up to more than 1.
//
//	score = Σ genrePref[g]*0.6 + typePref[type]*0.3 + communityScore/10*0.1
//
// scaled by 10 and capped at 10. Anime already in the watchlist and zero
// scores are dropped. Ties keep pool order. Confidence is always 1.
func ContentBased(watchlist []models.WatchlistEntry, pool []models.Anime, limit int) []models.Recommendation {
	if len(watchlist) == 0 || limit <= 0 {
		return []models.Recommendation{}
	}

	genrePref := make(map[string]float64)
	typePref := make(map[string]float64)
	watched := make(map[int]struct{}, len(watchlist))

	for _, e := range watchlist {
		for _, g := range e.Genres {
			genrePref[g]++
		}
		if e.Type != "" {
			typePref[e.Type]++
		}
		watched[e.ID] = struct{}{}
	}

	total := float64(len(watchlist))
	for g := range genrePref {
		genrePref[g] /= total
	}
	for t := range typePref {
		typePref[t] /= total
	}

	recs := make([]models.Recommendation, 0, len(pool))
	for _, a := range pool {
		if a.ID == 0 {
			continue
		}
		if _, ok := watched[a.ID]; ok {
			continue
		}

		var score float64
		for _, g := range a.Genres {
			score += genrePref[g] * genrePrefWeight
		}
		if a.Type != "" {
			score += typePref[a.Type] * typePrefWeight
		}
		if a.Score != 0 {
			score += a.Score / 10 * popularityWeight
		}
		score = math.Min(score*10, maxContentScore)

		if score <= 0 {
			continue
		}
		recs = append(recs, models.Recommendation{
			AnimeID:    a.ID,
			Score:      score,
			Confidence: contentConfidence,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	return truncate(recs, limit)
}

func truncate(recs []models.Recommendation, limit int) []models.Recommendation {
	if limit <= 0 {
		return recs[:0]
	}
	if len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
