package recommend

import "github.com/23himanshusingh/AnimeGpt/internal/models"

const (
	fallbackScore      = 7.0
	fallbackConfidence = 0.5
)

// Fallback is what the API serves when no algorithm produced anything: the
// first unwatched pool entries in pool order, scored by their community score
// (7.0 when unknown) with confidence 0.5.
func Fallback(watchlist []models.WatchlistEntry, pool []models.Anime, limit int) []models.Recommendation {
	watched := make(map[int]struct{}, len(watchlist))
	for _, e := range watchlist {
		watched[e.ID] = struct{}{}
	}

	out := []models.Recommendation{}
	for i := range pool {
		if len(out) >= limit {
			break
		}
		a := pool[i]
		if _, ok := watched[a.ID]; ok {
			continue
		}
		score := a.Score
		if score == 0 {
			score = fallbackScore
		}
		out = append(out, models.Recommendation{
			AnimeID:    a.ID,
			Score:      score,
			Confidence: fallbackConfidence,
			Anime:      &a,
			Reason:     ReasonPopular,
		})
	}
	return out
}
