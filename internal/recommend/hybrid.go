package recommend

import (
	"sort"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

const (
	collaborativeShare = 0.6
	contentShare       = 0.4
)

// Hybrid runs Collaborative and ContentBased with the same limit and merges
// them by anime id:
//
//	score = collaborative*0.6 + content*0.4
//
// An anime found by only one method keeps only that method's share. Both
// component scores are reported; confidence comes from the list that first
// produced the anime. Order follows the merged score, ties keep collaborative
// entries first and then content entries in their own order.
func Hybrid(
	current UserProfile,
	others []UserProfile,
	watchlist []models.WatchlistEntry,
	pool []models.Anime,
	limit int,
) []models.Recommendation {
	collab := Collaborative(current, others, limit)
	content := ContentBased(watchlist, pool, limit)

	merged := make([]models.Recommendation, 0, len(collab)+len(content))
	index := make(map[int]int, len(collab)+len(content))

	for _, r := range collab {
		cs, ct := r.Score, 0.0
		index[r.AnimeID] = len(merged)
		merged = append(merged, models.Recommendation{
			AnimeID:            r.AnimeID,
			Score:              r.Score * collaborativeShare,
			Confidence:         r.Confidence,
			CollaborativeScore: &cs,
			ContentScore:       &ct,
		})
	}

	for _, r := range content {
		ct := r.Score
		if i, ok := index[r.AnimeID]; ok {
			merged[i].ContentScore = &ct
			merged[i].Score += r.Score * contentShare
			continue
		}
		cs := 0.0
		index[r.AnimeID] = len(merged)
		merged = append(merged, models.Recommendation{
			AnimeID:            r.AnimeID,
			Score:              r.Score * contentShare,
			Confidence:         r.Confidence,
			CollaborativeScore: &cs,
			ContentScore:       &ct,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })
	return truncate(merged, limit)
}
