package recommend

import (
	"math"
	"slices"
	"sort"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

const (
	// MinNeighbourSimilarity is the exclusive lower bound for a user to
	// count as a neighbour.
	MinNeighbourSimilarity = 0.3
	// MaxNeighbours is how many of the most similar users contribute.
	MaxNeighbours = 20
)

type neighbour struct {
	profile UserProfile
	sim     float64
}

type accumulator struct {
	score  float64
	weight float64
}

// Collaborative predicts ratings for anime the current user has not rated
// from the ratings of the most similar other users:
//
//	score(i)      = Σ rating_u(i)*sim(u) / Σ |sim(u)|
//	confidence(i) = Σ |sim(u)|
//
// Only users with similarity above MinNeighbourSimilarity are used, at most
// MaxNeighbours of them. Anime whose accumulated weight is zero are skipped
// and non-positive scores are dropped. Ties are ordered by anime id.
func Collaborative(current UserProfile, others []UserProfile, limit int) []models.Recommendation {
	if len(current.Ratings) == 0 || limit <= 0 {
		return []models.Recommendation{}
	}

	var neighbours []neighbour
	for _, u := range others {
		if u.Ratings == nil {
			continue
		}
		if current.ID != "" && u.ID == current.ID {
			continue
		}
		sim := UserSimilarity(current, u)
		if sim > MinNeighbourSimilarity {
			neighbours = append(neighbours, neighbour{profile: u, sim: sim})
		}
	}
	sort.SliceStable(neighbours, func(i, j int) bool { return neighbours[i].sim > neighbours[j].sim })
	if len(neighbours) > MaxNeighbours {
		neighbours = neighbours[:MaxNeighbours]
	}

	acc := make(map[int]*accumulator)
	for _, n := range neighbours {
		for _, id := range n.profile.sortedIDs() {
			if _, seen := current.Ratings[id]; seen {
				continue
			}
			a, ok := acc[id]
			if !ok {
				a = &accumulator{}
				acc[id] = a
			}
			a.score += n.profile.Ratings[id] * n.sim
			a.weight += math.Abs(n.sim)
		}
	}

	ids := make([]int, 0, len(acc))
	for id := range acc {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	recs := make([]models.Recommendation, 0, len(ids))
	for _, id := range ids {
		a := acc[id]
		if a.weight == 0 {
			continue
		}
		score := a.score / a.weight
		if score <= 0 {
			continue
		}
		recs = append(recs, models.Recommendation{
			AnimeID:    id,
			Score:      score,
			Confidence: a.weight,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	return truncate(recs, limit)
}
