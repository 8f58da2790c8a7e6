package recommend

import (
	"math"
	"slices"
	"strings"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

// Feature weights for ContentSimilarity.
const (
	genreSimWeight  = 0.4
	typeSimWeight   = 0.2
	scoreSimWeight  = 0.2
	yearSimWeight   = 0.1
	studioSimWeight = 0.1

	maxScoreDiff = 10.0
	maxYearDiff  = 20.0
)

// ContentSimilarity compares two anime on the features both of them carry and
// returns a value in [0, 1]. Features missing on either side are left out of
// the normalisation, so sparse records are not penalised. Two records with
// nothing in common to compare score 0.
func ContentSimilarity(a, b models.Anime) float64 {
	var sim, totalWeight float64

	if len(a.Genres) > 0 && len(b.Genres) > 0 {
		sim += jaccard(a.Genres, b.Genres) * genreSimWeight
		totalWeight += genreSimWeight
	}

	if a.Type != "" && b.Type != "" {
		if a.Type == b.Type {
			sim += typeSimWeight
		}
		totalWeight += typeSimWeight
	}

	if a.Score != 0 && b.Score != 0 {
		diff := math.Abs(a.Score - b.Score)
		sim += math.Max(0, 1-diff/maxScoreDiff) * scoreSimWeight
		totalWeight += scoreSimWeight
	}

	if a.Year != 0 && b.Year != 0 {
		diff := math.Abs(float64(a.Year - b.Year))
		sim += math.Max(0, 1-diff/maxYearDiff) * yearSimWeight
		totalWeight += yearSimWeight
	}

	if len(a.Studios) > 0 && len(b.Studios) > 0 {
		if strings.EqualFold(a.PrimaryStudio(), b.PrimaryStudio()) {
			sim += studioSimWeight
		}
		totalWeight += studioSimWeight
	}

	if totalWeight == 0 {
		return 0
	}
	return sim / totalWeight
}

// jaccard is |A∩B| / |A∪B| over lower-cased names.
func jaccard(a, b []string) float64 {
	setA := lowerSet(a)
	setB := lowerSet(b)

	inter := 0
	for g := range setA {
		if _, ok := setB[g]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func lowerSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[strings.ToLower(n)] = struct{}{}
	}
	return out
}

// UserSimilarity is the Pearson correlation of two rating profiles over the
// anime both have rated, in [-1, 1]. Each user's mean is taken over all of
// their ratings, not only the shared ones. Profiles without ratings, without
// shared anime or without variance on the shared anime score 0.
func UserSimilarity(a, b UserProfile) float64 {
	if a.Ratings == nil || b.Ratings == nil {
		return 0
	}

	var common []int
	for id := range a.Ratings {
		if _, ok := b.Ratings[id]; ok {
			common = append(common, id)
		}
	}
	if len(common) == 0 {
		return 0
	}
	// fixed summation order keeps the result reproducible and symmetric
	slices.Sort(common)

	meanA := a.mean()
	meanB := b.mean()

	var num, denA, denB float64
	for _, id := range common {
		da := a.Ratings[id] - meanA
		db := b.Ratings[id] - meanB
		num += da * db
		denA += da * da
		denB += db * db
	}

	den := math.Sqrt(denA * denB)
	if den == 0 {
		return 0
	}
	return num / den
}
