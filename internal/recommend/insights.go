package recommend

import (
	"math"
	"sort"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

const (
	topGenresN = 5
	topTypesN  = 3
)

// counter counts keys and remembers the order they were first seen in, so
// ties rank deterministically.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns up to n keys by descending count, ties by first-seen order.
func (c *counter) top(n int) []string {
	keys := append([]string(nil), c.order...)
	sort.SliceStable(keys, func(i, j int) bool { return c.counts[keys[i]] > c.counts[keys[j]] })
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func percentage(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

// Insights summarises a watchlist: top 5 genres, top 3 types and the average
// user rating, where unrated entries count as 0. Returns nil for an empty
// watchlist.
func Insights(watchlist []models.WatchlistEntry) *models.PreferenceInsights {
	if len(watchlist) == 0 {
		return nil
	}

	genres := newCounter()
	types := newCounter()
	ratingSum := 0

	for _, e := range watchlist {
		for _, g := range e.Genres {
			genres.add(g)
		}
		if e.Type != "" {
			types.add(e.Type)
		}
		ratingSum += e.UserRating
	}

	total := len(watchlist)
	out := &models.PreferenceInsights{
		TotalAnime:    total,
		AverageRating: float64(ratingSum) / float64(total),
		TopGenres:     []models.GenreCount{},
		TopTypes:      []models.TypeCount{},
	}

	for _, g := range genres.top(topGenresN) {
		n := genres.counts[g]
		out.TopGenres = append(out.TopGenres, models.GenreCount{Genre: g, Count: n, Percentage: percentage(n, total)})
	}
	for _, t := range types.top(topTypesN) {
		n := types.counts[t]
		out.TopTypes = append(out.TopTypes, models.TypeCount{Type: t, Count: n, Percentage: percentage(n, total)})
	}
	return out
}
