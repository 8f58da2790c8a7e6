package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

func TestProfileFromWatchlist(t *testing.T) {
	p := ProfileFromWatchlist("u1", []models.WatchlistEntry{
		entry(1, "TV", 9),
		entry(2, "TV", 0),
		entry(3, "TV", 4),
	})
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, map[int]float64{1: 9, 3: 4}, p.Ratings)

	empty := ProfileFromWatchlist("u2", nil)
	assert.NotNil(t, empty.Ratings)
	assert.Empty(t, empty.Ratings)
}

func TestApplyInteraction(t *testing.T) {
	base := UserProfile{ID: "u", Ratings: map[int]float64{1: 9, 2: 4, 3: 2}}

	tests := []struct {
		name string
		in   Interaction
		id   int
		want float64
	}{
		{"rate overrides", Interaction{AnimeID: 1, Action: ActionRate, Value: 6}, 1, 6},
		{"watch lifts low rating", Interaction{AnimeID: 2, Action: ActionWatch}, 2, 7},
		{"watch keeps high rating", Interaction{AnimeID: 1, Action: ActionWatch}, 1, 9},
		{"watch on unrated", Interaction{AnimeID: 50, Action: ActionWatch}, 50, 7},
		{"drop caps rating", Interaction{AnimeID: 1, Action: ActionDrop}, 1, 3},
		{"drop keeps lower rating", Interaction{AnimeID: 3, Action: ActionDrop}, 3, 2},
		{"drop on unrated", Interaction{AnimeID: 60, Action: ActionDrop}, 60, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyInteraction(base, tt.in)
			assert.Equal(t, tt.want, got.Ratings[tt.id])
			assert.Equal(t, "u", got.ID)
		})
	}

	assert.Equal(t, map[int]float64{1: 9, 2: 4, 3: 2}, base.Ratings, "input mutated")
}

func TestApplyInteraction_UnknownAction(t *testing.T) {
	base := UserProfile{ID: "u", Ratings: map[int]float64{1: 9}}
	got := ApplyInteraction(base, Interaction{AnimeID: 1, Action: "share"})
	assert.Equal(t, base.Ratings, got.Ratings)
}
