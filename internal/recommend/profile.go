package recommend

import (
	"maps"
	"slices"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

// UserProfile is the scoring view of a user: anime id -> rating (0-10).
// A nil Ratings map means the user has no rating data at all.
type UserProfile struct {
	ID      string
	Ratings map[int]float64
}

func (p UserProfile) mean() float64 {
	if len(p.Ratings) == 0 {
		return 0
	}
	var sum float64
	for _, id := range p.sortedIDs() {
		sum += p.Ratings[id]
	}
	return sum / float64(len(p.Ratings))
}

func (p UserProfile) sortedIDs() []int {
	return slices.Sorted(maps.Keys(p.Ratings))
}

// ProfileFromWatchlist builds a profile from the rated entries of a watchlist
// (userRating > 0). The map is always non-nil.
func ProfileFromWatchlist(userID string, watchlist []models.WatchlistEntry) UserProfile {
	ratings := make(map[int]float64)
	for _, e := range watchlist {
		if e.UserRating > 0 {
			ratings[e.ID] = float64(e.UserRating)
		}
	}
	return UserProfile{ID: userID, Ratings: ratings}
}

type InteractionAction string

const (
	ActionRate  InteractionAction = "rate"
	ActionWatch InteractionAction = "watch"
	ActionDrop  InteractionAction = "drop"
)

const (
	watchedFloor   = 7.0
	droppedCap     = 3.0
	droppedNeutral = 5.0
)

// Interaction is a single user signal on one anime.
type Interaction struct {
	AnimeID int
	Action  InteractionAction
	Value   float64 // only used by ActionRate
}

// ApplyInteraction returns a copy of p updated with in:
//   - rate sets the rating to Value
//   - watch lifts the rating to at least 7
//   - drop caps the rating at 3, treating an unrated anime as 5
//
// Unknown actions return an unchanged copy.
func ApplyInteraction(p UserProfile, in Interaction) UserProfile {
	out := UserProfile{ID: p.ID, Ratings: make(map[int]float64, len(p.Ratings)+1)}
	maps.Copy(out.Ratings, p.Ratings)

	current, rated := out.Ratings[in.AnimeID]
	switch in.Action {
	case ActionRate:
		out.Ratings[in.AnimeID] = in.Value
	case ActionWatch:
		out.Ratings[in.AnimeID] = max(current, watchedFloor)
	case ActionDrop:
		if !rated || current == 0 {
			current = droppedNeutral
		}
		out.Ratings[in.AnimeID] = min(current, droppedCap)
	}
	return out
}
