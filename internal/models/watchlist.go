package models

import "time"

type WatchStatus string

const (
	StatusWatching    WatchStatus = "Watching"
	StatusCompleted   WatchStatus = "Completed"
	StatusOnHold      WatchStatus = "On-Hold"
	StatusDropped     WatchStatus = "Dropped"
	StatusPlanToWatch WatchStatus = "Plan to Watch"
)

func (s WatchStatus) Valid() bool {
	switch s {
	case StatusWatching, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanToWatch:
		return true
	}
	return false
}

// WatchlistEntry is one anime a user added, with their own status and rating.
type WatchlistEntry struct {
	Anime      `bson:",inline"`
	Status     WatchStatus `json:"status" bson:"status"`
	UserRating int         `json:"userRating" bson:"userRating"` // 0 = unrated
	AddedAt    time.Time   `json:"addedAt" bson:"addedAt"`
}

// Document in the watchlists collection (one per user).
type WatchlistDoc struct {
	UserID    string           `json:"userId" bson:"userId"`
	Anime     []WatchlistEntry `json:"anime" bson:"anime"`
	UpdatedAt time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// Partial update of an entry; nil fields are left untouched.
type WatchlistUpdate struct {
	Status     *WatchStatus
	UserRating *int
}
