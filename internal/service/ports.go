package service

import (
	"context"
	"errors"
	"time"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
	"github.com/23himanshusingh/AnimeGpt/internal/recommend"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyInWatchlist = errors.New("anime already in watchlist")
	ErrNotInWatchlist     = errors.New("anime not found in watchlist")
	ErrCatalogUnavailable = errors.New("anime catalog unavailable")
	ErrAnimeNotFound      = errors.New("anime not found")
)

// Storage and upstream dependencies, satisfied by the repository, cache and
// jikan packages.

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.UserDoc, error)
	FindByID(ctx context.Context, userID string) (*models.UserDoc, error)
	Insert(ctx context.Context, u *models.UserDoc) error
}

type WatchlistStore interface {
	Get(ctx context.Context, userID string) ([]models.WatchlistEntry, error)
	Add(ctx context.Context, userID string, entry models.WatchlistEntry) ([]models.WatchlistEntry, error)
	Update(ctx context.Context, userID string, malID int, upd models.WatchlistUpdate) (*models.WatchlistEntry, error)
	Remove(ctx context.Context, userID string, malID int) ([]models.WatchlistEntry, error)
}

type AnimeSource interface {
	List(ctx context.Context, list string) ([]models.Anime, error)
	Anime(ctx context.Context, id int) (*models.Anime, error)
	Search(ctx context.Context, q string, limit int) ([]models.Anime, error)
	Recommendations(ctx context.Context, id int) ([]models.Anime, error)
}

type JSONCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// ProfileSource supplies the rating profiles of other users for the
// collaborative path.
type ProfileSource interface {
	Profiles(ctx context.Context, excludeUserID string) ([]recommend.UserProfile, error)
}

// NoPeers is the ProfileSource the API runs with: no cross-user rating data
// is shared, so collaborative filtering has nobody to learn from.
type NoPeers struct{}

func (NoPeers) Profiles(context.Context, string) ([]recommend.UserProfile, error) {
	return nil, nil
}

// StaticPeers serves a fixed set of profiles.
type StaticPeers []recommend.UserProfile

func (p StaticPeers) Profiles(_ context.Context, exclude string) ([]recommend.UserProfile, error) {
	out := make([]recommend.UserProfile, 0, len(p))
	for _, u := range p {
		if u.ID != exclude {
			out = append(out, u)
		}
	}
	return out, nil
}
