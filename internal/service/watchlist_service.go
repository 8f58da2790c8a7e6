package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
	"github.com/23himanshusingh/AnimeGpt/internal/repository"
)

const maxUserRating = 10

type WatchlistService struct {
	store WatchlistStore
	now   func() time.Time
}

func NewWatchlistService(store WatchlistStore) *WatchlistService {
	return &WatchlistService{store: store, now: time.Now}
}

func (s *WatchlistService) Get(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	return s.store.Get(ctx, userID)
}

// Add stores a new entry with defaults applied (Plan to Watch, unrated).
func (s *WatchlistService) Add(ctx context.Context, userID string, entry models.WatchlistEntry) ([]models.WatchlistEntry, error) {
	if entry.ID <= 0 || entry.Title == "" {
		return nil, fmt.Errorf("%w: mal_id and title are required", ErrInvalidInput)
	}
	if entry.Status == "" {
		entry.Status = models.StatusPlanToWatch
	}
	if err := validateEntry(entry.Status, entry.UserRating); err != nil {
		return nil, err
	}
	entry.AddedAt = s.now().UTC()

	list, err := s.store.Add(ctx, userID, entry)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrAlreadyInWatchlist
	}
	return list, err
}

func (s *WatchlistService) Update(ctx context.Context, userID string, malID int, upd models.WatchlistUpdate) (*models.WatchlistEntry, error) {
	if upd.Status == nil && upd.UserRating == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	status := models.StatusPlanToWatch
	if upd.Status != nil {
		status = *upd.Status
	}
	rating := 0
	if upd.UserRating != nil {
		rating = *upd.UserRating
	}
	if err := validateEntry(status, rating); err != nil {
		return nil, err
	}

	e, err := s.store.Update(ctx, userID, malID, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotInWatchlist
	}
	return e, err
}

func (s *WatchlistService) Remove(ctx context.Context, userID string, malID int) ([]models.WatchlistEntry, error) {
	list, err := s.store.Remove(ctx, userID, malID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotInWatchlist
	}
	return list, err
}

func validateEntry(status models.WatchStatus, rating int) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if rating < 0 || rating > maxUserRating {
		return fmt.Errorf("%w: userRating must be between 0 and %d", ErrInvalidInput, maxUserRating)
	}
	return nil
}
