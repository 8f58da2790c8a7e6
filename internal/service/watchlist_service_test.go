package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

func TestWatchlistService_AddAppliesDefaults(t *testing.T) {
	svc := NewWatchlistService(newFakeWatchlists())
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	list, err := svc.Add(context.Background(), "u1", models.WatchlistEntry{
		Anime: models.Anime{ID: 20, Title: "Naruto"},
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusPlanToWatch, list[0].Status)
	assert.Equal(t, 0, list[0].UserRating)
	assert.Equal(t, fixed, list[0].AddedAt)
}

func TestWatchlistService_AddRejects(t *testing.T) {
	svc := NewWatchlistService(newFakeWatchlists())
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", models.WatchlistEntry{Anime: models.Anime{Title: "no id"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(ctx, "u1", models.WatchlistEntry{Anime: models.Anime{ID: 1, Title: "x"}, Status: "Binging"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(ctx, "u1", models.WatchlistEntry{Anime: models.Anime{ID: 1, Title: "x"}, UserRating: 11})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(ctx, "u1", models.WatchlistEntry{Anime: models.Anime{ID: 1, Title: "x"}})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u1", models.WatchlistEntry{Anime: models.Anime{ID: 1, Title: "x"}})
	assert.ErrorIs(t, err, ErrAlreadyInWatchlist)
}

func TestWatchlistService_UpdateAndRemove(t *testing.T) {
	svc := NewWatchlistService(newFakeWatchlists())
	ctx := context.Background()

	for _, id := range []int{1, 2} {
		_, err := svc.Add(ctx, "u1", models.WatchlistEntry{Anime: models.Anime{ID: id, Title: "x"}})
		require.NoError(t, err)
	}

	status := models.StatusCompleted
	rating := 9
	e, err := svc.Update(ctx, "u1", 1, models.WatchlistUpdate{Status: &status, UserRating: &rating})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, e.Status)
	assert.Equal(t, 9, e.UserRating)

	_, err = svc.Update(ctx, "u1", 1, models.WatchlistUpdate{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := -1
	_, err = svc.Update(ctx, "u1", 1, models.WatchlistUpdate{UserRating: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(ctx, "u1", 99, models.WatchlistUpdate{Status: &status})
	assert.ErrorIs(t, err, ErrNotInWatchlist)

	remaining, err := svc.Remove(ctx, "u1", 1)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, 2, remaining[0].ID)

	_, err = svc.Remove(ctx, "nobody", 1)
	assert.ErrorIs(t, err, ErrNotInWatchlist)
}
