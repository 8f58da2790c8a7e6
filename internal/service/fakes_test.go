package service

import (
	"context"
	"sync"

	"github.com/23himanshusingh/AnimeGpt/internal/jikan"
	"github.com/23himanshusingh/AnimeGpt/internal/models"
	"github.com/23himanshusingh/AnimeGpt/internal/repository"
)

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]*models.UserDoc
	inErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*models.UserDoc{}}
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.UserDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.UserDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id], nil
}

func (f *fakeUsers) Insert(_ context.Context, u *models.UserDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inErr != nil {
		return f.inErr
	}
	f.byID[u.UserID] = u
	return nil
}

type fakeWatchlists struct {
	mu    sync.Mutex
	lists map[string][]models.WatchlistEntry
	err   error
}

func newFakeWatchlists() *fakeWatchlists {
	return &fakeWatchlists{lists: map[string][]models.WatchlistEntry{}}
}

func (f *fakeWatchlists) Get(_ context.Context, userID string) ([]models.WatchlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.WatchlistEntry{}, f.lists[userID]...), nil
}

func (f *fakeWatchlists) Add(_ context.Context, userID string, e models.WatchlistEntry) ([]models.WatchlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cur := range f.lists[userID] {
		if cur.ID == e.ID {
			return nil, repository.ErrDuplicate
		}
	}
	f.lists[userID] = append(f.lists[userID], e)
	return append([]models.WatchlistEntry{}, f.lists[userID]...), nil
}

func (f *fakeWatchlists) Update(_ context.Context, userID string, malID int, upd models.WatchlistUpdate) (*models.WatchlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lists[userID] {
		e := &f.lists[userID][i]
		if e.ID != malID {
			continue
		}
		if upd.Status != nil {
			e.Status = *upd.Status
		}
		if upd.UserRating != nil {
			e.UserRating = *upd.UserRating
		}
		out := *e
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeWatchlists) Remove(_ context.Context, userID string, malID int) ([]models.WatchlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list, ok := f.lists[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := list[:0]
	for _, e := range list {
		if e.ID != malID {
			out = append(out, e)
		}
	}
	f.lists[userID] = out
	return append([]models.WatchlistEntry{}, out...), nil
}

// fakeSource stands in for the Jikan client and counts upstream calls.
type fakeSource struct {
	mu       sync.Mutex
	lists    map[string][]models.Anime
	listErrs map[string]error
	anime    map[int]models.Anime
	calls    int
}

func (f *fakeSource) List(_ context.Context, list string) ([]models.Anime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.listErrs[list]; err != nil {
		return nil, err
	}
	return f.lists[list], nil
}

func (f *fakeSource) Anime(_ context.Context, id int) (*models.Anime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	a, ok := f.anime[id]
	if !ok {
		return nil, jikan.ErrNotFound
	}
	return &a, nil
}

func (f *fakeSource) Search(_ context.Context, q string, limit int) ([]models.Anime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var out []models.Anime
	for _, a := range f.anime {
		if len(out) < limit && a.Title == q {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeSource) Recommendations(_ context.Context, id int) ([]models.Anime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.anime[id]; !ok {
		return nil, jikan.ErrNotFound
	}
	return []models.Anime{{ID: id + 1000, Title: "related"}}, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeCandidates serves a fixed pool to RecommendService.
type fakeCandidates struct {
	pool    []models.Anime
	poolErr error
}

func (f *fakeCandidates) Pool(context.Context) ([]models.Anime, error) {
	if f.poolErr != nil {
		return nil, f.poolErr
	}
	return f.pool, nil
}

func (f *fakeCandidates) Details(_ context.Context, id int) (*models.Anime, error) {
	for i := range f.pool {
		if f.pool[i].ID == id {
			a := f.pool[i]
			return &a, nil
		}
	}
	return nil, ErrAnimeNotFound
}
