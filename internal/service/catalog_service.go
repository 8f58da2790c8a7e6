package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/23himanshusingh/AnimeGpt/internal/jikan"
	"github.com/23himanshusingh/AnimeGpt/internal/logging"
	"github.com/23himanshusingh/AnimeGpt/internal/metrics"
	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

const (
	memoryCacheSize = 256
	maxSearchLimit  = 25
)

// CatalogService reads anime from Jikan through two cache layers: an in-process
// expirable LRU and Redis. Both layers share the same TTL.
type CatalogService struct {
	source  AnimeSource
	cache   JSONCache
	ttl     time.Duration
	lists   *expirable.LRU[string, []models.Anime]
	details *expirable.LRU[string, *models.Anime]
}

func NewCatalogService(source AnimeSource, c JSONCache, ttl time.Duration) *CatalogService {
	return &CatalogService{
		source:  source,
		cache:   c,
		ttl:     ttl,
		lists:   expirable.NewLRU[string, []models.Anime](memoryCacheSize, nil, ttl),
		details: expirable.NewLRU[string, *models.Anime](memoryCacheSize, nil, ttl),
	}
}

// ====== Lists ======

// Top returns one of the catalog lists (popular, airing, now, movies).
func (s *CatalogService) Top(ctx context.Context, list string) ([]models.Anime, error) {
	if !models.ValidCatalogList(list) {
		return nil, fmt.Errorf("%w: unknown list %q", ErrInvalidInput, list)
	}
	items, err := cached(ctx, s, s.lists, "list:"+list, func(ctx context.Context) ([]models.Anime, error) {
		return s.source.List(ctx, list)
	})
	if err != nil {
		return nil, upstreamErr(err)
	}
	return items, nil
}

// Pool is the candidate set recommendations are drawn from: every catalog
// list concatenated in CatalogLists order with duplicates dropped (first
// occurrence wins). Lists that fail are skipped; the pool only errors when
// all of them fail.
func (s *CatalogService) Pool(ctx context.Context) ([]models.Anime, error) {
	type result struct {
		idx   int
		items []models.Anime
		err   error
	}

	resCh := make(chan result, len(models.CatalogLists))
	var wg sync.WaitGroup
	for i, name := range models.CatalogLists {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			items, err := s.Top(ctx, name)
			resCh <- result{idx: i, items: items, err: err}
		}(i, name)
	}
	wg.Wait()
	close(resCh)

	parts := make([][]models.Anime, len(models.CatalogLists))
	var errs []error
	for r := range resCh {
		if r.err != nil {
			logging.Ctx(ctx).Warn().Err(r.err).
				Str("list", models.CatalogLists[r.idx]).
				Msg("catalog list unavailable, skipping")
			errs = append(errs, r.err)
			continue
		}
		parts[r.idx] = r.items
	}
	if len(errs) == len(models.CatalogLists) {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, errors.Join(errs...))
	}

	seen := make(map[int]struct{})
	pool := make([]models.Anime, 0, 100)
	for _, part := range parts {
		for _, a := range part {
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
			pool = append(pool, a)
		}
	}
	return pool, nil
}

// ====== Details & search ======

func (s *CatalogService) Details(ctx context.Context, id int) (*models.Anime, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid anime id", ErrInvalidInput)
	}
	a, err := cached(ctx, s, s.details, fmt.Sprintf("anime:%d", id), func(ctx context.Context) (*models.Anime, error) {
		return s.source.Anime(ctx, id)
	})
	if err != nil {
		return nil, upstreamErr(err)
	}
	return a, nil
}

// Related returns the community recommendations Jikan lists for an anime.
func (s *CatalogService) Related(ctx context.Context, id int) ([]models.Anime, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid anime id", ErrInvalidInput)
	}
	items, err := cached(ctx, s, s.lists, fmt.Sprintf("related:%d", id), func(ctx context.Context) ([]models.Anime, error) {
		return s.source.Recommendations(ctx, id)
	})
	if err != nil {
		return nil, upstreamErr(err)
	}
	return items, nil
}

func (s *CatalogService) Search(ctx context.Context, q string, limit int) ([]models.Anime, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	key := fmt.Sprintf("search:%s:%d", strings.ToLower(q), limit)
	items, err := cached(ctx, s, s.lists, key, func(ctx context.Context) ([]models.Anime, error) {
		return s.source.Search(ctx, q, limit)
	})
	if err != nil {
		return nil, upstreamErr(err)
	}
	return items, nil
}

// cached resolves key through memory, then Redis, then fetch. Redis errors are
// logged and treated as misses.
func cached[T any](
	ctx context.Context,
	s *CatalogService,
	mem *expirable.LRU[string, T],
	key string,
	fetch func(context.Context) (T, error),
) (T, error) {
	if v, ok := mem.Get(key); ok {
		metrics.CacheResult("memory", true)
		return v, nil
	}
	metrics.CacheResult("memory", false)

	var v T
	if s.cache != nil {
		hit, err := s.cache.GetJSON(ctx, key, &v)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("redis get failed")
		}
		metrics.CacheResult("redis", hit)
		if hit {
			mem.Add(key, v)
			return v, nil
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	mem.Add(key, v)
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, v, s.ttl); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("redis set failed")
		}
	}
	return v, nil
}

func upstreamErr(err error) error {
	switch {
	case errors.Is(err, jikan.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrAnimeNotFound, err)
	case errors.Is(err, jikan.ErrUnavailable):
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	default:
		return err
	}
}
