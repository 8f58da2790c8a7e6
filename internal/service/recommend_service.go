package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/23himanshusingh/AnimeGpt/internal/logging"
	"github.com/23himanshusingh/AnimeGpt/internal/metrics"
	"github.com/23himanshusingh/AnimeGpt/internal/models"
	"github.com/23himanshusingh/AnimeGpt/internal/recommend"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Stages reported through RecRequest.Progress.
const (
	StageWatchlist = "watchlist"
	StageCatalog   = "catalog"
	StageScoring   = "scoring"
)

// CandidateSource provides the candidate pool and single-anime lookups.
// *CatalogService implements it.
type CandidateSource interface {
	Pool(ctx context.Context) ([]models.Anime, error)
	Details(ctx context.Context, id int) (*models.Anime, error)
}

type RecommendService struct {
	watchlists WatchlistStore
	catalog    CandidateSource
	peers      ProfileSource
}

func NewRecommendService(w WatchlistStore, c CandidateSource, peers ProfileSource) *RecommendService {
	if peers == nil {
		peers = NoPeers{}
	}
	return &RecommendService{watchlists: w, catalog: c, peers: peers}
}

// ====== Recommendation request ======

type RecRequest struct {
	UserID    string
	Algorithm recommend.Algorithm
	Limit     int

	// Progress, when set, is called as each stage starts.
	Progress func(stage string)
}

type RecResult struct {
	Algorithm   recommend.Algorithm     `json:"algorithm"`
	Items       []models.Recommendation `json:"recommendations"`
	Fallback    bool                    `json:"fallback"`
	GeneratedAt time.Time               `json:"generatedAt"`
}

// Recommend builds a fresh recommendation list for a user. An empty watchlist
// yields an empty list. When the chosen algorithm finds nothing, popular
// unwatched anime from the pool are served instead (Fallback=true).
func (s *RecommendService) Recommend(ctx context.Context, req RecRequest) (*RecResult, error) {
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	} else if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}
	if req.Algorithm == "" {
		req.Algorithm = recommend.AlgorithmHybrid
	}

	start := time.Now()
	res, err := s.recommend(ctx, req)
	metrics.RecommendationDuration.WithLabelValues(req.Algorithm.String()).Observe(time.Since(start).Seconds())

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case res.Fallback:
		outcome = "fallback"
	case len(res.Items) == 0:
		outcome = "empty"
	}
	metrics.RecommendationRequests.WithLabelValues(req.Algorithm.String(), outcome).Inc()

	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Debug().
		Str("user_id", req.UserID).
		Str("algorithm", req.Algorithm.String()).
		Int("count", len(res.Items)).
		Bool("fallback", res.Fallback).
		Dur("took", time.Since(start)).
		Msg("recommendations built")
	return res, nil
}

func (s *RecommendService) recommend(ctx context.Context, req RecRequest) (*RecResult, error) {
	progress := req.Progress
	if progress == nil {
		progress = func(string) {}
	}
	res := &RecResult{Algorithm: req.Algorithm, Items: []models.Recommendation{}, GeneratedAt: time.Now().UTC()}

	// 1) user watchlist
	progress(StageWatchlist)
	watchlist, err := s.watchlists.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(watchlist) == 0 {
		return res, nil
	}

	// 2) candidate pool
	progress(StageCatalog)
	pool, err := s.catalog.Pool(ctx)
	if err != nil {
		return nil, err
	}

	// 3) scoring
	progress(StageScoring)
	recs, err := s.score(ctx, req, watchlist, pool)
	if err != nil {
		return nil, err
	}

	// 4) attach anime and reason, dropping ids missing from the pool
	byID := make(map[int]*models.Anime, len(pool))
	for i := range pool {
		byID[pool[i].ID] = &pool[i]
	}
	for _, r := range recs {
		a, ok := byID[r.AnimeID]
		if !ok {
			continue
		}
		anime := *a
		r.Anime = &anime
		r.Reason = recommend.Explain(r, watchlist, &anime)
		res.Items = append(res.Items, r)
	}

	if len(res.Items) == 0 {
		res.Items = recommend.Fallback(watchlist, pool, req.Limit)
		res.Fallback = len(res.Items) > 0
	}
	return res, nil
}

func (s *RecommendService) score(
	ctx context.Context,
	req RecRequest,
	watchlist []models.WatchlistEntry,
	pool []models.Anime,
) ([]models.Recommendation, error) {
	if req.Algorithm == recommend.AlgorithmContent {
		return recommend.ContentBased(watchlist, pool, req.Limit), nil
	}

	peers, err := s.peers.Profiles(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load peer profiles: %w", err)
	}
	current := recommend.ProfileFromWatchlist(req.UserID, watchlist)

	switch req.Algorithm {
	case recommend.AlgorithmCollaborative:
		// nobody to compare against
		if len(peers) == 0 {
			return recommend.ContentBased(watchlist, pool, req.Limit), nil
		}
		return recommend.Collaborative(current, peers, req.Limit), nil
	default:
		return recommend.Hybrid(current, peers, watchlist, pool, req.Limit), nil
	}
}

// ====== Insights ======

// Insights summarises a user's watchlist. It returns nil for an empty one.
func (s *RecommendService) Insights(ctx context.Context, userID string) (*models.PreferenceInsights, error) {
	watchlist, err := s.watchlists.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recommend.Insights(watchlist), nil
}

// ====== Similar anime ======

// Similar ranks the pool by ContentSimilarity against one anime. Scores are
// similarities in [0, 1]; anime with no similarity at all are dropped.
func (s *RecommendService) Similar(ctx context.Context, animeID, limit int) ([]models.Recommendation, error) {
	if limit <= 0 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	target, err := s.catalog.Details(ctx, animeID)
	if err != nil {
		return nil, err
	}
	pool, err := s.catalog.Pool(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Recommendation, 0, limit)
	for i := range pool {
		a := pool[i]
		if a.ID == target.ID {
			continue
		}
		sim := recommend.ContentSimilarity(*target, a)
		if sim <= 0 {
			continue
		}
		out = append(out, models.Recommendation{
			AnimeID:    a.ID,
			Score:      sim,
			Confidence: 1,
			Anime:      &a,
			Reason:     "Similar to " + target.Title,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
