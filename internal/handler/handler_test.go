package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23himanshusingh/AnimeGpt/internal/models"
	"github.com/23himanshusingh/AnimeGpt/internal/recommend"
	"github.com/23himanshusingh/AnimeGpt/internal/service"
)

const testSecret = "handler-secret"

// ====== fakes ======

type fakeAuth struct{}

func (fakeAuth) Register(_ context.Context, email, _ string) (string, *models.UserDoc, error) {
	if email == "taken@example.com" {
		return "", nil, service.ErrEmailTaken
	}
	return "tok", &models.UserDoc{UserID: "u1", Email: email}, nil
}

func (fakeAuth) Login(_ context.Context, email, password string) (string, *models.UserDoc, error) {
	if password != "correct-horse" {
		return "", nil, service.ErrInvalidCredentials
	}
	return "tok", &models.UserDoc{UserID: "u1", Email: email}, nil
}

func (fakeAuth) Me(_ context.Context, userID string) (*models.UserDoc, error) {
	return &models.UserDoc{UserID: userID, Email: "me@example.com"}, nil
}

type fakeWatchlists struct {
	entries []models.WatchlistEntry
	gotUser string
}

func (f *fakeWatchlists) Get(_ context.Context, userID string) ([]models.WatchlistEntry, error) {
	f.gotUser = userID
	return f.entries, nil
}

func (f *fakeWatchlists) Add(_ context.Context, _ string, e models.WatchlistEntry) ([]models.WatchlistEntry, error) {
	for _, cur := range f.entries {
		if cur.ID == e.ID {
			return nil, service.ErrAlreadyInWatchlist
		}
	}
	f.entries = append(f.entries, e)
	return f.entries, nil
}

func (f *fakeWatchlists) Update(_ context.Context, _ string, malID int, upd models.WatchlistUpdate) (*models.WatchlistEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == malID {
			if upd.UserRating != nil {
				f.entries[i].UserRating = *upd.UserRating
			}
			return &f.entries[i], nil
		}
	}
	return nil, service.ErrNotInWatchlist
}

func (f *fakeWatchlists) Remove(_ context.Context, _ string, malID int) ([]models.WatchlistEntry, error) {
	return nil, service.ErrNotInWatchlist
}

type fakeCatalog struct{}

func (fakeCatalog) Top(_ context.Context, list string) ([]models.Anime, error) {
	if list == "now" {
		return nil, service.ErrCatalogUnavailable
	}
	return []models.Anime{{ID: 1, Title: "Frieren"}}, nil
}

func (fakeCatalog) Details(_ context.Context, id int) (*models.Anime, error) {
	if id != 1 {
		return nil, service.ErrAnimeNotFound
	}
	return &models.Anime{ID: 1, Title: "Frieren"}, nil
}

func (fakeCatalog) Related(context.Context, int) ([]models.Anime, error) { return nil, nil }

func (fakeCatalog) Search(_ context.Context, q string, _ int) ([]models.Anime, error) {
	return []models.Anime{{ID: 1, Title: q}}, nil
}

type fakeRecommender struct {
	got service.RecRequest
}

func (f *fakeRecommender) Recommend(_ context.Context, req service.RecRequest) (*service.RecResult, error) {
	f.got = req
	if req.Progress != nil {
		for _, s := range []string{service.StageWatchlist, service.StageCatalog, service.StageScoring} {
			req.Progress(s)
		}
	}
	return &service.RecResult{
		Algorithm: req.Algorithm,
		Items:     []models.Recommendation{{AnimeID: 6, Score: 4, Confidence: 1, Reason: "Because you like Action anime"}},
	}, nil
}

func (f *fakeRecommender) Insights(context.Context, string) (*models.PreferenceInsights, error) {
	return &models.PreferenceInsights{TotalAnime: 3, AverageRating: 8.5}, nil
}

func (f *fakeRecommender) Similar(context.Context, int, int) ([]models.Recommendation, error) {
	return []models.Recommendation{{AnimeID: 2, Score: 0.8}}, nil
}

// ====== helpers ======

type testEnv struct {
	router    http.Handler
	watchlist *fakeWatchlists
	rec       *fakeRecommender
}

func setup() *testEnv {
	w := &fakeWatchlists{entries: []models.WatchlistEntry{{Anime: models.Anime{ID: 20, Title: "Naruto"}, Status: models.StatusWatching}}}
	rec := &fakeRecommender{}
	router := NewRouter(RouterDeps{
		Auth:        NewAuthHandler(fakeAuth{}),
		Anime:       NewAnimeHandler(fakeCatalog{}),
		Watchlist:   NewWatchlistHandler(w),
		Recommend:   NewRecommendHandler(rec),
		JWTSecret:   testSecret,
		CORSOrigins: []string{"*"},
	})
	return &testEnv{router: router, watchlist: w, rec: rec}
}

func signedToken(t *testing.T, sub string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

// ====== tests ======

func TestHealth(t *testing.T) {
	rr := setup().do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestJWTAuth(t *testing.T) {
	env := setup()

	rr := env.do(t, http.MethodGet, "/watchlist", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, http.MethodGet, "/watchlist", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	rr = env.do(t, http.MethodGet, "/watchlist", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, http.MethodGet, "/watchlist", signedToken(t, "u42"), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "u42", env.watchlist.gotUser)
}

func TestAuthRoutes(t *testing.T) {
	env := setup()

	rr := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": "new@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "tok", decode[authResponse](t, rr).Token)

	rr = env.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": "taken@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = env.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": "not-an-email", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, service.ErrInvalidCredentials.Error(), decode[errorResponse](t, rr).Error)

	rr = env.do(t, http.MethodGet, "/auth/me", signedToken(t, "u7"), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "u7", decode[userResponse](t, rr).UserID)
}

func TestWatchlistRoutes(t *testing.T) {
	env := setup()
	tok := signedToken(t, "u1")

	rr := env.do(t, http.MethodPost, "/watchlist", tok, map[string]any{"mal_id": 21, "title": "One Piece", "genres": []string{"Adventure"}})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Len(t, decode[watchlistResponse](t, rr).Anime, 2)

	rr = env.do(t, http.MethodPost, "/watchlist", tok, map[string]any{"mal_id": 21, "title": "One Piece"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, service.ErrAlreadyInWatchlist.Error(), decode[errorResponse](t, rr).Error)

	rr = env.do(t, http.MethodPost, "/watchlist", tok, map[string]any{"mal_id": 22})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPut, "/watchlist/20", tok, map[string]any{"userRating": 9})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 9, decode[models.WatchlistEntry](t, rr).UserRating)

	rr = env.do(t, http.MethodPut, "/watchlist/20", tok, map[string]any{"userRating": 11})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPut, "/watchlist/20", tok, map[string]any{"status": "Binging"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPut, "/watchlist/999", tok, map[string]any{"userRating": 5})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodDelete, "/watchlist/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodDelete, "/watchlist/999", tok, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAnimeRoutes(t *testing.T) {
	env := setup()

	rr := env.do(t, http.MethodGet, "/anime/top/popular", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[animeListResponse](t, rr).Data, 1)

	rr = env.do(t, http.MethodGet, "/anime/top/now", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = env.do(t, http.MethodGet, "/anime/search?q=Frieren", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Frieren", decode[animeListResponse](t, rr).Data[0].Title)

	rr = env.do(t, http.MethodGet, "/anime/1", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodGet, "/anime/2", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodGet, "/anime/1/similar?limit=3", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, decode[similarResponse](t, rr).Data[0].AnimeID)
}

func TestRecommendationRoutes(t *testing.T) {
	env := setup()
	tok := signedToken(t, "u1")

	rr := env.do(t, http.MethodGet, "/recommendations?type=magic", tok, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodGet, "/recommendations?type=content&limit=5", tok, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, recommend.AlgorithmContent, env.rec.got.Algorithm)
	assert.Equal(t, 5, env.rec.got.Limit)
	assert.Equal(t, "u1", env.rec.got.UserID)

	res := decode[service.RecResult](t, rr)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 6, res.Items[0].AnimeID)

	rr = env.do(t, http.MethodGet, "/recommendations", tok, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, recommend.AlgorithmHybrid, env.rec.got.Algorithm)

	rr = env.do(t, http.MethodGet, "/recommendations/insights", tok, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, decode[insightsResponse](t, rr).Insights.TotalAnime)
}

func TestRecommendationsWebSocket(t *testing.T) {
	env := setup()
	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/recommendations/ws?type=content&token=" + signedToken(t, "u1")
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	var types []string
	var last wsMessage
	for {
		var m wsMessage
		if err := conn.ReadJSON(&m); err != nil {
			break
		}
		types = append(types, m.Type)
		last = m
	}

	assert.Equal(t, []string{"start", "progress", "progress", "progress", "recommendations"}, types)
	assert.Equal(t, recommend.AlgorithmContent, last.Algorithm)
	require.Len(t, last.Items, 1)
	assert.Equal(t, 6, last.Items[0].AnimeID)
}
