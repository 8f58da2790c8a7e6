// Package jikan is a small client for the public Jikan v4 API
// (https://docs.api.jikan.moe), the catalog behind the app.
package jikan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/23himanshusingh/AnimeGpt/internal/logging"
	"github.com/23himanshusingh/AnimeGpt/internal/metrics"
	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

var (
	ErrNotFound    = errors.New("jikan: not found")
	ErrUnavailable = errors.New("jikan: unavailable")
)

const maxBodyBytes = 4 << 20

type Options struct {
	BaseURL string
	// RateInterval is the minimum spacing between requests. Jikan allows
	// about 3 requests per second; the app used 800ms.
	RateInterval time.Duration
	Timeout      time.Duration
	// FailureThreshold consecutive failures open the breaker for OpenTimeout.
	FailureThreshold uint32
	OpenTimeout      time.Duration
	HTTPClient       *http.Client
}

type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func New(opts Options) *Client {
	if opts.RateInterval <= 0 {
		opts.RateInterval = 800 * time.Millisecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = 30 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	log := logging.With().Str("component", "jikan").Logger()
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "jikan",
		Timeout: opts.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= opts.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})

	return &Client{
		baseURL: opts.BaseURL,
		http:    opts.HTTPClient,
		limiter: rate.NewLimiter(rate.Every(opts.RateInterval), 1),
		breaker: breaker,
	}
}

// ====== Catalog lists ======

// List returns the first page of one of the catalog lists in models.CatalogLists.
func (c *Client) List(ctx context.Context, list string) ([]models.Anime, error) {
	var (
		path  string
		query = url.Values{}
	)
	switch list {
	case models.ListTopAiring:
		path = "top/anime"
		query.Set("filter", "airing")
	case models.ListNowPlaying:
		path = "seasons/now"
	case models.ListTopPopular:
		path = "top/anime"
		query.Set("filter", "bypopularity")
	case models.ListTopMovies:
		path = "top/anime"
		query.Set("type", "movie")
	default:
		return nil, fmt.Errorf("jikan: unknown list %q", list)
	}

	var resp listResponse
	if err := c.get(ctx, "list_"+list, path, query, &resp); err != nil {
		return nil, err
	}
	return toModels(resp.Data), nil
}

func (c *Client) TopAiring(ctx context.Context) ([]models.Anime, error) {
	return c.List(ctx, models.ListTopAiring)
}

func (c *Client) NowPlaying(ctx context.Context) ([]models.Anime, error) {
	return c.List(ctx, models.ListNowPlaying)
}

func (c *Client) TopPopular(ctx context.Context) ([]models.Anime, error) {
	return c.List(ctx, models.ListTopPopular)
}

func (c *Client) TopMovies(ctx context.Context) ([]models.Anime, error) {
	return c.List(ctx, models.ListTopMovies)
}

// ====== Single anime / search ======

func (c *Client) Anime(ctx context.Context, id int) (*models.Anime, error) {
	var resp singleResponse
	if err := c.get(ctx, "anime", "anime/"+strconv.Itoa(id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data.MalID == 0 {
		return nil, ErrNotFound
	}
	a := resp.Data.toModel()
	return &a, nil
}

// Search runs a safe-for-work title search.
func (c *Client) Search(ctx context.Context, q string, limit int) ([]models.Anime, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("sfw", "true")

	var resp listResponse
	if err := c.get(ctx, "search", "anime", query, &resp); err != nil {
		return nil, err
	}
	return toModels(resp.Data), nil
}

// Recommendations returns the titles MAL users linked to anime id.
func (c *Client) Recommendations(ctx context.Context, id int) ([]models.Anime, error) {
	var resp recommendationsResponse
	if err := c.get(ctx, "recommendations", "anime/"+strconv.Itoa(id)+"/recommendations", nil, &resp); err != nil {
		return nil, err
	}
	entries := make([]animeData, len(resp.Data))
	for i, r := range resp.Data {
		entries[i] = r.Entry
	}
	return toModels(entries), nil
}

// ====== Transport ======

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, u)
	})
	if err != nil {
		outcome := "error"
		switch {
		case errors.Is(err, ErrNotFound):
			outcome = "not_found"
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			outcome = "breaker_open"
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		metrics.JikanRequests.WithLabelValues(endpoint, outcome).Inc()
		return err
	}
	metrics.JikanRequests.WithLabelValues(endpoint, "ok").Inc()

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("jikan: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("jikan: unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
