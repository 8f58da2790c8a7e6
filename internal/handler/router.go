package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/23himanshusingh/AnimeGpt/internal/logging"
)

type RouterDeps struct {
	Auth        *AuthHandler
	Anime       *AnimeHandler
	Watchlist   *WatchlistHandler
	Recommend   *RecommendHandler
	JWTSecret   string
	CORSOrigins []string

	// AuthRateLimit is requests per minute per IP on /auth; 0 disables it.
	AuthRateLimit int
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// =============
	// Public routes
	// =============
	r.Get("/health", Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		if d.AuthRateLimit > 0 {
			r.Use(httprate.LimitByIP(d.AuthRateLimit, time.Minute))
		}
		r.Post("/register", d.Auth.Register)
		r.Post("/login", d.Auth.Login)
		r.With(JWTAuth(d.JWTSecret)).Get("/me", d.Auth.Me)
	})

	r.Route("/anime", func(r chi.Router) {
		r.Get("/top/{list}", d.Anime.Top)
		r.Get("/search", d.Anime.Search)
		r.Get("/{id}", d.Anime.Details)
		r.Get("/{id}/related", d.Anime.Related)
		r.Get("/{id}/similar", d.Recommend.GetSimilar)
	})

	// =========================
	// Routes behind JWT
	// =========================
	r.Group(func(r chi.Router) {
		r.Use(JWTAuth(d.JWTSecret))

		r.Route("/watchlist", func(r chi.Router) {
			r.Get("/", d.Watchlist.Get)
			r.Post("/", d.Watchlist.Add)
			r.Put("/{malId}", d.Watchlist.Update)
			r.Delete("/{malId}", d.Watchlist.Remove)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/", d.Recommend.GetRecommendations)
			r.Get("/insights", d.Recommend.GetInsights)
			r.Get("/ws", d.Recommend.GetRecommendationsWS)
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	return r
}
