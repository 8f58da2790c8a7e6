package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/23himanshusingh/AnimeGpt/docs" // swagger docs

	"github.com/23himanshusingh/AnimeGpt/internal/cache"
	"github.com/23himanshusingh/AnimeGpt/internal/config"
	"github.com/23himanshusingh/AnimeGpt/internal/db"
	"github.com/23himanshusingh/AnimeGpt/internal/handler"
	"github.com/23himanshusingh/AnimeGpt/internal/jikan"
	"github.com/23himanshusingh/AnimeGpt/internal/logging"
	"github.com/23himanshusingh/AnimeGpt/internal/repository"
	"github.com/23himanshusingh/AnimeGpt/internal/service"
)

// @title AnimeGpt API
// @version 1.0
// @description Anime catalog, watchlists and personalised recommendations
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mongo and Redis
	mongoClient, database, err := db.Connect(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	redisCache, err := cache.NewRedis(ctx, cfg)
	if err != nil {
		// a nil cache is a no-op, the in-memory layer still works
		logging.Warn().Err(err).Msg("redis unavailable, running without shared cache")
	} else {
		defer func() { _ = redisCache.Close() }()
	}

	// repos
	userRepo := repository.NewUserRepository(database)
	watchlistRepo := repository.NewWatchlistRepository(database)

	// services
	jikanClient := jikan.New(jikan.Options{
		BaseURL:      cfg.JikanBaseURL,
		RateInterval: cfg.JikanRateInterval,
		Timeout:      cfg.JikanTimeout,
	})
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	watchlistSvc := service.NewWatchlistService(watchlistRepo)
	catalogSvc := service.NewCatalogService(jikanClient, redisCache, cfg.CatalogCacheTTL)
	recSvc := service.NewRecommendService(watchlistRepo, catalogSvc, service.NoPeers{})

	router := handler.NewRouter(handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authSvc),
		Anime:         handler.NewAnimeHandler(catalogSvc),
		Watchlist:     handler.NewWatchlistHandler(watchlistSvc),
		Recommend:     handler.NewRecommendHandler(recSvc),
		JWTSecret:     cfg.JWTSecret,
		CORSOrigins:   cfg.CORSOrigins,
		AuthRateLimit: cfg.AuthRateLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("http shutdown")
	}
}
