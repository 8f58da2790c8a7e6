package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/23himanshusingh/AnimeGpt/internal/logging"
)

type Config struct {
	HTTPPort    string
	CORSOrigins []string

	MongoURI  string
	MongoDB   string
	RedisAddr string
	RedisPass string

	JWTSecret     string
	JWTTTL        time.Duration
	AuthRateLimit int // requests per minute per IP on /auth

	JikanBaseURL      string
	JikanRateInterval time.Duration
	JikanTimeout      time.Duration
	CatalogCacheTTL   time.Duration

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		CORSOrigins: getList("CORS_ORIGINS", []string{"http://localhost:5173"}),

		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "animegpt"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASSWORD", ""),

		JWTSecret:     getEnv("JWT_SECRET", "supersecretkey"),
		JWTTTL:        getDuration("JWT_TTL", 7*24*time.Hour),
		AuthRateLimit: getInt("AUTH_RATE_LIMIT", 20),

		JikanBaseURL:      getEnv("JIKAN_BASE_URL", "https://api.jikan.moe/v4"),
		JikanRateInterval: getDuration("JIKAN_RATE_INTERVAL", 800*time.Millisecond),
		JikanTimeout:      getDuration("JIKAN_TIMEOUT", 10*time.Second),
		CatalogCacheTTL:   getDuration("CATALOG_CACHE_TTL", 30*time.Minute),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	var errs []error
	if c.MongoURI == "" || c.MongoDB == "" {
		errs = append(errs, errors.New("MONGO_URI and MONGO_DB are required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JikanBaseURL == "" {
		errs = append(errs, errors.New("JIKAN_BASE_URL is required"))
	}
	for name, d := range map[string]time.Duration{
		"JWT_TTL":             c.JWTTTL,
		"JIKAN_RATE_INTERVAL": c.JikanRateInterval,
		"JIKAN_TIMEOUT":       c.JikanTimeout,
		"CATALOG_CACHE_TTL":   c.CatalogCacheTTL,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		logging.Debug().Str("component", "config").Str("key", key).Msg("not set, using default")
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logging.Warn().Str("component", "config").Str("key", key).Str("value", v).Msg("not an integer, using default")
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logging.Warn().Str("component", "config").Str("key", key).Str("value", v).Msg("not a duration, using default")
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
