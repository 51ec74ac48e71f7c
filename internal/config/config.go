package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server        ServerConfig
	Redis         RedisConfig
	Image         ImageConfig
	LazyLoad      LazyLoadConfig
	VirtualScroll VirtualScrollConfig
	RateLimit     RateLimitConfig
	Warmer        WarmerConfig
	Admin         AdminConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// ImageConfig holds image optimization settings.
type ImageConfig struct {
	MaxWidth      int
	Quality       float64
	DecodeTimeout time.Duration
	CacheName     string
	CacheTTL      time.Duration
}

// LazyLoadConfig holds the lazy-load defaults served to browser clients.
type LazyLoadConfig struct {
	RootMargin string
	Threshold  float64
}

// VirtualScrollConfig holds the virtual-scroll defaults served to browser clients.
type VirtualScrollConfig struct {
	ItemHeightPx      int
	OverscanItems     int
	LoadMoreThreshold int
}

// RateLimitConfig holds per-IP API rate limiting settings.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// WarmerConfig holds cache warming settings.
type WarmerConfig struct {
	Concurrency  int
	FetchTimeout time.Duration
	MaxBodyBytes int64
}

// AdminConfig holds settings for the cache maintenance endpoints. When Token
// is empty the admin routes respond 501, mirroring an unconfigured integration.
type AdminConfig struct {
	Token string //nolint:gosec // G117: admin token config
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only. In production the admin token
// must be set explicitly for cache maintenance to be reachable.
func Load() (*Config, error) {
	redisDB, err := getEnvInt("ASSETOPT_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("ASSETOPT_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("ASSETOPT_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	maxWidth, err := getEnvInt("ASSETOPT_IMAGE_MAX_WIDTH", 800)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	quality, err := getEnvFloat("ASSETOPT_IMAGE_QUALITY", 0.8)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	decodeTimeout, err := getEnvDuration("ASSETOPT_IMAGE_DECODE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cacheTTL, err := getEnvDuration("ASSETOPT_IMAGE_CACHE_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	lazyThreshold, err := getEnvFloat("ASSETOPT_LAZYLOAD_THRESHOLD", 0.1)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	itemHeight, err := getEnvInt("ASSETOPT_VSCROLL_ITEM_HEIGHT", 300)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	overscan, err := getEnvInt("ASSETOPT_VSCROLL_OVERSCAN", 5)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	loadMore, err := getEnvInt("ASSETOPT_VSCROLL_LOAD_MORE_THRESHOLD", 100)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rps, err := getEnvFloat("ASSETOPT_RATELIMIT_RPS", 50)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	burst, err := getEnvInt("ASSETOPT_RATELIMIT_BURST", 100)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	warmConcurrency, err := getEnvInt("ASSETOPT_WARMER_CONCURRENCY", 4)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	warmFetchTimeout, err := getEnvDuration("ASSETOPT_WARMER_FETCH_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	warmMaxBody, err := getEnvInt("ASSETOPT_WARMER_MAX_BODY_BYTES", 5<<20)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("ASSETOPT_CORS_ORIGINS", []string{"*"})

	cfg := &Config{
		Server: ServerConfig{
			Addr:         getEnv("ASSETOPT_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  corsOrigins,
		},
		Redis: RedisConfig{
			Addr:     getEnv("ASSETOPT_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("ASSETOPT_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Image: ImageConfig{
			MaxWidth:      maxWidth,
			Quality:       quality,
			DecodeTimeout: decodeTimeout,
			CacheName:     getEnv("ASSETOPT_IMAGE_CACHE_NAME", "images"),
			CacheTTL:      cacheTTL,
		},
		LazyLoad: LazyLoadConfig{
			RootMargin: getEnv("ASSETOPT_LAZYLOAD_ROOT_MARGIN", "50px"),
			Threshold:  lazyThreshold,
		},
		VirtualScroll: VirtualScrollConfig{
			ItemHeightPx:      itemHeight,
			OverscanItems:     overscan,
			LoadMoreThreshold: loadMore,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: rps,
			Burst:             burst,
		},
		Warmer: WarmerConfig{
			Concurrency:  warmConcurrency,
			FetchTimeout: warmFetchTimeout,
			MaxBodyBytes: int64(warmMaxBody),
		},
		Admin: AdminConfig{
			Token: getEnv("ASSETOPT_ADMIN_TOKEN", ""),
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	if c.Admin.Token == "" {
		log.Warn().Msg("ASSETOPT_ADMIN_TOKEN is not set; cache maintenance endpoints are disabled")
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("ASSETOPT_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("ASSETOPT_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Image.MaxWidth < 1 {
		return fmt.Errorf("ASSETOPT_IMAGE_MAX_WIDTH must be >= 1, got %d", c.Image.MaxWidth)
	}
	if c.Image.Quality <= 0 || c.Image.Quality > 1 {
		return fmt.Errorf("ASSETOPT_IMAGE_QUALITY must be in (0,1], got %g", c.Image.Quality)
	}
	if c.Image.DecodeTimeout <= 0 {
		return fmt.Errorf("ASSETOPT_IMAGE_DECODE_TIMEOUT must be positive, got %s", c.Image.DecodeTimeout)
	}
	if c.LazyLoad.Threshold < 0 || c.LazyLoad.Threshold > 1 {
		return fmt.Errorf("ASSETOPT_LAZYLOAD_THRESHOLD must be in [0,1], got %g", c.LazyLoad.Threshold)
	}
	if c.VirtualScroll.ItemHeightPx < 1 {
		return fmt.Errorf("ASSETOPT_VSCROLL_ITEM_HEIGHT must be >= 1, got %d", c.VirtualScroll.ItemHeightPx)
	}
	if c.VirtualScroll.OverscanItems < 0 {
		return fmt.Errorf("ASSETOPT_VSCROLL_OVERSCAN must be >= 0, got %d", c.VirtualScroll.OverscanItems)
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("ASSETOPT_RATELIMIT_RPS must be positive, got %g", c.RateLimit.RequestsPerSecond)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("ASSETOPT_RATELIMIT_BURST must be >= 1, got %d", c.RateLimit.Burst)
	}
	if c.Warmer.Concurrency < 1 {
		return fmt.Errorf("ASSETOPT_WARMER_CONCURRENCY must be >= 1, got %d", c.Warmer.Concurrency)
	}
	if c.Warmer.MaxBodyBytes < 1 {
		return fmt.Errorf("ASSETOPT_WARMER_MAX_BODY_BYTES must be >= 1, got %d", c.Warmer.MaxBodyBytes)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
