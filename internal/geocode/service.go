// Package geocode resolves free-text place names to coordinates with
// caching and call-rate protection in front of the upstream geocoder.
package geocode

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/cache"
	"github.com/sujaypr/SCM/internal/ratelimit"
	"github.com/sujaypr/SCM/internal/telemetry"
)

// Provider defines the interface for geocoding providers.
type Provider interface {
	// Search resolves a place name to candidate results, best match first.
	Search(ctx context.Context, place string) ([]Result, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the geocoding service.
type ServiceConfig struct {
	// Provider is the geocoding provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Cache stores resolved coordinates. Required.
	Cache *cache.Cache

	// Limiter spaces out upstream calls. Required.
	Limiter *ratelimit.Limiter

	// CacheTTL is how long resolved coordinates stay cached
	// (default: 1 hour). City coordinates effectively never move,
	// so a long TTL is safe.
	CacheTTL time.Duration

	// MinCallInterval is the minimum spacing between upstream calls
	// (default: 1 second, per the upstream usage policy).
	MinCallInterval time.Duration

	// Metrics records cache hit/miss counts. Optional.
	Metrics *telemetry.ProviderMetrics
}

// Service resolves place names to coordinates. Failures and rate-limit
// denials produce an unresolved Result rather than an error so that
// downstream distance estimation can fall back.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cache           *cache.Cache
	limiter         *ratelimit.Limiter
	cacheTTL        time.Duration
	minCallInterval time.Duration
	metrics         *telemetry.ProviderMetrics
}

const limiterEndpoint = "geocode"

// NewService creates a new geocoding service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Hour
	}

	minCallInterval := cfg.MinCallInterval
	if minCallInterval == 0 {
		minCallInterval = 1 * time.Second
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cache:           cfg.Cache,
		limiter:         cfg.Limiter,
		cacheTTL:        cacheTTL,
		minCallInterval: minCallInterval,
		metrics:         cfg.Metrics,
	}
}

// Resolve looks up the coordinate for a place name. Cache hits bypass the
// rate limiter entirely. On provider failure, provider miss, or rate-limit
// denial it returns an unresolved Result and never an error.
func (s *Service) Resolve(ctx context.Context, place string) Result {
	normalized := strings.ToLower(strings.TrimSpace(place))
	if normalized == "" {
		return Result{}
	}

	key := cache.Key("geocode", normalized)
	if cached, ok := s.cache.Get(key); ok {
		if s.metrics != nil {
			s.metrics.RecordCacheHit(limiterEndpoint, "resolve")
		}
		return cached.(Result)
	}
	if s.metrics != nil {
		s.metrics.RecordCacheMiss(limiterEndpoint, "resolve")
	}

	if !s.limiter.Allow(limiterEndpoint, s.minCallInterval) {
		s.logger.Debug().
			Str("place", normalized).
			Msg("geocode call skipped by rate limiter")
		return Result{Place: normalized}
	}

	results, err := s.provider.Search(ctx, normalized)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("place", normalized).
			Str("provider", s.provider.Name()).
			Msg("geocoding failed")
		return Result{Place: normalized}
	}

	if len(results) == 0 {
		s.logger.Debug().
			Str("place", normalized).
			Msg("geocoder returned no matches")
		// Misses are not cached so a later lookup can retry.
		return Result{Place: normalized}
	}

	result := results[0]
	result.Place = normalized
	s.cache.Set(key, result, s.cacheTTL)

	return result
}
