// Package weather fetches current conditions at a coordinate through a
// tiered provider chain: keyed primary, free secondary, then a synthetic
// mock that cannot fail. Every tier sits behind the cache and rate limiter.
package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/cache"
	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/internal/ratelimit"
	"github.com/sujaypr/SCM/internal/telemetry"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// Current fetches current weather for a coordinate.
	Current(ctx context.Context, coord geo.Coordinate) (*Observation, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Primary is the keyed weather provider. Optional.
	Primary Provider

	// Secondary is the free fallback provider. Optional.
	Secondary Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Cache stores observations. Required.
	Cache *cache.Cache

	// Limiter spaces out upstream calls per logical endpoint. Required.
	Limiter *ratelimit.Limiter

	// CacheTTL is how long observations stay cached (default: 60 seconds).
	CacheTTL time.Duration

	// MinCallInterval is the minimum spacing between upstream calls per
	// provider endpoint (default: 1 second).
	MinCallInterval time.Duration

	// Metrics records cache hit/miss counts. Optional.
	Metrics *telemetry.ProviderMetrics
}

// Service provides current weather with tiered fallback. Current never
// fails: the mock tier always produces an observation.
type Service struct {
	tiers           []tier
	logger          zerolog.Logger
	cache           *cache.Cache
	limiter         *ratelimit.Limiter
	cacheTTL        time.Duration
	minCallInterval time.Duration
	metrics         *telemetry.ProviderMetrics
}

type tier struct {
	provider Provider
	source   Source
	endpoint string
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 60 * time.Second
	}

	minCallInterval := cfg.MinCallInterval
	if minCallInterval == 0 {
		minCallInterval = 1 * time.Second
	}

	tiers := make([]tier, 0, 2)
	if cfg.Primary != nil {
		tiers = append(tiers, tier{provider: cfg.Primary, source: SourcePrimary, endpoint: "weather:primary"})
	}
	if cfg.Secondary != nil {
		tiers = append(tiers, tier{provider: cfg.Secondary, source: SourceSecondary, endpoint: "weather:secondary"})
	}

	return &Service{
		tiers:           tiers,
		logger:          cfg.Logger,
		cache:           cfg.Cache,
		limiter:         cfg.Limiter,
		cacheTTL:        cacheTTL,
		minCallInterval: minCallInterval,
		metrics:         cfg.Metrics,
	}
}

// Current returns current weather for a coordinate. Provider failures and
// rate-limit denials fall through to the next tier; the mock tier is the
// guaranteed terminal answer. Invalid coordinates yield a Source=error
// observation rather than an error.
func (s *Service) Current(ctx context.Context, coord geo.Coordinate) *Observation {
	if err := coord.Validate(); err != nil {
		return &Observation{
			Coord:     coord,
			Condition: "unknown",
			Source:    SourceError,
			FetchedAt: time.Now(),
		}
	}

	key := cacheKey(coord)
	if cached, ok := s.cache.Get(key); ok {
		if s.metrics != nil {
			s.metrics.RecordCacheHit("weather", "current")
		}
		return cached.(*Observation)
	}
	if s.metrics != nil {
		s.metrics.RecordCacheMiss("weather", "current")
	}

	for _, t := range s.tiers {
		if !s.limiter.Allow(t.endpoint, s.minCallInterval) {
			s.logger.Debug().
				Str("endpoint", t.endpoint).
				Msg("weather call skipped by rate limiter")
			continue
		}

		obs, err := t.provider.Current(ctx, coord)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("provider", t.provider.Name()).
				Msg("weather tier failed, falling through")
			continue
		}

		obs.Source = t.source
		s.cache.Set(key, obs, s.cacheTTL)
		return obs
	}

	obs := mockObservation(coord)
	s.cache.Set(key, obs, s.cacheTTL)
	return obs
}

// cacheKey groups lookups to four decimal places, roughly 11 meters.
func cacheKey(coord geo.Coordinate) string {
	return cache.Key("weather", fmt.Sprintf("%.4f", coord.Lat), fmt.Sprintf("%.4f", coord.Lon))
}
