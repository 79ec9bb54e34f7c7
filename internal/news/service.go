// Package news fetches recent headlines for a place and scores them for
// logistics disruption signals. Lookups are best-effort: failures yield an
// empty headline list, never an error.
package news

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/cache"
	"github.com/sujaypr/SCM/internal/ratelimit"
)

// MaxHeadlines bounds how many headlines feed into scoring per place.
const MaxHeadlines = 3

// Disruption keyword weights applied per headline.
const (
	MajorDisruptionScore = 2
	MinorDisruptionScore = 1
)

var (
	// majorKeywords indicate a route is likely blocked or unsafe.
	majorKeywords = []string{"strike", "protest", "flood", "blocked", "accident", "closure", "cyclone"}

	// minorKeywords indicate slowdowns rather than blockage.
	minorKeywords = []string{"delay", "traffic", "storm", "warning"}
)

// Provider defines the interface for news providers.
type Provider interface {
	// Search returns recent headlines matching a query, newest first.
	Search(ctx context.Context, query string, pageSize int) ([]Headline, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the news service.
type ServiceConfig struct {
	// Provider is the news provider. Optional; when nil every lookup
	// returns no headlines.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Cache stores headline lists. Required.
	Cache *cache.Cache

	// Limiter spaces out upstream calls. Required.
	Limiter *ratelimit.Limiter

	// CacheTTL is how long headline lists stay cached
	// (default: 5 minutes).
	CacheTTL time.Duration

	// MinCallInterval is the minimum spacing between upstream calls
	// (default: 1 second).
	MinCallInterval time.Duration
}

// Service provides cached, rate-limited headline lookups.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cache           *cache.Cache
	limiter         *ratelimit.Limiter
	cacheTTL        time.Duration
	minCallInterval time.Duration
}

const limiterEndpoint = "news"

// NewService creates a new news service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
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
	}
}

// Headlines returns up to MaxHeadlines recent headlines for a place.
// Provider absence, failure, or rate-limit denial yields an empty list.
func (s *Service) Headlines(ctx context.Context, place string) []Headline {
	normalized := strings.ToLower(strings.TrimSpace(place))
	if normalized == "" || s.provider == nil {
		return nil
	}

	key := cache.Key("news", normalized)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]Headline)
	}

	if !s.limiter.Allow(limiterEndpoint, s.minCallInterval) {
		s.logger.Debug().
			Str("place", normalized).
			Msg("news call skipped by rate limiter")
		return nil
	}

	headlines, err := s.provider.Search(ctx, normalized, MaxHeadlines)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("place", normalized).
			Str("provider", s.provider.Name()).
			Msg("news lookup failed")
		return nil
	}

	if len(headlines) > MaxHeadlines {
		headlines = headlines[:MaxHeadlines]
	}
	s.cache.Set(key, headlines, s.cacheTTL)

	return headlines
}

// Penalty scores headlines for disruption signals: MajorDisruptionScore per
// headline mentioning a blocking event, MinorDisruptionScore per headline
// mentioning a slowdown. A headline matching both lists scores only the
// major weight.
func Penalty(headlines []Headline) int {
	total := 0
	for _, h := range headlines {
		title := strings.ToLower(h.Title)
		switch {
		case containsAny(title, majorKeywords):
			total += MajorDisruptionScore
		case containsAny(title, minorKeywords):
			total += MinorDisruptionScore
		}
	}
	return total
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
