package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/internal/geocode"
	"github.com/sujaypr/SCM/internal/news"
	"github.com/sujaypr/SCM/internal/weather"
)

// Geocoder resolves place names, filling its cache as a side effect.
type Geocoder interface {
	Resolve(ctx context.Context, place string) geocode.Result
}

// WeatherService fetches current conditions, filling its cache as a side
// effect.
type WeatherService interface {
	Current(ctx context.Context, coord geo.Coordinate) *weather.Observation
}

// NewsService fetches recent headlines for a place.
type NewsService interface {
	Headlines(ctx context.Context, place string) []news.Headline
}

// WarmJob pre-fills the provider caches for the configured hubs so that
// interactive requests hit warm entries instead of slow upstreams.
type WarmJob struct {
	config WarmConfig
	logger zerolog.Logger

	// Services (optional, nil if not configured)
	geocoder Geocoder
	weather  WeatherService
	news     NewsService

	metrics *WarmMetrics
}

// WarmMetrics tracks warm job statistics.
type WarmMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRuns      int64
	SuccessfulHubs int64
	FailedHubs     int64
	GeocodeWarms   int64
	WeatherWarms   int64
	NewsWarms      int64

	// Timings
	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// WarmJobConfig holds configuration for creating a WarmJob.
type WarmJobConfig struct {
	Config   WarmConfig
	Logger   zerolog.Logger
	Geocoder Geocoder
	Weather  WeatherService
	News     NewsService
}

// NewWarmJob creates a new cache warm job.
func NewWarmJob(cfg WarmJobConfig) *WarmJob {
	config := cfg.Config
	if len(config.Targets) == 0 {
		config = DefaultWarmConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &WarmJob{
		config:   config,
		logger:   cfg.Logger,
		geocoder: cfg.Geocoder,
		weather:  cfg.Weather,
		news:     cfg.News,
		metrics:  &WarmMetrics{},
	}
}

// WarmResult contains the result of a warm run.
type WarmResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalHubs  int
	Successful int
	Failed     int
	Errors     []WarmError
}

// WarmError records a hub whose warm fell through to a degraded source.
type WarmError struct {
	Provider string
	Hub      Hub
	Reason   string
}

// Run warms all configured hubs through a bounded worker pool.
func (j *WarmJob) Run(ctx context.Context) *WarmResult {
	startTime := time.Now()
	result := &WarmResult{
		StartTime: startTime,
		TotalHubs: j.config.TotalHubs(),
	}

	j.logger.Info().
		Int("total_hubs", result.TotalHubs).
		Int("concurrency", j.config.Concurrency).
		Msg("starting cache warm job")

	hubs := j.config.AllHubs()

	hubsChan := make(chan Hub, len(hubs))
	resultsChan := make(chan hubResult, len(hubs))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.warmWorker(ctx, hubsChan, resultsChan)
		}()
	}

	for _, h := range hubs {
		hubsChan <- h
	}
	close(hubsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for hr := range resultsChan {
		if hr.success {
			result.Successful++
		} else {
			result.Failed++
		}
		result.Errors = append(result.Errors, hr.errors...)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("cache warm job completed")

	return result
}

type hubResult struct {
	hub     Hub
	success bool
	errors  []WarmError
}

func (j *WarmJob) warmWorker(ctx context.Context, hubs <-chan Hub, results chan<- hubResult) {
	for hub := range hubs {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.warmHub(ctx, hub)
		}
	}
}

// warmHub exercises each configured provider for one hub. The provider
// services never return errors, so failure is detected from the degraded
// results they hand back.
func (j *WarmJob) warmHub(ctx context.Context, hub Hub) hubResult {
	result := hubResult{
		hub:     hub,
		success: true,
	}

	hubCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	if j.config.WarmGeocode && j.geocoder != nil {
		if res := j.geocoder.Resolve(hubCtx, hub.Name); res.Resolved() {
			atomic.AddInt64(&j.metrics.GeocodeWarms, 1)
		} else {
			result.errors = append(result.errors, WarmError{
				Provider: "geocode",
				Hub:      hub,
				Reason:   "place did not resolve",
			})
			result.success = false
		}
	}

	if j.config.WarmWeather && j.weather != nil {
		obs := j.weather.Current(hubCtx, hub.Coord)
		if obs != nil && obs.Source != weather.SourceError && obs.Source != weather.SourceMock {
			atomic.AddInt64(&j.metrics.WeatherWarms, 1)
		} else {
			result.errors = append(result.errors, WarmError{
				Provider: "weather",
				Hub:      hub,
				Reason:   "no live observation",
			})
			result.success = false
		}
	}

	// Headlines are optional; an empty result is not a warm failure.
	if j.config.WarmNews && j.news != nil {
		if headlines := j.news.Headlines(hubCtx, hub.Name); len(headlines) > 0 {
			atomic.AddInt64(&j.metrics.NewsWarms, 1)
		}
	}

	return result
}

func (j *WarmJob) updateMetrics(result *WarmResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.SuccessfulHubs += int64(result.Successful)
	j.metrics.FailedHubs += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *WarmJob) GetMetrics() WarmMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return WarmMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		SuccessfulHubs:  j.metrics.SuccessfulHubs,
		FailedHubs:      j.metrics.FailedHubs,
		GeocodeWarms:    atomic.LoadInt64(&j.metrics.GeocodeWarms),
		WeatherWarms:    atomic.LoadInt64(&j.metrics.WeatherWarms),
		NewsWarms:       atomic.LoadInt64(&j.metrics.NewsWarms),
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
		TotalDuration:   j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *WarmJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"successful_hubs":   m.SuccessfulHubs,
		"failed_hubs":       m.FailedHubs,
		"geocode_warms":     m.GeocodeWarms,
		"weather_warms":     m.WeatherWarms,
		"news_warms":        m.NewsWarms,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}
