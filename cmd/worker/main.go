// Package main provides the entrypoint for the SCM cache pre-warm worker.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/cache"
	"github.com/sujaypr/SCM/internal/geocode"
	"github.com/sujaypr/SCM/internal/geocode/nominatim"
	"github.com/sujaypr/SCM/internal/news"
	"github.com/sujaypr/SCM/internal/news/gnews"
	"github.com/sujaypr/SCM/internal/provider/resilience"
	"github.com/sujaypr/SCM/internal/ratelimit"
	"github.com/sujaypr/SCM/internal/weather"
	"github.com/sujaypr/SCM/internal/weather/openmeteo"
	"github.com/sujaypr/SCM/internal/weather/openweathermap"
	"github.com/sujaypr/SCM/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "scm-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting SCM worker")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The worker tolerates slower upstreams than the request path, so its
	// clients retry a couple of times before giving up on a hub.
	retrying := func(name string) *resilience.Client {
		return resilience.NewClient(resilience.DefaultClientConfig(name))
	}

	limiter := ratelimit.New()

	geocoder := geocode.NewService(geocode.ServiceConfig{
		Provider: nominatim.NewClient(nominatim.ClientConfig{
			HTTPClient: retrying(nominatim.ProviderName),
			Logger:     log,
		}),
		Logger:  log,
		Cache:   cache.New(),
		Limiter: limiter,
	})

	var weatherPrimary weather.Provider
	if owmKey := os.Getenv("OWM_API_KEY"); owmKey != "" {
		weatherPrimary = openweathermap.NewClient(openweathermap.ClientConfig{
			APIKey:     owmKey,
			HTTPClient: retrying(openweathermap.ProviderName),
			Logger:     log,
		})
	}
	weatherService := weather.NewService(weather.ServiceConfig{
		Primary: weatherPrimary,
		Secondary: openmeteo.NewClient(openmeteo.ClientConfig{
			HTTPClient: retrying(openmeteo.ProviderName),
			Logger:     log,
		}),
		Logger:  log,
		Cache:   cache.New(),
		Limiter: limiter,
	})

	var newsProvider news.Provider
	if gnewsKey := os.Getenv("GNEWS_API_KEY"); gnewsKey != "" {
		newsProvider = gnews.NewClient(gnews.ClientConfig{
			APIKey:     gnewsKey,
			HTTPClient: retrying(gnews.ProviderName),
			Logger:     log,
		})
	}
	newsService := news.NewService(news.ServiceConfig{
		Provider: newsProvider,
		Logger:   log,
		Cache:    cache.New(),
		Limiter:  limiter,
	})

	warmConfig := worker.DefaultWarmConfig()
	warmConfig.WarmNews = newsProvider != nil

	warmJob := worker.NewWarmJob(worker.WarmJobConfig{
		Config:   warmConfig,
		Logger:   log,
		Geocoder: geocoder,
		Weather:  weatherService,
		News:     newsService,
	})

	// Health endpoint for the container platform, with warm metrics.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"version": Version,
			"warm":    warmJob.MetricsSnapshot(),
		})
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("health server error")
		}
	}()

	// Prefer Pub/Sub when configured; fall back to a local ticker so the
	// worker still warms caches in environments without a broker.
	projectID := os.Getenv("PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if subscription == "" {
		subscription = "cache-warm-jobs"
	}

	if projectID != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			WarmJob:          warmJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer handler.Close()

		go func() {
			if err := handler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Fatal().Err(err).Msg("pubsub handler stopped")
			}
		}()
	} else {
		interval := 6 * time.Hour
		if raw := os.Getenv("WARM_INTERVAL"); raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
				interval = parsed
			}
		}
		log.Warn().
			Dur("interval", interval).
			Msg("PROJECT_ID not set - warming on a local ticker")

		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			result := warmJob.Run(ctx)
			log.Info().
				Int("successful", result.Successful).
				Int("failed", result.Failed).
				Msg("initial warm completed")

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					result := warmJob.Run(ctx)
					log.Info().
						Int("successful", result.Successful).
						Int("failed", result.Failed).
						Msg("scheduled warm completed")
				}
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
