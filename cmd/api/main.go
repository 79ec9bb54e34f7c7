// Package main provides the entrypoint for the SCM route-intelligence API
// server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/api"
	"github.com/sujaypr/SCM/internal/api/handler"
	"github.com/sujaypr/SCM/internal/api/middleware"
	"github.com/sujaypr/SCM/internal/auth"
	"github.com/sujaypr/SCM/internal/cache"
	"github.com/sujaypr/SCM/internal/database"
	"github.com/sujaypr/SCM/internal/decision"
	"github.com/sujaypr/SCM/internal/distance"
	"github.com/sujaypr/SCM/internal/distance/openrouteservice"
	"github.com/sujaypr/SCM/internal/gentext"
	"github.com/sujaypr/SCM/internal/gentext/gemini"
	"github.com/sujaypr/SCM/internal/geocode"
	"github.com/sujaypr/SCM/internal/geocode/nominatim"
	"github.com/sujaypr/SCM/internal/news"
	"github.com/sujaypr/SCM/internal/news/gnews"
	"github.com/sujaypr/SCM/internal/provider/resilience"
	"github.com/sujaypr/SCM/internal/quotes"
	"github.com/sujaypr/SCM/internal/ratelimit"
	"github.com/sujaypr/SCM/internal/routeintel"
	"github.com/sujaypr/SCM/internal/shipment"
	"github.com/sujaypr/SCM/internal/telemetry"
	"github.com/sujaypr/SCM/internal/weather"
	"github.com/sujaypr/SCM/internal/weather/openmeteo"
	"github.com/sujaypr/SCM/internal/weather/openweathermap"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "scm-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting SCM API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()

	telemetryCfg := telemetry.ConfigFromEnv(serviceName)
	if telemetryCfg.ServiceVersion == "" {
		telemetryCfg.ServiceVersion = Version
	}

	tp, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryCfg.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryCfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	providerMetrics, err := telemetry.NewProviderMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}

	// Connect to database when one is configured. The service runs fine
	// without it: shipments fall back to the in-memory repository.
	var (
		shipmentRepo shipment.Repository = shipment.NewInMemoryRepository()
		dbPinger     handler.Pinger
	)
	if os.Getenv("DB_HOST") != "" {
		dbConfig := database.ConfigFromEnv()
		pool, connErr := database.Connect(ctx, dbConfig)
		if connErr != nil {
			log.Fatal().Err(connErr).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		shipmentRepo = shipment.NewPostgresRepository(pool)
		dbPinger = pool
	} else {
		log.Warn().Msg("DB_HOST not set - using in-memory shipment repository")
	}

	// Provider health registry and shared caches
	registry := resilience.NewRegistry()
	limiter := ratelimit.New()

	geocodeCache := cache.New()
	weatherCache := cache.New()
	newsCache := cache.New()

	tracked := func(name string) *resilience.Client {
		cfg := resilience.SingleAttemptConfig(name)
		cfg.Registry = registry
		cfg.Metrics = providerMetrics
		return resilience.NewClient(cfg)
	}

	// Geocoding: Nominatim behind cache and call spacing
	geocoder := geocode.NewService(geocode.ServiceConfig{
		Provider: nominatim.NewClient(nominatim.ClientConfig{
			HTTPClient: tracked(nominatim.ProviderName),
			Logger:     log,
		}),
		Logger:  log,
		Cache:   geocodeCache,
		Limiter: limiter,
		Metrics: providerMetrics,
	})

	// Distance: external routing tier only when an API key is configured
	var router distance.RouteProvider
	if orsKey := os.Getenv("ORS_API_KEY"); orsKey != "" {
		router = openrouteservice.NewClient(openrouteservice.ClientConfig{
			APIKey:   orsKey,
			Registry: registry,
			Logger:   log,
		})
		log.Info().Msg("OpenRouteService routing tier enabled")
	} else {
		log.Warn().Msg("ORS_API_KEY not set - distance starts at the haversine tier")
	}
	distanceResolver := distance.NewResolver(distance.ResolverConfig{
		Router: router,
		Logger: log,
	})

	// Weather: keyed primary plus free secondary tier
	var weatherPrimary weather.Provider
	if owmKey := os.Getenv("OWM_API_KEY"); owmKey != "" {
		weatherPrimary = openweathermap.NewClient(openweathermap.ClientConfig{
			APIKey:     owmKey,
			HTTPClient: tracked(openweathermap.ProviderName),
			Logger:     log,
		})
	} else {
		log.Warn().Msg("OWM_API_KEY not set - weather starts at the secondary tier")
	}
	weatherService := weather.NewService(weather.ServiceConfig{
		Primary: weatherPrimary,
		Secondary: openmeteo.NewClient(openmeteo.ClientConfig{
			HTTPClient: tracked(openmeteo.ProviderName),
			Logger:     log,
		}),
		Logger:  log,
		Cache:   weatherCache,
		Limiter: limiter,
		Metrics: providerMetrics,
	})

	// News: optional disruption signal
	var newsProvider news.Provider
	if gnewsKey := os.Getenv("GNEWS_API_KEY"); gnewsKey != "" {
		newsProvider = gnews.NewClient(gnews.ClientConfig{
			APIKey:     gnewsKey,
			HTTPClient: tracked(gnews.ProviderName),
			Logger:     log,
		})
	} else {
		log.Warn().Msg("GNEWS_API_KEY not set - news signal disabled")
	}
	newsService := news.NewService(news.ServiceConfig{
		Provider: newsProvider,
		Logger:   log,
		Cache:    newsCache,
		Limiter:  limiter,
	})

	// Generative text: optional, falls back to deterministic summaries
	var completer gentext.Completer
	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		completer = gemini.NewClient(gemini.ClientConfig{
			APIKey:     geminiKey,
			HTTPClient: tracked(gemini.ProviderName),
			Logger:     log,
		})
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set - using deterministic text fallbacks")
	}
	textGateway := gentext.NewGateway(gentext.GatewayConfig{
		Completer: completer,
		Logger:    log,
	})

	// Decision engine and quote comparator
	decisionEngine := decision.NewEngine(decision.EngineConfig{
		Geocoder: geocoder,
		Distance: distanceResolver,
		Weather:  weatherService,
		News:     newsService,
		Gateway:  textGateway,
		Logger:   log,
	})

	quoteComparator := quotes.NewComparator(quotes.ComparatorConfig{
		Geocoder: geocoder,
		Distance: distanceResolver,
		Weather:  weatherService,
		News:     newsService,
		Gateway:  textGateway,
		Logger:   log,
	})

	// Route-intelligence facade
	intelService := routeintel.NewService(routeintel.ServiceConfig{
		Geocoder: geocoder,
		Distance: distanceResolver,
		Weather:  weatherService,
		Decision: decisionEngine,
		Quotes:   quoteComparator,
		Logger:   log,
	})
	log.Info().Msg("route intelligence initialized")

	// Shipment booking and tracking
	shipmentService := shipment.NewService(shipment.ServiceConfig{
		Repository: shipmentRepo,
		Geocoder:   geocoder,
		Distance:   distanceResolver,
		Logger:     log,
	})
	log.Info().Msg("shipment service initialized")

	// Initialize JWT service for the admin surface
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     "https://api.scm.dev",
		Audience:   "scm-admin",
	})

	// Create router with configuration
	apiRouter := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,

		DB:        dbPinger,
		Intel:     intelService,
		Optimizer: shipmentService,
		Decision:  decisionEngine,
		Quotes:    quoteComparator,
		Geocoder:  geocoder,
		Weather:   weatherService,
		Shipments: shipmentService,

		TokenValidator: jwtService,
		AdminCaches: map[string]handler.CacheInvalidator{
			"geocode": geocodeCache,
			"weather": weatherCache,
			"news":    newsCache,
		},
		Registry: registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      apiRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
