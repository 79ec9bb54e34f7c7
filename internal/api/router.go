// Package api provides the HTTP API for the SCM route-intelligence service.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/api/handler"
	"github.com/sujaypr/SCM/internal/api/middleware"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	DB        handler.Pinger
	Intel     handler.RouteIntelligence
	Optimizer handler.RouteOptimizer
	Decision  handler.DecisionEngine
	Quotes    handler.QuoteComparator
	Geocoder  handler.Geocoder
	Weather   handler.WeatherService
	Shipments handler.ShipmentService

	// TokenValidator protects the admin surface; nil disables those routes.
	TokenValidator middleware.TokenValidator
	AdminCaches    map[string]handler.CacheInvalidator
	Registry       handler.HealthRegistry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "scm-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB)
	routesHandler := handler.NewRoutesHandler(cfg.Intel, cfg.Optimizer)
	transportHandler := handler.NewTransportHandler(cfg.Decision)
	providersHandler := handler.NewProvidersHandler(cfg.Quotes)
	weatherHandler := handler.NewWeatherHandler(cfg.Geocoder, cfg.Weather, cfg.Intel)
	shipmentsHandler := handler.NewShipmentsHandler(cfg.Shipments, cfg.Intel)
	adminHandler := handler.NewAdminHandler(cfg.AdminCaches, cfg.Registry)

	// Rate limit middleware for the two endpoint categories: endpoints that
	// fan out to upstream providers get the strict tier.
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Route intelligence - fans out to geocoding, routing, weather,
		// news, and text generation upstreams.
		r.Route("/routes", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Post("/estimate", routesHandler.EstimateTransport)
			r.Post("/analyze", routesHandler.AnalyzeRoute)
			r.Post("/optimize", routesHandler.OptimizeRoutes)
		})

		r.With(expensiveRateLimit).Post("/transport/decide", transportHandler.Decide)
		r.With(expensiveRateLimit).Post("/providers/compare", providersHandler.Compare)

		// Weather endpoints
		r.Route("/weather", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", weatherHandler.Current)
			r.With(expensiveRateLimit).Get("/route", weatherHandler.Route)
		})

		// Shipments CRUD
		r.Route("/shipments", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", shipmentsHandler.List)
			r.Post("/", shipmentsHandler.Create)
			r.Route("/{shipmentId}", func(r chi.Router) {
				r.Get("/", shipmentsHandler.Get)
				r.Put("/status", shipmentsHandler.UpdateStatus)
				r.Get("/tracking", shipmentsHandler.Tracking)
				r.With(expensiveRateLimit).Get("/analysis", shipmentsHandler.Analysis)
			})
		})

		r.With(standardRateLimit).Get("/analytics/logistics", shipmentsHandler.Analytics)

		// Admin endpoints (authenticated) - for internal operations
		if cfg.TokenValidator != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.Auth(cfg.TokenValidator))
				r.Use(standardRateLimit)
				r.Post("/caches/invalidate", adminHandler.InvalidateCaches)
				r.Get("/providers/health", adminHandler.ProviderHealth)
			})
		}
	})

	return r
}
