// Package distance produces distance and duration estimates between two
// points through an ordered list of strategies: routing service, haversine,
// then a static default that cannot fail.
package distance

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/internal/transport"
)

// RouteProvider defines the interface for external routing services.
type RouteProvider interface {
	// Route computes a route between two coordinates.
	Route(ctx context.Context, origin, destination geo.Coordinate) (*RouteLeg, error)

	// Name returns the provider name for logging.
	Name() string
}

// Strategy is one tier of the distance resolution chain. A strategy either
// produces a complete RouteDistance or returns an error to fall through to
// the next tier.
type Strategy interface {
	Estimate(ctx context.Context, origin, destination *geo.Coordinate, mode transport.Mode) (RouteDistance, error)
	Name() string
}

// ResolverConfig holds configuration for the distance resolver.
type ResolverConfig struct {
	// Router is the external routing provider. Optional; when nil the
	// resolver starts at the haversine tier.
	Router RouteProvider

	// Logger for resolver operations.
	Logger zerolog.Logger
}

// Resolver runs the strategy chain. The terminal static strategy guarantees
// Resolve never fails.
type Resolver struct {
	strategies []Strategy
	logger     zerolog.Logger
}

// NewResolver creates a resolver with the standard strategy order.
func NewResolver(cfg ResolverConfig) *Resolver {
	strategies := make([]Strategy, 0, 3)
	if cfg.Router != nil {
		strategies = append(strategies, &externalStrategy{router: cfg.Router, logger: cfg.Logger})
	}
	strategies = append(strategies, haversineStrategy{}, staticStrategy{})

	return &Resolver{strategies: strategies, logger: cfg.Logger}
}

// Resolve estimates distance and duration between two optionally resolved
// coordinates. Unresolved coordinates (nil) skip straight past the
// coordinate-based tiers to the static default.
func (r *Resolver) Resolve(ctx context.Context, origin, destination *geo.Coordinate, mode transport.Mode) RouteDistance {
	for _, s := range r.strategies {
		result, err := s.Estimate(ctx, origin, destination, mode)
		if err != nil {
			r.logger.Debug().
				Str("strategy", s.Name()).
				Err(err).
				Msg("distance strategy fell through")
			continue
		}
		return result
	}

	// Unreachable: the static strategy never fails.
	return RouteDistance{
		DistanceKm:    StaticFallbackKm,
		DurationHours: StaticFallbackHours,
		Method:        MethodStatic,
	}
}

// externalStrategy queries the routing service.
type externalStrategy struct {
	router RouteProvider
	logger zerolog.Logger
}

func (s *externalStrategy) Name() string { return string(MethodExternal) }

func (s *externalStrategy) Estimate(ctx context.Context, origin, destination *geo.Coordinate, _ transport.Mode) (RouteDistance, error) {
	if origin == nil || destination == nil {
		return RouteDistance{}, ErrNoCoordinates
	}

	leg, err := s.router.Route(ctx, *origin, *destination)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("provider", s.router.Name()).
			Msg("routing service failed, degrading to haversine")
		return RouteDistance{}, err
	}

	return RouteDistance{
		DistanceKm:       leg.DistanceMeters / 1000,
		DurationHours:    leg.DurationSeconds / 3600,
		Method:           MethodExternal,
		GeometryPolyline: leg.GeometryPolyline,
	}, nil
}

// haversineStrategy computes a great-circle estimate with per-mode speeds.
type haversineStrategy struct{}

func (haversineStrategy) Name() string { return string(MethodHaversine) }

func (haversineStrategy) Estimate(_ context.Context, origin, destination *geo.Coordinate, mode transport.Mode) (RouteDistance, error) {
	if origin == nil || destination == nil {
		return RouteDistance{}, ErrNoCoordinates
	}

	km := geo.HaversineKm(*origin, *destination)
	return RouteDistance{
		DistanceKm:    km,
		DurationHours: km / mode.SpeedKmh(),
		Method:        MethodHaversine,
	}, nil
}

// staticStrategy is the terminal tier for unresolvable locations.
type staticStrategy struct{}

func (staticStrategy) Name() string { return string(MethodStatic) }

func (staticStrategy) Estimate(_ context.Context, _, _ *geo.Coordinate, _ transport.Mode) (RouteDistance, error) {
	return RouteDistance{
		DistanceKm:    StaticFallbackKm,
		DurationHours: StaticFallbackHours,
		Method:        MethodStatic,
	}, nil
}
