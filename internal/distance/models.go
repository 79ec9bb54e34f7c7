package distance

import (
	"errors"
	"fmt"
)

// Method records how a distance estimate was produced, for observability
// and for tests asserting on degradation.
type Method string

const (
	// MethodExternal means the estimate came from the routing service.
	MethodExternal Method = "external"

	// MethodHaversine means the estimate is a great-circle computation.
	MethodHaversine Method = "haversine"

	// MethodStatic means neither endpoint could be geocoded and a fixed
	// default was used.
	MethodStatic Method = "static-fallback"
)

// Static fallback values used when no coordinates are available.
const (
	StaticFallbackKm    = 500.0
	StaticFallbackHours = 8.0
)

// RouteDistance is a distance and duration estimate between two points.
type RouteDistance struct {
	// DistanceKm is the estimated distance. Always >= 0.
	DistanceKm float64

	// DurationHours is the estimated travel time. Always >= 0.
	DurationHours float64

	// Method records which tier produced the estimate.
	Method Method

	// GeometryPolyline is the encoded route geometry when the routing
	// service produced the estimate; empty otherwise.
	GeometryPolyline string
}

// RouteLeg is the raw result from a routing provider.
type RouteLeg struct {
	DistanceMeters   float64
	DurationSeconds  float64
	GeometryPolyline string
}

// Sentinel errors for routing providers.
var (
	// ErrProviderUnavailable indicates the routing service could not be reached
	// or returned a server error.
	ErrProviderUnavailable = errors.New("routing provider unavailable")

	// ErrNoRouteFound indicates no route exists between the given points.
	ErrNoRouteFound = errors.New("no route found")

	// ErrInvalidCoordinates indicates coordinates are out of valid ranges.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrNoCoordinates indicates a strategy was invoked without resolved
	// coordinates and must fall through.
	ErrNoCoordinates = errors.New("coordinates not resolved")
)

// Error is a routing provider error with provider context.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}
