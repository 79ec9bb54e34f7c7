// Package routeintel is the route-intelligence facade consumed by the HTTP
// layer: transport estimation and weather-aware route analysis built on the
// geocoder, distance resolver, weather sampler, risk assessor, decision
// engine, and quote comparator. Every operation degrades instead of
// failing when upstreams are absent.
package routeintel

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/decision"
	"github.com/sujaypr/SCM/internal/distance"
	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/internal/geocode"
	"github.com/sujaypr/SCM/internal/quotes"
	"github.com/sujaypr/SCM/internal/risk"
	"github.com/sujaypr/SCM/internal/transport"
	"github.com/sujaypr/SCM/internal/weather"
)

// DefaultSampleCount is how many weather points are sampled along a route.
const DefaultSampleCount = 5

// MaxSampleCount caps caller-requested sample counts: each sample is a
// weather provider call.
const MaxSampleCount = 10

// Geocoder resolves place names.
type Geocoder interface {
	Resolve(ctx context.Context, place string) geocode.Result
}

// DistanceResolver estimates lane distance.
type DistanceResolver interface {
	Resolve(ctx context.Context, origin, destination *geo.Coordinate, mode transport.Mode) distance.RouteDistance
}

// WeatherSampler fetches conditions at and along a route.
type WeatherSampler interface {
	Current(ctx context.Context, coord geo.Coordinate) *weather.Observation
	SampleAlongRoute(ctx context.Context, origin, destination geo.Coordinate, sampleCount int) []*weather.Observation
	SampleAlongPolyline(ctx context.Context, encoded string, sampleCount int) []*weather.Observation
}

// DecisionEngine scores transport modes.
type DecisionEngine interface {
	Decide(ctx context.Context, origin, destination string) decision.Decision
}

// QuoteComparator ranks carrier quotes.
type QuoteComparator interface {
	Compare(ctx context.Context, origin, destination string) quotes.Comparison
}

// TransportEstimate is the full answer for "how should this lane ship".
type TransportEstimate struct {
	Origin      string
	Destination string

	// DistanceKm, DurationHours and DistanceMethod describe the lane for
	// the recommended mode.
	DistanceKm     float64
	DurationHours  float64
	DistanceMethod distance.Method

	// Risk summarizes sampled weather along the route.
	RiskLevel   risk.Level
	DelayFactor float64

	// AdjustedDurationHours is DurationHours scaled by DelayFactor.
	AdjustedDurationHours float64

	// RecommendedMode and Justification come from the decision engine.
	RecommendedMode transport.Mode
	Justification   string

	// Quotes is the ranked carrier comparison for the lane.
	Quotes       []quotes.Quote
	QuoteSummary string
}

// RouteAnalysis is the weather-focused route report.
type RouteAnalysis struct {
	Origin      string
	Destination string

	Distance distance.RouteDistance

	// Observations are the sampled weather points, in route order.
	Observations []*weather.Observation

	// Risk is the assessment derived from Observations.
	Risk risk.Assessment

	// AdjustedDurationHours is the distance duration scaled by the risk
	// delay factor.
	AdjustedDurationHours float64
}

// ServiceConfig holds the facade's collaborators.
type ServiceConfig struct {
	Geocoder Geocoder
	Distance DistanceResolver
	Weather  WeatherSampler
	Decision DecisionEngine
	Quotes   QuoteComparator
	Logger   zerolog.Logger

	// SampleCount overrides DefaultSampleCount (optional).
	SampleCount int
}

// Service is the route-intelligence facade.
type Service struct {
	geocoder    Geocoder
	distance    DistanceResolver
	weather     WeatherSampler
	decision    DecisionEngine
	quotes      QuoteComparator
	logger      zerolog.Logger
	sampleCount int
}

// NewService creates a new route-intelligence service.
func NewService(cfg ServiceConfig) *Service {
	sampleCount := cfg.SampleCount
	if sampleCount < weather.MinSampleCount {
		sampleCount = DefaultSampleCount
	}

	return &Service{
		geocoder:    cfg.Geocoder,
		distance:    cfg.Distance,
		weather:     cfg.Weather,
		decision:    cfg.Decision,
		quotes:      cfg.Quotes,
		logger:      cfg.Logger,
		sampleCount: sampleCount,
	}
}

// EstimateTransport produces the combined answer for a lane: distance,
// risk-adjusted duration, recommended mode with justification, and ranked
// carrier quotes.
func (s *Service) EstimateTransport(ctx context.Context, origin, destination string) TransportEstimate {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	d := s.decision.Decide(ctx, origin, destination)

	originRes := s.geocoder.Resolve(ctx, origin)
	destRes := s.geocoder.Resolve(ctx, destination)
	dist := s.distance.Resolve(ctx, originRes.Coord, destRes.Coord, d.RecommendedMode)

	observations := s.sample(ctx, originRes.Coord, destRes.Coord, dist.GeometryPolyline, s.sampleCount)
	assessment := risk.Assess(observations)

	cmp := s.quotes.Compare(ctx, origin, destination)

	return TransportEstimate{
		Origin:                origin,
		Destination:           destination,
		DistanceKm:            dist.DistanceKm,
		DurationHours:         dist.DurationHours,
		DistanceMethod:        dist.Method,
		RiskLevel:             assessment.Level,
		DelayFactor:           assessment.DelayFactor,
		AdjustedDurationHours: dist.DurationHours * assessment.DelayFactor,
		RecommendedMode:       d.RecommendedMode,
		Justification:         d.Justification,
		Quotes:                cmp.Quotes,
		QuoteSummary:          cmp.Summary,
	}
}

// AnalyzeRoute samples weather along a lane and assesses delivery risk for
// the given mode, using the service's default sample count.
func (s *Service) AnalyzeRoute(ctx context.Context, origin, destination string, mode transport.Mode) RouteAnalysis {
	return s.AnalyzeRouteSampled(ctx, origin, destination, mode, s.sampleCount)
}

// AnalyzeRouteSampled is AnalyzeRoute with a caller-chosen number of weather
// samples. Counts below weather.MinSampleCount fall back to the service
// default; counts above MaxSampleCount are capped.
func (s *Service) AnalyzeRouteSampled(ctx context.Context, origin, destination string, mode transport.Mode, samples int) RouteAnalysis {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if !mode.Valid() {
		mode = transport.ModeRoad
	}
	if samples < weather.MinSampleCount {
		samples = s.sampleCount
	}
	if samples > MaxSampleCount {
		samples = MaxSampleCount
	}

	originRes := s.geocoder.Resolve(ctx, origin)
	destRes := s.geocoder.Resolve(ctx, destination)
	dist := s.distance.Resolve(ctx, originRes.Coord, destRes.Coord, mode)

	observations := s.sample(ctx, originRes.Coord, destRes.Coord, dist.GeometryPolyline, samples)
	assessment := risk.Assess(observations)

	return RouteAnalysis{
		Origin:                origin,
		Destination:           destination,
		Distance:              dist,
		Observations:          observations,
		Risk:                  assessment,
		AdjustedDurationHours: dist.DurationHours * assessment.DelayFactor,
	}
}

// sample prefers the real route geometry when the routing service supplied
// one; otherwise the straight line between the endpoints. Unresolved
// endpoints yield no samples and an unknown risk.
func (s *Service) sample(ctx context.Context, origin, destination *geo.Coordinate, geometry string, count int) []*weather.Observation {
	if geometry != "" {
		if obs := s.weather.SampleAlongPolyline(ctx, geometry, count); len(obs) > 0 {
			return obs
		}
	}
	if origin != nil && destination != nil {
		return s.weather.SampleAlongRoute(ctx, *origin, *destination, count)
	}
	return nil
}
