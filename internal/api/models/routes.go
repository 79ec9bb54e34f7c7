package models

import (
	"github.com/sujaypr/SCM/internal/routeintel"
	"github.com/sujaypr/SCM/internal/shipment"
)

// LaneRequest is the common request body for lane-scoped operations.
type LaneRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// RouteAnalyzeRequest is the request body for POST /v1/routes/analyze.
type RouteAnalyzeRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Mode        string `json:"mode,omitempty"`
}

// RouteOptimizeRequest is the request body for POST /v1/routes/optimize.
type RouteOptimizeRequest struct {
	Destinations []string `json:"destinations"`
}

// TransportEstimateResponse is the response for POST /v1/routes/estimate.
type TransportEstimateResponse struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	DistanceKm     float64 `json:"distanceKm"`
	DurationHours  float64 `json:"durationHours"`
	DistanceMethod string  `json:"distanceMethod"`

	Risk                  RiskAssessment `json:"risk"`
	AdjustedDurationHours float64        `json:"adjustedDurationHours"`

	RecommendedMode string `json:"recommendedMode"`
	Justification   string `json:"justification"`

	Quotes       []Quote `json:"quotes"`
	QuoteSummary string  `json:"quoteSummary"`
}

// FromTransportEstimate converts a domain transport estimate.
func FromTransportEstimate(e routeintel.TransportEstimate) TransportEstimateResponse {
	return TransportEstimateResponse{
		Origin:         e.Origin,
		Destination:    e.Destination,
		DistanceKm:     e.DistanceKm,
		DurationHours:  e.DurationHours,
		DistanceMethod: string(e.DistanceMethod),
		Risk: RiskAssessment{
			Level:       string(e.RiskLevel),
			DelayFactor: e.DelayFactor,
		},
		AdjustedDurationHours: e.AdjustedDurationHours,
		RecommendedMode:       string(e.RecommendedMode),
		Justification:         e.Justification,
		Quotes:                FromQuotes(e.Quotes),
		QuoteSummary:          e.QuoteSummary,
	}
}

// RouteAnalysisResponse is the response for POST /v1/routes/analyze and
// GET /v1/weather/route.
type RouteAnalysisResponse struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	DistanceKm     float64 `json:"distanceKm"`
	DurationHours  float64 `json:"durationHours"`
	DistanceMethod string  `json:"distanceMethod"`

	Observations []WeatherObservation `json:"observations"`

	Risk                  RiskAssessment `json:"risk"`
	AdjustedDurationHours float64        `json:"adjustedDurationHours"`
}

// FromRouteAnalysis converts a domain route analysis.
func FromRouteAnalysis(a routeintel.RouteAnalysis) RouteAnalysisResponse {
	return RouteAnalysisResponse{
		Origin:                a.Origin,
		Destination:           a.Destination,
		DistanceKm:            a.Distance.DistanceKm,
		DurationHours:         a.Distance.DurationHours,
		DistanceMethod:        string(a.Distance.Method),
		Observations:          FromObservations(a.Observations),
		Risk:                  FromAssessment(a.Risk),
		AdjustedDurationHours: a.AdjustedDurationHours,
	}
}

// RouteStop is one planned stop in an optimized route.
type RouteStop struct {
	Sequence             int       `json:"sequence"`
	Destination          string    `json:"destination"`
	DistanceFromPrevious float64   `json:"distanceFromPreviousKm"`
	EstimatedArrival     Timestamp `json:"estimatedArrival"`
}

// RoutePlanResponse is the response for POST /v1/routes/optimize.
type RoutePlanResponse struct {
	OptimizedRoute     []string `json:"optimizedRoute"`
	TotalDestinations  int      `json:"totalDestinations"`
	TotalDistanceKm    float64  `json:"totalDistanceKm"`
	EstimatedTimeHours float64  `json:"estimatedTimeHours"`
	EstimatedCost      float64  `json:"estimatedCost"`

	DistanceSavedKm float64 `json:"distanceSavedKm"`
	TimeSavedHours  float64 `json:"timeSavedHours"`
	CostSaved       float64 `json:"costSaved"`

	Stops []RouteStop `json:"stops"`
}

// FromRoutePlan converts a domain route plan.
func FromRoutePlan(p shipment.RoutePlan) RoutePlanResponse {
	stops := make([]RouteStop, 0, len(p.Stops))
	for _, s := range p.Stops {
		stops = append(stops, RouteStop{
			Sequence:             s.Sequence,
			Destination:          s.Destination,
			DistanceFromPrevious: s.DistanceFromPrevious,
			EstimatedArrival:     Timestamp(s.EstimatedArrival),
		})
	}

	return RoutePlanResponse{
		OptimizedRoute:     p.OptimizedRoute,
		TotalDestinations:  p.TotalDestinations,
		TotalDistanceKm:    p.TotalDistanceKm,
		EstimatedTimeHours: p.EstimatedTimeHours,
		EstimatedCost:      p.EstimatedCost,
		DistanceSavedKm:    p.DistanceSavedKm,
		TimeSavedHours:     p.TimeSavedHours,
		CostSaved:          p.CostSaved,
		Stops:              stops,
	}
}
