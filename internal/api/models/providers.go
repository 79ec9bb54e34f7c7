package models

import (
	"github.com/sujaypr/SCM/internal/quotes"
)

// Quote is the wire form of a carrier quote.
type Quote struct {
	Provider           string  `json:"provider"`
	Mode               string  `json:"mode"`
	EstimatedTimeHours float64 `json:"estimatedTimeHours"`
	EstimatedCost      float64 `json:"estimatedCost"`
	Notes              string  `json:"notes,omitempty"`
}

// FromQuotes converts domain quotes.
func FromQuotes(qs []quotes.Quote) []Quote {
	result := make([]Quote, 0, len(qs))
	for _, q := range qs {
		result = append(result, Quote{
			Provider:           q.Provider,
			Mode:               string(q.Mode),
			EstimatedTimeHours: q.EstimatedTimeHours,
			EstimatedCost:      q.EstimatedCost,
			Notes:              q.Notes,
		})
	}
	return result
}

// ComparisonResponse is the response for POST /v1/providers/compare.
type ComparisonResponse struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	DistanceKm     float64 `json:"distanceKm"`
	DistanceMethod string  `json:"distanceMethod"`

	Quotes    []Quote `json:"quotes"`
	Summary   string  `json:"summary"`
	Generated bool    `json:"generated"`
}

// FromComparison converts a domain comparison.
func FromComparison(c quotes.Comparison) ComparisonResponse {
	return ComparisonResponse{
		Origin:         c.Origin,
		Destination:    c.Destination,
		DistanceKm:     c.DistanceKm,
		DistanceMethod: string(c.DistanceMethod),
		Quotes:         FromQuotes(c.Quotes),
		Summary:        c.Summary,
		Generated:      c.Generated,
	}
}
