package models

import (
	"github.com/sujaypr/SCM/internal/decision"
)

// ModeScore is one scored transport mode.
type ModeScore struct {
	Mode  string  `json:"mode"`
	Score float64 `json:"score"`
}

// DecisionResponse is the response for POST /v1/transport/decide.
type DecisionResponse struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	DistanceKm     float64 `json:"distanceKm"`
	DistanceMethod string  `json:"distanceMethod"`

	Scores          []ModeScore `json:"scores"`
	RecommendedMode string      `json:"recommendedMode"`

	Justification string `json:"justification"`
	Generated     bool   `json:"generated"`

	OriginWeather      *WeatherObservation `json:"originWeather,omitempty"`
	DestinationWeather *WeatherObservation `json:"destinationWeather,omitempty"`
	NewsPenalty        int                 `json:"newsPenalty"`
}

// FromDecision converts a domain decision.
func FromDecision(d decision.Decision) DecisionResponse {
	scores := make([]ModeScore, 0, len(d.Scores))
	for _, s := range d.Scores {
		scores = append(scores, ModeScore{Mode: string(s.Mode), Score: s.Score})
	}

	resp := DecisionResponse{
		Origin:          d.Origin,
		Destination:     d.Destination,
		DistanceKm:      d.DistanceKm,
		DistanceMethod:  string(d.DistanceMethod),
		Scores:          scores,
		RecommendedMode: string(d.RecommendedMode),
		Justification:   d.Justification,
		Generated:       d.Generated,
		NewsPenalty:     d.NewsPenalty,
	}

	if d.OriginWeather != nil {
		o := FromObservation(d.OriginWeather)
		resp.OriginWeather = &o
	}
	if d.DestinationWeather != nil {
		o := FromObservation(d.DestinationWeather)
		resp.DestinationWeather = &o
	}

	return resp
}
