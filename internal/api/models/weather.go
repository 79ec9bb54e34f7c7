package models

import (
	"github.com/sujaypr/SCM/internal/risk"
	"github.com/sujaypr/SCM/internal/weather"
)

// WeatherObservation is the wire form of a weather observation.
type WeatherObservation struct {
	Point        Point     `json:"point"`
	Condition    string    `json:"condition"`
	Description  string    `json:"description,omitempty"`
	TemperatureC *float64  `json:"temperatureC,omitempty"`
	WindSpeedMs  *float64  `json:"windSpeedMs,omitempty"`
	VisibilityKm *float64  `json:"visibilityKm,omitempty"`
	Source       string    `json:"source"`
	FetchedAt    Timestamp `json:"fetchedAt"`
}

// FromObservation converts a domain observation.
func FromObservation(o *weather.Observation) WeatherObservation {
	return WeatherObservation{
		Point:        Point{Lat: o.Coord.Lat, Lon: o.Coord.Lon},
		Condition:    o.Condition,
		Description:  o.Description,
		TemperatureC: o.TemperatureC,
		WindSpeedMs:  o.WindSpeed,
		VisibilityKm: o.VisibilityKm,
		Source:       string(o.Source),
		FetchedAt:    Timestamp(o.FetchedAt),
	}
}

// FromObservations converts a slice of domain observations, skipping nils.
func FromObservations(obs []*weather.Observation) []WeatherObservation {
	result := make([]WeatherObservation, 0, len(obs))
	for _, o := range obs {
		if o == nil {
			continue
		}
		result = append(result, FromObservation(o))
	}
	return result
}

// WeatherResponse is the response for GET /v1/weather.
type WeatherResponse struct {
	Place       string             `json:"place,omitempty"`
	Observation WeatherObservation `json:"observation"`
}

// RiskAssessment is the wire form of a route risk assessment.
type RiskAssessment struct {
	Level       string  `json:"level"`
	DelayFactor float64 `json:"delayFactor"`
	Score       int     `json:"score"`
}

// FromAssessment converts a domain risk assessment.
func FromAssessment(a risk.Assessment) RiskAssessment {
	return RiskAssessment{
		Level:       string(a.Level),
		DelayFactor: a.DelayFactor,
		Score:       a.Score,
	}
}
