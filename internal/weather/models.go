package weather

import (
	"errors"
	"time"

	"github.com/sujaypr/SCM/internal/geo"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
)

// Source records which tier produced an observation, for observability and
// for tests asserting on degradation.
type Source string

const (
	// SourcePrimary is the keyed primary provider.
	SourcePrimary Source = "primary"

	// SourceSecondary is the free secondary provider.
	SourceSecondary Source = "secondary"

	// SourceMock is the synthetic terminal tier.
	SourceMock Source = "mock"

	// SourceError marks an observation produced for invalid input.
	SourceError Source = "error"
)

// Observation represents weather at a specific point. Optional fields are
// nil when the producing tier did not report them.
type Observation struct {
	// Coord is the sampled location.
	Coord geo.Coordinate

	// Condition is the normalized lowercase condition, e.g. "clear",
	// "rain", "thunderstorm". Never empty.
	Condition string

	// Description is the provider's free-text detail, if any.
	Description string

	// TemperatureC is the temperature in Celsius.
	TemperatureC *float64

	// WindSpeed is the wind speed in m/s.
	WindSpeed *float64

	// VisibilityKm is the visibility in kilometers.
	VisibilityKm *float64

	// Source records which tier produced the observation.
	Source Source

	// FetchedAt is when the observation was obtained.
	FetchedAt time.Time
}

// HasWind reports whether wind speed data is present.
func (o *Observation) HasWind() bool { return o.WindSpeed != nil }

// HasVisibility reports whether visibility data is present.
func (o *Observation) HasVisibility() bool { return o.VisibilityKm != nil }

func ptr(v float64) *float64 { return &v }
