package geocode

import (
	"errors"

	"github.com/sujaypr/SCM/internal/geo"
)

// Sentinel errors for geocoding operations.
var (
	// ErrEmptyPlace is returned when the place name is blank.
	ErrEmptyPlace = errors.New("place name is empty")

	// ErrProviderUnavailable is returned when the geocoding provider fails.
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
)

// Result is the outcome of a geocoding lookup. A nil Coord means the place
// could not be resolved; callers degrade to coarser distance estimates
// instead of failing.
type Result struct {
	// Coord is the resolved coordinate, or nil on miss.
	Coord *geo.Coordinate

	// Place is the normalized place name that was looked up.
	Place string

	// DisplayName is the provider's canonical name for the match, if any.
	DisplayName string
}

// Resolved reports whether the lookup produced a coordinate.
func (r Result) Resolved() bool {
	return r.Coord != nil
}
