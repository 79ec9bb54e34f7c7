package weather

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/sujaypr/SCM/internal/geo"
)

// mockConditions are the conditions the terminal tier cycles through.
// Weighted toward benign weather so synthetic data does not skew risk
// assessment pessimistic.
var mockConditions = []string{
	"clear", "clear", "clouds", "clouds", "mist", "rain",
}

// mockObservation synthesizes a deterministic observation for a coordinate.
// The same coordinate always yields the same values so tests and cached
// responses stay stable.
func mockObservation(coord geo.Coordinate) *Observation {
	h := fnv.New64a()
	fmt.Fprintf(h, "%.4f:%.4f", coord.Lat, coord.Lon)
	seed := h.Sum64()

	condition := mockConditions[seed%uint64(len(mockConditions))]
	temperature := 18 + float64(seed%15)     // 18-32 C
	wind := 1 + float64((seed>>8)%9)         // 1-9 m/s, below the risk threshold
	visibility := 6 + float64((seed>>16)%5)  // 6-10 km

	return &Observation{
		Coord:        coord,
		Condition:    condition,
		Description:  "synthetic observation",
		TemperatureC: ptr(temperature),
		WindSpeed:    ptr(wind),
		VisibilityKm: ptr(visibility),
		Source:       SourceMock,
		FetchedAt:    time.Now(),
	}
}
