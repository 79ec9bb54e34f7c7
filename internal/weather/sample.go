package weather

import (
	"context"

	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/pkg/polyline"
)

// MinSampleCount is the smallest usable number of route samples: both
// endpoints.
const MinSampleCount = 2

// SampleAlongRoute fetches weather at sampleCount evenly spaced points on
// the straight line between origin and destination. sampleCount is clamped
// to at least MinSampleCount.
func (s *Service) SampleAlongRoute(ctx context.Context, origin, destination geo.Coordinate, sampleCount int) []*Observation {
	if sampleCount < MinSampleCount {
		sampleCount = MinSampleCount
	}

	observations := make([]*Observation, 0, sampleCount)
	for i := 0; i < sampleCount; i++ {
		t := float64(i) / float64(sampleCount-1)
		point := geo.Interpolate(origin, destination, t)
		observations = append(observations, s.Current(ctx, point))
	}

	return observations
}

// SampleAlongPolyline fetches weather at sampleCount points spread along an
// encoded route geometry, following the actual road instead of the
// straight line. Points are spaced by distance, so dense vertex clusters in
// cities do not skew the samples. Returns nil when the geometry is empty or
// undecodable.
func (s *Service) SampleAlongPolyline(ctx context.Context, encoded string, sampleCount int) []*Observation {
	coords := polyline.Decode(encoded)
	if len(coords) == 0 {
		return nil
	}
	if sampleCount < MinSampleCount {
		sampleCount = MinSampleCount
	}

	totalMeters := polyline.Length(coords)

	var points []polyline.Coordinate
	if totalMeters <= 0 {
		// Degenerate geometry: both samples sit on the same spot.
		points = []polyline.Coordinate{coords[0], coords[len(coords)-1]}
	} else {
		points = polyline.Sample(coords, totalMeters/float64(sampleCount-1))
	}

	observations := make([]*Observation, 0, len(points))
	for _, p := range points {
		observations = append(observations, s.Current(ctx, geo.Coordinate{Lat: p.Lat, Lon: p.Lon}))
	}

	return observations
}
