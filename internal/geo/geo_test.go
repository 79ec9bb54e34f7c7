package geo

import (
	"math"
	"testing"
)

func TestHaversineKm_IdenticalPointsAreZero(t *testing.T) {
	points := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 12.9716, Lon: 77.5946}, // Bangalore
		{Lat: -33.8688, Lon: 151.2093},
	}

	for _, p := range points {
		if d := HaversineKm(p, p); d != 0 {
			t.Errorf("HaversineKm(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestHaversineKm_BangaloreMumbai(t *testing.T) {
	bangalore := Coordinate{Lat: 12.9716, Lon: 77.5946}
	mumbai := Coordinate{Lat: 19.0760, Lon: 72.8777}

	d := HaversineKm(bangalore, mumbai)

	// Great-circle distance is roughly 845 km; allow 5%.
	if math.Abs(d-845) > 845*0.05 {
		t.Errorf("HaversineKm(Bangalore, Mumbai) = %f, want within 5%% of 845", d)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := Coordinate{Lat: 12.9716, Lon: 77.5946}
	b := Coordinate{Lat: 28.6139, Lon: 77.2090}

	if d1, d2 := HaversineKm(a, b), HaversineKm(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
}

func TestInterpolate(t *testing.T) {
	a := Coordinate{Lat: 10, Lon: 70}
	b := Coordinate{Lat: 20, Lon: 80}

	tests := []struct {
		t    float64
		want Coordinate
	}{
		{t: 0, want: a},
		{t: 1, want: b},
		{t: 0.5, want: Coordinate{Lat: 15, Lon: 75}},
	}

	for _, tt := range tests {
		got := Interpolate(a, b, tt.t)
		if math.Abs(got.Lat-tt.want.Lat) > 1e-9 || math.Abs(got.Lon-tt.want.Lon) > 1e-9 {
			t.Errorf("Interpolate(t=%f) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestCoordinate_Validate(t *testing.T) {
	if err := (Coordinate{Lat: 12.97, Lon: 77.59}).Validate(); err != nil {
		t.Errorf("unexpected error for valid coordinate: %v", err)
	}
	if err := (Coordinate{Lat: 91, Lon: 0}).Validate(); err == nil {
		t.Error("expected error for latitude out of range")
	}
	if err := (Coordinate{Lat: 0, Lon: -181}).Validate(); err == nil {
		t.Error("expected error for longitude out of range")
	}
}
