// Package worker provides background cache warming for the route
// intelligence providers.
package worker

import (
	"time"

	"github.com/sujaypr/SCM/internal/geo"
)

// Hub is a freight hub whose lookups are worth keeping warm.
type Hub struct {
	// Name is the place name as passed to the geocoder.
	Name string

	// Coord is the hub center, used for weather warming.
	Coord geo.Coordinate
}

// WarmTarget represents a group of hubs to warm together.
type WarmTarget struct {
	// Name is the human-readable name of the target.
	Name string

	// Hubs are the freight hubs to warm.
	Hubs []Hub

	// Priority determines warm order (lower = higher priority).
	Priority int
}

// WarmConfig holds configuration for the cache warm job.
type WarmConfig struct {
	// Targets are the hub groups to warm.
	// If empty, uses DefaultWarmTargets.
	Targets []WarmTarget

	// Concurrency is the number of concurrent warm operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for warming a single hub.
	// Default: 30 seconds
	Timeout time.Duration

	// WarmGeocode enables geocoding cache warming.
	// Default: true
	WarmGeocode bool

	// WarmWeather enables weather cache warming.
	// Default: true
	WarmWeather bool

	// WarmNews enables news headline warming.
	// Default: true
	WarmNews bool
}

// DefaultWarmConfig returns the default warm configuration.
func DefaultWarmConfig() WarmConfig {
	return WarmConfig{
		Targets:     DefaultWarmTargets(),
		Concurrency: 3,
		Timeout:     30 * time.Second,
		WarmGeocode: true,
		WarmWeather: true,
		WarmNews:    true,
	}
}

// DefaultWarmTargets returns the default warm targets: the major Indian
// freight hubs and the corridors out of Bangalore they anchor.
func DefaultWarmTargets() []WarmTarget {
	return []WarmTarget{
		{
			Name:     "metros",
			Priority: 1,
			Hubs: []Hub{
				{Name: "Bangalore", Coord: geo.Coordinate{Lat: 12.9716, Lon: 77.5946}},
				{Name: "Mumbai", Coord: geo.Coordinate{Lat: 19.0760, Lon: 72.8777}},
				{Name: "Delhi", Coord: geo.Coordinate{Lat: 28.6139, Lon: 77.2090}},
				{Name: "Chennai", Coord: geo.Coordinate{Lat: 13.0827, Lon: 80.2707}},
				{Name: "Hyderabad", Coord: geo.Coordinate{Lat: 17.3850, Lon: 78.4867}},
			},
		},
		{
			Name:     "secondary-hubs",
			Priority: 2,
			Hubs: []Hub{
				{Name: "Pune", Coord: geo.Coordinate{Lat: 18.5204, Lon: 73.8567}},
				{Name: "Kolkata", Coord: geo.Coordinate{Lat: 22.5726, Lon: 88.3639}},
				{Name: "Ahmedabad", Coord: geo.Coordinate{Lat: 23.0225, Lon: 72.5714}},
			},
		},
		{
			Name:     "ports",
			Priority: 3,
			Hubs: []Hub{
				{Name: "Kochi", Coord: geo.Coordinate{Lat: 9.9312, Lon: 76.2673}},
				{Name: "Visakhapatnam", Coord: geo.Coordinate{Lat: 17.6868, Lon: 83.2185}},
			},
		},
	}
}

// AllHubs returns all hubs from all targets, in target order.
func (c WarmConfig) AllHubs() []Hub {
	var hubs []Hub
	for _, target := range c.Targets {
		hubs = append(hubs, target.Hubs...)
	}
	return hubs
}

// TotalHubs returns the total number of hubs to warm.
func (c WarmConfig) TotalHubs() int {
	total := 0
	for _, target := range c.Targets {
		total += len(target.Hubs)
	}
	return total
}
