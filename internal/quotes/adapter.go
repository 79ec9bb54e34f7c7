package quotes

import "github.com/sujaypr/SCM/internal/transport"

// Quote is a single provider's time/cost estimate for a lane.
type Quote struct {
	// Provider is the carrier name.
	Provider string

	// Mode is the carrier's transport mode.
	Mode transport.Mode

	// EstimatedTimeHours is transit plus handling time.
	EstimatedTimeHours float64

	// EstimatedCost is the estimated charge in rupees.
	EstimatedCost float64

	// Notes carries informational context (weather, news); never scored.
	Notes string
}

// Adapter produces a quote for a lane. New carriers implement this
// capability without touching the comparator.
type Adapter interface {
	Quote(origin, destination string, distanceKm float64) Quote
	Name() string
}

// Cost model constants shared by the standard adapters.
const (
	handlingCostPerHour = 50.0
	baseBookingFee      = 200.0
)

// StandardAdapter is a speed/rate parameterized carrier.
type StandardAdapter struct {
	// ProviderName is the carrier name.
	ProviderName string

	// Mode is the carrier's transport mode.
	Mode transport.Mode

	// SpeedKmh is the average lane speed.
	SpeedKmh float64

	// CostPerKm is the per-kilometer rate in rupees.
	CostPerKm float64

	// HandlingHours is fixed pickup/handover time.
	HandlingHours float64
}

// Name returns the carrier name.
func (a StandardAdapter) Name() string { return a.ProviderName }

// Quote estimates time and cost for a lane of the given length.
func (a StandardAdapter) Quote(_, _ string, distanceKm float64) Quote {
	return Quote{
		Provider:           a.ProviderName,
		Mode:               a.Mode,
		EstimatedTimeHours: distanceKm/a.SpeedKmh + a.HandlingHours,
		EstimatedCost:      distanceKm*a.CostPerKm + a.HandlingHours*handlingCostPerHour + baseBookingFee,
	}
}

// DefaultAdapters returns the fixed carrier set.
func DefaultAdapters() []Adapter {
	return []Adapter{
		StandardAdapter{ProviderName: "FastShip", Mode: transport.ModeAir, SpeedKmh: 800, CostPerKm: 12, HandlingHours: 2},
		StandardAdapter{ProviderName: "EcoRoad", Mode: transport.ModeRoad, SpeedKmh: 60, CostPerKm: 6, HandlingHours: 6},
		StandardAdapter{ProviderName: "RailLink", Mode: transport.ModeRail, SpeedKmh: 70, CostPerKm: 5, HandlingHours: 6},
		StandardAdapter{ProviderName: "SeaCargo", Mode: transport.ModeSea, SpeedKmh: 30, CostPerKm: 3, HandlingHours: 12},
	}
}
