// Package shipment implements the CRUD layer the route-intelligence
// subsystem serves: booking, tracking, multi-stop route planning, and
// performance analytics. Lane distances come from the same tiered distance
// resolver the intelligence layer uses, so costs degrade gracefully when
// geocoding or routing is unavailable.
package shipment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/distance"
	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/internal/geocode"
	"github.com/sujaypr/SCM/internal/transport"
)

// Cost model constants, in rupees.
const (
	baseHandlingCharge = 100.0
	costPerKg          = 15.0
	costPerItem        = 25.0
	costPerKm          = 5.0
)

// Multi-stop route planning constants.
const (
	routeAverageSpeedKmh = 60.0
	routeCostPerKm       = 8.0
	routeCostPerStop     = 200.0
	routeStopOverheadHrs = 0.5

	// Claimed optimization savings relative to a naive visit order.
	savingsDistanceFraction = 0.15
	savingsTimeFraction     = 0.20
	savingsCostFraction     = 0.15
)

// DefaultOrigin is the dispatch origin assumed when none is given.
const DefaultOrigin = "Bangalore"

// priorityCities are visited first when planning multi-stop routes.
var priorityCities = []string{"Mumbai", "Delhi", "Chennai", "Hyderabad"}

// laneHubs maps known lanes to their next checkpoint hub.
var laneHubs = map[[2]string]string{
	{"bangalore", "mumbai"}:    "Pune Hub",
	{"bangalore", "delhi"}:     "Hyderabad Hub",
	{"bangalore", "chennai"}:   "Direct Route",
	{"bangalore", "hyderabad"}: "Direct Route",
	{"bangalore", "pune"}:      "Mumbai Hub",
	{"bangalore", "kolkata"}:   "Hyderabad Hub",
}

// Geocoder resolves place names.
type Geocoder interface {
	Resolve(ctx context.Context, place string) geocode.Result
}

// DistanceResolver estimates lane distance.
type DistanceResolver interface {
	Resolve(ctx context.Context, origin, destination *geo.Coordinate, mode transport.Mode) distance.RouteDistance
}

// CreateInput is a shipment booking request.
type CreateInput struct {
	// Origin defaults to DefaultOrigin when blank.
	Origin string

	// Destination is required.
	Destination string

	// Mode defaults to road.
	Mode transport.Mode

	// WeightKg defaults to 10.
	WeightKg float64

	// ItemsCount defaults to 1.
	ItemsCount int

	// EstimatedDays drives the ETA (default: 4).
	EstimatedDays int
}

// RouteStop is one leg of a planned multi-stop route.
type RouteStop struct {
	Sequence             int
	Destination          string
	DistanceFromPrevious float64
	EstimatedArrival     time.Time
}

// RoutePlan is the outcome of multi-stop route optimization.
type RoutePlan struct {
	OptimizedRoute     []string
	TotalDestinations  int
	TotalDistanceKm    float64
	EstimatedTimeHours float64
	EstimatedCost      float64

	DistanceSavedKm float64
	TimeSavedHours  float64
	CostSaved       float64

	Stops []RouteStop
}

// Analytics summarizes shipment performance.
type Analytics struct {
	TotalShipments     int
	StatusBreakdown    map[Status]int
	OnTimeDeliveryRate float64
	AvgDeliveryDays    float64
	TotalShippingCost  float64
	AvgCostPerShipment float64
}

// ServiceConfig holds configuration for the shipment service.
type ServiceConfig struct {
	// Repository persists shipments. Required.
	Repository Repository

	// Geocoder and Distance provide lane estimates for costing.
	Geocoder Geocoder
	Distance DistanceResolver

	// Logger for service operations.
	Logger zerolog.Logger

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Service implements shipment booking and tracking.
type Service struct {
	repo     Repository
	geocoder Geocoder
	distance DistanceResolver
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService creates a new shipment service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo:     cfg.Repository,
		geocoder: cfg.Geocoder,
		distance: cfg.Distance,
		logger:   cfg.Logger,
		now:      now,
	}
}

// Create books a new shipment. The cost combines handling, weight, item,
// and distance charges; the lane distance degrades through the usual tiers
// when geocoding or routing is unavailable.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Shipment, error) {
	in.Destination = strings.TrimSpace(in.Destination)
	if in.Destination == "" {
		return nil, fmt.Errorf("destination is required")
	}
	if strings.TrimSpace(in.Origin) == "" {
		in.Origin = DefaultOrigin
	}
	if !in.Mode.Valid() {
		in.Mode = transport.ModeRoad
	}
	if in.WeightKg <= 0 {
		in.WeightKg = 10
	}
	if in.ItemsCount <= 0 {
		in.ItemsCount = 1
	}
	if in.EstimatedDays <= 0 {
		in.EstimatedDays = 4
	}

	dist := s.laneDistance(ctx, in.Origin, in.Destination, in.Mode)
	cost := baseHandlingCharge +
		in.WeightKg*costPerKg +
		float64(in.ItemsCount)*costPerItem +
		dist.DistanceKm*costPerKm

	now := s.now()
	sh := &Shipment{
		ID:             newShipmentID(),
		Origin:         in.Origin,
		Destination:    in.Destination,
		Mode:           in.Mode,
		Status:         StatusProcessing,
		ItemsCount:     in.ItemsCount,
		WeightKg:       in.WeightKg,
		Cost:           cost,
		NextCheckpoint: nextCheckpoint(in.Origin, in.Destination),
		CreatedAt:      now,
		ETA:            now.AddDate(0, 0, in.EstimatedDays),
		History: []TrackingEvent{{
			Status:    StatusProcessing,
			Timestamp: now,
			Location:  in.Origin,
		}},
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		return nil, fmt.Errorf("storing shipment: %w", err)
	}

	s.logger.Info().
		Str("shipment_id", sh.ID).
		Str("destination", sh.Destination).
		Str("mode", string(sh.Mode)).
		Str("distance_method", string(dist.Method)).
		Float64("cost", sh.Cost).
		Msg("shipment created")

	return sh, nil
}

// Get retrieves a shipment by ID.
func (s *Service) Get(ctx context.Context, id string) (*Shipment, error) {
	return s.repo.Get(ctx, id)
}

// List returns shipments, optionally filtered by status and transport mode.
func (s *Service) List(ctx context.Context, status Status, mode transport.Mode) ([]*Shipment, error) {
	shipments, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		return shipments, nil
	}

	filtered := shipments[:0]
	for _, sh := range shipments {
		if sh.Mode == mode {
			filtered = append(filtered, sh)
		}
	}
	return filtered, nil
}

// UpdateStatus advances a shipment through its lifecycle, stamping shipped
// and delivered dates and appending to the tracking history.
func (s *Service) UpdateStatus(ctx context.Context, id string, next Status) (*Shipment, error) {
	sh, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !sh.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sh.Status, next)
	}

	now := s.now()
	switch next {
	case StatusInTransit:
		sh.ShippedAt = &now
	case StatusDelivered:
		sh.DeliveredAt = &now
		sh.NextCheckpoint = ""
	}

	sh.Status = next
	sh.History = append(sh.History, TrackingEvent{
		Status:    next,
		Timestamp: now,
		Location:  eventLocation(sh, next),
	})

	if err := s.repo.Update(ctx, sh); err != nil {
		return nil, fmt.Errorf("updating shipment: %w", err)
	}

	s.logger.Info().
		Str("shipment_id", sh.ID).
		Str("status", string(next)).
		Msg("shipment status updated")

	return sh, nil
}

// OptimizeRoutes plans a multi-stop delivery route from the default origin:
// priority cities first, each group alphabetical, with leg distances from
// the tiered resolver.
func (s *Service) OptimizeRoutes(ctx context.Context, destinations []string) RoutePlan {
	route := orderDestinations(destinations)

	var (
		totalKm  float64
		stops    = make([]RouteStop, 0, len(route))
		previous = DefaultOrigin
		arrival  = s.startOfRoute()
	)

	for i, dest := range route {
		leg := s.laneDistance(ctx, previous, dest, transport.ModeRoad).DistanceKm
		totalKm += leg
		arrival = arrival.Add(time.Duration((leg/routeAverageSpeedKmh + routeStopOverheadHrs) * float64(time.Hour)))

		stops = append(stops, RouteStop{
			Sequence:             i + 1,
			Destination:          dest,
			DistanceFromPrevious: leg,
			EstimatedArrival:     arrival,
		})
		previous = dest
	}

	timeHours := totalKm / routeAverageSpeedKmh
	cost := totalKm*routeCostPerKm + float64(len(route))*routeCostPerStop

	return RoutePlan{
		OptimizedRoute:     route,
		TotalDestinations:  len(destinations),
		TotalDistanceKm:    totalKm,
		EstimatedTimeHours: timeHours,
		EstimatedCost:      cost,
		DistanceSavedKm:    totalKm * savingsDistanceFraction,
		TimeSavedHours:     timeHours * savingsTimeFraction,
		CostSaved:          cost * savingsCostFraction,
		Stops:              stops,
	}
}

// GetAnalytics aggregates shipment performance metrics.
func (s *Service) GetAnalytics(ctx context.Context) (*Analytics, error) {
	shipments, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	a := &Analytics{
		TotalShipments:  len(shipments),
		StatusBreakdown: make(map[Status]int),
	}

	var (
		delivered    int
		onTime       int
		deliveryDays float64
	)
	for _, sh := range shipments {
		a.StatusBreakdown[sh.Status]++
		a.TotalShippingCost += sh.Cost

		if sh.Status != StatusDelivered {
			continue
		}
		delivered++
		if sh.OnTime() {
			onTime++
		}
		if sh.ShippedAt != nil && sh.DeliveredAt != nil {
			deliveryDays += sh.DeliveredAt.Sub(*sh.ShippedAt).Hours() / 24
		}
	}

	if delivered > 0 {
		a.OnTimeDeliveryRate = float64(onTime) / float64(delivered) * 100
		a.AvgDeliveryDays = deliveryDays / float64(delivered)
	}
	if len(shipments) > 0 {
		a.AvgCostPerShipment = a.TotalShippingCost / float64(len(shipments))
	}

	return a, nil
}

// laneDistance resolves the lane through the shared tiered resolver.
func (s *Service) laneDistance(ctx context.Context, origin, destination string, mode transport.Mode) distance.RouteDistance {
	originRes := s.geocoder.Resolve(ctx, origin)
	destRes := s.geocoder.Resolve(ctx, destination)
	return s.distance.Resolve(ctx, originRes.Coord, destRes.Coord, mode)
}

// startOfRoute is 09:00 on the current day.
func (s *Service) startOfRoute() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
}

// orderDestinations puts priority cities first; both groups alphabetical.
func orderDestinations(destinations []string) []string {
	var prioritized, others []string
	for _, d := range destinations {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if isPriorityCity(d) {
			prioritized = append(prioritized, d)
		} else {
			others = append(others, d)
		}
	}
	sort.Strings(prioritized)
	sort.Strings(others)
	return append(prioritized, others...)
}

func isPriorityCity(destination string) bool {
	for _, city := range priorityCities {
		if strings.Contains(strings.ToLower(destination), strings.ToLower(city)) {
			return true
		}
	}
	return false
}

// nextCheckpoint returns the next hub for a lane, or a generic hub for
// unknown lanes.
func nextCheckpoint(origin, destination string) string {
	key := [2]string{normalizePlace(origin), normalizePlace(destination)}
	if hub, ok := laneHubs[key]; ok {
		return hub
	}
	return "Regional Hub"
}

// normalizePlace reduces a place name to its city keyword for hub lookups.
func normalizePlace(place string) string {
	p := strings.ToLower(strings.TrimSpace(place))
	for key := range laneHubs {
		if strings.Contains(p, key[0]) {
			return key[0]
		}
		if strings.Contains(p, key[1]) {
			return key[1]
		}
	}
	return p
}

func eventLocation(sh *Shipment, status Status) string {
	switch status {
	case StatusInTransit:
		return "En route to " + sh.Destination
	case StatusDelivered:
		return sh.Destination
	default:
		return sh.Origin
	}
}

// newShipmentID generates a public shipment identifier.
func newShipmentID() string {
	u := uuid.New()
	return fmt.Sprintf("SHP-%X", u[:4])
}
