package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sujaypr/SCM/internal/transport"
)

// Shipment errors.
var (
	ErrNotFound          = errors.New("shipment not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Status is the shipment lifecycle state.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusInTransit  Status = "in_transit"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus normalizes and validates a status string.
func ParseStatus(s string) (Status, error) {
	normalized := Status(strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, " ", "_"))))
	switch normalized {
	case StatusProcessing, StatusInTransit, StatusDelivered, StatusCancelled:
		return normalized, nil
	default:
		return "", fmt.Errorf("unknown shipment status %q", s)
	}
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// Delivered and cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusProcessing:
		return next == StatusInTransit || next == StatusCancelled
	case StatusInTransit:
		return next == StatusDelivered || next == StatusCancelled
	default:
		return false
	}
}

// TrackingEvent is one entry in a shipment's status history.
type TrackingEvent struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location"`
}

// Shipment is a tracked consignment between two places.
type Shipment struct {
	// ID is the public identifier, e.g. "SHP-A1B2C3D4".
	ID string

	Origin      string
	Destination string

	// Mode is the transport mode the shipment was booked on.
	Mode transport.Mode

	Status Status

	ItemsCount int
	WeightKg   float64

	// Cost is the estimated charge in rupees.
	Cost float64

	// NextCheckpoint is the next hub on the lane.
	NextCheckpoint string

	CreatedAt   time.Time
	ETA         time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time

	// History records status changes, oldest first.
	History []TrackingEvent
}

// OnTime reports whether a delivered shipment met its ETA. False for
// undelivered shipments.
func (s *Shipment) OnTime() bool {
	return s.DeliveredAt != nil && !s.DeliveredAt.After(s.ETA)
}
