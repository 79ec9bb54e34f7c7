package models

import (
	"github.com/sujaypr/SCM/internal/shipment"
)

// ShipmentCreateRequest is the request body for POST /v1/shipments.
type ShipmentCreateRequest struct {
	Origin        string  `json:"origin,omitempty"`
	Destination   string  `json:"destination"`
	Mode          string  `json:"mode,omitempty"`
	WeightKg      float64 `json:"weightKg,omitempty"`
	ItemsCount    int     `json:"itemsCount,omitempty"`
	EstimatedDays int     `json:"estimatedDays,omitempty"`
}

// ShipmentStatusRequest is the request body for PUT /v1/shipments/{id}/status.
type ShipmentStatusRequest struct {
	Status string `json:"status"`
}

// TrackingEvent is one entry in a shipment's tracking history.
type TrackingEvent struct {
	Status    string    `json:"status"`
	Timestamp Timestamp `json:"timestamp"`
	Location  string    `json:"location,omitempty"`
}

// Shipment is the wire form of a shipment.
type Shipment struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"`
	Status      string `json:"status"`

	ItemsCount int     `json:"itemsCount"`
	WeightKg   float64 `json:"weightKg"`
	Cost       float64 `json:"cost"`

	NextCheckpoint string `json:"nextCheckpoint,omitempty"`

	CreatedAt   Timestamp  `json:"createdAt"`
	ETA         Timestamp  `json:"eta"`
	ShippedAt   *Timestamp `json:"shippedAt,omitempty"`
	DeliveredAt *Timestamp `json:"deliveredAt,omitempty"`
}

// FromShipment converts a domain shipment.
func FromShipment(s *shipment.Shipment) Shipment {
	out := Shipment{
		ID:             s.ID,
		Origin:         s.Origin,
		Destination:    s.Destination,
		Mode:           string(s.Mode),
		Status:         string(s.Status),
		ItemsCount:     s.ItemsCount,
		WeightKg:       s.WeightKg,
		Cost:           s.Cost,
		NextCheckpoint: s.NextCheckpoint,
		CreatedAt:      Timestamp(s.CreatedAt),
		ETA:            Timestamp(s.ETA),
	}
	if s.ShippedAt != nil {
		ts := Timestamp(*s.ShippedAt)
		out.ShippedAt = &ts
	}
	if s.DeliveredAt != nil {
		ts := Timestamp(*s.DeliveredAt)
		out.DeliveredAt = &ts
	}
	return out
}

// FromShipments converts a slice of domain shipments.
func FromShipments(shipments []*shipment.Shipment) []Shipment {
	result := make([]Shipment, 0, len(shipments))
	for _, s := range shipments {
		result = append(result, FromShipment(s))
	}
	return result
}

// ShipmentList is the response for GET /v1/shipments.
type ShipmentList struct {
	Items []Shipment `json:"items"`
	Total int        `json:"total"`
}

// TrackingResponse is the response for GET /v1/shipments/{id}/tracking.
type TrackingResponse struct {
	ShipmentID     string          `json:"shipmentId"`
	Status         string          `json:"status"`
	NextCheckpoint string          `json:"nextCheckpoint,omitempty"`
	ETA            Timestamp       `json:"eta"`
	History        []TrackingEvent `json:"history"`
}

// FromTracking builds a tracking response from a domain shipment.
func FromTracking(s *shipment.Shipment) TrackingResponse {
	history := make([]TrackingEvent, 0, len(s.History))
	for _, e := range s.History {
		history = append(history, TrackingEvent{
			Status:    string(e.Status),
			Timestamp: Timestamp(e.Timestamp),
			Location:  e.Location,
		})
	}

	return TrackingResponse{
		ShipmentID:     s.ID,
		Status:         string(s.Status),
		NextCheckpoint: s.NextCheckpoint,
		ETA:            Timestamp(s.ETA),
		History:        history,
	}
}

// LogisticsAnalytics is the response for GET /v1/analytics/logistics.
type LogisticsAnalytics struct {
	TotalShipments     int            `json:"totalShipments"`
	StatusBreakdown    map[string]int `json:"statusBreakdown"`
	OnTimeDeliveryRate float64        `json:"onTimeDeliveryRate"`
	AvgDeliveryDays    float64        `json:"avgDeliveryDays"`
	TotalShippingCost  float64        `json:"totalShippingCost"`
	AvgCostPerShipment float64        `json:"avgCostPerShipment"`
}

// FromAnalytics converts domain analytics.
func FromAnalytics(a *shipment.Analytics) LogisticsAnalytics {
	breakdown := make(map[string]int, len(a.StatusBreakdown))
	for status, count := range a.StatusBreakdown {
		breakdown[string(status)] = count
	}

	return LogisticsAnalytics{
		TotalShipments:     a.TotalShipments,
		StatusBreakdown:    breakdown,
		OnTimeDeliveryRate: a.OnTimeDeliveryRate,
		AvgDeliveryDays:    a.AvgDeliveryDays,
		TotalShippingCost:  a.TotalShippingCost,
		AvgCostPerShipment: a.AvgCostPerShipment,
	}
}
