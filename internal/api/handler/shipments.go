package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sujaypr/SCM/internal/api/models"
	"github.com/sujaypr/SCM/internal/api/response"
	"github.com/sujaypr/SCM/internal/shipment"
	"github.com/sujaypr/SCM/internal/transport"
)

// ShipmentService is the shipment booking and tracking layer.
type ShipmentService interface {
	Create(ctx context.Context, in shipment.CreateInput) (*shipment.Shipment, error)
	Get(ctx context.Context, id string) (*shipment.Shipment, error)
	List(ctx context.Context, status shipment.Status, mode transport.Mode) ([]*shipment.Shipment, error)
	UpdateStatus(ctx context.Context, id string, next shipment.Status) (*shipment.Shipment, error)
	GetAnalytics(ctx context.Context) (*shipment.Analytics, error)
}

// ShipmentsHandler handles shipment CRUD and tracking endpoints.
type ShipmentsHandler struct {
	shipments ShipmentService
	intel     RouteIntelligence
}

// NewShipmentsHandler creates a new ShipmentsHandler.
func NewShipmentsHandler(shipments ShipmentService, intel RouteIntelligence) *ShipmentsHandler {
	return &ShipmentsHandler{shipments: shipments, intel: intel}
}

// Create handles POST /v1/shipments.
func (h *ShipmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.ShipmentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if strings.TrimSpace(input.Destination) == "" {
		response.BadRequest(w, r, "destination is required", []models.FieldError{
			{Field: "destination", Message: "must not be empty", Code: "required"},
		})
		return
	}
	if input.Mode != "" {
		if _, err := transport.ParseMode(input.Mode); err != nil {
			response.BadRequest(w, r, err.Error(), []models.FieldError{
				{Field: "mode", Message: "must be one of road, rail, air, sea", Code: "invalid"},
			})
			return
		}
	}

	mode, _ := transport.ParseMode(input.Mode)
	sh, err := h.shipments.Create(r.Context(), shipment.CreateInput{
		Origin:        input.Origin,
		Destination:   input.Destination,
		Mode:          mode,
		WeightKg:      input.WeightKg,
		ItemsCount:    input.ItemsCount,
		EstimatedDays: input.EstimatedDays,
	})
	if err != nil {
		response.InternalError(w, r, "creating shipment failed")
		return
	}

	location := fmt.Sprintf("/v1/shipments/%s", sh.ID)
	response.Created(w, r, location, models.FromShipment(sh))
}

// List handles GET /v1/shipments?status=&mode=.
func (h *ShipmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	var status shipment.Status
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, err := shipment.ParseStatus(s)
		if err != nil {
			response.BadRequest(w, r, err.Error(), nil)
			return
		}
		status = parsed
	}

	var mode transport.Mode
	if m := r.URL.Query().Get("mode"); m != "" {
		parsed, err := transport.ParseMode(m)
		if err != nil {
			response.BadRequest(w, r, err.Error(), nil)
			return
		}
		mode = parsed
	}

	shipments, err := h.shipments.List(r.Context(), status, mode)
	if err != nil {
		response.InternalError(w, r, "listing shipments failed")
		return
	}

	response.JSON(w, r, http.StatusOK, models.ShipmentList{
		Items: models.FromShipments(shipments),
		Total: len(shipments),
	})
}

// Get handles GET /v1/shipments/{shipmentId}.
func (h *ShipmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	sh, ok := h.lookup(w, r)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, models.FromShipment(sh))
}

// UpdateStatus handles PUT /v1/shipments/{shipmentId}/status.
func (h *ShipmentsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shipmentId")

	var input models.ShipmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	status, err := shipment.ParseStatus(input.Status)
	if err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "status", Message: "unknown status", Code: "invalid"},
		})
		return
	}

	sh, err := h.shipments.UpdateStatus(r.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, shipment.ErrNotFound):
			response.NotFound(w, r, "shipment not found: "+id)
		case errors.Is(err, shipment.ErrInvalidTransition):
			response.Conflict(w, r, err.Error())
		default:
			response.InternalError(w, r, "updating shipment failed")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, models.FromShipment(sh))
}

// Tracking handles GET /v1/shipments/{shipmentId}/tracking.
func (h *ShipmentsHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	sh, ok := h.lookup(w, r)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, models.FromTracking(sh))
}

// Analysis handles GET /v1/shipments/{shipmentId}/analysis - the weather and
// risk report for the shipment's own lane and mode.
func (h *ShipmentsHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	sh, ok := h.lookup(w, r)
	if !ok {
		return
	}

	analysis := h.intel.AnalyzeRoute(r.Context(), sh.Origin, sh.Destination, sh.Mode)
	response.JSON(w, r, http.StatusOK, models.FromRouteAnalysis(analysis))
}

// Analytics handles GET /v1/analytics/logistics.
func (h *ShipmentsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.shipments.GetAnalytics(r.Context())
	if err != nil {
		response.InternalError(w, r, "computing analytics failed")
		return
	}
	response.JSON(w, r, http.StatusOK, models.FromAnalytics(analytics))
}

func (h *ShipmentsHandler) lookup(w http.ResponseWriter, r *http.Request) (*shipment.Shipment, bool) {
	id := chi.URLParam(r, "shipmentId")
	if id == "" {
		response.BadRequest(w, r, "shipmentId is required", nil)
		return nil, false
	}

	sh, err := h.shipments.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, shipment.ErrNotFound) {
			response.NotFound(w, r, "shipment not found: "+id)
		} else {
			response.InternalError(w, r, "loading shipment failed")
		}
		return nil, false
	}
	return sh, true
}
