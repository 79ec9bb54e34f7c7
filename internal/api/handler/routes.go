package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sujaypr/SCM/internal/api/models"
	"github.com/sujaypr/SCM/internal/api/response"
	"github.com/sujaypr/SCM/internal/routeintel"
	"github.com/sujaypr/SCM/internal/shipment"
	"github.com/sujaypr/SCM/internal/transport"
)

// RouteIntelligence is the route-intelligence facade the handlers call.
type RouteIntelligence interface {
	EstimateTransport(ctx context.Context, origin, destination string) routeintel.TransportEstimate
	AnalyzeRoute(ctx context.Context, origin, destination string, mode transport.Mode) routeintel.RouteAnalysis
	AnalyzeRouteSampled(ctx context.Context, origin, destination string, mode transport.Mode, samples int) routeintel.RouteAnalysis
}

// RouteOptimizer plans multi-stop delivery routes.
type RouteOptimizer interface {
	OptimizeRoutes(ctx context.Context, destinations []string) shipment.RoutePlan
}

// RoutesHandler handles route intelligence endpoints.
type RoutesHandler struct {
	intel     RouteIntelligence
	optimizer RouteOptimizer
}

// NewRoutesHandler creates a new RoutesHandler.
func NewRoutesHandler(intel RouteIntelligence, optimizer RouteOptimizer) *RoutesHandler {
	return &RoutesHandler{intel: intel, optimizer: optimizer}
}

// EstimateTransport handles POST /v1/routes/estimate.
func (h *RoutesHandler) EstimateTransport(w http.ResponseWriter, r *http.Request) {
	var input models.LaneRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrs := validateLane(input.Origin, input.Destination); len(fieldErrs) > 0 {
		response.BadRequest(w, r, "origin and destination are required", fieldErrs)
		return
	}

	estimate := h.intel.EstimateTransport(r.Context(), input.Origin, input.Destination)
	response.JSON(w, r, http.StatusOK, models.FromTransportEstimate(estimate))
}

// AnalyzeRoute handles POST /v1/routes/analyze.
func (h *RoutesHandler) AnalyzeRoute(w http.ResponseWriter, r *http.Request) {
	var input models.RouteAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrs := validateLane(input.Origin, input.Destination); len(fieldErrs) > 0 {
		response.BadRequest(w, r, "origin and destination are required", fieldErrs)
		return
	}

	// Unknown modes fall back to road inside the service.
	mode, _ := transport.ParseMode(input.Mode)

	analysis := h.intel.AnalyzeRoute(r.Context(), input.Origin, input.Destination, mode)
	response.JSON(w, r, http.StatusOK, models.FromRouteAnalysis(analysis))
}

// OptimizeRoutes handles POST /v1/routes/optimize.
func (h *RoutesHandler) OptimizeRoutes(w http.ResponseWriter, r *http.Request) {
	var input models.RouteOptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if len(input.Destinations) == 0 {
		response.BadRequest(w, r, "at least one destination is required", []models.FieldError{
			{Field: "destinations", Message: "must not be empty", Code: "required"},
		})
		return
	}

	plan := h.optimizer.OptimizeRoutes(r.Context(), input.Destinations)
	response.JSON(w, r, http.StatusOK, models.FromRoutePlan(plan))
}

// validateLane checks the shared origin/destination pair.
func validateLane(origin, destination string) []models.FieldError {
	var errs []models.FieldError
	if strings.TrimSpace(origin) == "" {
		errs = append(errs, models.FieldError{Field: "origin", Message: "must not be empty", Code: "required"})
	}
	if strings.TrimSpace(destination) == "" {
		errs = append(errs, models.FieldError{Field: "destination", Message: "must not be empty", Code: "required"})
	}
	return errs
}
