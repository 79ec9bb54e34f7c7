package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sujaypr/SCM/internal/api/models"
	"github.com/sujaypr/SCM/internal/api/response"
	"github.com/sujaypr/SCM/internal/decision"
)

// DecisionEngine scores transport modes for a lane.
type DecisionEngine interface {
	Decide(ctx context.Context, origin, destination string) decision.Decision
}

// TransportHandler handles transport mode decision endpoints.
type TransportHandler struct {
	engine DecisionEngine
}

// NewTransportHandler creates a new TransportHandler.
func NewTransportHandler(engine DecisionEngine) *TransportHandler {
	return &TransportHandler{engine: engine}
}

// Decide handles POST /v1/transport/decide.
func (h *TransportHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var input models.LaneRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrs := validateLane(input.Origin, input.Destination); len(fieldErrs) > 0 {
		response.BadRequest(w, r, "origin and destination are required", fieldErrs)
		return
	}

	d := h.engine.Decide(r.Context(), input.Origin, input.Destination)
	response.JSON(w, r, http.StatusOK, models.FromDecision(d))
}
