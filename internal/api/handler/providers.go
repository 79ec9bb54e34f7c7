package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sujaypr/SCM/internal/api/models"
	"github.com/sujaypr/SCM/internal/api/response"
	"github.com/sujaypr/SCM/internal/quotes"
)

// QuoteComparator ranks carrier quotes for a lane.
type QuoteComparator interface {
	Compare(ctx context.Context, origin, destination string) quotes.Comparison
}

// ProvidersHandler handles carrier quote endpoints.
type ProvidersHandler struct {
	comparator QuoteComparator
}

// NewProvidersHandler creates a new ProvidersHandler.
func NewProvidersHandler(comparator QuoteComparator) *ProvidersHandler {
	return &ProvidersHandler{comparator: comparator}
}

// Compare handles POST /v1/providers/compare.
func (h *ProvidersHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input models.LaneRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrs := validateLane(input.Origin, input.Destination); len(fieldErrs) > 0 {
		response.BadRequest(w, r, "origin and destination are required", fieldErrs)
		return
	}

	cmp := h.comparator.Compare(r.Context(), input.Origin, input.Destination)
	response.JSON(w, r, http.StatusOK, models.FromComparison(cmp))
}
