package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/sujaypr/SCM/internal/api/models"
	"github.com/sujaypr/SCM/internal/api/response"
	"github.com/sujaypr/SCM/internal/provider/resilience"
)

// CacheInvalidator drops all entries from one provider cache.
type CacheInvalidator interface {
	Invalidate()
	Len() int
}

// HealthRegistry reports upstream provider health.
type HealthRegistry interface {
	GetAllHealth() []*resilience.ProviderHealth
}

// AdminHandler handles the operator-facing admin endpoints.
type AdminHandler struct {
	caches   map[string]CacheInvalidator
	registry HealthRegistry
}

// NewAdminHandler creates a new AdminHandler. caches maps a cache name
// (e.g. "geocode") to the cache backing that provider.
func NewAdminHandler(caches map[string]CacheInvalidator, registry HealthRegistry) *AdminHandler {
	return &AdminHandler{caches: caches, registry: registry}
}

// cacheInvalidation reports how many entries each cache dropped.
type cacheInvalidation struct {
	Cache   string `json:"cache"`
	Dropped int    `json:"dropped"`
}

// InvalidateCaches handles POST /v1/admin/caches/invalidate.
func (h *AdminHandler) InvalidateCaches(w http.ResponseWriter, r *http.Request) {
	result := make([]cacheInvalidation, 0, len(h.caches))
	for name, c := range h.caches {
		dropped := c.Len()
		c.Invalidate()
		result = append(result, cacheInvalidation{Cache: name, Dropped: dropped})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Cache < result[j].Cache })

	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"invalidated": result,
		"at":          models.Timestamp(time.Now()),
	})
}

// providerHealth is the wire form of one provider's health.
type providerHealth struct {
	Provider      string              `json:"provider"`
	Status        models.HealthStatus `json:"status"`
	CircuitState  string              `json:"circuitState"`
	Requests      uint32              `json:"requests"`
	TotalFailures uint32              `json:"totalFailures"`
	LastSuccessAt *models.Timestamp   `json:"lastSuccessAt,omitempty"`
	LastFailureAt *models.Timestamp   `json:"lastFailureAt,omitempty"`
	LastError     string              `json:"lastError,omitempty"`
}

// ProviderHealth handles GET /v1/admin/providers/health.
func (h *AdminHandler) ProviderHealth(w http.ResponseWriter, r *http.Request) {
	all := h.registry.GetAllHealth()

	result := make([]providerHealth, 0, len(all))
	for _, p := range all {
		status := models.HealthStatusFail
		switch {
		case p.IsHealthy():
			status = models.HealthStatusOK
		case p.IsDegraded():
			status = models.HealthStatusDegraded
		}

		entry := providerHealth{
			Provider:      p.Name,
			Status:        status,
			CircuitState:  p.CircuitState.String(),
			Requests:      p.Counts.Requests,
			TotalFailures: p.Counts.TotalFailures,
			LastError:     p.LastError,
		}
		if p.LastSuccessAt != nil {
			ts := models.Timestamp(*p.LastSuccessAt)
			entry.LastSuccessAt = &ts
		}
		if p.LastFailureAt != nil {
			ts := models.Timestamp(*p.LastFailureAt)
			entry.LastFailureAt = &ts
		}
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Provider < result[j].Provider })

	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"providers": result,
		"at":        models.Timestamp(time.Now()),
	})
}
