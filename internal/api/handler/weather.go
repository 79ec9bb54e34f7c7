package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/sujaypr/SCM/internal/api/models"
	"github.com/sujaypr/SCM/internal/api/response"
	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/internal/geocode"
	"github.com/sujaypr/SCM/internal/transport"
	"github.com/sujaypr/SCM/internal/weather"
)

// Geocoder resolves place names.
type Geocoder interface {
	Resolve(ctx context.Context, place string) geocode.Result
}

// WeatherService fetches current conditions.
type WeatherService interface {
	Current(ctx context.Context, coord geo.Coordinate) *weather.Observation
}

// WeatherHandler handles weather endpoints.
type WeatherHandler struct {
	geocoder Geocoder
	weather  WeatherService
	intel    RouteIntelligence
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(geocoder Geocoder, weatherSvc WeatherService, intel RouteIntelligence) *WeatherHandler {
	return &WeatherHandler{
		geocoder: geocoder,
		weather:  weatherSvc,
		intel:    intel,
	}
}

// Current handles GET /v1/weather?city= or GET /v1/weather?lat=&lon=.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	var (
		coord geo.Coordinate
		place string
	)

	switch {
	case city != "":
		result := h.geocoder.Resolve(r.Context(), city)
		if !result.Resolved() {
			response.NotFound(w, r, "city could not be resolved: "+city)
			return
		}
		coord = *result.Coord
		place = city

	case latStr != "" && lonStr != "":
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			response.BadRequest(w, r, "lat and lon must be numbers", nil)
			return
		}
		coord = geo.Coordinate{Lat: lat, Lon: lon}
		if err := coord.Validate(); err != nil {
			response.BadRequest(w, r, err.Error(), nil)
			return
		}

	default:
		response.BadRequest(w, r, "either city or lat+lon is required", nil)
		return
	}

	obs := h.weather.Current(r.Context(), coord)
	response.JSON(w, r, http.StatusOK, models.WeatherResponse{
		Place:       place,
		Observation: models.FromObservation(obs),
	})
}

// Route handles GET /v1/weather/route?origin=&destination=&samples= -
// sampled conditions and risk along a lane. samples is optional; the
// facade clamps out-of-range counts.
func (h *WeatherHandler) Route(w http.ResponseWriter, r *http.Request) {
	origin := strings.TrimSpace(r.URL.Query().Get("origin"))
	destination := strings.TrimSpace(r.URL.Query().Get("destination"))
	if fieldErrs := validateLane(origin, destination); len(fieldErrs) > 0 {
		response.BadRequest(w, r, "origin and destination are required", fieldErrs)
		return
	}

	samples := 0
	if raw := r.URL.Query().Get("samples"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, r, "samples must be an integer", nil)
			return
		}
		samples = parsed
	}

	analysis := h.intel.AnalyzeRouteSampled(r.Context(), origin, destination, transport.ModeRoad, samples)
	response.JSON(w, r, http.StatusOK, models.FromRouteAnalysis(analysis))
}
