package openrouteservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujaypr/SCM/internal/distance"
	"github.com/sujaypr/SCM/internal/geo"
)

var (
	bangalore = geo.Coordinate{Lat: 12.9716, Lon: 77.5946}
	mumbai    = geo.Coordinate{Lat: 19.0760, Lon: 72.8777}
)

func TestClient_Route(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/directions/driving-hgv", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		var body struct {
			Coordinates [][]float64 `json:"coordinates"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Coordinates, 2)
		// GeoJSON order: lon first
		assert.InDelta(t, bangalore.Lon, body.Coordinates[0][0], 1e-9)
		assert.InDelta(t, bangalore.Lat, body.Coordinates[0][1], 1e-9)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes":[{"summary":{"distance":981000,"duration":59400},"geometry":"encoded-polyline"}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Logger:  zerolog.Nop(),
	})

	leg, err := client.Route(context.Background(), bangalore, mumbai)
	require.NoError(t, err)

	assert.Equal(t, 981000.0, leg.DistanceMeters)
	assert.Equal(t, 59400.0, leg.DurationSeconds)
	assert.Equal(t, "encoded-polyline", leg.GeometryPolyline)
}

func TestClient_RouteNoRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes":[]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIKey: "k", BaseURL: server.URL, Logger: zerolog.Nop()})

	_, err := client.Route(context.Background(), bangalore, mumbai)
	assert.ErrorIs(t, err, distance.ErrNoRouteFound)
}

func TestClient_RouteAccessDenied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIKey: "bad", BaseURL: server.URL, Logger: zerolog.Nop()})

	_, err := client.Route(context.Background(), bangalore, mumbai)
	assert.ErrorIs(t, err, distance.ErrProviderUnavailable)
}

func TestClient_RouteInvalidCoordinates(t *testing.T) {
	client := NewClient(ClientConfig{APIKey: "k", Logger: zerolog.Nop()})

	_, err := client.Route(context.Background(), geo.Coordinate{Lat: 99, Lon: 0}, mumbai)
	assert.ErrorIs(t, err, distance.ErrInvalidCoordinates)
}
