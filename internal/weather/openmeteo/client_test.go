package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujaypr/SCM/internal/geo"
)

func TestClient_Current(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "ms", r.URL.Query().Get("wind_speed_unit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current":{"temperature_2m":28.1,"weather_code":95,"wind_speed_10m":6.4}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	obs, err := client.Current(context.Background(), geo.Coordinate{Lat: 19.07, Lon: 72.87})
	require.NoError(t, err)

	assert.Equal(t, "thunderstorm", obs.Condition)
	assert.Equal(t, 28.1, *obs.TemperatureC)
	assert.Equal(t, 6.4, *obs.WindSpeed)
	assert.Nil(t, obs.VisibilityKm)
}

func TestMapWeatherCode(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{code: 0, want: "clear"},
		{code: 2, want: "clouds"},
		{code: 45, want: "fog"},
		{code: 61, want: "rain"},
		{code: 73, want: "snow"},
		{code: 81, want: "rain"},
		{code: 96, want: "thunderstorm"},
		{code: 40, want: "unknown"},
	}

	for _, tt := range tests {
		if got := mapWeatherCode(tt.code); got != tt.want {
			t.Errorf("mapWeatherCode(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
