package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/internal/geocode"
	"github.com/sujaypr/SCM/internal/news"
	"github.com/sujaypr/SCM/internal/weather"
	"github.com/sujaypr/SCM/internal/worker"
)

type fakeGeocoder struct {
	resolved bool
	calls    int
}

func (f *fakeGeocoder) Resolve(_ context.Context, place string) geocode.Result {
	f.calls++
	if !f.resolved {
		return geocode.Result{Place: place}
	}
	return geocode.Result{
		Coord: &geo.Coordinate{Lat: 12.9716, Lon: 77.5946},
		Place: place,
	}
}

type fakeWeather struct {
	source weather.Source
	calls  int
}

func (f *fakeWeather) Current(_ context.Context, coord geo.Coordinate) *weather.Observation {
	f.calls++
	return &weather.Observation{Coord: coord, Condition: "clear", Source: f.source}
}

type fakeNews struct {
	headlines []news.Headline
	calls     int
}

func (f *fakeNews) Headlines(_ context.Context, _ string) []news.Headline {
	f.calls++
	return f.headlines
}

func singleHubConfig() worker.WarmConfig {
	return worker.WarmConfig{
		Targets: []worker.WarmTarget{
			{
				Name: "test",
				Hubs: []worker.Hub{{Name: "Bangalore", Coord: geo.Coordinate{Lat: 12.97, Lon: 77.59}}},
			},
		},
		Concurrency: 1,
		Timeout:     time.Second,
		WarmGeocode: true,
		WarmWeather: true,
		WarmNews:    true,
	}
}

func TestDefaultWarmConfig(t *testing.T) {
	cfg := worker.DefaultWarmConfig()

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.WarmGeocode)
	assert.True(t, cfg.WarmWeather)
	assert.True(t, cfg.WarmNews)
	assert.NotEmpty(t, cfg.Targets)
}

func TestDefaultWarmTargets(t *testing.T) {
	targets := worker.DefaultWarmTargets()

	assert.GreaterOrEqual(t, len(targets), 3)

	var metros *worker.WarmTarget
	for i := range targets {
		if targets[i].Name == "metros" {
			metros = &targets[i]
			break
		}
	}
	require.NotNil(t, metros, "metros should be in targets")
	assert.Equal(t, 1, metros.Priority)
	assert.GreaterOrEqual(t, len(metros.Hubs), 5)
}

func TestWarmConfig_AllHubs(t *testing.T) {
	cfg := worker.WarmConfig{
		Targets: []worker.WarmTarget{
			{
				Name: "group A",
				Hubs: []worker.Hub{{Name: "a"}, {Name: "b"}},
			},
			{
				Name: "group B",
				Hubs: []worker.Hub{{Name: "c"}},
			},
		},
	}

	assert.Len(t, cfg.AllHubs(), 3)
	assert.Equal(t, 3, cfg.TotalHubs())
}

func TestWarmJob_Run_AllProvidersLive(t *testing.T) {
	geocoder := &fakeGeocoder{resolved: true}
	wx := &fakeWeather{source: weather.SourcePrimary}
	nw := &fakeNews{headlines: []news.Headline{{Title: "port strike continues"}}}

	job := worker.NewWarmJob(worker.WarmJobConfig{
		Config:   singleHubConfig(),
		Logger:   zerolog.Nop(),
		Geocoder: geocoder,
		Weather:  wx,
		News:     nw,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 1, result.TotalHubs)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1, geocoder.calls)
	assert.Equal(t, 1, wx.calls)
	assert.Equal(t, 1, nw.calls)
}

func TestWarmJob_Run_DegradedWeatherCountsAsFailure(t *testing.T) {
	job := worker.NewWarmJob(worker.WarmJobConfig{
		Config:   singleHubConfig(),
		Logger:   zerolog.Nop(),
		Geocoder: &fakeGeocoder{resolved: true},
		Weather:  &fakeWeather{source: weather.SourceMock},
	})

	result := job.Run(context.Background())

	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "weather", result.Errors[0].Provider)
}

func TestWarmJob_Run_EmptyNewsIsNotFailure(t *testing.T) {
	job := worker.NewWarmJob(worker.WarmJobConfig{
		Config:   singleHubConfig(),
		Logger:   zerolog.Nop(),
		Geocoder: &fakeGeocoder{resolved: true},
		Weather:  &fakeWeather{source: weather.SourceSecondary},
		News:     &fakeNews{},
	})

	result := job.Run(context.Background())

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 0, result.Failed)
}

func TestWarmJob_Run_NoServices(t *testing.T) {
	job := worker.NewWarmJob(worker.WarmJobConfig{
		Config: singleHubConfig(),
		Logger: zerolog.Nop(),
	})

	result := job.Run(context.Background())

	// Should complete without panicking
	assert.NotNil(t, result)
	assert.Equal(t, 1, result.TotalHubs)
	assert.Equal(t, 1, result.Successful)
}

func TestWarmJob_GetMetrics(t *testing.T) {
	job := worker.NewWarmJob(worker.WarmJobConfig{
		Config:   singleHubConfig(),
		Logger:   zerolog.Nop(),
		Geocoder: &fakeGeocoder{resolved: true},
	})

	_ = job.Run(context.Background())

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalRuns)
	assert.Equal(t, int64(1), metrics.GeocodeWarms)
	assert.NotZero(t, metrics.LastRunAt)
}

func TestWarmJob_MetricsSnapshot(t *testing.T) {
	job := worker.NewWarmJob(worker.WarmJobConfig{
		Config: singleHubConfig(),
		Logger: zerolog.Nop(),
	})

	_ = job.Run(context.Background())

	snapshot := job.MetricsSnapshot()

	assert.Contains(t, snapshot, "total_runs")
	assert.Contains(t, snapshot, "successful_hubs")
	assert.Contains(t, snapshot, "failed_hubs")
	assert.Contains(t, snapshot, "last_run_at")
	assert.Contains(t, snapshot, "last_run_duration")
}

func TestWarmJob_Run_WithConcurrency(t *testing.T) {
	hubs := make([]worker.Hub, 10)
	for i := range hubs {
		hubs[i] = worker.Hub{
			Name:  "hub",
			Coord: geo.Coordinate{Lat: 12.0 + float64(i)*0.1, Lon: 77.0 + float64(i)*0.1},
		}
	}

	geocoder := &fakeGeocoder{resolved: true}
	job := worker.NewWarmJob(worker.WarmJobConfig{
		Config: worker.WarmConfig{
			Targets:     []worker.WarmTarget{{Name: "test", Hubs: hubs}},
			Concurrency: 3,
			Timeout:     time.Second,
			WarmGeocode: true,
		},
		Logger:   zerolog.Nop(),
		Geocoder: geocoder,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 10, result.TotalHubs)
	assert.Equal(t, 10, result.Successful)
	assert.Equal(t, 10, geocoder.calls)
}
