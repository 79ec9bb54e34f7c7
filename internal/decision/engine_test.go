package decision

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/distance"
	"github.com/sujaypr/SCM/internal/gentext"
	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/internal/geocode"
	"github.com/sujaypr/SCM/internal/news"
	"github.com/sujaypr/SCM/internal/transport"
	"github.com/sujaypr/SCM/internal/weather"
)

type fakeGeocoder struct {
	coords map[string]*geo.Coordinate
}

func (f *fakeGeocoder) Resolve(_ context.Context, place string) geocode.Result {
	key := strings.ToLower(strings.TrimSpace(place))
	return geocode.Result{Coord: f.coords[key], Place: key}
}

type fakeDistance struct {
	result distance.RouteDistance
}

func (f *fakeDistance) Resolve(_ context.Context, origin, dest *geo.Coordinate, _ transport.Mode) distance.RouteDistance {
	if origin == nil || dest == nil {
		return distance.RouteDistance{
			DistanceKm:    distance.StaticFallbackKm,
			DurationHours: distance.StaticFallbackHours,
			Method:        distance.MethodStatic,
		}
	}
	return f.result
}

type fakeWeather struct {
	condition string
}

func (f *fakeWeather) Current(_ context.Context, coord geo.Coordinate) *weather.Observation {
	return &weather.Observation{Coord: coord, Condition: f.condition, Source: weather.SourceMock}
}

type fakeNews struct {
	headlines map[string][]news.Headline
}

func (f *fakeNews) Headlines(_ context.Context, place string) []news.Headline {
	return f.headlines[strings.ToLower(place)]
}

type fakeGateway struct {
	result gentext.Result
}

func (f *fakeGateway) Generate(_ context.Context, _ string, _ int) gentext.Result {
	return f.result
}

var (
	bangalore = geo.Coordinate{Lat: 12.9716, Lon: 77.5946}
	mumbai    = geo.Coordinate{Lat: 19.0760, Lon: 72.8777}
	kolkata   = geo.Coordinate{Lat: 22.5726, Lon: 88.3639}
)

func newTestEngine(distKm float64, condition string, headlines map[string][]news.Headline, gw gentext.Result) *Engine {
	return NewEngine(EngineConfig{
		Geocoder: &fakeGeocoder{coords: map[string]*geo.Coordinate{
			"bangalore": &bangalore,
			"mumbai":    &mumbai,
			"kolkata":   &kolkata,
		}},
		Distance: &fakeDistance{result: distance.RouteDistance{
			DistanceKm:    distKm,
			DurationHours: distKm / 60,
			Method:        distance.MethodHaversine,
		}},
		Weather: &fakeWeather{condition: condition},
		News:    &fakeNews{headlines: headlines},
		Gateway: &fakeGateway{result: gw},
		Logger:  zerolog.Nop(),
	})
}

func TestDecide_AlwaysFourModes(t *testing.T) {
	engine := newTestEngine(500, "clear", nil, gentext.Result{})

	got := engine.Decide(context.Background(), "Bangalore", "Mumbai")

	if len(got.Scores) != 4 {
		t.Fatalf("expected 4 scored modes, got %d", len(got.Scores))
	}
	found := false
	for _, s := range got.Scores {
		if s.Mode == got.RecommendedMode {
			found = true
		}
	}
	if !found {
		t.Errorf("recommended mode %q not among scored modes", got.RecommendedMode)
	}
}

func TestDecide_LongHaulClearWeatherPrefersAir(t *testing.T) {
	engine := newTestEngine(1560, "clear", nil, gentext.Result{})

	got := engine.Decide(context.Background(), "Bangalore", "Kolkata")

	if got.RecommendedMode != transport.ModeAir {
		t.Errorf("recommended = %q, want air (scores %v)", got.RecommendedMode, got.Scores)
	}
}

func TestDecide_ShortHaulPrefersRoad(t *testing.T) {
	engine := newTestEngine(350, "clear", nil, gentext.Result{})

	got := engine.Decide(context.Background(), "Bangalore", "Mumbai")

	if got.RecommendedMode != transport.ModeRoad {
		t.Errorf("recommended = %q, want road (scores %v)", got.RecommendedMode, got.Scores)
	}
}

func TestDecide_StormyLongHaulPenalizesAir(t *testing.T) {
	engine := newTestEngine(1560, "thunderstorm", nil, gentext.Result{})

	got := engine.Decide(context.Background(), "Bangalore", "Kolkata")

	// Air: +3 base, -2 per stormy endpoint = -1. Rail stays at +1.
	if got.RecommendedMode != transport.ModeRail {
		t.Errorf("recommended = %q, want rail (scores %v)", got.RecommendedMode, got.Scores)
	}
}

func TestDecide_NewsPenaltyHitsSurfaceModes(t *testing.T) {
	headlines := map[string][]news.Headline{
		"bangalore": {{Title: "Truckers strike blocks highway"}},
		"kolkata":   {{Title: "Traffic delays after rain"}},
	}
	engine := newTestEngine(350, "clear", headlines, gentext.Result{})

	got := engine.Decide(context.Background(), "Bangalore", "Kolkata")

	// strike+blocked headline scores 2, traffic headline scores 1.
	if got.NewsPenalty != 3 {
		t.Errorf("news penalty = %d, want 3", got.NewsPenalty)
	}
	// Road: +2 - 3 = -1, rail: +1 - 3 = -2, air: 0, sea: 0.
	// Air wins the tie with sea by fixed order... air before sea.
	if got.RecommendedMode != transport.ModeAir {
		t.Errorf("recommended = %q, want air (scores %v)", got.RecommendedMode, got.Scores)
	}
}

func TestDecide_TieBreakOrder(t *testing.T) {
	// No distance bonus paths produce an all-zero tie, but news penalties
	// can level road and rail; verify earlier mode keeps the tie.
	engine := newTestEngine(350, "clear", map[string][]news.Headline{
		"bangalore": {{Title: "Minor traffic"}},
	}, gentext.Result{})

	got := engine.Decide(context.Background(), "Bangalore", "Mumbai")

	// Road: 2-1=1, rail: 1-1=0, air: 0, sea: 0. Road still wins.
	if got.RecommendedMode != transport.ModeRoad {
		t.Errorf("recommended = %q, want road", got.RecommendedMode)
	}
}

func TestDecide_UnresolvedPlacesUseStaticDistance(t *testing.T) {
	engine := newTestEngine(9999, "clear", nil, gentext.Result{})

	got := engine.Decide(context.Background(), "Nowhereville", "Atlantis")

	if got.DistanceMethod != distance.MethodStatic {
		t.Errorf("method = %q, want static fallback", got.DistanceMethod)
	}
	if got.OriginWeather != nil || got.DestinationWeather != nil {
		t.Error("weather must be skipped for unresolved endpoints")
	}
	// Static 500 km is short-haul.
	if got.RecommendedMode != transport.ModeRoad {
		t.Errorf("recommended = %q, want road", got.RecommendedMode)
	}
}

func TestDecide_GeneratedJustification(t *testing.T) {
	engine := newTestEngine(350, "clear", nil, gentext.Result{OK: true, Text: "Road is fastest and cheapest here."})

	got := engine.Decide(context.Background(), "Bangalore", "Mumbai")

	if !got.Generated {
		t.Fatal("expected generated justification")
	}
	if got.Justification != "Road is fastest and cheapest here." {
		t.Errorf("justification = %q", got.Justification)
	}
}

func TestDecide_FallbackJustification(t *testing.T) {
	engine := newTestEngine(350, "rain", nil, gentext.Result{OK: false, Text: "ignored"})

	got := engine.Decide(context.Background(), "Bangalore", "Mumbai")

	if got.Generated {
		t.Fatal("expected fallback justification")
	}
	// Rain at both endpoints: road 2-1-1=0, rail 1, so rail wins.
	if got.RecommendedMode != transport.ModeRail {
		t.Fatalf("recommended = %q, want rail (scores %v)", got.RecommendedMode, got.Scores)
	}
	want := "Recommend RAIL (score 1.0). Origin weather: rain. Destination weather: rain."
	if got.Justification != want {
		t.Errorf("justification = %q, want %q", got.Justification, want)
	}
}
