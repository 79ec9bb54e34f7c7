// Package decision scores transport modes for a lane using distance,
// weather, and news signals, and produces a natural-language justification
// with a deterministic fallback.
package decision

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/distance"
	"github.com/sujaypr/SCM/internal/gentext"
	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/internal/geocode"
	"github.com/sujaypr/SCM/internal/news"
	"github.com/sujaypr/SCM/internal/transport"
	"github.com/sujaypr/SCM/internal/weather"
)

// Scoring weights. Heuristic constants with no derivation beyond observed
// behavior; kept as named values so they can be tuned deliberately.
const (
	// LongHaulThresholdKm splits short-haul from long-haul base scoring.
	LongHaulThresholdKm = 1000.0

	// Long-haul base: air dominates, rail is the backup.
	LongHaulAirBonus  = 3.0
	LongHaulRailBonus = 1.0

	// Short-haul base: road dominates, rail is the backup.
	ShortHaulRoadBonus = 2.0
	ShortHaulRailBonus = 1.0

	// AirWeatherPenalty applies to air per endpoint with adverse weather.
	AirWeatherPenalty = 2.0

	// Per-endpoint weather severity.
	severeWeatherPenalty = 2.0
	minorWeatherPenalty  = 1.0
)

var (
	severeWeatherConditions = []string{"storm", "rain", "snow", "thunder"}
	minorWeatherConditions  = []string{"cloud", "mist"}
)

// Geocoder resolves place names.
type Geocoder interface {
	Resolve(ctx context.Context, place string) geocode.Result
}

// DistanceResolver estimates lane distance.
type DistanceResolver interface {
	Resolve(ctx context.Context, origin, destination *geo.Coordinate, mode transport.Mode) distance.RouteDistance
}

// WeatherService fetches current conditions.
type WeatherService interface {
	Current(ctx context.Context, coord geo.Coordinate) *weather.Observation
}

// NewsService fetches recent headlines.
type NewsService interface {
	Headlines(ctx context.Context, place string) []news.Headline
}

// TextGateway produces natural-language summaries.
type TextGateway interface {
	Generate(ctx context.Context, prompt string, maxTokens int) gentext.Result
}

// ModeScore is the score for one transport mode.
type ModeScore struct {
	Mode  transport.Mode
	Score float64
}

// Decision is the full outcome of a transport-mode decision.
type Decision struct {
	// Origin and Destination are the normalized place names.
	Origin      string
	Destination string

	// DistanceKm and DistanceMethod record the lane estimate used for
	// base scoring.
	DistanceKm     float64
	DistanceMethod distance.Method

	// Scores holds all four modes in fixed priority order.
	Scores []ModeScore

	// RecommendedMode is the arg-max of Scores, ties broken by the fixed
	// order road > rail > air > sea.
	RecommendedMode transport.Mode

	// Justification is a 1-2 sentence explanation. Generated reports
	// whether it came from the text service or the deterministic fallback.
	Justification string
	Generated     bool

	// OriginWeather and DestinationWeather are the endpoint observations
	// used for penalties. Nil when the endpoint could not be geocoded.
	OriginWeather      *weather.Observation
	DestinationWeather *weather.Observation

	// NewsPenalty is the summed disruption penalty applied to road and rail.
	NewsPenalty int
}

// EngineConfig holds the engine's collaborators.
type EngineConfig struct {
	Geocoder Geocoder
	Distance DistanceResolver
	Weather  WeatherService
	News     NewsService
	Gateway  TextGateway
	Logger   zerolog.Logger
}

// Engine scores transport modes. Decide never fails: every collaborator
// degrades to a neutral signal.
type Engine struct {
	geocoder Geocoder
	distance DistanceResolver
	weather  WeatherService
	news     NewsService
	gateway  TextGateway
	logger   zerolog.Logger
}

// NewEngine creates a new decision engine.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		geocoder: cfg.Geocoder,
		distance: cfg.Distance,
		weather:  cfg.Weather,
		news:     cfg.News,
		gateway:  cfg.Gateway,
		logger:   cfg.Logger,
	}
}

// Decide scores all four transport modes for a lane and recommends one.
func (e *Engine) Decide(ctx context.Context, origin, destination string) Decision {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	originRes := e.geocoder.Resolve(ctx, origin)
	destRes := e.geocoder.Resolve(ctx, destination)

	dist := e.distance.Resolve(ctx, originRes.Coord, destRes.Coord, transport.ModeRoad)

	scores := map[transport.Mode]float64{
		transport.ModeRoad: 0,
		transport.ModeRail: 0,
		transport.ModeAir:  0,
		transport.ModeSea:  0,
	}

	// Base score from lane length.
	if dist.DistanceKm >= LongHaulThresholdKm {
		scores[transport.ModeAir] += LongHaulAirBonus
		scores[transport.ModeRail] += LongHaulRailBonus
	} else {
		scores[transport.ModeRoad] += ShortHaulRoadBonus
		scores[transport.ModeRail] += ShortHaulRailBonus
	}

	// Weather penalties per endpoint.
	var originObs, destObs *weather.Observation
	if originRes.Coord != nil {
		originObs = e.weather.Current(ctx, *originRes.Coord)
	}
	if destRes.Coord != nil {
		destObs = e.weather.Current(ctx, *destRes.Coord)
	}
	for _, obs := range []*weather.Observation{originObs, destObs} {
		if obs == nil {
			continue
		}
		if p := weatherPenalty(obs.Condition); p > 0 {
			scores[transport.ModeAir] -= AirWeatherPenalty
			scores[transport.ModeRoad] -= p - 1
		}
	}

	// News penalties hit the surface modes.
	newsPenalty := news.Penalty(e.news.Headlines(ctx, origin)) +
		news.Penalty(e.news.Headlines(ctx, destination))
	scores[transport.ModeRoad] -= float64(newsPenalty)
	scores[transport.ModeRail] -= float64(newsPenalty)

	// Arg-max with the fixed tie-break order: strictly greater wins, so
	// earlier modes keep ties.
	recommended := transport.ModeRoad
	ordered := make([]ModeScore, 0, 4)
	for _, mode := range transport.Modes() {
		ordered = append(ordered, ModeScore{Mode: mode, Score: scores[mode]})
		if scores[mode] > scores[recommended] {
			recommended = mode
		}
	}

	d := Decision{
		Origin:             origin,
		Destination:        destination,
		DistanceKm:         dist.DistanceKm,
		DistanceMethod:     dist.Method,
		Scores:             ordered,
		RecommendedMode:    recommended,
		OriginWeather:      originObs,
		DestinationWeather: destObs,
		NewsPenalty:        newsPenalty,
	}
	d.Justification, d.Generated = e.justify(ctx, d)

	return d
}

// justify asks the text gateway for an explanation, falling back to a
// deterministic sentence when the gateway degrades.
func (e *Engine) justify(ctx context.Context, d Decision) (string, bool) {
	prompt := fmt.Sprintf(
		"In 1-2 sentences, justify choosing %s transport for a %.0f km shipment from %s to %s. Mode scores: %s. Origin weather: %s. Destination weather: %s.",
		d.RecommendedMode, d.DistanceKm, d.Origin, d.Destination,
		formatScores(d.Scores), conditionOf(d.OriginWeather), conditionOf(d.DestinationWeather),
	)

	result := e.gateway.Generate(ctx, prompt, gentext.DefaultMaxTokens)
	if result.OK {
		return result.Text, true
	}

	fallback := fmt.Sprintf("Recommend %s (score %.1f). Origin weather: %s. Destination weather: %s.",
		strings.ToUpper(string(d.RecommendedMode)),
		scoreOf(d.Scores, d.RecommendedMode),
		conditionOf(d.OriginWeather),
		conditionOf(d.DestinationWeather),
	)
	return fallback, false
}

// weatherPenalty grades a condition string: 2 severe, 1 minor, 0 benign.
func weatherPenalty(condition string) float64 {
	c := strings.ToLower(condition)
	for _, k := range severeWeatherConditions {
		if strings.Contains(c, k) {
			return severeWeatherPenalty
		}
	}
	for _, k := range minorWeatherConditions {
		if strings.Contains(c, k) {
			return minorWeatherPenalty
		}
	}
	return 0
}

func conditionOf(obs *weather.Observation) string {
	if obs == nil || obs.Condition == "" {
		return "unknown"
	}
	return obs.Condition
}

func scoreOf(scores []ModeScore, mode transport.Mode) float64 {
	for _, s := range scores {
		if s.Mode == mode {
			return s.Score
		}
	}
	return 0
}

func formatScores(scores []ModeScore) string {
	parts := make([]string, 0, len(scores))
	for _, s := range scores {
		parts = append(parts, fmt.Sprintf("%s=%.1f", s.Mode, s.Score))
	}
	return strings.Join(parts, ", ")
}
