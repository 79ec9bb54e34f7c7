// Package quotes runs a fixed set of carrier adapters over a lane and ranks
// the resulting quotes by delivery time, then cost.
package quotes

import (
	"context"
	"fmt"
	"sort"
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

// Comparison is the ranked outcome for a lane.
type Comparison struct {
	// Origin and Destination are the requested place names.
	Origin      string
	Destination string

	// DistanceKm and DistanceMethod record the lane estimate the quotes
	// are based on.
	DistanceKm     float64
	DistanceMethod distance.Method

	// Quotes is sorted ascending by (EstimatedTimeHours, EstimatedCost).
	Quotes []Quote

	// Summary is a one-sentence comparison. Generated reports whether it
	// came from the text service or the deterministic fallback.
	Summary   string
	Generated bool
}

// ComparatorConfig holds the comparator's collaborators.
type ComparatorConfig struct {
	Geocoder Geocoder
	Distance DistanceResolver
	Weather  WeatherService
	News     NewsService
	Gateway  TextGateway

	// Adapters is the carrier set (default: DefaultAdapters).
	Adapters []Adapter

	Logger zerolog.Logger
}

// Comparator produces ranked carrier quotes for a lane.
type Comparator struct {
	geocoder Geocoder
	distance DistanceResolver
	weather  WeatherService
	news     NewsService
	gateway  TextGateway
	adapters []Adapter
	logger   zerolog.Logger
}

// NewComparator creates a new quote comparator.
func NewComparator(cfg ComparatorConfig) *Comparator {
	adapters := cfg.Adapters
	if len(adapters) == 0 {
		adapters = DefaultAdapters()
	}

	return &Comparator{
		geocoder: cfg.Geocoder,
		distance: cfg.Distance,
		weather:  cfg.Weather,
		news:     cfg.News,
		gateway:  cfg.Gateway,
		adapters: adapters,
		logger:   cfg.Logger,
	}
}

// Compare quotes every registered carrier for a lane and ranks the results.
// It never fails: unresolvable lanes fall back to the static distance.
func (c *Comparator) Compare(ctx context.Context, origin, destination string) Comparison {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	originRes := c.geocoder.Resolve(ctx, origin)
	destRes := c.geocoder.Resolve(ctx, destination)
	dist := c.distance.Resolve(ctx, originRes.Coord, destRes.Coord, transport.ModeRoad)

	notes := c.laneNotes(ctx, origin, destination, destRes.Coord)

	result := make([]Quote, 0, len(c.adapters))
	for _, a := range c.adapters {
		q := a.Quote(origin, destination, dist.DistanceKm)
		q.Notes = notes
		result = append(result, q)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].EstimatedTimeHours != result[j].EstimatedTimeHours {
			return result[i].EstimatedTimeHours < result[j].EstimatedTimeHours
		}
		return result[i].EstimatedCost < result[j].EstimatedCost
	})

	comparison := Comparison{
		Origin:         origin,
		Destination:    destination,
		DistanceKm:     dist.DistanceKm,
		DistanceMethod: dist.Method,
		Quotes:         result,
	}
	comparison.Summary, comparison.Generated = c.summarize(ctx, comparison)

	return comparison
}

// laneNotes combines destination weather and disruption headline counts.
// Informational only; notes never influence ranking.
func (c *Comparator) laneNotes(ctx context.Context, origin, destination string, destCoord *geo.Coordinate) string {
	condition := "unknown"
	if destCoord != nil {
		if obs := c.weather.Current(ctx, *destCoord); obs != nil {
			condition = obs.Condition
		}
	}

	headlineCount := len(c.news.Headlines(ctx, origin)) + len(c.news.Headlines(ctx, destination))

	return fmt.Sprintf("destination weather: %s; recent headlines: %d", condition, headlineCount)
}

// summarize asks the text gateway for a comparison sentence, defaulting to
// naming the cheapest carrier.
func (c *Comparator) summarize(ctx context.Context, cmp Comparison) (string, bool) {
	if len(cmp.Quotes) == 0 {
		return "No provider quotes available.", false
	}

	prompt := fmt.Sprintf(
		"In one sentence, summarize these provider quotes for shipping %s to %s (%.0f km): %s.",
		cmp.Origin, cmp.Destination, cmp.DistanceKm, formatQuotes(cmp.Quotes),
	)

	result := c.gateway.Generate(ctx, prompt, gentext.DefaultMaxTokens)
	if result.OK {
		return result.Text, true
	}

	best := cmp.Quotes[0]
	for _, q := range cmp.Quotes[1:] {
		if q.EstimatedCost < best.EstimatedCost ||
			(q.EstimatedCost == best.EstimatedCost && q.EstimatedTimeHours < best.EstimatedTimeHours) {
			best = q
		}
	}

	fallback := fmt.Sprintf("Best value is %s (%s) at an estimated cost of %.0f over %.1f hours.",
		best.Provider, best.Mode, best.EstimatedCost, best.EstimatedTimeHours)
	return fallback, false
}

func formatQuotes(qs []Quote) string {
	parts := make([]string, 0, len(qs))
	for _, q := range qs {
		parts = append(parts, fmt.Sprintf("%s (%s): %.1fh, %.0f", q.Provider, q.Mode, q.EstimatedTimeHours, q.EstimatedCost))
	}
	return strings.Join(parts, "; ")
}
