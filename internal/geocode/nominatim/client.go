// Package nominatim implements a geocoding provider backed by the
// OpenStreetMap Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/internal/geocode"
	"github.com/sujaypr/SCM/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "nominatim"

	// DefaultBaseURL is the Nominatim API base URL.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// defaultUserAgent identifies this service to Nominatim, which
	// rejects requests without a meaningful User-Agent.
	defaultUserAgent = "scm-route-intelligence/1.0"
)

// ClientConfig holds configuration for the Nominatim client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to the public
	// Nominatim instance).
	BaseURL string

	// CountryCodes restricts the search to the given comma-separated
	// ISO 3166-1 alpha-2 codes (optional, defaults to "in").
	CountryCodes string

	// UserAgent overrides the default User-Agent header (optional).
	UserAgent string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a single-attempt resilient client so a slow geocoder
	// degrades to the haversine tier instead of blocking.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Nominatim geocoding API client.
type Client struct {
	baseURL      string
	countryCodes string
	userAgent    string
	httpClient   *resilience.Client
	logger       zerolog.Logger
}

// NewClient creates a new Nominatim client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	countryCodes := cfg.CountryCodes
	if countryCodes == "" {
		countryCodes = "in"
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.SingleAttemptConfig(ProviderName))
	}

	return &Client{
		baseURL:      baseURL,
		countryCodes: countryCodes,
		userAgent:    userAgent,
		httpClient:   httpClient,
		logger:       cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Search resolves a place name via the Nominatim search endpoint.
func (c *Client) Search(ctx context.Context, place string) ([]geocode.Result, error) {
	query := url.Values{}
	query.Set("q", place)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("countrycodes", c.countryCodes)

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var matches []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	results := make([]geocode.Result, 0, len(matches))
	for _, m := range matches {
		coord, convErr := m.coordinate()
		if convErr != nil {
			c.logger.Warn().Err(convErr).
				Str("display_name", m.DisplayName).
				Msg("skipping malformed geocoder match")
			continue
		}
		results = append(results, geocode.Result{
			Coord:       coord,
			DisplayName: m.DisplayName,
		})
	}

	return results, nil
}

// searchResult mirrors the Nominatim search response. Coordinates arrive as
// JSON strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (r *searchResult) coordinate() (*geo.Coordinate, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing lat %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing lon %q: %w", r.Lon, err)
	}

	coord := geo.Coordinate{Lat: lat, Lon: lon}
	if err := coord.Validate(); err != nil {
		return nil, err
	}
	return &coord, nil
}
