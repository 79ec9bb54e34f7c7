// Package gnews implements a news provider backed by the GNews search API.
package gnews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/news"
	"github.com/sujaypr/SCM/internal/provider/resilience"
)

const (
	// ProviderName identifies this news provider.
	ProviderName = "gnews"

	// DefaultBaseURL is the GNews API base URL.
	DefaultBaseURL = "https://gnews.io/api/v4"
)

// ClientConfig holds configuration for the GNews client.
type ClientConfig struct {
	// APIKey is the GNews API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to GNews).
	BaseURL string

	// Country restricts results to one country (optional, defaults to "in").
	Country string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a single-attempt resilient client.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a GNews API client.
type Client struct {
	apiKey     string
	baseURL    string
	country    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new GNews client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	country := cfg.Country
	if country == "" {
		country = "in"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.SingleAttemptConfig(ProviderName))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		country:    country,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Search returns recent headlines matching a query.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]news.Headline, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("lang", "en")
	params.Set("country", c.country)
	params.Set("max", strconv.Itoa(pageSize))
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var gnResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&gnResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	headlines := make([]news.Headline, 0, len(gnResp.Articles))
	for _, a := range gnResp.Articles {
		headlines = append(headlines, news.Headline{
			Title:       a.Title,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}

	return headlines, nil
}

// GNews API response structure.

type searchResponse struct {
	Articles []struct {
		Title       string    `json:"title"`
		PublishedAt time.Time `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}
