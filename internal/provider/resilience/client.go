package resilience

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"

	"github.com/sujaypr/SCM/internal/telemetry"
)

// ErrCircuitOpen is returned when the circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// ClientConfig holds configuration for the resilient HTTP client.
type ClientConfig struct {
	// Name identifies this client for breaker naming and health tracking.
	Name string

	// Timeout bounds each individual HTTP call.
	// Default: 8 seconds
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the first call.
	// Zero means a single attempt: on failure the caller's fallback tier
	// takes over instead of a retry.
	MaxRetries uint64

	// InitialInterval is the initial retry backoff interval.
	// Default: 100ms
	InitialInterval time.Duration

	// MaxInterval is the maximum retry backoff interval.
	// Default: 5 seconds
	MaxInterval time.Duration

	// Breaker is the circuit breaker configuration.
	// If nil, uses DefaultBreakerConfig.
	Breaker *BreakerConfig

	// Registry receives success/failure reports for health endpoints.
	// Optional.
	Registry *Registry

	// Metrics records per-provider request durations and outcomes.
	// Optional.
	Metrics *telemetry.ProviderMetrics
}

// SingleAttemptConfig returns the configuration used by tiered
// route-intelligence clients: one attempt, bounded timeout, no retries.
func SingleAttemptConfig(name string) ClientConfig {
	breaker := DefaultBreakerConfig(name)
	return ClientConfig{
		Name:    name,
		Timeout: 8 * time.Second,
		Breaker: &breaker,
	}
}

// DefaultClientConfig returns defaults for non-tiered callers such as the
// cache pre-warm worker, where a couple of retries are acceptable.
func DefaultClientConfig(name string) ClientConfig {
	cfg := SingleAttemptConfig(name)
	cfg.MaxRetries = 2
	cfg.InitialInterval = 100 * time.Millisecond
	cfg.MaxInterval = 5 * time.Second
	return cfg
}

// Client is an HTTP client with circuit breaker protection and optional
// exponential-backoff retries.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	registry   *Registry
	metrics    *telemetry.ProviderMetrics
	config     ClientConfig
}

// NewClient creates a new resilient HTTP client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	breakerCfg := DefaultBreakerConfig(cfg.Name)
	if cfg.Breaker != nil {
		breakerCfg = *cfg.Breaker
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    NewBreaker[*http.Response](breakerCfg),
		registry:   cfg.Registry,
		metrics:    cfg.Metrics,
		config:     cfg,
	}

	if cfg.Registry != nil {
		cfg.Registry.Register(cfg.Name, c)
	}

	return c
}

// Do executes an HTTP request through the circuit breaker. With MaxRetries
// configured, transient failures (network errors, 5xx) are retried with
// exponential backoff; otherwise the first failure is final.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.DoWithContext(req.Context(), req)
}

// DoWithContext executes an HTTP request with the given context.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0 // attempts are bounded by WithMaxRetries

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	var lastResp *http.Response

	operation := func() error {
		// 5xx responses surface as errors so they count against the breaker
		// and remain eligible for retry when retries are configured.
		resp, err := c.breaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller closes
			reqClone := req.Clone(ctx)
			r, doErr := c.httpClient.Do(reqClone)
			if doErr != nil {
				return nil, doErr
			}
			if r.StatusCode >= 500 {
				return r, &ServerError{StatusCode: r.StatusCode}
			}
			return r, nil
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				// A retry supersedes the previous 5xx; release its
				// connection before holding on to the new response.
				discardResponse(lastResp)
				lastResp = resp
			}
			return err
		}

		discardResponse(lastResp)
		lastResp = resp
		return nil
	}

	err := backoff.Retry(operation, policy)
	if c.metrics != nil {
		c.metrics.RecordRequest(c.config.Name, req.Method+" "+req.URL.Path, time.Since(start), err)
	}
	if err != nil {
		c.recordFailure(err)
		// A 5xx response that exhausted its attempts is still returned so
		// callers can inspect the status.
		if lastResp != nil {
			return lastResp, nil
		}
		return nil, err
	}

	c.recordSuccess()
	return lastResp, nil
}

func (c *Client) recordSuccess() {
	if c.registry != nil {
		c.registry.RecordSuccess(c.config.Name)
	}
}

func (c *Client) recordFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(c.config.Name, err)
	}
}

// discardResponse drains and closes a response body so the underlying
// connection can be reused. Nil responses are ignored.
func discardResponse(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// ServerError represents an HTTP 5xx server error.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}

// BreakerState returns the current state of the circuit breaker.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// BreakerCounts returns the current counts of the circuit breaker.
func (c *Client) BreakerCounts() gobreaker.Counts {
	return c.breaker.Counts()
}
