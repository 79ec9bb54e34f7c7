// Package gentext is the single integration point for generative text.
// Callers receive an explicit ok/text result instead of sniffing output
// strings for failure markers, and the gateway always has something to say:
// a deterministic template sentence stands in when the upstream service is
// absent, slow, or returns unusable output.
package gentext

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMaxTokens bounds completions when the caller does not specify.
const DefaultMaxTokens = 120

// Result is the outcome of a generation request. OK is true only when the
// upstream service produced the text; false means Text holds the
// deterministic fallback.
type Result struct {
	OK   bool
	Text string
}

// Completer defines the interface for text-generation providers.
type Completer interface {
	// Complete generates text for a prompt within a token budget.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)

	// Name returns the provider name for logging.
	Name() string
}

// GatewayConfig holds configuration for the gateway.
type GatewayConfig struct {
	// Completer is the text-generation provider. Optional; when nil every
	// request gets the fallback.
	Completer Completer

	// Logger for gateway operations.
	Logger zerolog.Logger

	// Timeout bounds each generation call (default: 6 seconds). Text is
	// best-effort enrichment, so the budget is deliberately tight.
	Timeout time.Duration
}

// Gateway wraps the text-generation service with timeout and fallback.
type Gateway struct {
	completer Completer
	logger    zerolog.Logger
	timeout   time.Duration
}

// NewGateway creates a new generative-text gateway.
func NewGateway(cfg GatewayConfig) *Gateway {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 6 * time.Second
	}

	return &Gateway{
		completer: cfg.Completer,
		logger:    cfg.Logger,
		timeout:   timeout,
	}
}

// Generate requests text for a prompt. It never returns an error and never
// blocks past the configured timeout. No retries: a failed attempt goes
// straight to the fallback.
func (g *Gateway) Generate(ctx context.Context, prompt string, maxTokens int) Result {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	if g.completer == nil {
		return Result{Text: fallbackText(prompt)}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.completer.Complete(ctx, prompt, maxTokens)
	if err != nil {
		g.logger.Warn().Err(err).
			Str("provider", g.completer.Name()).
			Msg("text generation failed, using fallback")
		return Result{Text: fallbackText(prompt)}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		g.logger.Debug().
			Str("provider", g.completer.Name()).
			Msg("text generation returned empty output")
		return Result{Text: fallbackText(prompt)}
	}

	return Result{OK: true, Text: text}
}

// fallbackText synthesizes a deterministic sentence keyed on prompt topic.
func fallbackText(prompt string) string {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "transport") || strings.Contains(p, "mode"):
		return "Automated summary unavailable; the recommendation is based on distance, weather and recent news signals."
	case strings.Contains(p, "provider") || strings.Contains(p, "quote"):
		return "Automated summary unavailable; providers are ranked by estimated delivery time, then cost."
	case strings.Contains(p, "risk") || strings.Contains(p, "weather"):
		return "Automated summary unavailable; route risk reflects sampled weather conditions along the route."
	default:
		return "Automated summary unavailable."
	}
}
