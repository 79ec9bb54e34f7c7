package gentext

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type fakeCompleter struct {
	text string
	err  error
}

func (f *fakeCompleter) Complete(_ context.Context, _ string, _ int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeCompleter) Name() string { return "fake" }

func TestGateway_GenerateSuccess(t *testing.T) {
	gw := NewGateway(GatewayConfig{
		Completer: &fakeCompleter{text: "  Road is the best option today. "},
		Logger:    zerolog.Nop(),
	})

	got := gw.Generate(context.Background(), "explain transport mode", 0)

	if !got.OK {
		t.Fatal("expected OK result")
	}
	if got.Text != "Road is the best option today." {
		t.Errorf("text = %q, want trimmed completion", got.Text)
	}
}

func TestGateway_GenerateProviderError(t *testing.T) {
	gw := NewGateway(GatewayConfig{
		Completer: &fakeCompleter{err: errors.New("timeout")},
		Logger:    zerolog.Nop(),
	})

	got := gw.Generate(context.Background(), "explain transport mode", 64)

	if got.OK {
		t.Fatal("expected degraded result")
	}
	if got.Text == "" {
		t.Error("fallback text must not be empty")
	}
}

func TestGateway_GenerateEmptyOutput(t *testing.T) {
	gw := NewGateway(GatewayConfig{
		Completer: &fakeCompleter{text: "   "},
		Logger:    zerolog.Nop(),
	})

	got := gw.Generate(context.Background(), "compare provider quotes", 64)

	if got.OK {
		t.Fatal("whitespace output must degrade")
	}
	if !strings.Contains(got.Text, "ranked") {
		t.Errorf("fallback should be keyed to the quote prompt, got %q", got.Text)
	}
}

func TestGateway_GenerateWithoutCompleter(t *testing.T) {
	gw := NewGateway(GatewayConfig{Logger: zerolog.Nop()})

	got := gw.Generate(context.Background(), "anything", 64)

	if got.OK {
		t.Fatal("expected degraded result without a completer")
	}
	if got.Text == "" {
		t.Error("fallback text must not be empty")
	}
}

func TestFallbackText_Deterministic(t *testing.T) {
	prompts := []string{
		"recommend a transport mode",
		"summarize provider quotes",
		"describe route weather risk",
		"unrelated",
	}

	for _, p := range prompts {
		if fallbackText(p) != fallbackText(p) {
			t.Errorf("fallback for %q is not deterministic", p)
		}
	}
}
