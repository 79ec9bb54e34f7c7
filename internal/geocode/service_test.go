package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sujaypr/SCM/internal/cache"
	"github.com/sujaypr/SCM/internal/geo"
	"github.com/sujaypr/SCM/internal/ratelimit"
)

type fakeProvider struct {
	results []Result
	err     error
	calls   int
}

func (f *fakeProvider) Search(_ context.Context, _ string) ([]Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func newTestService(p Provider) *Service {
	return NewService(ServiceConfig{
		Provider:        p,
		Logger:          zerolog.Nop(),
		Cache:           cache.New(),
		Limiter:         ratelimit.New(),
		MinCallInterval: time.Nanosecond, // effectively unlimited in tests
	})
}

func TestService_ResolveSuccess(t *testing.T) {
	provider := &fakeProvider{
		results: []Result{{
			Coord:       &geo.Coordinate{Lat: 12.9716, Lon: 77.5946},
			DisplayName: "Bengaluru, Karnataka, India",
		}},
	}
	svc := newTestService(provider)

	got := svc.Resolve(context.Background(), "Bangalore")

	if !got.Resolved() {
		t.Fatal("expected resolved result")
	}
	if got.Coord.Lat != 12.9716 || got.Coord.Lon != 77.5946 {
		t.Errorf("unexpected coordinate: %v", got.Coord)
	}
	if got.Place != "bangalore" {
		t.Errorf("expected normalized place, got %q", got.Place)
	}
}

func TestService_ResolveCachesResults(t *testing.T) {
	provider := &fakeProvider{
		results: []Result{{Coord: &geo.Coordinate{Lat: 19.076, Lon: 72.8777}}},
	}
	svc := newTestService(provider)

	svc.Resolve(context.Background(), "Mumbai")
	svc.Resolve(context.Background(), "mumbai")
	svc.Resolve(context.Background(), "  MUMBAI  ")

	if provider.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls)
	}
}

func TestService_ResolveProviderErrorIsSoft(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	svc := newTestService(provider)

	got := svc.Resolve(context.Background(), "Chennai")

	if got.Resolved() {
		t.Error("expected unresolved result on provider error")
	}
}

func TestService_ResolveMissIsNotCached(t *testing.T) {
	provider := &fakeProvider{results: nil}
	svc := newTestService(provider)

	svc.Resolve(context.Background(), "Atlantis")
	svc.Resolve(context.Background(), "Atlantis")

	if provider.calls != 2 {
		t.Errorf("misses must not be cached; expected 2 provider calls, got %d", provider.calls)
	}
}

func TestService_ResolveEmptyPlace(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(provider)

	got := svc.Resolve(context.Background(), "   ")

	if got.Resolved() {
		t.Error("expected unresolved result for blank place")
	}
	if provider.calls != 0 {
		t.Errorf("blank place must not reach the provider, got %d calls", provider.calls)
	}
}

func TestService_RateLimiterSkipsUpstream(t *testing.T) {
	provider := &fakeProvider{
		results: []Result{{Coord: &geo.Coordinate{Lat: 28.6139, Lon: 77.209}}},
	}
	svc := NewService(ServiceConfig{
		Provider:        provider,
		Logger:          zerolog.Nop(),
		Cache:           cache.New(),
		Limiter:         ratelimit.New(),
		MinCallInterval: time.Hour,
	})

	first := svc.Resolve(context.Background(), "Delhi")
	second := svc.Resolve(context.Background(), "Pune") // different key, limiter denies

	if !first.Resolved() {
		t.Fatal("first lookup should resolve")
	}
	if second.Resolved() {
		t.Error("rate-limited lookup must return unresolved, not block")
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls)
	}

	// The cached place is still served while the limiter is closed.
	cached := svc.Resolve(context.Background(), "Delhi")
	if !cached.Resolved() {
		t.Error("cache hits must bypass the rate limiter")
	}
}
