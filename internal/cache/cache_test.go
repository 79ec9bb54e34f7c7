package cache

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New()

	c.Set("geocode:mumbai", 42, time.Minute)

	got, ok := c.Get("geocode:mumbai")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.(int) != 42 {
		t.Errorf("expected 42, got %v", got)
	}
}

func TestCache_MissOnAbsentKey(t *testing.T) {
	c := New()

	if _, ok := c.Get("nope"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestCache_ExpiryWithFakeClock(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	c := NewWithClock(func() time.Time { return now })

	c.Set("weather:12.97,77.59", "clear", 60*time.Second)

	// Still fresh just before the deadline.
	now = now.Add(59 * time.Second)
	if _, ok := c.Get("weather:12.97,77.59"); !ok {
		t.Fatal("expected hit before TTL elapsed")
	}

	// Expired entries are removed on read.
	now = now.Add(2 * time.Second)
	if _, ok := c.Get("weather:12.97,77.59"); ok {
		t.Fatal("expected miss after TTL elapsed")
	}
	if c.Len() != 0 {
		t.Errorf("expected lazy eviction to remove the entry, got %d entries", c.Len())
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := New()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Invalidate()

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestKey_Deterministic(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{name: "lowercases place names", parts: []string{"Mumbai"}, want: "geocode:mumbai"},
		{name: "trims whitespace", parts: []string{"  Delhi "}, want: "geocode:delhi"},
		{name: "joins multiple parts", parts: []string{"Bangalore", "Mumbai"}, want: "geocode:bangalore:mumbai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key("geocode", tt.parts...); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}
