package risk

import (
	"testing"

	"github.com/sujaypr/SCM/internal/weather"
)

func ptr(v float64) *float64 { return &v }

func obs(condition string, wind, visibility *float64) *weather.Observation {
	return &weather.Observation{Condition: condition, WindSpeed: wind, VisibilityKm: visibility}
}

func TestAssess_EmptyIsUnknown(t *testing.T) {
	got := Assess(nil)

	if got.Level != LevelUnknown {
		t.Errorf("level = %q, want unknown", got.Level)
	}
	if got.DelayFactor != 1.0 {
		t.Errorf("delay factor = %f, want 1.0", got.DelayFactor)
	}
	if got.Score != 0 {
		t.Errorf("score = %d, want 0", got.Score)
	}
}

func TestAssess_ClearRouteIsLow(t *testing.T) {
	observations := []*weather.Observation{
		obs("clear", ptr(3), ptr(10)),
		obs("clear", ptr(4), ptr(9)),
	}

	got := Assess(observations)

	if got.Level != LevelLow {
		t.Errorf("level = %q, want low", got.Level)
	}
	if got.Score != 0 {
		t.Errorf("score = %d, want 0", got.Score)
	}
	if got.DelayFactor != 1.0 {
		t.Errorf("delay factor = %f, want 1.0", got.DelayFactor)
	}
}

func TestAssess_Scoring(t *testing.T) {
	tests := []struct {
		name      string
		obs       []*weather.Observation
		wantScore int
		wantDelay float64
		wantLevel Level
	}{
		{
			name:      "rain scores 2",
			obs:       []*weather.Observation{obs("rain", nil, nil)},
			wantScore: 2,
			wantDelay: 1.15,
			wantLevel: LevelLow,
		},
		{
			name:      "thunderstorm matches storm",
			obs:       []*weather.Observation{obs("thunderstorm", nil, nil)},
			wantScore: 2,
			wantDelay: 1.15,
			wantLevel: LevelLow,
		},
		{
			name:      "clouds score 1",
			obs:       []*weather.Observation{obs("clouds", nil, nil)},
			wantScore: 1,
			wantDelay: 1.05,
			wantLevel: LevelLow,
		},
		{
			name:      "high wind adds 1",
			obs:       []*weather.Observation{obs("clear", ptr(12), nil)},
			wantScore: 1,
			wantDelay: 1.10,
			wantLevel: LevelLow,
		},
		{
			name:      "low visibility adds 2",
			obs:       []*weather.Observation{obs("clear", nil, ptr(2))},
			wantScore: 2,
			wantDelay: 1.20,
			wantLevel: LevelLow,
		},
		{
			name: "storm with wind and low visibility is medium",
			obs: []*weather.Observation{
				obs("storm", ptr(15), ptr(3)),
			},
			wantScore: 5,
			wantDelay: 1.45,
			wantLevel: LevelMedium,
		},
		{
			name: "two bad samples reach high",
			obs: []*weather.Observation{
				obs("snow", ptr(11), ptr(4)),
				obs("rain", nil, ptr(1)),
			},
			wantScore: 9,
			wantDelay: 1.80,
			wantLevel: LevelHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assess(tt.obs)
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if diff := got.DelayFactor - tt.wantDelay; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("delay factor = %f, want %f", got.DelayFactor, tt.wantDelay)
			}
			if got.Level != tt.wantLevel {
				t.Errorf("level = %q, want %q", got.Level, tt.wantLevel)
			}
		})
	}
}

func TestAssess_DelayFactorCapped(t *testing.T) {
	observations := make([]*weather.Observation, 10)
	for i := range observations {
		observations[i] = obs("storm", ptr(20), ptr(1))
	}

	got := Assess(observations)

	if got.DelayFactor != 2.0 {
		t.Errorf("delay factor = %f, want capped at 2.0", got.DelayFactor)
	}
	if got.Level != LevelHigh {
		t.Errorf("level = %q, want high", got.Level)
	}
}

func TestAssess_MonotonicUnderStorm(t *testing.T) {
	bases := [][]*weather.Observation{
		nil,
		{obs("clear", nil, nil)},
		{obs("clouds", ptr(12), nil), obs("rain", nil, ptr(2))},
	}

	for _, base := range bases {
		before := Assess(base)
		after := Assess(append(append([]*weather.Observation{}, base...), obs("storm", nil, nil)))

		if after.Score < before.Score {
			t.Errorf("adding a storm decreased score: %d -> %d", before.Score, after.Score)
		}
		if after.DelayFactor < before.DelayFactor {
			t.Errorf("adding a storm decreased delay factor: %f -> %f", before.DelayFactor, after.DelayFactor)
		}
	}
}

func TestAssess_NilObservationsSkipped(t *testing.T) {
	got := Assess([]*weather.Observation{nil, obs("clear", nil, nil), nil})

	if got.Level != LevelLow {
		t.Errorf("level = %q, want low", got.Level)
	}
}
