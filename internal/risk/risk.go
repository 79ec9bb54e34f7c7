// Package risk converts weather samples along a route into a qualitative
// risk level and a delivery delay multiplier. Assess is pure: the same
// observations always produce the same assessment.
package risk

import (
	"strings"

	"github.com/sujaypr/SCM/internal/weather"
)

// Level is the qualitative route risk classification.
type Level string

const (
	LevelLow     Level = "low"
	LevelMedium  Level = "medium"
	LevelHigh    Level = "high"
	LevelUnknown Level = "unknown"
)

// Scoring weights. Heuristic constants kept explicit so they can be tuned
// without digging through the accumulation loop.
const (
	severeConditionScore = 2
	severeConditionDelay = 0.15

	minorConditionScore = 1
	minorConditionDelay = 0.05

	windThresholdMs = 10.0
	windScore       = 1
	windDelay       = 0.10

	visibilityThresholdKm = 5.0
	visibilityScore       = 2
	visibilityDelay       = 0.20

	highScoreThreshold   = 6
	mediumScoreThreshold = 3

	maxDelayFactor = 2.0
)

var (
	severeConditions = []string{"rain", "storm", "snow"}
	minorConditions  = []string{"cloud", "fog"}
)

// Assessment summarizes adverse weather along a route.
type Assessment struct {
	// Level is the qualitative classification. Unknown only when no
	// observations were supplied.
	Level Level

	// DelayFactor multiplies the base delivery duration. Always in
	// [1.0, 2.0].
	DelayFactor float64

	// Score is the accumulated risk score. Always >= 0.
	Score int
}

// Assess scores a sequence of weather observations.
func Assess(observations []*weather.Observation) Assessment {
	if len(observations) == 0 {
		return Assessment{Level: LevelUnknown, DelayFactor: 1.0}
	}

	score := 0
	delay := 1.0

	for _, obs := range observations {
		if obs == nil {
			continue
		}
		condition := strings.ToLower(obs.Condition)

		switch {
		case containsAny(condition, severeConditions):
			score += severeConditionScore
			delay += severeConditionDelay
		case containsAny(condition, minorConditions):
			score += minorConditionScore
			delay += minorConditionDelay
		}

		if obs.WindSpeed != nil && *obs.WindSpeed > windThresholdMs {
			score += windScore
			delay += windDelay
		}
		if obs.VisibilityKm != nil && *obs.VisibilityKm < visibilityThresholdKm {
			score += visibilityScore
			delay += visibilityDelay
		}
	}

	if delay > maxDelayFactor {
		delay = maxDelayFactor
	}

	return Assessment{
		Level:       classify(score),
		DelayFactor: delay,
		Score:       score,
	}
}

func classify(score int) Level {
	switch {
	case score >= highScoreThreshold:
		return LevelHigh
	case score >= mediumScoreThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
