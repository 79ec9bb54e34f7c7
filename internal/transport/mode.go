// Package transport defines the transport modes shared by the distance,
// decision, quote, and shipment packages.
package transport

import (
	"fmt"
	"strings"
)

// Mode is a supported transport mode.
type Mode string

const (
	ModeRoad Mode = "road"
	ModeRail Mode = "rail"
	ModeAir  Mode = "air"
	ModeSea  Mode = "sea"
)

// Modes lists all supported modes in fixed priority order. The order doubles
// as the tie-break order when comparing scored modes.
func Modes() []Mode {
	return []Mode{ModeRoad, ModeRail, ModeAir, ModeSea}
}

// ParseMode normalizes and validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeRoad:
		return ModeRoad, nil
	case ModeRail:
		return ModeRail, nil
	case ModeAir:
		return ModeAir, nil
	case ModeSea:
		return ModeSea, nil
	default:
		return "", fmt.Errorf("unknown transport mode %q", s)
	}
}

// SpeedKmh returns the average cruising speed used for duration estimates.
func (m Mode) SpeedKmh() float64 {
	switch m {
	case ModeRail:
		return 80
	case ModeAir:
		return 500
	case ModeSea:
		return 25
	default:
		return 60 // road
	}
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeRoad, ModeRail, ModeAir, ModeSea:
		return true
	}
	return false
}
