package common

import "math"

const (
	// TS is the tile size in pixels.
	TS = 8
	// HTS is half a tile.
	HTS = TS / 2

	TicksPerSecond = 60

	// BaseSpeed is the pixel distance a mover running at 100% covers per tick.
	BaseSpeed = 1.25
)

// Sec converts seconds to ticks.
func Sec(seconds float64) int {
	return int(math.Round(TicksPerSecond * seconds))
}

// Speed converts a fraction of the base speed to pixels per tick.
func Speed(fraction float64) float64 {
	return fraction * BaseSpeed
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
