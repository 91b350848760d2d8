package util

import "math"

// Clamp limits value to the closed range [min, max].
func Clamp(value float64, min float64, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

// Channel converts a 0-255 colour channel value to a byte, rounding and
// clamping out of range values.
func Channel(value float64) uint8 {
	return uint8(Clamp(math.Round(value), 0, 255))
}
