package climate

import "math"

// Defaults used when a day has no observed weather.
const (
	DefaultTempMin   = 22.0
	DefaultTempMax   = 36.0
	DefaultWindSpeed = 2.0
	DefaultRHMin     = 45.0
	DefaultRHMax     = 75.0
	DefaultHumidity  = 60.0
)

// HumidityBand turns a daily average relative humidity into the rh_min/rh_max
// pair the equation expects, clamped to [30, 90].
func HumidityBand(avg float64) (rhMin, rhMax float64) {
	return math.Max(avg-15, 30), math.Min(avg+15, 90)
}
