package bloch

import "math"

// AnglePair is the slider-facing form of a state, in degrees.
type AnglePair struct {
	Theta float64 // [0,180]
	Phi   float64 // [0,360)
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func Degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// WrapDegrees folds an angle into [0,360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	// Mod of a tiny negative value can round back up to exactly 360.
	if deg >= 360.0 {
		deg = 0
	}
	return deg
}

// FormatThetaForSlider snaps theta to an integer degree in [0,180].
func FormatThetaForSlider(theta float64) int {
	return int(math.Max(0, math.Min(180, math.Round(theta))))
}

// FormatPhiForSlider snaps phi to an integer degree in [0,360).
func FormatPhiForSlider(phi float64) int {
	return int(WrapDegrees(math.Round(phi)))
}

// Snap applies both slider formatters.
func (a AnglePair) Snap() (theta, phi int) {
	return FormatThetaForSlider(a.Theta), FormatPhiForSlider(a.Phi)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
