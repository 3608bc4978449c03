package common

// DefaultRatio is the number of design units per physics unit.
const DefaultRatio = 30.0

// Ratio converts design (pixel) units into physics units. Every shape build
// and body assembly in a process must use the same value, otherwise fixtures
// and body positions drift apart.
var Ratio = DefaultRatio

// SetRatio replaces the process-wide ratio. Non-positive values are ignored.
func SetRatio(r float64) {
	if r <= 0 {
		return
	}
	Ratio = r
}

func ToPhysics(v, ratio float64) float64 {
	return v / ratio
}

func ToDesign(v, ratio float64) float64 {
	return v * ratio
}
