package domain

import "math"

// Comfort band thresholds in m/s^1.5. Project-specific simplification of the
// ISO 2631-1 motion-sickness annex for bridge display.
const (
	bandLowMax      = 4.0
	bandElevatedMax = 8.7
	bandHighMax     = 15.0
)

// Trapezoid integrates y over the ascending, possibly non-uniform grid x
// using the trapezoidal rule. Fewer than two points integrate to zero.
func Trapezoid(x, y []float64) float64 {
	var sum float64
	for i := 1; i < len(x) && i < len(y); i++ {
		sum += 0.5 * (y[i] + y[i-1]) * (x[i] - x[i-1])
	}
	return sum
}

// MSDV integrates each position's weighted vertical-motion PSD into a Motion
// Sickness Dose Value: sqrt of the integral, clamped at zero first so that
// numerical cancellation near-zero cannot produce a NaN. No exposure-time
// multiplier is applied; the dose is on the exposure basis implied by the
// weighting. A degenerate grid (fewer than two points) yields dose 0 at every
// position rather than an error.
func MSDV(freq []float64, weighted []PositionPSD) []DoseResult {
	results := make([]DoseResult, len(weighted))
	for i, p := range weighted {
		integral := Trapezoid(freq, p.Density)
		if integral < 0 {
			integral = 0
		}
		dose := math.Sqrt(integral)
		results[i] = DoseResult{
			Position: p.Position,
			MSDV:     dose,
			Band:     ComfortBand(dose),
		}
	}
	return results
}

// ComfortBand labels a dose for bridge display.
func ComfortBand(dose float64) string {
	switch {
	case dose < bandLowMax:
		return "low"
	case dose < bandElevatedMax:
		return "elevated"
	case dose < bandHighMax:
		return "high"
	default:
		return "severe"
	}
}
