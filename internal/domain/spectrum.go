package domain

import (
	"math"
)

// JONSWAP synthesis constants.
const (
	DefaultGamma = 3.3  // peak-enhancement factor
	gravity      = 9.81 // m/s²

	// Fixed synthesis grid: 0.01..6.00 rad/s in 0.01 steps.
	gridStep = 0.01
	gridLen  = 600

	// Alpha calibration.
	initialAlpha         = 0.0081 // Phillips constant, open-ocean default
	maxCalibrationIters  = 50
	calibrationTolerance = 1e-3
)

// Calibration describes the outcome of the alpha fixed-point iteration.
// Converged=false is not fatal: Alpha is still the best estimate found, but
// the spectrum's implied Hs may be off by more than the tolerance and the
// caller should surface the degradation (log + counter).
type Calibration struct {
	Alpha      float64 `json:"alpha"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
}

// SpectrumGrid returns a fresh copy of the fixed synthesis grid.
func SpectrumGrid() []float64 {
	freq := make([]float64, gridLen)
	for i := range freq {
		freq[i] = float64(i+1) * gridStep
	}
	return freq
}

// PeakFrequency converts a peak period in seconds to the spectral peak
// angular frequency in rad/s.
func PeakFrequency(tp float64) float64 {
	return 2 * math.Pi / tp
}

// CalibrateAlpha iterates the Phillips constant until the synthesized
// spectrum's zeroth moment reproduces hs, i.e. 4·sqrt(m0) ≈ hs within a
// relative tolerance of 1e-3. The spectral density is linear in alpha, so the
// Hs estimate scales with sqrt(alpha) and the ratio update converges
// geometrically; 50 iterations is a hard bound, not an expected count.
func CalibrateAlpha(hs, tp, gamma float64) (Calibration, error) {
	if err := validateSeaState(hs, tp); err != nil {
		return Calibration{}, err
	}

	freq := SpectrumGrid()
	alpha := initialAlpha
	for i := 1; i <= maxCalibrationIters; i++ {
		density := jonswapDensity(freq, alpha, gamma, tp)
		m0 := Trapezoid(freq, density)
		hsEst := 4 * math.Sqrt(m0)
		ratio := hs / hsEst
		if math.Abs(ratio-1) < calibrationTolerance {
			return Calibration{Alpha: alpha, Iterations: i, Converged: true}, nil
		}
		alpha *= ratio
	}
	return Calibration{Alpha: alpha, Iterations: maxCalibrationIters, Converged: false}, nil
}

// Synthesize builds a calibrated JONSWAP wave-elevation spectrum for the
// given sea state on the fixed grid. The returned Calibration reports whether
// alpha converged; the curve is usable either way.
func Synthesize(hs, tp, gamma float64) (SpectrumCurve, Calibration, error) {
	cal, err := CalibrateAlpha(hs, tp, gamma)
	if err != nil {
		return SpectrumCurve{}, Calibration{}, err
	}

	freq := SpectrumGrid()
	return SpectrumCurve{
		Frequencies: freq,
		Density:     jonswapDensity(freq, cal.Alpha, gamma, tp),
	}, cal, nil
}

// jonswapDensity evaluates the JONSWAP formula at every grid point:
//
//	S(ω) = α·g²·ω⁻⁵·exp(−1.25·(ωp/ω)⁴)·γ^r
//	r    = exp(−(ω−ωp)²/(2·σ²·ωp²)),  σ = 0.07 for ω ≤ ωp, 0.09 above
func jonswapDensity(freq []float64, alpha, gamma, tp float64) []float64 {
	wp := PeakFrequency(tp)
	density := make([]float64, len(freq))
	for i, w := range freq {
		sigma := 0.07
		if w > wp {
			sigma = 0.09
		}
		r := math.Exp(-((w - wp) * (w - wp)) / (2 * sigma * sigma * wp * wp))
		pm := alpha * gravity * gravity * math.Pow(w, -5) * math.Exp(-1.25*math.Pow(wp/w, 4))
		density[i] = pm * math.Pow(gamma, r)
	}
	return density
}

func validateSeaState(hs, tp float64) error {
	if !(hs > 0) || math.IsInf(hs, 0) {
		return &ValidationError{Field: "Hs", Reason: "significant wave height must be positive and finite"}
	}
	if !(tp > 0) || math.IsInf(tp, 0) {
		return &ValidationError{Field: "Tp", Reason: "peak period must be positive and finite"}
	}
	return nil
}
