package domain

import (
	"fmt"
	"math"
)

// PSDEngine derives motion power spectral densities from a wave spectrum and
// a pair of response functions, all sampled on one shared frequency grid. An
// engine is cheap and single-use: create one per run, call the stages in
// order (Displacement → Acceleration → Weight → Vertical), then collect any
// per-bin computation faults with Faults.
//
// A non-finite value at any stage is confined to its frequency bin: the bin
// is zeroed, a fault is recorded, and the run continues. The grid must have
// been checked with ValidateGrid before the engine runs.
type PSDEngine struct {
	faults []ComputationFault
}

func NewPSDEngine() *PSDEngine {
	return &PSDEngine{}
}

// Displacement computes heave, pitch, and cross displacement PSDs:
//
//	heave[i] = A_h²·S,  pitch[i] = A_p²·S
//	cross[i] = A_h·A_p·cos(φ_h−φ_p)·S
//
// with amplitudes from the response functions, phases in degrees, and S the
// wave spectral density on the same grid.
func (e *PSDEngine) Displacement(density, heaveAmp, heavePhase, pitchAmp, pitchPhase []float64) (MotionPSD, error) {
	n := len(density)
	for name, s := range map[string][]float64{
		"heave amplitude": heaveAmp, "heave phase": heavePhase,
		"pitch amplitude": pitchAmp, "pitch phase": pitchPhase,
	} {
		if len(s) != n {
			return MotionPSD{}, &ValidationError{
				Field:  name,
				Reason: fmt.Sprintf("length %d does not match spectrum length %d", len(s), n),
			}
		}
	}

	psd := MotionPSD{
		Heave: make([]float64, n),
		Pitch: make([]float64, n),
		Cross: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		phaseDiff := (heavePhase[i] - pitchPhase[i]) * math.Pi / 180
		psd.Heave[i] = heaveAmp[i] * heaveAmp[i] * density[i]
		psd.Pitch[i] = pitchAmp[i] * pitchAmp[i] * density[i]
		psd.Cross[i] = heaveAmp[i] * pitchAmp[i] * math.Cos(phaseDiff) * density[i]
	}
	e.clean("displacement", &psd)
	return psd, nil
}

// Acceleration scales displacement PSDs to acceleration PSDs. Heave is scaled
// by (2πω)⁴; pitch and cross by ω⁴ on the same angular frequencies. The
// asymmetry is inherited from the reference formulation and kept for
// numerical parity with the validated response datasets.
func (e *PSDEngine) Acceleration(freq []float64, disp MotionPSD) MotionPSD {
	n := len(freq)
	acc := MotionPSD{
		Heave: make([]float64, n),
		Pitch: make([]float64, n),
		Cross: make([]float64, n),
	}
	for i, w := range freq {
		heaveScale := math.Pow(2*math.Pi*w, 4)
		angScale := math.Pow(w, 4)
		acc.Heave[i] = heaveScale * disp.Heave[i]
		acc.Pitch[i] = angScale * disp.Pitch[i]
		acc.Cross[i] = angScale * disp.Cross[i]
	}
	e.clean("acceleration", &acc)
	return acc
}

// Weight applies the ISO 2631 Wf weighting pointwise: each bin of every
// component is multiplied by |Wf(iω)|².
func (e *PSDEngine) Weight(freq []float64, accel MotionPSD) MotionPSD {
	n := len(freq)
	weighted := MotionPSD{
		Heave: make([]float64, n),
		Pitch: make([]float64, n),
		Cross: make([]float64, n),
	}
	for i, w := range freq {
		wf := WfSquaredMagnitude(w)
		weighted.Heave[i] = wf * accel.Heave[i]
		weighted.Pitch[i] = wf * accel.Pitch[i]
		weighted.Cross[i] = wf * accel.Cross[i]
	}
	e.clean("weighting", &weighted)
	return weighted
}

// Vertical superposes the weighted components into a vertical-motion PSD at
// each hull position L (metres from midships):
//
//	S_yy(ω) = S_heave(ω) + L²·S_pitch(ω) + 2L·S_cross(ω)
//
// At L=0 this reduces to the weighted heave PSD exactly.
func (e *PSDEngine) Vertical(positions []float64, weighted MotionPSD) []PositionPSD {
	out := make([]PositionPSD, len(positions))
	for p, l := range positions {
		density := make([]float64, len(weighted.Heave))
		for i := range density {
			density[i] = weighted.Heave[i] + l*l*weighted.Pitch[i] + 2*l*weighted.Cross[i]
		}
		out[p] = PositionPSD{Position: l, Density: density}
		e.cleanSeries(fmt.Sprintf("vertical L=%g", l), out[p].Density)
	}
	return out
}

// Faults returns the computation faults recorded so far, in stage order.
func (e *PSDEngine) Faults() []ComputationFault {
	return e.faults
}

func (e *PSDEngine) clean(stage string, psd *MotionPSD) {
	e.cleanSeries(stage+" heave", psd.Heave)
	e.cleanSeries(stage+" pitch", psd.Pitch)
	e.cleanSeries(stage+" cross", psd.Cross)
}

// cleanSeries zeroes non-finite bins in place and records one fault per bin.
func (e *PSDEngine) cleanSeries(stage string, vals []float64) {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			vals[i] = 0
			e.faults = append(e.faults, ComputationFault{Stage: stage, Bin: i})
		}
	}
}
