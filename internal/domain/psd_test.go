package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplacement_Formulas(t *testing.T) {
	engine := NewPSDEngine()

	density := []float64{2.0, 4.0}
	heaveAmp := []float64{1.0, 0.5}
	heavePhase := []float64{0, 90}
	pitchAmp := []float64{0.1, 0.2}
	pitchPhase := []float64{0, 90}

	psd, err := engine.Displacement(density, heaveAmp, heavePhase, pitchAmp, pitchPhase)
	require.NoError(t, err)
	require.Empty(t, engine.Faults())

	approx := cmpopts.EquateApprox(0, 1e-12)
	assert.Empty(t, cmp.Diff([]float64{2.0, 1.0}, psd.Heave, approx))
	assert.Empty(t, cmp.Diff([]float64{0.02, 0.16}, psd.Pitch, approx))
	// Zero phase difference in both bins: cross = A_h·A_p·S.
	assert.Empty(t, cmp.Diff([]float64{0.2, 0.4}, psd.Cross, approx))
}

func TestDisplacement_CrossUsesPhaseDifference(t *testing.T) {
	engine := NewPSDEngine()

	// 90° out of phase: cross term vanishes. 180°: fully negative.
	psd, err := engine.Displacement(
		[]float64{1, 1},
		[]float64{1, 1}, []float64{90, 180},
		[]float64{1, 1}, []float64{0, 0},
	)
	require.NoError(t, err)
	assert.InDelta(t, 0, psd.Cross[0], 1e-12)
	assert.InDelta(t, -1, psd.Cross[1], 1e-12)
}

func TestDisplacement_LengthMismatch(t *testing.T) {
	engine := NewPSDEngine()
	_, err := engine.Displacement([]float64{1, 2}, []float64{1}, []float64{0, 0}, []float64{1, 1}, []float64{0, 0})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAcceleration_ScalingAsymmetry(t *testing.T) {
	engine := NewPSDEngine()

	freq := []float64{0.5, 1.0, 2.0}
	ones := []float64{1, 1, 1}
	disp := MotionPSD{Heave: ones, Pitch: ones, Cross: ones}

	acc := engine.Acceleration(freq, disp)

	for i, w := range freq {
		// Heave carries the 2π factor; pitch and cross use the angular
		// frequency directly. The asymmetry is part of the reference
		// formulation and must not drift.
		assert.InEpsilon(t, math.Pow(2*math.Pi*w, 4), acc.Heave[i], 1e-12)
		assert.InEpsilon(t, math.Pow(w, 4), acc.Pitch[i], 1e-12)
		assert.InEpsilon(t, math.Pow(w, 4), acc.Cross[i], 1e-12)
	}
	// Per-bin ratio between heave and pitch scaling is exactly (2π)⁴.
	for i := range freq {
		assert.InEpsilon(t, math.Pow(2*math.Pi, 4), acc.Heave[i]/acc.Pitch[i], 1e-12)
	}
}

func TestWeight_AppliesWfPointwise(t *testing.T) {
	engine := NewPSDEngine()

	freq := []float64{0.3, 1.0, 3.0}
	ones := []float64{1, 1, 1}
	weighted := engine.Weight(freq, MotionPSD{Heave: ones, Pitch: ones, Cross: ones})

	for i, w := range freq {
		wf := WfSquaredMagnitude(w)
		assert.InEpsilon(t, wf, weighted.Heave[i], 1e-12)
		assert.InEpsilon(t, wf, weighted.Pitch[i], 1e-12)
		assert.InEpsilon(t, wf, weighted.Cross[i], 1e-12)
	}
}

func TestWfSquaredMagnitude_Shape(t *testing.T) {
	// The weighting emphasizes the low-frequency motion-sickness band: it
	// rolls off toward DC through the high pass and toward high frequency
	// through the low pass and the transition pole.
	peakBand := WfSquaredMagnitude(1.0) // ~0.16 Hz
	lowTail := WfSquaredMagnitude(0.05)
	highTail := WfSquaredMagnitude(6.0)

	assert.Greater(t, peakBand, lowTail)
	assert.Greater(t, peakBand, highTail)

	for _, w := range []float64{0.01, 0.1, 0.5, 1, 2, 4, 6} {
		v := WfSquaredMagnitude(w)
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "non-finite weighting at %g", w)
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestVertical_MidshipsReducesToHeave(t *testing.T) {
	engine := NewPSDEngine()

	weighted := MotionPSD{
		Heave: []float64{1.5, 2.5, 0.5},
		Pitch: []float64{0.2, 0.3, 0.1},
		Cross: []float64{-0.1, 0.05, 0.2},
	}
	out := engine.Vertical([]float64{0}, weighted)

	require.Len(t, out, 1)
	assert.Equal(t, 0.0, out[0].Position)
	assert.Empty(t, cmp.Diff(weighted.Heave, out[0].Density))
}

func TestVertical_LeverArmSuperposition(t *testing.T) {
	engine := NewPSDEngine()

	weighted := MotionPSD{
		Heave: []float64{1.0},
		Pitch: []float64{0.01},
		Cross: []float64{0.05},
	}
	out := engine.Vertical([]float64{-20, 10}, weighted)

	require.Len(t, out, 2)
	// S_yy = heave + L²·pitch + 2L·cross
	assert.InDelta(t, 1.0+400*0.01+2*(-20)*0.05, out[0].Density[0], 1e-12)
	assert.InDelta(t, 1.0+100*0.01+2*10*0.05, out[1].Density[0], 1e-12)
}

func TestPSDEngine_NonFiniteBinsAreFaults(t *testing.T) {
	engine := NewPSDEngine()

	density := []float64{1, math.NaN(), 1}
	ones := []float64{1, 1, 1}
	zeros := []float64{0, 0, 0}

	psd, err := engine.Displacement(density, ones, zeros, ones, zeros)
	require.NoError(t, err)

	// The poisoned bin is zeroed in all three components and the run
	// continues.
	assert.Equal(t, 0.0, psd.Heave[1])
	assert.Equal(t, 0.0, psd.Pitch[1])
	assert.Equal(t, 0.0, psd.Cross[1])
	assert.Equal(t, 1.0, psd.Heave[0])

	faults := engine.Faults()
	require.Len(t, faults, 3)
	for _, f := range faults {
		assert.Equal(t, 1, f.Bin)
	}

	// Downstream stages see clean values and add no further faults.
	acc := engine.Acceleration([]float64{0.5, 1.0, 1.5}, psd)
	engine.Weight([]float64{0.5, 1.0, 1.5}, acc)
	assert.Len(t, engine.Faults(), 3)
}

func TestComplexArithmetic(t *testing.T) {
	a := cnum{re: 3, im: 4}
	b := cnum{re: 1, im: -2}

	sum := a.add(b)
	assert.Equal(t, cnum{re: 4, im: 2}, sum)

	prod := a.mul(b)
	assert.Equal(t, cnum{re: 11, im: -2}, prod)

	quot := prod.div(b)
	assert.InDelta(t, a.re, quot.re, 1e-12)
	assert.InDelta(t, a.im, quot.im, 1e-12)

	assert.InDelta(t, 5, a.abs(), 1e-12)
	assert.Equal(t, cnum{re: 6, im: 8}, a.scale(2))
}
