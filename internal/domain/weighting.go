package domain

import "math"

// ISO 2631 Wf (motion sickness) weighting parameters. Corner frequencies are
// specified in Hz and converted to rad/s on use.
const (
	wfHighPassHz = 0.08
	wfLowPassHz  = 0.63

	wfTransitionZeroHz = 3.5
	wfTransitionPoleHz = 0.25
	wfTransitionQ      = 0.86

	wfStepZeroHz = 0.06
	wfStepPoleHz = 0.10
	wfStepZeroQ  = 0.80
	wfStepPoleQ  = 0.80
)

// butterworthQ is the damping of the band-limiting stages, 1/√2.
var butterworthQ = 1 / math.Sqrt2

func hzToRad(f float64) float64 { return 2 * math.Pi * f }

// WfSquaredMagnitude evaluates |Wf(iω)|², the squared magnitude of the
// ISO 2631 vertical motion-sickness weighting at angular frequency ω. The
// filter is a cascade of four s-domain stages evaluated with explicit complex
// arithmetic: a two-pole high pass, a two-pole low pass, an
// acceleration-velocity transition, and an upward step.
func WfSquaredMagnitude(omega float64) float64 {
	s := cimag(omega)
	h := highPass(s).
		mul(lowPass(s)).
		mul(transition(s)).
		mul(step(s))
	mag := h.abs()
	return mag * mag
}

// highPass is s²/(s² + (ω1/Q)s + ω1²) with corner wfHighPassHz.
func highPass(s cnum) cnum {
	w1 := hzToRad(wfHighPassHz)
	s2 := s.mul(s)
	den := s2.add(s.scale(w1 / butterworthQ)).add(creal(w1 * w1))
	return s2.div(den)
}

// lowPass is ω2²/(s² + (ω2/Q)s + ω2²) with corner wfLowPassHz.
func lowPass(s cnum) cnum {
	w2 := hzToRad(wfLowPassHz)
	den := s.mul(s).add(s.scale(w2 / butterworthQ)).add(creal(w2 * w2))
	return creal(w2 * w2).div(den)
}

// transition is (1 + s/ω3) / ((s/ω4)² + s/(Q4·ω4) + 1): a zero at the
// transition frequency feeding a damped pole pair.
func transition(s cnum) cnum {
	w3 := hzToRad(wfTransitionZeroHz)
	w4 := hzToRad(wfTransitionPoleHz)
	num := creal(1).add(s.scale(1 / w3))
	sn := s.scale(1 / w4)
	den := sn.mul(sn).add(s.scale(1 / (wfTransitionQ * w4))).add(creal(1))
	return num.div(den)
}

// step is ((s/ω5)² + s/(Q5·ω5) + 1) / ((s/ω6)² + s/(Q6·ω6) + 1): unity gain
// at DC stepping up to (ω6/ω5)² above both corners.
func step(s cnum) cnum {
	w5 := hzToRad(wfStepZeroHz)
	w6 := hzToRad(wfStepPoleHz)
	zn := s.scale(1 / w5)
	num := zn.mul(zn).add(s.scale(1 / (wfStepZeroQ * w5))).add(creal(1))
	pn := s.scale(1 / w6)
	den := pn.mul(pn).add(s.scale(1 / (wfStepPoleQ * w6))).add(creal(1))
	return num.div(den)
}
