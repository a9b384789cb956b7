package domain

import "time"

// WaveState is one sea-state observation: significant wave height in metres
// and peak period in seconds.
type WaveState struct {
	Hs        float64   `json:"hs"`
	Tp        float64   `json:"tp"`
	Timestamp time.Time `json:"ts"`
}

// VesselState is one vessel observation: speed in knots and true heading
// relative to the dominant wave direction, in degrees.
type VesselState struct {
	Speed     float64   `json:"speed"`
	Heading   float64   `json:"heading"`
	Timestamp time.Time `json:"ts"`
}

// SpectrumCurve is a one-sided wave-elevation spectral density sampled on an
// ascending angular-frequency grid. Frequencies and Density are always the
// same length.
type SpectrumCurve struct {
	Frequencies []float64 `json:"frequencies"` // rad/s
	Density     []float64 `json:"density"`     // m²/(rad/s)
}

// MotionPSD holds aligned heave, pitch, and heave-pitch cross spectral
// densities on a shared frequency grid. The same shape is reused for the
// displacement, acceleration, and frequency-weighted stages.
type MotionPSD struct {
	Heave []float64 `json:"heave"`
	Pitch []float64 `json:"pitch"`
	Cross []float64 `json:"cross"`
}

// PositionPSD is the vertical-motion PSD evaluated at one longitudinal hull
// position (metres from midships, positive forward).
type PositionPSD struct {
	Position float64   `json:"position"`
	Density  []float64 `json:"density"`
}

// DoseResult is the MSDV at one hull position, with its comfort band.
type DoseResult struct {
	Position float64 `json:"position"`
	MSDV     float64 `json:"msdv"` // m/s^1.5
	Band     string  `json:"band"`
}
