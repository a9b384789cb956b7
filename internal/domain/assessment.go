package domain

import "time"

// Assessment is one completed pipeline run: the input snapshot it was
// computed from, the calibrated spectrum parameters, the frequency-weighted
// PSD series, and the per-position MSDV results. It is the full output
// contract for the presentation layer and the sink topic.
type Assessment struct {
	Wave   WaveState   `json:"wave"`
	Vessel VesselState `json:"vessel"`

	// Buckets actually used after nearest-match resolution.
	SpeedBucket   float64 `json:"speed_bucket"`   // knots
	HeadingBucket float64 `json:"heading_bucket"` // degrees, folded into [0,180]

	Calibration Calibration `json:"calibration"`

	// Weighted PSD series on the response-function frequency grid.
	Frequencies []float64 `json:"frequencies"` // rad/s
	Weighted    MotionPSD `json:"weighted"`

	Vertical []PositionPSD `json:"vertical"`
	Doses    []DoseResult  `json:"doses"`

	// FaultBins counts frequency bins zeroed due to non-finite intermediate
	// values during this run.
	FaultBins int `json:"fault_bins"`

	ComputedAt time.Time `json:"computed_at"`
}

// NewAssessmentTimestamp returns the current time from the package clock.
func NewAssessmentTimestamp() time.Time {
	return clock.Now()
}

// WorstDose returns the highest MSDV across positions, or 0 when no
// positions were evaluated. Used for logging and the summary header.
func (a *Assessment) WorstDose() DoseResult {
	var worst DoseResult
	for _, d := range a.Doses {
		if d.MSDV >= worst.MSDV {
			worst = d
		}
	}
	return worst
}
