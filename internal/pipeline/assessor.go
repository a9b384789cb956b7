package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/seakeeping-advisor/internal/domain"
	"github.com/couchcryptid/seakeeping-advisor/internal/observability"
	"github.com/couchcryptid/seakeeping-advisor/internal/rao"
)

// SeakeepingAssessor implements Assessor by chaining the domain spectral
// stages: JONSWAP synthesis, RAO lookup, PSD derivation, Wf weighting,
// per-position superposition, and MSDV integration. It holds no per-run
// state; every Assess call is a pure function of its inputs and the immutable
// RAO cache.
type SeakeepingAssessor struct {
	store     *rao.Store
	positions []float64
	gamma     float64
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewAssessor creates a SeakeepingAssessor evaluating the given hull
// positions.
func NewAssessor(store *rao.Store, positions []float64, gamma float64, logger *slog.Logger, metrics *observability.Metrics) *SeakeepingAssessor {
	return &SeakeepingAssessor{
		store:     store,
		positions: positions,
		gamma:     gamma,
		logger:    logger,
		metrics:   metrics,
	}
}

func (a *SeakeepingAssessor) Assess(_ context.Context, wave domain.WaveState, vessel domain.VesselState) (domain.Assessment, error) {
	curve, cal, err := domain.Synthesize(wave.Hs, wave.Tp, a.gamma)
	if err != nil {
		return domain.Assessment{}, err
	}
	a.metrics.CalibrationIterations.Observe(float64(cal.Iterations))
	if !cal.Converged {
		a.metrics.CalibrationNonConvergence.Inc()
		a.logger.Warn("alpha calibration exhausted iteration budget, proceeding with best estimate",
			"hs", wave.Hs, "tp", wave.Tp, "alpha", cal.Alpha)
	}

	heave, err := a.store.Load(rao.DOFHeave, vessel.Speed, vessel.Heading)
	if err != nil {
		return domain.Assessment{}, err
	}
	pitch, err := a.store.Load(rao.DOFPitch, vessel.Speed, vessel.Heading)
	if err != nil {
		return domain.Assessment{}, err
	}

	// The heave grid is the master grid for the run; the pitch response and
	// the wave spectrum are interpolated onto it.
	grid := heave.Frequencies
	if err := domain.ValidateGrid(grid); err != nil {
		return domain.Assessment{}, err
	}

	pitchAmp := rao.Interpolate(pitch.Frequencies, pitch.Amplitude, grid)
	pitchPhase := rao.Interpolate(pitch.Frequencies, pitch.Phase, grid)
	density := rao.Interpolate(curve.Frequencies, curve.Density, grid)

	engine := domain.NewPSDEngine()
	disp, err := engine.Displacement(density, heave.Amplitude, heave.Phase, pitchAmp, pitchPhase)
	if err != nil {
		return domain.Assessment{}, err
	}
	accel := engine.Acceleration(grid, disp)
	weighted := engine.Weight(grid, accel)
	vertical := engine.Vertical(a.positions, weighted)
	doses := domain.MSDV(grid, vertical)

	faults := engine.Faults()
	if len(faults) > 0 {
		a.metrics.ComputationFaults.Add(float64(len(faults)))
		a.logger.Warn("non-finite bins zeroed during run",
			"count", len(faults), "first", faults[0].String())
	}

	return domain.Assessment{
		Wave:          wave,
		Vessel:        vessel,
		SpeedBucket:   heave.Speed,
		HeadingBucket: heave.Heading,
		Calibration:   cal,
		Frequencies:   grid,
		Weighted:      weighted,
		Vertical:      vertical,
		Doses:         doses,
		FaultBins:     len(faults),
		ComputedAt:    domain.NewAssessmentTimestamp(),
	}, nil
}
