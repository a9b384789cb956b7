package pipeline_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/seakeeping-advisor/internal/domain"
	"github.com/couchcryptid/seakeeping-advisor/internal/pipeline"
	"github.com/couchcryptid/seakeeping-advisor/internal/rao"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assessorTestTable = `#HEADING 0 30 60 90 120 150 180
w(r/s) a0 a30 a60 a90 a120 a150 a180 p0 p30 p60 p90 p120 p150 p180
0.20 1.00 1.00 1.00 1.00 1.00 1.00 1.00 0 0 0 0 0 0 0
0.40 0.98 0.97 0.96 0.94 0.92 0.90 0.88 4 5 6 8 10 12 14
0.60 0.92 0.90 0.87 0.82 0.78 0.74 0.70 10 12 15 20 24 28 32
0.90 0.75 0.70 0.66 0.58 0.52 0.46 0.42 25 30 36 44 52 60 66
1.40 0.40 0.36 0.32 0.25 0.21 0.17 0.14 60 70 80 95 110 120 130
2.00 0.12 0.10 0.08 0.06 0.05 0.04 0.03 110 125 140 160 175 -170 -160
`

func newTestStore(t *testing.T) *rao.Store {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"heave_5kn.txt", "pitch_5kn.txt", "heave_15kn.txt", "pitch_15kn.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(assessorTestTable), 0o644))
	}
	store, err := rao.NewStore(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store
}

func TestSeakeepingAssessor_Assess(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	asr := pipeline.NewAssessor(newTestStore(t), []float64{-40, 0, 40}, domain.DefaultGamma,
		slog.Default(), newTestMetrics())

	wave := domain.WaveState{Hs: 3.0, Tp: 9.0}
	vessel := domain.VesselState{Speed: 13, Heading: 210}

	a, err := asr.Assess(context.Background(), wave, vessel)
	require.NoError(t, err)

	assert.Equal(t, wave, a.Wave)
	assert.Equal(t, 15.0, a.SpeedBucket)
	assert.Equal(t, 150.0, a.HeadingBucket) // 210 folds to 150
	assert.True(t, a.Calibration.Converged)
	assert.Zero(t, a.FaultBins)
	assert.Equal(t, fakeClock.Now(), a.ComputedAt)

	require.Len(t, a.Doses, 3)
	for i, want := range []float64{-40, 0, 40} {
		assert.Equal(t, want, a.Doses[i].Position)
		assert.GreaterOrEqual(t, a.Doses[i].MSDV, 0.0)
		assert.NotEmpty(t, a.Doses[i].Band)
	}

	// The midships dose collapses to the weighted-heave integral.
	heaveOnly := domain.MSDV(a.Frequencies, []domain.PositionPSD{{Position: 0, Density: a.Weighted.Heave}})
	assert.InDelta(t, heaveOnly[0].MSDV, a.Doses[1].MSDV, 1e-12)

	worst := a.WorstDose()
	for _, d := range a.Doses {
		assert.GreaterOrEqual(t, worst.MSDV, d.MSDV)
	}
}

func TestSeakeepingAssessor_Assess_InvalidSeaState(t *testing.T) {
	asr := pipeline.NewAssessor(newTestStore(t), []float64{0}, domain.DefaultGamma,
		slog.Default(), newTestMetrics())

	_, err := asr.Assess(context.Background(), domain.WaveState{Hs: -1, Tp: 8}, domain.VesselState{Speed: 10})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSeakeepingAssessor_Assess_DeterministicForSameInputs(t *testing.T) {
	asr := pipeline.NewAssessor(newTestStore(t), []float64{-20, 20}, domain.DefaultGamma,
		slog.Default(), newTestMetrics())

	wave := domain.WaveState{Hs: 2.0, Tp: 7.5}
	vessel := domain.VesselState{Speed: 5, Heading: 60}

	first, err := asr.Assess(context.Background(), wave, vessel)
	require.NoError(t, err)
	second, err := asr.Assess(context.Background(), wave, vessel)
	require.NoError(t, err)

	require.Len(t, second.Doses, len(first.Doses))
	for i := range first.Doses {
		assert.Equal(t, first.Doses[i].MSDV, second.Doses[i].MSDV)
		assert.Equal(t, first.Doses[i].Band, second.Doses[i].Band)
	}
}
