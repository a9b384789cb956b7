// Command validate performs offline integrity checks on a RAO data directory
// and prints a worked assessment for a given sea state, without Kafka or the
// HTTP layer. It verifies that every table parses, that frequency grids and
// unwrapped phases are well-formed, that spectrum calibration converges, and
// then prints the per-position MSDV table the service would publish.
//
// Usage:
//
//	go run ./cmd/validate -rao-dir data/rao \
//	  -hs 4.5 -tp 12.0 -speed 15 -heading 140 -positions=-60,-30,0,30,60
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/seakeeping-advisor/internal/domain"
	"github.com/couchcryptid/seakeeping-advisor/internal/observability"
	"github.com/couchcryptid/seakeeping-advisor/internal/pipeline"
	"github.com/couchcryptid/seakeeping-advisor/internal/rao"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	raoDir := flag.String("rao-dir", "data/rao", "directory containing <dof>_<speed>kn.txt tables")
	hs := flag.Float64("hs", 4.5, "significant wave height (m)")
	tp := flag.Float64("tp", 12.0, "peak period (s)")
	speed := flag.Float64("speed", 15, "vessel speed (knots)")
	heading := flag.Float64("heading", 140, "vessel heading relative to waves (deg)")
	positionsFlag := flag.String("positions", "-60,-30,0,30,60", "comma-separated hull offsets (m from midships)")
	flag.Parse()

	positions, err := parsePositions(*positionsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	if code := run(*raoDir, *hs, *tp, *speed, *heading, positions); code != 0 {
		os.Exit(code)
	}
}

func run(raoDir string, hs, tp, speed, heading float64, positions []float64) int {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fmt.Println("=== Seakeeping Data Validation ===")
	fmt.Println()

	store, err := rao.NewStore(raoDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	fmt.Printf("Supported speeds: %v kn\n", store.Speeds())

	phases := []*phase{
		validateTables(store),
		validateCalibration(hs, tp),
	}

	allPassed := true
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		allPassed = false
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if !allPassed {
		return 1
	}

	fmt.Println()
	return printAssessment(store, hs, tp, speed, heading, positions, logger)
}

// validateTables parses every (dof, speed, heading) combination and checks
// the structural invariants the PSD stages rely on.
func validateTables(store *rao.Store) *phase {
	p := &phase{name: "rao tables"}

	for _, speed := range store.Speeds() {
		for _, dof := range []rao.DOF{rao.DOFHeave, rao.DOFPitch} {
			for _, heading := range rao.HeadingBuckets {
				rf, err := store.Load(dof, speed, heading)
				if err != nil {
					p.errorf("%s %gkn %gdeg: %v", dof, speed, heading, err)
					continue
				}
				checkResponse(p, rf)
			}
		}
	}
	return p
}

func checkResponse(p *phase, rf *rao.ResponseFunction) {
	tag := fmt.Sprintf("%s %gkn %gdeg", rf.DOF, rf.Speed, rf.Heading)

	if err := domain.ValidateGrid(rf.Frequencies); err != nil {
		p.errorf("%s: %v", tag, err)
	}
	for i, a := range rf.Amplitude {
		if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
			p.errorf("%s: bad amplitude %g at row %d", tag, a, i)
		}
	}
	for i := 1; i < len(rf.Phase); i++ {
		if d := math.Abs(rf.Phase[i] - rf.Phase[i-1]); d > 180+1e-9 {
			p.errorf("%s: unwrapped phase steps %g deg between rows %d and %d", tag, d, i-1, i)
		}
	}
}

// validateCalibration synthesizes the spectrum and confirms the calibrated
// zeroth moment reproduces Hs.
func validateCalibration(hs, tp float64) *phase {
	p := &phase{name: "spectrum calibration"}

	curve, cal, err := domain.Synthesize(hs, tp, domain.DefaultGamma)
	if err != nil {
		p.errorf("synthesize: %v", err)
		return p
	}
	if !cal.Converged {
		p.errorf("alpha calibration did not converge in %d iterations", cal.Iterations)
	}

	m0 := domain.Trapezoid(curve.Frequencies, curve.Density)
	hsEst := 4 * math.Sqrt(m0)
	if rel := math.Abs(hsEst/hs - 1); rel > 2e-3 {
		p.errorf("implied Hs %.5f differs from requested %.5f by %.2f%%", hsEst, hs, rel*100)
	}
	for i, d := range curve.Density {
		if d < 0 {
			p.errorf("negative spectral density %g at bin %d", d, i)
			break
		}
	}
	return p
}

func printAssessment(store *rao.Store, hs, tp, speed, heading float64, positions []float64, logger *slog.Logger) int {
	metrics := observability.NewMetricsForTesting()
	assessor := pipeline.NewAssessor(store, positions, domain.DefaultGamma, logger, metrics)

	a, err := assessor.Assess(context.Background(),
		domain.WaveState{Hs: hs, Tp: tp},
		domain.VesselState{Speed: speed, Heading: heading})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: assess: %v\n", err)
		return 1
	}

	fmt.Printf("=== Assessment: Hs=%.2fm Tp=%.2fs speed=%.1fkn heading=%.0fdeg ===\n", hs, tp, speed, heading)
	fmt.Printf("Resolved buckets: %.0f kn / %.0f deg\n", a.SpeedBucket, a.HeadingBucket)
	fmt.Printf("Alpha: %.6g (converged=%v, %d iterations)\n", a.Calibration.Alpha, a.Calibration.Converged, a.Calibration.Iterations)
	if a.FaultBins > 0 {
		fmt.Printf("WARNING: %d frequency bins zeroed due to non-finite values\n", a.FaultBins)
	}
	fmt.Println()
	fmt.Println("Position (m)   MSDV (m/s^1.5)   Band")
	for _, d := range a.Doses {
		fmt.Printf("%12.1f   %14.4f   %s\n", d.Position, d.MSDV, d.Band)
	}
	return 0
}

func parsePositions(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	positions := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid position %q", p)
		}
		positions = append(positions, v)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no positions given")
	}
	return positions, nil
}
