package domain

import "fmt"

// ValidationError reports an input that the pipeline refuses to compute with,
// such as a non-positive wave height or a non-monotonic frequency grid.
// The caller keeps its last good result and skips the run.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ComputationFault records a non-finite value produced mid-pipeline. Faults
// are confined to single frequency bins: the offending bin is zeroed, the
// fault is counted, and the run continues.
type ComputationFault struct {
	Stage string
	Bin   int
}

func (f ComputationFault) String() string {
	return fmt.Sprintf("%s: non-finite value at bin %d", f.Stage, f.Bin)
}

// ValidateGrid checks that an angular-frequency grid is strictly positive and
// strictly increasing. The PSD stages assume both.
func ValidateGrid(freq []float64) error {
	for i, w := range freq {
		if w <= 0 {
			return &ValidationError{Field: "frequency grid", Reason: fmt.Sprintf("non-positive frequency %g at index %d", w, i)}
		}
		if i > 0 && w <= freq[i-1] {
			return &ValidationError{Field: "frequency grid", Reason: fmt.Sprintf("not strictly increasing at index %d", i)}
		}
	}
	return nil
}
