package rao

import "sort"

// Interpolate evaluates the piecewise-linear curve (xs, ys) at each target
// point. Queries below the first knot return the first value and queries
// above the last knot return the last value (flat extrapolation); queries at
// a knot return that knot's value exactly.
func Interpolate(xs, ys, targets []float64) []float64 {
	out := make([]float64, len(targets))
	for i, x := range targets {
		out[i] = interpolateAt(xs, ys, x)
	}
	return out
}

func interpolateAt(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}

	// First knot at or above x; x is strictly inside the range here.
	j := sort.SearchFloat64s(xs, x)
	i := j - 1
	dx := xs[j] - xs[i]
	if dx == 0 {
		return ys[i]
	}
	t := (x - xs[i]) / dx
	return ys[i] + t*(ys[j]-ys[i])
}
