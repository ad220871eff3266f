package interpolate

import (
	"fmt"
)

// Linear is a piecewise linear interpolator.
type Linear struct {
	searcher
	vals []float64
}

// NewLinear creates a linear interpolator for a strictly increasing sequence
// of points, xs, which take on the values given by vals. The tables are
// copied.
//
// Lookups are O(1) for uniformly spaced tables and O(log |xs|) otherwise.
func NewLinear(xs, vals []float64) (*Linear, error) {
	if err := checkTable(xs, vals); err != nil {
		return nil, fmt.Errorf(
			"NewLinear with len(xs) = %d, len(vals) = %d: %w",
			len(xs), len(vals), err,
		)
	}

	lin := &Linear{}
	lin.init(append([]float64(nil), xs...))
	lin.vals = append([]float64(nil), vals...)
	return lin, nil
}

// Range returns the range of x values covered by the interpolator.
func (lin *Linear) Range() (lo, hi float64) {
	return lin.xs[0], lin.xs[len(lin.xs)-1]
}

// Eval returns the interpolated value at x. Points outside the table are
// clamped to its ends.
func (lin *Linear) Eval(x float64) float64 {
	x = lin.clamp(x)
	i1 := lin.search(x)
	i2 := i1 + 1
	x1, x2 := lin.xs[i1], lin.xs[i2]
	v1, v2 := lin.vals[i1], lin.vals[i2]

	return ((v2-v1)/(x2-x1))*(x-x1) + v1
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = lin.Eval(x)
	}
	return out[0]
}
