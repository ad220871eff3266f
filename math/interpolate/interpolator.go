/*package interpolate contains one dimensional interpolators over tables of
(x, y) values.

The track code uses them to invert arc length tables: a curve is sampled at
a schedule of parameter values, the cumulative distance to each sample is
recorded, and an interpolator over (distance, u) answers "which parameter is
d units along the track?".
*/
package interpolate

import (
	"errors"
)

// Interpolator is a function of one variable defined by a table.
type Interpolator interface {
	Eval(x float64) float64
	EvalAll(xs []float64, out ...[]float64) []float64
	Range() (lo, hi float64)
}

var (
	_ Interpolator = &Spline{}
	_ Interpolator = &Linear{}
)

var (
	// ErrTableLength is returned when the x and y tables have different
	// lengths or are too short to interpolate.
	ErrTableLength = errors.New("interpolate: bad table length")

	// ErrNotIncreasing is returned when x values are not strictly
	// increasing.
	ErrNotIncreasing = errors.New("interpolate: x values not strictly increasing")

	// ErrSingularSystem is returned by TriDiagAt when the system has no
	// unique solution.
	ErrSingularSystem = errors.New("interpolate: singular tridiagonal system")
)

// checkTable validates a table given to one of the constructors.
func checkTable(xs, ys []float64) error {
	if len(xs) != len(ys) || len(xs) < 2 {
		return ErrTableLength
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return ErrNotIncreasing
		}
	}
	return nil
}

// searcher finds the table interval containing a point.
type searcher struct {
	xs []float64
	// Usually the input data is close to uniform. This is our estimate of
	// the point spacing.
	dx float64
}

func (s *searcher) init(xs []float64) {
	s.xs = xs
	s.dx = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
}

// clamp restricts x to the range of the table.
func (s *searcher) clamp(x float64) float64 {
	if x < s.xs[0] {
		return s.xs[0]
	} else if x > s.xs[len(s.xs)-1] {
		return s.xs[len(s.xs)-1]
	}
	return x
}

// search returns the index of the largest element in xs which is not
// larger than x, capped at len(xs) - 2 so that i+1 is always valid. x must
// already be clamped.
func (s *searcher) search(x float64) int {
	n := len(s.xs)

	// Guess under the assumption of uniform spacing.
	guess := int((x - s.xs[0]) / s.dx)
	if guess >= 0 && guess < n-1 && s.xs[guess] <= x && x <= s.xs[guess+1] {
		return guess
	}

	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= s.xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
