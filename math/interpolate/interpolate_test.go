package interpolate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func almostEq(xs, ys []float64) bool {
	if len(xs) != len(ys) {
		return false
	}
	eps := 1e-3
	for i := range xs {
		if !(xs[i]+eps > ys[i] && xs[i]-eps < ys[i]) {
			return false
		}
	}
	return true
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

func TestSplineKnots(t *testing.T) {
	xs := []float64{0, 1, 1.5, 2, 3, 4, 5}
	ys := []float64{2, 1, 1, 0, 2, 3, 1}

	sp, err := NewSpline(xs, ys)
	require.NoError(t, err)

	got := sp.EvalAll(xs)
	if !almostEq(got, ys) {
		t.Errorf("Spline at knots gave %.3f instead of %.3f.", got, ys)
	}

	// The natural boundary has zero curvature at both ends.
	assert.InDelta(t, 0, sp.Diff(0, 2), 1e-9)
	assert.InDelta(t, 0, sp.Diff(5, 2), 1e-9)
}

func TestSplineLinearData(t *testing.T) {
	xs := []float64{0, 0.5, 2, 3, 7}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 3*x - 1
	}

	sp, err := NewSpline(xs, ys)
	require.NoError(t, err)

	for i, x := range linspace(0, 7, 50) {
		if math.Abs(sp.Eval(x)-(3*x-1)) > 1e-9 {
			t.Errorf("%d) Eval(%g) = %g instead of %g",
				i+1, x, sp.Eval(x), 3*x-1)
		}
		assert.InDelta(t, 3, sp.Diff(x, 1), 1e-9)
	}
}

func TestSplineSmooth(t *testing.T) {
	xs := linspace(0, math.Pi, 30)
	ys := make([]float64, len(xs))
	for i := range xs {
		ys[i] = math.Sin(xs[i])
	}
	sp, err := NewSpline(xs, ys)
	require.NoError(t, err)

	for _, x := range linspace(0.2, 2.9, 17) {
		assert.InDelta(t, math.Sin(x), sp.Eval(x), 1e-4)
		assert.InDelta(t, math.Cos(x), sp.Diff(x, 1), 1e-2)
	}
}

func TestSplineClamps(t *testing.T) {
	sp, err := NewSpline([]float64{1, 2, 3}, []float64{10, 20, 40})
	require.NoError(t, err)

	assert.Equal(t, 10.0, sp.Eval(-5))
	assert.InDelta(t, 40.0, sp.Eval(9), 1e-12)

	lo, hi := sp.Range()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 3.0, hi)
}

func TestTableErrors(t *testing.T) {
	table := []struct {
		xs, ys []float64
		err    error
	}{
		{[]float64{0}, []float64{0}, ErrTableLength},
		{[]float64{0, 1}, []float64{0}, ErrTableLength},
		{[]float64{0, 1, 1}, []float64{0, 1, 2}, ErrNotIncreasing},
		{[]float64{2, 1, 0}, []float64{0, 1, 2}, ErrNotIncreasing},
	}

	for i, test := range table {
		_, err := NewSpline(test.xs, test.ys)
		assert.ErrorIs(t, err, test.err, "%d) NewSpline", i+1)
		_, err = NewLinear(test.xs, test.ys)
		assert.ErrorIs(t, err, test.err, "%d) NewLinear", i+1)
	}
}

func TestLinear(t *testing.T) {
	lin, err := NewLinear([]float64{0, 1, 3}, []float64{0, 2, 0})
	require.NoError(t, err)

	table := []struct{ x, y float64 }{
		{-1, 0}, {0, 0}, {0.5, 1}, {1, 2}, {2, 1}, {3, 0}, {4, 0},
	}
	out := make([]float64, len(table))
	xs := make([]float64, len(table))
	for i := range table {
		xs[i] = table[i].x
	}
	lin.EvalAll(xs, out)
	for i, test := range table {
		if math.Abs(out[i]-test.y) > 1e-12 {
			t.Errorf("%d) Eval(%g) = %g instead of %g", i+1, test.x, out[i], test.y)
		}
	}
}

func TestTriDiag(t *testing.T) {
	// | 2 1 0 |   | 1 |   | 4 |
	// | 1 2 1 | * | 2 | = | 8 |
	// | 0 1 2 |   | 3 |   | 8 |
	us, err := TriDiag(
		[]float64{0, 1, 1},
		[]float64{2, 2, 2},
		[]float64{1, 1, 0},
		[]float64{4, 8, 8},
	)
	require.NoError(t, err)
	assert.True(t, almostEq(us, []float64{1, 2, 3}), "got %v", us)

	_, err = TriDiag([]float64{0}, []float64{0}, []float64{0}, []float64{1})
	assert.ErrorIs(t, err, ErrSingularSystem)

	_, err = TriDiag([]float64{0}, []float64{1, 2}, []float64{0}, []float64{1})
	assert.ErrorIs(t, err, ErrTableLength)
}
