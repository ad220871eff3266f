package interpolate

import (
	"fmt"
)

type splineCoeff struct {
	a, b, c, d float64
}

// Spline represents a 1D natural cubic spline which can be used to
// interpolate between points.
type Spline struct {
	searcher
	ys, y2s []float64
	coeffs  []splineCoeff
}

// NewSpline creates a spline based off a table of x and y values. The x
// values must be strictly increasing. The tables are copied.
func NewSpline(xs, ys []float64) (*Spline, error) {
	if err := checkTable(xs, ys); err != nil {
		return nil, fmt.Errorf(
			"NewSpline with len(xs) = %d, len(ys) = %d: %w",
			len(xs), len(ys), err,
		)
	}

	sp := &Spline{}
	sp.init(append([]float64(nil), xs...))
	sp.ys = append([]float64(nil), ys...)
	sp.y2s = make([]float64, len(xs))
	sp.coeffs = make([]splineCoeff, len(xs)-1)

	if err := sp.calcY2s(); err != nil {
		return nil, err
	}
	sp.calcCoeffs()
	return sp, nil
}

// Range returns the range of x values covered by the spline.
func (sp *Spline) Range() (lo, hi float64) {
	return sp.xs[0], sp.xs[len(sp.xs)-1]
}

// Eval computes the value of the spline at the given point. Points outside
// the table are clamped to its ends.
func (sp *Spline) Eval(x float64) float64 {
	return sp.Diff(x, 0)
}

// EvalAll evaluates the spline at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (sp *Spline) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = sp.Eval(x)
	}
	return out[0]
}

// Diff computes the derivative of the spline at the given point to the
// specified order. Order 0 is the value itself. Points outside the table are
// clamped to its ends.
func (sp *Spline) Diff(x float64, order int) float64 {
	x = sp.clamp(x)
	i := sp.search(x)
	dx := x - sp.xs[i]
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d

	switch order {
	case 0:
		return a*dx*dx*dx + b*dx*dx + c*dx + d
	case 1:
		return 3*a*dx*dx + 2*b*dx + c
	case 2:
		return 6*a*dx + 2*b
	case 3:
		return 6 * a
	default:
		return 0
	}
}

// calcY2s computes the second derivative at every point in the table. The
// boundaries are set to zero (a natural spline).
func (sp *Spline) calcY2s() error {
	n := len(sp.xs)
	if n < 3 {
		return nil
	}

	as, bs := make([]float64, n-2), make([]float64, n-2)
	cs, rs := make([]float64, n-2), make([]float64, n-2)

	xs, ys := sp.xs, sp.ys
	for i := range rs {
		// j indexes into xs and ys.
		j := i + 1

		as[i] = (xs[j] - xs[j-1]) / 6
		bs[i] = (xs[j+1] - xs[j-1]) / 3
		cs[i] = (xs[j+1] - xs[j]) / 6
		rs[i] = ((ys[j+1] - ys[j]) / (xs[j+1] - xs[j])) -
			((ys[j] - ys[j-1]) / (xs[j] - xs[j-1]))
	}

	return TriDiagAt(as, bs, cs, rs, sp.y2s[1:n-1])
}

func (sp *Spline) calcCoeffs() {
	coeffs, xs, ys, y2s := sp.coeffs, sp.xs, sp.ys, sp.y2s
	for i := range coeffs {
		h := xs[i+1] - xs[i]
		coeffs[i].a = (y2s[i+1] - y2s[i]) / (6 * h)
		coeffs[i].b = y2s[i] / 2
		coeffs[i].c = (ys[i+1]-ys[i])/h - h*(2*y2s[i]+y2s[i+1])/6
		coeffs[i].d = ys[i]
	}
}

// TriDiagAt solves the system of equations
//
//	| b0 c0 ..       |   | out0 |   | r0 |
//	| a1 b1 c1 ..    |   | out1 |   | r1 |
//	| ..             | * | ..   | = | .. |
//	| ..       an bn |   | outn |   | rn |
//
// for out0 .. outn in place in the given slice. a0 and cn are ignored.
func TriDiagAt(as, bs, cs, rs, out []float64) error {
	if len(as) != len(bs) || len(as) != len(cs) ||
		len(as) != len(out) || len(as) != len(rs) {
		return fmt.Errorf("TriDiagAt: %w", ErrTableLength)
	}
	if len(out) == 0 {
		return nil
	}

	tmp := make([]float64, len(as))

	beta := bs[0]
	if beta == 0 {
		return fmt.Errorf("TriDiagAt: %w", ErrSingularSystem)
	}
	out[0] = rs[0] / beta

	for i := 1; i < len(out); i++ {
		tmp[i] = cs[i-1] / beta
		beta = bs[i] - as[i]*tmp[i]
		if beta == 0 {
			return fmt.Errorf("TriDiagAt: %w", ErrSingularSystem)
		}
		out[i] = (rs[i] - as[i]*out[i-1]) / beta
	}

	for i := len(out) - 2; i >= 0; i-- {
		out[i] -= tmp[i+1] * out[i+1]
	}
	return nil
}

// TriDiag solves the same system as TriDiagAt, but allocates the output.
func TriDiag(as, bs, cs, rs []float64) ([]float64, error) {
	us := make([]float64, len(as))
	err := TriDiagAt(as, bs, cs, rs, us)
	return us, err
}
