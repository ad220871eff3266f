package mat

import (
	"fmt"
	"math"
)

// laplaceMaxRank is the largest matrix which Det expands by cofactors.
// Larger matrices are factored instead.
const laplaceMaxRank = 4

// LUFactors is the LU decomposition of a square matrix with implicit
// partial pivoting, P * M = L * U. L and U share one dense row-major
// buffer; L has an implicit unit diagonal.
type LUFactors struct {
	n     int
	lu    []float64
	pivot []int
	d     float64 // +1 or -1, the parity of the row exchanges

	singular bool
}

// LU computes the LU decomposition of m. Non-square matrices result in an
// ErrNotSquare error. A singular m is still factored, but Det returns 0 and
// SolveVector fails for it.
func (m *Matrix) LU() (*LUFactors, error) {
	if m.width != m.height {
		return nil, fmt.Errorf(
			"Matrix.LU on %dx%d matrix: %w", m.height, m.width, ErrNotSquare,
		)
	}

	n := m.width
	luf := &LUFactors{
		n: n, lu: make([]float64, n*n), pivot: make([]int, n), d: 1,
	}
	for k, v := range m.vals {
		luf.lu[k.row*n+k.col] = v
	}
	luf.factor()
	return luf, nil
}

func (luf *LUFactors) factor() {
	n, lu := luf.n, luf.lu
	scale := make([]float64, n)

	for i := 0; i < n; i++ {
		max := 0.0
		for j := 0; j < n; j++ {
			max = math.Max(max, math.Abs(lu[i*n+j]))
		}
		if max == 0 {
			luf.singular = true
			return
		}
		scale[i] = 1 / max
	}

	for k := 0; k < n; k++ {
		max, maxi := 0.0, k
		for i := k; i < n; i++ {
			if tmp := scale[i] * math.Abs(lu[i*n+k]); tmp > max {
				max, maxi = tmp, i
			}
		}

		if k != maxi {
			for j := 0; j < n; j++ {
				lu[k*n+j], lu[maxi*n+j] = lu[maxi*n+j], lu[k*n+j]
			}
			luf.d = -luf.d
			scale[maxi] = scale[k]
		}
		luf.pivot[k] = maxi

		if lu[k*n+k] == 0 {
			luf.singular = true
			return
		}

		for i := k + 1; i < n; i++ {
			lu[i*n+k] /= lu[k*n+k]
			tmp := lu[i*n+k]
			for j := k + 1; j < n; j++ {
				lu[i*n+j] -= tmp * lu[k*n+j]
			}
		}
	}
}

// Det returns the determinant of the factored matrix.
func (luf *LUFactors) Det() float64 {
	if luf.singular {
		return 0
	}
	d := luf.d
	for i := 0; i < luf.n; i++ {
		d *= luf.lu[i*luf.n+i]
	}
	return d
}

// SolveVector solves M * xs = bs for xs.
//
// bs and xs may point to the same physical memory.
func (luf *LUFactors) SolveVector(bs, xs []float64) error {
	n := luf.n
	if len(bs) != n || len(xs) != n {
		return fmt.Errorf(
			"SolveVector with len(bs) = %d, len(xs) = %d on rank %d: %w",
			len(bs), len(xs), n, ErrDimensionMismatch,
		)
	} else if luf.singular {
		return fmt.Errorf("SolveVector: %w", ErrSingular)
	}

	copy(xs, bs)
	lu := luf.lu

	// Solve L * y = P * b for y.
	for i := 0; i < n; i++ {
		piv := luf.pivot[i]
		sum := xs[piv]
		xs[piv] = xs[i]
		for j := 0; j < i; j++ {
			sum -= lu[i*n+j] * xs[j]
		}
		xs[i] = sum
	}

	// Solve U * x = y for x.
	for i := n - 1; i >= 0; i-- {
		sum := xs[i]
		for j := i + 1; j < n; j++ {
			sum -= lu[i*n+j] * xs[j]
		}
		xs[i] = sum / lu[i*n+i]
	}
	return nil
}

// Solve returns the xs satisfying m * xs = bs.
func (m *Matrix) Solve(bs []float64) ([]float64, error) {
	luf, err := m.LU()
	if err != nil {
		return nil, err
	}
	xs := make([]float64, len(bs))
	if err := luf.SolveVector(bs, xs); err != nil {
		return nil, err
	}
	return xs, nil
}
