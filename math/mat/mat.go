/*package mat contains a small matrix type for the 2D and 3D geometry needed
to sweep track profiles along splines.

Matrices are sparse: cells which have never been set read as zero. Routines
which can fail (bad indices, mismatched shapes, singular matrices) never
panic. They return a deterministic fallback value together with an error so
that callers can report the problem and keep evaluating.

This is not a general linear algebra package. Determinants and inverses are
computed by cofactor expansion, which is fine for the 2x2 and 3x3 matrices
used here and hopeless for anything large.
*/
package mat

import (
	"fmt"
	"math"
	"strings"
)

type cell struct {
	row, col int
}

// Matrix is a sparse matrix of float64 values with fixed dimensions.
type Matrix struct {
	width, height int
	vals          map[cell]float64
}

// NewMatrix creates a zero matrix with the given number of columns (width)
// and rows (height).
func NewMatrix(width, height int) *Matrix {
	if width < 0 {
		panic("width must be non-negative.")
	} else if height < 0 {
		panic("height must be non-negative.")
	}

	return &Matrix{width: width, height: height, vals: map[cell]float64{}}
}

// Identity creates a rank x rank identity matrix.
func Identity(rank int) *Matrix {
	m := NewMatrix(rank, rank)
	for i := 0; i < rank; i++ {
		m.set(i, i, 1)
	}
	return m
}

// Rot2D creates the 2D rotation matrix which rotates counter-clockwise by the
// given angle.
func Rot2D(angle float64) *Matrix {
	m := NewMatrix(2, 2)
	m.SetRow(0, math.Cos(angle), -math.Sin(angle))
	m.SetRow(1, math.Sin(angle), math.Cos(angle))
	return m
}

// Rot3D creates the 3D rotation matrix Rx(x) * Ry(y) * Rz(z), i.e. the
// rotation around z is applied first.
func Rot3D(x, y, z float64) *Matrix {
	rx := NewMatrix(3, 3)
	rx.SetRow(0, 1, 0, 0)
	rx.SetRow(1, 0, math.Cos(x), -math.Sin(x))
	rx.SetRow(2, 0, math.Sin(x), math.Cos(x))

	ry := NewMatrix(3, 3)
	ry.SetRow(0, math.Cos(y), 0, math.Sin(y))
	ry.SetRow(1, 0, 1, 0)
	ry.SetRow(2, -math.Sin(y), 0, math.Cos(y))

	rz := NewMatrix(3, 3)
	rz.SetRow(0, math.Cos(z), -math.Sin(z), 0)
	rz.SetRow(1, math.Sin(z), math.Cos(z), 0)
	rz.SetRow(2, 0, 0, 1)

	// All three are 3x3, so neither product can mismatch.
	rxy, _ := rx.Mul(ry)
	out, _ := rxy.Mul(rz)
	return out
}

// Width returns the number of columns.
func (m *Matrix) Width() int { return m.width }

// Height returns the number of rows.
func (m *Matrix) Height() int { return m.height }

// SameDimensions returns true if m and n have the same shape.
func (m *Matrix) SameDimensions(n *Matrix) bool {
	return m.width == n.width && m.height == n.height
}

func (m *Matrix) inBounds(row, col int) bool {
	return row >= 0 && row < m.height && col >= 0 && col < m.width
}

// at is an unchecked read. Missing cells, including cells outside the
// matrix, are zero.
func (m *Matrix) at(row, col int) float64 {
	return m.vals[cell{row, col}]
}

func (m *Matrix) set(row, col int, v float64) {
	if v == 0 {
		delete(m.vals, cell{row, col})
		return
	}
	m.vals[cell{row, col}] = v
}

func (m *Matrix) rangeErr(method string, row, col int) error {
	return fmt.Errorf(
		"Matrix.%s(%d,%d) on %dx%d matrix: %w",
		method, row, col, m.height, m.width, ErrOutOfRange,
	)
}

// At returns the value at the given row and column. Out of range indices
// return 0 and an ErrOutOfRange error.
func (m *Matrix) At(row, col int) (float64, error) {
	if !m.inBounds(row, col) {
		return 0, m.rangeErr("At", row, col)
	}
	return m.at(row, col), nil
}

// Set assigns v to the given row and column. Out of range indices leave the
// matrix unchanged and return an ErrOutOfRange error.
func (m *Matrix) Set(row, col int, v float64) error {
	if !m.inBounds(row, col) {
		return m.rangeErr("Set", row, col)
	}
	m.set(row, col, v)
	return nil
}

// SetRow writes vals into the given row. If len(vals) differs from the width
// of the matrix, only the overlapping prefix is written.
func (m *Matrix) SetRow(row int, vals ...float64) error {
	if row < 0 || row >= m.height {
		return m.rangeErr("SetRow", row, 0)
	}
	for c := 0; c < m.width && c < len(vals); c++ {
		m.set(row, c, vals[c])
	}
	return nil
}

// SetColumn writes vals into the given column. If len(vals) differs from the
// height of the matrix, only the overlapping prefix is written.
func (m *Matrix) SetColumn(col int, vals ...float64) error {
	if col < 0 || col >= m.width {
		return m.rangeErr("SetColumn", 0, col)
	}
	for r := 0; r < m.height && r < len(vals); r++ {
		m.set(r, col, vals[r])
	}
	return nil
}

// Row returns a copy of the given row. An out of range row results in a
// zero slice of length Width() and an ErrOutOfRange error.
func (m *Matrix) Row(row int) ([]float64, error) {
	out := make([]float64, m.width)
	if row < 0 || row >= m.height {
		return out, m.rangeErr("Row", row, 0)
	}
	for c := range out {
		out[c] = m.at(row, c)
	}
	return out, nil
}

// Column returns a copy of the given column. An out of range column results
// in a zero slice of length Height() and an ErrOutOfRange error.
func (m *Matrix) Column(col int) ([]float64, error) {
	out := make([]float64, m.height)
	if col < 0 || col >= m.width {
		return out, m.rangeErr("Column", 0, col)
	}
	for r := range out {
		out[r] = m.at(r, col)
	}
	return out, nil
}

// Copy returns a deep copy of m.
func (m *Matrix) Copy() *Matrix {
	out := NewMatrix(m.width, m.height)
	for k, v := range m.vals {
		out.vals[k] = v
	}
	return out
}

func (m *Matrix) mismatchErr(method string, n *Matrix) error {
	return fmt.Errorf(
		"Matrix.%s of %dx%d and %dx%d matrices: %w",
		method, m.height, m.width, n.height, n.width, ErrDimensionMismatch,
	)
}

// Add returns m + n. If the shapes differ the result still has the shape of
// m, with cells missing from n treated as zero, and an ErrDimensionMismatch
// error is returned.
func (m *Matrix) Add(n *Matrix) (*Matrix, error) {
	return m.cellwise("Add", n, func(a, b float64) float64 { return a + b })
}

// Sub returns m - n, following the same mismatch rules as Add.
func (m *Matrix) Sub(n *Matrix) (*Matrix, error) {
	return m.cellwise("Sub", n, func(a, b float64) float64 { return a - b })
}

func (m *Matrix) cellwise(
	method string, n *Matrix, f func(a, b float64) float64,
) (*Matrix, error) {
	out := NewMatrix(m.width, m.height)
	for r := 0; r < m.height; r++ {
		for c := 0; c < m.width; c++ {
			out.set(r, c, f(m.at(r, c), n.at(r, c)))
		}
	}

	if !m.SameDimensions(n) {
		return out, m.mismatchErr(method, n)
	}
	return out, nil
}

// Scale returns f * m.
func (m *Matrix) Scale(f float64) *Matrix {
	out := NewMatrix(m.width, m.height)
	for k, v := range m.vals {
		out.set(k.row, k.col, v*f)
	}
	return out
}

// Div returns m / f. Division by zero follows IEEE 754 on every stored cell
// and leaves unset cells at zero.
func (m *Matrix) Div(f float64) *Matrix {
	out := NewMatrix(m.width, m.height)
	for k, v := range m.vals {
		out.set(k.row, k.col, v/f)
	}
	return out
}

// Neg returns -m.
func (m *Matrix) Neg() *Matrix { return m.Scale(-1) }

// Mul returns the matrix product m * n. If m.Width() != n.Height(), a zero
// matrix of shape m.Height() x n.Width() and an ErrDimensionMismatch error
// are returned.
func (m *Matrix) Mul(n *Matrix) (*Matrix, error) {
	out := NewMatrix(n.width, m.height)
	if m.width != n.height {
		return out, m.mismatchErr("Mul", n)
	}

	for r := 0; r < m.height; r++ {
		for c := 0; c < n.width; c++ {
			sum := 0.0
			for k := 0; k < m.width; k++ {
				sum += m.at(r, k) * n.at(k, c)
			}
			out.set(r, c, sum)
		}
	}
	return out, nil
}

// Transpose returns the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	out := NewMatrix(m.height, m.width)
	for k, v := range m.vals {
		out.set(k.col, k.row, v)
	}
	return out
}

// Submatrix returns a copy of m with the given rows and columns removed.
// Indices outside the matrix are ignored.
func (m *Matrix) Submatrix(deletedRows, deletedCols []int) *Matrix {
	rowMap := keptIndices(m.height, deletedRows)
	colMap := keptIndices(m.width, deletedCols)

	out := NewMatrix(len(colMap), len(rowMap))
	for i, r := range rowMap {
		for j, c := range colMap {
			out.set(i, j, m.at(r, c))
		}
	}
	return out
}

// keptIndices returns the indices in [0, n) which are not in deleted.
func keptIndices(n int, deleted []int) []int {
	out := make([]int, 0, n)
outer:
	for i := 0; i < n; i++ {
		for _, d := range deleted {
			if d == i {
				continue outer
			}
		}
		out = append(out, i)
	}
	return out
}

// Det computes the determinant of m by cofactor expansion along the first
// row, or from its LU factors for matrices larger than 4x4. Non-square
// matrices return 0 and an ErrNotSquare error.
func (m *Matrix) Det() (float64, error) {
	if m.width != m.height {
		return 0, fmt.Errorf(
			"Matrix.Det on %dx%d matrix: %w", m.height, m.width, ErrNotSquare,
		)
	}
	return m.det(), nil
}

func (m *Matrix) det() float64 {
	switch m.width {
	case 0:
		return 1
	case 1:
		return m.at(0, 0)
	case 2:
		return m.at(0, 0)*m.at(1, 1) - m.at(0, 1)*m.at(1, 0)
	}

	if m.width > laplaceMaxRank {
		luf, _ := m.LU()
		return luf.Det()
	}

	sum := 0.0
	for c := 0; c < m.width; c++ {
		a := m.at(0, c)
		if a == 0 {
			continue
		}
		sum += cofactorSign(0, c) * a * m.Submatrix([]int{0}, []int{c}).det()
	}
	return sum
}

func cofactorSign(row, col int) float64 {
	if (row+col)%2 == 0 {
		return 1
	}
	return -1
}

// Adjoint returns the adjugate of m, the transpose of its cofactor matrix,
// so that m * m.Adjoint() = det(m) * I. A non-square m results in a zero
// min(w, h) x min(w, h) matrix and an ErrNotSquare error.
func (m *Matrix) Adjoint() (*Matrix, error) {
	if m.width != m.height {
		n := m.width
		if m.height < n {
			n = m.height
		}
		return NewMatrix(n, n), fmt.Errorf(
			"Matrix.Adjoint on %dx%d matrix: %w",
			m.height, m.width, ErrNotSquare,
		)
	}

	out := NewMatrix(m.width, m.height)
	for r := 0; r < m.height; r++ {
		for c := 0; c < m.width; c++ {
			minor := m.Submatrix([]int{r}, []int{c})
			out.set(c, r, cofactorSign(r, c)*minor.det())
		}
	}
	return out, nil
}

// Inverse returns the inverse of m, computed as Adjoint() / Det(). Singular
// matrices result in a zero matrix and an ErrSingular error.
func (m *Matrix) Inverse() (*Matrix, error) {
	det, err := m.Det()
	if err != nil {
		return NewMatrix(m.width, m.width), err
	} else if det == 0 {
		return NewMatrix(m.width, m.width), fmt.Errorf(
			"Matrix.Inverse on %dx%d matrix: %w",
			m.height, m.width, ErrSingular,
		)
	}

	adj, err := m.Adjoint()
	if err != nil {
		return adj, err
	}
	return adj.Div(det), nil
}

// Equal returns true if m and n have the same shape and identical values.
func (m *Matrix) Equal(n *Matrix) bool {
	if !m.SameDimensions(n) || len(m.vals) != len(n.vals) {
		return false
	}
	for k, v := range m.vals {
		if n.vals[k] != v {
			return false
		}
	}
	return true
}

// EpsEqual returns true if m and n have the same shape and all their values
// are within eps of each other.
func (m *Matrix) EpsEqual(n *Matrix, eps float64) bool {
	if !m.SameDimensions(n) {
		return false
	}
	for r := 0; r < m.height; r++ {
		for c := 0; c < m.width; c++ {
			if math.Abs(m.at(r, c)-n.at(r, c)) > eps {
				return false
			}
		}
	}
	return true
}

func (m *Matrix) String() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "[ %dx%d\n", m.height, m.width)
	for r := 0; r < m.height; r++ {
		for c := 0; c < m.width; c++ {
			fmt.Fprintf(sb, "\t%g", m.at(r, c))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("]")
	return sb.String()
}
