package mat

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

const eps = 1e-9

func fromRows(rows ...[]float64) *Matrix {
	m := NewMatrix(len(rows[0]), len(rows))
	for i, row := range rows {
		m.SetRow(i, row...)
	}
	return m
}

func TestAtSet(t *testing.T) {
	m := NewMatrix(3, 2)
	require.NoError(t, m.Set(1, 2, 5))

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v, "unset cells read as zero")

	table := []struct{ row, col int }{
		{-1, 0}, {0, -1}, {2, 0}, {0, 3}, {5, 5},
	}
	for i, test := range table {
		v, err := m.At(test.row, test.col)
		if !errors.Is(err, ErrOutOfRange) || v != 0 {
			t.Errorf("%d) At(%d, %d) -> %g, %v instead of 0, ErrOutOfRange",
				i+1, test.row, test.col, v, err)
		}

		before := m.Copy()
		err = m.Set(test.row, test.col, 7)
		if !errors.Is(err, ErrOutOfRange) || !m.Equal(before) {
			t.Errorf("%d) Set(%d, %d) modified matrix or gave %v",
				i+1, test.row, test.col, err)
		}
	}
}

func TestRowColumn(t *testing.T) {
	m := fromRows(
		[]float64{1, 2, 3},
		[]float64{4, 5, 6},
	)

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, row)

	col, err := m.Column(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 6}, col)

	row, err = m.Row(2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, []float64{0, 0, 0}, row)

	col, err = m.Column(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, []float64{0, 0}, col)

	// Short and long rows only write the overlap.
	require.NoError(t, m.SetRow(0, 9))
	require.NoError(t, m.SetRow(1, 7, 7, 7, 7, 7))
	assert.True(t, m.Equal(fromRows(
		[]float64{9, 2, 3},
		[]float64{7, 7, 7},
	)))
}

func TestCopyIsDeep(t *testing.T) {
	m := Identity(2)
	c := m.Copy()
	c.Set(0, 1, 4)

	v, _ := m.At(0, 1)
	assert.Equal(t, 0.0, v)
	assert.False(t, m.Equal(c))
}

func TestArithmetic(t *testing.T) {
	a := fromRows([]float64{1, 2}, []float64{3, 4})
	b := fromRows([]float64{5, 6}, []float64{7, 8})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(fromRows([]float64{6, 8}, []float64{10, 12})))

	diff, err := b.Sub(a)
	require.NoError(t, err)
	assert.True(t, diff.Equal(fromRows([]float64{4, 4}, []float64{4, 4})))

	prod, err := a.Mul(b)
	require.NoError(t, err)
	assert.True(t, prod.Equal(fromRows([]float64{19, 22}, []float64{43, 50})))

	assert.True(t, a.Scale(2).Equal(fromRows([]float64{2, 4}, []float64{6, 8})))
	assert.True(t, a.Div(2).Equal(fromRows([]float64{0.5, 1}, []float64{1.5, 2})))
	assert.True(t, a.Neg().Equal(fromRows([]float64{-1, -2}, []float64{-3, -4})))

	at := a.Transpose()
	assert.True(t, at.Equal(fromRows([]float64{1, 3}, []float64{2, 4})))
}

func TestDimensionMismatch(t *testing.T) {
	a := fromRows([]float64{1, 2}, []float64{3, 4})
	c := fromRows([]float64{1, 1, 1})

	sum, err := a.Add(c)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Equal(t, 2, sum.Width())
	assert.Equal(t, 2, sum.Height())
	assert.True(t, sum.Equal(fromRows([]float64{2, 3}, []float64{3, 4})),
		"best-effort sum over the receiver's cells")

	_, err = a.Sub(c)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	prod, err := a.Mul(c)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.True(t, prod.Equal(NewMatrix(3, 2)))

	// (1x3) * (3x1) is fine.
	col := FromVec3(&vec3.T{1, 2, 3})
	dot, err := c.Mul(col)
	require.NoError(t, err)
	v, _ := dot.At(0, 0)
	assert.Equal(t, 6.0, v)
}

func TestSubmatrix(t *testing.T) {
	m := fromRows(
		[]float64{1, 2, 3},
		[]float64{4, 5, 6},
		[]float64{7, 8, 9},
	)
	sub := m.Submatrix([]int{1}, []int{0, 2})
	assert.True(t, sub.Equal(fromRows([]float64{2}, []float64{8})))
}

func TestDet(t *testing.T) {
	table := []struct {
		m   *Matrix
		det float64
	}{
		{Identity(3), 1},
		{fromRows([]float64{3}), 3},
		{fromRows([]float64{1, 2}, []float64{3, 4}), -2},
		{fromRows(
			[]float64{1, 3, 5},
			[]float64{2, 4, 7},
			[]float64{1, 1, 0},
		), 4},
		{fromRows(
			[]float64{2, 0, 0, 0},
			[]float64{0, 3, 0, 0},
			[]float64{0, 0, 4, 0},
			[]float64{1, 0, 0, 5},
		), 120},
		{fromRows(
			[]float64{1, 2, 3},
			[]float64{4, 5, 6},
			[]float64{7, 8, 9},
		), 0},
	}

	for i, test := range table {
		det, err := test.m.Det()
		require.NoError(t, err)
		if math.Abs(det-test.det) > eps {
			t.Errorf("%d) Det() -> %g instead of %g", i+1, det, test.det)
		}
	}

	_, err := NewMatrix(3, 2).Det()
	assert.ErrorIs(t, err, ErrNotSquare)
}

func TestInverse(t *testing.T) {
	table := []*Matrix{
		Identity(3),
		fromRows([]float64{4, 7}, []float64{2, 6}),
		fromRows(
			[]float64{1, 3, 5},
			[]float64{2, 4, 7},
			[]float64{1, 1, 0},
		),
		Rot3D(0.3, -1.2, 2.5),
		fromRows(
			[]float64{2, 0, 1, 0},
			[]float64{0, 3, 0, 1},
			[]float64{1, 0, 4, 0},
			[]float64{0, 1, 0, 5},
		),
	}

	for i, m := range table {
		inv, err := m.Inverse()
		require.NoError(t, err)

		prod, err := m.Mul(inv)
		require.NoError(t, err)
		if !prod.EpsEqual(Identity(m.Width()), 1e-9) {
			t.Errorf("%d) M * M^-1 = %v instead of identity", i+1, prod)
		}
	}
}

func TestInverseSingular(t *testing.T) {
	m := fromRows(
		[]float64{1, 2, 3},
		[]float64{2, 4, 6},
		[]float64{1, 1, 1},
	)
	inv, err := m.Inverse()
	assert.ErrorIs(t, err, ErrSingular)
	assert.True(t, inv.Equal(NewMatrix(3, 3)))

	inv, err = NewMatrix(2, 3).Inverse()
	assert.ErrorIs(t, err, ErrNotSquare)
	assert.Equal(t, 2, inv.Width())
}

func TestAdjoint(t *testing.T) {
	m := fromRows([]float64{1, 2}, []float64{3, 4})
	adj, err := m.Adjoint()
	require.NoError(t, err)
	assert.True(t, adj.Equal(fromRows([]float64{4, -2}, []float64{-3, 1})))

	adj, err = NewMatrix(3, 2).Adjoint()
	assert.ErrorIs(t, err, ErrNotSquare)
	assert.Equal(t, 2, adj.Width())
	assert.Equal(t, 2, adj.Height())
}

func TestRotations(t *testing.T) {
	r := Rot2D(math.Pi / 2)
	v, err := r.Mul(FromVec2(&vec2.T{1, 0}))
	require.NoError(t, err)
	out, err := v.Vec2()
	require.NoError(t, err)
	assert.InDelta(t, 0, out[0], eps)
	assert.InDelta(t, 1, out[1], eps)

	rz := Rot3D(0, 0, math.Pi/2)
	w, err := MulVec3(rz, &vec3.T{1, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0, w[0], eps)
	assert.InDelta(t, 1, w[1], eps)
	assert.InDelta(t, 0, w[2], eps)

	det, _ := Rot3D(1, 2, 3).Det()
	assert.InDelta(t, 1, det, eps)
}

func TestVecConversions(t *testing.T) {
	v := vec3.T{1, -2, 3}
	back, err := FromVec3(&v).Vec3()
	require.NoError(t, err)
	assert.Equal(t, v, back)

	_, err = NewMatrix(2, 3).Vec3()
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = MulVec3(NewMatrix(2, 2), &v)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	row, err := Identity(3).RowVec3(1)
	require.NoError(t, err)
	assert.Equal(t, vec3.T{0, 1, 0}, row)
}

func assertOrthonormalRows(t *testing.T, m *Matrix, msg string) {
	rows := make([]vec3.T, 3)
	for i := range rows {
		rows[i], _ = m.RowVec3(i)
		assert.InDelta(t, 1, rows[i].Length(), 1e-9, "%s: row %d length", msg, i)
	}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			assert.InDelta(t, 0, vec3.Dot(&rows[i], &rows[j]), 1e-9,
				"%s: rows %d and %d", msg, i, j)
		}
	}
}

func TestLookRotation(t *testing.T) {
	up := vec3.T{0, 1, 0}
	forwards := []vec3.T{
		{0, 0, 1}, {1, 0, 0}, {1, 1, 1}, {-3, 0.5, 2}, {0.01, -1, 0.2},
	}

	for i, f := range forwards {
		m, err := LookRotation(&f, &up)
		require.NoError(t, err)
		assertOrthonormalRows(t, m, "forward "+string(rune('1'+i)))

		fwd, _ := m.RowVec3(2)
		want := f.Normalized()
		assert.InDelta(t, 0, vec3.Distance(&fwd, &want), 1e-9)
	}

	// Straight ahead along +Z gives the identity.
	m, _ := LookRotation(&vec3.T{0, 0, 2}, &up)
	assert.True(t, m.EpsEqual(Identity(3), 1e-12))
}

func TestLookRotationDegenerate(t *testing.T) {
	table := []struct{ forward, up vec3.T }{
		{vec3.T{0, 1, 0}, vec3.T{0, 1, 0}},
		{vec3.T{0, -4, 0}, vec3.T{0, 1, 0}},
		{vec3.T{1, 0, 0}, vec3.T{1, 0, 0}},
	}

	for i, test := range table {
		m, err := LookRotation(&test.forward, &test.up)
		if !errors.Is(err, ErrDegenerateBasis) {
			t.Errorf("%d) expected ErrDegenerateBasis, got %v", i+1, err)
		}
		assertOrthonormalRows(t, m, "degenerate")
	}
}

func TestString(t *testing.T) {
	s := Identity(2).String()
	assert.Equal(t, "[ 2x2\n\t1\t0\n\t0\t1\n]", s)
}

func TestLU(t *testing.T) {
	m := fromRows(
		[]float64{0, 2, 1, 0, 0, 1},
		[]float64{3, 0, 0, 1, 0, 0},
		[]float64{0, 0, 4, 0, 1, 0},
		[]float64{1, 0, 0, 2, 0, 0},
		[]float64{0, 1, 0, 0, 3, 0},
		[]float64{0, 0, 0, 0, 0, 2},
	)

	// The LU path must agree with cofactor expansion.
	laplace := 0.0
	for c := 0; c < m.Width(); c++ {
		sub := m.Submatrix([]int{0}, []int{c})
		laplace += cofactorSign(0, c) * m.at(0, c) * sub.det()
	}
	det, err := m.Det()
	require.NoError(t, err)
	assert.InDelta(t, laplace, det, eps)
	assert.NotZero(t, det)

	xs := []float64{1, -2, 3, 0.5, 4, -1}
	bs := make([]float64, len(xs))
	for i := range bs {
		for j := range xs {
			bs[i] += m.at(i, j) * xs[j]
		}
	}

	got, err := m.Solve(bs)
	require.NoError(t, err)
	assert.InDeltaSlice(t, xs, got, eps)

	luf, err := m.LU()
	require.NoError(t, err)
	require.NoError(t, luf.SolveVector(bs, bs))
	assert.InDeltaSlice(t, xs, bs, eps)
	assert.ErrorIs(t, luf.SolveVector(bs[:2], bs), ErrDimensionMismatch)

	singular := Identity(5)
	require.NoError(t, singular.SetRow(3, 0, 0, 0, 0, 0))
	det, err = singular.Det()
	require.NoError(t, err)
	assert.Zero(t, det)
	_, err = singular.Solve(make([]float64, 5))
	assert.ErrorIs(t, err, ErrSingular)

	_, err = NewMatrix(2, 3).LU()
	assert.ErrorIs(t, err, ErrNotSquare)
}
