package mat

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// degenerateEps is the squared length below which up x forward is treated
// as zero by LookRotation.
const degenerateEps = 1e-12

// FromVec3 creates a 3x1 column matrix holding v.
func FromVec3(v *vec3.T) *Matrix {
	m := NewMatrix(1, 3)
	m.SetColumn(0, v[0], v[1], v[2])
	return m
}

// FromVec2 creates a 2x1 column matrix holding v.
func FromVec2(v *vec2.T) *Matrix {
	m := NewMatrix(1, 2)
	m.SetColumn(0, v[0], v[1])
	return m
}

// Vec3 converts a 3x1 column matrix to a vector. Any other shape results in
// the overlapping part of the first column and an ErrDimensionMismatch
// error.
func (m *Matrix) Vec3() (vec3.T, error) {
	v := vec3.T{m.at(0, 0), m.at(1, 0), m.at(2, 0)}
	if m.width != 1 || m.height != 3 {
		return v, fmt.Errorf(
			"Matrix.Vec3 on %dx%d matrix: %w",
			m.height, m.width, ErrDimensionMismatch,
		)
	}
	return v, nil
}

// Vec2 converts a 2x1 column matrix to a vector, following the same rules
// as Vec3.
func (m *Matrix) Vec2() (vec2.T, error) {
	v := vec2.T{m.at(0, 0), m.at(1, 0)}
	if m.width != 1 || m.height != 2 {
		return v, fmt.Errorf(
			"Matrix.Vec2 on %dx%d matrix: %w",
			m.height, m.width, ErrDimensionMismatch,
		)
	}
	return v, nil
}

// MulVec3 returns m * v for a 3x3 matrix m. Other shapes result in a zero
// vector and an ErrDimensionMismatch error.
func MulVec3(m *Matrix, v *vec3.T) (vec3.T, error) {
	if m.width != 3 || m.height != 3 {
		return vec3.T{}, fmt.Errorf(
			"MulVec3 with %dx%d matrix: %w",
			m.height, m.width, ErrDimensionMismatch,
		)
	}

	var out vec3.T
	for r := 0; r < 3; r++ {
		out[r] = m.at(r, 0)*v[0] + m.at(r, 1)*v[1] + m.at(r, 2)*v[2]
	}
	return out, nil
}

// RowVec3 returns row i of a matrix with width 3 as a vector.
func (m *Matrix) RowVec3(row int) (vec3.T, error) {
	if row < 0 || row >= m.height {
		return vec3.T{}, m.rangeErr("RowVec3", row, 0)
	} else if m.width != 3 {
		return vec3.T{}, fmt.Errorf(
			"Matrix.RowVec3 on %dx%d matrix: %w",
			m.height, m.width, ErrDimensionMismatch,
		)
	}
	return vec3.T{m.at(row, 0), m.at(row, 1), m.at(row, 2)}, nil
}

// LookRotation creates the orthonormal 3x3 matrix whose rows are
// [binormal; normal; forward], where
//
//	forward  = normalize(forward)
//	binormal = normalize(up x forward)
//	normal   = normalize(forward x binormal)
//
// If forward is parallel to up, up x forward vanishes. In that case world X
// (or world Z, if forward itself points along X) is used in place of up and
// the still orthonormal result is returned together with an
// ErrDegenerateBasis error.
func LookRotation(forward, up *vec3.T) (*Matrix, error) {
	var err error

	f := forward.Normalized()
	b := vec3.Cross(up, &f)
	if b.LengthSqr() < degenerateEps {
		alt := vec3.UnitX
		if math.Abs(f[0]) > 0.9 {
			alt = vec3.UnitZ
		}
		b = vec3.Cross(&alt, &f)
		err = fmt.Errorf(
			"LookRotation(%v, %v): %w", *forward, *up, ErrDegenerateBasis,
		)
	}
	b.Normalize()

	n := vec3.Cross(&f, &b)
	n.Normalize()

	m := NewMatrix(3, 3)
	m.SetRow(0, b[0], b[1], b[2])
	m.SetRow(1, n[0], n[1], n[2])
	m.SetRow(2, f[0], f[1], f[2])
	return m, err
}
