package mat

import "errors"

// Every operation which can fail returns one of these alongside a usable
// fallback value. Match them with errors.Is; the returned errors carry the
// offending method and indices as context.
var (
	// ErrOutOfRange is returned by accessors given a row or column outside
	// the matrix.
	ErrOutOfRange = errors.New("mat: index out of range")

	// ErrDimensionMismatch is returned when operands have incompatible
	// shapes, e.g. Add on different shapes or Mul where m.Width() !=
	// n.Height().
	ErrDimensionMismatch = errors.New("mat: dimension mismatch")

	// ErrNotSquare is returned by Det, Adjoint and Inverse on non-square
	// matrices.
	ErrNotSquare = errors.New("mat: matrix is not square")

	// ErrSingular is returned by Inverse when the determinant is zero.
	ErrSingular = errors.New("mat: singular matrix")

	// ErrDegenerateBasis is returned by LookRotation when forward is
	// (anti)parallel to up and a secondary reference axis had to be used.
	ErrDegenerateBasis = errors.New("mat: forward is parallel to up")
)
