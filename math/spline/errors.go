package spline

import (
	"errors"
)

var (
	// ErrTooFewPoints is returned when a constructor is given fewer control
	// points than the variant needs.
	ErrTooFewPoints = errors.New("spline: too few control points")

	// ErrBadPointCount is returned by NewBezierSpline when the control
	// points cannot be split into cubic segments sharing their endpoints.
	ErrBadPointCount = errors.New("spline: control point count must be 3k+1")

	// ErrVelocityCount is returned by NewHermite when the number of
	// velocities differs from the number of points.
	ErrVelocityCount = errors.New("spline: velocity count differs from point count")

	// ErrUnknownKind is returned by ParseKind for unrecognized names.
	ErrUnknownKind = errors.New("spline: unknown spline kind")

	// ErrBadStep is returned when a sampling step is not positive.
	ErrBadStep = errors.New("spline: sampling step must be positive")

	// ErrZeroLength is returned by NewArcLength for curves which never
	// move.
	ErrZeroLength = errors.New("spline: curve has zero length")
)
