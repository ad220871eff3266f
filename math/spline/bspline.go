package spline

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// BSpline is a uniform cubic B-spline. Each segment is shaped by four
// consecutive control points, and the curve generally does not pass
// through any of them.
type BSpline struct {
	points
}

// NewBSpline returns a uniform cubic B-spline over at least four points.
// The points are copied.
func NewBSpline(ps []vec3.T) (*BSpline, error) {
	if len(ps) < 4 {
		return nil, fmt.Errorf("NewBSpline with %d points: %w", len(ps), ErrTooFewPoints)
	}
	return &BSpline{copyPoints(ps)}, nil
}

func (b *BSpline) Segments() int { return len(b.points) - 3 }

func (b *BSpline) Eval(u float64) vec3.T {
	i, t := segment(u, b.Segments())
	s := 1 - t
	t2, t3 := t*t, t*t*t
	return blend(b.points[i:i+4],
		s*s*s/6,
		(3*t3-6*t2+4)/6,
		(-3*t3+3*t2+3*t+1)/6,
		t3/6,
	)
}

func (b *BSpline) Tangent(u float64) vec3.T {
	i, t := segment(u, b.Segments())
	s := 1 - t
	t2 := t * t
	return unit(blend(b.points[i:i+4],
		-s*s/2,
		1.5*t2-2*t,
		-1.5*t2+t+0.5,
		t2/2,
	))
}
