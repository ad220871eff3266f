package spline

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// Linear is a polyline through its control points.
type Linear struct {
	points
}

// NewLinear returns a polyline through at least two points. The points are
// copied.
func NewLinear(ps []vec3.T) (*Linear, error) {
	if len(ps) < 2 {
		return nil, fmt.Errorf("NewLinear with %d points: %w", len(ps), ErrTooFewPoints)
	}
	return &Linear{copyPoints(ps)}, nil
}

func (l *Linear) Segments() int { return len(l.points) - 1 }

func (l *Linear) Eval(u float64) vec3.T {
	i, t := segment(u, l.Segments())
	return vec3.Interpolate(&l.points[i], &l.points[i+1], t)
}

// Tangent returns the direction of the segment containing u. Corners take
// the direction of the segment that starts there.
func (l *Linear) Tangent(u float64) vec3.T {
	i, _ := segment(u, l.Segments())
	return unit(vec3.Sub(&l.points[i+1], &l.points[i]))
}
