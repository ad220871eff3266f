package spline

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// Bezier is a single Bezier curve of degree n-1 over all n control points.
// Its domain still has n-1 segments so that it can be swapped for the other
// variants, but the curve is only pinned to the first and last points.
type Bezier struct {
	points
}

// NewBezier returns a Bezier curve over at least two points. The points are
// copied.
func NewBezier(ps []vec3.T) (*Bezier, error) {
	if len(ps) < 2 {
		return nil, fmt.Errorf("NewBezier with %d points: %w", len(ps), ErrTooFewPoints)
	}
	return &Bezier{copyPoints(ps)}, nil
}

func (b *Bezier) Segments() int { return len(b.points) - 1 }

func (b *Bezier) Eval(u float64) vec3.T {
	return b.casteljau(b.global(u), 1)[0]
}

// AtPercent evaluates the curve at the fraction p of its domain.
func (b *Bezier) AtPercent(p float64) vec3.T {
	return b.Eval(p * float64(b.Segments()))
}

// Tangent returns the direction between the two points of the last
// De Casteljau level.
func (b *Bezier) Tangent(u float64) vec3.T {
	level := b.casteljau(b.global(u), 2)
	return unit(vec3.Sub(&level[1], &level[0]))
}

// global maps u onto the curve parameter in [0, 1].
func (b *Bezier) global(u float64) float64 {
	segs := b.Segments()
	return clamp(u, segs) / float64(segs)
}

// casteljau runs De Casteljau's algorithm until only stop points remain.
func (b *Bezier) casteljau(t float64, stop int) []vec3.T {
	buf := b.Points()
	for n := len(buf); n > stop; n-- {
		for i := 0; i < n-1; i++ {
			buf[i] = vec3.Interpolate(&buf[i], &buf[i+1], t)
		}
	}
	return buf[:stop]
}

// CubicBezier is a single cubic Bezier curve over exactly four control
// points. Its domain is [0, 1].
type CubicBezier struct {
	points
}

// NewCubicBezier returns the cubic Bezier curve with the given control
// points.
func NewCubicBezier(c1, c2, c3, c4 vec3.T) *CubicBezier {
	return &CubicBezier{points{c1, c2, c3, c4}}
}

func (c *CubicBezier) Segments() int { return 1 }

func (c *CubicBezier) Eval(u float64) vec3.T {
	return cubicBezierAt(c.points, clamp(u, 1))
}

func (c *CubicBezier) Tangent(u float64) vec3.T {
	return unit(cubicBezierDiff(c.points, clamp(u, 1)))
}

// cubicBezierAt evaluates the Bernstein form of the cubic through ps[0:4].
func cubicBezierAt(ps []vec3.T, t float64) vec3.T {
	s := 1 - t
	return blend(ps, s*s*s, 3*t*s*s, 3*t*t*s, t*t*t)
}

// cubicBezierDiff returns the derivative of cubicBezierAt with respect to t.
func cubicBezierDiff(ps []vec3.T, t float64) vec3.T {
	s := 1 - t
	return blend(ps, -3*s*s, 3*s*s-6*t*s, 6*t*s-3*t*t, 3*t*t)
}

// BezierSpline is a chain of cubic Bezier curves. Segment i uses the points
// 3i through 3i+3, so consecutive segments share an endpoint and the curve
// passes through every third control point.
type BezierSpline struct {
	points
}

// NewBezierSpline returns a chain of cubic Bezier curves. The number of
// points must be 3k+1 for some k >= 1. The points are copied.
func NewBezierSpline(ps []vec3.T) (*BezierSpline, error) {
	if len(ps) < 4 {
		return nil, fmt.Errorf("NewBezierSpline with %d points: %w",
			len(ps), ErrTooFewPoints)
	} else if (len(ps)-1)%3 != 0 {
		return nil, fmt.Errorf("NewBezierSpline with %d points: %w",
			len(ps), ErrBadPointCount)
	}
	return &BezierSpline{copyPoints(ps)}, nil
}

func (b *BezierSpline) Segments() int { return (len(b.points) - 1) / 3 }

func (b *BezierSpline) Eval(u float64) vec3.T {
	if u >= float64(b.Segments()) {
		return b.points[len(b.points)-1]
	}
	i, t := segment(u, b.Segments())
	return cubicBezierAt(b.points[3*i:3*i+4], t)
}

func (b *BezierSpline) Tangent(u float64) vec3.T {
	i, t := segment(u, b.Segments())
	return unit(cubicBezierDiff(b.points[3*i:3*i+4], t))
}
