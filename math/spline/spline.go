/*package spline contains the family of parametric curves used to lay out a
track.

Given a series of n control points that form a path

	p0-----p1
	       /
	      /
	     /
	    p2-----p3

a Spline computes, for every u in [0, Segments()], a point on a curve which
runs through (or near) the control points. The span between two consecutive
integer values of u is a segment, and t = u - floor(u) is the progress along
that segment. Values of u outside the domain are clamped to the nearest end,
so every Spline is defined for all real u.

All variants are immutable after construction and safe for concurrent use.
*/
package spline

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Spline is a parametric curve over the domain [0, Segments()].
type Spline interface {
	// Eval returns the position at u.
	Eval(u float64) vec3.T
	// Tangent returns the unit tangent at u.
	Tangent(u float64) vec3.T
	// Segments returns the number of segments in the domain.
	Segments() int
}

var (
	_ Spline = &Linear{}
	_ Spline = &Bezier{}
	_ Spline = &CubicBezier{}
	_ Spline = &BezierSpline{}
	_ Spline = &Hermite{}
	_ Spline = &Cardinal{}
	_ Spline = &BSpline{}
)

// points is the control point storage shared by all variants.
type points []vec3.T

// Points returns a copy of the control points.
func (ps points) Points() []vec3.T {
	return append([]vec3.T(nil), ps...)
}

func copyPoints(ps []vec3.T) points {
	return append(points(nil), ps...)
}

// segment splits u into a segment index and the local parameter t in [0, 1].
// u is clamped to [0, segments]; the end of the domain maps onto the last
// segment with t = 1.
func segment(u float64, segments int) (i int, t float64) {
	if !(u > 0) {
		return 0, 0
	} else if u >= float64(segments) {
		return segments - 1, 1
	}

	fi := math.Floor(u)
	return int(fi), u - fi
}

// clamp restricts u to [0, segments].
func clamp(u float64, segments int) float64 {
	if !(u > 0) {
		return 0
	} else if u > float64(segments) {
		return float64(segments)
	}
	return u
}

// blend returns the weighted sum ws[0]*ps[0] + ws[1]*ps[1] + ...
func blend(ps []vec3.T, ws ...float64) vec3.T {
	var out vec3.T
	for i, w := range ws {
		out[0] += w * ps[i][0]
		out[1] += w * ps[i][1]
		out[2] += w * ps[i][2]
	}
	return out
}

// unit normalizes v, leaving zero vectors unchanged.
func unit(v vec3.T) vec3.T {
	return *v.Normalize()
}

// EvalAll evaluates s at every u in us. If an output array is given, the
// output is written to that array (the array is still returned as a
// convenience).
//
// If more than one output array is provided, only the first is used.
func EvalAll(s Spline, us []float64, out ...[]vec3.T) []vec3.T {
	if len(out) == 0 {
		out = [][]vec3.T{make([]vec3.T, len(us))}
	}
	for i, u := range us {
		out[0][i] = s.Eval(u)
	}
	return out[0]
}

// TangentAll computes the tangent of s at every u in us, following the same
// output rules as EvalAll.
func TangentAll(s Spline, us []float64, out ...[]vec3.T) []vec3.T {
	if len(out) == 0 {
		out = [][]vec3.T{make([]vec3.T, len(us))}
	}
	for i, u := range us {
		out[0][i] = s.Tangent(u)
	}
	return out[0]
}

// Schedule returns the parameter values 0, step, 2*step, ... up to and
// including last. The final step may be shorter than step so that the
// schedule always ends exactly at last. step must be positive.
func Schedule(last, step float64) []float64 {
	if last <= 0 {
		return []float64{0}
	}

	// Multiplying instead of accumulating keeps rounding error from
	// drifting across long schedules.
	n := int(math.Floor(last/step + 1e-9))
	us := make([]float64, 0, n+2)
	for k := 0; k <= n; k++ {
		us = append(us, float64(k)*step)
	}

	if last-us[n] > 1e-9*step {
		us = append(us, last)
	} else {
		us[n] = last
	}
	return us
}

// DefaultSampleRate is the sample spacing, in parameter units, used by
// EstimateLength when none is given.
const DefaultSampleRate = 0.05

// EstimateLength approximates the length of s between u = 0 and u = lastU by
// summing the chords between samples spaced sampleRate apart. A negative
// lastU means the end of the curve and a non-positive sampleRate means
// DefaultSampleRate.
func EstimateLength(s Spline, sampleRate, lastU float64) float64 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if lastU < 0 {
		lastU = float64(s.Segments())
	}

	us := Schedule(clamp(lastU, s.Segments()), sampleRate)
	length := 0.0
	prev := s.Eval(us[0])
	for _, u := range us[1:] {
		curr := s.Eval(u)
		length += vec3.Distance(&prev, &curr)
		prev = curr
	}
	return length
}
