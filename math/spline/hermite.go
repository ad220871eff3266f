package spline

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// Hermite is a cubic Hermite spline: each segment runs from points[i] to
// points[i+1] leaving with velocities[i] and arriving with velocities[i+1].
type Hermite struct {
	points
	velocities []vec3.T
}

// NewHermite returns the Hermite spline through at least two points with
// one velocity per point. The tables are copied.
func NewHermite(ps, velocities []vec3.T) (*Hermite, error) {
	if len(ps) < 2 {
		return nil, fmt.Errorf("NewHermite with %d points: %w", len(ps), ErrTooFewPoints)
	} else if len(ps) != len(velocities) {
		return nil, fmt.Errorf("NewHermite with %d points and %d velocities: %w",
			len(ps), len(velocities), ErrVelocityCount)
	}

	return &Hermite{
		points:     copyPoints(ps),
		velocities: append([]vec3.T(nil), velocities...),
	}, nil
}

// Velocities returns a copy of the velocity table.
func (h *Hermite) Velocities() []vec3.T {
	return append([]vec3.T(nil), h.velocities...)
}

func (h *Hermite) Segments() int { return len(h.points) - 1 }

func (h *Hermite) Eval(u float64) vec3.T {
	if u >= float64(h.Segments()) {
		return h.points[len(h.points)-1]
	}

	i, t := segment(u, h.Segments())
	t2, t3 := t*t, t*t*t
	return blend(h.span(i),
		2*t3-3*t2+1, t3-2*t2+t, -2*t3+3*t2, t3-t2,
	)
}

func (h *Hermite) Tangent(u float64) vec3.T {
	i, t := segment(u, h.Segments())
	t2 := t * t
	return unit(blend(h.span(i),
		6*t2-6*t, 3*t2-4*t+1, -6*t2+6*t, 3*t2-2*t,
	))
}

// span returns p0, v0, p1, v1 for segment i, in the order the basis
// weights expect them.
func (h *Hermite) span(i int) []vec3.T {
	return []vec3.T{
		h.points[i], h.velocities[i], h.points[i+1], h.velocities[i+1],
	}
}

// CatmullRomTension is the tension recorded on Catmull-Rom splines.
const CatmullRomTension = 0.5

// Cardinal is a Hermite spline whose velocities are derived from the
// neighbors of each point. Tension is carried as configuration only and
// does not change the velocities.
//
// Unless the spline is marked as a loop, the first point is appended to the
// end of the control points, closing the track. A looped spline is taken to
// already be closed by the caller.
type Cardinal struct {
	*Hermite
	Tension float64
	Loop    bool
}

// NewCardinal returns a Cardinal spline through at least two points. The
// velocity at an interior point is p[i+1] - p[i-1], and at the two ends it
// is twice the one-sided difference.
func NewCardinal(ps []vec3.T, tension float64, loop bool) (*Cardinal, error) {
	if len(ps) < 2 {
		return nil, fmt.Errorf("NewCardinal with %d points: %w", len(ps), ErrTooFewPoints)
	}

	n := len(ps)
	vs := make([]vec3.T, n)
	vs[0] = vec3.Sub(&ps[1], &ps[0])
	vs[0].Scale(2)
	for i := 1; i < n-1; i++ {
		vs[i] = vec3.Sub(&ps[i+1], &ps[i-1])
	}
	vs[n-1] = vec3.Sub(&ps[n-1], &ps[n-2])
	vs[n-1].Scale(2)

	closed := append([]vec3.T(nil), ps...)
	if !loop {
		closed = append(closed, ps[0])
		vs = append(vs, vs[0])
	}

	h, err := NewHermite(closed, vs)
	if err != nil {
		return nil, err
	}
	return &Cardinal{Hermite: h, Tension: tension, Loop: loop}, nil
}

// NewCatmullRom returns a Cardinal spline with CatmullRomTension which is
// closed back onto its first point.
func NewCatmullRom(ps []vec3.T) (*Cardinal, error) {
	c, err := NewCardinal(ps, CatmullRomTension, false)
	if err != nil {
		return nil, fmt.Errorf("NewCatmullRom: %w", err)
	}
	return c, nil
}
