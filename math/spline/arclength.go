package spline

import (
	"fmt"

	"github.com/PhoenixofForce/SplineCoaster/math/interpolate"
	"github.com/ungerik/go3d/float64/vec3"
)

// ArcLength maps between the parameter u of a Spline and the distance
// travelled along it. Spline parameters generally do not advance at a
// constant speed, so anything which moves along a track at a fixed rate
// (a car, a camera) needs this table.
type ArcLength struct {
	segments int
	length   float64
	dist     *interpolate.Linear // u -> distance
	param    *interpolate.Spline // distance -> u
}

// NewArcLength samples s every step parameter units and builds the
// distance tables.
func NewArcLength(s Spline, step float64) (*ArcLength, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("NewArcLength with step %g: %w", step, ErrBadStep)
	}

	us := Schedule(float64(s.Segments()), step)
	ds := make([]float64, len(us))

	// The inverse table needs strictly increasing distances, so samples
	// which do not move are dropped from it.
	invDs, invUs := []float64{0}, []float64{0}

	prev := s.Eval(us[0])
	for i := 1; i < len(us); i++ {
		curr := s.Eval(us[i])
		ds[i] = ds[i-1] + vec3.Distance(&prev, &curr)
		prev = curr

		if ds[i] > invDs[len(invDs)-1] {
			invDs = append(invDs, ds[i])
			invUs = append(invUs, us[i])
		}
	}

	if len(invDs) < 2 {
		return nil, fmt.Errorf("NewArcLength: %w", ErrZeroLength)
	}

	dist, err := interpolate.NewLinear(us, ds)
	if err != nil {
		return nil, err
	}
	param, err := interpolate.NewSpline(invDs, invUs)
	if err != nil {
		return nil, err
	}

	return &ArcLength{
		segments: s.Segments(),
		length:   ds[len(ds)-1],
		dist:     dist,
		param:    param,
	}, nil
}

// Length returns the total length of the curve.
func (a *ArcLength) Length() float64 { return a.length }

// Distance returns the distance along the curve from u = 0 to u.
func (a *ArcLength) Distance(u float64) float64 {
	return a.dist.Eval(u)
}

// U returns the parameter value d units along the curve. d is clamped to
// [0, Length()].
func (a *ArcLength) U(d float64) float64 {
	return clamp(a.param.Eval(d), a.segments)
}

// Us converts every distance in ds to a parameter value, following the same
// output rules as EvalAll.
func (a *ArcLength) Us(ds []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(ds))}
	}
	for i, d := range ds {
		out[0][i] = a.U(d)
	}
	return out[0]
}
