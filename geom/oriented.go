/*package geom places local coordinate frames along a track.

An OrientedPoint is a position on a spline together with a rotation whose
rows are the binormal, normal and forward (tangent) directions at that
point. Cross-section outlines are authored in the local x-y plane and
mapped into the world with LocalToWorld, which applies the rotation to the
local point and then translates it to the position.
*/
package geom

import (
	"errors"
	"fmt"

	"github.com/PhoenixofForce/SplineCoaster/math/mat"
	"github.com/PhoenixofForce/SplineCoaster/math/spline"
	"github.com/ungerik/go3d/float64/vec3"
)

// WorldUp is the up hint used when building frames.
var WorldUp = vec3.UnitY

// OrientedPoint is a position with an orientation. Rotation must be a 3x3
// matrix with rows [binormal; normal; forward].
type OrientedPoint struct {
	Position vec3.T
	Rotation *mat.Matrix
}

// LocalToWorld maps a point in the local frame to world space:
//
//	Position + Rotation * p
func (o *OrientedPoint) LocalToWorld(p *vec3.T) (vec3.T, error) {
	d, err := o.LocalToWorldDirection(p)
	if err != nil {
		return o.Position, err
	}
	return vec3.Add(&o.Position, &d), nil
}

// WorldToLocal is the inverse of LocalToWorld, Rotation^-1 * (p - Position).
// It fails if Rotation is singular.
func (o *OrientedPoint) WorldToLocal(p *vec3.T) (vec3.T, error) {
	inv, err := o.Rotation.Inverse()
	if err != nil {
		return vec3.T{}, fmt.Errorf("WorldToLocal: %w", err)
	}
	rel := vec3.Sub(p, &o.Position)
	return mat.MulVec3(inv, &rel)
}

// LocalToWorldDirection rotates a local direction into world space without
// translating it, Rotation * p.
func (o *OrientedPoint) LocalToWorldDirection(p *vec3.T) (vec3.T, error) {
	return mat.MulVec3(o.Rotation, p)
}

// WorldToLocalDirection is an alias of LocalToWorldDirection kept for
// callers which use the older name. Despite the name, it maps local
// directions into world space.
func (o *OrientedPoint) WorldToLocalDirection(p *vec3.T) (vec3.T, error) {
	return o.LocalToWorldDirection(p)
}

// Forward returns the tangent direction of the frame.
func (o *OrientedPoint) Forward() vec3.T {
	v, _ := o.Rotation.RowVec3(2)
	return v
}

// Frame builds the oriented point at parameter u of s. When the tangent is
// parallel to WorldUp, a substitute basis is used and the frame is returned
// together with an error wrapping mat.ErrDegenerateBasis.
func Frame(s spline.Spline, u float64) (OrientedPoint, error) {
	tan := s.Tangent(u)
	rot, err := mat.LookRotation(&tan, &WorldUp)
	op := OrientedPoint{Position: s.Eval(u), Rotation: rot}
	if err != nil {
		return op, fmt.Errorf("Frame at u = %g: %w", u, err)
	}
	return op, nil
}

// Frames builds the frames at every u in us. If an output array is given,
// the output is written to that array (the array is still returned as a
// convenience). The number of degenerate frames is also returned.
func Frames(
	s spline.Spline, us []float64, out ...[]OrientedPoint,
) ([]OrientedPoint, int) {
	if len(out) == 0 {
		out = [][]OrientedPoint{make([]OrientedPoint, len(us))}
	}

	degenerate := 0
	for i, u := range us {
		var err error
		out[0][i], err = Frame(s, u)
		if errors.Is(err, mat.ErrDegenerateBasis) {
			degenerate++
		}
	}
	return out[0], degenerate
}
