/*package io handles the files that describe a track: gcfg configuration
files, whitespace-separated tables of control points, velocities and
outlines, and the outputs written from a built track.
*/
package io

import (
	"fmt"

	"github.com/phil-mansfield/table"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/PhoenixofForce/SplineCoaster/math/spline"
	"github.com/PhoenixofForce/SplineCoaster/mesh"
)

// DefaultTrackPoints returns the control points of the demo track.
func DefaultTrackPoints() []vec3.T {
	return []vec3.T{
		{2, 4, 0}, {7, 0, 20}, {12, -4, 5}, {-12, 0, 17}, {-20, 2, 5},
	}
}

// ReadVec3Table reads the first three columns of a whitespace-separated
// table as one vector per row.
func ReadVec3Table(fname string) ([]vec3.T, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2}, nil)
	if err != nil {
		return nil, err
	}

	xs, ys, zs := cols[0], cols[1], cols[2]
	vs := make([]vec3.T, len(xs))
	for i := range vs {
		vs[i] = vec3.T{xs[i], ys[i], zs[i]}
	}
	return vs, nil
}

// ReadVec2Table reads the first two columns of a whitespace-separated table
// as one vector per row.
func ReadVec2Table(fname string) ([]vec2.T, error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, err
	}

	xs, ys := cols[0], cols[1]
	vs := make([]vec2.T, len(xs))
	for i := range vs {
		vs[i] = vec2.T{xs[i], ys[i]}
	}
	return vs, nil
}

// TrackPoints returns the configured control points, or the demo track if
// none are configured.
func (con *TrackConfig) TrackPoints() ([]vec3.T, error) {
	if !con.ValidPoints() {
		return DefaultTrackPoints(), nil
	}
	return ReadVec3Table(con.Points)
}

// TrackOutline returns the configured cross-section, or the built-in rail
// profile if none is configured. OutlineScale is applied to both.
func (con *TrackConfig) TrackOutline() ([]vec2.T, error) {
	if !con.ValidOutline() {
		return mesh.TrackOutline(con.OutlineScale), nil
	}

	outline, err := ReadVec2Table(con.Outline)
	if err != nil {
		return nil, err
	}
	for i := range outline {
		outline[i].Scale(con.OutlineScale)
	}
	return outline, nil
}

// BuildSpline constructs the spline described by the configuration.
func (con *TrackConfig) BuildSpline() (spline.Spline, error) {
	ps, err := con.TrackPoints()
	if err != nil {
		return nil, err
	}

	opt := spline.Options{Points: ps, Tension: con.Tension, Loop: con.Loop}
	if con.Kind() == spline.HermiteKind {
		if opt.Velocities, err = ReadVec3Table(con.Velocities); err != nil {
			return nil, err
		}
	}

	s, err := spline.New(con.Kind(), opt)
	if err != nil {
		return nil, fmt.Errorf("building %v track: %w", con.Kind(), err)
	}
	return s, nil
}
