package io

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/PhoenixofForce/SplineCoaster/math/spline"
)

const (
	ExampleTrackFile = `[Track]

#######################
# Required Parameters #
#######################

# The curve the track follows. Spline can be set to one of:
# [ Linear | Bezier | CubicBezier | BezierSpline | Hermite | Cardinal |
#   CatmullRom | BSpline ]
# CubicBezier uses the first four points.
Spline = CatmullRom

# Parameter spacing between edge loops. Smaller values give a denser mesh.
# This is measured in segments, not distance: 0.02 means fifty edge loops per
# pair of control points.
Step = 0.02

#######################
# Optional Parameters #
#######################

# Whitespace-separated table of control points, one "x y z" row per point.
# Lines starting with '#' are ignored. If unset, the five point demo track is
# used.
# Points = path/to/points.txt

# Table of velocities with one "x y z" row per control point. Required when
# Spline = Hermite and ignored otherwise.
# Velocities = path/to/velocities.txt

# Tension recorded on Cardinal splines. Velocities are always the full
# neighbor differences; CatmullRom records 0.5.
# Tension = 1

# Cardinal splines are closed back onto their first point unless Loop is set.
# Loop = false

# Table of "x y" rows describing the cross-section of the rail. If unset, the
# built-in rail profile is used.
# Outline = path/to/outline.txt
# OutlineScale = 0.25

# Number of goroutines used to build edge loops. 0 means one per CPU.
# Workers = 0

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`
	ExampleCarFile = `[Car "front"]
# Cars ride along the track at a constant speed. Positions are measured in
# distance along the track from the first control point and wrap around at
# the end of the track.

Offset = 0
Speed = 10

[Car "back"]
Offset = 3
Speed = 10`
)

type TrackConfig struct {
	// Required
	Spline string
	Step   float64

	// Optional
	Points, Velocities, Outline string
	Tension                     float64
	Loop                        bool
	OutlineScale                float64
	Workers                     int
	LogFile, ProfileFile        string
}

type CarConfig struct {
	// Required
	Speed float64

	// Optional
	Offset float64
	Name   string
}

type TrackWrapper struct {
	Track TrackConfig
	Car   map[string]*CarConfig
}

func DefaultTrackWrapper() *TrackWrapper {
	con := TrackConfig{}
	con.Spline = spline.CatmullRomKind.String()
	con.Step = 0.02
	con.Tension = 1
	con.OutlineScale = 0.25
	return &TrackWrapper{Track: con}
}

func (con *TrackConfig) ValidSpline() bool {
	_, err := spline.ParseKind(strings.TrimSpace(con.Spline))
	return err == nil
}
func (con *TrackConfig) ValidStep() bool {
	return con.Step > 0
}
func (con *TrackConfig) ValidPoints() bool {
	return con.Points != ""
}
func (con *TrackConfig) ValidVelocities() bool {
	return con.Velocities != ""
}
func (con *TrackConfig) ValidOutline() bool {
	return con.Outline != ""
}
func (con *TrackConfig) ValidOutlineScale() bool {
	return con.OutlineScale > 0
}
func (con *TrackConfig) ValidWorkers() bool {
	return con.Workers >= 0
}
func (con *TrackConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *TrackConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

// Kind returns the spline kind named by the Spline field. The field must
// already be valid.
func (con *TrackConfig) Kind() spline.Kind {
	k, _ := spline.ParseKind(strings.TrimSpace(con.Spline))
	return k
}

func (car *CarConfig) CheckInit(name string) error {
	if car.Speed < 0 {
		return fmt.Errorf(
			"Car '%s' given a negative speed, %g.", name, car.Speed,
		)
	} else if car.Offset < 0 {
		return fmt.Errorf(
			"Car '%s' given a negative offset, %g.", name, car.Offset,
		)
	}

	car.Name = name
	return nil
}

// Check validates every field of the wrapper and initializes its cars.
func (wrap *TrackWrapper) Check() error {
	con := &wrap.Track
	if !con.ValidSpline() {
		return fmt.Errorf("Invalid/non-existent 'Spline' value, '%s'.", con.Spline)
	} else if !con.ValidStep() {
		return fmt.Errorf("Invalid/non-existent 'Step' value, %g.", con.Step)
	} else if !con.ValidOutlineScale() {
		return fmt.Errorf("Invalid 'OutlineScale' value, %g.", con.OutlineScale)
	} else if !con.ValidWorkers() {
		return fmt.Errorf("Invalid 'Workers' value, %d.", con.Workers)
	} else if con.Kind() == spline.HermiteKind && !con.ValidVelocities() {
		return errors.New("Spline = Hermite requires a 'Velocities' table.")
	}

	for name, car := range wrap.Car {
		if err := car.CheckInit(name); err != nil {
			return err
		}
	}
	return nil
}

// Cars returns the configured cars sorted by name.
func (wrap *TrackWrapper) Cars() []CarConfig {
	names := make([]string, 0, len(wrap.Car))
	for name := range wrap.Car {
		names = append(names, name)
	}
	sort.Strings(names)

	cars := make([]CarConfig, len(names))
	for i, name := range names {
		cars[i] = *wrap.Car[name]
	}
	return cars
}

// ReadTrackConfig reads and checks a track configuration file.
func ReadTrackConfig(fname string) (*TrackWrapper, error) {
	wrap := DefaultTrackWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return wrap, nil
}

// ParseTrackConfig is identical to ReadTrackConfig, but reads the
// configuration from a string.
func ParseTrackConfig(text string) (*TrackWrapper, error) {
	wrap := DefaultTrackWrapper()
	if err := gcfg.ReadStringInto(wrap, text); err != nil {
		return nil, err
	}
	if err := wrap.Check(); err != nil {
		return nil, err
	}
	return wrap, nil
}
