package io

import (
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/PhoenixofForce/SplineCoaster/geom"
	"github.com/PhoenixofForce/SplineCoaster/math/spline"
)

// FrameRecord is the serialized form of a geom.OrientedPoint.
type FrameRecord struct {
	U        float64    `yaml:"u"`
	Position [3]float64 `yaml:"position,flow"`
	Binormal [3]float64 `yaml:"binormal,flow"`
	Normal   [3]float64 `yaml:"normal,flow"`
	Forward  [3]float64 `yaml:"forward,flow"`
}

// CarRecord places a named car on the track.
type CarRecord struct {
	Name     string      `yaml:"name"`
	Distance float64     `yaml:"distance"`
	Frame    FrameRecord `yaml:"frame"`
}

// FrameDump is the document written by WriteFrames.
type FrameDump struct {
	Spline   string        `yaml:"spline"`
	Segments int           `yaml:"segments"`
	Length   float64       `yaml:"length"`
	Time     float64       `yaml:"time,omitempty"`
	Frames   []FrameRecord `yaml:"frames"`
	Cars     []CarRecord   `yaml:"cars,omitempty"`
}

// NewFrameRecord flattens the frame at parameter u.
func NewFrameRecord(u float64, op *geom.OrientedPoint) (FrameRecord, error) {
	rec := FrameRecord{U: u, Position: op.Position}
	rows := []*[3]float64{&rec.Binormal, &rec.Normal, &rec.Forward}
	for i, row := range rows {
		v, err := op.Rotation.RowVec3(i)
		if err != nil {
			return rec, err
		}
		*row = v
	}
	return rec, nil
}

// NewFrameDump builds the frames of s at every u in us. Frames with a
// substitute basis are kept.
func NewFrameDump(
	name string, s spline.Spline, arc *spline.ArcLength, us []float64,
) (*FrameDump, error) {
	ops, _ := geom.Frames(s, us)

	dump := &FrameDump{
		Spline:   name,
		Segments: s.Segments(),
		Length:   arc.Length(),
		Frames:   make([]FrameRecord, len(ops)),
	}
	for i := range ops {
		var err error
		if dump.Frames[i], err = NewFrameRecord(us[i], &ops[i]); err != nil {
			return nil, err
		}
	}
	return dump, nil
}

// CarDistance returns how far along a track of the given length the car is
// after time has passed. Cars wrap around to the start of the track.
func CarDistance(car *CarConfig, length, time float64) float64 {
	if length <= 0 {
		return 0
	}
	d := math.Mod(car.Offset+car.Speed*time, length)
	if d < 0 {
		d += length
	}
	return d
}

// AddCars places every car on the track at the given time.
func (dump *FrameDump) AddCars(
	cars []CarConfig, s spline.Spline, arc *spline.ArcLength, time float64,
) error {
	dump.Time = time
	for i := range cars {
		d := CarDistance(&cars[i], arc.Length(), time)
		u := arc.U(d)

		op, _ := geom.Frame(s, u)
		rec, err := NewFrameRecord(u, &op)
		if err != nil {
			return fmt.Errorf("placing car '%s': %w", cars[i].Name, err)
		}
		dump.Cars = append(dump.Cars, CarRecord{
			Name: cars[i].Name, Distance: d, Frame: rec,
		})
	}
	return nil
}

// WriteFrames writes dump to w as YAML.
func WriteFrames(w io.Writer, dump *FrameDump) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadFrames reads a document written by WriteFrames.
func ReadFrames(r io.Reader) (*FrameDump, error) {
	dump := &FrameDump{}
	if err := yaml.NewDecoder(r).Decode(dump); err != nil {
		return nil, err
	}
	return dump, nil
}
