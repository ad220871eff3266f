package spline

import (
	"fmt"
	"strings"

	"github.com/ungerik/go3d/float64/vec3"
)

// Kind names one of the spline variants.
type Kind int

const (
	LinearKind Kind = iota
	BezierKind
	CubicBezierKind
	BezierSplineKind
	HermiteKind
	CardinalKind
	CatmullRomKind
	BSplineKind
	EndKind
)

var kindNames = []string{
	"Linear", "Bezier", "CubicBezier", "BezierSpline", "Hermite",
	"Cardinal", "CatmullRom", "BSpline",
}

func (k Kind) String() string {
	if k < 0 || k >= EndKind {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind with the given case-insensitive name.
func ParseKind(name string) (Kind, error) {
	for k := LinearKind; k < EndKind; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return EndKind, fmt.Errorf("ParseKind(%q): %w", name, ErrUnknownKind)
}

// Options holds the inputs needed to construct any variant. Fields which a
// variant does not use are ignored.
type Options struct {
	Points     []vec3.T // CubicBezier uses the first four.
	Velocities []vec3.T // Hermite only.
	Tension    float64  // Cardinal only.
	Loop       bool     // Cardinal only.
}

// New constructs the variant named by k.
func New(k Kind, opt Options) (Spline, error) {
	s, err := newKind(k, opt)
	if err != nil {
		return nil, fmt.Errorf("New(%v): %w", k, err)
	}
	return s, nil
}

func newKind(k Kind, opt Options) (Spline, error) {
	var (
		s   Spline
		err error
	)

	switch k {
	case LinearKind:
		s, err = NewLinear(opt.Points)
	case BezierKind:
		s, err = NewBezier(opt.Points)
	case CubicBezierKind:
		s, err = newCubicBezierKind(opt.Points)
	case BezierSplineKind:
		s, err = NewBezierSpline(opt.Points)
	case HermiteKind:
		s, err = NewHermite(opt.Points, opt.Velocities)
	case CardinalKind:
		s, err = NewCardinal(opt.Points, opt.Tension, opt.Loop)
	case CatmullRomKind:
		s, err = NewCatmullRom(opt.Points)
	case BSplineKind:
		s, err = NewBSpline(opt.Points)
	default:
		return nil, ErrUnknownKind
	}

	// Failed constructors return typed nil pointers.
	if err != nil {
		return nil, err
	}
	return s, nil
}

// newCubicBezierKind builds a CubicBezier from the first four points.
func newCubicBezierKind(ps []vec3.T) (*CubicBezier, error) {
	if len(ps) < 4 {
		return nil, fmt.Errorf(
			"CubicBezier with %d points: %w", len(ps), ErrTooFewPoints,
		)
	}
	return NewCubicBezier(ps[0], ps[1], ps[2], ps[3]), nil
}
