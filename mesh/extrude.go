package mesh

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"

	"github.com/PhoenixofForce/SplineCoaster/geom"
	"github.com/PhoenixofForce/SplineCoaster/math/mat"
	"github.com/PhoenixofForce/SplineCoaster/math/spline"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
	"golang.org/x/sync/errgroup"
)

// Samples returns the parameter values 0, step, 2*step, ... up to and
// including segments. The last step may be shorter than step.
func Samples(segments int, step float64) ([]float64, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("Samples with step %g: %w", step, ErrBadStep)
	}
	return spline.Schedule(float64(segments), step), nil
}

// Extrude sweeps outline along s, placing an edge loop every step parameter
// units, and stitches the loops into triangles. The outline is not closed:
// a k-point outline gives 2(k-1) triangles between each pair of loops.
func Extrude(outline []vec2.T, s spline.Spline, step float64) (*Mesh, error) {
	us, err := checkInputs(outline, step, s)
	if err != nil {
		return nil, err
	}

	loops := make([][]vec3.T, len(us))
	degenerate := 0
	for i, u := range us {
		var bad bool
		loops[i], bad, err = edgeLoop(outline, s, u)
		if err != nil {
			return nil, err
		}
		if bad {
			degenerate++
		}
	}

	return stitch(loops, degenerate)
}

// ExtrudeParallel computes the same mesh as Extrude, building edge loops on
// up to workers goroutines. A non-positive worker count means GOMAXPROCS.
// The triangles are in the same order as Extrude's.
func ExtrudeParallel(
	ctx context.Context, outline []vec2.T, s spline.Spline,
	step float64, workers int,
) (*Mesh, error) {
	us, err := checkInputs(outline, step, s)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	loops := make([][]vec3.T, len(us))
	bad := make([]bool, len(us))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range us {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var err error
			loops[i], bad[i], err = edgeLoop(outline, s, us[i])
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	degenerate := 0
	for _, b := range bad {
		if b {
			degenerate++
		}
	}
	return stitch(loops, degenerate)
}

func checkInputs(outline []vec2.T, step float64, s spline.Spline) ([]float64, error) {
	if len(outline) < 2 {
		return nil, fmt.Errorf("Extrude with %d outline points: %w",
			len(outline), ErrShortOutline)
	}
	return Samples(s.Segments(), step)
}

// edgeLoop places outline in the frame at u. The flag reports whether the
// frame had to fall back to a substitute basis.
func edgeLoop(outline []vec2.T, s spline.Spline, u float64) ([]vec3.T, bool, error) {
	op, err := geom.Frame(s, u)
	degenerate := errors.Is(err, mat.ErrDegenerateBasis)
	if err != nil && !degenerate {
		return nil, false, err
	}

	loop := make([]vec3.T, len(outline))
	for i, p := range outline {
		local := vec3.T{p[0], p[1], 0}
		if loop[i], err = op.LocalToWorld(&local); err != nil {
			return nil, degenerate, err
		}
	}
	return loop, degenerate, nil
}

// stitch connects consecutive edge loops. For loops l1 and l2 and adjacent
// outline points i, i+1 it emits (l1[i], l1[i+1], l2[i]) and
// (l2[i], l1[i+1], l2[i+1]).
func stitch(loops [][]vec3.T, degenerate int) (*Mesh, error) {
	if degenerate > 0 {
		log.Printf(
			"mesh: %d of %d frames were parallel to the up vector; "+
				"a substitute basis was used.", degenerate, len(loops),
		)
	}

	k := len(loops[0])
	grid := geom.NewGrid(len(loops), k)
	b := NewBuilder(grid.Length, 2*(k-1)*(len(loops)-1))

	for l := range loops {
		for c := range loops[l] {
			b.AddVertex(loops[l][c])
		}
	}

	for l := 0; l < len(loops)-1; l++ {
		for i := 0; i < k-1; i++ {
			a1, b1 := grid.Idx(l, i), grid.Idx(l, i+1)
			a2, b2 := grid.Idx(l+1, i), grid.Idx(l+1, i+1)
			if _, err := b.AddTriangle(a1, b1, a2); err != nil {
				return nil, err
			}
			if _, err := b.AddTriangle(a2, b1, b2); err != nil {
				return nil, err
			}
		}
	}

	return b.Build(), nil
}
