package io

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/PhoenixofForce/SplineCoaster/math/spline"
)

// PlotTrack queues a top-down (x-z) figure of s and its control points
// which will be saved to fname. Nothing is drawn until plt.Execute is
// called, which allows many figures to be rendered by a single Python
// process.
func PlotTrack(name string, s spline.Spline, ps []vec3.T, step float64, fname string) {
	us := spline.Schedule(float64(s.Segments()), step)
	curve := spline.EvalAll(s, us)

	xs, zs := make([]float64, len(curve)), make([]float64, len(curve))
	for i := range curve {
		xs[i], zs[i] = curve[i][0], curve[i][2]
	}
	pxs, pzs := make([]float64, len(ps)), make([]float64, len(ps))
	for i := range ps {
		pxs[i], pzs[i] = ps[i][0], ps[i][2]
	}

	plt.Figure(plt.FigSize(8, 8))
	plt.Plot(pxs, pzs, "--o", plt.C("gray"))
	plt.Plot(xs, zs, "k", plt.LW(2))
	plt.Title(fmt.Sprintf("%s track, %d segments", name, s.Segments()))
	plt.XLabel(`$X$`, plt.FontSize(16))
	plt.YLabel(`$Z$`, plt.FontSize(16))
	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"))
	plt.SaveFig(fname)
}

// PlotSpeed queues a figure of distance travelled against u, which shows
// how unevenly the parameter advances along the track.
func PlotSpeed(name string, arc *spline.ArcLength, segments int, step float64, fname string) {
	us := spline.Schedule(float64(segments), step)
	ds := make([]float64, len(us))
	for i, u := range us {
		ds[i] = arc.Distance(u)
	}

	plt.Figure()
	plt.Plot(us, ds, "k", plt.LW(2))
	plt.Title(fmt.Sprintf("%s track, length %.3g", name, arc.Length()))
	plt.XLabel(`$u$`, plt.FontSize(16))
	plt.YLabel(`distance`, plt.FontSize(16))
	plt.XLim(0, float64(segments))
	plt.YLim(0, arc.Length())
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
}
