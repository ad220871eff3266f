package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/spf13/cobra"

	"github.com/PhoenixofForce/SplineCoaster/io"
	"github.com/PhoenixofForce/SplineCoaster/math/spline"
	"github.com/PhoenixofForce/SplineCoaster/mesh"
)

type FileGroup struct {
	log, prof *os.File
}

func (fg *FileGroup) Close() {
	if fg.log != nil {
		log.SetOutput(os.Stderr)
		if err := fg.log.Close(); err != nil {
			log.Println(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		if err := fg.prof.Close(); err != nil {
			log.Println(err.Error())
		}
	}
}

// openFiles starts logging and profiling as requested by the config.
func openFiles(con *io.TrackConfig) (*FileGroup, error) {
	fg := &FileGroup{}

	if con.ValidLogFile() {
		f, err := os.Create(con.LogFile)
		if err != nil {
			return nil, err
		}
		fg.log = f
		log.SetOutput(f)
	}

	if con.ValidProfileFile() {
		f, err := os.Create(con.ProfileFile)
		if err != nil {
			fg.Close()
			return nil, err
		}
		fg.prof = f
		if err := pprof.StartCPUProfile(f); err != nil {
			fg.Close()
			return nil, err
		}
	}

	return fg, nil
}

// track bundles everything built from a config file.
type track struct {
	wrap  *io.TrackWrapper
	files *FileGroup
	s     spline.Spline
}

func loadTrack(fname string) (*track, error) {
	wrap, err := io.ReadTrackConfig(fname)
	if err != nil {
		return nil, err
	}
	fg, err := openFiles(&wrap.Track)
	if err != nil {
		return nil, err
	}

	s, err := wrap.Track.BuildSpline()
	if err != nil {
		fg.Close()
		return nil, err
	}
	log.Printf(
		"Built %v track with %d segments from %s.",
		wrap.Track.Kind(), s.Segments(), fname,
	)
	return &track{wrap, fg, s}, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "coaster",
		Short:         "Lay out roller coaster tracks along splines and mesh them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(extrudeCmd())
	rootCmd.AddCommand(framesCmd())
	rootCmd.AddCommand(lengthCmd())
	rootCmd.AddCommand(plotCmd())
	rootCmd.AddCommand(exampleConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err.Error())
	}
}

func extrudeCmd() *cobra.Command {
	var (
		output  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "extrude [config-file]",
		Short: "Sweep the rail outline along the track and write the mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") && workers < 0 {
				return fmt.Errorf("Invalid --workers value, %d.", workers)
			}
			return runExtrude(args[0], output, workers)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "track.obj",
		"Mesh file to write. Files ending in .stl are written as binary "+
			"STL, everything else as Wavefront OBJ.")
	cmd.Flags().IntVarP(&workers, "workers", "w", -1,
		"Goroutines used to build edge loops. Overrides the config file.")
	return cmd
}

func runExtrude(fname, output string, workers int) error {
	t, err := loadTrack(fname)
	if err != nil {
		return err
	}
	defer t.files.Close()

	con := &t.wrap.Track
	outline, err := con.TrackOutline()
	if err != nil {
		return err
	}
	if workers < 0 {
		workers = con.Workers
	}

	start := time.Now()
	m, err := mesh.ExtrudeParallel(
		context.Background(), outline, t.s, con.Step, workers,
	)
	if err != nil {
		return err
	}
	log.Printf(
		"Extruded %d triangles (%d vertices) in %s.",
		m.TriangleCount(), m.VertexCount(), time.Since(start),
	)

	if strings.EqualFold(filepath.Ext(output), ".stl") {
		return io.WriteSTLFile(output, m, con.Kind().String())
	}
	return io.WriteOBJFile(output, m)
}

func framesCmd() *cobra.Command {
	var (
		output     string
		step, when float64
	)

	cmd := &cobra.Command{
		Use:   "frames [config-file]",
		Short: "Write the oriented frames along the track as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if !(step > 0) {
				return fmt.Errorf("Invalid --step value, %g.", step)
			}
			return runFrames(args[0], output, step, when)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "",
		"YAML file to write. Defaults to stdout.")
	cmd.Flags().Float64VarP(&step, "step", "s", 0.1,
		"Parameter spacing between frames.")
	cmd.Flags().Float64VarP(&when, "time", "t", 0,
		"Time at which configured cars are placed on the track.")
	return cmd
}

func runFrames(fname, output string, step, when float64) error {
	t, err := loadTrack(fname)
	if err != nil {
		return err
	}
	defer t.files.Close()

	arc, err := spline.NewArcLength(t.s, t.wrap.Track.Step)
	if err != nil {
		return err
	}
	us, err := mesh.Samples(t.s.Segments(), step)
	if err != nil {
		return err
	}

	dump, err := io.NewFrameDump(t.wrap.Track.Kind().String(), t.s, arc, us)
	if err != nil {
		return err
	}
	if err := dump.AddCars(t.wrap.Cars(), t.s, arc, when); err != nil {
		return err
	}

	if output == "" {
		return io.WriteFrames(os.Stdout, dump)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := io.WriteFrames(f, dump); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func lengthCmd() *cobra.Command {
	var rate float64

	cmd := &cobra.Command{
		Use:   "length [config-file]",
		Short: "Print the length of the track",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := loadTrack(args[0])
			if err != nil {
				return err
			}
			defer t.files.Close()

			arc, err := spline.NewArcLength(t.s, t.wrap.Track.Step)
			if err != nil {
				return err
			}
			fmt.Printf("%-10s %12s %12s\n", "spline", "estimate", "arc length")
			fmt.Printf("%-10v %12.5g %12.5g\n", t.wrap.Track.Kind(),
				spline.EstimateLength(t.s, rate, -1), arc.Length())
			return nil
		},
	}

	cmd.Flags().Float64VarP(&rate, "rate", "r", spline.DefaultSampleRate,
		"Sample spacing used for the quick length estimate.")
	return cmd
}

func plotCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "plot [config-file]",
		Short: "Plot the track and its speed profile with matplotlib",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := loadTrack(args[0])
			if err != nil {
				return err
			}
			defer t.files.Close()

			ps, err := t.wrap.Track.TrackPoints()
			if err != nil {
				return err
			}
			arc, err := spline.NewArcLength(t.s, t.wrap.Track.Step)
			if err != nil {
				return err
			}

			name, step := t.wrap.Track.Kind().String(), t.wrap.Track.Step
			io.PlotTrack(name, t.s, ps, step, prefix+"_track.png")
			io.PlotSpeed(name, arc, t.s.Segments(), step, prefix+"_speed.png")
			plt.Execute()
			return nil
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "coaster",
		"Prefix of the written image files.")
	return cmd
}

func exampleConfigCmd() *cobra.Command {
	examples := map[string]string{
		"track": io.ExampleTrackFile,
		"car":   io.ExampleCarFile,
	}

	return &cobra.Command{
		Use:   "example-config [Track | Car]",
		Short: "Print an example configuration file to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			text, ok := examples[strings.ToLower(args[0])]
			if !ok {
				return fmt.Errorf(
					"Unrecognized example type '%s'. Accepted arguments are "+
						"'Track' and 'Car'.", args[0],
				)
			}
			fmt.Println(text)
			return nil
		},
	}
}
