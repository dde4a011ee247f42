package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/quadfield/field"
	"github.com/phil-mansfield/quadfield/geom"
	"github.com/phil-mansfield/quadfield/math/interpolate"
	"github.com/phil-mansfield/quadfield/render"
	"github.com/phil-mansfield/quadfield/render/colormap"
	"github.com/phil-mansfield/quadfield/render/io"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		fieldStr, exampleConfig string
	)
	vars := map[string]*string{
		"Field":         &fieldStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&render.NumCores, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&fieldStr, "Field", "",
		"Configuration file for [Field] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. The only accepted argument is 'Field'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Field":
		con, err := io.ReadFieldConfig(fieldStr)
		if err != nil {
			log.Fatal(err.Error())
		}

		// fg must be closed before exiting so the CPU profile is flushed.
		fg := setupIO(con)
		err = fieldMain(con)
		fg.Close()
		if err != nil {
			log.Fatal(err.Error())
		}

	case "ExampleConfig":
		switch exampleConfig {
		case "Field":
			fmt.Println(io.ExampleFieldFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only recognized " +
					"argument is 'Field'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but quadfield "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// fieldMain runs the [Field] pipeline. It returns rather than exiting on
// errors so that the caller can close its log and profile files first.
func fieldMain(con *io.FieldConfig) error {
	method, err := interpolate.ParseMethod(con.Method)
	if err != nil {
		return err
	}
	pal, err := colormap.ByName(con.Palette)
	if err != nil {
		return err
	}
	pixels := con.ImagePixels()

	if err := os.MkdirAll(con.Output, 0755); err != nil {
		return err
	}

	f, err := createField(con)
	if err != nil {
		return err
	}
	f.Workers = render.NumCores
	c := f.Corners()
	xSplit, ySplit := f.Split()
	log.Printf(
		"Created %d x %d field with corners z00 = %.4g, z10 = %.4g, "+
			"z01 = %.4g, z11 = %.4g and split (%d, %d).",
		f.Size(), f.Size(), c.Z00, c.Z10, c.Z01, c.Z11, xSplit, ySplit,
	)

	if con.RawImage {
		g := render.ResampleNearest(f.Grid(false), pixels)
		if err := writeImage(con, "raw", g, pal); err != nil {
			return err
		}
	}

	if con.Verify {
		err := f.Verify(interpolate.DefaultTolerance)
		var div *interpolate.DivergenceError
		if errors.As(err, &div) {
			return fmt.Errorf("Interpolation methods disagree, this is a bug: %w", div)
		} else if errors.Is(err, interpolate.ErrDegenerateDomain) {
			return fmt.Errorf("'Size' must be at least 2 to interpolate: %w", err)
		} else if err != nil {
			return err
		}
		log.Printf(
			"All %d interpolation methods agree to within %g.",
			len(interpolate.Methods), interpolate.DefaultTolerance,
		)
	}

	if err := f.Interpolate(method); err != nil {
		if errors.Is(err, interpolate.ErrDegenerateDomain) {
			return fmt.Errorf("'Size' must be at least 2 to interpolate: %w", err)
		}
		return err
	}

	name := "interpolated_" + method.String()
	g := render.Resample(f.Grid(true), pixels)
	if err := writeImage(con, name, g, pal); err != nil {
		return err
	}

	if con.ValidProfileRow() {
		return plotProfile(f, con.ProfileRow, con.ProfilePlot)
	}
	return nil
}

func setupIO(con *io.FieldConfig) *FileGroup {
	fg := &FileGroup{}

	var err error
	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

// createField builds the field from either the corners file or the seeded
// random source.
func createField(con *io.FieldConfig) (*field.Field, error) {
	seed := con.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("Using seed %d.", seed)
	rng := field.NewRandomSource(seed)

	if !con.ValidCornersFile() {
		return field.New(con.Size, rng)
	}

	c, err := io.ReadCorners(con.CornersFile)
	if err != nil {
		return nil, err
	}
	return field.NewFromCorners(
		con.Size, c, rng.Intn(con.Size), rng.Intn(con.Size),
	)
}

func writeImage(
	con *io.FieldConfig, name string, g *geom.Grid, pal *colormap.Palette,
) (err error) {
	fname, err := con.OutputName(name)
	if err != nil {
		return err
	}
	out := path.Join(con.Output, fname)
	log.Printf("Writing to %s", out)

	img := render.Render(g, pal)

	fout, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("Could not create %s: %w", out, err)
	}
	defer func() {
		if cerr := fout.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("Could not close %s: %w", out, cerr)
		}
	}()

	return render.Encode(fout, img, con.Format)
}

// profileSamples is the number of points per cell used to draw the
// interpolated row profile.
const profileSamples = 4

// plotProfile plots one row of both the quadrant field and the interpolated
// field.
func plotProfile(f *field.Field, row int, fname string) error {
	raw, intp := f.Grid(false), f.Grid(true)
	if !raw.BoundsCheck(row, 0) {
		return fmt.Errorf(
			"Profile row %d is outside the %d x %d field.", row, raw.Width, raw.Width,
		)
	}

	n := raw.Width
	ys := make([]float64, n)
	for y := range ys {
		ys[y] = float64(y)
	}
	rawRow := raw.Vals[raw.Idx(row, 0) : raw.Idx(row, n-1)+1]

	fineYs := make([]float64, (n-1)*profileSamples+1)
	for i := range fineYs {
		fineYs[i] = float64(i) / profileSamples
	}
	bi := interpolate.NewUniformBiLinear(0, 1, n, 0, 1, n, intp.Vals)
	fineRow := bi.EvalAllX(float64(row), fineYs)

	method, _ := f.Method()

	plt.Reset()
	plt.Figure()
	plt.Plot(ys, rawRow, "k", plt.LW(2))
	plt.Plot(fineYs, fineRow, "r", plt.LW(3))
	plt.Title(fmt.Sprintf("Row %d, %s", row, method))
	plt.XLabel(`$y$`, plt.FontSize(16))
	plt.YLabel(`$z$`, plt.FontSize(16))
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)

	log.Printf("Writing profile to %s", fname)
	plt.Execute()
	return nil
}
