package io

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/quadfield/field"
	"github.com/phil-mansfield/quadfield/math/interpolate"
	"github.com/phil-mansfield/quadfield/render"
	"github.com/phil-mansfield/quadfield/render/colormap"
)

const (
	ExampleFieldFile = `[Field]

#######################
# Required Parameters #
#######################

# Directory which output images will be written to.
Output = path/to/output/dir

#######################
# Optional Parameters #
#######################

# Number of cells along each side of the field. Must be at least 2 if you
# want an interpolated image. Default is 200.
# Size = 200

# Seed for the corner values and quadrant split. If unset or 0, a seed is
# taken from the clock and written to the log so the run can be repeated.
# Seed = 1

# Text file whose first row gives the four corner values, in the order
# z00 z10 z01 z11. Overrides the random corner values (the quadrant split
# is still random).
# CornersFile = path/to/corners.txt

# Interpolation method. Must be one of [ Direct | PolyFit | MatrixForm ].
# All three give the same surface.
# Method = Direct

# Check that all three interpolation methods agree before writing anything.
# Default is true.
# Verify = false

# Colormap. Must be one of [ Jet | Gray | Viridis ]. Default is Jet.
# Palette = Jet

# Image format. Must be one of [ png | bmp | tiff ]. Default is png.
# Format = png

# Width of the output images in pixels. Default is Size.
# Pixels = 512

# Also write an image of the uninterpolated quadrant field. Default is true.
# RawImage = false

# Plot the values along a single row of the field (both the quadrant field
# and the interpolated field) to ProfilePlot. Requires python and matplotlib.
# ProfileRow = 100
# ProfilePlot = profile.png

# Will result in files named pre_interpolated_Direct_app.png:
# PrependName = pre_
# AppendName  = _app

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`
)

type SharedConfig struct {
	// Required
	Output string
	// Optional
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type FieldConfig struct {
	SharedConfig

	// Optional
	Size        int
	Seed        int64
	CornersFile string

	Method string
	Verify bool

	Palette, Format string
	Pixels          int
	RawImage        bool

	ProfileRow  int
	ProfilePlot string

	AppendName, PrependName string
}

type FieldWrapper struct {
	Field FieldConfig
}

func DefaultFieldWrapper() *FieldWrapper {
	con := FieldConfig{}
	con.Size = field.DefaultSize
	con.Method = interpolate.DirectMethod.String()
	con.Verify = true
	con.Palette = colormap.Jet.Name()
	con.Format = "png"
	con.RawImage = true
	con.ProfileRow = -1
	return &FieldWrapper{con}
}

func (con *FieldConfig) ValidSize() bool {
	return con.Size > 0
}
func (con *FieldConfig) ValidMethod() bool {
	_, err := interpolate.ParseMethod(con.Method)
	return err == nil
}
func (con *FieldConfig) ValidPalette() bool {
	_, err := colormap.ByName(con.Palette)
	return err == nil
}
func (con *FieldConfig) ValidFormat() bool {
	_, err := render.ParseFormat(con.Format)
	return err == nil
}
func (con *FieldConfig) ValidPixels() bool {
	return con.Pixels >= 0
}
func (con *FieldConfig) ValidCornersFile() bool {
	return con.CornersFile != ""
}
func (con *FieldConfig) ValidProfileRow() bool {
	return con.ProfileRow >= 0 && con.ProfileRow < con.Size
}
func (con *FieldConfig) ValidProfilePlot() bool {
	return con.ProfilePlot != ""
}

// ImagePixels returns the side length of the output images.
func (con *FieldConfig) ImagePixels() int {
	if con.Pixels == 0 {
		return con.Size
	}
	return con.Pixels
}

// OutputName returns the file name, without directory, for the named image.
func (con *FieldConfig) OutputName(name string) (string, error) {
	ext, err := render.FormatExt(con.Format)
	if err != nil {
		return "", err
	}
	return con.PrependName + name + con.AppendName + ext, nil
}

// Check returns a descriptive error for the first invalid value in con.
func (con *FieldConfig) Check() error {
	switch {
	case !con.ValidOutput():
		return fmt.Errorf("Invalid/non-existent 'Output' value.")
	case !con.ValidSize():
		return fmt.Errorf("'Size' must be positive, but is %d.", con.Size)
	case !con.ValidMethod():
		return fmt.Errorf(
			"'Method' must be one of [%s], but is '%s'.",
			methodNames(), con.Method,
		)
	case !con.ValidPalette():
		return fmt.Errorf(
			"'Palette' must be one of [%s], but is '%s'.",
			strings.Join(colormap.Names(), " | "), con.Palette,
		)
	case !con.ValidFormat():
		return fmt.Errorf(
			"'Format' must be one of [%s], but is '%s'.",
			strings.Join(render.Formats, " | "), con.Format,
		)
	case !con.ValidPixels():
		return fmt.Errorf("'Pixels' must be non-negative, but is %d.", con.Pixels)
	case con.ProfileRow != -1 && !con.ValidProfileRow():
		return fmt.Errorf(
			"'ProfileRow' must be in the range [0, %d), but is %d.",
			con.Size, con.ProfileRow,
		)
	case con.ValidProfileRow() != con.ValidProfilePlot():
		return fmt.Errorf("Only one of 'ProfileRow' and 'ProfilePlot' is set.")
	}
	return nil
}

func methodNames() string {
	names := make([]string, len(interpolate.Methods))
	for i, m := range interpolate.Methods {
		names[i] = m.String()
	}
	return strings.Join(names, " | ")
}

// ReadFieldConfig reads and checks the [Field] section of a config file.
func ReadFieldConfig(fname string) (*FieldConfig, error) {
	wrap := DefaultFieldWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Field.Check(); err != nil {
		return nil, err
	}
	return &wrap.Field, nil
}

// ParseFieldConfig is ReadFieldConfig for a config held in memory.
func ParseFieldConfig(str string) (*FieldConfig, error) {
	wrap := DefaultFieldWrapper()
	if err := gcfg.ReadStringInto(wrap, str); err != nil {
		return nil, err
	}
	if err := wrap.Field.Check(); err != nil {
		return nil, err
	}
	return &wrap.Field, nil
}
