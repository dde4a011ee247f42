/*package colormap maps normalized scalars onto colors.

Palettes are described either by piecewise linear segment data for each
channel, the same way matplotlib's segmented colormaps are, or by a list of
evenly spaced anchor colors blended in RGB. Both are sampled into a fixed
lookup table. Inputs are clamped to [0, 1] before lookup.
*/
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/phil-mansfield/quadfield/math/interpolate"
)

// LUTSize is the number of discrete colors in every palette.
const LUTSize = 256

// ErrUnknownPalette is returned by ByName.
var ErrUnknownPalette = errors.New("colormap: unknown palette")

// Bad is the color assigned to NaN inputs.
var Bad = color.RGBA{0, 0, 0, 0}

// Segment is a list of (x, value) anchors for a single channel, with x
// strictly increasing from 0 to 1.
type Segment struct {
	Xs, Vals []float64
}

// Palette is an immutable map from [0, 1] onto RGBA colors.
type Palette struct {
	name string
	lut  [LUTSize]color.RGBA
}

// NewPalette samples the red, green and blue segment data into a Palette.
func NewPalette(name string, r, g, b Segment) *Palette {
	pal := &Palette{name: name}

	chans := []*interpolate.Linear{
		interpolate.NewLinear(r.Xs, r.Vals),
		interpolate.NewLinear(g.Xs, g.Vals),
		interpolate.NewLinear(b.Xs, b.Vals),
	}

	for i := range pal.lut {
		x := float64(i) / float64(LUTSize-1)
		var rgb [3]uint8
		for k, ch := range chans {
			rgb[k] = toByte(ch.Eval(x))
		}
		pal.lut[i] = color.RGBA{rgb[0], rgb[1], rgb[2], 255}
	}

	return pal
}

// toByte truncates a [0, 1] channel value to a byte.
func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	} else if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// Name returns the palette's name.
func (pal *Palette) Name() string { return pal.name }

// Map returns the color of v. Values below 0 or above 1 take the endpoint
// colors and NaN maps to Bad.
func (pal *Palette) Map(v float64) color.RGBA {
	if math.IsNaN(v) {
		return Bad
	}
	return pal.lut[index(v)]
}

// Low and High return the endpoint colors.
func (pal *Palette) Low() color.RGBA  { return pal.lut[0] }
func (pal *Palette) High() color.RGBA { return pal.lut[LUTSize-1] }

func index(v float64) int {
	if v <= 0 {
		return 0
	} else if v >= 1 {
		return LUTSize - 1
	}

	i := int(v * LUTSize)
	if i > LUTSize-1 {
		return LUTSize - 1
	}
	return i
}

var (
	// Jet runs blue -> cyan -> green -> yellow -> red.
	Jet = NewPalette(
		"Jet",
		Segment{
			[]float64{0, 0.35, 0.66, 0.89, 1},
			[]float64{0, 0, 1, 1, 0.5},
		},
		Segment{
			[]float64{0, 0.125, 0.375, 0.64, 0.91, 1},
			[]float64{0, 0, 1, 1, 0, 0},
		},
		Segment{
			[]float64{0, 0.11, 0.34, 0.65, 1},
			[]float64{0.5, 1, 1, 0, 0},
		},
	)

	Gray = NewPalette(
		"Gray",
		Segment{[]float64{0, 1}, []float64{0, 1}},
		Segment{[]float64{0, 1}, []float64{0, 1}},
		Segment{[]float64{0, 1}, []float64{0, 1}},
	)

	// Viridis is approximated by eleven evenly spaced anchors.
	Viridis = newAnchored("Viridis", viridisAnchors)

	palettes = map[string]*Palette{}
)

func init() {
	for _, pal := range []*Palette{Jet, Gray, Viridis} {
		palettes[strings.ToLower(pal.name)] = pal
	}
}

var viridisAnchors = []color.RGBA{
	{68, 1, 84, 255},
	{72, 35, 116, 255},
	{64, 67, 135, 255},
	{52, 94, 141, 255},
	{41, 120, 142, 255},
	{32, 144, 140, 255},
	{34, 167, 132, 255},
	{68, 190, 112, 255},
	{121, 209, 81, 255},
	{189, 222, 38, 255},
	{253, 231, 37, 255},
}

// newAnchored builds a palette by blending in RGB between evenly spaced
// anchor colors.
func newAnchored(name string, anchors []color.RGBA) *Palette {
	if len(anchors) < 2 {
		panic("newAnchored needs at least two anchors.")
	}

	cols := make([]colorful.Color, len(anchors))
	for i, c := range anchors {
		cols[i] = colorful.Color{
			R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255,
		}
	}

	pal := &Palette{name: name}
	for i := range pal.lut {
		r, g, b := blendAnchors(cols, float64(i)/float64(LUTSize-1)).RGB255()
		pal.lut[i] = color.RGBA{r, g, b, 255}
	}
	return pal
}

// blendAnchors returns the color at x in [0, 1] along evenly spaced anchors.
func blendAnchors(cols []colorful.Color, x float64) colorful.Color {
	pos := x * float64(len(cols)-1)
	i := int(pos)
	if i < 0 {
		i = 0
	} else if i > len(cols)-2 {
		i = len(cols) - 2
	}
	return cols[i].BlendRgb(cols[i+1], pos-float64(i)).Clamped()
}

// ByName returns the palette with the given case-insensitive name.
func ByName(name string) (*Palette, error) {
	pal, ok := palettes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf(
			"%w: '%s', must be one of [%s]",
			ErrUnknownPalette, name, strings.Join(Names(), " | "),
		)
	}
	return pal, nil
}

// Names returns the names of every palette in sorted order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for _, pal := range palettes {
		names = append(names, pal.name)
	}
	sort.Strings(names)
	return names
}
