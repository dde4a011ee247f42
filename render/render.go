package render

import (
	"image"
	"math"

	"github.com/phil-mansfield/quadfield/geom"
	"github.com/phil-mansfield/quadfield/math/interpolate"
	"github.com/phil-mansfield/quadfield/render/colormap"
)

// NumCores is the number of goroutines used to render and resample grids.
var NumCores = 1

// Render maps every cell of g through pal. Cell (x, y) becomes the pixel in
// image row x and image column y, so the returned image is g.Width pixels on
// a side. Render does not modify g.
func Render(g *geom.Grid, pal *colormap.Palette) *image.RGBA {
	n := g.Width
	img := image.NewRGBA(image.Rect(0, 0, n, n))

	geom.ParallelRows(n, NumCores, func(x int) {
		off := x * n
		for y := 0; y < n; y++ {
			c := pal.Map(g.Vals[off+y])
			i := img.PixOffset(y, x)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	})

	return img
}

// samplePos returns the position in a grid of width n which pixel i of p
// samples. The first and last pixels land on the grid edges.
func samplePos(i, p, n int) float64 {
	if p == 1 {
		return float64(n-1) / 2
	}
	return float64(i) * float64(n-1) / float64(p-1)
}

// Resample returns a pixels x pixels grid which bilinearly interpolates g.
// If pixels equals g.Width, g itself is returned.
func Resample(g *geom.Grid, pixels int) *geom.Grid {
	if pixels == g.Width {
		return g
	}

	out := geom.NewGrid(pixels)
	if g.Width == 1 {
		for i := range out.Vals {
			out.Vals[i] = g.Vals[0]
		}
		return out
	}

	bi := interpolate.NewUniformBiLinear(
		0, 1, g.Width, 0, 1, g.Width, g.Vals,
	)
	geom.ParallelRows(pixels, NumCores, func(i int) {
		x := samplePos(i, pixels, g.Width)
		for j := 0; j < pixels; j++ {
			out.Set(i, j, bi.Eval(x, samplePos(j, pixels, g.Width)))
		}
	})

	return out
}

// ResampleNearest returns a pixels x pixels grid where every cell takes the
// value of the nearest cell of g. This keeps quadrant edges sharp.
func ResampleNearest(g *geom.Grid, pixels int) *geom.Grid {
	if pixels == g.Width {
		return g
	}

	out := geom.NewGrid(pixels)
	geom.ParallelRows(pixels, NumCores, func(i int) {
		x := int(math.Round(samplePos(i, pixels, g.Width)))
		for j := 0; j < pixels; j++ {
			y := int(math.Round(samplePos(j, pixels, g.Width)))
			out.Set(i, j, g.At(x, y))
		}
	})

	return out
}
