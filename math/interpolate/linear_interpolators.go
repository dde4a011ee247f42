package interpolate

import (
	"fmt"
)

///////////////////////////
// Linear Implementation //
///////////////////////////

// Linear is a linear interpolator.
type Linear struct {
	xs   searcher
	vals []float64
}

// NewLinear creates a linear interpolator for a sequence of strictly increasing
// or strictly decreasing point, xs, which take on the values given by vals.
//
// Lookups will occur in O(log |xs|).
func NewLinear(xs, vals []float64) *Linear {
	if len(xs) != len(vals) {
		panic("Length of input slices are not equal.")
	}
	lin := &Linear{}
	lin.xs.init(xs)
	lin.vals = vals
	return lin
}

// Eval returns the interpolated value at x. Points outside the range of the
// knots take the value of the nearest end knot.
func (lin *Linear) Eval(x float64) float64 {
	i1 := lin.xs.search(x)
	i2 := i1 + 1
	x1, x2 := lin.xs.val(i1), lin.xs.val(i2)
	v1, v2 := lin.vals[i1], lin.vals[i2]

	t := clampFrac(x, x1, x2)
	return v1 + t*(v2-v1)
}

/////////////////////////////
// BiLinear Implementation //
/////////////////////////////

// BiLinear is a bi-linear interpolator over tabulated values. vals is
// row-major in x: the value at knot (i, j) is vals[i*ny + j].
type BiLinear struct {
	xs, ys searcher
	vals   []float64
	ny     int
}

// NewUniformBiLinear creates a bi-linear interpolator over uniformly spaced
// knots.
func NewUniformBiLinear(
	x0, dx float64, nx int,
	y0, dy float64, ny int,
	vals []float64,
) *BiLinear {
	if nx*ny != len(vals) {
		panic(fmt.Sprintf(
			"len(vals) = %d, but nx = %d and ny = %d",
			len(vals), nx, ny,
		))
	}

	bi := &BiLinear{}
	bi.xs.unifInit(x0, dx, nx)
	bi.ys.unifInit(y0, dy, ny)
	bi.ny = ny
	bi.vals = vals

	return bi
}

// Eval returns the interpolated value at (x, y). Points outside the knot
// range are clamped to the nearest edge.
func (bi *BiLinear) Eval(x, y float64) float64 {
	ix1 := bi.xs.search(x)
	iy1 := bi.ys.search(y)
	ix2, iy2 := ix1+1, iy1+1

	tx := clampFrac(x, bi.xs.val(ix1), bi.xs.val(ix2))
	ty := clampFrac(y, bi.ys.val(iy1), bi.ys.val(iy2))

	v11 := bi.vals[ix1*bi.ny+iy1]
	v12 := bi.vals[ix1*bi.ny+iy2]
	v21 := bi.vals[ix2*bi.ny+iy1]
	v22 := bi.vals[ix2*bi.ny+iy2]

	return v11*(1-tx)*(1-ty) + v21*tx*(1-ty) + v12*(1-tx)*ty + v22*tx*ty
}

// EvalAllX evaluates the interpolator along the line of constant x at each of
// the given y values. If an output array is given, the output is written to
// that array (the array is still returned as a convenience).
func (bi *BiLinear) EvalAllX(x float64, ys []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(ys))}
	}
	for i, y := range ys {
		out[0][i] = bi.Eval(x, y)
	}
	return out[0]
}
