package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinear(t *testing.T) {
	xs := []float64{0, 1, 3}
	vals := []float64{0, 2, 0}
	lin := NewLinear(xs, vals)

	assert.Equal(t, 0.0, lin.Eval(0), "first knot")
	assert.Equal(t, 2.0, lin.Eval(1), "interior knot")
	assert.Equal(t, 0.0, lin.Eval(3), "last knot")
	assert.InDelta(t, 1.0, lin.Eval(0.5), 1e-15, "first interval")
	assert.InDelta(t, 1.0, lin.Eval(2), 1e-15, "second interval")
	// points off the knots clamp to the end values
	assert.Equal(t, 0.0, lin.Eval(-1), "below range")
	assert.Equal(t, 0.0, lin.Eval(10), "above range")
}

func TestLinearDecreasing(t *testing.T) {
	lin := NewLinear([]float64{3, 2, 1}, []float64{30, 20, 10})
	assert.InDelta(t, 25.0, lin.Eval(2.5), 1e-12)
	assert.InDelta(t, 15.0, lin.Eval(1.5), 1e-12)
	assert.Equal(t, 30.0, lin.Eval(4))
	assert.Equal(t, 10.0, lin.Eval(0))
}

func TestLinearPanics(t *testing.T) {
	assert.Panics(t, func() { NewLinear([]float64{0, 1}, []float64{0}) })
	assert.Panics(t, func() { NewLinear([]float64{0}, []float64{0}) })
	assert.Panics(t, func() { NewLinear([]float64{0, 1, 1}, []float64{0, 1, 2}) })
}

func planeValue(x, y float64) float64 {
	return 2 + 3*x - y + 0.5*x*y
}

func TestUniformBiLinear(t *testing.T) {
	n := 11
	step := 0.1
	vals := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			vals[i*n+j] = planeValue(float64(i)*step, float64(j)*step)
		}
	}
	bi := NewUniformBiLinear(0, step, n, 0, step, n, vals)

	// points on the grid should work
	assert.InDelta(t, planeValue(0.5, 0.5), bi.Eval(0.5, 0.5), 1e-12, "on grid")
	// points just off the grid should also work
	assert.InDelta(t, planeValue(0.51, 0.5), bi.Eval(0.51, 0.5), 1e-12, "nearby x")
	assert.InDelta(t, planeValue(0.5, 0.51), bi.Eval(0.5, 0.51), 1e-12, "nearby y")
	// points on the edge of the grid should work
	assert.InDelta(t, planeValue(0, 0), bi.Eval(0, 0), 1e-12, "grid edge")
	assert.InDelta(t, planeValue(1, 1), bi.Eval(1, 1), 1e-12, "far grid edge")
	assert.InDelta(t, planeValue(1, 0.33), bi.Eval(1, 0.33), 1e-12, "far edge nearby")
	// points outside clamp to the edge
	assert.InDelta(t, planeValue(1, 1), bi.Eval(2, 3), 1e-12, "outside")
}

func TestEvalAllX(t *testing.T) {
	nx, ny := 3, 4
	vals := make([]float64, nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			vals[i*ny+j] = planeValue(float64(i)*2, float64(j)-1)
		}
	}
	bi := NewUniformBiLinear(0, 2, nx, -1, 1, ny, vals)

	ys := []float64{-1, 0.25, 2}
	row := bi.EvalAllX(3, ys)
	for i, y := range ys {
		assert.InDelta(t, planeValue(3, y), row[i], 1e-12)
	}

	out := make([]float64, len(ys))
	res := bi.EvalAllX(1, ys, out)
	assert.Equal(t, out, res)
	for i, y := range ys {
		assert.InDelta(t, planeValue(1, y), out[i], 1e-12)
	}

	assert.Panics(t, func() { NewUniformBiLinear(0, 2, nx, -1, 1, ny, vals[1:]) })
}
