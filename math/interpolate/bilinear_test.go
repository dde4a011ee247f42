package interpolate

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/quadfield/geom"
	"github.com/phil-mansfield/quadfield/math/mat"
)

const tol = 1e-9

func randomCorners(rng *rand.Rand) Corners {
	return Corners{rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64()}
}

func allMethods(t *testing.T, c Corners, d Domain) []BiInterpolator {
	t.Helper()
	out := make([]BiInterpolator, len(Methods))
	for i, m := range Methods {
		bi, err := New(m, c, d)
		require.NoError(t, err, m.String())
		out[i] = bi
	}
	return out
}

func TestCheckerboard(t *testing.T) {
	c := Corners{Z00: 0, Z10: 1, Z01: 1, Z11: 0}
	d := SquareDomain(3)

	want := [3][3]float64{
		{0.0, 0.5, 1.0},
		{0.5, 0.5, 0.5},
		{1.0, 0.5, 0.0},
	}

	for _, m := range Methods {
		g := geom.NewGrid(3)
		bi, err := New(m, c, d)
		require.NoError(t, err)
		Fill(bi, g, 1)

		for x := 0; x < 3; x++ {
			for y := 0; y < 3; y++ {
				assert.InDelta(t, want[x][y], g.At(x, y), tol,
					"%s at (%d, %d)", m, x, y)
			}
		}
	}

	assert.NoError(t, Compare(c, d, tol))
}

func TestCornerExactness(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for size := 2; size <= 64; size++ {
		c := randomCorners(rng)
		d := SquareDomain(size)
		n := float64(size - 1)

		for _, bi := range allMethods(t, c, d) {
			msg := fmt.Sprintf("%T, size = %d", bi, size)
			assert.InDelta(t, c.Z00, bi.Eval(0, 0), tol, msg)
			assert.InDelta(t, c.Z10, bi.Eval(n, 0), tol, msg)
			assert.InDelta(t, c.Z01, bi.Eval(0, n), tol, msg)
			assert.InDelta(t, c.Z11, bi.Eval(n, n), tol, msg)
		}
	}
}

func TestCrossMethodEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, size := range []int{2, 3, 4, 7, 16, 50, 200} {
		for trial := 0; trial < 5; trial++ {
			c := randomCorners(rng)
			assert.NoError(t, Compare(c, SquareDomain(size), tol),
				"size = %d, corners = %+v", size, c)
		}
	}

	// Offset, non-square domains should agree too.
	d := Domain{X1: -3, Y1: 2, X2: 5, Y2: 12}
	assert.NoError(t, Compare(Corners{0.3, -2, 7, 0.25}, d, tol))
}

func TestBilinearity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	size := 40
	c := randomCorners(rng)
	d := SquareDomain(size)

	for _, bi := range allMethods(t, c, d) {
		for trial := 0; trial < 20; trial++ {
			fixed := float64(rng.Intn(size))
			a, b := float64(rng.Intn(size)), float64(rng.Intn(size))
			if a == b {
				continue
			}
			mid := a + 0.25*(b-a)

			// Along a row (fixed x), then along a column (fixed y).
			va, vb, vm := bi.Eval(fixed, a), bi.Eval(fixed, b), bi.Eval(fixed, mid)
			assert.InDelta(t, va+0.25*(vb-va), vm, tol, "%T row", bi)

			va, vb, vm = bi.Eval(a, fixed), bi.Eval(b, fixed), bi.Eval(mid, fixed)
			assert.InDelta(t, va+0.25*(vb-va), vm, tol, "%T column", bi)
		}
	}
}

func TestDegenerateDomain(t *testing.T) {
	c := Corners{0.1, 0.2, 0.3, 0.4}
	for _, d := range []Domain{
		SquareDomain(1),
		{X1: 0, Y1: 0, X2: 0, Y2: 5},
		{X1: 0, Y1: 2, X2: 5, Y2: 2},
	} {
		for _, m := range Methods {
			bi, err := New(m, c, d)
			assert.Nil(t, bi, "%s on %+v", m, d)
			assert.True(t, errors.Is(err, ErrDegenerateDomain), "%s on %+v", m, d)
		}
		assert.True(t, errors.Is(Compare(c, d, tol), ErrDegenerateDomain))
	}

	assert.NoError(t, SquareDomain(2).Check())
}

func TestCoefficientMatrix(t *testing.T) {
	d := Domain{X1: 1, Y1: 2, X2: 4, Y2: 7}
	c := Corners{Z00: 0.5, Z10: -1, Z01: 2, Z11: 0.75}

	// Rows of the Vandermonde system for [z00, z01, z10, z11].
	pts := [][2]float64{{d.X1, d.Y1}, {d.X1, d.Y2}, {d.X2, d.Y1}, {d.X2, d.Y2}}
	vand := mat.NewMatrix(make([]float64, 16), 4, 4)
	for i, p := range pts {
		copy(vand.Vals[i*4:], []float64{1, p[0], p[1], p[0] * p[1]})
	}

	inv := d.CoefficientMatrix().Scale(d.norm())
	prod := inv.Mult(vand)
	assert.InDeltaSlice(t, mat.Identity(4).Vals, prod.Vals, 1e-12)
	assert.InDeltaSlice(t, vand.Invert().Vals, inv.Vals, 1e-12)
	assert.Equal(t, d.CoefficientMatrix().Transpose().Vals, d.TransformMatrix().Vals)

	pf, err := NewPolyFit(c, d)
	require.NoError(t, err)
	as := pf.Coeffs()
	lu := vand.SolveVector([]float64{c.Z00, c.Z01, c.Z10, c.Z11})
	assert.InDeltaSlice(t, lu, as[:], 1e-12)
}

func TestParseMethod(t *testing.T) {
	table := []struct {
		name string
		m    Method
	}{
		{"Direct", DirectMethod},
		{"direct", DirectMethod},
		{" PolyFit ", PolyFitMethod},
		{"MATRIXFORM", MatrixFormMethod},
	}
	for _, test := range table {
		m, err := ParseMethod(test.name)
		assert.NoError(t, err)
		assert.Equal(t, test.m, m)
	}

	for _, m := range Methods {
		parsed, err := ParseMethod(m.String())
		assert.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMethod("Spline")
	assert.True(t, errors.Is(err, ErrUnknownMethod))

	_, err = New(Method(7), Corners{}, SquareDomain(3))
	assert.True(t, errors.Is(err, ErrUnknownMethod))
	assert.Equal(t, "Method(7)", Method(7).String())
}

func TestDivergenceError(t *testing.T) {
	var err error = &DivergenceError{
		A: DirectMethod, B: PolyFitMethod, X: 1, Y: 2, ValA: 0.5, ValB: 0.6, Tol: tol,
	}
	assert.True(t, errors.Is(err, ErrDivergence))

	var div *DivergenceError
	require.True(t, errors.As(err, &div))
	assert.Equal(t, 1, div.X)
	assert.Contains(t, err.Error(), "Direct and PolyFit disagree at (1, 2)")

	assert.True(t, Close(1e6, 1e6+1e-4, tol))
	assert.False(t, Close(0.5, 0.6, tol))
	assert.True(t, Close(0, 1e-10, tol))
}

func TestFillWorkers(t *testing.T) {
	c := Corners{0.2, 0.9, 0.4, 0.1}
	bi, err := NewMatrixForm(c, SquareDomain(37))
	require.NoError(t, err)

	serial, parallel := geom.NewGrid(37), geom.NewGrid(37)
	Fill(bi, serial, 1)
	Fill(bi, parallel, 4)
	assert.Equal(t, serial.Vals, parallel.Vals)
}

func benchmarkMethod(b *testing.B, m Method) {
	size := 200
	g := geom.NewGrid(size)
	bi, err := New(m, Corners{0.1, 0.2, 0.3, 0.4}, SquareDomain(size))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Fill(bi, g, 1)
	}
}

func BenchmarkDirect(b *testing.B)     { benchmarkMethod(b, DirectMethod) }
func BenchmarkPolyFit(b *testing.B)    { benchmarkMethod(b, PolyFitMethod) }
func BenchmarkMatrixForm(b *testing.B) { benchmarkMethod(b, MatrixFormMethod) }
