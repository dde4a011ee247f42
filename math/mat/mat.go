/*mat contains routines for executing operations on small dense matrices.
Operations are split into easy to use methods which allocate their outputs
and slightly less easy to use methods which write into caller-owned memory or
require explicitly managing LU decomposition.

Everything involving decomposition only works on square matrices.
*/
package mat

import (
	"math"
)

// Matrix represents a row-major matrix of float64 values.
type Matrix struct {
	Vals          []float64
	Width, Height int
}

// LUFactors contains the data fields neccessary for solving linear systems,
// inverting and computing determinants. Exporting this type allows calling
// routines to avoid recomputing the same decomposition many times.
type LUFactors struct {
	lu    Matrix
	pivot []int
	d     float64
}

// NewMatrix creates a matrix with the specified values and dimensions.
func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	} else if width*height != len(vals) {
		panic("height * width must equal len(vals).")
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(make([]float64, n*n), n, n)
	for i := 0; i < n; i++ {
		m.Vals[i*n+i] = 1
	}
	return m
}

// At returns the value at row i and column j.
func (m *Matrix) At(i, j int) float64 { return m.Vals[i*m.Width+j] }

// Mult multiplies two matrices together.
func (m1 *Matrix) Mult(m2 *Matrix) *Matrix {
	h, w := m1.Height, m2.Width
	out := NewMatrix(make([]float64, h*w), w, h)
	return m1.MultAt(m2, out)
}

// MultAt multiplies two matrices together and writes the result to the
// specified matrix.
func (m1 *Matrix) MultAt(m2, out *Matrix) *Matrix {
	if m1.Width != m2.Height {
		panic("Multiplication of incompatible matrix sizes.")
	} else if out.Height != m1.Height || out.Width != m2.Width {
		panic("Output matrix has the wrong dimensions.")
	}

	for i := range out.Vals {
		out.Vals[i] = 0
	}
	for i := 0; i < m1.Height; i++ {
		off := i * m1.Width
		for j := 0; j < m2.Width; j++ {
			outIdx := i*out.Width + j
			for k := 0; k < m1.Width; k++ {
				out.Vals[outIdx] += m1.Vals[off+k] * m2.Vals[k*m2.Width+j]
			}
		}
	}

	return out
}

// Scale multiplies every element of m by s in place and returns m.
func (m *Matrix) Scale(s float64) *Matrix {
	for i := range m.Vals {
		m.Vals[i] *= s
	}
	return m
}

// Transpose returns the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	out := NewMatrix(make([]float64, len(m.Vals)), m.Height, m.Width)
	for i := 0; i < m.Height; i++ {
		for j := 0; j < m.Width; j++ {
			out.Vals[j*out.Width+i] = m.Vals[i*m.Width+j]
		}
	}
	return out
}

// Invert computes the inverse of a matrix.
func (m *Matrix) Invert() *Matrix {
	lu := m.LU()
	inv := NewMatrix(make([]float64, len(m.Vals)), m.Width, m.Height)
	return lu.InvertAt(inv)
}

// Determinant computes the determinant of a matrix.
func (m *Matrix) Determinant() float64 {
	lu := m.LU()
	return lu.Determinant()
}

// SolveVector solves the equation m * xs = bs for xs.
func (m *Matrix) SolveVector(bs []float64) []float64 {
	xs := make([]float64, len(bs))
	lu := m.LU()
	return lu.SolveVector(bs, xs)
}

// NewLUFactors creates an LUFactors instance of the requested dimensions.
func NewLUFactors(n int) *LUFactors {
	luf := new(LUFactors)

	luf.lu.Vals, luf.lu.Width, luf.lu.Height = make([]float64, n*n), n, n
	luf.pivot = make([]int, n)
	luf.d = 1

	return luf
}

// LU returns the LU decomposition of a matrix.
func (m *Matrix) LU() *LUFactors {
	if m.Width != m.Height {
		panic("m is non-square.")
	}

	lu := NewLUFactors(m.Width)
	m.LUFactorsAt(lu)
	return lu
}

// LUFactorsAt stores the LU decomposition of a matrix at the specified
// location. Rows are pivoted on the largest remaining element of each column,
// so P * m = L * U, where L has an implicit unit diagonal.
func (m *Matrix) LUFactorsAt(luf *LUFactors) {
	if luf.lu.Width != m.Width || luf.lu.Height != m.Height {
		panic("luf has different dimenstions than m.")
	}

	n := m.Width
	for i := 0; i < n; i++ {
		luf.pivot[i] = i
	}
	lu := luf.lu.Vals
	copy(lu, m.Vals)

	// Maintained for determinant calculations.
	luf.d = 1

	for k := 0; k < n; k++ {
		maxRow := findMaxRow(n, lu, k)
		if k != maxRow {
			swapRows(k, maxRow, n, lu)
			luf.pivot[k], luf.pivot[maxRow] = luf.pivot[maxRow], luf.pivot[k]
			luf.d = -luf.d
		}

		diag := lu[k*n+k]
		if diag == 0 {
			// Singular. Determinant will come out as zero.
			continue
		}

		for i := k + 1; i < n; i++ {
			iOffset := i * n
			lu[iOffset+k] /= diag
			tmp := lu[iOffset+k]
			for j := k + 1; j < n; j++ {
				lu[iOffset+j] -= tmp * lu[k*n+j]
			}
		}
	}
}

// Finds the index of the row containing the maximum value in the column.
// Ignores the values above the point m_col,col since those have already been
// swapped.
func findMaxRow(n int, m []float64, col int) int {
	max, maxRow := -1.0, col

	for i := col; i < n; i++ {
		val := math.Abs(m[i*n+col])
		if val > max {
			max = val
			maxRow = i
		}
	}
	return maxRow
}

func swapRows(i1, i2, n int, lu []float64) {
	i1Offset, i2Offset := n*i1, n*i2
	for j := 0; j < n; j++ {
		idx1, idx2 := i1Offset+j, i2Offset+j
		lu[idx1], lu[idx2] = lu[idx2], lu[idx1]
	}
}

// SolveVector solves M * xs = bs for xs.
//
// bs and xs may point to the same physical memory.
func (luf *LUFactors) SolveVector(bs, xs []float64) []float64 {
	n := luf.lu.Width
	if n != len(bs) {
		panic("len(b) != luf.Width")
	} else if n != len(xs) {
		panic("len(x) != luf.Width")
	}

	if &bs[0] == &xs[0] {
		tmp := make([]float64, n)
		copy(tmp, bs)
		bs = tmp
	}

	// A x = b -> (L U) x = P b -> L y = P b
	ys := xs
	forwardSubst(n, luf.pivot, luf.lu.Vals, bs, ys)
	backSubst(n, luf.lu.Vals, ys, xs)

	return xs
}

// Solves L * y = P * b for y.
// y_i = b_pivot(i) - sum_j=0^i-1 (alpha_ij y_j)
func forwardSubst(n int, pivot []int, lu, bs, ys []float64) {
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < i; j++ {
			sum += lu[i*n+j] * ys[j]
		}
		ys[i] = bs[pivot[i]] - sum
	}
}

// Solves U * x = y for x.
// x_i = (y_i - sum_j=i+1^N-1 (beta_ij x_j)) / beta_ii
func backSubst(n int, lu, ys, xs []float64) {
	for i := n - 1; i >= 0; i-- {
		sum := 0.0
		for j := i + 1; j < n; j++ {
			sum += lu[i*n+j] * xs[j]
		}
		xs[i] = (ys[i] - sum) / lu[i*n+i]
	}
}

// InvertAt inverts the matrix represented by the given LU decomposition
// and writes the results into the specified out matrix.
func (luf *LUFactors) InvertAt(out *Matrix) *Matrix {
	n := luf.lu.Width
	if out.Width != out.Height {
		panic("out matrix is non-square.")
	} else if n != out.Width {
		panic("out matrix different size than m matrix.")
	}

	col := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := range col {
			col[i] = 0
		}
		col[j] = 1
		luf.SolveVector(col, col)
		for i := 0; i < n; i++ {
			out.Vals[i*n+j] = col[i]
		}
	}

	return out
}

// Determinant compute the determinant of of the matrix represented by the
// given LU decomposition.
func (luf *LUFactors) Determinant() float64 {
	d := luf.d
	lu := luf.lu.Vals
	n := luf.lu.Width

	for i := 0; i < n; i++ {
		d *= lu[i*n+i]
	}
	return d
}
