package interpolate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/phil-mansfield/quadfield/geom"
	"github.com/phil-mansfield/quadfield/math/mat"
)

// DefaultTolerance is the relative tolerance used when checking that the
// three corner interpolators agree.
const DefaultTolerance = 1e-9

var (
	// ErrDegenerateDomain is returned when a domain has zero width along
	// either axis, which would make the normalization infinite.
	ErrDegenerateDomain = errors.New("interpolate: degenerate domain")
	// ErrDivergence is wrapped by every *DivergenceError.
	ErrDivergence = errors.New("interpolate: corner interpolators diverge")
	// ErrUnknownMethod is returned by ParseMethod and New.
	ErrUnknownMethod = errors.New("interpolate: unknown method")
)

// Corners are the four values which anchor a bilinear surface. Zij sits at
// (x_{i+1}, y_{j+1}) of the Domain: Z10 is at (X2, Y1) and Z01 is at (X1, Y2).
type Corners struct {
	Z00, Z10, Z01, Z11 float64
}

// Domain is the rectangle (X1, Y1)-(X2, Y2) spanned by the corners.
type Domain struct {
	X1, Y1, X2, Y2 float64
}

// SquareDomain returns the domain covering the integer cells of a size x size
// grid: (0, 0)-(size-1, size-1).
func SquareDomain(size int) Domain {
	return Domain{0, 0, float64(size - 1), float64(size - 1)}
}

// Check returns an error wrapping ErrDegenerateDomain if either extent of d
// is zero.
func (d Domain) Check() error {
	dx, dy := d.X2-d.X1, d.Y2-d.Y1
	if dx == 0 || dy == 0 {
		return fmt.Errorf(
			"%w: (%g, %g)-(%g, %g) has extent %g x %g",
			ErrDegenerateDomain, d.X1, d.Y1, d.X2, d.Y2, dx, dy,
		)
	}
	return nil
}

// norm returns 1 / ((x2 - x1) * (y2 - y1)). Must only be called on a checked
// domain.
func (d Domain) norm() float64 {
	return 1.0 / ((d.X2 - d.X1) * (d.Y2 - d.Y1))
}

// vector returns the corners in the order used by the coefficient matrices:
// [z00, z01, z10, z11], i.e. f(x1,y1), f(x1,y2), f(x2,y1), f(x2,y2).
func (c Corners) vector() []float64 {
	return []float64{c.Z00, c.Z01, c.Z10, c.Z11}
}

/////////////////
// Direct Form //
/////////////////

// Direct evaluates the bilinear weighted sum independently at every point.
type Direct struct {
	c  Corners
	d  Domain
	t0 float64
}

// NewDirect creates a Direct interpolator.
func NewDirect(c Corners, d Domain) (*Direct, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}
	return &Direct{c: c, d: d, t0: d.norm()}, nil
}

// Eval returns the interpolated value at (x, y).
func (di *Direct) Eval(x, y float64) float64 {
	x1, y1, x2, y2 := di.d.X1, di.d.Y1, di.d.X2, di.d.Y2

	t1 := di.c.Z00 * (x2 - x) * (y2 - y)
	t2 := di.c.Z10 * (x - x1) * (y2 - y)
	t3 := di.c.Z01 * (x2 - x) * (y - y1)
	t4 := di.c.Z11 * (x - x1) * (y - y1)

	return di.t0 * (t1 + t2 + t3 + t4)
}

/////////////////////////////////
// Polynomial Coefficient Form //
/////////////////////////////////

// PolyFit evaluates a0 + a1*x + a2*y + a3*x*y, with the coefficients solved
// once from the corners.
type PolyFit struct {
	a [4]float64
}

// CoefficientMatrix returns the closed-form inverse (scaled by
// (x2-x1)*(y2-y1)) of the system which maps [a0, a1, a2, a3] onto the corner
// values [z00, z01, z10, z11].
func (d Domain) CoefficientMatrix() *mat.Matrix {
	x1, y1, x2, y2 := d.X1, d.Y1, d.X2, d.Y2
	return mat.NewMatrix([]float64{
		x2 * y2, -x2 * y1, -x1 * y2, x1 * y1,
		-y2, y1, y2, -y1,
		-x2, x2, x1, -x1,
		1, -1, -1, 1,
	}, 4, 4)
}

// NewPolyFit creates a PolyFit interpolator.
func NewPolyFit(c Corners, d Domain) (*PolyFit, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}

	zs := mat.NewMatrix(c.vector(), 1, 4)
	as := d.CoefficientMatrix().Mult(zs).Scale(d.norm())

	pf := &PolyFit{}
	copy(pf.a[:], as.Vals)
	return pf, nil
}

// Coeffs returns [a0, a1, a2, a3].
func (pf *PolyFit) Coeffs() [4]float64 { return pf.a }

// Eval returns the interpolated value at (x, y).
func (pf *PolyFit) Eval(x, y float64) float64 {
	return pf.a[0] + pf.a[1]*x + pf.a[2]*y + pf.a[3]*x*y
}

/////////////////
// Matrix Form //
/////////////////

// MatrixForm evaluates b . [1, x, y, xy], where the row vector b is the
// corner row vector multiplied by a fixed transformation matrix.
type MatrixForm struct {
	b *mat.Matrix
}

// TransformMatrix returns the matrix T (scaled by (x2-x1)*(y2-y1)) with
// [z00, z01, z10, z11] * T = [b0, b1, b2, b3].
func (d Domain) TransformMatrix() *mat.Matrix {
	x1, y1, x2, y2 := d.X1, d.Y1, d.X2, d.Y2
	return mat.NewMatrix([]float64{
		x2 * y2, -y2, -x2, 1,
		-x2 * y1, y1, x2, -1,
		-x1 * y2, y2, x1, -1,
		x1 * y1, -y1, -x1, 1,
	}, 4, 4)
}

// NewMatrixForm creates a MatrixForm interpolator.
func NewMatrixForm(c Corners, d Domain) (*MatrixForm, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}

	zs := mat.NewMatrix(c.vector(), 4, 1)
	b := zs.Mult(d.TransformMatrix()).Scale(d.norm())
	return &MatrixForm{b: b}, nil
}

// Eval returns the interpolated value at (x, y).
func (mf *MatrixForm) Eval(x, y float64) float64 {
	basis := [4]float64{1, x, y, x * y}
	sum := 0.0
	for i, b := range mf.b.Vals {
		sum += b * basis[i]
	}
	return sum
}

/////////////
// Methods //
/////////////

// Method selects one of the three equivalent corner interpolators.
type Method int

const (
	DirectMethod Method = iota
	PolyFitMethod
	MatrixFormMethod
)

// Methods lists every Method.
var Methods = []Method{DirectMethod, PolyFitMethod, MatrixFormMethod}

var methodNames = map[Method]string{
	DirectMethod:     "Direct",
	PolyFitMethod:    "PolyFit",
	MatrixFormMethod: "MatrixForm",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod returns the Method with the given (case-insensitive) name.
func ParseMethod(name string) (Method, error) {
	name = strings.TrimSpace(name)
	for _, m := range Methods {
		if strings.EqualFold(name, methodNames[m]) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: '%s'", ErrUnknownMethod, name)
}

// New creates the interpolator for the given Method.
func New(m Method, c Corners, d Domain) (BiInterpolator, error) {
	var (
		bi  BiInterpolator
		err error
	)

	switch m {
	case DirectMethod:
		bi, err = NewDirect(c, d)
	case PolyFitMethod:
		bi, err = NewPolyFit(c, d)
	case MatrixFormMethod:
		bi, err = NewMatrixForm(c, d)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}

	// Don't hand back a typed nil.
	if err != nil {
		return nil, err
	}
	return bi, nil
}

// Fill evaluates bi at every integer cell (x, y) of g, splitting rows across
// the given number of workers.
func Fill(bi BiInterpolator, g *geom.Grid, workers int) {
	geom.ParallelRows(g.Width, workers, func(x int) {
		off := x * g.Width
		for y := 0; y < g.Width; y++ {
			g.Vals[off+y] = bi.Eval(float64(x), float64(y))
		}
	})
}

////////////////
// Comparison //
////////////////

// DivergenceError reports a cell where two interpolation methods disagree.
// It always indicates a bug.
type DivergenceError struct {
	A, B       Method
	X, Y       int
	ValA, ValB float64
	Tol        float64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf(
		"interpolate: %s and %s disagree at (%d, %d): %.17g vs %.17g "+
			"(tolerance %g)", e.A, e.B, e.X, e.Y, e.ValA, e.ValB, e.Tol,
	)
}

func (e *DivergenceError) Unwrap() error { return ErrDivergence }

// Close returns true if a and b agree to within the relative tolerance tol.
// Values smaller than one in magnitude are compared absolutely.
func Close(a, b, tol float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

// Compare evaluates every Method at each integer cell of d and returns a
// *DivergenceError for the first cell where any method disagrees with
// DirectMethod.
func Compare(c Corners, d Domain, tol float64) error {
	intrs := make([]BiInterpolator, len(Methods))
	for i, m := range Methods {
		bi, err := New(m, c, d)
		if err != nil {
			return err
		}
		intrs[i] = bi
	}

	x1, x2 := int(math.Ceil(math.Min(d.X1, d.X2))), int(math.Max(d.X1, d.X2))
	y1, y2 := int(math.Ceil(math.Min(d.Y1, d.Y2))), int(math.Max(d.Y1, d.Y2))

	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			fx, fy := float64(x), float64(y)
			want := intrs[0].Eval(fx, fy)
			for i := 1; i < len(intrs); i++ {
				got := intrs[i].Eval(fx, fy)
				if !Close(want, got, tol) {
					return &DivergenceError{
						A: Methods[0], B: Methods[i],
						X: x, Y: y, ValA: want, ValB: got, Tol: tol,
					}
				}
			}
		}
	}

	return nil
}
