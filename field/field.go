/*package field generates square scalar fields made of four constant
quadrants and interpolates smooth bilinear surfaces between their corner
values.

Cells are addressed as (x, y) with x the row and y the column. The corner
value Zij of interpolate.Corners belongs to the quadrant with x on side i of
the x split and y on side j of the y split, and anchors the surface at grid
corner (i*(N-1), j*(N-1)).
*/
package field

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/phil-mansfield/quadfield/geom"
	"github.com/phil-mansfield/quadfield/math/interpolate"
)

// DefaultSize is the historical side length of a field.
const DefaultSize = 200

var (
	ErrInvalidSize  = errors.New("field: size must be positive")
	ErrInvalidSplit = errors.New("field: quadrant split out of range")
	ErrNilSource    = errors.New("field: nil random source")
)

// RandomSource supplies uniform random numbers. *rand.Rand satisfies it.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

var _ RandomSource = &rand.Rand{}

// NewRandomSource returns a deterministic RandomSource for the given seed.
func NewRandomSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Field owns a quadrant field, its corner values and the most recent
// interpolation of those corners. The raw field and corners never change
// after construction.
type Field struct {
	size           int
	corners        interpolate.Corners
	xSplit, ySplit int

	raw, intp *geom.Grid

	method       interpolate.Method
	interpolated bool

	// Workers is the number of goroutines used by Interpolate. Values below
	// two run on the calling goroutine.
	Workers int
}

// New creates a size x size Field with random corner values in [0, 1) and a
// random quadrant split. The corners are drawn first, in the order z00, z01,
// z10, z11, followed by the x and then the y split, each in [0, size).
func New(size int, rng RandomSource) (*Field, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w, but is %d", ErrInvalidSize, size)
	} else if rng == nil {
		return nil, ErrNilSource
	}

	var c interpolate.Corners
	c.Z00 = rng.Float64()
	c.Z01 = rng.Float64()
	c.Z10 = rng.Float64()
	c.Z11 = rng.Float64()

	xSplit := rng.Intn(size)
	ySplit := rng.Intn(size)

	return NewFromCorners(size, c, xSplit, ySplit)
}

// NewFromCorners creates a Field with the given corner values and quadrant
// split. Splits may take any value in [0, size]; a split at either end
// leaves two of the quadrants empty.
func NewFromCorners(
	size int, c interpolate.Corners, xSplit, ySplit int,
) (*Field, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w, but is %d", ErrInvalidSize, size)
	} else if xSplit < 0 || xSplit > size {
		return nil, fmt.Errorf(
			"%w: x split %d not in [0, %d]", ErrInvalidSplit, xSplit, size,
		)
	} else if ySplit < 0 || ySplit > size {
		return nil, fmt.Errorf(
			"%w: y split %d not in [0, %d]", ErrInvalidSplit, ySplit, size,
		)
	}

	f := &Field{
		size: size, corners: c, xSplit: xSplit, ySplit: ySplit,
		raw: geom.NewGrid(size), intp: geom.NewGrid(size),
	}
	f.fillQuadrants()

	return f, nil
}

// quadrant is the half-open cell range [x0, x1) x [y0, y1).
type quadrant struct {
	x0, x1, y0, y1 int
	z              float64
}

func (f *Field) quadrants() [4]quadrant {
	n, xs, ys, c := f.size, f.xSplit, f.ySplit, f.corners
	return [4]quadrant{
		{0, xs, 0, ys, c.Z00},
		{xs, n, 0, ys, c.Z10},
		{0, xs, ys, n, c.Z01},
		{xs, n, ys, n, c.Z11},
	}
}

func (f *Field) fillQuadrants() {
	for _, q := range f.quadrants() {
		if q.x1 <= q.x0 || q.y1 <= q.y0 {
			// Zero-extent quadrant: it owns no cells.
			continue
		}

		for x := q.x0; x < q.x1; x++ {
			off := x * f.size
			for y := q.y0; y < q.y1; y++ {
				f.raw.Vals[off+y] = q.z
			}
		}
	}
}

// Interpolate fills a new grid with the bilinear surface through the four
// corner values using the given method and makes it the Field's
// interpolated grid. A 1 x 1 field has no extent to interpolate over and
// returns an error wrapping interpolate.ErrDegenerateDomain without
// touching the previous grid.
func (f *Field) Interpolate(m interpolate.Method) error {
	if f.size == 1 {
		return fmt.Errorf(
			"%w: cannot interpolate a 1 x 1 field",
			interpolate.ErrDegenerateDomain,
		)
	}

	bi, err := interpolate.New(m, f.corners, f.Domain())
	if err != nil {
		return err
	}

	g := geom.NewGrid(f.size)
	interpolate.Fill(bi, g, f.Workers)

	f.intp = g
	f.method, f.interpolated = m, true
	return nil
}

// Verify checks that all interpolation methods agree on this Field's corners
// to within the relative tolerance tol. Any disagreement is reported as an
// *interpolate.DivergenceError.
func (f *Field) Verify(tol float64) error {
	if f.size == 1 {
		return fmt.Errorf(
			"%w: cannot verify a 1 x 1 field", interpolate.ErrDegenerateDomain,
		)
	}
	return interpolate.Compare(f.corners, f.Domain(), tol)
}

func (f *Field) Size() int                    { return f.size }
func (f *Field) Corners() interpolate.Corners { return f.corners }
func (f *Field) Split() (xSplit, ySplit int)  { return f.xSplit, f.ySplit }
func (f *Field) Domain() interpolate.Domain   { return interpolate.SquareDomain(f.size) }

// Raw returns a copy of the quadrant grid.
func (f *Field) Raw() *geom.Grid { return f.raw.Copy() }

// Interpolated returns a copy of the grid written by the last successful call
// to Interpolate, or a zeroed grid if there hasn't been one.
func (f *Field) Interpolated() *geom.Grid { return f.intp.Copy() }

// Method returns the method used by the last successful call to Interpolate
// and false if there hasn't been one.
func (f *Field) Method() (interpolate.Method, bool) {
	return f.method, f.interpolated
}

// Grid returns the interpolated grid if useInterpolated is set and the raw
// quadrant grid otherwise. By convention the raw grid is shown before
// interpolation and the interpolated grid afterwards.
func (f *Field) Grid(useInterpolated bool) *geom.Grid {
	if useInterpolated {
		return f.Interpolated()
	}
	return f.Raw()
}
