package geom

import (
	"fmt"
)

// Grid provides an interface for reasoning over a 1D slice as if it were a
// square 2D grid. Cells are addressed as (x, y) where x is the row and y is
// the column, so the slice is row-major: idx = x*Width + y.
type Grid struct {
	Vals        []float64
	Width, Area int
}

// NewGrid returns a zeroed Grid with the given side length.
func NewGrid(width int) *Grid {
	g := &Grid{}
	g.Init(width)
	return g
}

// Init (re)initializes a Grid instance. All cells are set to zero.
func (g *Grid) Init(width int) {
	if width <= 0 {
		panic(fmt.Sprintf("Grid width must be positive, but is %d.", width))
	}

	g.Width = width
	g.Area = width * width

	if cap(g.Vals) >= g.Area {
		g.Vals = g.Vals[:g.Area]
		g.Clear()
	} else {
		g.Vals = make([]float64, g.Area)
	}
}

// Idx returns the grid index corresponding to a set of coordinates.
func (g *Grid) Idx(x, y int) int {
	return x*g.Width + y
}

// BoundsCheck returns true if the given coordinates are within the Grid and
// false otherwise.
func (g *Grid) BoundsCheck(x, y int) bool {
	return 0 <= x && 0 <= y && x < g.Width && y < g.Width
}

func (g *Grid) At(x, y int) float64 { return g.Vals[g.Idx(x, y)] }

func (g *Grid) Set(x, y int, val float64) { g.Vals[g.Idx(x, y)] = val }

// Clear sets every cell to zero.
func (g *Grid) Clear() {
	for i := range g.Vals {
		g.Vals[i] = 0
	}
}

// Copy returns a deep copy of g.
func (g *Grid) Copy() *Grid {
	out := &Grid{Width: g.Width, Area: g.Area}
	out.Vals = make([]float64, len(g.Vals))
	copy(out.Vals, g.Vals)
	return out
}
