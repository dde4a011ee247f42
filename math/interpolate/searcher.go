package interpolate

import (
	"fmt"
	"math"
	"sort"
)

// searcher finds the knot interval containing a point. Knots are either an
// explicit strictly monotonic sequence or a uniform sequence described by an
// origin and a spacing.
type searcher struct {
	xs     []float64
	x0, dx float64
	n      int
	unif   bool
	incr   bool
}

func (s *searcher) init(xs []float64) {
	if len(xs) < 2 {
		panic(fmt.Sprintf("At least two knots are required, but %d given.", len(xs)))
	}

	s.xs, s.n, s.unif = xs, len(xs), false
	s.incr = xs[len(xs)-1] > xs[0]

	for i := 1; i < len(xs); i++ {
		if (s.incr && xs[i] <= xs[i-1]) || (!s.incr && xs[i] >= xs[i-1]) {
			panic("Knots are not strictly monotonic.")
		}
	}
}

func (s *searcher) unifInit(x0, dx float64, n int) {
	if n < 2 {
		panic(fmt.Sprintf("At least two knots are required, but %d given.", n))
	} else if dx == 0 {
		panic("Knot spacing must be non-zero.")
	}

	s.xs, s.x0, s.dx, s.n, s.unif = nil, x0, dx, n, true
	s.incr = dx > 0
}

// search returns the index i of the interval [val(i), val(i+1)] which
// contains x. Points outside the knot range are assigned to the first or last
// interval.
func (s *searcher) search(x float64) int {
	var i int
	if s.unif {
		i = int(math.Floor((x - s.x0) / s.dx))
	} else if s.incr {
		i = sort.Search(s.n, func(j int) bool { return s.xs[j] > x }) - 1
	} else {
		i = sort.Search(s.n, func(j int) bool { return s.xs[j] < x }) - 1
	}

	if i < 0 {
		return 0
	} else if i > s.n-2 {
		return s.n - 2
	}
	return i
}

func (s *searcher) val(i int) float64 {
	if s.unif {
		return s.x0 + float64(i)*s.dx
	}
	return s.xs[i]
}

// clampFrac returns the fractional position of x between x1 and x2, limited
// to [0, 1].
func clampFrac(x, x1, x2 float64) float64 {
	t := (x - x1) / (x2 - x1)
	if t < 0 {
		return 0
	} else if t > 1 {
		return 1
	}
	return t
}
