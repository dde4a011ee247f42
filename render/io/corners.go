package io

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/quadfield/math/interpolate"
)

// ReadCorners reads corner values from the first row of a whitespace
// separated text table with the columns z00 z10 z01 z11.
func ReadCorners(fname string) (interpolate.Corners, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return interpolate.Corners{}, err
	}
	if len(cols) != 4 || len(cols[0]) == 0 {
		return interpolate.Corners{}, fmt.Errorf(
			"Corners file '%s' contains no rows.", fname,
		)
	}

	c := interpolate.Corners{
		Z00: cols[0][0], Z10: cols[1][0], Z01: cols[2][0], Z11: cols[3][0],
	}
	for i, z := range []float64{c.Z00, c.Z10, c.Z01, c.Z11} {
		if math.IsNaN(z) || math.IsInf(z, 0) {
			return interpolate.Corners{}, fmt.Errorf(
				"Corner %d in '%s' is %g.", i, fname, z,
			)
		}
	}

	return c, nil
}
