package interpolate

type Interpolator interface {
	Eval(x float64) float64
}

var (
	_ Interpolator = &Linear{}
)

// BiInterpolator is anything which can be evaluated over the plane.
type BiInterpolator interface {
	Eval(x, y float64) float64
}

var (
	_ BiInterpolator = &BiLinear{}
	_ BiInterpolator = &Direct{}
	_ BiInterpolator = &PolyFit{}
	_ BiInterpolator = &MatrixForm{}
)
